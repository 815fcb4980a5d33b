package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"comanda/internal/core/domain/model/audit"
	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/loyalty"
	"comanda/internal/core/domain/model/order"
	"comanda/internal/core/ports"
)

// maxNumberAllocationAttempts bounds the retry on order-number conflicts.
// The unique index on (tenant_id, number) makes the conflict visible; a retry
// re-reads max(number)+1 on a fresh transaction.
const maxNumberAllocationAttempts = 3

// CheckoutCommandHandler handles the counter/POS sale flow: number allocation,
// catalog price snapshotting, stock decrement, payment, loyalty accrual and
// optional table occupation, all in one transaction.
type CheckoutCommandHandler struct {
	uowFactory       CheckoutUoWFactory
	cacheInvalidator ports.CatalogCacheInvalidator
}

// NewCheckoutCommandHandler creates a handler for checkout operations.
func NewCheckoutCommandHandler(
	uowFactory CheckoutUoWFactory,
	cacheInvalidator ports.CatalogCacheInvalidator,
) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory:       uowFactory,
		cacheInvalidator: cacheInvalidator,
	}
}

// Handle processes the checkout command. A concurrent sale may steal the
// allocated order number; the whole transaction is retried on that conflict.
func (h *CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var err error
	for attempt := 0; attempt < maxNumberAllocationAttempts; attempt++ {
		err = h.handleAttempt(ctx, cmd)
		if !errors.Is(err, order.ErrNumberConflict) {
			return err
		}
	}

	return err
}

func (h *CheckoutCommandHandler) handleAttempt(ctx context.Context, cmd CheckoutCommand) error {
	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tenant, err := uow.TenantReader().Get(ctx, cmd.TenantID())
	if err != nil {
		return err
	}

	var customer *loyalty.Customer
	if cmd.CustomerID() != nil {
		customer, err = uow.LoyaltyLedger().Customer(ctx, cmd.TenantID(), *cmd.CustomerID())
		if err != nil {
			return err
		}
	}

	tableNumber := 0
	if cmd.Mode() == order.ModeTable {
		tbl, tblErr := uow.TableRepository().Get(ctx, cmd.TenantID(), *cmd.TableID())
		if tblErr != nil {
			return tblErr
		}
		tableNumber = tbl.Number()
	}

	orderRepo := uow.OrderRepository()
	number, err := orderRepo.NextNumber(ctx, cmd.TenantID())
	if err != nil {
		return err
	}

	o, err := h.buildOrder(cmd, customer, number, tableNumber, now)
	if err != nil {
		return err
	}

	built, err := buildItems(ctx, uow.CatalogReader(), cmd.TenantID(), cmd.Items())
	if err != nil {
		return err
	}
	items := make([]*order.Item, 0, len(built))
	for _, b := range built {
		items = append(items, b.item)
	}
	o.AddItems(items...)

	accruedPoints := 0
	if tenant.LoyaltyEnabled && customer != nil && cmd.Mode() != order.ModeTable {
		accruedPoints = o.Total().Points(tenant.PointsPerCurrency)
		if accruedPoints > 0 {
			if err = o.AccrueLoyaltyPoints(accruedPoints); err != nil {
				return err
			}
		}
	}
	if cmd.Mode() != order.ModeTable {
		o.MarkPaid()
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return err
	}

	availabilityChanged := false
	stockLedger := uow.StockLedger()
	for _, b := range built {
		if !b.product.StockControlled {
			continue
		}
		crossed, saleErr := recordSale(
			ctx, stockLedger, cmd.TenantID(), b.product.ID, b.item.Quantity(), o.ID(), cmd.ActorID(), now)
		if saleErr != nil {
			return saleErr
		}
		availabilityChanged = availabilityChanged || crossed
	}

	if cmd.Mode() != order.ModeTable {
		payment, payErr := order.NewPayment(
			kernel.NewUUID(), cmd.TenantID(), o.ID(), cmd.PaymentMethod(), o.Total(), now)
		if payErr != nil {
			return payErr
		}
		if err = orderRepo.AddPayment(ctx, payment); err != nil {
			return err
		}
	}

	if accruedPoints > 0 {
		orderID := o.ID()
		entry, entryErr := loyalty.NewEntry(
			kernel.NewUUID(), cmd.TenantID(), customer.ID, accruedPoints,
			fmt.Sprintf("Pontos do pedido #%d", number), &orderID, now)
		if entryErr != nil {
			return entryErr
		}
		if err = uow.LoyaltyLedger().Append(ctx, entry); err != nil {
			return err
		}
	}

	if cmd.Mode() == order.ModeTable {
		if err = uow.TableRepository().Occupy(ctx, cmd.TenantID(), *cmd.TableID(), o.ID(), now); err != nil {
			return err
		}
	}

	auditEntry, err := audit.NewEntry(
		kernel.NewUUID(), cmd.TenantID(), cmd.ActorID(),
		audit.ActionOrderCreated, "order", o.ID(),
		nil,
		map[string]any{
			"number":      o.Number(),
			"status":      o.Status().String(),
			"mode":        o.Mode().String(),
			"total_cents": o.Total().Cents(),
		},
		now,
	)
	if err != nil {
		return err
	}
	if err = uow.AuditTrail().Append(ctx, auditEntry); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if availabilityChanged {
		h.cacheInvalidator.Invalidate(ctx, cmd.TenantID())
	}

	return nil
}

func (h *CheckoutCommandHandler) buildOrder(
	cmd CheckoutCommand,
	customer *loyalty.Customer,
	number, tableNumber int,
	now time.Time,
) (*order.Order, error) {
	linkedName := ""
	linkedPhone := ""
	if customer != nil {
		linkedName = customer.Name
		linkedPhone = customer.Phone
	}

	name := order.ResolveCustomerName(cmd.CustomerName(), linkedName, cmd.Mode(), tableNumber)
	phone := cmd.CustomerPhone()
	if phone == "" {
		phone = linkedPhone
	}

	o, err := order.NewOrder(
		cmd.OrderID(), cmd.TenantID(), number, cmd.Mode(),
		cmd.CustomerID(), name, phone, cmd.DeliveryFee(), now)
	if err != nil {
		return nil, err
	}

	if cmd.Mode() == order.ModeTable {
		if err = o.MoveToTable(*cmd.TableID()); err != nil {
			return nil, err
		}
	}

	return o, nil
}
