package commands

import (
	"context"
	"fmt"
	"time"

	"comanda/internal/core/domain/model/audit"
	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/loyalty"
	"comanda/internal/core/domain/model/order"
	"comanda/internal/core/domain/model/table"
)

// CloseTableCommandHandler settles a table: the seated order is walked through
// the state machine to delivered, paid for its accumulated total, loyalty
// points are accrued, and the table is freed.
//
// A table without a seated order is freed anyway, so orphaned occupancy state
// cannot permanently block a table.
type CloseTableCommandHandler struct {
	uowFactory CloseTableUoWFactory
}

// NewCloseTableCommandHandler creates a handler for table closure operations.
func NewCloseTableCommandHandler(uowFactory CloseTableUoWFactory) CloseTableCommandHandler {
	return CloseTableCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the close-table command.
func (h *CloseTableCommandHandler) Handle(ctx context.Context, cmd CloseTableCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tbl, err := uow.TableRepository().Get(ctx, cmd.TenantID(), cmd.TableID())
	if err != nil {
		return err
	}

	var o *order.Order
	if tbl.CurrentOrderID() != nil {
		o, err = uow.OrderRepository().Get(ctx, cmd.TenantID(), *tbl.CurrentOrderID())
		if err != nil {
			return err
		}
	}

	if o == nil || o.Status().IsTerminal() {
		return h.freeOrphanedTable(ctx, uow, cmd, tbl, o, now)
	}

	statusBefore := o.Status()
	if err = finalizeStatus(o); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	payment, err := order.NewPayment(
		kernel.NewUUID(), cmd.TenantID(), o.ID(), cmd.PaymentMethod(), o.Total(), now)
	if err != nil {
		return err
	}
	o.MarkPaid()

	if err = h.accrueLoyalty(ctx, uow, cmd, o, now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}
	if err = orderRepo.AddPayment(ctx, payment); err != nil {
		return err
	}

	if err = uow.TableRepository().Free(ctx, cmd.TenantID(), cmd.TableID()); err != nil {
		return err
	}

	auditEntry, err := audit.NewEntry(
		kernel.NewUUID(), cmd.TenantID(), cmd.ActorID(),
		audit.ActionTableClosed, "table", cmd.TableID(),
		map[string]any{"order_status": statusBefore.String()},
		map[string]any{
			"order_id":     o.ID().String(),
			"order_status": o.Status().String(),
			"total_cents":  o.Total().Cents(),
		},
		now,
	)
	if err != nil {
		return err
	}
	if err = uow.AuditTrail().Append(ctx, auditEntry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// freeOrphanedTable releases a table whose binding points at nothing, or at an
// order that already reached a terminal status. No payment is taken.
func (h *CloseTableCommandHandler) freeOrphanedTable(
	ctx context.Context,
	uow CloseTableUoW,
	cmd CloseTableCommand,
	tbl *table.Table,
	o *order.Order,
	now time.Time,
) error {
	if err := uow.TableRepository().Free(ctx, cmd.TenantID(), cmd.TableID()); err != nil {
		return err
	}

	after := map[string]any{"table_number": tbl.Number(), "orphaned": true}
	if o != nil {
		after["order_id"] = o.ID().String()
		after["order_status"] = o.Status().String()
	}

	auditEntry, err := audit.NewEntry(
		kernel.NewUUID(), cmd.TenantID(), cmd.ActorID(),
		audit.ActionTableClosed, "table", cmd.TableID(),
		nil, after, now,
	)
	if err != nil {
		return err
	}
	if err = uow.AuditTrail().Append(ctx, auditEntry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *CloseTableCommandHandler) accrueLoyalty(
	ctx context.Context,
	uow CloseTableUoW,
	cmd CloseTableCommand,
	o *order.Order,
	now time.Time,
) error {
	if o.CustomerID() == nil {
		return nil
	}

	tenant, err := uow.TenantReader().Get(ctx, cmd.TenantID())
	if err != nil {
		return err
	}
	if !tenant.LoyaltyEnabled {
		return nil
	}

	points := o.Total().Points(tenant.PointsPerCurrency)
	if points <= 0 {
		return nil
	}

	if err = o.AccrueLoyaltyPoints(points); err != nil {
		return err
	}

	orderID := o.ID()
	entry, err := loyalty.NewEntry(
		kernel.NewUUID(), cmd.TenantID(), *o.CustomerID(), points,
		fmt.Sprintf("Pontos do pedido #%d", o.Number()), &orderID, now)
	if err != nil {
		return err
	}

	return uow.LoyaltyLedger().Append(ctx, entry)
}

// finalizeStatus walks the order through the state machine to delivered,
// taking the shortest allowed path from its current status.
func finalizeStatus(o *order.Order) error {
	next := map[order.Status]order.Status{
		order.StatusNew:             order.StatusPreparing,
		order.StatusPreparing:       order.StatusReady,
		order.StatusReady:           order.StatusDelivered,
		order.StatusWaitingMotoboy:  order.StatusReady,
		order.StatusMotoboyAccepted: order.StatusOutForDelivery,
		order.StatusOutForDelivery:  order.StatusDelivered,
	}

	for o.Status() != order.StatusDelivered {
		if _, err := o.TransitionTo(next[o.Status()]); err != nil {
			return err
		}
	}

	return nil
}
