package commands

import (
	"context"
	"fmt"
	"time"

	"comanda/internal/core/domain/model/audit"
	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/loyalty"
	"comanda/internal/core/domain/model/order"
	"comanda/internal/core/domain/model/stock"
	"comanda/internal/core/domain/services"
	"comanda/internal/core/ports"
)

// CancelOrderCommandHandler cancels an order and runs its compensations in
// the same transaction: every sale movement gets a compensating adjustment
// restock, and accrued loyalty points are reversed, clamped so the customer's
// balance never goes negative.
//
// Cancelling an already-cancelled order is a no-op, so retried requests never
// double-compensate.
type CancelOrderCommandHandler struct {
	uowFactory       CancelOrderUoWFactory
	stateMachine     services.OrderStateMachine
	cacheInvalidator ports.CatalogCacheInvalidator
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory CancelOrderUoWFactory,
	cacheInvalidator ports.CatalogCacheInvalidator,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory:       uowFactory,
		stateMachine:     services.NewOrderStateMachine(),
		cacheInvalidator: cacheInvalidator,
	}
}

// Handle processes the cancellation command. Cancelling a delivered order is
// rejected as an invalid transition.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.TenantID(), cmd.OrderID())
	if err != nil {
		return err
	}

	result, err := h.stateMachine.Cancel(o, cmd.Reason(), now)
	if err != nil {
		return err
	}
	if !result.Changed {
		return uow.Commit(ctx)
	}

	availabilityChanged, err := h.restoreStock(ctx, uow, cmd, now)
	if err != nil {
		return err
	}

	if err = h.reverseLoyalty(ctx, uow, cmd, o, now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	auditEntry, err := audit.NewEntry(
		kernel.NewUUID(), cmd.TenantID(), cmd.ActorID(),
		audit.ActionOrderCancelled, "order", o.ID(),
		map[string]any{"status": result.OldStatus.String()},
		map[string]any{
			"status": result.NewStatus.String(),
			"reason": cmd.Reason(),
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

// restoreStock writes one compensating adjustment per sale movement linked to
// the order. Working from the ledger rather than the current items restores
// exactly what was decremented, including quantities removed by later edits.
func (h *CancelOrderCommandHandler) restoreStock(
	ctx context.Context,
	uow CancelOrderUoW,
	cmd CancelOrderCommand,
	now time.Time,
) (bool, error) {
	stockLedger := uow.StockLedger()
	movements, err := stockLedger.MovementsForOrder(ctx, cmd.TenantID(), cmd.OrderID())
	if err != nil {
		return false, err
	}

	availabilityChanged := false
	for _, movement := range movements {
		if movement.Reason() != stock.ReasonSale {
			continue
		}

		compensation, compErr := compensatingMovement(movement, cmd, now)
		if compErr != nil {
			return false, compErr
		}

		onHand, recErr := stockLedger.Record(ctx, compensation)
		if recErr != nil {
			return false, recErr
		}
		availabilityChanged = availabilityChanged || availabilityCrossed(onHand, compensation.Quantity())
	}

	return availabilityChanged, nil
}

func compensatingMovement(
	saleMovement *stock.Movement,
	cmd CancelOrderCommand,
	now time.Time,
) (*stock.Movement, error) {
	orderID := cmd.OrderID()
	quantity := -saleMovement.Quantity()

	if saleMovement.IngredientID() != nil {
		return stock.NewIngredientMovement(
			kernel.NewUUID(), cmd.TenantID(), *saleMovement.IngredientID(),
			quantity, stock.ReasonAdjustment, &orderID, cmd.ActorID(), now)
	}

	return stock.NewProductMovement(
		kernel.NewUUID(), cmd.TenantID(), *saleMovement.ProductID(),
		quantity, stock.ReasonAdjustment, &orderID, cmd.ActorID(), now)
}

// reverseLoyalty takes back the points accrued for the order. The reversal is
// clamped to the customer's current balance; the ledger entry records the
// amount actually reversed so the entry history keeps summing to the balance.
func (h *CancelOrderCommandHandler) reverseLoyalty(
	ctx context.Context,
	uow CancelOrderUoW,
	cmd CancelOrderCommand,
	o *order.Order,
	now time.Time,
) error {
	accrued := o.LoyaltyPoints()
	if accrued <= 0 || o.CustomerID() == nil {
		return nil
	}

	ledger := uow.LoyaltyLedger()
	customer, err := ledger.Customer(ctx, cmd.TenantID(), *o.CustomerID())
	if err != nil {
		return err
	}

	reversal := accrued
	if customer.LoyaltyPoints < reversal {
		reversal = customer.LoyaltyPoints
	}

	if reversal > 0 {
		orderID := o.ID()
		entry, entryErr := loyalty.NewEntry(
			kernel.NewUUID(), cmd.TenantID(), customer.ID, -reversal,
			fmt.Sprintf("Estorno do pedido #%d", o.Number()), &orderID, now)
		if entryErr != nil {
			return entryErr
		}
		if err = ledger.Append(ctx, entry); err != nil {
			return err
		}
	}

	o.ClearLoyaltyPoints()
	return nil
}
