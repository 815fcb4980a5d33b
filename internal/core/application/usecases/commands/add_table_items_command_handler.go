package commands

import (
	"context"
	"time"

	"comanda/internal/core/domain/model/audit"
	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/order"
	"comanda/internal/core/domain/model/table"
	"comanda/internal/core/ports"
)

// AddTableItemsCommandHandler appends items to the order seated on a table,
// recomputing the running total and decrementing stock for controlled products.
type AddTableItemsCommandHandler struct {
	uowFactory       TableItemsUoWFactory
	cacheInvalidator ports.CatalogCacheInvalidator
}

// NewAddTableItemsCommandHandler creates a handler for adding items to a table's order.
func NewAddTableItemsCommandHandler(
	uowFactory TableItemsUoWFactory,
	cacheInvalidator ports.CatalogCacheInvalidator,
) AddTableItemsCommandHandler {
	return AddTableItemsCommandHandler{
		uowFactory:       uowFactory,
		cacheInvalidator: cacheInvalidator,
	}
}

// Handle processes the add-items command. Fails with ErrTableIsNotOccupied
// when the table has no seated order.
func (h *AddTableItemsCommandHandler) Handle(ctx context.Context, cmd AddTableItemsCommand) error {
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
	if tbl.CurrentOrderID() == nil {
		return table.ErrTableIsNotOccupied
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.TenantID(), *tbl.CurrentOrderID())
	if err != nil {
		return err
	}

	totalBefore := o.Total()

	built, err := buildItems(ctx, uow.CatalogReader(), cmd.TenantID(), cmd.Items())
	if err != nil {
		return err
	}
	items := make([]*order.Item, 0, len(built))
	for _, b := range built {
		items = append(items, b.item)
	}
	o.AddItems(items...)

	if err = orderRepo.Update(ctx, o); err != nil {
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

	auditEntry, err := audit.NewEntry(
		kernel.NewUUID(), cmd.TenantID(), cmd.ActorID(),
		audit.ActionOrderItemsEdited, "order", o.ID(),
		map[string]any{"total_cents": totalBefore.Cents()},
		map[string]any{"total_cents": o.Total().Cents(), "items_added": len(items)},
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
