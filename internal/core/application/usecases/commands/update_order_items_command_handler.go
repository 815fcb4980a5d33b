package commands

import (
	"context"
	"time"

	"comanda/internal/core/domain/model/audit"
	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/order"
	"comanda/internal/core/ports"
	"comanda/internal/pkg/errs"
)

// UpdateOrderItemsCommandHandler handles storefront order edits: the payload
// replaces the item tree, totals are recomputed from the surviving snapshots,
// and stock is decremented for net quantity increases per product.
//
// Quantity decreases do not restock; only cancellation compensates stock.
type UpdateOrderItemsCommandHandler struct {
	uowFactory       OrderItemsUoWFactory
	cacheInvalidator ports.CatalogCacheInvalidator
}

// NewUpdateOrderItemsCommandHandler creates a handler for order edit operations.
func NewUpdateOrderItemsCommandHandler(
	uowFactory OrderItemsUoWFactory,
	cacheInvalidator ports.CatalogCacheInvalidator,
) UpdateOrderItemsCommandHandler {
	return UpdateOrderItemsCommandHandler{
		uowFactory:       uowFactory,
		cacheInvalidator: cacheInvalidator,
	}
}

// Handle processes the order edit command. Editing a delivered or cancelled
// order is rejected as a business-rule violation.
func (h *UpdateOrderItemsCommandHandler) Handle(ctx context.Context, cmd UpdateOrderItemsCommand) error {
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

	totalBefore := o.Total()
	quantityBefore := quantityByProduct(o.Items())

	catalog := uow.CatalogReader()
	newItems, err := h.reconcileItems(ctx, catalog, cmd, o.Items())
	if err != nil {
		return err
	}

	if err = o.ReplaceItems(newItems); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	availabilityChanged, err := h.recordIncreases(
		ctx, uow, cmd, quantityBefore, quantityByProduct(newItems), now)
	if err != nil {
		return err
	}

	auditEntry, err := audit.NewEntry(
		kernel.NewUUID(), cmd.TenantID(), cmd.ActorID(),
		audit.ActionOrderItemsEdited, "order", o.ID(),
		map[string]any{"total_cents": totalBefore.Cents()},
		map[string]any{"total_cents": o.Total().Cents(), "item_count": len(newItems)},
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

// reconcileItems maps the payload onto the current item tree: lines with an
// existing item id mutate that item (keeping its original price snapshot),
// lines without one snapshot fresh catalog data.
func (h *UpdateOrderItemsCommandHandler) reconcileItems(
	ctx context.Context,
	catalog ports.CatalogReader,
	cmd UpdateOrderItemsCommand,
	existing []*order.Item,
) ([]*order.Item, error) {
	byID := make(map[string]*order.Item, len(existing))
	for _, item := range existing {
		byID[item.ID().String()] = item
	}

	newItems := make([]*order.Item, 0, len(cmd.Items()))
	for _, input := range cmd.Items() {
		if input.ItemID != nil {
			item, ok := byID[input.ItemID.String()]
			if !ok {
				return nil, errs.NewObjectNotFoundError("order item", input.ItemID.String())
			}

			if err := item.UpdateQuantityAndNotes(input.Quantity, input.Notes); err != nil {
				return nil, err
			}
			complements, err := buildComplements(ctx, catalog, cmd.TenantID(), input.Complements)
			if err != nil {
				return nil, err
			}
			item.ReplaceComplements(complements)

			newItems = append(newItems, item)
			continue
		}

		built, err := buildItems(ctx, catalog, cmd.TenantID(), []ItemInput{{
			ProductID:   input.ProductID,
			Quantity:    input.Quantity,
			Notes:       input.Notes,
			Complements: input.Complements,
		}})
		if err != nil {
			return nil, err
		}
		newItems = append(newItems, built[0].item)
	}

	return newItems, nil
}

// recordIncreases writes sale movements for products whose ordered quantity
// grew, touching the catalog only for products that actually changed.
func (h *UpdateOrderItemsCommandHandler) recordIncreases(
	ctx context.Context,
	uow OrderItemsUoW,
	cmd UpdateOrderItemsCommand,
	before, after map[string]productQuantity,
	now time.Time,
) (bool, error) {
	availabilityChanged := false
	catalog := uow.CatalogReader()
	stockLedger := uow.StockLedger()

	for key, pq := range after {
		increase := pq.quantity - before[key].quantity
		if increase <= 0 {
			continue
		}

		product, err := catalog.Product(ctx, cmd.TenantID(), pq.productID)
		if err != nil {
			return false, err
		}
		if !product.StockControlled {
			continue
		}

		crossed, err := recordSale(
			ctx, stockLedger, cmd.TenantID(), pq.productID, increase, cmd.OrderID(), cmd.ActorID(), now)
		if err != nil {
			return false, err
		}
		availabilityChanged = availabilityChanged || crossed
	}

	return availabilityChanged, nil
}

type productQuantity struct {
	productID kernel.UUID
	quantity  int
}

func quantityByProduct(items []*order.Item) map[string]productQuantity {
	quantities := make(map[string]productQuantity, len(items))
	for _, item := range items {
		key := item.ProductID().String()
		pq := quantities[key]
		pq.productID = item.ProductID()
		pq.quantity += item.Quantity()
		quantities[key] = pq
	}
	return quantities
}
