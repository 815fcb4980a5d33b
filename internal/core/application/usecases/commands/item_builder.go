package commands

import (
	"context"
	"time"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/order"
	"comanda/internal/core/domain/model/stock"
	"comanda/internal/core/ports"
	"comanda/internal/pkg/errs"
)

// builtItem pairs a snapshotted domain item with the catalog product it came
// from, so callers can decide whether a stock movement is due.
type builtItem struct {
	item    *order.Item
	product *ports.Product
}

// buildItems snapshots catalog names and prices into domain items.
// Complement quantities are checked against the option's MaxQuantity here,
// at the only place the catalog option is in hand.
func buildItems(
	ctx context.Context,
	catalog ports.CatalogReader,
	tenantID kernel.UUID,
	inputs []ItemInput,
) ([]builtItem, error) {
	built := make([]builtItem, 0, len(inputs))
	for _, input := range inputs {
		product, err := catalog.Product(ctx, tenantID, input.ProductID)
		if err != nil {
			return nil, err
		}

		complements, err := buildComplements(ctx, catalog, tenantID, input.Complements)
		if err != nil {
			return nil, err
		}

		item, err := order.NewItem(
			kernel.NewUUID(),
			product.ID,
			product.Name,
			product.Price,
			input.Quantity,
			input.Notes,
			complements,
		)
		if err != nil {
			return nil, err
		}

		built = append(built, builtItem{item: item, product: product})
	}

	return built, nil
}

func buildComplements(
	ctx context.Context,
	catalog ports.CatalogReader,
	tenantID kernel.UUID,
	inputs []ItemComplementInput,
) ([]order.ItemComplement, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	complements := make([]order.ItemComplement, 0, len(inputs))
	for _, input := range inputs {
		option, err := catalog.ComplementOption(ctx, tenantID, input.OptionID)
		if err != nil {
			return nil, err
		}
		if option.MaxQuantity > 0 && input.Quantity > option.MaxQuantity {
			return nil, errs.NewValueIsOutOfRangeError(
				"complement quantity", input.Quantity, 1, option.MaxQuantity)
		}

		complement, err := order.NewItemComplement(option.ID, option.Name, option.Price, input.Quantity)
		if err != nil {
			return nil, err
		}
		complements = append(complements, complement)
	}

	return complements, nil
}

// recordSale writes the stock decrement for a sold quantity of a
// stock-controlled product. Returns whether the product's availability
// crossed zero, so the caller can fire the catalog cache signal post-commit.
func recordSale(
	ctx context.Context,
	ledger ports.StockLedger,
	tenantID kernel.UUID,
	productID kernel.UUID,
	quantity int,
	orderID kernel.UUID,
	actorID kernel.UUID,
	at time.Time,
) (bool, error) {
	movement, err := stock.NewProductMovement(
		kernel.NewUUID(), tenantID, productID, -quantity, stock.ReasonSale, &orderID, actorID, at)
	if err != nil {
		return false, err
	}

	onHand, err := ledger.Record(ctx, movement)
	if err != nil {
		return false, err
	}

	return availabilityCrossed(onHand, movement.Quantity()), nil
}

// availabilityCrossed reports whether applying delta moved the on-hand
// quantity across the zero boundary in either direction.
func availabilityCrossed(onHand, delta int) bool {
	previous := onHand - delta
	return (previous > 0) != (onHand > 0)
}
