package order

import (
	"errors"
	"fmt"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/pkg/errs"
)

// ItemComplement is an immutable snapshot of a complement option selected for
// an order item. Name and price are copied at selection time so later catalog
// edits never change what the customer agreed to pay.
type ItemComplement struct {
	optionID kernel.UUID
	name     string
	price    kernel.Money
	quantity int
}

// NewItemComplement creates a complement snapshot from a catalog option.
func NewItemComplement(optionID kernel.UUID, name string, price kernel.Money, quantity int) (ItemComplement, error) {
	if err := optionID.Validate(); err != nil {
		return ItemComplement{}, err
	}
	if name == "" {
		return ItemComplement{}, errs.NewValueIsRequiredError("complement name")
	}
	if quantity < 1 {
		return ItemComplement{}, errs.NewValueIsInvalidErrorWithCause(
			"complement quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if err := price.ValidateNonNegative("complement price"); err != nil {
		return ItemComplement{}, err
	}

	return ItemComplement{
		optionID: optionID,
		name:     name,
		price:    price,
		quantity: quantity,
	}, nil
}

// OptionID returns the catalog option the snapshot was taken from.
func (c ItemComplement) OptionID() kernel.UUID { return c.optionID }

// Name returns the snapshotted option name.
func (c ItemComplement) Name() string { return c.name }

// Price returns the snapshotted unit price of the option.
func (c ItemComplement) Price() kernel.Money { return c.price }

// Quantity returns how many units of the option were selected.
func (c ItemComplement) Quantity() int { return c.quantity }

// Total returns price * quantity for the complement line.
func (c ItemComplement) Total() kernel.Money {
	return c.price.Mul(c.quantity)
}

// Item is a line of an order: a product snapshot plus its selected
// complements. Product name and unit price are denormalized at creation time,
// immune to later catalog price changes.
//
// Invariant: subtotal == (unitPrice + complementsPrice) * quantity, where
// complementsPrice is the sum of the complements' price * quantity.
type Item struct {
	id               kernel.UUID
	productID        kernel.UUID
	productName      string
	unitPrice        kernel.Money
	quantity         int
	notes            string
	complements      []ItemComplement
	complementsPrice kernel.Money
	subtotal         kernel.Money
}

// NewItem creates an order item, snapshotting the product's name and price and
// deriving complementsPrice and subtotal from the selected complements.
func NewItem(
	id kernel.UUID,
	productID kernel.UUID,
	productName string,
	unitPrice kernel.Money,
	quantity int,
	notes string,
	complements []ItemComplement,
) (*Item, error) {
	if err := errors.Join(
		id.Validate(),
		productID.Validate(),
		unitPrice.ValidateNonNegative("unit price"),
	); err != nil {
		return nil, err
	}
	if productName == "" {
		return nil, errs.NewValueIsRequiredError("product name")
	}
	if quantity < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}

	item := &Item{
		id:          id,
		productID:   productID,
		productName: productName,
		unitPrice:   unitPrice,
		quantity:    quantity,
		notes:       notes,
		complements: complements,
	}
	item.derivePrices()
	return item, nil
}

// RestoreItem reconstructs an item from persistence without re-deriving
// prices from the complements; the stored subtotal is authoritative for
// historical rows.
func RestoreItem(
	id kernel.UUID,
	productID kernel.UUID,
	productName string,
	unitPrice kernel.Money,
	quantity int,
	notes string,
	complements []ItemComplement,
	complementsPrice kernel.Money,
	subtotal kernel.Money,
) *Item {
	return &Item{
		id:               id,
		productID:        productID,
		productName:      productName,
		unitPrice:        unitPrice,
		quantity:         quantity,
		notes:            notes,
		complements:      complements,
		complementsPrice: complementsPrice,
		subtotal:         subtotal,
	}
}

func (i *Item) derivePrices() {
	var complementsPrice kernel.Money
	for _, c := range i.complements {
		complementsPrice = complementsPrice.Add(c.Total())
	}
	i.complementsPrice = complementsPrice
	i.subtotal = i.unitPrice.Add(complementsPrice).Mul(i.quantity)
}

// ID returns the item's identifier.
func (i *Item) ID() kernel.UUID { return i.id }

// ProductID returns the catalog product the item snapshots.
func (i *Item) ProductID() kernel.UUID { return i.productID }

// ProductName returns the snapshotted product name.
func (i *Item) ProductName() string { return i.productName }

// UnitPrice returns the snapshotted product price.
func (i *Item) UnitPrice() kernel.Money { return i.unitPrice }

// Quantity returns the ordered quantity (always >= 1).
func (i *Item) Quantity() int { return i.quantity }

// Notes returns the free-text preparation notes.
func (i *Item) Notes() string { return i.notes }

// Complements returns the complement snapshots of the item.
func (i *Item) Complements() []ItemComplement { return i.complements }

// ComplementsPrice returns the per-unit price of all selected complements.
func (i *Item) ComplementsPrice() kernel.Money { return i.complementsPrice }

// Subtotal returns (unitPrice + complementsPrice) * quantity.
func (i *Item) Subtotal() kernel.Money { return i.subtotal }

// UpdateQuantityAndNotes mutates the item during an order edit and re-derives
// the subtotal. Complements are resynced separately via ReplaceComplements.
func (i *Item) UpdateQuantityAndNotes(quantity int, notes string) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	i.notes = notes
	i.derivePrices()
	return nil
}

// ReplaceComplements swaps the complement snapshots and re-derives prices.
func (i *Item) ReplaceComplements(complements []ItemComplement) {
	i.complements = complements
	i.derivePrices()
}
