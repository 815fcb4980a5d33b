package commands

import (
	"errors"
	"fmt"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/pkg/errs"
)

// ItemComplementInput selects a catalog complement option for an item line.
type ItemComplementInput struct {
	OptionID kernel.UUID
	Quantity int
}

func (in ItemComplementInput) validate() error {
	if err := in.OptionID.Validate(); err != nil {
		return err
	}
	if in.Quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"complement quantity", fmt.Errorf("%d is not greater than 0", in.Quantity))
	}
	return nil
}

// ItemInput describes one requested order line referencing a catalog product.
// Name and price are snapshotted from the catalog by the handler, never taken
// from the client.
type ItemInput struct {
	ProductID   kernel.UUID
	Quantity    int
	Notes       string
	Complements []ItemComplementInput
}

func (in ItemInput) validate() error {
	if err := in.ProductID.Validate(); err != nil {
		return err
	}
	if in.Quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"item quantity", fmt.Errorf("%d is not greater than 0", in.Quantity))
	}
	for _, c := range in.Complements {
		if err := c.validate(); err != nil {
			return err
		}
	}
	return nil
}

func validateItemInputs(items []ItemInput) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	errList := make([]error, 0, len(items))
	for _, item := range items {
		errList = append(errList, item.validate())
	}
	return errors.Join(errList...)
}

// ItemUpdateInput describes one line of a storefront order edit. A nil ItemID
// creates a new line; a non-nil one updates the existing line in place.
type ItemUpdateInput struct {
	ItemID      *kernel.UUID
	ProductID   kernel.UUID
	Quantity    int
	Notes       string
	Complements []ItemComplementInput
}

func (in ItemUpdateInput) validate() error {
	if in.ItemID != nil {
		if err := in.ItemID.Validate(); err != nil {
			return err
		}
	}
	return ItemInput{
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		Notes:       in.Notes,
		Complements: in.Complements,
	}.validate()
}
