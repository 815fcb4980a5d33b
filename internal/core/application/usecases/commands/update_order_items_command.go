package commands

import (
	"errors"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/pkg/errs"
	"comanda/internal/pkg/guard"
)

var ErrUpdateOrderItemsCommandIsNotConstructed = errors.New(
	"UpdateOrderItemsCommand must be created via NewUpdateOrderItemsCommand constructor",
)

// UpdateOrderItemsCommand represents a storefront order edit: the submitted
// lines replace the order's item tree. Lines carrying an existing item id are
// updated in place, lines without one are created, and existing items absent
// from the payload are removed.
type UpdateOrderItemsCommand struct { //nolint:recvcheck //using for validation
	tenantID kernel.UUID
	actorID  kernel.UUID
	orderID  kernel.UUID

	items []ItemUpdateInput

	guard guard.ConstructorGuard
}

// NewUpdateOrderItemsCommand creates a command to replace an order's items.
func NewUpdateOrderItemsCommand(
	tenantID, actorID, orderID kernel.UUID,
	items []ItemUpdateInput,
) (UpdateOrderItemsCommand, error) {
	cmd := UpdateOrderItemsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIdentity(tenantID, actorID, orderID),
		cmd.setItems(items),
	); err != nil {
		return UpdateOrderItemsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderItemsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderItemsCommandIsNotConstructed)
}

// TenantID returns the tenant the order belongs to.
func (c UpdateOrderItemsCommand) TenantID() kernel.UUID { return c.tenantID }

// ActorID returns who performs the edit.
func (c UpdateOrderItemsCommand) ActorID() kernel.UUID { return c.actorID }

// OrderID returns the order being edited.
func (c UpdateOrderItemsCommand) OrderID() kernel.UUID { return c.orderID }

// Items returns the submitted item lines.
func (c UpdateOrderItemsCommand) Items() []ItemUpdateInput { return c.items }

func (c *UpdateOrderItemsCommand) setIdentity(tenantID, actorID, orderID kernel.UUID) error {
	if err := errors.Join(
		tenantID.Validate(),
		actorID.Validate(),
		orderID.Validate(),
	); err != nil {
		return err
	}

	c.tenantID = tenantID
	c.actorID = actorID
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderItemsCommand) setItems(items []ItemUpdateInput) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	errList := make([]error, 0, len(items))
	for _, item := range items {
		errList = append(errList, item.validate())
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	c.items = items
	return nil
}
