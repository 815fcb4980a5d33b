package commands

import (
	"errors"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/pkg/guard"
)

var ErrAddTableItemsCommandIsNotConstructed = errors.New(
	"AddTableItemsCommand must be created via NewAddTableItemsCommand constructor",
)

// AddTableItemsCommand represents a request to append items to the order
// currently seated on a table.
type AddTableItemsCommand struct { //nolint:recvcheck //using for validation
	tenantID kernel.UUID
	actorID  kernel.UUID
	tableID  kernel.UUID

	items []ItemInput

	guard guard.ConstructorGuard
}

// NewAddTableItemsCommand creates a command to add items to a table's order.
func NewAddTableItemsCommand(
	tenantID, actorID, tableID kernel.UUID,
	items []ItemInput,
) (AddTableItemsCommand, error) {
	cmd := AddTableItemsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIdentity(tenantID, actorID, tableID),
		cmd.setItems(items),
	); err != nil {
		return AddTableItemsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddTableItemsCommand) Validate() error {
	return c.guard.Validate(ErrAddTableItemsCommandIsNotConstructed)
}

// TenantID returns the tenant the table belongs to.
func (c AddTableItemsCommand) TenantID() kernel.UUID { return c.tenantID }

// ActorID returns the operator adding the items.
func (c AddTableItemsCommand) ActorID() kernel.UUID { return c.actorID }

// TableID returns the table whose order receives the items.
func (c AddTableItemsCommand) TableID() kernel.UUID { return c.tableID }

// Items returns the requested order lines.
func (c AddTableItemsCommand) Items() []ItemInput { return c.items }

func (c *AddTableItemsCommand) setIdentity(tenantID, actorID, tableID kernel.UUID) error {
	if err := errors.Join(
		tenantID.Validate(),
		actorID.Validate(),
		tableID.Validate(),
	); err != nil {
		return err
	}

	c.tenantID = tenantID
	c.actorID = actorID
	c.tableID = tableID
	return nil
}

func (c *AddTableItemsCommand) setItems(items []ItemInput) error {
	if err := validateItemInputs(items); err != nil {
		return err
	}

	c.items = items
	return nil
}
