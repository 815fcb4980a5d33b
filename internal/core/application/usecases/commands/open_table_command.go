package commands

import (
	"errors"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/pkg/guard"
)

var ErrOpenTableCommandIsNotConstructed = errors.New(
	"OpenTableCommand must be created via NewOpenTableCommand constructor",
)

// OpenTableCommand represents a request to seat a new dine-in order on a free
// table. The order starts near-empty (no items, zero totals) in preparing
// status; items are added as the kitchen receives them.
type OpenTableCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	tenantID kernel.UUID
	actorID  kernel.UUID
	tableID  kernel.UUID

	customerID   *kernel.UUID
	customerName string

	guard guard.ConstructorGuard
}

// NewOpenTableCommand creates a command to open a table.
func NewOpenTableCommand(
	orderID, tenantID, actorID, tableID kernel.UUID,
	customerID *kernel.UUID,
	customerName string,
) (OpenTableCommand, error) {
	cmd := OpenTableCommand{
		customerName: customerName,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIdentity(orderID, tenantID, actorID, tableID),
		cmd.setCustomerID(customerID),
	); err != nil {
		return OpenTableCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c OpenTableCommand) Validate() error {
	return c.guard.Validate(ErrOpenTableCommandIsNotConstructed)
}

// OrderID returns the identifier the new table order will be created under.
func (c OpenTableCommand) OrderID() kernel.UUID { return c.orderID }

// TenantID returns the tenant the table belongs to.
func (c OpenTableCommand) TenantID() kernel.UUID { return c.tenantID }

// ActorID returns the operator opening the table.
func (c OpenTableCommand) ActorID() kernel.UUID { return c.actorID }

// TableID returns the table to occupy.
func (c OpenTableCommand) TableID() kernel.UUID { return c.tableID }

// CustomerID returns the linked customer, nil for anonymous parties.
func (c OpenTableCommand) CustomerID() *kernel.UUID { return c.customerID }

// CustomerName returns the explicitly entered customer name, may be empty.
func (c OpenTableCommand) CustomerName() string { return c.customerName }

func (c *OpenTableCommand) setIdentity(orderID, tenantID, actorID, tableID kernel.UUID) error {
	if err := errors.Join(
		orderID.Validate(),
		tenantID.Validate(),
		actorID.Validate(),
		tableID.Validate(),
	); err != nil {
		return err
	}

	c.orderID = orderID
	c.tenantID = tenantID
	c.actorID = actorID
	c.tableID = tableID
	return nil
}

func (c *OpenTableCommand) setCustomerID(customerID *kernel.UUID) error {
	if customerID != nil {
		if err := customerID.Validate(); err != nil {
			return err
		}
	}

	c.customerID = customerID
	return nil
}
