package commands

import (
	"errors"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/order"
	"comanda/internal/pkg/guard"
)

var ErrCloseTableCommandIsNotConstructed = errors.New(
	"CloseTableCommand must be created via NewCloseTableCommand constructor",
)

// CloseTableCommand represents a request to settle and release a table:
// the seated order is finalized, paid for its accumulated total, and the
// table returns to free.
type CloseTableCommand struct { //nolint:recvcheck //using for validation
	tenantID kernel.UUID
	actorID  kernel.UUID
	tableID  kernel.UUID

	paymentMethod order.PaymentMethod

	guard guard.ConstructorGuard
}

// NewCloseTableCommand creates a command to close a table.
func NewCloseTableCommand(
	tenantID, actorID, tableID kernel.UUID,
	paymentMethod order.PaymentMethod,
) (CloseTableCommand, error) {
	cmd := CloseTableCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIdentity(tenantID, actorID, tableID),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return CloseTableCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CloseTableCommand) Validate() error {
	return c.guard.Validate(ErrCloseTableCommandIsNotConstructed)
}

// TenantID returns the tenant the table belongs to.
func (c CloseTableCommand) TenantID() kernel.UUID { return c.tenantID }

// ActorID returns the operator closing the table.
func (c CloseTableCommand) ActorID() kernel.UUID { return c.actorID }

// TableID returns the table to close.
func (c CloseTableCommand) TableID() kernel.UUID { return c.tableID }

// PaymentMethod returns how the accumulated total is paid.
func (c CloseTableCommand) PaymentMethod() order.PaymentMethod { return c.paymentMethod }

func (c *CloseTableCommand) setIdentity(tenantID, actorID, tableID kernel.UUID) error {
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

func (c *CloseTableCommand) setPaymentMethod(method order.PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}

	c.paymentMethod = method
	return nil
}
