package commands

import (
	"errors"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/pkg/errs"
	"comanda/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand represents a request to cancel an order with its
// compensations: stock is restored and accrued loyalty points are reversed.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	tenantID kernel.UUID
	actorID  kernel.UUID
	orderID  kernel.UUID

	reason string

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order.
// The reason is mandatory; cancellations without an operator-stated reason
// are not accepted.
func NewCancelOrderCommand(
	tenantID, actorID, orderID kernel.UUID,
	reason string,
) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		tenantID.Validate(),
		actorID.Validate(),
		orderID.Validate(),
		cmd.setReason(reason),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	cmd.tenantID = tenantID
	cmd.actorID = actorID
	cmd.orderID = orderID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// TenantID returns the tenant the order belongs to.
func (c CancelOrderCommand) TenantID() kernel.UUID { return c.tenantID }

// ActorID returns who requests the cancellation.
func (c CancelOrderCommand) ActorID() kernel.UUID { return c.actorID }

// OrderID returns the order to cancel.
func (c CancelOrderCommand) OrderID() kernel.UUID { return c.orderID }

// Reason returns the operator-stated cancellation reason.
func (c CancelOrderCommand) Reason() string { return c.reason }

func (c *CancelOrderCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("cancellation reason")
	}

	c.reason = reason
	return nil
}
