package commands

import (
	"errors"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/order"
	"comanda/internal/pkg/guard"
)

var ErrTransitionOrderStatusCommandIsNotConstructed = errors.New(
	"TransitionOrderStatusCommand must be created via NewTransitionOrderStatusCommand constructor",
)

// TransitionOrderStatusCommand represents a request to move an order to a new
// lifecycle status through the state machine.
type TransitionOrderStatusCommand struct { //nolint:recvcheck //using for validation
	tenantID kernel.UUID
	actorID  kernel.UUID
	orderID  kernel.UUID

	target order.Status

	guard guard.ConstructorGuard
}

// NewTransitionOrderStatusCommand creates a command to transition an order's status.
func NewTransitionOrderStatusCommand(
	tenantID, actorID, orderID kernel.UUID,
	target order.Status,
) (TransitionOrderStatusCommand, error) {
	cmd := TransitionOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		tenantID.Validate(),
		actorID.Validate(),
		orderID.Validate(),
		target.Validate(),
	); err != nil {
		return TransitionOrderStatusCommand{}, err
	}

	cmd.tenantID = tenantID
	cmd.actorID = actorID
	cmd.orderID = orderID
	cmd.target = target
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderStatusCommandIsNotConstructed)
}

// TenantID returns the tenant the order belongs to.
func (c TransitionOrderStatusCommand) TenantID() kernel.UUID { return c.tenantID }

// ActorID returns who requests the transition.
func (c TransitionOrderStatusCommand) ActorID() kernel.UUID { return c.actorID }

// OrderID returns the order to transition.
func (c TransitionOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }

// Target returns the requested status.
func (c TransitionOrderStatusCommand) Target() order.Status { return c.target }
