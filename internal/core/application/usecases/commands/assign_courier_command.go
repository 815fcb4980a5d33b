package commands

import (
	"errors"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/pkg/guard"
)

var ErrAssignCourierCommandIsNotConstructed = errors.New(
	"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
)

// AssignCourierCommand represents a request to attach a courier (motoboy) to
// an order. Orders still in an early stage advance to waiting_motoboy; orders
// already past that point only get the courier reference.
type AssignCourierCommand struct { //nolint:recvcheck //using for validation
	tenantID  kernel.UUID
	actorID   kernel.UUID
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignCourierCommand creates a command to assign a courier to an order.
func NewAssignCourierCommand(
	tenantID, actorID, orderID, courierID kernel.UUID,
) (AssignCourierCommand, error) {
	cmd := AssignCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		tenantID.Validate(),
		actorID.Validate(),
		orderID.Validate(),
		courierID.Validate(),
	); err != nil {
		return AssignCourierCommand{}, err
	}

	cmd.tenantID = tenantID
	cmd.actorID = actorID
	cmd.orderID = orderID
	cmd.courierID = courierID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierCommandIsNotConstructed)
}

// TenantID returns the tenant the order belongs to.
func (c AssignCourierCommand) TenantID() kernel.UUID { return c.tenantID }

// ActorID returns who performs the assignment.
func (c AssignCourierCommand) ActorID() kernel.UUID { return c.actorID }

// OrderID returns the order to assign the courier to.
func (c AssignCourierCommand) OrderID() kernel.UUID { return c.orderID }

// CourierID returns the courier being assigned.
func (c AssignCourierCommand) CourierID() kernel.UUID { return c.courierID }
