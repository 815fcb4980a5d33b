// Package services contains stateless domain services that coordinate
// behavior across aggregates without owning state of their own.
package services

import (
	"time"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/order"
)

// TransitionResult describes the outcome of a state-machine operation.
// OldStatus/NewStatus feed the audit trail's before/after fragments.
type TransitionResult struct {
	Changed   bool
	OldStatus order.Status
	NewStatus order.Status
}

// OrderStateMachine validates and performs status transitions on an order
// aggregate. Enforcement is strict: a move outside the transition table is a
// business-rule violation, never silently applied. Transitioning to the
// current status and re-cancelling a cancelled order are no-ops
// (Changed == false), so callers can skip duplicate audit entries and
// duplicate compensation.
type OrderStateMachine struct{}

// NewOrderStateMachine creates the stateless state machine service.
func NewOrderStateMachine() OrderStateMachine {
	return OrderStateMachine{}
}

// Transition moves the order to the target status.
func (OrderStateMachine) Transition(o *order.Order, target order.Status) (TransitionResult, error) {
	if err := o.Validate(); err != nil {
		return TransitionResult{}, err
	}

	old := o.Status()
	changed, err := o.TransitionTo(target)
	if err != nil {
		return TransitionResult{}, err
	}

	return TransitionResult{Changed: changed, OldStatus: old, NewStatus: o.Status()}, nil
}

// AssignCourier sets the courier on the order and, for orders still in an
// early stage, advances the status to waiting_motoboy. Orders already past
// that point keep their status.
func (OrderStateMachine) AssignCourier(o *order.Order, courierID kernel.UUID) (TransitionResult, error) {
	if err := o.Validate(); err != nil {
		return TransitionResult{}, err
	}

	old := o.Status()
	changed, err := o.AssignCourier(courierID)
	if err != nil {
		return TransitionResult{}, err
	}

	return TransitionResult{Changed: changed, OldStatus: old, NewStatus: o.Status()}, nil
}

// Cancel moves the order to cancelled with reason and timestamp.
// Idempotent: an already-cancelled order yields Changed == false.
func (OrderStateMachine) Cancel(o *order.Order, reason string, at time.Time) (TransitionResult, error) {
	if err := o.Validate(); err != nil {
		return TransitionResult{}, err
	}

	old := o.Status()
	changed, err := o.Cancel(reason, at)
	if err != nil {
		return TransitionResult{}, err
	}

	return TransitionResult{Changed: changed, OldStatus: old, NewStatus: o.Status()}, nil
}
