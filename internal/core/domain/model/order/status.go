package order

import (
	"fmt"

	"comanda/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions so that orders follow
// the operational workflow from the kitchen to the customer.
//
// State transitions:
//
//	new ──> preparing ──> ready ─────────────┬──> delivered
//	            │           │                │
//	            │           v                │
//	            └──> waiting_motoboy <───────┘
//	                        │
//	                        v
//	                 motoboy_accepted ──> out_for_delivery ──> delivered
//
// cancelled is reachable from every non-terminal state. delivered and
// cancelled are terminal: no outgoing transitions.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusNew is the initial status of a freshly created order.
	StatusNew

	// StatusPreparing indicates the kitchen has started the order.
	// Dine-in orders are created directly in this status.
	StatusPreparing

	// StatusReady indicates the order is ready for handoff.
	StatusReady

	// StatusWaitingMotoboy indicates the order awaits a courier to accept it.
	StatusWaitingMotoboy

	// StatusMotoboyAccepted indicates a courier accepted the delivery.
	StatusMotoboyAccepted

	// StatusOutForDelivery indicates the courier is en route.
	StatusOutForDelivery

	// StatusDelivered is the successful terminal status.
	StatusDelivered

	// StatusCancelled is the terminal status of a cancelled order.
	// Orders are never hard-deleted; cancellation is a status, not removal.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:         "unknown",
		StatusNew:             "new",
		StatusPreparing:       "preparing",
		StatusReady:           "ready",
		StatusWaitingMotoboy:  "waiting_motoboy",
		StatusMotoboyAccepted: "motoboy_accepted",
		StatusOutForDelivery:  "out_for_delivery",
		StatusDelivered:       "delivered",
		StatusCancelled:       "cancelled",
	}
}

// allowedTransitions is the full transition table of the order state machine.
// Terminal statuses map to an empty set.
func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusNew:             {StatusPreparing, StatusCancelled},
		StatusPreparing:       {StatusReady, StatusWaitingMotoboy, StatusCancelled},
		StatusReady:           {StatusWaitingMotoboy, StatusOutForDelivery, StatusDelivered, StatusCancelled},
		StatusWaitingMotoboy:  {StatusMotoboyAccepted, StatusReady, StatusCancelled},
		StatusMotoboyAccepted: {StatusOutForDelivery, StatusCancelled},
		StatusOutForDelivery:  {StatusDelivered, StatusCancelled},
		StatusDelivered:       {},
		StatusCancelled:       {},
	}
}

// StatusFromString parses a status from its wire representation.
// Returns an error for unknown values.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// StatusUnknown (0) and values outside the enum are invalid.
func (s Status) Validate() error {
	if _, ok := allowedTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", int(s)))
	}
	return nil
}

// String returns the wire name of the status ("unknown" for invalid values).
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether moving to the target status is allowed by
// the transition table. A same-status move is not a transition and returns false.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range allowedTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo validates and performs a transition, returning the new status.
//
// Enforcement is strict: a move that is not in the transition table is
// rejected with a BusinessRuleViolatedError rather than applied.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return StatusUnknown, err
	}

	if !s.CanTransitionTo(target) {
		return StatusUnknown, errs.NewBusinessRuleViolatedErrorWithCause(
			"status transition is not allowed",
			fmt.Errorf("cannot move order from %s to %s", s, target),
		)
	}

	return target, nil
}
