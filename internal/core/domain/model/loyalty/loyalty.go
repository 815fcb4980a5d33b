// Package loyalty provides the loyalty-point ledger entry and the customer
// read model it applies to.
//
// A customer's point balance equals the sum of their ledger entries. The
// balance column on the customer row is denormalized for fast reads and is
// adjusted with a guarded update that never lets it go below zero.
package loyalty

import (
	"errors"
	"time"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/pkg/errs"
)

// ErrEntryIsNotConstructed is returned when an Entry was not created via NewEntry.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

// Entry is one immutable, signed loyalty-point ledger record for a customer.
// Accruals are positive, redemptions and compensations negative.
type Entry struct {
	id         kernel.UUID
	tenantID   kernel.UUID
	customerID kernel.UUID

	points      int
	description string
	orderID     *kernel.UUID

	createdAt time.Time

	isConstructed bool
}

// NewEntry creates a ledger entry. Points must be non-zero; description is
// the user-facing reason line shown in the customer's history.
func NewEntry(
	id, tenantID, customerID kernel.UUID,
	points int,
	description string,
	orderID *kernel.UUID,
	createdAt time.Time,
) (*Entry, error) {
	if err := errors.Join(
		id.Validate(),
		tenantID.Validate(),
		customerID.Validate(),
	); err != nil {
		return nil, err
	}
	if points == 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("points", errors.New("delta must be non-zero"))
	}
	if description == "" {
		return nil, errs.NewValueIsRequiredError("description")
	}
	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return nil, err
		}
	}

	return &Entry{
		id:            id,
		tenantID:      tenantID,
		customerID:    customerID,
		points:        points,
		description:   description,
		orderID:       orderID,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Entry was created via NewEntry.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry identifier.
func (e *Entry) ID() kernel.UUID { return e.id }

// TenantID returns the owning tenant.
func (e *Entry) TenantID() kernel.UUID { return e.tenantID }

// CustomerID returns the customer whose balance the entry affects.
func (e *Entry) CustomerID() kernel.UUID { return e.customerID }

// Points returns the signed point delta.
func (e *Entry) Points() int { return e.points }

// Description returns the history line for the entry.
func (e *Entry) Description() string { return e.description }

// OrderID returns the linked order, nil when not order-driven.
func (e *Entry) OrderID() *kernel.UUID { return e.orderID }

// CreatedAt returns when the entry was recorded.
func (e *Entry) CreatedAt() time.Time { return e.createdAt }

// Customer is the read model of a customer consumed by order creation:
// denormalized display data plus the current point balance.
type Customer struct {
	ID            kernel.UUID
	TenantID      kernel.UUID
	Name          string
	Phone         string
	LoyaltyPoints int
}
