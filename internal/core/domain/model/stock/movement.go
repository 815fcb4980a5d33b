// Package stock provides the immutable inventory movement ledger entry.
//
// The ledger is the source of truth for on-hand quantities: summing all
// movement deltas for a product yields its current stock. The denormalized
// quantity on the product row exists for fast reads only.
package stock

import (
	"errors"
	"fmt"
	"time"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/pkg/errs"
)

// ErrMovementIsNotConstructed is returned when a Movement was not created via NewMovement.
var ErrMovementIsNotConstructed = errors.New("Movement must be created via NewMovement constructor")

// Reason tags why a stock movement happened.
type Reason int

const (
	// ReasonUnknown represents an invalid or undefined reason.
	ReasonUnknown Reason = iota

	// ReasonSale is an automatic decrement linked to an order.
	ReasonSale

	// ReasonPurchase is an increment from received supply.
	ReasonPurchase

	// ReasonAdjustment is a correction, including the compensating restock
	// written when an order is cancelled.
	ReasonAdjustment

	// ReasonManual is an operator-entered movement.
	ReasonManual
)

func getReasonStrings() map[Reason]string {
	return map[Reason]string{
		ReasonUnknown:    "unknown",
		ReasonSale:       "sale",
		ReasonPurchase:   "purchase",
		ReasonAdjustment: "adjustment",
		ReasonManual:     "manual",
	}
}

// Validate checks if the Reason value is valid.
func (r Reason) Validate() error {
	if r != ReasonSale && r != ReasonPurchase && r != ReasonAdjustment && r != ReasonManual {
		return errs.NewValueIsInvalidErrorWithCause("movement reason", fmt.Errorf("%d is not a valid reason", int(r)))
	}
	return nil
}

// String returns the wire name of the reason.
func (r Reason) String() string {
	if str, ok := getReasonStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Movement is one immutable, signed inventory ledger entry for a product or
// ingredient. Negative quantities decrement stock, positive ones restock.
type Movement struct {
	id       kernel.UUID
	tenantID kernel.UUID

	// Exactly one of productID / ingredientID is set.
	productID    *kernel.UUID
	ingredientID *kernel.UUID

	quantity int
	reason   Reason
	orderID  *kernel.UUID
	actorID  kernel.UUID

	createdAt time.Time

	isConstructed bool
}

// NewProductMovement creates a ledger entry against a product.
func NewProductMovement(
	id, tenantID, productID kernel.UUID,
	quantity int,
	reason Reason,
	orderID *kernel.UUID,
	actorID kernel.UUID,
	createdAt time.Time,
) (*Movement, error) {
	m, err := newMovement(id, tenantID, quantity, reason, orderID, actorID, createdAt)
	if err != nil {
		return nil, err
	}
	if err := productID.Validate(); err != nil {
		return nil, err
	}
	m.productID = &productID
	return m, nil
}

// NewIngredientMovement creates a ledger entry against an ingredient.
func NewIngredientMovement(
	id, tenantID, ingredientID kernel.UUID,
	quantity int,
	reason Reason,
	orderID *kernel.UUID,
	actorID kernel.UUID,
	createdAt time.Time,
) (*Movement, error) {
	m, err := newMovement(id, tenantID, quantity, reason, orderID, actorID, createdAt)
	if err != nil {
		return nil, err
	}
	if err := ingredientID.Validate(); err != nil {
		return nil, err
	}
	m.ingredientID = &ingredientID
	return m, nil
}

func newMovement(
	id, tenantID kernel.UUID,
	quantity int,
	reason Reason,
	orderID *kernel.UUID,
	actorID kernel.UUID,
	createdAt time.Time,
) (*Movement, error) {
	if err := errors.Join(
		id.Validate(),
		tenantID.Validate(),
		reason.Validate(),
		actorID.Validate(),
	); err != nil {
		return nil, err
	}
	if quantity == 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("movement quantity", errors.New("delta must be non-zero"))
	}
	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return nil, err
		}
	}

	return &Movement{
		id:            id,
		tenantID:      tenantID,
		quantity:      quantity,
		reason:        reason,
		orderID:       orderID,
		actorID:       actorID,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Movement was created via a constructor.
func (m *Movement) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMovementIsNotConstructed
	}
	return nil
}

// ID returns the movement identifier.
func (m *Movement) ID() kernel.UUID { return m.id }

// TenantID returns the owning tenant.
func (m *Movement) TenantID() kernel.UUID { return m.tenantID }

// ProductID returns the product the movement applies to, nil for ingredient movements.
func (m *Movement) ProductID() *kernel.UUID { return m.productID }

// IngredientID returns the ingredient the movement applies to, nil for product movements.
func (m *Movement) IngredientID() *kernel.UUID { return m.ingredientID }

// Quantity returns the signed stock delta.
func (m *Movement) Quantity() int { return m.quantity }

// Reason returns why the movement happened.
func (m *Movement) Reason() Reason { return m.reason }

// OrderID returns the linked order, nil when not order-driven.
func (m *Movement) OrderID() *kernel.UUID { return m.orderID }

// ActorID returns who caused the movement.
func (m *Movement) ActorID() kernel.UUID { return m.actorID }

// CreatedAt returns when the movement was recorded.
func (m *Movement) CreatedAt() time.Time { return m.createdAt }
