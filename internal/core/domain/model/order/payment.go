package order

import (
	"errors"
	"time"

	"comanda/internal/core/domain/model/kernel"
)

// ErrPaymentIsNotConstructed is returned when a Payment was not created via NewPayment.
var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")

// Payment is the record of a single payment taken for an order. Exactly one
// payment is recorded per order: at checkout for counter and storefront sales,
// at table closure for dine-in (creation of a table order records none).
type Payment struct {
	id       kernel.UUID
	tenantID kernel.UUID
	orderID  kernel.UUID
	method   PaymentMethod
	amount   kernel.Money

	createdAt time.Time

	isConstructed bool
}

// NewPayment creates a payment record for an order's total.
func NewPayment(
	id kernel.UUID,
	tenantID kernel.UUID,
	orderID kernel.UUID,
	method PaymentMethod,
	amount kernel.Money,
	createdAt time.Time,
) (*Payment, error) {
	if err := errors.Join(
		id.Validate(),
		tenantID.Validate(),
		orderID.Validate(),
		method.Validate(),
		amount.ValidateNonNegative("payment amount"),
	); err != nil {
		return nil, err
	}

	return &Payment{
		id:            id,
		tenantID:      tenantID,
		orderID:       orderID,
		method:        method,
		amount:        amount,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Payment was created via NewPayment.
func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

// ID returns the payment identifier.
func (p *Payment) ID() kernel.UUID { return p.id }

// TenantID returns the owning tenant.
func (p *Payment) TenantID() kernel.UUID { return p.tenantID }

// OrderID returns the paid order.
func (p *Payment) OrderID() kernel.UUID { return p.orderID }

// Method returns how the payment was made.
func (p *Payment) Method() PaymentMethod { return p.method }

// Amount returns the paid amount.
func (p *Payment) Amount() kernel.Money { return p.amount }

// CreatedAt returns when the payment was recorded.
func (p *Payment) CreatedAt() time.Time { return p.createdAt }
