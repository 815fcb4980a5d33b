package kernel

import (
	"fmt"

	"comanda/internal/pkg/errs"
)

// Money is a value object representing a monetary amount in integer centavos.
// All monetary arithmetic in the system happens on Money so that invariants
// like "total == subtotal + delivery fee" hold exactly, with no floating-point
// drift. Negative amounts are representable (ledger deltas) but most call
// sites reject them explicitly.
//
// Example usage:
//
//	price := kernel.NewMoneyFromCents(1000) // R$ 10.00
//	total := price.Mul(2)                   // R$ 20.00
//	fmt.Println(total.String())             // "20.00"
type Money int64

// NewMoneyFromCents creates a Money from an amount in centavos.
func NewMoneyFromCents(cents int64) Money {
	return Money(cents)
}

// Cents returns the amount in centavos.
func (m Money) Cents() int64 {
	return int64(m)
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return m + other
}

// Sub returns the difference of two amounts.
func (m Money) Sub(other Money) Money {
	return m - other
}

// Mul returns the amount multiplied by an integer quantity.
func (m Money) Mul(qty int) Money {
	return m * Money(qty)
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m < 0
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m == 0
}

// Points converts the amount into loyalty points using a points-per-currency
// rate, truncating toward zero: floor(amount * rate) for non-negative amounts.
// The rate is expressed in points per whole currency unit.
func (m Money) Points(pointsPerCurrency int) int {
	return int(m.Cents() * int64(pointsPerCurrency) / 100)
}

// ValidateNonNegative returns an error when the amount is negative.
// Used by aggregates whose monetary fields must never go below zero.
func (m Money) ValidateNonNegative(paramName string) error {
	if m.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%d centavos is negative", m.Cents()))
	}
	return nil
}

// String formats the amount as a decimal with two fraction digits.
func (m Money) String() string {
	cents := m.Cents()
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
