package order

import (
	"fmt"

	"comanda/internal/pkg/errs"
)

// Mode is the fulfillment mode of an order.
type Mode int

const (
	// ModeUnknown represents an invalid or undefined mode.
	ModeUnknown Mode = iota

	// ModeDelivery orders are delivered by a courier and may carry a delivery fee.
	ModeDelivery

	// ModePickup orders are collected by the customer at the counter.
	ModePickup

	// ModeTable orders belong to a dine-in table; payment is deferred to
	// table closure.
	ModeTable
)

func getModeStrings() map[Mode]string {
	return map[Mode]string{
		ModeUnknown:  "unknown",
		ModeDelivery: "delivery",
		ModePickup:   "pickup",
		ModeTable:    "table",
	}
}

// ModeFromString parses a mode from its wire representation.
func ModeFromString(s string) (Mode, error) {
	for mode, str := range getModeStrings() {
		if str == s && mode != ModeUnknown {
			return mode, nil
		}
	}
	return ModeUnknown, errs.NewValueIsInvalidErrorWithCause("mode", fmt.Errorf("%q is not a valid mode", s))
}

// Validate checks if the Mode value is valid.
func (m Mode) Validate() error {
	if m != ModeDelivery && m != ModePickup && m != ModeTable {
		return errs.NewValueIsInvalidErrorWithCause("mode", fmt.Errorf("%d is not a valid mode", int(m)))
	}
	return nil
}

// String returns the wire name of the mode.
func (m Mode) String() string {
	if str, ok := getModeStrings()[m]; ok {
		return str
	}
	return "unknown"
}

// PaymentStatus tracks whether an order has been paid for.
type PaymentStatus int

const (
	// PaymentStatusUnknown represents an invalid or undefined payment status.
	PaymentStatusUnknown PaymentStatus = iota

	// PaymentPending means no payment has been recorded yet
	// (table orders stay pending until the table is closed).
	PaymentPending

	// PaymentPaid means a payment record exists for the order.
	PaymentPaid
)

// Validate checks if the PaymentStatus value is valid.
func (p PaymentStatus) Validate() error {
	if p != PaymentPending && p != PaymentPaid {
		return errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%d is not a valid payment status", int(p)))
	}
	return nil
}

// String returns the wire name of the payment status.
func (p PaymentStatus) String() string {
	switch p {
	case PaymentPending:
		return "pending"
	case PaymentPaid:
		return "paid"
	default:
		return "unknown"
	}
}

// PaymentMethod identifies how an order was paid.
type PaymentMethod int

const (
	// PaymentMethodUnknown represents an invalid or undefined payment method.
	PaymentMethodUnknown PaymentMethod = iota

	// PaymentCash is a cash payment at the counter or table.
	PaymentCash

	// PaymentCreditCard is a credit card payment.
	PaymentCreditCard

	// PaymentDebitCard is a debit card payment.
	PaymentDebitCard

	// PaymentPix is an instant bank transfer payment.
	PaymentPix
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		PaymentMethodUnknown: "unknown",
		PaymentCash:          "cash",
		PaymentCreditCard:    "credit_card",
		PaymentDebitCard:     "debit_card",
		PaymentPix:           "pix",
	}
}

// PaymentMethodFromString parses a payment method from its wire representation.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	for method, str := range getPaymentMethodStrings() {
		if str == s && method != PaymentMethodUnknown {
			return method, nil
		}
	}
	return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment method", fmt.Errorf("%q is not a valid payment method", s))
}

// Validate checks if the PaymentMethod value is valid.
func (pm PaymentMethod) Validate() error {
	if _, ok := getPaymentMethodStrings()[pm]; !ok || pm == PaymentMethodUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment method", fmt.Errorf("%d is not a valid payment method", int(pm)))
	}
	return nil
}

// String returns the wire name of the payment method.
func (pm PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[pm]; ok {
		return str
	}
	return "unknown"
}
