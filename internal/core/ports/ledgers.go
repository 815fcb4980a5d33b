package ports

import (
	"context"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/loyalty"
	"comanda/internal/core/domain/model/stock"
)

// StockLedger records signed inventory movements and maintains the
// denormalized on-hand quantity. The ledger is append-only; the sum of all
// movements for a product equals its current on-hand quantity.
type StockLedger interface {
	// Record appends a movement and applies its delta to the product's (or
	// ingredient's) denormalized on-hand quantity in the same statement
	// sequence. Returns the resulting on-hand quantity so callers can detect
	// availability changes (stock hitting or leaving zero).
	Record(ctx context.Context, movement *stock.Movement) (onHand int, err error)

	// MovementsForOrder retrieves all movements linked to an order.
	// Cancellation uses this to write exact compensating restocks.
	MovementsForOrder(ctx context.Context, tenantID, orderID kernel.UUID) ([]*stock.Movement, error)
}

// LoyaltyLedger manages per-customer loyalty points: an append-only entry
// history plus the denormalized balance on the customer row.
//
// Balance reads used for validation are optimistic (no global lock); the
// balance update itself is guarded so it never goes below zero.
type LoyaltyLedger interface {
	// Customer retrieves the customer read model with its current balance.
	Customer(ctx context.Context, tenantID, id kernel.UUID) (*loyalty.Customer, error)

	// Append records a ledger entry and applies its delta to the customer's
	// balance, clamped at zero.
	Append(ctx context.Context, entry *loyalty.Entry) error
}
