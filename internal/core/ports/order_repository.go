package ports

import (
	"context"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// All lookups are tenant-scoped; an order owned by another tenant surfaces as
// errs.ObjectNotFoundError.
type OrderRepository interface {
	// Add persists a new order aggregate with its full item/complement tree.
	// A concurrent insert of the same (tenant, number) pair fails with
	// order.ErrNumberConflict; creation flows retry with a fresh number.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, reconciling the
	// item tree: rows absent from the aggregate are deleted, matching rows are
	// updated in place (complement children resynced), new rows are inserted.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items and complements.
	Get(ctx context.Context, tenantID, id kernel.UUID) (*order.Order, error)

	// NextNumber computes the next tenant-scoped sequential order number
	// (max + 1). The read is racy by itself; the unique index on
	// (tenant_id, number) plus retry-on-conflict makes allocation safe.
	NextNumber(ctx context.Context, tenantID kernel.UUID) (int, error)

	// AddPayment persists the payment record taken for an order.
	AddPayment(ctx context.Context, payment *order.Payment) error
}
