package ports

import (
	"context"
	"time"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/table"
)

// TableRepository defines the persistence contract for dine-in tables.
//
// The occupancy edge free->occupied is race-sensitive (two concurrent opens
// must not double-book a table), so it is exposed as a conditional Occupy
// rather than a plain Update of a pre-checked aggregate.
type TableRepository interface {
	// Add persists a new table.
	Add(ctx context.Context, aggregate *table.Table) error

	// Get retrieves a table by id, tenant-scoped.
	Get(ctx context.Context, tenantID, id kernel.UUID) (*table.Table, error)

	// Occupy atomically binds a free table to an order: a single conditional
	// update on status == free. Returns table.ErrTableIsNotFree when the
	// table was taken (or reserved) concurrently. occupiedAt is passed in so
	// transfers can preserve the original occupation time.
	Occupy(ctx context.Context, tenantID, tableID, orderID kernel.UUID, occupiedAt time.Time) error

	// Free releases a table unconditionally, clearing its order binding.
	// Freeing an already-free table is a no-op.
	Free(ctx context.Context, tenantID, tableID kernel.UUID) error

	// GetAllOccupied retrieves every occupied table across tenants.
	// Used by the occupancy sweep job to self-heal orphaned bindings.
	GetAllOccupied(ctx context.Context) ([]*table.Table, error)
}
