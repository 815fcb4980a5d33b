package ports

import (
	"context"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/tenant"
)

// Product is the catalog read model order creation snapshots prices from.
// Catalog management itself is outside this core.
type Product struct {
	ID       kernel.UUID
	TenantID kernel.UUID
	Name     string
	Price    kernel.Money

	// StockControlled gates whether sales write stock movements.
	StockControlled bool
	StockQuantity   int
}

// ComplementOption is the catalog read model for a selectable complement.
type ComplementOption struct {
	ID       kernel.UUID
	TenantID kernel.UUID
	Name     string
	Price    kernel.Money

	// MaxQuantity caps how many units of the option one item may select;
	// zero means unlimited.
	MaxQuantity int
}

// CatalogReader is the narrow read interface into the catalog collaborator.
type CatalogReader interface {
	Product(ctx context.Context, tenantID, id kernel.UUID) (*Product, error)
	ComplementOption(ctx context.Context, tenantID, id kernel.UUID) (*ComplementOption, error)
}

// TenantReader resolves tenant-level settings (loyalty program configuration).
type TenantReader interface {
	Get(ctx context.Context, id kernel.UUID) (*tenant.Tenant, error)
}

// CatalogCacheInvalidator is the signal fired after operations that change
// catalog-affecting state (stock hitting or leaving zero), so the rendered
// menu cache can be rebuilt. Fired after commit, outside the transaction.
type CatalogCacheInvalidator interface {
	Invalidate(ctx context.Context, tenantID kernel.UUID)
}
