// Package cachesignal emits the catalog cache invalidation signal fired after
// operations that change product availability. The rendered menu cache lives
// in a separate service; this adapter only announces that it became stale.
package cachesignal

import (
	"context"
	"log/slog"

	"comanda/internal/core/domain/model/kernel"
)

// SlogCatalogCacheInvalidator implements ports.CatalogCacheInvalidator by
// logging the invalidation event. The log line is the integration point the
// menu-rendering service tails; swapping this for a message-bus publisher
// changes nothing in the handlers.
type SlogCatalogCacheInvalidator struct {
	logger *slog.Logger
}

// NewSlogCatalogCacheInvalidator creates an invalidator writing to the given logger.
func NewSlogCatalogCacheInvalidator(logger *slog.Logger) *SlogCatalogCacheInvalidator {
	return &SlogCatalogCacheInvalidator{
		logger: logger.With("component", "catalog_cache"),
	}
}

// Invalidate announces that the tenant's rendered menu cache is stale.
// Fired after commit; failures to signal must never fail the operation, so
// the method has no error return.
func (i *SlogCatalogCacheInvalidator) Invalidate(ctx context.Context, tenantID kernel.UUID) {
	i.logger.InfoContext(ctx, "catalog cache invalidated", "tenant_id", tenantID.String())
}
