package ports

import (
	"context"

	"comanda/internal/core/domain/model/audit"
)

// AuditTrail appends actor-attributed domain event records. Entries are
// written inside the same transaction as the change they describe.
type AuditTrail interface {
	Append(ctx context.Context, entry *audit.Entry) error
}
