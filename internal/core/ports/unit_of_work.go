package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Every multi-entity write (order creation, cancellation compensation, table
// transfer) runs inside one unit of work so partial failures roll back
// completely. Client code must explicitly manage the transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// TableRepository returns a TableRepository bound to the current transaction.
	TableRepository() TableRepository

	// StockLedger returns a StockLedger bound to the current transaction.
	StockLedger() StockLedger

	// LoyaltyLedger returns a LoyaltyLedger bound to the current transaction.
	LoyaltyLedger() LoyaltyLedger

	// AuditTrail returns an AuditTrail bound to the current transaction.
	AuditTrail() AuditTrail

	// CatalogReader returns a CatalogReader bound to the current transaction.
	CatalogReader() CatalogReader

	// TenantReader returns a TenantReader bound to the current transaction.
	TenantReader() TenantReader
}
