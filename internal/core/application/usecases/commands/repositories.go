// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"comanda/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest composition it actually needs, so
// tests mock only the repositories a command touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// TableRepoFactory provides access to the table repository within a transaction.
	TableRepoFactory interface {
		TableRepository() ports.TableRepository
	}

	// StockLedgerFactory provides access to the stock ledger within a transaction.
	StockLedgerFactory interface {
		StockLedger() ports.StockLedger
	}

	// LoyaltyLedgerFactory provides access to the loyalty ledger within a transaction.
	LoyaltyLedgerFactory interface {
		LoyaltyLedger() ports.LoyaltyLedger
	}

	// AuditTrailFactory provides access to the audit trail within a transaction.
	AuditTrailFactory interface {
		AuditTrail() ports.AuditTrail
	}

	// CatalogReaderFactory provides access to the catalog reader within a transaction.
	CatalogReaderFactory interface {
		CatalogReader() ports.CatalogReader
	}

	// TenantReaderFactory provides access to the tenant reader within a transaction.
	TenantReaderFactory interface {
		TenantReader() ports.TenantReader
	}

	// CheckoutUoW manages the full checkout transaction: order creation, stock
	// decrement, payment, loyalty accrual and optional table occupation.
	CheckoutUoW interface {
		TxManager
		OrderRepoFactory
		TableRepoFactory
		StockLedgerFactory
		LoyaltyLedgerFactory
		AuditTrailFactory
		CatalogReaderFactory
		TenantReaderFactory
	}

	// CheckoutUoWFactory creates checkout unit of work instances.
	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// OpenTableUoW manages the table-opening transaction: order creation,
	// occupancy binding and linked-customer lookup for the display name.
	OpenTableUoW interface {
		TxManager
		OrderRepoFactory
		TableRepoFactory
		LoyaltyLedgerFactory
		AuditTrailFactory
	}

	// OpenTableUoWFactory creates open-table unit of work instances.
	OpenTableUoWFactory interface {
		Create() OpenTableUoW
	}

	// TableOrderUoW manages transactions that bind orders to tables
	// (transfer, sweep).
	TableOrderUoW interface {
		TxManager
		OrderRepoFactory
		TableRepoFactory
		AuditTrailFactory
	}

	// TableOrderUoWFactory creates table/order unit of work instances.
	TableOrderUoWFactory interface {
		Create() TableOrderUoW
	}

	// TableItemsUoW manages the add-items-to-table transaction: catalog
	// snapshots, order update and stock decrement.
	TableItemsUoW interface {
		TxManager
		OrderRepoFactory
		TableRepoFactory
		StockLedgerFactory
		AuditTrailFactory
		CatalogReaderFactory
	}

	// TableItemsUoWFactory creates table-items unit of work instances.
	TableItemsUoWFactory interface {
		Create() TableItemsUoW
	}

	// CloseTableUoW manages the table closure transaction: final status,
	// payment, loyalty accrual and table release.
	CloseTableUoW interface {
		TxManager
		OrderRepoFactory
		TableRepoFactory
		LoyaltyLedgerFactory
		AuditTrailFactory
		TenantReaderFactory
	}

	// CloseTableUoWFactory creates close-table unit of work instances.
	CloseTableUoWFactory interface {
		Create() CloseTableUoW
	}

	// OrderItemsUoW manages the storefront order-edit transaction:
	// item reconciliation plus stock decrement for quantity increases.
	OrderItemsUoW interface {
		TxManager
		OrderRepoFactory
		StockLedgerFactory
		AuditTrailFactory
		CatalogReaderFactory
	}

	// OrderItemsUoWFactory creates order-items unit of work instances.
	OrderItemsUoWFactory interface {
		Create() OrderItemsUoW
	}

	// OrderUoW manages transactions for order-only mutations
	// (status transition, courier assignment).
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		AuditTrailFactory
	}

	// OrderUoWFactory creates order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CancelOrderUoW manages the cancellation transaction: status change plus
	// stock and loyalty compensation.
	CancelOrderUoW interface {
		TxManager
		OrderRepoFactory
		StockLedgerFactory
		LoyaltyLedgerFactory
		AuditTrailFactory
	}

	// CancelOrderUoWFactory creates cancellation unit of work instances.
	CancelOrderUoWFactory interface {
		Create() CancelOrderUoW
	}
)
