// Package postgres provides the GORM-based implementation of the Unit of Work
// pattern. A unit of work wraps one business transaction: every multi-entity
// write (order creation, cancellation compensation, table transfer) runs
// inside one instance so partial failures roll back completely.
//
// Each UnitOfWork instance owns its own transaction state; concurrent
// operations must use separate instances created by the factory.
package postgres

import (
	"context"

	"comanda/internal/adapters/out/postgres/auditrepo"
	"comanda/internal/adapters/out/postgres/catalogrepo"
	"comanda/internal/adapters/out/postgres/loyaltyrepo"
	"comanda/internal/adapters/out/postgres/orderrepo"
	"comanda/internal/adapters/out/postgres/stockrepo"
	"comanda/internal/adapters/out/postgres/tablerepo"
	"comanda/internal/adapters/out/postgres/tenantrepo"
	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
// Kept for post-commit processing such as firing the catalog cache signal.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate interface{}
}

// GormUnitOfWorkFactory creates UnitOfWork instances backed by a shared GORM
// database connection. Each business operation gets a fresh instance.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready for transaction management.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction across the repositories
// it hands out. Repositories returned before Begin use the base connection;
// after Begin they are bound to the transaction.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a database transaction. Calling Begin on an instance with
// an active transaction is a no-op; nested transactions are never created.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction if no transaction is active, which makes
// the deferred rollback after a successful commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// OrderRepository returns an order repository bound to the current transaction.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// TableRepository returns a table repository bound to the current transaction.
func (uow *GormUnitOfWork) TableRepository() ports.TableRepository {
	return tablerepo.NewGormTableRepository(uow.conn(), uow)
}

// StockLedger returns a stock ledger bound to the current transaction.
func (uow *GormUnitOfWork) StockLedger() ports.StockLedger {
	return stockrepo.NewGormStockLedger(uow.conn())
}

// LoyaltyLedger returns a loyalty ledger bound to the current transaction.
func (uow *GormUnitOfWork) LoyaltyLedger() ports.LoyaltyLedger {
	return loyaltyrepo.NewGormLoyaltyLedger(uow.conn())
}

// AuditTrail returns an audit trail bound to the current transaction.
func (uow *GormUnitOfWork) AuditTrail() ports.AuditTrail {
	return auditrepo.NewGormAuditTrail(uow.conn())
}

// CatalogReader returns a catalog reader bound to the current transaction.
func (uow *GormUnitOfWork) CatalogReader() ports.CatalogReader {
	return catalogrepo.NewGormCatalogReader(uow.conn())
}

// TenantReader returns a tenant reader bound to the current transaction.
func (uow *GormUnitOfWork) TenantReader() ports.TenantReader {
	return tenantrepo.NewGormTenantReader(uow.conn())
}

// TrackAggregate registers a domain aggregate as modified within this unit of
// work. Repositories call it on Add/Update so post-commit activities can see
// what changed.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
