package commands_test

import (
	"context"
	"time"

	"comanda/internal/core/application/usecases/commands"
	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/loyalty"
	"comanda/internal/core/domain/model/order"
	"comanda/internal/core/domain/model/stock"
	"comanda/internal/core/domain/model/table"
	"comanda/internal/core/domain/model/tenant"

	"comanda/internal/core/domain/model/audit"
	"comanda/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) NextNumber(ctx context.Context, tenantID kernel.UUID) (int, error) {
	args := m.Called(ctx, tenantID)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) AddPayment(ctx context.Context, payment *order.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

type MockTableRepository struct{ mock.Mock }

func (m *MockTableRepository) Add(ctx context.Context, t *table.Table) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTableRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*table.Table, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*table.Table), args.Error(1)
}

func (m *MockTableRepository) Occupy(ctx context.Context, tenantID, tableID, orderID kernel.UUID, occupiedAt time.Time) error {
	args := m.Called(ctx, tenantID, tableID, orderID, occupiedAt)
	return args.Error(0)
}

func (m *MockTableRepository) Free(ctx context.Context, tenantID, tableID kernel.UUID) error {
	args := m.Called(ctx, tenantID, tableID)
	return args.Error(0)
}

func (m *MockTableRepository) GetAllOccupied(ctx context.Context) ([]*table.Table, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*table.Table), args.Error(1)
}

type MockStockLedger struct{ mock.Mock }

func (m *MockStockLedger) Record(ctx context.Context, movement *stock.Movement) (int, error) {
	args := m.Called(ctx, movement)
	return args.Int(0), args.Error(1)
}

func (m *MockStockLedger) MovementsForOrder(ctx context.Context, tenantID, orderID kernel.UUID) ([]*stock.Movement, error) {
	args := m.Called(ctx, tenantID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*stock.Movement), args.Error(1)
}

type MockLoyaltyLedger struct{ mock.Mock }

func (m *MockLoyaltyLedger) Customer(ctx context.Context, tenantID, id kernel.UUID) (*loyalty.Customer, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*loyalty.Customer), args.Error(1)
}

func (m *MockLoyaltyLedger) Append(ctx context.Context, entry *loyalty.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockAuditTrail struct{ mock.Mock }

func (m *MockAuditTrail) Append(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockCatalogReader struct{ mock.Mock }

func (m *MockCatalogReader) Product(ctx context.Context, tenantID, id kernel.UUID) (*ports.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.Product), args.Error(1)
}

func (m *MockCatalogReader) ComplementOption(ctx context.Context, tenantID, id kernel.UUID) (*ports.ComplementOption, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.ComplementOption), args.Error(1)
}

type MockTenantReader struct{ mock.Mock }

func (m *MockTenantReader) Get(ctx context.Context, id kernel.UUID) (*tenant.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.Tenant), args.Error(1)
}

type MockCacheInvalidator struct{ mock.Mock }

func (m *MockCacheInvalidator) Invalidate(ctx context.Context, tenantID kernel.UUID) {
	m.Called(ctx, tenantID)
}

// MockUnitOfWork satisfies every narrow unit of work interface in the
// package; each test wires expectations for only the accessors its
// handler touches.
type MockUnitOfWork struct{ mock.Mock }

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUnitOfWork) TableRepository() ports.TableRepository {
	args := m.Called()
	return args.Get(0).(ports.TableRepository)
}

func (m *MockUnitOfWork) StockLedger() ports.StockLedger {
	args := m.Called()
	return args.Get(0).(ports.StockLedger)
}

func (m *MockUnitOfWork) LoyaltyLedger() ports.LoyaltyLedger {
	args := m.Called()
	return args.Get(0).(ports.LoyaltyLedger)
}

func (m *MockUnitOfWork) AuditTrail() ports.AuditTrail {
	args := m.Called()
	return args.Get(0).(ports.AuditTrail)
}

func (m *MockUnitOfWork) CatalogReader() ports.CatalogReader {
	args := m.Called()
	return args.Get(0).(ports.CatalogReader)
}

func (m *MockUnitOfWork) TenantReader() ports.TenantReader {
	args := m.Called()
	return args.Get(0).(ports.TenantReader)
}

type MockCheckoutUoWFactory struct{ mock.Mock }

func (m *MockCheckoutUoWFactory) Create() commands.CheckoutUoW {
	args := m.Called()
	return args.Get(0).(commands.CheckoutUoW)
}

type MockOpenTableUoWFactory struct{ mock.Mock }

func (m *MockOpenTableUoWFactory) Create() commands.OpenTableUoW {
	args := m.Called()
	return args.Get(0).(commands.OpenTableUoW)
}

type MockTableOrderUoWFactory struct{ mock.Mock }

func (m *MockTableOrderUoWFactory) Create() commands.TableOrderUoW {
	args := m.Called()
	return args.Get(0).(commands.TableOrderUoW)
}

type MockTableItemsUoWFactory struct{ mock.Mock }

func (m *MockTableItemsUoWFactory) Create() commands.TableItemsUoW {
	args := m.Called()
	return args.Get(0).(commands.TableItemsUoW)
}

type MockCloseTableUoWFactory struct{ mock.Mock }

func (m *MockCloseTableUoWFactory) Create() commands.CloseTableUoW {
	args := m.Called()
	return args.Get(0).(commands.CloseTableUoW)
}

type MockOrderItemsUoWFactory struct{ mock.Mock }

func (m *MockOrderItemsUoWFactory) Create() commands.OrderItemsUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderItemsUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCancelOrderUoWFactory struct{ mock.Mock }

func (m *MockCancelOrderUoWFactory) Create() commands.CancelOrderUoW {
	args := m.Called()
	return args.Get(0).(commands.CancelOrderUoW)
}
