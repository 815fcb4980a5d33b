package commands_test

import (
	"errors"
	"testing"

	"comanda/internal/core/application/usecases/commands"
	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/loyalty"
	"comanda/internal/core/domain/model/order"
	"comanda/internal/core/domain/model/tenant"
	"comanda/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pickupCheckoutCommand(t *testing.T, tenantID kernel.UUID, productID kernel.UUID) commands.CheckoutCommand {
	t.Helper()

	cmd, err := commands.NewCheckoutCommand(
		kernel.NewUUID(), tenantID, kernel.NewUUID(), order.ModePickup,
		nil, "João", "",
		kernel.NewMoneyFromCents(0), nil, order.PaymentCash,
		[]commands.ItemInput{{ProductID: productID, Quantity: 2}})
	require.NoError(t, err)
	return cmd
}

func TestCheckoutCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewUUID()
	productID := kernel.NewUUID()
	cmd := pickupCheckoutCommand(t, tenantID, productID)

	product := &ports.Product{
		ID: productID, TenantID: tenantID, Name: "X-Burger",
		Price: kernel.NewMoneyFromCents(2500), StockControlled: true,
	}

	repo := new(MockOrderRepository)
	ledger := new(MockStockLedger)
	catalog := new(MockCatalogReader)
	tenants := new(MockTenantReader)
	trail := new(MockAuditTrail)
	invalidator := new(MockCacheInvalidator)

	uow := new(MockUnitOfWork)
	uow.On("OrderRepository").Return(repo)
	uow.On("StockLedger").Return(ledger)
	uow.On("CatalogReader").Return(catalog)
	uow.On("TenantReader").Return(tenants)
	uow.On("AuditTrail").Return(trail)

	var added *order.Order
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		tenants.On("Get", ctx, tenantID).Return(&tenant.Tenant{ID: tenantID, Name: "Comanda"}, nil).Once(),
		repo.On("NextNumber", ctx, tenantID).Return(42, nil).Once(),
		catalog.On("Product", ctx, tenantID, productID).Return(product, nil).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Run(func(args mock.Arguments) {
			added = args.Get(1).(*order.Order)
		}).Return(nil).Once(),
		ledger.On("Record", ctx, mock.AnythingOfType("*stock.Movement")).Return(5, nil).Once(),
		repo.On("AddPayment", ctx, mock.AnythingOfType("*order.Payment")).Return(nil).Once(),
		trail.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCheckoutCommandHandler(factory, invalidator)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.NotNil(t, added)
	assert.Equal(t, 42, added.Number())
	assert.Equal(t, order.StatusNew, added.Status())
	assert.Equal(t, order.PaymentPaid, added.PaymentStatus())
	assert.Equal(t, int64(5000), added.Total().Cents())
	assert.Equal(t, "João", added.CustomerName())

	invalidator.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
	ledger.AssertExpectations(t)
	trail.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCheckoutCommandHandler_Handle_LoyaltyAccrual(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewUUID()
	productID := kernel.NewUUID()
	customerID := kernel.NewUUID()

	cmd, err := commands.NewCheckoutCommand(
		kernel.NewUUID(), tenantID, kernel.NewUUID(), order.ModePickup,
		&customerID, "", "",
		kernel.NewMoneyFromCents(0), nil, order.PaymentPix,
		[]commands.ItemInput{{ProductID: productID, Quantity: 2}})
	require.NoError(t, err)

	product := &ports.Product{
		ID: productID, TenantID: tenantID, Name: "X-Burger",
		Price: kernel.NewMoneyFromCents(2500),
	}
	customer := &loyalty.Customer{ID: customerID, TenantID: tenantID, Name: "Maria", Phone: "11988880000"}

	repo := new(MockOrderRepository)
	loyaltyLedger := new(MockLoyaltyLedger)
	catalog := new(MockCatalogReader)
	tenants := new(MockTenantReader)
	trail := new(MockAuditTrail)
	invalidator := new(MockCacheInvalidator)

	uow := new(MockUnitOfWork)
	uow.On("OrderRepository").Return(repo)
	uow.On("LoyaltyLedger").Return(loyaltyLedger)
	uow.On("CatalogReader").Return(catalog)
	uow.On("TenantReader").Return(tenants)
	uow.On("AuditTrail").Return(trail)

	var added *order.Order
	var entry *loyalty.Entry
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		tenants.On("Get", ctx, tenantID).Return(
			&tenant.Tenant{ID: tenantID, Name: "Comanda", LoyaltyEnabled: true, PointsPerCurrency: 1}, nil).Once(),
		loyaltyLedger.On("Customer", ctx, tenantID, customerID).Return(customer, nil).Once(),
		repo.On("NextNumber", ctx, tenantID).Return(42, nil).Once(),
		catalog.On("Product", ctx, tenantID, productID).Return(product, nil).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Run(func(args mock.Arguments) {
			added = args.Get(1).(*order.Order)
		}).Return(nil).Once(),
		repo.On("AddPayment", ctx, mock.AnythingOfType("*order.Payment")).Return(nil).Once(),
		loyaltyLedger.On("Append", ctx, mock.AnythingOfType("*loyalty.Entry")).Run(func(args mock.Arguments) {
			entry = args.Get(1).(*loyalty.Entry)
		}).Return(nil).Once(),
		trail.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCheckoutCommandHandler(factory, invalidator)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.NotNil(t, added)
	assert.Equal(t, 50, added.LoyaltyPoints())
	assert.Equal(t, "Maria", added.CustomerName())
	assert.Equal(t, "11988880000", added.CustomerPhone())

	require.NotNil(t, entry)
	assert.Equal(t, 50, entry.Points())
	assert.Equal(t, "Pontos do pedido #42", entry.Description())
	assert.Equal(t, customerID, entry.CustomerID())

	loyaltyLedger.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCheckoutCommandHandler_Handle_TableMode(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewUUID()
	productID := kernel.NewUUID()
	tableID := kernel.NewUUID()

	cmd, err := commands.NewCheckoutCommand(
		kernel.NewUUID(), tenantID, kernel.NewUUID(), order.ModeTable,
		nil, "", "",
		kernel.NewMoneyFromCents(0), &tableID, order.PaymentMethodUnknown,
		[]commands.ItemInput{{ProductID: productID, Quantity: 1}})
	require.NoError(t, err)

	product := &ports.Product{
		ID: productID, TenantID: tenantID, Name: "Porção de Fritas",
		Price: kernel.NewMoneyFromCents(1800),
	}

	repo := new(MockOrderRepository)
	tables := new(MockTableRepository)
	catalog := new(MockCatalogReader)
	tenants := new(MockTenantReader)
	trail := new(MockAuditTrail)
	invalidator := new(MockCacheInvalidator)

	uow := new(MockUnitOfWork)
	uow.On("OrderRepository").Return(repo)
	uow.On("TableRepository").Return(tables)
	uow.On("CatalogReader").Return(catalog)
	uow.On("TenantReader").Return(tenants)
	uow.On("AuditTrail").Return(trail)

	var added *order.Order
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		tenants.On("Get", ctx, tenantID).Return(&tenant.Tenant{ID: tenantID, Name: "Comanda"}, nil).Once(),
		tables.On("Get", ctx, tenantID, tableID).Return(freeTable(t, tenantID, tableID, 4), nil).Once(),
		repo.On("NextNumber", ctx, tenantID).Return(7, nil).Once(),
		catalog.On("Product", ctx, tenantID, productID).Return(product, nil).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Run(func(args mock.Arguments) {
			added = args.Get(1).(*order.Order)
		}).Return(nil).Once(),
		tables.On("Occupy", ctx, tenantID, tableID, mock.AnythingOfType("kernel.UUID"), mock.AnythingOfType("time.Time")).Return(nil).Once(),
		trail.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCheckoutCommandHandler(factory, invalidator)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.NotNil(t, added)
	assert.Equal(t, order.StatusNew, added.Status())
	assert.Equal(t, order.PaymentPending, added.PaymentStatus())
	assert.Equal(t, "Mesa 4", added.CustomerName())
	require.NotNil(t, added.TableID())
	assert.Equal(t, tableID, *added.TableID())

	repo.AssertNotCalled(t, "AddPayment", mock.Anything, mock.Anything)
	tables.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCheckoutCommandHandler_Handle_AvailabilityCrossedInvalidatesCache(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewUUID()
	productID := kernel.NewUUID()
	cmd := pickupCheckoutCommand(t, tenantID, productID)

	product := &ports.Product{
		ID: productID, TenantID: tenantID, Name: "X-Burger",
		Price: kernel.NewMoneyFromCents(2500), StockControlled: true,
	}

	repo := new(MockOrderRepository)
	ledger := new(MockStockLedger)
	catalog := new(MockCatalogReader)
	tenants := new(MockTenantReader)
	trail := new(MockAuditTrail)
	invalidator := new(MockCacheInvalidator)
	invalidator.On("Invalidate", ctx, tenantID).Once()

	uow := new(MockUnitOfWork)
	uow.On("OrderRepository").Return(repo)
	uow.On("StockLedger").Return(ledger)
	uow.On("CatalogReader").Return(catalog)
	uow.On("TenantReader").Return(tenants)
	uow.On("AuditTrail").Return(trail)

	uow.On("Begin", ctx).Return(nil).Once()
	tenants.On("Get", ctx, tenantID).Return(&tenant.Tenant{ID: tenantID, Name: "Comanda"}, nil).Once()
	repo.On("NextNumber", ctx, tenantID).Return(42, nil).Once()
	catalog.On("Product", ctx, tenantID, productID).Return(product, nil).Once()
	repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	// Selling 2 from an on-hand of 1 lands at -1: availability crossed zero.
	ledger.On("Record", ctx, mock.AnythingOfType("*stock.Movement")).Return(-1, nil).Once()
	repo.On("AddPayment", ctx, mock.AnythingOfType("*order.Payment")).Return(nil).Once()
	trail.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCheckoutCommandHandler(factory, invalidator)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	invalidator.AssertExpectations(t)
}

func TestCheckoutCommandHandler_Handle_RetriesOnNumberConflict(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewUUID()
	productID := kernel.NewUUID()
	cmd := pickupCheckoutCommand(t, tenantID, productID)

	product := &ports.Product{
		ID: productID, TenantID: tenantID, Name: "X-Burger",
		Price: kernel.NewMoneyFromCents(2500),
	}

	repo := new(MockOrderRepository)
	catalog := new(MockCatalogReader)
	tenants := new(MockTenantReader)
	trail := new(MockAuditTrail)
	invalidator := new(MockCacheInvalidator)

	uow := new(MockUnitOfWork)
	uow.On("OrderRepository").Return(repo)
	uow.On("CatalogReader").Return(catalog)
	uow.On("TenantReader").Return(tenants)
	uow.On("AuditTrail").Return(trail)

	uow.On("Begin", ctx).Return(nil).Twice()
	uow.On("Rollback", ctx).Return(nil).Twice()
	tenants.On("Get", ctx, tenantID).Return(&tenant.Tenant{ID: tenantID, Name: "Comanda"}, nil).Twice()
	repo.On("NextNumber", ctx, tenantID).Return(42, nil).Once()
	repo.On("NextNumber", ctx, tenantID).Return(43, nil).Once()
	catalog.On("Product", ctx, tenantID, productID).Return(product, nil).Twice()
	// A concurrent sale steals number 42; the second attempt succeeds.
	repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(order.ErrNumberConflict).Once()
	repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	repo.On("AddPayment", ctx, mock.AnythingOfType("*order.Payment")).Return(nil).Once()
	trail.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Twice()

	h := commands.NewCheckoutCommandHandler(factory, invalidator)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	repo.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCheckoutCommandHandler_Handle_NumberConflictExhausted(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewUUID()
	productID := kernel.NewUUID()
	cmd := pickupCheckoutCommand(t, tenantID, productID)

	product := &ports.Product{
		ID: productID, TenantID: tenantID, Name: "X-Burger",
		Price: kernel.NewMoneyFromCents(2500),
	}

	repo := new(MockOrderRepository)
	catalog := new(MockCatalogReader)
	tenants := new(MockTenantReader)
	invalidator := new(MockCacheInvalidator)

	uow := new(MockUnitOfWork)
	uow.On("OrderRepository").Return(repo)
	uow.On("CatalogReader").Return(catalog)
	uow.On("TenantReader").Return(tenants)

	uow.On("Begin", ctx).Return(nil).Times(3)
	uow.On("Rollback", ctx).Return(nil).Times(3)
	tenants.On("Get", ctx, tenantID).Return(&tenant.Tenant{ID: tenantID, Name: "Comanda"}, nil).Times(3)
	repo.On("NextNumber", ctx, tenantID).Return(42, nil).Times(3)
	catalog.On("Product", ctx, tenantID, productID).Return(product, nil).Times(3)
	repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(order.ErrNumberConflict).Times(3)

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Times(3)

	h := commands.NewCheckoutCommandHandler(factory, invalidator)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrNumberConflict)
	factory.AssertNumberOfCalls(t, "Create", 3)
}

func TestCheckoutCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	factory := new(MockCheckoutUoWFactory)
	h := commands.NewCheckoutCommandHandler(factory, new(MockCacheInvalidator))
	err := h.Handle(ctx, commands.CheckoutCommand{})
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrCheckoutCommandIsNotConstructed)
}

func TestCheckoutCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewUUID()
	cmd := pickupCheckoutCommand(t, tenantID, kernel.NewUUID())

	uow := new(MockUnitOfWork)
	uow.On("Begin", ctx).Return(errors.New("begin error")).Once()

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCheckoutCommandHandler(factory, new(MockCacheInvalidator))
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}
