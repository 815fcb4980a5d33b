package commands_test

import (
	"testing"

	"comanda/internal/core/application/usecases/commands"
	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/table"
	"comanda/internal/core/ports"
	"comanda/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddTableItemsCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewUUID()
	tableID := kernel.NewUUID()
	productID := kernel.NewUUID()
	optionID := kernel.NewUUID()

	o := storedTableOrder(t, tenantID, tableID)
	tbl := occupiedTable(t, tenantID, tableID, o.ID(), 4)

	cmd, err := commands.NewAddTableItemsCommand(
		tenantID, kernel.NewUUID(), tableID,
		[]commands.ItemInput{{
			ProductID: productID,
			Quantity:  2,
			Notes:     "sem cebola",
			Complements: []commands.ItemComplementInput{
				{OptionID: optionID, Quantity: 1},
			},
		}})
	require.NoError(t, err)

	product := &ports.Product{
		ID: productID, TenantID: tenantID, Name: "X-Burger",
		Price: kernel.NewMoneyFromCents(2500), StockControlled: true,
	}
	option := &ports.ComplementOption{
		ID: optionID, TenantID: tenantID, Name: "Bacon",
		Price: kernel.NewMoneyFromCents(400), MaxQuantity: 3,
	}

	repo := new(MockOrderRepository)
	tables := new(MockTableRepository)
	ledger := new(MockStockLedger)
	catalog := new(MockCatalogReader)
	trail := new(MockAuditTrail)
	invalidator := new(MockCacheInvalidator)

	uow := new(MockUnitOfWork)
	uow.On("OrderRepository").Return(repo)
	uow.On("TableRepository").Return(tables)
	uow.On("StockLedger").Return(ledger)
	uow.On("CatalogReader").Return(catalog)
	uow.On("AuditTrail").Return(trail)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		tables.On("Get", ctx, tenantID, tableID).Return(tbl, nil).Once(),
		repo.On("Get", ctx, tenantID, o.ID()).Return(o, nil).Once(),
		catalog.On("Product", ctx, tenantID, productID).Return(product, nil).Once(),
		catalog.On("ComplementOption", ctx, tenantID, optionID).Return(option, nil).Once(),
		repo.On("Update", ctx, o).Return(nil).Once(),
		ledger.On("Record", ctx, mock.AnythingOfType("*stock.Movement")).Return(8, nil).Once(),
		trail.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTableItemsUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddTableItemsCommandHandler(factory, invalidator)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	// (2500 + 400) * 2 appended onto an empty running total.
	assert.Equal(t, int64(5800), o.Total().Cents())
	require.Len(t, o.Items(), 1)
	assert.Equal(t, "X-Burger", o.Items()[0].ProductName())

	invalidator.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	catalog.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAddTableItemsCommandHandler_Handle_TableNotOccupied(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewUUID()
	tableID := kernel.NewUUID()

	cmd, err := commands.NewAddTableItemsCommand(
		tenantID, kernel.NewUUID(), tableID, validItems())
	require.NoError(t, err)

	tables := new(MockTableRepository)
	uow := new(MockUnitOfWork)
	uow.On("TableRepository").Return(tables)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	tables.On("Get", ctx, tenantID, tableID).Return(freeTable(t, tenantID, tableID, 4), nil).Once()

	factory := new(MockTableItemsUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddTableItemsCommandHandler(factory, new(MockCacheInvalidator))
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, table.ErrTableIsNotOccupied)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAddTableItemsCommandHandler_Handle_ComplementOverMaxQuantity(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewUUID()
	tableID := kernel.NewUUID()
	productID := kernel.NewUUID()
	optionID := kernel.NewUUID()

	o := storedTableOrder(t, tenantID, tableID)
	tbl := occupiedTable(t, tenantID, tableID, o.ID(), 4)

	cmd, err := commands.NewAddTableItemsCommand(
		tenantID, kernel.NewUUID(), tableID,
		[]commands.ItemInput{{
			ProductID: productID,
			Quantity:  1,
			Complements: []commands.ItemComplementInput{
				{OptionID: optionID, Quantity: 5},
			},
		}})
	require.NoError(t, err)

	product := &ports.Product{
		ID: productID, TenantID: tenantID, Name: "X-Burger",
		Price: kernel.NewMoneyFromCents(2500),
	}
	option := &ports.ComplementOption{
		ID: optionID, TenantID: tenantID, Name: "Bacon",
		Price: kernel.NewMoneyFromCents(400), MaxQuantity: 3,
	}

	repo := new(MockOrderRepository)
	tables := new(MockTableRepository)
	catalog := new(MockCatalogReader)

	uow := new(MockUnitOfWork)
	uow.On("OrderRepository").Return(repo)
	uow.On("TableRepository").Return(tables)
	uow.On("CatalogReader").Return(catalog)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	tables.On("Get", ctx, tenantID, tableID).Return(tbl, nil).Once()
	repo.On("Get", ctx, tenantID, o.ID()).Return(o, nil).Once()
	catalog.On("Product", ctx, tenantID, productID).Return(product, nil).Once()
	catalog.On("ComplementOption", ctx, tenantID, optionID).Return(option, nil).Once()

	factory := new(MockTableItemsUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddTableItemsCommandHandler(factory, new(MockCacheInvalidator))
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAddTableItemsCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	factory := new(MockTableItemsUoWFactory)
	h := commands.NewAddTableItemsCommandHandler(factory, new(MockCacheInvalidator))
	err := h.Handle(ctx, commands.AddTableItemsCommand{})
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrAddTableItemsCommandIsNotConstructed)
}
