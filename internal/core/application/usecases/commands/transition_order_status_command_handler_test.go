package commands_test

import (
	"errors"
	"testing"

	"comanda/internal/core/application/usecases/commands"
	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/order"
	"comanda/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTransitionOrderStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewUUID()
	o := storedOrder(t, tenantID, order.StatusPreparing)
	cmd, err := commands.NewTransitionOrderStatusCommand(
		tenantID, kernel.NewUUID(), o.ID(), order.StatusReady)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	trail := new(MockAuditTrail)
	uow := new(MockUnitOfWork)
	uow.On("OrderRepository").Return(repo)
	uow.On("AuditTrail").Return(trail)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("Get", ctx, tenantID, o.ID()).Return(o, nil).Once(),
		repo.On("Update", ctx, o).Return(nil).Once(),
		trail.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderStatusCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.StatusReady, o.Status())
	repo.AssertExpectations(t)
	trail.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestTransitionOrderStatusCommandHandler_Handle_SameStatusIsNoOp(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewUUID()
	o := storedOrder(t, tenantID, order.StatusPreparing)
	cmd, err := commands.NewTransitionOrderStatusCommand(
		tenantID, kernel.NewUUID(), o.ID(), order.StatusPreparing)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUnitOfWork)
	uow.On("OrderRepository").Return(repo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("Get", ctx, tenantID, o.ID()).Return(o, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderStatusCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "AuditTrail")
	uow.AssertExpectations(t)
}

func TestTransitionOrderStatusCommandHandler_Handle_DisallowedTransition(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewUUID()
	o := storedOrder(t, tenantID, order.StatusNew)
	cmd, err := commands.NewTransitionOrderStatusCommand(
		tenantID, kernel.NewUUID(), o.ID(), order.StatusDelivered)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUnitOfWork)
	uow.On("OrderRepository").Return(repo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", ctx, tenantID, o.ID()).Return(o, nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderStatusCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrBusinessRuleViolated)
	assert.Equal(t, order.StatusNew, o.Status())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestTransitionOrderStatusCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewTransitionOrderStatusCommand(
		tenantID, kernel.NewUUID(), orderID, order.StatusReady)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUnitOfWork)
	uow.On("OrderRepository").Return(repo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", ctx, tenantID, orderID).Return(nil, errs.NewObjectNotFoundError("order", orderID.String())).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderStatusCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestTransitionOrderStatusCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	factory := new(MockOrderUoWFactory)
	h := commands.NewTransitionOrderStatusCommandHandler(factory)
	err := h.Handle(ctx, commands.TransitionOrderStatusCommand{})
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrTransitionOrderStatusCommandIsNotConstructed)
}

func TestTransitionOrderStatusCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewUUID()
	cmd, err := commands.NewTransitionOrderStatusCommand(
		tenantID, kernel.NewUUID(), kernel.NewUUID(), order.StatusReady)
	require.NoError(t, err)

	uow := new(MockUnitOfWork)
	uow.On("Begin", ctx).Return(errors.New("begin error")).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderStatusCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
}
