package commands_test

import (
	"testing"

	"comanda/internal/core/application/usecases/commands"
	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransitionOrderStatusCommand_ValidInput(t *testing.T) {
	tenantID := kernel.NewUUID()
	actorID := kernel.NewUUID()
	orderID := kernel.NewUUID()

	cmd, err := commands.NewTransitionOrderStatusCommand(tenantID, actorID, orderID, order.StatusReady)
	require.NoError(t, err)
	assert.Equal(t, tenantID, cmd.TenantID())
	assert.Equal(t, actorID, cmd.ActorID())
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, order.StatusReady, cmd.Target())
	assert.NoError(t, cmd.Validate())
}

func TestNewTransitionOrderStatusCommand_InvalidTenant(t *testing.T) {
	_, err := commands.NewTransitionOrderStatusCommand(
		kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(), order.StatusReady)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewTransitionOrderStatusCommand_InvalidTarget(t *testing.T) {
	_, err := commands.NewTransitionOrderStatusCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), order.StatusUnknown)
	require.Error(t, err)
}

func TestTransitionOrderStatusCommand_Validate_ZeroValue(t *testing.T) {
	cmd := commands.TransitionOrderStatusCommand{}
	assert.ErrorIs(t, cmd.Validate(), commands.ErrTransitionOrderStatusCommandIsNotConstructed)
}
