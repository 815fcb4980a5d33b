package commands_test

import (
	"testing"

	"comanda/internal/core/application/usecases/commands"
	"comanda/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransferTableCommand_ValidInput(t *testing.T) {
	tenantID := kernel.NewUUID()
	actorID := kernel.NewUUID()
	sourceID := kernel.NewUUID()
	targetID := kernel.NewUUID()

	cmd, err := commands.NewTransferTableCommand(tenantID, actorID, sourceID, targetID)
	require.NoError(t, err)
	assert.Equal(t, tenantID, cmd.TenantID())
	assert.Equal(t, actorID, cmd.ActorID())
	assert.Equal(t, sourceID, cmd.SourceTableID())
	assert.Equal(t, targetID, cmd.TargetTableID())
	assert.NoError(t, cmd.Validate())
}

func TestNewTransferTableCommand_SameTable(t *testing.T) {
	tableID := kernel.NewUUID()
	_, err := commands.NewTransferTableCommand(
		kernel.NewUUID(), kernel.NewUUID(), tableID, tableID)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrTransferToSameTable)
}

func TestNewTransferTableCommand_InvalidSource(t *testing.T) {
	_, err := commands.NewTransferTableCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.UUID{}, kernel.NewUUID())
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestTransferTableCommand_Validate_ZeroValue(t *testing.T) {
	cmd := commands.TransferTableCommand{}
	assert.ErrorIs(t, cmd.Validate(), commands.ErrTransferTableCommandIsNotConstructed)
}
