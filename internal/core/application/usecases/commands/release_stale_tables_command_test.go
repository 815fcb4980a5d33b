package commands_test

import (
	"testing"

	"comanda/internal/core/application/usecases/commands"
	"comanda/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReleaseStaleTablesCommand_ValidInput(t *testing.T) {
	actorID := kernel.NewUUID()
	cmd, err := commands.NewReleaseStaleTablesCommand(actorID)
	require.NoError(t, err)
	assert.Equal(t, actorID, cmd.ActorID())
	assert.NoError(t, cmd.Validate())
}

func TestNewReleaseStaleTablesCommand_InvalidActor(t *testing.T) {
	_, err := commands.NewReleaseStaleTablesCommand(kernel.UUID{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestReleaseStaleTablesCommand_Validate_ZeroValue(t *testing.T) {
	cmd := commands.ReleaseStaleTablesCommand{}
	assert.ErrorIs(t, cmd.Validate(), commands.ErrReleaseStaleTablesCommandIsNotConstructed)
}
