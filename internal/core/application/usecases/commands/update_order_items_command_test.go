package commands_test

import (
	"testing"

	"comanda/internal/core/application/usecases/commands"
	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateOrderItemsCommand_ValidInput(t *testing.T) {
	tenantID := kernel.NewUUID()
	actorID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	itemID := kernel.NewUUID()
	items := []commands.ItemUpdateInput{
		{ItemID: &itemID, ProductID: kernel.NewUUID(), Quantity: 2},
		{ProductID: kernel.NewUUID(), Quantity: 1},
	}

	cmd, err := commands.NewUpdateOrderItemsCommand(tenantID, actorID, orderID, items)
	require.NoError(t, err)
	assert.Equal(t, tenantID, cmd.TenantID())
	assert.Equal(t, actorID, cmd.ActorID())
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, items, cmd.Items())
	assert.NoError(t, cmd.Validate())
}

func TestNewUpdateOrderItemsCommand_EmptyItems(t *testing.T) {
	_, err := commands.NewUpdateOrderItemsCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewUpdateOrderItemsCommand_InvalidQuantity(t *testing.T) {
	items := []commands.ItemUpdateInput{{ProductID: kernel.NewUUID(), Quantity: 0}}
	_, err := commands.NewUpdateOrderItemsCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), items)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestUpdateOrderItemsCommand_Validate_ZeroValue(t *testing.T) {
	cmd := commands.UpdateOrderItemsCommand{}
	assert.ErrorIs(t, cmd.Validate(), commands.ErrUpdateOrderItemsCommandIsNotConstructed)
}
