package queries_test

import (
	"testing"

	"comanda/internal/core/application/usecases/queries"
	"comanda/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetTableBoardQuery_ValidInput(t *testing.T) {
	tenantID := kernel.NewUUID()
	query, err := queries.NewGetTableBoardQuery(tenantID)
	require.NoError(t, err)
	assert.Equal(t, tenantID, query.TenantID())
	assert.NoError(t, query.Validate())
}

func TestNewGetTableBoardQuery_InvalidTenant(t *testing.T) {
	_, err := queries.NewGetTableBoardQuery(kernel.UUID{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestGetTableBoardQuery_Validate_ZeroValue(t *testing.T) {
	query := queries.GetTableBoardQuery{}
	assert.ErrorIs(t, query.Validate(), queries.ErrGetTableBoardQueryIsNotConstructed)
}
