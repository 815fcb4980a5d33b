package commands_test

import (
	"testing"
	"time"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/order"
	"comanda/internal/core/domain/model/table"

	"github.com/stretchr/testify/require"
)

// storedOrder restores a delivery order with a single item, mimicking what a
// repository Get would return for an order in the given status.
func storedOrder(t *testing.T, tenantID kernel.UUID, status order.Status) *order.Order {
	t.Helper()

	item, err := order.NewItem(
		kernel.NewUUID(), kernel.NewUUID(), "X-Burger",
		kernel.NewMoneyFromCents(2500), 1, "", nil)
	require.NoError(t, err)

	o, err := order.RestoreOrder(
		kernel.NewUUID(), tenantID, 42, status, order.ModeDelivery,
		nil, "João", "11999990000",
		kernel.NewMoneyFromCents(2500), kernel.NewMoneyFromCents(500), kernel.NewMoneyFromCents(3000),
		order.PaymentPaid, nil, nil, 0, "", nil,
		[]*order.Item{item}, time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)
	return o
}

// storedLoyaltyOrder restores a cancellable order linked to a customer with
// accrued loyalty points.
func storedLoyaltyOrder(t *testing.T, tenantID, customerID kernel.UUID, points int) *order.Order {
	t.Helper()

	item, err := order.NewItem(
		kernel.NewUUID(), kernel.NewUUID(), "X-Burger",
		kernel.NewMoneyFromCents(3000), 1, "", nil)
	require.NoError(t, err)

	o, err := order.RestoreOrder(
		kernel.NewUUID(), tenantID, 77, order.StatusPreparing, order.ModeDelivery,
		&customerID, "Maria", "11988880000",
		kernel.NewMoneyFromCents(3000), kernel.NewMoneyFromCents(0), kernel.NewMoneyFromCents(3000),
		order.PaymentPaid, nil, nil, points, "", nil,
		[]*order.Item{item}, time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)
	return o
}

// storedTableOrder restores an open dine-in order seated on the given table.
func storedTableOrder(t *testing.T, tenantID, tableID kernel.UUID) *order.Order {
	t.Helper()

	o, err := order.RestoreOrder(
		kernel.NewUUID(), tenantID, 13, order.StatusPreparing, order.ModeTable,
		nil, "Mesa 4", "",
		kernel.NewMoneyFromCents(0), kernel.NewMoneyFromCents(0), kernel.NewMoneyFromCents(0),
		order.PaymentPending, &tableID, nil, 0, "", nil,
		nil, time.Now().UTC().Add(-30*time.Minute))
	require.NoError(t, err)
	return o
}

// occupiedTable restores a table bound to the given order.
func occupiedTable(t *testing.T, tenantID, tableID, orderID kernel.UUID, number int) *table.Table {
	t.Helper()

	occupiedAt := time.Now().UTC().Add(-30 * time.Minute)
	tbl, err := table.RestoreTable(
		tableID, tenantID, number, 4, table.StatusOccupied, &orderID, &occupiedAt)
	require.NoError(t, err)
	return tbl
}

// freeTable creates a free table with the given number.
func freeTable(t *testing.T, tenantID, tableID kernel.UUID, number int) *table.Table {
	t.Helper()

	tbl, err := table.RestoreTable(tableID, tenantID, number, 4, table.StatusFree, nil, nil)
	require.NoError(t, err)
	return tbl
}
