package services_test

import (
	"testing"
	"time"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/order"
	"comanda/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), 1,
		order.ModeDelivery, nil, "Cliente", "",
		kernel.NewMoneyFromCents(0), time.Now(),
	)
	require.NoError(t, err)
	return o
}

func TestOrderStateMachine_Transition(t *testing.T) {
	sm := services.NewOrderStateMachine()

	t.Run("should report old and new status on a change", func(t *testing.T) {
		o := newTestOrder(t)

		result, err := sm.Transition(o, order.StatusPreparing)

		require.NoError(t, err)
		assert.True(t, result.Changed)
		assert.Equal(t, order.StatusNew, result.OldStatus)
		assert.Equal(t, order.StatusPreparing, result.NewStatus)
		assert.Equal(t, order.StatusPreparing, o.Status())
	})

	t.Run("should report no change for a same-status request", func(t *testing.T) {
		o := newTestOrder(t)

		result, err := sm.Transition(o, order.StatusNew)

		require.NoError(t, err)
		assert.False(t, result.Changed)
	})

	t.Run("should reject a disallowed move", func(t *testing.T) {
		o := newTestOrder(t)

		_, err := sm.Transition(o, order.StatusOutForDelivery)

		require.Error(t, err)
		assert.Equal(t, order.StatusNew, o.Status())
	})

	t.Run("should reject an unconstructed order", func(t *testing.T) {
		var o order.Order

		_, err := sm.Transition(&o, order.StatusPreparing)

		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})
}

func TestOrderStateMachine_AssignCourier(t *testing.T) {
	sm := services.NewOrderStateMachine()
	courierID := kernel.NewUUID()

	t.Run("should advance an early-stage order", func(t *testing.T) {
		o := newTestOrder(t)

		result, err := sm.AssignCourier(o, courierID)

		require.NoError(t, err)
		assert.True(t, result.Changed)
		assert.Equal(t, order.StatusWaitingMotoboy, result.NewStatus)
	})

	t.Run("should keep status for an order already accepted", func(t *testing.T) {
		o := newTestOrder(t)
		_, _ = sm.Transition(o, order.StatusPreparing)
		_, _ = sm.Transition(o, order.StatusWaitingMotoboy)
		_, _ = sm.Transition(o, order.StatusMotoboyAccepted)

		result, err := sm.AssignCourier(o, courierID)

		require.NoError(t, err)
		assert.False(t, result.Changed)
		assert.Equal(t, order.StatusMotoboyAccepted, o.Status())
		assert.True(t, o.CourierID().IsEqual(courierID))
	})
}

func TestOrderStateMachine_Cancel(t *testing.T) {
	sm := services.NewOrderStateMachine()

	t.Run("should cancel and record the reason", func(t *testing.T) {
		o := newTestOrder(t)
		at := time.Now()

		result, err := sm.Cancel(o, "cliente desistiu", at)

		require.NoError(t, err)
		assert.True(t, result.Changed)
		assert.Equal(t, order.StatusCancelled, result.NewStatus)
		assert.Equal(t, "cliente desistiu", o.CancellationReason())
	})

	t.Run("should be idempotent for an already cancelled order", func(t *testing.T) {
		o := newTestOrder(t)
		_, _ = sm.Cancel(o, "primeiro", time.Now())

		result, err := sm.Cancel(o, "segundo", time.Now())

		require.NoError(t, err)
		assert.False(t, result.Changed)
	})

	t.Run("should fail for a delivered order", func(t *testing.T) {
		o := newTestOrder(t)
		_, _ = sm.Transition(o, order.StatusPreparing)
		_, _ = sm.Transition(o, order.StatusReady)
		_, _ = sm.Transition(o, order.StatusDelivered)

		_, err := sm.Cancel(o, "tarde", time.Now())

		require.Error(t, err)
	})
}
