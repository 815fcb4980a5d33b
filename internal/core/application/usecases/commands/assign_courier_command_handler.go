package commands

import (
	"context"
	"time"

	"comanda/internal/core/domain/model/audit"
	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/services"
)

// AssignCourierCommandHandler attaches a courier to an order through the state
// machine, advancing early-stage orders to waiting_motoboy without ever
// demoting orders already further along.
type AssignCourierCommandHandler struct {
	uowFactory   OrderUoWFactory
	stateMachine services.OrderStateMachine
}

// NewAssignCourierCommandHandler creates a handler for courier assignment.
func NewAssignCourierCommandHandler(uowFactory OrderUoWFactory) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory:   uowFactory,
		stateMachine: services.NewOrderStateMachine(),
	}
}

// Handle processes the courier assignment command.
func (h *AssignCourierCommandHandler) Handle(ctx context.Context, cmd AssignCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.TenantID(), cmd.OrderID())
	if err != nil {
		return err
	}

	result, err := h.stateMachine.AssignCourier(o, cmd.CourierID())
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	auditEntry, err := audit.NewEntry(
		kernel.NewUUID(), cmd.TenantID(), cmd.ActorID(),
		audit.ActionCourierAssigned, "order", o.ID(),
		map[string]any{"status": result.OldStatus.String()},
		map[string]any{
			"status":     result.NewStatus.String(),
			"courier_id": cmd.CourierID().String(),
		},
		now,
	)
	if err != nil {
		return err
	}
	if err = uow.AuditTrail().Append(ctx, auditEntry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
