package commands

import (
	"context"
	"time"

	"comanda/internal/core/domain/model/audit"
	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/services"
)

// TransitionOrderStatusCommandHandler performs one guarded state machine step
// on an order. Requesting the status the order already has is a no-op;
// a move outside the transition table is rejected.
type TransitionOrderStatusCommandHandler struct {
	uowFactory   OrderUoWFactory
	stateMachine services.OrderStateMachine
}

// NewTransitionOrderStatusCommandHandler creates a handler for status transitions.
func NewTransitionOrderStatusCommandHandler(uowFactory OrderUoWFactory) TransitionOrderStatusCommandHandler {
	return TransitionOrderStatusCommandHandler{
		uowFactory:   uowFactory,
		stateMachine: services.NewOrderStateMachine(),
	}
}

// Handle processes the transition command.
func (h *TransitionOrderStatusCommandHandler) Handle(ctx context.Context, cmd TransitionOrderStatusCommand) error {
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

	result, err := h.stateMachine.Transition(o, cmd.Target())
	if err != nil {
		return err
	}
	if !result.Changed {
		return uow.Commit(ctx)
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	auditEntry, err := audit.NewEntry(
		kernel.NewUUID(), cmd.TenantID(), cmd.ActorID(),
		audit.ActionOrderStatusMoved, "order", o.ID(),
		map[string]any{"status": result.OldStatus.String()},
		map[string]any{"status": result.NewStatus.String()},
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
