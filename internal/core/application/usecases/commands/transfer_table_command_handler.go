package commands

import (
	"context"
	"time"

	"comanda/internal/core/domain/model/audit"
	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/table"
)

// TransferTableCommandHandler moves a seated order from one table to another
// atomically: the target is occupied with a conditional update before the
// source is freed, so a failed transfer leaves both tables untouched.
type TransferTableCommandHandler struct {
	uowFactory TableOrderUoWFactory
}

// NewTransferTableCommandHandler creates a handler for table transfer operations.
func NewTransferTableCommandHandler(uowFactory TableOrderUoWFactory) TransferTableCommandHandler {
	return TransferTableCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the transfer command. Fails with ErrTableIsNotOccupied when
// the source has no seated order and ErrTableIsNotFree when the target is taken.
func (h *TransferTableCommandHandler) Handle(ctx context.Context, cmd TransferTableCommand) error {
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

	tableRepo := uow.TableRepository()
	source, err := tableRepo.Get(ctx, cmd.TenantID(), cmd.SourceTableID())
	if err != nil {
		return err
	}
	if source.CurrentOrderID() == nil || source.OccupiedAt() == nil {
		return table.ErrTableIsNotOccupied
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.TenantID(), *source.CurrentOrderID())
	if err != nil {
		return err
	}

	if err = o.MoveToTable(cmd.TargetTableID()); err != nil {
		return err
	}

	// Free the source before occupying the target: the unique index on the
	// order binding forbids two tables referencing the same order, even
	// transiently. A rejected target (ErrTableIsNotFree) rolls the whole
	// transaction back, so the source stays occupied on failure.
	// The original occupation time moves with the order.
	if err = tableRepo.Free(ctx, cmd.TenantID(), cmd.SourceTableID()); err != nil {
		return err
	}
	if err = tableRepo.Occupy(
		ctx, cmd.TenantID(), cmd.TargetTableID(), o.ID(), *source.OccupiedAt()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	auditEntry, err := audit.NewEntry(
		kernel.NewUUID(), cmd.TenantID(), cmd.ActorID(),
		audit.ActionTableTransferred, "order", o.ID(),
		map[string]any{"table_id": cmd.SourceTableID().String()},
		map[string]any{"table_id": cmd.TargetTableID().String()},
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
