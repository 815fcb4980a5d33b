package commands

import (
	"context"
	"errors"
	"time"

	"comanda/internal/core/domain/model/audit"
	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/table"
	"comanda/internal/pkg/errs"
)

// ReleaseStaleTablesCommandHandler frees occupied tables whose bound order is
// terminal or missing. Normal closure and cancellation free tables themselves;
// the sweep only repairs bindings those flows failed to clean up.
type ReleaseStaleTablesCommandHandler struct {
	uowFactory TableOrderUoWFactory
}

// NewReleaseStaleTablesCommandHandler creates a handler for the occupancy sweep.
func NewReleaseStaleTablesCommandHandler(uowFactory TableOrderUoWFactory) ReleaseStaleTablesCommandHandler {
	return ReleaseStaleTablesCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle runs one sweep across all tenants and returns how many tables were freed.
func (h *ReleaseStaleTablesCommandHandler) Handle(ctx context.Context, cmd ReleaseStaleTablesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tableRepo := uow.TableRepository()
	occupied, err := tableRepo.GetAllOccupied(ctx)
	if err != nil {
		return 0, err
	}

	freed := 0
	for _, tbl := range occupied {
		stale, staleErr := h.isStale(ctx, uow, tbl)
		if staleErr != nil {
			return 0, staleErr
		}
		if !stale {
			continue
		}

		if err = tableRepo.Free(ctx, tbl.TenantID(), tbl.ID()); err != nil {
			return 0, err
		}

		var before map[string]any
		if tbl.CurrentOrderID() != nil {
			before = map[string]any{"order_id": tbl.CurrentOrderID().String()}
		}

		auditEntry, auditErr := audit.NewEntry(
			kernel.NewUUID(), tbl.TenantID(), cmd.ActorID(),
			audit.ActionTableFreedBySweep, "table", tbl.ID(),
			before,
			map[string]any{"table_number": tbl.Number()},
			now,
		)
		if auditErr != nil {
			return 0, auditErr
		}
		if err = uow.AuditTrail().Append(ctx, auditEntry); err != nil {
			return 0, err
		}

		freed++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return freed, nil
}

func (h *ReleaseStaleTablesCommandHandler) isStale(
	ctx context.Context,
	uow TableOrderUoW,
	tbl *table.Table,
) (bool, error) {
	if tbl.CurrentOrderID() == nil {
		return true, nil
	}

	o, err := uow.OrderRepository().Get(ctx, tbl.TenantID(), *tbl.CurrentOrderID())
	if err != nil {
		var notFound *errs.ObjectNotFoundError
		if errors.As(err, &notFound) {
			return true, nil
		}
		return false, err
	}

	return o.Status().IsTerminal(), nil
}
