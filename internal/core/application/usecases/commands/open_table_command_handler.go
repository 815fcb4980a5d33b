package commands

import (
	"context"
	"errors"
	"time"

	"comanda/internal/core/domain/model/audit"
	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/order"
)

// OpenTableCommandHandler handles opening a dine-in table: it creates the
// near-empty order and binds the table to it with a conditional update, so
// two concurrent opens of the same table cannot both succeed.
type OpenTableCommandHandler struct {
	uowFactory OpenTableUoWFactory
}

// NewOpenTableCommandHandler creates a handler for table opening operations.
func NewOpenTableCommandHandler(uowFactory OpenTableUoWFactory) OpenTableCommandHandler {
	return OpenTableCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the open-table command, retrying the whole transaction
// when the allocated order number is stolen by a concurrent creation.
func (h *OpenTableCommandHandler) Handle(ctx context.Context, cmd OpenTableCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var err error
	for attempt := 0; attempt < maxNumberAllocationAttempts; attempt++ {
		err = h.handleAttempt(ctx, cmd)
		if !errors.Is(err, order.ErrNumberConflict) {
			return err
		}
	}

	return err
}

func (h *OpenTableCommandHandler) handleAttempt(ctx context.Context, cmd OpenTableCommand) error {
	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tbl, err := uow.TableRepository().Get(ctx, cmd.TenantID(), cmd.TableID())
	if err != nil {
		return err
	}

	linkedName := ""
	if cmd.CustomerID() != nil {
		customer, custErr := uow.LoyaltyLedger().Customer(ctx, cmd.TenantID(), *cmd.CustomerID())
		if custErr != nil {
			return custErr
		}
		linkedName = customer.Name
	}

	orderRepo := uow.OrderRepository()
	number, err := orderRepo.NextNumber(ctx, cmd.TenantID())
	if err != nil {
		return err
	}

	name := order.ResolveCustomerName(cmd.CustomerName(), linkedName, order.ModeTable, tbl.Number())
	o, err := order.NewTableOrder(
		cmd.OrderID(), cmd.TenantID(), number, cmd.TableID(), cmd.CustomerID(), name, now)
	if err != nil {
		return err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return err
	}

	// The conditional update is the real occupancy guard; a table taken
	// between the Get above and here surfaces as ErrTableIsNotFree.
	if err = uow.TableRepository().Occupy(ctx, cmd.TenantID(), cmd.TableID(), o.ID(), now); err != nil {
		return err
	}

	auditEntry, err := audit.NewEntry(
		kernel.NewUUID(), cmd.TenantID(), cmd.ActorID(),
		audit.ActionTableOpened, "table", cmd.TableID(),
		nil,
		map[string]any{
			"table_number": tbl.Number(),
			"order_id":     o.ID().String(),
			"order_number": o.Number(),
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
