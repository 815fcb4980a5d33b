package queries

import (
	"context"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler reads the active-orders board straight from the
// orders table, skipping the item tree the aggregates would load.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active order queries.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query. Orders in delivered or cancelled status are
// excluded; results come oldest first so the kitchen works the queue in order.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			status,
			mode,
			customer_name,
			total_cents,
			payment_status,
			table_id,
			courier_id,
			created_at
		FROM orders
		WHERE tenant_id = ? AND status NOT IN (?, ?)
		ORDER BY number
	`, query.TenantID().Bytes(), int(order.StatusDelivered), int(order.StatusCancelled)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetActiveOrdersQueryResponse
		var id uuid.UUID
		var tableID, courierID *uuid.UUID
		var status, mode, paymentStatus int
		var totalCents int64

		err = rows.Scan(
			&id,
			&resp.Number,
			&status,
			&mode,
			&resp.CustomerName,
			&totalCents,
			&paymentStatus,
			&tableID,
			&courierID,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.Status = order.Status(status)
		resp.Mode = order.Mode(mode)
		resp.PaymentStatus = order.PaymentStatus(paymentStatus)
		resp.Total = kernel.NewMoneyFromCents(totalCents)

		if resp.TableID, err = optionalUUID(tableID); err != nil {
			return nil, err
		}
		if resp.CourierID, err = optionalUUID(courierID); err != nil {
			return nil, err
		}

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func optionalUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}

	converted, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &converted, nil
}
