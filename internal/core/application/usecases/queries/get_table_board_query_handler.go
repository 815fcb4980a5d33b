package queries

import (
	"context"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/table"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTableBoardQueryHandler reads the floor view: all tables with the number
// and running total of the order seated on each occupied one.
type GetTableBoardQueryHandler struct {
	db *gorm.DB
}

// NewGetTableBoardQueryHandler creates a handler for table board queries.
func NewGetTableBoardQueryHandler(db *gorm.DB) GetTableBoardQueryHandler {
	return GetTableBoardQueryHandler{db: db}
}

// Handle executes the query. Tables come sorted by their display number.
func (h GetTableBoardQueryHandler) Handle(
	ctx context.Context,
	query GetTableBoardQuery,
) ([]GetTableBoardQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	board := make([]GetTableBoardQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			t.id,
			t.number,
			t.capacity,
			t.status,
			t.occupied_at,
			t.current_order_id,
			o.number,
			o.total_cents
		FROM tables t
		LEFT JOIN orders o ON o.id = t.current_order_id AND o.tenant_id = t.tenant_id
		WHERE t.tenant_id = ?
		ORDER BY t.number
	`, query.TenantID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetTableBoardQueryResponse
		var id uuid.UUID
		var orderID *uuid.UUID
		var status int
		var orderTotalCents *int64

		err = rows.Scan(
			&id,
			&resp.Number,
			&resp.Capacity,
			&status,
			&resp.OccupiedAt,
			&orderID,
			&resp.OrderNumber,
			&orderTotalCents,
		)
		if err != nil {
			return nil, err
		}

		tableID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = tableID
		resp.Status = table.Status(status)

		if resp.OrderID, err = optionalUUID(orderID); err != nil {
			return nil, err
		}
		if orderTotalCents != nil {
			total := kernel.NewMoneyFromCents(*orderTotalCents)
			resp.OrderTotal = &total
		}

		board = append(board, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return board, nil
}
