package queries

import (
	"errors"
	"time"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/table"
	"comanda/internal/pkg/guard"
)

var ErrGetTableBoardQueryIsNotConstructed = errors.New(
	"GetTableBoardQuery must be created via NewGetTableBoardQuery constructor",
)

// GetTableBoardQuery retrieves every table of a tenant with its occupancy
// info, joined with the seated order's number and running total. This is the
// floor view the waiter screens poll.
type GetTableBoardQuery struct {
	tenantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetTableBoardQuery creates a query for a tenant's table board.
func NewGetTableBoardQuery(tenantID kernel.UUID) (GetTableBoardQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetTableBoardQuery{}, err
	}

	return GetTableBoardQuery{
		tenantID: tenantID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTableBoardQuery) Validate() error {
	return q.guard.Validate(ErrGetTableBoardQueryIsNotConstructed)
}

// TenantID returns the tenant whose tables are listed.
func (q GetTableBoardQuery) TenantID() kernel.UUID { return q.tenantID }

// GetTableBoardQueryResponse is one table of the floor view. The order fields
// are nil for free tables.
type GetTableBoardQueryResponse struct {
	ID         kernel.UUID
	Number     int
	Capacity   int
	Status     table.Status
	OccupiedAt *time.Time

	OrderID     *kernel.UUID
	OrderNumber *int
	OrderTotal  *kernel.Money
}
