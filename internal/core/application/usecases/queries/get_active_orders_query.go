// Package queries contains the read side of the CQRS split: raw SQL over the
// persistence schema, bypassing the aggregates, returning flat response
// structs for the HTTP layer.
package queries

import (
	"errors"
	"time"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/order"
	"comanda/internal/pkg/guard"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery retrieves a tenant's orders that have not reached a
// terminal status. This is the operational board the kitchen and counter
// screens poll.
type GetActiveOrdersQuery struct {
	tenantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query for a tenant's active orders.
func NewGetActiveOrdersQuery(tenantID kernel.UUID) (GetActiveOrdersQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetActiveOrdersQuery{}, err
	}

	return GetActiveOrdersQuery{
		tenantID: tenantID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// TenantID returns the tenant whose orders are listed.
func (q GetActiveOrdersQuery) TenantID() kernel.UUID { return q.tenantID }

// GetActiveOrdersQueryResponse is one row of the active-orders board.
type GetActiveOrdersQueryResponse struct {
	ID            kernel.UUID
	Number        int
	Status        order.Status
	Mode          order.Mode
	CustomerName  string
	Total         kernel.Money
	PaymentStatus order.PaymentStatus
	TableID       *kernel.UUID
	CourierID     *kernel.UUID
	CreatedAt     time.Time
}
