// Package tablerepo provides dine-in table persistence with conditional
// occupancy updates: the free->occupied edge is a single compare-and-set
// statement so concurrent opens cannot double-book a table.
package tablerepo

import (
	"time"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/table"

	"github.com/google/uuid"
)

// TableDTO represents the database structure for persisting tables.
// current_order_id carries a unique index; since the column is NULL for free
// tables, postgres enforces "at most one table per active order" for free.
type TableDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID       uuid.UUID  `gorm:"type:uuid;index;uniqueIndex:idx_tables_tenant_number"`
	Number         int        `gorm:"uniqueIndex:idx_tables_tenant_number"`
	Capacity       int
	Status         int        `gorm:"index"`
	CurrentOrderID *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	OccupiedAt     *time.Time
}

// TableName specifies the database table name for tables.
func (TableDTO) TableName() string {
	return "tables"
}

func fromDomain(aggregate *table.Table) TableDTO {
	var orderID *uuid.UUID
	if id := aggregate.CurrentOrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return TableDTO{
		ID:             aggregate.ID().Bytes(),
		TenantID:       aggregate.TenantID().Bytes(),
		Number:         aggregate.Number(),
		Capacity:       aggregate.Capacity(),
		Status:         int(aggregate.Status()),
		CurrentOrderID: orderID,
		OccupiedAt:     aggregate.OccupiedAt(),
	}
}

func toDomain(dto TableDTO) (*table.Table, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.CurrentOrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.CurrentOrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &oID
	}

	return table.RestoreTable(
		id,
		tenantID,
		dto.Number,
		dto.Capacity,
		table.Status(dto.Status),
		orderID,
		dto.OccupiedAt,
	)
}
