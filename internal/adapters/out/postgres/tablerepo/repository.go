package tablerepo

import (
	"context"
	"errors"
	"time"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/table"
	"comanda/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTableRepository implements ports.TableRepository using GORM.
type GormTableRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTableRepository creates a new GORM table repository.
func NewGormTableRepository(db *gorm.DB, tracker aggregateTracker) *GormTableRepository {
	return &GormTableRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new table to the database.
func (r *GormTableRepository) Add(ctx context.Context, aggregate *table.Table) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a table by ID, tenant-scoped.
func (r *GormTableRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*table.Table, error) {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto TableDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("table", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Occupy atomically binds a free table to an order. The status check and the
// state change are one conditional UPDATE; zero affected rows means the table
// was occupied (or reserved) concurrently.
func (r *GormTableRepository) Occupy(ctx context.Context, tenantID, tableID, orderID kernel.UUID, occupiedAt time.Time) error {
	if err := errors.Join(tenantID.Validate(), tableID.Validate(), orderID.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&TableDTO{}).
		Where("id = ? AND tenant_id = ? AND status = ?", tableID.Bytes(), tenantID.Bytes(), int(table.StatusFree)).
		Updates(map[string]any{
			"status":           int(table.StatusOccupied),
			"current_order_id": orderID.Bytes(),
			"occupied_at":      occupiedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return table.ErrTableIsNotFree
	}

	return nil
}

// Free releases a table unconditionally, clearing its order binding.
func (r *GormTableRepository) Free(ctx context.Context, tenantID, tableID kernel.UUID) error {
	if err := errors.Join(tenantID.Validate(), tableID.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&TableDTO{}).
		Where("id = ? AND tenant_id = ?", tableID.Bytes(), tenantID.Bytes()).
		Updates(map[string]any{
			"status":           int(table.StatusFree),
			"current_order_id": nil,
			"occupied_at":      nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("table", tableID.String())
	}

	return nil
}

// GetAllOccupied retrieves every occupied table across tenants.
func (r *GormTableRepository) GetAllOccupied(ctx context.Context) ([]*table.Table, error) {
	var dtos []TableDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "status = ?", int(table.StatusOccupied)).Error; err != nil {
		return nil, err
	}

	tables := make([]*table.Table, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}

	return tables, nil
}
