// Package tenantrepo reads tenant-level settings. Tenant management writes
// happen elsewhere; this adapter is read-only.
package tenantrepo

import (
	"context"
	"errors"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/tenant"
	"comanda/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TenantDTO maps the tenant settings row.
type TenantDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name              string
	LoyaltyEnabled    bool
	PointsPerCurrency int
}

// TableName specifies the database table name for tenants.
func (TenantDTO) TableName() string {
	return "tenants"
}

// GormTenantReader implements ports.TenantReader using GORM.
type GormTenantReader struct {
	db *gorm.DB
}

// NewGormTenantReader creates a new GORM tenant reader.
func NewGormTenantReader(db *gorm.DB) *GormTenantReader {
	return &GormTenantReader{db: db}
}

// Get retrieves the settings read model for one tenant.
func (r *GormTenantReader) Get(ctx context.Context, id kernel.UUID) (*tenant.Tenant, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TenantDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("tenant", id.String())
		}
		return nil, err
	}

	tenantID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return &tenant.Tenant{
		ID:                tenantID,
		Name:              dto.Name,
		LoyaltyEnabled:    dto.LoyaltyEnabled,
		PointsPerCurrency: dto.PointsPerCurrency,
	}, nil
}
