// Package catalogrepo reads the catalog rows (products, complement options)
// that order creation snapshots prices from. Catalog management writes happen
// elsewhere; this adapter is read-only.
package catalogrepo

import (
	"context"
	"errors"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/ports"
	"comanda/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductDTO maps the product catalog row.
type ProductDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID        uuid.UUID `gorm:"type:uuid;index"`
	Name            string
	PriceCents      int64
	StockControlled bool
	StockQuantity   int
}

// TableName specifies the database table name for products.
func (ProductDTO) TableName() string {
	return "products"
}

// ComplementOptionDTO maps the complement option catalog row.
type ComplementOptionDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID `gorm:"type:uuid;index"`
	Name        string
	PriceCents  int64
	MaxQuantity int
}

// TableName specifies the database table name for complement options.
func (ComplementOptionDTO) TableName() string {
	return "complement_options"
}

// GormCatalogReader implements ports.CatalogReader using GORM.
type GormCatalogReader struct {
	db *gorm.DB
}

// NewGormCatalogReader creates a new GORM catalog reader.
func NewGormCatalogReader(db *gorm.DB) *GormCatalogReader {
	return &GormCatalogReader{db: db}
}

// Product retrieves a product read model scoped to a tenant.
func (r *GormCatalogReader) Product(ctx context.Context, tenantID, id kernel.UUID) (*ports.Product, error) {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto ProductDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		return nil, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	productTenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	return &ports.Product{
		ID:              productID,
		TenantID:        productTenantID,
		Name:            dto.Name,
		Price:           kernel.NewMoneyFromCents(dto.PriceCents),
		StockControlled: dto.StockControlled,
		StockQuantity:   dto.StockQuantity,
	}, nil
}

// ComplementOption retrieves a complement option read model scoped to a tenant.
func (r *GormCatalogReader) ComplementOption(ctx context.Context, tenantID, id kernel.UUID) (*ports.ComplementOption, error) {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto ComplementOptionDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("complement option", id.String())
		}
		return nil, err
	}

	optionID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	optionTenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	return &ports.ComplementOption{
		ID:          optionID,
		TenantID:    optionTenantID,
		Name:        dto.Name,
		Price:       kernel.NewMoneyFromCents(dto.PriceCents),
		MaxQuantity: dto.MaxQuantity,
	}, nil
}
