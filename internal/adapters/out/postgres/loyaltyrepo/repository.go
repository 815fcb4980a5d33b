// Package loyaltyrepo persists the loyalty-point ledger and keeps the
// denormalized balance on the customer row in step with it.
package loyaltyrepo

import (
	"context"
	"errors"
	"time"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/loyalty"
	"comanda/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LoyaltyEntryDTO represents one persisted ledger entry.
type LoyaltyEntryDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID `gorm:"type:uuid;index"`
	CustomerID  uuid.UUID `gorm:"type:uuid;index"`
	Points      int
	Description string
	OrderID     *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time
}

// TableName specifies the database table name for loyalty entries.
func (LoyaltyEntryDTO) TableName() string {
	return "loyalty_entries"
}

// CustomerDTO maps the customer row read by order creation.
type CustomerDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID      uuid.UUID `gorm:"type:uuid;index"`
	Name          string
	Phone         string
	LoyaltyPoints int
}

// TableName specifies the database table name for customers.
func (CustomerDTO) TableName() string {
	return "customers"
}

// GormLoyaltyLedger implements ports.LoyaltyLedger using GORM.
type GormLoyaltyLedger struct {
	db *gorm.DB
}

// NewGormLoyaltyLedger creates a new GORM loyalty ledger.
func NewGormLoyaltyLedger(db *gorm.DB) *GormLoyaltyLedger {
	return &GormLoyaltyLedger{db: db}
}

// Customer retrieves a customer read model scoped to a tenant.
func (l *GormLoyaltyLedger) Customer(ctx context.Context, tenantID, id kernel.UUID) (*loyalty.Customer, error) {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto CustomerDTO
	err := l.db.WithContext(ctx).
		First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customer", id.String())
		}
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerTenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	return &loyalty.Customer{
		ID:            customerID,
		TenantID:      customerTenantID,
		Name:          dto.Name,
		Phone:         dto.Phone,
		LoyaltyPoints: dto.LoyaltyPoints,
	}, nil
}

// Append stores a ledger entry and applies its delta to the denormalized
// balance. The update clamps at zero so a compensating negative entry can
// never drive the balance below what the customer still has.
func (l *GormLoyaltyLedger) Append(ctx context.Context, entry *loyalty.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	if err := l.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	result := l.db.WithContext(ctx).Exec(
		"UPDATE customers SET loyalty_points = GREATEST(loyalty_points + ?, 0) WHERE id = ? AND tenant_id = ?",
		dto.Points, dto.CustomerID, dto.TenantID,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("customer", dto.CustomerID.String())
	}

	return nil
}

func fromDomain(entry *loyalty.Entry) LoyaltyEntryDTO {
	dto := LoyaltyEntryDTO{
		ID:          entry.ID().Bytes(),
		TenantID:    entry.TenantID().Bytes(),
		CustomerID:  entry.CustomerID().Bytes(),
		Points:      entry.Points(),
		Description: entry.Description(),
		CreatedAt:   entry.CreatedAt(),
	}
	if entry.OrderID() != nil {
		raw := entry.OrderID().Bytes()
		dto.OrderID = &raw
	}
	return dto
}
