// Package auditrepo persists the append-only audit trail.
package auditrepo

import (
	"context"
	"encoding/json"
	"time"

	"comanda/internal/core/domain/model/audit"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLogDTO represents one persisted audit record.
type AuditLogDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID     uuid.UUID `gorm:"type:uuid;index"`
	ActorID      uuid.UUID `gorm:"type:uuid"`
	Action       string    `gorm:"index"`
	SubjectModel string
	SubjectID    uuid.UUID `gorm:"type:uuid;index"`
	Before       []byte    `gorm:"type:jsonb"`
	After        []byte    `gorm:"type:jsonb"`
	CreatedAt    time.Time
}

// TableName specifies the database table name for audit records.
func (AuditLogDTO) TableName() string {
	return "audit_logs"
}

// GormAuditTrail implements ports.AuditTrail using GORM.
type GormAuditTrail struct {
	db *gorm.DB
}

// NewGormAuditTrail creates a new GORM audit trail.
func NewGormAuditTrail(db *gorm.DB) *GormAuditTrail {
	return &GormAuditTrail{db: db}
}

// Append stores an audit record on the caller's transaction.
func (t *GormAuditTrail) Append(ctx context.Context, entry *audit.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(entry)
	if err != nil {
		return err
	}

	return t.db.WithContext(ctx).Create(&dto).Error
}

func fromDomain(entry *audit.Entry) (AuditLogDTO, error) {
	before, err := marshalFragment(entry.Before())
	if err != nil {
		return AuditLogDTO{}, err
	}
	after, err := marshalFragment(entry.After())
	if err != nil {
		return AuditLogDTO{}, err
	}

	return AuditLogDTO{
		ID:           entry.ID().Bytes(),
		TenantID:     entry.TenantID().Bytes(),
		ActorID:      entry.ActorID().Bytes(),
		Action:       entry.Action(),
		SubjectModel: entry.SubjectModel(),
		SubjectID:    entry.SubjectID().Bytes(),
		Before:       before,
		After:        after,
		CreatedAt:    entry.CreatedAt(),
	}, nil
}

func marshalFragment(fragment map[string]any) ([]byte, error) {
	if fragment == nil {
		return nil, nil
	}
	return json.Marshal(fragment)
}
