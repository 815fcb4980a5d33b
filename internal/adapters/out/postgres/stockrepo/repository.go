// Package stockrepo persists the inventory movement ledger and keeps the
// denormalized on-hand quantity on the product/ingredient row in step with it.
package stockrepo

import (
	"context"
	"errors"
	"time"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/stock"
	"comanda/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockMovementDTO represents one persisted ledger entry.
type StockMovementDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID     uuid.UUID  `gorm:"type:uuid;index"`
	ProductID    *uuid.UUID `gorm:"type:uuid;index"`
	IngredientID *uuid.UUID `gorm:"type:uuid;index"`
	Quantity     int
	Reason       int
	OrderID      *uuid.UUID `gorm:"type:uuid;index"`
	ActorID      uuid.UUID  `gorm:"type:uuid"`
	CreatedAt    time.Time
}

// TableName specifies the database table name for stock movements.
func (StockMovementDTO) TableName() string {
	return "stock_movements"
}

// GormStockLedger implements ports.StockLedger using GORM.
type GormStockLedger struct {
	db *gorm.DB
}

// NewGormStockLedger creates a new GORM stock ledger.
func NewGormStockLedger(db *gorm.DB) *GormStockLedger {
	return &GormStockLedger{db: db}
}

// Record appends a movement and applies its delta to the denormalized on-hand
// quantity, returning the resulting quantity. Both writes run on the caller's
// transaction, so a failed operation leaves ledger and quantity consistent.
func (l *GormStockLedger) Record(ctx context.Context, movement *stock.Movement) (int, error) {
	if err := movement.Validate(); err != nil {
		return 0, err
	}

	dto := fromDomain(movement)
	if err := l.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return 0, err
	}

	targetTable := "products"
	targetID := dto.ProductID
	if dto.IngredientID != nil {
		targetTable = "ingredients"
		targetID = dto.IngredientID
	}

	var onHand *int
	err := l.db.WithContext(ctx).Raw(
		"UPDATE "+targetTable+" SET stock_quantity = stock_quantity + ? WHERE id = ? AND tenant_id = ? RETURNING stock_quantity",
		dto.Quantity, targetID, dto.TenantID,
	).Scan(&onHand).Error
	if err != nil {
		return 0, err
	}
	if onHand == nil {
		return 0, errs.NewObjectNotFoundError(targetTable, targetID.String())
	}

	return *onHand, nil
}

// MovementsForOrder retrieves all movements linked to an order, oldest first.
func (l *GormStockLedger) MovementsForOrder(ctx context.Context, tenantID, orderID kernel.UUID) ([]*stock.Movement, error) {
	if err := errors.Join(tenantID.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}

	var dtos []StockMovementDTO
	err := l.db.WithContext(ctx).
		Order("created_at").
		Find(&dtos, "tenant_id = ? AND order_id = ?", tenantID.Bytes(), orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	movements := make([]*stock.Movement, 0, len(dtos))
	for _, dto := range dtos {
		m, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}

	return movements, nil
}

func fromDomain(movement *stock.Movement) StockMovementDTO {
	return StockMovementDTO{
		ID:           movement.ID().Bytes(),
		TenantID:     movement.TenantID().Bytes(),
		ProductID:    optionalUUID(movement.ProductID()),
		IngredientID: optionalUUID(movement.IngredientID()),
		Quantity:     movement.Quantity(),
		Reason:       int(movement.Reason()),
		OrderID:      optionalUUID(movement.OrderID()),
		ActorID:      movement.ActorID().Bytes(),
		CreatedAt:    movement.CreatedAt(),
	}
}

func toDomain(dto StockMovementDTO) (*stock.Movement, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, oErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if oErr != nil {
			return nil, oErr
		}
		orderID = &oID
	}

	if dto.IngredientID != nil {
		ingredientID, iErr := kernel.UUIDFromBytes((*dto.IngredientID)[:])
		if iErr != nil {
			return nil, iErr
		}
		return stock.NewIngredientMovement(
			id, tenantID, ingredientID, dto.Quantity, stock.Reason(dto.Reason), orderID, actorID, dto.CreatedAt)
	}

	productID, pErr := kernel.UUIDFromBytes((*dto.ProductID)[:])
	if pErr != nil {
		return nil, pErr
	}
	return stock.NewProductMovement(
		id, tenantID, productID, dto.Quantity, stock.Reason(dto.Reason), orderID, actorID, dto.CreatedAt)
}

func optionalUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}
