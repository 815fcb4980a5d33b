package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/order"
	"comanda/internal/pkg/errs"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// orderNumberIndex is the unique index guarding tenant-scoped order numbers.
const orderNumberIndex = "idx_orders_tenant_number"

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its full item/complement tree.
// A unique violation on the tenant/number index maps to order.ErrNumberConflict.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err, orderNumberIndex) {
			return fmt.Errorf("%w: number %d", order.ErrNumberConflict, aggregate.Number())
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order, reconciling its item tree: items absent
// from the aggregate are deleted, matching items updated in place with their
// complement children resynced, new items inserted.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).
		Where("id = ? AND tenant_id = ?", dto.ID, dto.TenantID).
		Select(
			"status", "mode", "customer_id", "customer_name", "customer_phone",
			"subtotal_cents", "delivery_fee_cents", "total_cents", "payment_status",
			"table_id", "courier_id", "loyalty_points", "cancellation_reason", "cancelled_at",
		).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	if err := r.reconcileItems(db, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) reconcileItems(db *gorm.DB, dto OrderDTO) error {
	keptIDs := make([]any, 0, len(dto.Items))
	for _, item := range dto.Items {
		keptIDs = append(keptIDs, item.ID)
	}

	// Drop rows (and their complements) missing from the aggregate.
	staleScope := db.Model(&OrderItemDTO{}).Where("order_id = ?", dto.ID)
	if len(keptIDs) > 0 {
		staleScope = staleScope.Where("id NOT IN ?", keptIDs)
	}
	var staleIDs []any
	if err := staleScope.Pluck("id", &staleIDs).Error; err != nil {
		return err
	}
	if len(staleIDs) > 0 {
		if err := db.Where("order_item_id IN ?", staleIDs).Delete(&OrderItemComplementDTO{}).Error; err != nil {
			return err
		}
		if err := db.Where("id IN ?", staleIDs).Delete(&OrderItemDTO{}).Error; err != nil {
			return err
		}
	}

	for i := range dto.Items {
		item := dto.Items[i]
		complements := item.Complements
		item.Complements = nil

		if err := db.Where("id = ?", item.ID).
			Assign(map[string]any{
				"order_id":                item.OrderID,
				"product_id":              item.ProductID,
				"product_name":            item.ProductName,
				"unit_price_cents":        item.UnitPriceCents,
				"quantity":                item.Quantity,
				"notes":                   item.Notes,
				"complements_price_cents": item.ComplementsPriceCents,
				"subtotal_cents":          item.SubtotalCents,
			}).
			FirstOrCreate(&OrderItemDTO{}).Error; err != nil {
			return err
		}

		// Complements are full snapshots; resync by replacement.
		if err := db.Where("order_item_id = ?", item.ID).Delete(&OrderItemComplementDTO{}).Error; err != nil {
			return err
		}
		if len(complements) > 0 {
			if err := db.Create(&complements).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

// Get retrieves an order with its items and complements, tenant-scoped.
func (r *GormOrderRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*order.Order, error) {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items.Complements").
		First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// NextNumber computes max(number)+1 for the tenant. The read itself can race;
// the unique index plus retry in the creation flow closes the gap.
func (r *GormOrderRepository) NextNumber(ctx context.Context, tenantID kernel.UUID) (int, error) {
	if err := tenantID.Validate(); err != nil {
		return 0, err
	}

	var next int
	err := r.db.WithContext(ctx).Raw(
		"SELECT COALESCE(MAX(number), 0) + 1 FROM orders WHERE tenant_id = ?",
		tenantID.Bytes(),
	).Scan(&next).Error
	if err != nil {
		return 0, err
	}

	return next, nil
}

// AddPayment persists the payment record taken for an order.
func (r *GormOrderRepository) AddPayment(ctx context.Context, payment *order.Payment) error {
	if err := payment.Validate(); err != nil {
		return err
	}

	dto := paymentFromDomain(payment)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgerrcode.UniqueViolation && pgErr.ConstraintName == constraint
}
