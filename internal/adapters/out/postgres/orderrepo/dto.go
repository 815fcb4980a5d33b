// Package orderrepo provides order aggregate persistence: DTO mapping between
// the domain model and the relational tables, plus the repository itself.
package orderrepo

import (
	"time"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The (tenant_id, number) pair carries a unique index; its violation is how
// concurrent number allocation is detected.
type OrderDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID           uuid.UUID  `gorm:"type:uuid;index;uniqueIndex:idx_orders_tenant_number"`
	Number             int        `gorm:"uniqueIndex:idx_orders_tenant_number"`
	Status             int        `gorm:"index"`
	Mode               int
	CustomerID         *uuid.UUID `gorm:"type:uuid;index"`
	CustomerName       string
	CustomerPhone      string
	SubtotalCents      int64
	DeliveryFeeCents   int64
	TotalCents         int64
	PaymentStatus      int
	TableID            *uuid.UUID `gorm:"type:uuid;index"`
	CourierID          *uuid.UUID `gorm:"type:uuid;index"`
	LoyaltyPoints      int
	CancellationReason string
	CancelledAt        *time.Time
	Items              []OrderItemDTO `gorm:"foreignKey:OrderID"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one persisted order line.
type OrderItemDTO struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID               uuid.UUID `gorm:"type:uuid;index"`
	ProductID             uuid.UUID `gorm:"type:uuid;index"`
	ProductName           string
	UnitPriceCents        int64
	Quantity              int
	Notes                 string
	ComplementsPriceCents int64
	SubtotalCents         int64
	Complements           []OrderItemComplementDTO `gorm:"foreignKey:OrderItemID"`
}

// TableName specifies the database table name for order items.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// OrderItemComplementDTO represents one persisted complement snapshot.
type OrderItemComplementDTO struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	OrderItemID uuid.UUID `gorm:"type:uuid;index"`
	OptionID    uuid.UUID `gorm:"type:uuid"`
	Name        string
	PriceCents  int64
	Quantity    int
}

// TableName specifies the database table name for item complements.
func (OrderItemComplementDTO) TableName() string {
	return "order_item_complements"
}

// PaymentDTO represents the payment record taken for an order.
type PaymentDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID `gorm:"type:uuid;index"`
	OrderID     uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Method      int
	AmountCents int64
	CreatedAt   time.Time
}

// TableName specifies the database table name for payments.
func (PaymentDTO) TableName() string {
	return "payments"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, itemFromDomain(aggregate.ID(), item))
	}

	return OrderDTO{
		ID:                 aggregate.ID().Bytes(),
		TenantID:           aggregate.TenantID().Bytes(),
		Number:             aggregate.Number(),
		Status:             int(aggregate.Status()),
		Mode:               int(aggregate.Mode()),
		CustomerID:         optionalUUID(aggregate.CustomerID()),
		CustomerName:       aggregate.CustomerName(),
		CustomerPhone:      aggregate.CustomerPhone(),
		SubtotalCents:      aggregate.Subtotal().Cents(),
		DeliveryFeeCents:   aggregate.DeliveryFee().Cents(),
		TotalCents:         aggregate.Total().Cents(),
		PaymentStatus:      int(aggregate.PaymentStatus()),
		TableID:            optionalUUID(aggregate.TableID()),
		CourierID:          optionalUUID(aggregate.CourierID()),
		LoyaltyPoints:      aggregate.LoyaltyPoints(),
		CancellationReason: aggregate.CancellationReason(),
		CancelledAt:        aggregate.CancelledAt(),
		Items:              items,
		CreatedAt:          aggregate.CreatedAt(),
	}
}

func itemFromDomain(orderID kernel.UUID, item *order.Item) OrderItemDTO {
	complements := make([]OrderItemComplementDTO, 0, len(item.Complements()))
	for _, c := range item.Complements() {
		complements = append(complements, OrderItemComplementDTO{
			OrderItemID: item.ID().Bytes(),
			OptionID:    c.OptionID().Bytes(),
			Name:        c.Name(),
			PriceCents:  c.Price().Cents(),
			Quantity:    c.Quantity(),
		})
	}

	return OrderItemDTO{
		ID:                    item.ID().Bytes(),
		OrderID:               orderID.Bytes(),
		ProductID:             item.ProductID().Bytes(),
		ProductName:           item.ProductName(),
		UnitPriceCents:        item.UnitPrice().Cents(),
		Quantity:              item.Quantity(),
		Notes:                 item.Notes(),
		ComplementsPriceCents: item.ComplementsPrice().Cents(),
		SubtotalCents:         item.Subtotal().Cents(),
		Complements:           complements,
	}
}

func paymentFromDomain(payment *order.Payment) PaymentDTO {
	return PaymentDTO{
		ID:          payment.ID().Bytes(),
		TenantID:    payment.TenantID().Bytes(),
		OrderID:     payment.OrderID().Bytes(),
		Method:      int(payment.Method()),
		AmountCents: payment.Amount().Cents(),
		CreatedAt:   payment.CreatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := domainOptionalUUID(dto.CustomerID)
	if err != nil {
		return nil, err
	}
	tableID, err := domainOptionalUUID(dto.TableID)
	if err != nil {
		return nil, err
	}
	courierID, err := domainOptionalUUID(dto.CourierID)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		tenantID,
		dto.Number,
		order.Status(dto.Status),
		order.Mode(dto.Mode),
		customerID,
		dto.CustomerName,
		dto.CustomerPhone,
		kernel.NewMoneyFromCents(dto.SubtotalCents),
		kernel.NewMoneyFromCents(dto.DeliveryFeeCents),
		kernel.NewMoneyFromCents(dto.TotalCents),
		order.PaymentStatus(dto.PaymentStatus),
		tableID,
		courierID,
		dto.LoyaltyPoints,
		dto.CancellationReason,
		dto.CancelledAt,
		items,
		dto.CreatedAt,
	)
}

func itemToDomain(dto OrderItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	complements := make([]order.ItemComplement, 0, len(dto.Complements))
	for _, cDTO := range dto.Complements {
		optionID, cErr := kernel.UUIDFromBytes(cDTO.OptionID[:])
		if cErr != nil {
			return nil, cErr
		}
		complement, cErr := order.NewItemComplement(
			optionID, cDTO.Name, kernel.NewMoneyFromCents(cDTO.PriceCents), cDTO.Quantity)
		if cErr != nil {
			return nil, cErr
		}
		complements = append(complements, complement)
	}

	return order.RestoreItem(
		id,
		productID,
		dto.ProductName,
		kernel.NewMoneyFromCents(dto.UnitPriceCents),
		dto.Quantity,
		dto.Notes,
		complements,
		kernel.NewMoneyFromCents(dto.ComplementsPriceCents),
		kernel.NewMoneyFromCents(dto.SubtotalCents),
	), nil
}

func optionalUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func domainOptionalUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	parsed, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
