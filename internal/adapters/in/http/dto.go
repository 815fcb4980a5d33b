package http

import (
	"time"

	"comanda/internal/core/application/usecases/commands"
	"comanda/internal/core/domain/model/kernel"
)

// ItemComplementRequest selects a complement option for an item line.
type ItemComplementRequest struct {
	OptionID string `json:"option_id"`
	Quantity int    `json:"quantity"`
}

// ItemRequest is one requested order line. Prices are never accepted from the
// client; the catalog is the only price source.
type ItemRequest struct {
	ProductID   string                  `json:"product_id"`
	Quantity    int                     `json:"quantity"`
	Notes       string                  `json:"notes"`
	Complements []ItemComplementRequest `json:"complements"`
}

// CheckoutRequest is the body of POST /orders.
type CheckoutRequest struct {
	Mode             string        `json:"mode"`
	CustomerID       *string       `json:"customer_id"`
	CustomerName     string        `json:"customer_name"`
	CustomerPhone    string        `json:"customer_phone"`
	DeliveryFeeCents int64         `json:"delivery_fee_cents"`
	TableID          *string       `json:"table_id"`
	PaymentMethod    string        `json:"payment_method"`
	Items            []ItemRequest `json:"items"`
}

// OpenTableRequest is the body of POST /tables/{id}/open.
type OpenTableRequest struct {
	CustomerID   *string `json:"customer_id"`
	CustomerName string  `json:"customer_name"`
}

// AddTableItemsRequest is the body of POST /tables/{id}/items.
type AddTableItemsRequest struct {
	Items []ItemRequest `json:"items"`
}

// CloseTableRequest is the body of POST /tables/{id}/close.
type CloseTableRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// TransferTableRequest is the body of POST /tables/{id}/transfer.
type TransferTableRequest struct {
	TargetTableID string `json:"target_table_id"`
}

// UpdateItemRequest is one line of PUT /orders/{id}/items. A line without an
// item_id creates a new item; one with it updates the existing item.
type UpdateItemRequest struct {
	ItemID      *string                 `json:"item_id"`
	ProductID   string                  `json:"product_id"`
	Quantity    int                     `json:"quantity"`
	Notes       string                  `json:"notes"`
	Complements []ItemComplementRequest `json:"complements"`
}

// UpdateOrderItemsRequest is the body of PUT /orders/{id}/items.
type UpdateOrderItemsRequest struct {
	Items []UpdateItemRequest `json:"items"`
}

// TransitionStatusRequest is the body of POST /orders/{id}/status.
type TransitionStatusRequest struct {
	Status string `json:"status"`
}

// AssignCourierRequest is the body of POST /orders/{id}/courier.
type AssignCourierRequest struct {
	CourierID string `json:"courier_id"`
}

// CancelOrderRequest is the body of POST /orders/{id}/cancel.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// OrderCreatedResponse is the body of a successful creation.
type OrderCreatedResponse struct {
	OrderID string `json:"order_id"`
}

type activeOrderResponse struct {
	ID            string    `json:"id"`
	Number        int       `json:"number"`
	Status        string    `json:"status"`
	Mode          string    `json:"mode"`
	CustomerName  string    `json:"customer_name"`
	TotalCents    int64     `json:"total_cents"`
	PaymentStatus string    `json:"payment_status"`
	TableID       *string   `json:"table_id,omitempty"`
	CourierID     *string   `json:"courier_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type tableBoardResponse struct {
	ID          string     `json:"id"`
	Number      int        `json:"number"`
	Capacity    int        `json:"capacity"`
	Status      string     `json:"status"`
	OccupiedAt  *time.Time `json:"occupied_at,omitempty"`
	OrderID     *string    `json:"order_id,omitempty"`
	OrderNumber *int       `json:"order_number,omitempty"`
	TotalCents  *int64     `json:"total_cents,omitempty"`
}

func toItemInputs(requests []ItemRequest) ([]commands.ItemInput, error) {
	items := make([]commands.ItemInput, 0, len(requests))
	for _, req := range requests {
		productID, err := kernel.UUIDFromString(req.ProductID)
		if err != nil {
			return nil, err
		}
		complements, err := toComplementInputs(req.Complements)
		if err != nil {
			return nil, err
		}

		items = append(items, commands.ItemInput{
			ProductID:   productID,
			Quantity:    req.Quantity,
			Notes:       req.Notes,
			Complements: complements,
		})
	}
	return items, nil
}

func toItemUpdateInputs(requests []UpdateItemRequest) ([]commands.ItemUpdateInput, error) {
	items := make([]commands.ItemUpdateInput, 0, len(requests))
	for _, req := range requests {
		productID, err := kernel.UUIDFromString(req.ProductID)
		if err != nil {
			return nil, err
		}
		itemID, err := optionalID(req.ItemID)
		if err != nil {
			return nil, err
		}
		complements, err := toComplementInputs(req.Complements)
		if err != nil {
			return nil, err
		}

		items = append(items, commands.ItemUpdateInput{
			ItemID:      itemID,
			ProductID:   productID,
			Quantity:    req.Quantity,
			Notes:       req.Notes,
			Complements: complements,
		})
	}
	return items, nil
}

func toComplementInputs(requests []ItemComplementRequest) ([]commands.ItemComplementInput, error) {
	if len(requests) == 0 {
		return nil, nil
	}

	complements := make([]commands.ItemComplementInput, 0, len(requests))
	for _, req := range requests {
		optionID, err := kernel.UUIDFromString(req.OptionID)
		if err != nil {
			return nil, err
		}
		complements = append(complements, commands.ItemComplementInput{
			OptionID: optionID,
			Quantity: req.Quantity,
		})
	}
	return complements, nil
}

func optionalID(raw *string) (*kernel.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
