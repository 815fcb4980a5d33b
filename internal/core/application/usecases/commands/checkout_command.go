package commands

import (
	"errors"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/order"
	"comanda/internal/pkg/guard"
)

var (
	ErrCheckoutCommandIsNotConstructed = errors.New(
		"CheckoutCommand must be created via NewCheckoutCommand constructor",
	)
	ErrDeliveryFeeNotAllowed = errors.New("delivery fee is only allowed for delivery orders")
	ErrTableIsRequired       = errors.New("table id is required for table orders")
	ErrTableNotAllowed       = errors.New("table id is only allowed for table orders")
	ErrPaymentMethodRequired = errors.New("payment method is required for counter and delivery orders")
	ErrPaymentMethodDeferred = errors.New("payment method must be omitted for table orders")
)

// CheckoutCommand represents a counter/POS sale request: a complete order with
// its items, an immediate payment (except for table mode, where payment is
// deferred to closure) and optional table occupation.
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	tenantID kernel.UUID
	actorID  kernel.UUID

	mode order.Mode

	customerID    *kernel.UUID
	customerName  string
	customerPhone string

	deliveryFee   kernel.Money
	tableID       *kernel.UUID
	paymentMethod order.PaymentMethod

	items []ItemInput

	guard guard.ConstructorGuard
}

// NewCheckoutCommand creates a checkout command.
// Validates identifier and mode consistency: a delivery fee only on delivery
// orders, a table reference exactly on table orders, and a payment method on
// everything except table orders.
func NewCheckoutCommand(
	orderID, tenantID, actorID kernel.UUID,
	mode order.Mode,
	customerID *kernel.UUID,
	customerName, customerPhone string,
	deliveryFee kernel.Money,
	tableID *kernel.UUID,
	paymentMethod order.PaymentMethod,
	items []ItemInput,
) (CheckoutCommand, error) {
	cmd := CheckoutCommand{
		customerName:  customerName,
		customerPhone: customerPhone,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIdentity(orderID, tenantID, actorID),
		cmd.setMode(mode),
		cmd.setCustomerID(customerID),
		cmd.setItems(items),
	); err != nil {
		return CheckoutCommand{}, err
	}

	if err := errors.Join(
		cmd.setDeliveryFee(deliveryFee),
		cmd.setTableID(tableID),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return CheckoutCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will be created under.
func (c CheckoutCommand) OrderID() kernel.UUID { return c.orderID }

// TenantID returns the tenant the sale belongs to.
func (c CheckoutCommand) TenantID() kernel.UUID { return c.tenantID }

// ActorID returns the operator performing the sale.
func (c CheckoutCommand) ActorID() kernel.UUID { return c.actorID }

// Mode returns the fulfillment mode.
func (c CheckoutCommand) Mode() order.Mode { return c.mode }

// CustomerID returns the linked customer, nil for anonymous sales.
func (c CheckoutCommand) CustomerID() *kernel.UUID { return c.customerID }

// CustomerName returns the explicitly entered customer name, may be empty.
func (c CheckoutCommand) CustomerName() string { return c.customerName }

// CustomerPhone returns the explicitly entered customer phone, may be empty.
func (c CheckoutCommand) CustomerPhone() string { return c.customerPhone }

// DeliveryFee returns the delivery fee, zero for non-delivery modes.
func (c CheckoutCommand) DeliveryFee() kernel.Money { return c.deliveryFee }

// TableID returns the table to occupy, nil unless mode is table.
func (c CheckoutCommand) TableID() *kernel.UUID { return c.tableID }

// PaymentMethod returns how the sale is paid, unknown for table mode.
func (c CheckoutCommand) PaymentMethod() order.PaymentMethod { return c.paymentMethod }

// Items returns the requested order lines.
func (c CheckoutCommand) Items() []ItemInput { return c.items }

func (c *CheckoutCommand) setIdentity(orderID, tenantID, actorID kernel.UUID) error {
	if err := errors.Join(orderID.Validate(), tenantID.Validate(), actorID.Validate()); err != nil {
		return err
	}

	c.orderID = orderID
	c.tenantID = tenantID
	c.actorID = actorID
	return nil
}

func (c *CheckoutCommand) setMode(mode order.Mode) error {
	if err := mode.Validate(); err != nil {
		return err
	}

	c.mode = mode
	return nil
}

func (c *CheckoutCommand) setCustomerID(customerID *kernel.UUID) error {
	if customerID != nil {
		if err := customerID.Validate(); err != nil {
			return err
		}
	}

	c.customerID = customerID
	return nil
}

func (c *CheckoutCommand) setItems(items []ItemInput) error {
	if err := validateItemInputs(items); err != nil {
		return err
	}

	c.items = items
	return nil
}

func (c *CheckoutCommand) setDeliveryFee(fee kernel.Money) error {
	if err := fee.ValidateNonNegative("delivery fee"); err != nil {
		return err
	}
	if c.mode != order.ModeDelivery && !fee.IsZero() {
		return ErrDeliveryFeeNotAllowed
	}

	c.deliveryFee = fee
	return nil
}

func (c *CheckoutCommand) setTableID(tableID *kernel.UUID) error {
	if c.mode == order.ModeTable {
		if tableID == nil {
			return ErrTableIsRequired
		}
		if err := tableID.Validate(); err != nil {
			return err
		}
	} else if tableID != nil {
		return ErrTableNotAllowed
	}

	c.tableID = tableID
	return nil
}

func (c *CheckoutCommand) setPaymentMethod(method order.PaymentMethod) error {
	if c.mode == order.ModeTable {
		if method != order.PaymentMethodUnknown {
			return ErrPaymentMethodDeferred
		}
		return nil
	}

	if method == order.PaymentMethodUnknown {
		return ErrPaymentMethodRequired
	}
	if err := method.Validate(); err != nil {
		return err
	}

	c.paymentMethod = method
	return nil
}
