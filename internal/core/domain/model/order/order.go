package order

import (
	"errors"
	"fmt"
	"time"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through one of the factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder, NewTableOrder or RestoreOrder")

	// ErrNumberConflict indicates the order number was taken by a concurrent
	// creation under the same tenant. The persistence adapter maps the unique
	// index violation to this error; creation flows retry on it.
	ErrNumberConflict = errors.New("order number already taken for tenant")

	// ErrOrderAlreadyCancelled marks an attempted compensation on an order
	// whose cancellation already ran. Callers treat it as a no-op signal.
	ErrOrderAlreadyCancelled = errors.New("order is already cancelled")
)

// DefaultCounterCustomerName is the fallback customer name for counter sales
// with no explicit name and no linked customer.
const DefaultCounterCustomerName = "Cliente Balcão"

// Order is the aggregate root for the order lifecycle. It owns its line items
// and their complement snapshots, and it is the only place where the monetary
// invariant is computed:
//
//	total == subtotal + deliveryFee
//	subtotal == sum(items.Subtotal())
//
// Status changes go through the state machine (strict transition table);
// item changes always re-derive the totals. Orders are never hard-deleted:
// cancellation is a terminal status.
type Order struct {
	id       kernel.UUID
	tenantID kernel.UUID

	// number is the tenant-scoped sequential order number, unique per tenant.
	number int

	status Status
	mode   Mode

	customerID    *kernel.UUID
	customerName  string
	customerPhone string

	subtotal    kernel.Money
	deliveryFee kernel.Money
	total       kernel.Money

	paymentStatus PaymentStatus

	tableID   *kernel.UUID
	courierID *kernel.UUID

	// loyaltyPoints is the number of points accrued for this order,
	// kept so cancellation can reverse exactly what was granted.
	loyaltyPoints int

	cancellationReason string
	cancelledAt        *time.Time

	items []*Item

	createdAt time.Time

	isConstructed bool
}

// NewOrder creates a counter/POS or storefront order in StatusNew.
// Totals start at zero and are derived as items are added.
func NewOrder(
	id kernel.UUID,
	tenantID kernel.UUID,
	number int,
	mode Mode,
	customerID *kernel.UUID,
	customerName string,
	customerPhone string,
	deliveryFee kernel.Money,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        StatusNew,
		paymentStatus: PaymentPending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setIdentity(id, tenantID),
		o.setNumber(number),
		o.setMode(mode),
		o.setCustomer(customerID, customerName, customerPhone),
		deliveryFee.ValidateNonNegative("delivery fee"),
	); err != nil {
		return nil, err
	}

	o.deliveryFee = deliveryFee
	o.createdAt = createdAt
	o.recalculateTotals()
	return o, nil
}

// NewTableOrder creates the near-empty order that opening a dine-in table
// produces: StatusPreparing, ModeTable, zero totals, bound to the table.
func NewTableOrder(
	id kernel.UUID,
	tenantID kernel.UUID,
	number int,
	tableID kernel.UUID,
	customerID *kernel.UUID,
	customerName string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        StatusPreparing,
		paymentStatus: PaymentPending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setIdentity(id, tenantID),
		o.setNumber(number),
		tableID.Validate(),
		o.setCustomer(customerID, customerName, ""),
	); err != nil {
		return nil, err
	}

	o.mode = ModeTable
	o.tableID = &tableID
	o.createdAt = createdAt
	o.recalculateTotals()
	return o, nil
}

// RestoreOrder reconstructs an order from persistence.
// The stored status and totals are trusted; items come pre-built.
func RestoreOrder(
	id kernel.UUID,
	tenantID kernel.UUID,
	number int,
	status Status,
	mode Mode,
	customerID *kernel.UUID,
	customerName string,
	customerPhone string,
	subtotal kernel.Money,
	deliveryFee kernel.Money,
	total kernel.Money,
	paymentStatus PaymentStatus,
	tableID *kernel.UUID,
	courierID *kernel.UUID,
	loyaltyPoints int,
	cancellationReason string,
	cancelledAt *time.Time,
	items []*Item,
	createdAt time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		tenantID.Validate(),
		status.Validate(),
		mode.Validate(),
		paymentStatus.Validate(),
	); err != nil {
		return nil, err
	}

	return &Order{
		id:                 id,
		tenantID:           tenantID,
		number:             number,
		status:             status,
		mode:               mode,
		customerID:         customerID,
		customerName:       customerName,
		customerPhone:      customerPhone,
		subtotal:           subtotal,
		deliveryFee:        deliveryFee,
		total:              total,
		paymentStatus:      paymentStatus,
		tableID:            tableID,
		courierID:          courierID,
		loyaltyPoints:      loyaltyPoints,
		cancellationReason: cancellationReason,
		cancelledAt:        cancelledAt,
		items:              items,
		createdAt:          createdAt,
		isConstructed:      true,
	}, nil
}

// Validate ensures the Order instance was created through a factory function.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// TenantID returns the owning tenant.
func (o *Order) TenantID() kernel.UUID { return o.tenantID }

// Number returns the tenant-scoped sequential order number.
func (o *Order) Number() int { return o.number }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// Mode returns the fulfillment mode.
func (o *Order) Mode() Mode { return o.mode }

// CustomerID returns the linked customer, nil for anonymous orders.
func (o *Order) CustomerID() *kernel.UUID { return o.customerID }

// CustomerName returns the denormalized customer display name.
func (o *Order) CustomerName() string { return o.customerName }

// CustomerPhone returns the denormalized customer phone.
func (o *Order) CustomerPhone() string { return o.customerPhone }

// Subtotal returns the sum of all item subtotals.
func (o *Order) Subtotal() kernel.Money { return o.subtotal }

// DeliveryFee returns the delivery fee (zero for pickup and table orders).
func (o *Order) DeliveryFee() kernel.Money { return o.deliveryFee }

// Total returns subtotal + delivery fee.
func (o *Order) Total() kernel.Money { return o.total }

// PaymentStatus reports whether a payment has been recorded.
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }

// TableID returns the bound dine-in table, nil for other modes.
func (o *Order) TableID() *kernel.UUID { return o.tableID }

// CourierID returns the assigned courier, nil if unassigned.
func (o *Order) CourierID() *kernel.UUID { return o.courierID }

// LoyaltyPoints returns the points accrued for this order.
func (o *Order) LoyaltyPoints() int { return o.loyaltyPoints }

// CancellationReason returns the free-text reason recorded at cancellation.
func (o *Order) CancellationReason() string { return o.cancellationReason }

// CancelledAt returns the cancellation time, nil if not cancelled.
func (o *Order) CancelledAt() *time.Time { return o.cancelledAt }

// Items returns the order's line items.
func (o *Order) Items() []*Item { return o.items }

// CreatedAt returns the creation time.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// AddItems appends line items and re-derives the totals.
func (o *Order) AddItems(items ...*Item) {
	o.items = append(o.items, items...)
	o.recalculateTotals()
}

// ReplaceItems swaps the whole item tree (order editing) and re-derives the
// totals. Reconciliation against the previous tree (which rows to delete,
// update or insert) is the persistence layer's concern; net stock effects are
// the caller's.
func (o *Order) ReplaceItems(items []*Item) error {
	if o.status.IsTerminal() {
		return errs.NewBusinessRuleViolatedErrorWithCause(
			"order items cannot be edited",
			fmt.Errorf("order is %s", o.status),
		)
	}
	o.items = items
	o.recalculateTotals()
	return nil
}

// TransitionTo moves the order to a new status through the state machine.
// Returns changed == false (and no error) when the target equals the current
// status, making repeated transition requests idempotent.
func (o *Order) TransitionTo(target Status) (bool, error) {
	if target == o.status {
		return false, nil
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return false, err
	}

	o.status = newStatus
	return true, nil
}

// AssignCourier sets the courier reference. If the order is still in an early
// stage (new, preparing, ready) it also advances the status to
// waiting_motoboy; it never demotes an order already past that point.
func (o *Order) AssignCourier(courierID kernel.UUID) (statusChanged bool, err error) {
	if err := courierID.Validate(); err != nil {
		return false, err
	}
	if o.status.IsTerminal() {
		return false, errs.NewBusinessRuleViolatedErrorWithCause(
			"courier cannot be assigned",
			fmt.Errorf("order is %s", o.status),
		)
	}

	o.courierID = &courierID

	switch o.status {
	case StatusNew, StatusPreparing, StatusReady:
		o.status = StatusWaitingMotoboy
		return true, nil
	default:
		return false, nil
	}
}

// Cancel transitions the order to cancelled, recording reason and timestamp.
// Returns changed == false when the order is already cancelled (idempotent);
// cancelling a delivered order is an invalid transition and fails.
func (o *Order) Cancel(reason string, at time.Time) (bool, error) {
	if o.status == StatusCancelled {
		return false, nil
	}

	newStatus, err := o.status.TransitionTo(StatusCancelled)
	if err != nil {
		return false, err
	}

	o.status = newStatus
	o.cancellationReason = reason
	o.cancelledAt = &at
	return true, nil
}

// MarkPaid records that a payment exists for the order.
func (o *Order) MarkPaid() {
	o.paymentStatus = PaymentPaid
}

// AccrueLoyaltyPoints remembers how many points were granted for this order
// so that cancellation can compensate exactly that amount.
func (o *Order) AccrueLoyaltyPoints(points int) error {
	if points < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"loyalty points", fmt.Errorf("%d is negative", points))
	}
	o.loyaltyPoints = points
	return nil
}

// ClearLoyaltyPoints zeroes the accrued points after a successful reversal.
func (o *Order) ClearLoyaltyPoints() {
	o.loyaltyPoints = 0
}

// MoveToTable re-points the order to another dine-in table (table transfer).
func (o *Order) MoveToTable(tableID kernel.UUID) error {
	if err := tableID.Validate(); err != nil {
		return err
	}
	if o.mode != ModeTable {
		return errs.NewBusinessRuleViolatedErrorWithCause(
			"order cannot be moved between tables",
			fmt.Errorf("order mode is %s", o.mode),
		)
	}
	o.tableID = &tableID
	return nil
}

// recalculateTotals is the single place the monetary invariant is derived.
func (o *Order) recalculateTotals() {
	var subtotal kernel.Money
	for _, item := range o.items {
		subtotal = subtotal.Add(item.Subtotal())
	}
	o.subtotal = subtotal
	o.total = subtotal.Add(o.deliveryFee)
}

func (o *Order) setIdentity(id, tenantID kernel.UUID) error {
	if err := errors.Join(id.Validate(), tenantID.Validate()); err != nil {
		return err
	}
	o.id = id
	o.tenantID = tenantID
	return nil
}

func (o *Order) setNumber(number int) error {
	if number < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"order number", fmt.Errorf("%d is not greater than 0", number))
	}
	o.number = number
	return nil
}

func (o *Order) setMode(mode Mode) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	o.mode = mode
	return nil
}

func (o *Order) setCustomer(customerID *kernel.UUID, name, phone string) error {
	if customerID != nil {
		if err := customerID.Validate(); err != nil {
			return err
		}
	}
	o.customerID = customerID
	o.customerName = name
	o.customerPhone = phone
	return nil
}

// ResolveCustomerName applies the display-name precedence for order creation:
// explicit name > linked customer's name > "Mesa {n}" for unlinked dine-in >
// the counter-sale default.
func ResolveCustomerName(explicitName, linkedCustomerName string, mode Mode, tableNumber int) string {
	switch {
	case explicitName != "":
		return explicitName
	case linkedCustomerName != "":
		return linkedCustomerName
	case mode == ModeTable:
		return fmt.Sprintf("Mesa %d", tableNumber)
	default:
		return DefaultCounterCustomerName
	}
}
