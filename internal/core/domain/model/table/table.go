// Package table provides the dine-in Table aggregate and its occupancy rules.
//
// A table is a binary-occupancy entity: it either holds exactly one active
// order or none. The invariant "status == occupied iff currentOrderID != nil"
// is enforced by the mutation methods; the persistence layer additionally
// guards the free->occupied edge with a conditional update so two concurrent
// opens cannot double-book a table.
package table

import (
	"errors"
	"fmt"
	"time"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/pkg/errs"
)

var (
	// ErrTableIsNotFree indicates an occupy attempt on a table that already
	// holds an order (or is reserved). Also returned by the persistence
	// layer when the conditional occupancy update hits zero rows.
	ErrTableIsNotFree = errors.New("table is not free")

	// ErrTableIsNotOccupied indicates an operation that requires a seated
	// order (transfer source, close) on a table without one.
	ErrTableIsNotOccupied = errors.New("table is not occupied")

	// ErrTableIsNotConstructed is returned when a Table was not created via
	// NewTable or RestoreTable.
	ErrTableIsNotConstructed = errors.New("Table must be created via NewTable or RestoreTable")
)

// Status is the occupancy state of a table.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusFree means the table can seat a new order.
	StatusFree

	// StatusOccupied means the table holds an active order.
	StatusOccupied

	// StatusReserved means the table is blocked for a future booking and
	// cannot seat a walk-in order.
	StatusReserved
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:  "unknown",
		StatusFree:     "free",
		StatusOccupied: "occupied",
		StatusReserved: "reserved",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if s != StatusFree && s != StatusOccupied && s != StatusReserved {
		return errs.NewValueIsInvalidErrorWithCause("table status", fmt.Errorf("%d is not a valid table status", int(s)))
	}
	return nil
}

// String returns the wire name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Table represents one physical seat group in the restaurant.
//
// Invariants:
//   - status == StatusOccupied iff currentOrderID is non-nil
//   - occupiedAt is set exactly while the table is occupied
//   - at most one table references a given active order (enforced by a
//     unique index in the persistence layer)
type Table struct {
	id       kernel.UUID
	tenantID kernel.UUID

	number   int
	capacity int

	status         Status
	currentOrderID *kernel.UUID
	occupiedAt     *time.Time

	isConstructed bool
}

// NewTable creates a free table.
func NewTable(id, tenantID kernel.UUID, number, capacity int) (*Table, error) {
	if err := errors.Join(id.Validate(), tenantID.Validate()); err != nil {
		return nil, err
	}
	if number < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"table number", fmt.Errorf("%d is not greater than 0", number))
	}
	if capacity < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"table capacity", fmt.Errorf("%d is not greater than 0", capacity))
	}

	return &Table{
		id:            id,
		tenantID:      tenantID,
		number:        number,
		capacity:      capacity,
		status:        StatusFree,
		isConstructed: true,
	}, nil
}

// RestoreTable reconstructs a table from persistence.
func RestoreTable(
	id, tenantID kernel.UUID,
	number, capacity int,
	status Status,
	currentOrderID *kernel.UUID,
	occupiedAt *time.Time,
) (*Table, error) {
	if err := errors.Join(id.Validate(), tenantID.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Table{
		id:             id,
		tenantID:       tenantID,
		number:         number,
		capacity:       capacity,
		status:         status,
		currentOrderID: currentOrderID,
		occupiedAt:     occupiedAt,
		isConstructed:  true,
	}, nil
}

// Validate ensures the Table was created via NewTable or RestoreTable.
func (t *Table) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTableIsNotConstructed
	}
	return nil
}

// ID returns the table identifier.
func (t *Table) ID() kernel.UUID { return t.id }

// TenantID returns the owning tenant.
func (t *Table) TenantID() kernel.UUID { return t.tenantID }

// Number returns the table's display number.
func (t *Table) Number() int { return t.number }

// Capacity returns the number of seats.
func (t *Table) Capacity() int { return t.capacity }

// Status returns the occupancy status.
func (t *Table) Status() Status { return t.status }

// CurrentOrderID returns the active order bound to the table, nil when free.
func (t *Table) CurrentOrderID() *kernel.UUID { return t.currentOrderID }

// OccupiedAt returns when the current occupancy started, nil when free.
func (t *Table) OccupiedAt() *time.Time { return t.occupiedAt }

// IsFree reports whether the table can seat a new order.
func (t *Table) IsFree() bool {
	return t.status == StatusFree
}

// Occupy binds the table to an order. Fails with ErrTableIsNotFree unless the
// table is currently free.
func (t *Table) Occupy(orderID kernel.UUID, at time.Time) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if !t.IsFree() {
		return ErrTableIsNotFree
	}

	t.status = StatusOccupied
	t.currentOrderID = &orderID
	t.occupiedAt = &at
	return nil
}

// Receive binds the table to an order transferred from another table,
// preserving the original occupation time for accurate dwell-time reporting.
func (t *Table) Receive(orderID kernel.UUID, originalOccupiedAt time.Time) error {
	return t.Occupy(orderID, originalOccupiedAt)
}

// Free releases the table unconditionally, clearing the order binding.
// Freeing an already-free table is a no-op, keeping closures self-healing
// against orphaned occupancy state.
func (t *Table) Free() {
	t.status = StatusFree
	t.currentOrderID = nil
	t.occupiedAt = nil
}
