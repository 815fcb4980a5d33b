// Package audit provides the append-only, actor-attributed record of domain
// events. Every guarded operation (status transition, cancellation, table
// transfer, checkout) writes an entry inside the same transaction as the
// change it describes.
package audit

import (
	"errors"
	"time"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/pkg/errs"
)

// ErrEntryIsNotConstructed is returned when an Entry was not created via NewEntry.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

// Action tags recorded by the orchestration core.
const (
	ActionOrderCreated      = "order_created"
	ActionOrderStatusMoved  = "order_status_moved"
	ActionOrderCancelled    = "order_cancelled"
	ActionOrderItemsEdited  = "order_items_edited"
	ActionCourierAssigned   = "courier_assigned"
	ActionTableOpened       = "table_opened"
	ActionTableClosed       = "table_closed"
	ActionTableTransferred  = "table_transferred"
	ActionTableFreedBySweep = "table_freed_by_sweep"
)

// Entry is one immutable audit record: who did what to which entity, with
// small before/after payload fragments for operator diagnosis.
type Entry struct {
	id       kernel.UUID
	tenantID kernel.UUID
	actorID  kernel.UUID

	action       string
	subjectModel string
	subjectID    kernel.UUID

	before map[string]any
	after  map[string]any

	createdAt time.Time

	isConstructed bool
}

// NewEntry creates an audit record. before/after may be nil when the action
// has no meaningful diff (pure creations carry only after).
func NewEntry(
	id, tenantID, actorID kernel.UUID,
	action, subjectModel string,
	subjectID kernel.UUID,
	before, after map[string]any,
	createdAt time.Time,
) (*Entry, error) {
	if err := errors.Join(
		id.Validate(),
		tenantID.Validate(),
		actorID.Validate(),
		subjectID.Validate(),
	); err != nil {
		return nil, err
	}
	if action == "" {
		return nil, errs.NewValueIsRequiredError("action")
	}
	if subjectModel == "" {
		return nil, errs.NewValueIsRequiredError("subject model")
	}

	return &Entry{
		id:            id,
		tenantID:      tenantID,
		actorID:       actorID,
		action:        action,
		subjectModel:  subjectModel,
		subjectID:     subjectID,
		before:        before,
		after:         after,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Entry was created via NewEntry.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry identifier.
func (e *Entry) ID() kernel.UUID { return e.id }

// TenantID returns the owning tenant.
func (e *Entry) TenantID() kernel.UUID { return e.tenantID }

// ActorID returns who performed the action.
func (e *Entry) ActorID() kernel.UUID { return e.actorID }

// Action returns the action tag.
func (e *Entry) Action() string { return e.action }

// SubjectModel returns the kind of entity acted on ("order", "table").
func (e *Entry) SubjectModel() string { return e.subjectModel }

// SubjectID returns the identifier of the entity acted on.
func (e *Entry) SubjectID() kernel.UUID { return e.subjectID }

// Before returns the payload fragment describing the prior state.
func (e *Entry) Before() map[string]any { return e.before }

// After returns the payload fragment describing the resulting state.
func (e *Entry) After() map[string]any { return e.after }

// CreatedAt returns when the entry was recorded.
func (e *Entry) CreatedAt() time.Time { return e.createdAt }
