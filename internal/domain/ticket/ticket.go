package ticket

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/raksha360/backend/internal/domain"
)

// State transition possibilities:
//
//	open        → in_progress, resolved, rejected, closed
//	in_progress → resolved, rejected, closed
//
// resolved, rejected and closed are terminal; transitions out of them
// are rejected rather than silently overwritten.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusRejected   Status = "rejected"
	StatusClosed     Status = "closed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusRejected, StatusClosed:
		return true
	}
	return false
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusResolved, StatusRejected, StatusClosed:
		return true
	}
	return false
}

// Well-known ticket types. Type is free text; these are the values the
// hospital portal emits.
const (
	TypeOnboardHospital = "onboard_hospital"
	TypeGetDoctor       = "get_doctor"
	TypeGetStaff        = "get_staff"
	TypeGetPro          = "get_pro"
)

// Note is one entry in the append-only notes log. Notes are kept apart
// from the caller-replaceable payload so appending never races with a
// payload replacement in the same update.
type Note struct {
	AuthorKind domain.Role `json:"author_kind"`
	AuthorID   uuid.UUID   `json:"author_id"`
	Text       string      `json:"text"`
	Timestamp  time.Time   `json:"timestamp"`
}

type Ticket struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	// Nil for system-level tickets created by an admin with no target.
	HospitalID *uuid.UUID `gorm:"column:hospital_id;type:uuid;index"`

	Type    string `gorm:"column:type;type:varchar(100);not null;index"`
	Details string `gorm:"column:details;type:text"`

	// Payload is an extensible bag of structured data; updates replace it
	// wholesale. Notes accumulate separately.
	Payload datatypes.JSON `gorm:"column:payload;type:jsonb"`
	Notes   []Note         `gorm:"column:notes;serializer:json"`

	Status          Status     `gorm:"column:status;type:varchar(30);not null;default:'open';index"`
	AssignedAdminID *uuid.UUID `gorm:"column:assigned_admin_id;type:uuid;index"`

	// Attribution, split by actor kind. Both may accumulate over a
	// ticket's lifetime as hospitals and admins take turns updating it.
	LastUpdatedByHospital *uuid.UUID `gorm:"column:last_updated_by_hospital;type:uuid"`
	LastUpdatedByAdmin    *uuid.UUID `gorm:"column:last_updated_by_admin;type:uuid"`

	ClosedAt         *time.Time `gorm:"column:closed_at"`
	ClosedByHospital *uuid.UUID `gorm:"column:closed_by_hospital;type:uuid"`
	ClosedByAdmin    *uuid.UUID `gorm:"column:closed_by_admin;type:uuid"`
}

func (Ticket) TableName() string {
	return "ops.tickets"
}

var transitions = map[Status][]Status{
	StatusOpen:       {StatusInProgress, StatusResolved, StatusRejected, StatusClosed},
	StatusInProgress: {StatusResolved, StatusRejected, StatusClosed},
	StatusResolved:   {},
	StatusRejected:   {},
	StatusClosed:     {},
}

func (t *Ticket) CanTransitionTo(next Status) bool {
	for _, s := range transitions[t.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// Transition moves the ticket to next, stamping closure attribution when
// next is resolved or closed. The closing actor's kind decides which
// closed_by column is set; exactly one is ever stamped per closure.
func (t *Ticket) Transition(next Status, actor domain.Actor) error {
	if !next.IsValid() {
		return ErrInvalidStatus
	}
	if !t.CanTransitionTo(next) {
		return ErrInvalidStatusTransition
	}

	t.Status = next

	if next == StatusResolved || next == StatusClosed {
		now := time.Now().UTC()
		t.ClosedAt = &now
		id := actor.ID
		switch actor.Role {
		case domain.RoleHospital:
			t.ClosedByHospital = &id
		default:
			t.ClosedByAdmin = &id
		}
	}

	return nil
}

// AppendNote grows the notes log by exactly one entry, preserving prior
// entries in order.
func (t *Ticket) AppendNote(actor domain.Actor, text string) {
	t.Notes = append(t.Notes, Note{
		AuthorKind: actor.Role,
		AuthorID:   actor.ID,
		Text:       text,
		Timestamp:  time.Now().UTC(),
	})
}

// StampUpdatedBy records the caller into the kind-appropriate attribution
// column. Every successful update stamps it, whatever fields changed.
func (t *Ticket) StampUpdatedBy(actor domain.Actor) {
	id := actor.ID
	switch actor.Role {
	case domain.RoleHospital:
		t.LastUpdatedByHospital = &id
	case domain.RoleAdmin:
		t.LastUpdatedByAdmin = &id
	}
}

// OwnedBy reports whether the ticket belongs to the given hospital.
func (t *Ticket) OwnedBy(hospitalID uuid.UUID) bool {
	return t.HospitalID != nil && *t.HospitalID == hospitalID
}

type CreateTicketCommand struct {
	// Ignored for hospital callers: a hospital's tickets are always its own.
	HospitalID      *uuid.UUID
	Type            string
	Details         string
	Payload         datatypes.JSON
	AssignedAdminID *uuid.UUID
}

type UpdateTicketCommand struct {
	Details         *string
	Payload         datatypes.JSON // replace, not merge
	AssignedAdminID *uuid.UUID
	Status          *Status
	Note            *string // appends, never replaces
}

type ListTicketsQuery struct {
	Status     *Status
	HospitalID *uuid.UUID
}
