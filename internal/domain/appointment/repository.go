package appointment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error

	// ListByPatient returns a patient's appointments, newest first.
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Appointment, error)

	// DeleteOwned hard-deletes an appointment only if it belongs to the
	// given patient. Ownership is enforced by the query filter, so a
	// foreign appointment is indistinguishable from a missing one and
	// yields ErrAppointmentNotFound.
	DeleteOwned(ctx context.Context, id, patientID uuid.UUID) error
}
