package prescription

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Prescription) error

	// GetByID retrieves a prescription by primary key. Returns
	// ErrPrescriptionNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error)

	// ListByPatient returns a patient's prescriptions, newest first.
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Prescription, error)

	// UpdateEnrichment re-saves only the enrichment sub-fields after the
	// collaborator call completes or fails.
	UpdateEnrichment(ctx context.Context, p *Prescription) error
}
