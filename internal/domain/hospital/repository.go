package hospital

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new hospital. Returns ErrHospitalAlreadyExists on duplicate email.
	Create(ctx context.Context, h *Hospital) error

	// GetByID retrieves a hospital by primary key. Returns ErrHospitalNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*Hospital, error)

	// GetByEmail retrieves a hospital by their login identity.
	GetByEmail(ctx context.Context, email string) (*Hospital, error)

	// UpdateStatus moves a hospital to a new lifecycle status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
}
