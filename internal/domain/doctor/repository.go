package doctor

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new doctor. Returns ErrDoctorAlreadyExists on duplicate email.
	Create(ctx context.Context, d *Doctor) error

	// GetByID retrieves a doctor by primary key. Returns ErrDoctorNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)

	// GetByEmail retrieves a doctor by their login identity.
	GetByEmail(ctx context.Context, email string) (*Doctor, error)

	// Search returns doctors matching the query filters.
	Search(ctx context.Context, q *SearchQuery) ([]*Doctor, error)
}
