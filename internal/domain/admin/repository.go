package admin

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new admin user. Returns ErrAdminAlreadyExists on duplicate email.
	Create(ctx context.Context, a *AdminUser) error

	// GetByID retrieves an admin user by primary key. Returns ErrAdminNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*AdminUser, error)

	// GetByEmail retrieves an admin user by their login identity.
	GetByEmail(ctx context.Context, email string) (*AdminUser, error)
}
