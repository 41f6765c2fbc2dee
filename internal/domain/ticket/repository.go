package ticket

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, t *Ticket) error

	// GetByID retrieves a ticket by primary key. Returns ErrTicketNotFound
	// if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*Ticket, error)

	// List returns tickets matching the query, newest-created first.
	List(ctx context.Context, q *ListTicketsQuery) ([]*Ticket, error)

	// Save persists the full ticket row after in-memory mutation.
	Save(ctx context.Context, t *Ticket) error

	// CountByHospital returns per-status ticket counts for a hospital's
	// dashboard.
	CountByHospital(ctx context.Context, hospitalID uuid.UUID) (map[Status]int64, error)
}
