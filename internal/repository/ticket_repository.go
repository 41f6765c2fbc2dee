package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/raksha360/backend/internal/domain/ticket"
)

type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

var _ ticket.Repository = (*TicketRepository)(nil)

func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TicketRepository) GetByID(ctx context.Context, id uuid.UUID) (*ticket.Ticket, error) {
	var t ticket.Ticket
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ticket.ErrTicketNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TicketRepository) List(ctx context.Context, q *ticket.ListTicketsQuery) ([]*ticket.Ticket, error) {
	tx := r.db.WithContext(ctx).Model(&ticket.Ticket{})

	if q.Status != nil {
		tx = tx.Where("status = ?", *q.Status)
	}
	if q.HospitalID != nil {
		tx = tx.Where("hospital_id = ?", *q.HospitalID)
	}

	var tickets []*ticket.Ticket
	if err := tx.Order("created_at DESC").Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *TicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *TicketRepository) CountByHospital(ctx context.Context, hospitalID uuid.UUID) (map[ticket.Status]int64, error) {
	type row struct {
		Status ticket.Status
		Count  int64
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Model(&ticket.Ticket{}).
		Select("status, count(*) as count").
		Where("hospital_id = ?", hospitalID).
		Group("status").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[ticket.Status]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
