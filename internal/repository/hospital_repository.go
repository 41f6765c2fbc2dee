package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/raksha360/backend/internal/domain/hospital"
)

type HospitalRepository struct {
	db *gorm.DB
}

func NewHospitalRepository(db *gorm.DB) *HospitalRepository {
	return &HospitalRepository{db: db}
}

var _ hospital.Repository = (*HospitalRepository)(nil)

func (r *HospitalRepository) Create(ctx context.Context, h *hospital.Hospital) error {
	if err := r.db.WithContext(ctx).Create(h).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return hospital.ErrHospitalAlreadyExists
		}
		return err
	}
	return nil
}

func (r *HospitalRepository) GetByID(ctx context.Context, id uuid.UUID) (*hospital.Hospital, error) {
	var h hospital.Hospital
	if err := r.db.WithContext(ctx).First(&h, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, hospital.ErrHospitalNotFound
		}
		return nil, err
	}
	return &h, nil
}

func (r *HospitalRepository) GetByEmail(ctx context.Context, email string) (*hospital.Hospital, error) {
	var h hospital.Hospital
	if err := r.db.WithContext(ctx).First(&h, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, hospital.ErrHospitalNotFound
		}
		return nil, err
	}
	return &h, nil
}

func (r *HospitalRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status hospital.Status) error {
	res := r.db.WithContext(ctx).
		Model(&hospital.Hospital{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return hospital.ErrHospitalNotFound
	}
	return nil
}
