package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/raksha360/backend/internal/domain/admin"
)

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

var _ admin.Repository = (*AdminRepository)(nil)

func (r *AdminRepository) Create(ctx context.Context, a *admin.AdminUser) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return admin.ErrAdminAlreadyExists
		}
		return err
	}
	return nil
}

func (r *AdminRepository) GetByID(ctx context.Context, id uuid.UUID) (*admin.AdminUser, error) {
	var a admin.AdminUser
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, admin.ErrAdminNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*admin.AdminUser, error) {
	var a admin.AdminUser
	if err := r.db.WithContext(ctx).First(&a, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, admin.ErrAdminNotFound
		}
		return nil, err
	}
	return &a, nil
}
