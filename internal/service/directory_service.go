package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/raksha360/backend/internal/domain/doctor"
	"github.com/raksha360/backend/internal/domain/patient"
)

// DirectoryService serves the public lookup surface: doctor search and
// patient profile reads.
type DirectoryService struct {
	doctors  doctor.Repository
	patients patient.Repository
}

func NewDirectoryService(doctors doctor.Repository, patients patient.Repository) *DirectoryService {
	return &DirectoryService{doctors: doctors, patients: patients}
}

// SearchDoctors filters by case-insensitive substring on city,
// specialization and degree; supplied filters are AND-combined.
func (s *DirectoryService) SearchDoctors(ctx context.Context, q *doctor.SearchQuery) ([]*doctor.Doctor, error) {
	return s.doctors.Search(ctx, q)
}

func (s *DirectoryService) GetPatient(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	return s.patients.GetByID(ctx, id)
}
