package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/raksha360/backend/internal/domain"
	"github.com/raksha360/backend/internal/domain/appointment"
	"github.com/raksha360/backend/internal/domain/doctor"
)

type AppointmentService struct {
	repo       appointment.Repository
	doctorRepo doctor.Repository
	auditSvc   *AuditService
	log        *zap.Logger
}

func NewAppointmentService(
	repo appointment.Repository,
	doctorRepo doctor.Repository,
	auditSvc *AuditService,
	log *zap.Logger,
) *AppointmentService {
	return &AppointmentService{repo: repo, doctorRepo: doctorRepo, auditSvc: auditSvc, log: log}
}

// Book creates an appointment for the calling patient. The patient id comes
// from the resolved actor, never from the request body.
func (s *AppointmentService) Book(ctx context.Context, actor domain.Actor, cmd *appointment.BookAppointmentCommand, ip string) (*appointment.Appointment, error) {
	if actor.Role != domain.RolePatient {
		return nil, ErrForbidden
	}

	if _, err := s.doctorRepo.GetByID(ctx, cmd.DoctorID); err != nil {
		return nil, fmt.Errorf("verifying doctor: %w", err)
	}

	a := &appointment.Appointment{
		PatientID: actor.ID,
		DoctorID:  cmd.DoctorID,
		Date:      cmd.Date,
		Status:    appointment.StatusBooked,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		s.log.Error("failed to create appointment", zap.Error(err))
		return nil, fmt.Errorf("creating appointment: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Actor:        actor,
		Action:       domain.ActionCreate,
		ResourceType: "appointment",
		ResourceID:   a.ID.String(),
		IPAddress:    ip,
	})

	return a, nil
}

// List returns the calling patient's appointments.
func (s *AppointmentService) List(ctx context.Context, actor domain.Actor) ([]*appointment.Appointment, error) {
	if actor.Role != domain.RolePatient {
		return nil, ErrForbidden
	}
	return s.repo.ListByPatient(ctx, actor.ID)
}

// Cancel hard-deletes the appointment if it belongs to the calling patient.
// Ownership is enforced by the delete's query filter, so cancelling someone
// else's appointment reads as ErrAppointmentNotFound.
func (s *AppointmentService) Cancel(ctx context.Context, actor domain.Actor, id uuid.UUID, ip string) error {
	if actor.Role != domain.RolePatient {
		return ErrForbidden
	}

	if err := s.repo.DeleteOwned(ctx, id, actor.ID); err != nil {
		return err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Actor:        actor,
		Action:       domain.ActionDelete,
		ResourceType: "appointment",
		ResourceID:   id.String(),
		IPAddress:    ip,
	})

	return nil
}
