package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/raksha360/backend/internal/domain"
	"github.com/raksha360/backend/internal/domain/patient"
	"github.com/raksha360/backend/internal/domain/prescription"
	"github.com/raksha360/backend/pkg/pdfgen"
)

type PrescriptionService struct {
	repo          prescription.Repository
	patientRepo   patient.Repository
	enricher      Enricher
	enrichTimeout time.Duration
	auditSvc      *AuditService
	log           *zap.Logger
}

func NewPrescriptionService(
	repo prescription.Repository,
	patientRepo patient.Repository,
	enricher Enricher,
	enrichTimeout time.Duration,
	auditSvc *AuditService,
	log *zap.Logger,
) *PrescriptionService {
	return &PrescriptionService{
		repo:          repo,
		patientRepo:   patientRepo,
		enricher:      enricher,
		enrichTimeout: enrichTimeout,
		auditSvc:      auditSvc,
		log:           log,
	}
}

// Create persists the prescription first, then runs enrichment. The row is
// never rolled back for an enrichment failure; the failure is recorded on
// the enrichment sub-fields instead.
func (s *PrescriptionService) Create(ctx context.Context, actor domain.Actor, cmd *prescription.CreatePrescriptionCommand, ip string) (*prescription.Prescription, error) {
	if actor.Role != domain.RoleDoctor {
		return nil, ErrForbidden
	}
	if len(cmd.RawMedicines) == 0 {
		return nil, prescription.ErrNoMedicines
	}

	// Verify the patient exists before writing.
	pat, err := s.patientRepo.GetByID(ctx, cmd.PatientID)
	if err != nil {
		return nil, fmt.Errorf("verifying patient: %w", err)
	}

	pres := &prescription.Prescription{
		PatientID:    cmd.PatientID,
		DoctorID:     actor.ID,
		RawMedicines: cmd.RawMedicines,
		Diagnosis:    cmd.Diagnosis,
		Notes:        cmd.Notes,
		LLMStatus:    prescription.EnrichmentPending,
	}

	if err := s.repo.Create(ctx, pres); err != nil {
		return nil, fmt.Errorf("creating prescription: %w", err)
	}

	s.enrich(ctx, pres, pat.Name)

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Actor:        actor,
		Action:       domain.ActionCreate,
		ResourceType: "prescription",
		ResourceID:   pres.ID.String(),
		IPAddress:    ip,
	})

	return pres, nil
}

// enrich runs the collaborator call with a bounded deadline and re-saves
// only the enrichment sub-fields. Failures are absorbed into the row.
func (s *PrescriptionService) enrich(ctx context.Context, pres *prescription.Prescription, patientName string) {
	enrichCtx, cancel := context.WithTimeout(ctx, s.enrichTimeout)
	defer cancel()

	result, err := s.enricher.Enrich(enrichCtx, &EnrichmentRequest{
		PatientID:   pres.PatientID,
		PatientName: patientName,
		Diagnosis:   pres.Diagnosis,
		Medicines:   pres.RawMedicines,
	})
	if err != nil {
		s.log.Warn("prescription enrichment failed",
			zap.String("prescription_id", pres.ID.String()),
			zap.Error(err),
		)
		errPayload, _ := json.Marshal(map[string]string{"error": err.Error()})
		pres.LLMOutput = errPayload
		pres.LLMStatus = prescription.EnrichmentError
	} else {
		payload, merr := json.Marshal(result.Output)
		if merr != nil {
			payload, _ = json.Marshal(map[string]string{"error": merr.Error()})
			pres.LLMOutput = payload
			pres.LLMStatus = prescription.EnrichmentError
		} else {
			pres.LLMOutput = payload
			pres.LLMVersion = result.Model
			pres.LLMStatus = prescription.EnrichmentDone
		}
	}

	if err := s.repo.UpdateEnrichment(ctx, pres); err != nil {
		s.log.Error("failed to record enrichment result",
			zap.String("prescription_id", pres.ID.String()),
			zap.Error(err),
		)
	}
}

// Get returns a prescription to its own patient or its own doctor.
func (s *PrescriptionService) Get(ctx context.Context, actor domain.Actor, id uuid.UUID, ip string) (*prescription.Prescription, error) {
	pres, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.canRead(actor, pres) {
		return nil, ErrForbidden
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Actor:        actor,
		Action:       domain.ActionRead,
		ResourceType: "prescription",
		ResourceID:   id.String(),
		IPAddress:    ip,
	})

	return pres, nil
}

// ListByPatient returns a patient's prescriptions, newest first. Patients
// see only their own; any doctor may review a patient's history.
func (s *PrescriptionService) ListByPatient(ctx context.Context, actor domain.Actor, patientID uuid.UUID) ([]*prescription.Prescription, error) {
	switch actor.Role {
	case domain.RolePatient:
		if actor.ID != patientID {
			return nil, ErrForbidden
		}
	case domain.RoleDoctor:
		// allowed
	default:
		return nil, ErrForbidden
	}

	return s.repo.ListByPatient(ctx, patientID)
}

// DownloadPDF renders the prescription as a PDF. Admin and hospital actors
// may download any prescription; patients and doctors only their own.
func (s *PrescriptionService) DownloadPDF(ctx context.Context, actor domain.Actor, id uuid.UUID, ip string) ([]byte, *prescription.Prescription, error) {
	pres, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	authorized := s.canRead(actor, pres) ||
		actor.Role == domain.RoleAdmin ||
		actor.Role == domain.RoleHospital
	if !authorized {
		return nil, nil, ErrForbidden
	}

	pdf, err := pdfgen.Prescription(pres)
	if err != nil {
		return nil, nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Actor:        actor,
		Action:       domain.ActionRead,
		ResourceType: "prescription_pdf",
		ResourceID:   id.String(),
		IPAddress:    ip,
	})

	return pdf, pres, nil
}

func (s *PrescriptionService) canRead(actor domain.Actor, pres *prescription.Prescription) bool {
	switch actor.Role {
	case domain.RolePatient:
		return actor.ID == pres.PatientID
	case domain.RoleDoctor:
		return actor.ID == pres.DoctorID
	}
	return false
}
