package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/raksha360/backend/internal/domain"
	"github.com/raksha360/backend/internal/domain/hospital"
	"github.com/raksha360/backend/internal/domain/ticket"
)

type RegisterHospitalResult struct {
	Hospital *hospital.Hospital
	Ticket   *ticket.Ticket
	Login    *LoginResult
}

type HospitalService struct {
	repo       hospital.Repository
	ticketRepo ticket.Repository
	issuer     TokenIssuer
	auditSvc   *AuditService
	log        *zap.Logger
}

func NewHospitalService(
	repo hospital.Repository,
	ticketRepo ticket.Repository,
	issuer TokenIssuer,
	auditSvc *AuditService,
	log *zap.Logger,
) *HospitalService {
	return &HospitalService{repo: repo, ticketRepo: ticketRepo, issuer: issuer, auditSvc: auditSvc, log: log}
}

// Register self-registers a hospital with status pending, opens its
// onboarding ticket for admin review, and issues a token so the portal is
// usable immediately.
func (s *HospitalService) Register(ctx context.Context, cmd *hospital.RegisterCommand, ip string) (*RegisterHospitalResult, error) {
	hash, err := hashPassword(cmd.Password)
	if err != nil {
		return nil, err
	}

	h := &hospital.Hospital{
		Name:         cmd.Name,
		Email:        cmd.Email,
		PasswordHash: hash,
		City:         cmd.City,
		Status:       hospital.StatusPending,
	}

	if err := s.repo.Create(ctx, h); err != nil {
		return nil, err
	}

	payload, _ := json.Marshal(map[string]string{
		"name":  cmd.Name,
		"email": cmd.Email,
		"city":  cmd.City,
	})

	hospitalID := h.ID
	onboarding := &ticket.Ticket{
		HospitalID: &hospitalID,
		Type:       ticket.TypeOnboardHospital,
		Details:    fmt.Sprintf("Onboarding review for %s", cmd.Name),
		Payload:    datatypes.JSON(payload),
		Status:     ticket.StatusOpen,
	}
	onboarding.StampUpdatedBy(domain.Actor{Role: domain.RoleHospital, ID: h.ID, Email: h.Email})

	if err := s.ticketRepo.Create(ctx, onboarding); err != nil {
		// The hospital row is durable either way; a failed onboarding
		// ticket write only delays admin review.
		s.log.Error("failed to create onboarding ticket",
			zap.String("hospital_id", h.ID.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("creating onboarding ticket: %w", err)
	}

	token, expiresAt, err := s.issuer.Issue(&domain.TokenClaims{
		Email:        h.Email,
		Role:         domain.RoleHospital,
		ActorID:      h.ID,
		TokenVersion: h.TokenVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	actor := domain.Actor{Role: domain.RoleHospital, ID: h.ID, Email: h.Email}
	s.auditSvc.LogAsync(ctx, AuditEntry{
		Actor:        actor,
		Action:       domain.ActionSignup,
		ResourceType: "hospital",
		ResourceID:   h.ID.String(),
		IPAddress:    ip,
	})

	s.log.Info("hospital registered",
		zap.String("hospital_id", h.ID.String()),
		zap.String("ticket_id", onboarding.ID.String()),
	)

	return &RegisterHospitalResult{
		Hospital: h,
		Ticket:   onboarding,
		Login: &LoginResult{
			Token:     token,
			ExpiresAt: expiresAt,
			ActorID:   h.ID,
			Name:      h.Name,
		},
	}, nil
}

// AdminCreate creates an already-active hospital on behalf of an admin.
func (s *HospitalService) AdminCreate(ctx context.Context, actor domain.Actor, cmd *hospital.RegisterCommand, ip string) (*hospital.Hospital, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}

	hash, err := hashPassword(cmd.Password)
	if err != nil {
		return nil, err
	}

	h := &hospital.Hospital{
		Name:         cmd.Name,
		Email:        cmd.Email,
		PasswordHash: hash,
		City:         cmd.City,
		Status:       hospital.StatusActive,
	}

	if err := s.repo.Create(ctx, h); err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Actor:        actor,
		Action:       domain.ActionCreate,
		ResourceType: "hospital",
		ResourceID:   h.ID.String(),
		IPAddress:    ip,
	})

	return h, nil
}

// Dashboard returns the calling hospital's ticket counts by status.
func (s *HospitalService) Dashboard(ctx context.Context, actor domain.Actor) (map[ticket.Status]int64, error) {
	if actor.Role != domain.RoleHospital {
		return nil, ErrForbidden
	}
	return s.ticketRepo.CountByHospital(ctx, actor.ID)
}
