package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/raksha360/backend/internal/domain"
	"github.com/raksha360/backend/internal/domain/hospital"
	"github.com/raksha360/backend/internal/domain/ticket"
)

// Admin action verbs accepted by AdminAction.
const (
	ActionAssign        = "assign"
	ActionStart         = "start"
	ActionResolve       = "resolve"
	ActionReject        = "reject"
	ActionApproveSignup = "approve_signup"
)

type AdminActionCommand struct {
	Action   string
	AssignTo *uuid.UUID
	Note     string
}

type TicketService struct {
	repo         ticket.Repository
	hospitalRepo hospital.Repository
	auditSvc     *AuditService
	log          *zap.Logger
}

func NewTicketService(
	repo ticket.Repository,
	hospitalRepo hospital.Repository,
	auditSvc *AuditService,
	log *zap.Logger,
) *TicketService {
	return &TicketService{repo: repo, hospitalRepo: hospitalRepo, auditSvc: auditSvc, log: log}
}

// Create opens a ticket. A hospital's tickets are always its own, whatever
// hospital id the payload claims; an admin may target any hospital or none
// (a system ticket). Other actor kinds are rejected.
func (s *TicketService) Create(ctx context.Context, actor domain.Actor, cmd *ticket.CreateTicketCommand, ip string) (*ticket.Ticket, error) {
	t := &ticket.Ticket{
		Type:            cmd.Type,
		Details:         cmd.Details,
		Payload:         cmd.Payload,
		Status:          ticket.StatusOpen,
		AssignedAdminID: cmd.AssignedAdminID,
	}

	switch actor.Role {
	case domain.RoleHospital:
		id := actor.ID
		t.HospitalID = &id
	case domain.RoleAdmin:
		t.HospitalID = cmd.HospitalID
	default:
		return nil, ErrForbidden
	}

	t.StampUpdatedBy(actor)

	if err := s.repo.Create(ctx, t); err != nil {
		s.log.Error("failed to create ticket", zap.Error(err))
		return nil, fmt.Errorf("creating ticket: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Actor:        actor,
		Action:       domain.ActionCreate,
		ResourceType: "ticket",
		ResourceID:   t.ID.String(),
		IPAddress:    ip,
	})

	return t, nil
}

// List returns tickets visible to the actor, newest-created first. A
// hospital sees only its own tickets; an admin may filter freely.
func (s *TicketService) List(ctx context.Context, actor domain.Actor, q *ticket.ListTicketsQuery) ([]*ticket.Ticket, error) {
	switch actor.Role {
	case domain.RoleHospital:
		id := actor.ID
		q.HospitalID = &id
	case domain.RoleAdmin:
		// caller-supplied filters stand
	default:
		return nil, ErrForbidden
	}

	return s.repo.List(ctx, q)
}

// Get returns one ticket, ownership-checked for hospital callers.
func (s *TicketService) Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*ticket.Ticket, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case domain.RoleAdmin:
	case domain.RoleHospital:
		if !t.OwnedBy(actor.ID) {
			return nil, ErrForbidden
		}
	default:
		return nil, ErrForbidden
	}

	return t, nil
}

// Update applies a partial update. Only supplied fields are written:
// payload replaces wholesale, the note appends, and when both appear in
// one call the payload is replaced first. Status changes go through the
// transition table; resolved/closed stamp closure attribution. Every
// successful update stamps the caller's last_updated_by column.
func (s *TicketService) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, cmd *ticket.UpdateTicketCommand, ip string) (*ticket.Ticket, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case domain.RoleAdmin:
	case domain.RoleHospital:
		if !t.OwnedBy(actor.ID) {
			return nil, ErrForbidden
		}
	default:
		return nil, ErrForbidden
	}

	if cmd.Details != nil {
		t.Details = *cmd.Details
	}
	if cmd.Payload != nil {
		t.Payload = cmd.Payload
	}
	if cmd.AssignedAdminID != nil {
		t.AssignedAdminID = cmd.AssignedAdminID
	}
	if cmd.Status != nil {
		if err := t.Transition(*cmd.Status, actor); err != nil {
			return nil, err
		}
	}
	if cmd.Note != nil && *cmd.Note != "" {
		t.AppendNote(actor, *cmd.Note)
	}

	t.StampUpdatedBy(actor)

	if err := s.repo.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("saving ticket: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Actor:        actor,
		Action:       domain.ActionUpdate,
		ResourceType: "ticket",
		ResourceID:   t.ID.String(),
		IPAddress:    ip,
	})

	return t, nil
}

// AdminAction applies one of the admin portal's action verbs to a ticket.
// approve_signup additionally activates the referenced hospital.
func (s *TicketService) AdminAction(ctx context.Context, actor domain.Actor, id uuid.UUID, cmd *AdminActionCommand, ip string) (*ticket.Ticket, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch cmd.Action {
	case ActionAssign:
		if cmd.AssignTo != nil {
			t.AssignedAdminID = cmd.AssignTo
		} else {
			id := actor.ID
			t.AssignedAdminID = &id
		}
		// Re-assigning a ticket already in progress is fine.
		if t.Status != ticket.StatusInProgress {
			if err := t.Transition(ticket.StatusInProgress, actor); err != nil {
				return nil, err
			}
		}

	case ActionStart:
		// start on a ticket already in progress is a no-op.
		if t.Status != ticket.StatusInProgress {
			if err := t.Transition(ticket.StatusInProgress, actor); err != nil {
				return nil, err
			}
		}

	case ActionResolve:
		if err := t.Transition(ticket.StatusResolved, actor); err != nil {
			return nil, err
		}

	case ActionReject:
		if err := t.Transition(ticket.StatusRejected, actor); err != nil {
			return nil, err
		}

	case ActionApproveSignup:
		if t.HospitalID == nil {
			return nil, hospital.ErrHospitalNotFound
		}
		// The ticket must be able to resolve before the hospital row is
		// touched: a previously rejected or closed onboarding ticket must
		// never activate the hospital.
		if err := t.Transition(ticket.StatusResolved, actor); err != nil {
			return nil, err
		}
		if err := s.hospitalRepo.UpdateStatus(ctx, *t.HospitalID, hospital.StatusActive); err != nil {
			return nil, fmt.Errorf("activating hospital: %w", err)
		}
		s.log.Info("hospital signup approved",
			zap.String("hospital_id", t.HospitalID.String()),
			zap.String("ticket_id", t.ID.String()),
		)

	default:
		return nil, ticket.ErrUnknownAction
	}

	if cmd.Note != "" {
		t.AppendNote(actor, cmd.Note)
	}

	t.StampUpdatedBy(actor)

	if err := s.repo.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("saving ticket: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Actor:        actor,
		Action:       domain.ActionUpdate,
		ResourceType: "ticket",
		ResourceID:   t.ID.String(),
		IPAddress:    ip,
		Changes:      fmt.Sprintf(`{"action":%q}`, cmd.Action),
	})

	return t, nil
}
