package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/raksha360/backend/internal/domain/ticket"
	"github.com/raksha360/backend/internal/handler/middleware"
	"github.com/raksha360/backend/internal/service"
	"github.com/raksha360/backend/pkg/metrics"
)

type TicketHandler struct {
	svc       *service.TicketService
	collector *metrics.Collector
	log       *zap.Logger
}

func NewTicketHandler(svc *service.TicketService, collector *metrics.Collector, log *zap.Logger) *TicketHandler {
	return &TicketHandler{svc: svc, collector: collector, log: log}
}

type createTicketRequest struct {
	HospitalID      *uuid.UUID     `json:"hospital_id"`
	Type            string         `json:"type" binding:"required"`
	Details         string         `json:"details"`
	Payload         datatypes.JSON `json:"payload"`
	AssignedAdminID *uuid.UUID     `json:"assigned_admin_id"`
}

type updateTicketRequest struct {
	Details         *string        `json:"details"`
	Payload         datatypes.JSON `json:"payload"`
	AssignedAdminID *uuid.UUID     `json:"assigned_admin_id"`
	Status          *ticket.Status `json:"status"`
	Note            *string        `json:"note"`
}

type adminActionRequest struct {
	Action   string     `json:"action" binding:"required"`
	AssignTo *uuid.UUID `json:"assign_to"`
	Note     string     `json:"note"`
}

func (h *TicketHandler) Create(c *gin.Context) {
	var req createTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	actor := middleware.MustActor(c)
	t, err := h.svc.Create(c.Request.Context(), actor, &ticket.CreateTicketCommand{
		HospitalID:      req.HospitalID,
		Type:            req.Type,
		Details:         req.Details,
		Payload:         req.Payload,
		AssignedAdminID: req.AssignedAdminID,
	}, c.ClientIP())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	respondCreated(c, t)
}

func (h *TicketHandler) List(c *gin.Context) {
	q := &ticket.ListTicketsQuery{}

	if raw := c.Query("status"); raw != "" {
		status := ticket.Status(raw)
		if !status.IsValid() {
			respondError(c, http.StatusBadRequest, "invalid status filter")
			return
		}
		q.Status = &status
	}
	if raw := c.Query("hospital_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid hospital_id filter")
			return
		}
		q.HospitalID = &id
	}

	actor := middleware.MustActor(c)
	tickets, err := h.svc.List(c.Request.Context(), actor, q)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	respondOK(c, tickets)
}

func (h *TicketHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	actor := middleware.MustActor(c)
	t, err := h.svc.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	respondOK(c, t)
}

func (h *TicketHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req updateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Status != nil && !req.Status.IsValid() {
		respondError(c, http.StatusBadRequest, ticket.ErrInvalidStatus.Error())
		return
	}

	actor := middleware.MustActor(c)
	t, err := h.svc.Update(c.Request.Context(), actor, id, &ticket.UpdateTicketCommand{
		Details:         req.Details,
		Payload:         req.Payload,
		AssignedAdminID: req.AssignedAdminID,
		Status:          req.Status,
		Note:            req.Note,
	}, c.ClientIP())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	if req.Status != nil {
		h.collector.TicketTransitionsTotal.WithLabelValues(string(*req.Status)).Inc()
	}
	respondOK(c, t)
}

// AdminAction applies one of the portal verbs (assign, start, resolve,
// reject, approve_signup) to a ticket.
func (h *TicketHandler) AdminAction(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req adminActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	actor := middleware.MustActor(c)
	t, err := h.svc.AdminAction(c.Request.Context(), actor, id, &service.AdminActionCommand{
		Action:   req.Action,
		AssignTo: req.AssignTo,
		Note:     req.Note,
	}, c.ClientIP())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	h.collector.TicketTransitionsTotal.WithLabelValues(string(t.Status)).Inc()
	respondOK(c, t)
}
