package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/raksha360/backend/internal/domain/hospital"
	"github.com/raksha360/backend/internal/handler/middleware"
	"github.com/raksha360/backend/internal/service"
	"github.com/raksha360/backend/pkg/metrics"
)

type HospitalHandler struct {
	svc       *service.HospitalService
	collector *metrics.Collector
	log       *zap.Logger
}

func NewHospitalHandler(svc *service.HospitalService, collector *metrics.Collector, log *zap.Logger) *HospitalHandler {
	return &HospitalHandler{svc: svc, collector: collector, log: log}
}

type registerHospitalRequest struct {
	Name     string `json:"name" form:"name" binding:"required"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=8"`
	City     string `json:"city" form:"city" binding:"required"`
}

type registerHospitalResponse struct {
	Hospital *hospital.Hospital `json:"hospital"`
	TicketID string             `json:"ticket_id"`
	Login    loginResponse      `json:"login"`
}

// Register self-registers a hospital from a JSON body.
func (h *HospitalHandler) Register(c *gin.Context) {
	var req registerHospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	h.register(c, &req)
}

// RegisterForm accepts the same registration as a form post, for the
// portal's plain HTML signup page.
func (h *HospitalHandler) RegisterForm(c *gin.Context) {
	var req registerHospitalRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	h.register(c, &req)
}

func (h *HospitalHandler) register(c *gin.Context, req *registerHospitalRequest) {
	result, err := h.svc.Register(c.Request.Context(), &hospital.RegisterCommand{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		City:     req.City,
	}, c.ClientIP())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	h.collector.SignupsTotal.WithLabelValues("hospital").Inc()
	respondCreated(c, registerHospitalResponse{
		Hospital: result.Hospital,
		TicketID: result.Ticket.ID.String(),
		Login:    toLoginResponse(result.Login),
	})
}

// AdminCreate provisions an already-active hospital on behalf of an admin.
func (h *HospitalHandler) AdminCreate(c *gin.Context) {
	var req registerHospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	actor := middleware.MustActor(c)
	created, err := h.svc.AdminCreate(c.Request.Context(), actor, &hospital.RegisterCommand{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		City:     req.City,
	}, c.ClientIP())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	respondCreated(c, created)
}

// Dashboard returns the calling hospital's ticket counts by status.
func (h *HospitalHandler) Dashboard(c *gin.Context) {
	actor := middleware.MustActor(c)
	counts, err := h.svc.Dashboard(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	respondOK(c, gin.H{"ticket_counts": counts})
}
