package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/raksha360/backend/internal/domain/appointment"
	"github.com/raksha360/backend/internal/handler/middleware"
	"github.com/raksha360/backend/internal/service"
	"github.com/raksha360/backend/pkg/metrics"
)

type AppointmentHandler struct {
	svc       *service.AppointmentService
	collector *metrics.Collector
	log       *zap.Logger
}

func NewAppointmentHandler(svc *service.AppointmentService, collector *metrics.Collector, log *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{svc: svc, collector: collector, log: log}
}

type bookAppointmentRequest struct {
	DoctorID uuid.UUID `json:"doctor_id" binding:"required"`
	Date     time.Time `json:"date" binding:"required"`
}

func (h *AppointmentHandler) Book(c *gin.Context) {
	var req bookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	actor := middleware.MustActor(c)
	a, err := h.svc.Book(c.Request.Context(), actor, &appointment.BookAppointmentCommand{
		DoctorID: req.DoctorID,
		Date:     req.Date,
	}, c.ClientIP())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	h.collector.AppointmentsBookedTotal.Inc()
	respondCreated(c, a)
}

func (h *AppointmentHandler) List(c *gin.Context) {
	actor := middleware.MustActor(c)
	appointments, err := h.svc.List(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	respondOK(c, appointments)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	actor := middleware.MustActor(c)
	if err := h.svc.Cancel(c.Request.Context(), actor, id, c.ClientIP()); err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	respondOK(c, gin.H{"cancelled": id})
}
