package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/raksha360/backend/internal/domain/prescription"
	"github.com/raksha360/backend/internal/handler/middleware"
	"github.com/raksha360/backend/internal/service"
	"github.com/raksha360/backend/pkg/metrics"
)

type PrescriptionHandler struct {
	svc       *service.PrescriptionService
	collector *metrics.Collector
	log       *zap.Logger
}

func NewPrescriptionHandler(svc *service.PrescriptionService, collector *metrics.Collector, log *zap.Logger) *PrescriptionHandler {
	return &PrescriptionHandler{svc: svc, collector: collector, log: log}
}

type createPrescriptionRequest struct {
	PatientID uuid.UUID               `json:"patient_id" binding:"required"`
	Medicines []prescription.Medicine `json:"medicines" binding:"required"`
	Diagnosis string                  `json:"diagnosis"`
	Notes     string                  `json:"notes"`
}

func (h *PrescriptionHandler) Create(c *gin.Context) {
	var req createPrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	actor := middleware.MustActor(c)
	pres, err := h.svc.Create(c.Request.Context(), actor, &prescription.CreatePrescriptionCommand{
		PatientID:    req.PatientID,
		RawMedicines: req.Medicines,
		Diagnosis:    req.Diagnosis,
		Notes:        req.Notes,
	}, c.ClientIP())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	h.collector.PrescriptionsIssued.Inc()
	h.collector.EnrichmentTotal.WithLabelValues(string(pres.LLMStatus)).Inc()
	respondCreated(c, pres)
}

func (h *PrescriptionHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	actor := middleware.MustActor(c)
	pres, err := h.svc.Get(c.Request.Context(), actor, id, c.ClientIP())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	respondOK(c, pres)
}

func (h *PrescriptionHandler) ListByPatient(c *gin.Context) {
	patientID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	actor := middleware.MustActor(c)
	prescriptions, err := h.svc.ListByPatient(c.Request.Context(), actor, patientID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	respondOK(c, prescriptions)
}

// DownloadPDF streams the rendered document as an attachment instead of
// the JSON envelope.
func (h *PrescriptionHandler) DownloadPDF(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	actor := middleware.MustActor(c)
	pdf, pres, err := h.svc.DownloadPDF(c.Request.Context(), actor, id, c.ClientIP())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	filename := fmt.Sprintf("prescription_%s.pdf", pres.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
