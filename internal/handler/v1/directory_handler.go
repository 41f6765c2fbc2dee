package v1

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/raksha360/backend/internal/domain/doctor"
	"github.com/raksha360/backend/internal/service"
)

type DirectoryHandler struct {
	svc *service.DirectoryService
	log *zap.Logger
}

func NewDirectoryHandler(svc *service.DirectoryService, log *zap.Logger) *DirectoryHandler {
	return &DirectoryHandler{svc: svc, log: log}
}

// SearchDoctors filters the public doctor directory. Missing filters
// match everything.
func (h *DirectoryHandler) SearchDoctors(c *gin.Context) {
	doctors, err := h.svc.SearchDoctors(c.Request.Context(), &doctor.SearchQuery{
		City:           c.Query("city"),
		Specialization: c.Query("specialization"),
		Degree:         c.Query("degree"),
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	respondOK(c, doctors)
}

func (h *DirectoryHandler) GetPatient(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	p, err := h.svc.GetPatient(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	respondOK(c, p)
}
