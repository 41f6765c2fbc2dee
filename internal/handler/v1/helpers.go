package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/raksha360/backend/internal/domain/admin"
	"github.com/raksha360/backend/internal/domain/appointment"
	"github.com/raksha360/backend/internal/domain/doctor"
	"github.com/raksha360/backend/internal/domain/hospital"
	"github.com/raksha360/backend/internal/domain/patient"
	"github.com/raksha360/backend/internal/domain/prescription"
	"github.com/raksha360/backend/internal/domain/ticket"
	"github.com/raksha360/backend/internal/service"
)

// APIResponse is the envelope every JSON endpoint returns.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, APIResponse{Success: false, Error: msg})
}

// respondServiceError maps domain and service errors onto HTTP statuses.
// Anything unmapped is a 500 with a generic body; the real error goes to
// the log, never to the client.
func respondServiceError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, patient.ErrPatientAlreadyExists),
		errors.Is(err, doctor.ErrDoctorAlreadyExists),
		errors.Is(err, hospital.ErrHospitalAlreadyExists),
		errors.Is(err, admin.ErrAdminAlreadyExists):
		respondError(c, http.StatusBadRequest, err.Error())

	case errors.Is(err, patient.ErrInvalidGender),
		errors.Is(err, prescription.ErrNoMedicines),
		errors.Is(err, ticket.ErrInvalidStatus),
		errors.Is(err, ticket.ErrInvalidStatusTransition),
		errors.Is(err, ticket.ErrUnknownAction):
		respondError(c, http.StatusBadRequest, err.Error())

	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, err.Error())

	case errors.Is(err, service.ErrForbidden):
		respondError(c, http.StatusForbidden, err.Error())

	case errors.Is(err, patient.ErrPatientNotFound),
		errors.Is(err, doctor.ErrDoctorNotFound),
		errors.Is(err, hospital.ErrHospitalNotFound),
		errors.Is(err, admin.ErrAdminNotFound),
		errors.Is(err, appointment.ErrAppointmentNotFound),
		errors.Is(err, prescription.ErrPrescriptionNotFound),
		errors.Is(err, ticket.ErrTicketNotFound):
		respondError(c, http.StatusNotFound, err.Error())

	default:
		log.Error("unhandled service error",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
