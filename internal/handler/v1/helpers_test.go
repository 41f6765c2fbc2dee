package v1

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/raksha360/backend/internal/domain/appointment"
	"github.com/raksha360/backend/internal/domain/patient"
	"github.com/raksha360/backend/internal/domain/prescription"
	"github.com/raksha360/backend/internal/domain/ticket"
	"github.com/raksha360/backend/internal/service"
)

func TestRespondServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"duplicate signup", patient.ErrPatientAlreadyExists, http.StatusBadRequest},
		{"invalid gender", patient.ErrInvalidGender, http.StatusBadRequest},
		{"no medicines", prescription.ErrNoMedicines, http.StatusBadRequest},
		{"bad transition", ticket.ErrInvalidStatusTransition, http.StatusBadRequest},
		{"unknown action", ticket.ErrUnknownAction, http.StatusBadRequest},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"forbidden", service.ErrForbidden, http.StatusForbidden},
		{"missing appointment", appointment.ErrAppointmentNotFound, http.StatusNotFound},
		{"missing ticket", ticket.ErrTicketNotFound, http.StatusNotFound},
		{"unmapped", errors.New("db on fire"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondServiceError(c, zap.NewNop(), tc.err)

			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusInternalServerError {
				// Internal detail must not leak to the client.
				assert.NotContains(t, rec.Body.String(), "db on fire")
			}
		})
	}
}

// Wrapped errors must still map: services wrap repository errors with
// context before returning them.
func TestRespondServiceError_Wrapped(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	wrapped := errors.Join(errors.New("verifying patient"), patient.ErrPatientNotFound)
	respondServiceError(c, zap.NewNop(), wrapped)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
