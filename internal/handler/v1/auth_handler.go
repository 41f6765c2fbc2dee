package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/raksha360/backend/internal/domain/doctor"
	"github.com/raksha360/backend/internal/domain/patient"
	"github.com/raksha360/backend/internal/service"
	"github.com/raksha360/backend/pkg/metrics"
)

type AuthHandler struct {
	authSvc   *service.AuthService
	collector *metrics.Collector
	log       *zap.Logger
}

func NewAuthHandler(authSvc *service.AuthService, collector *metrics.Collector, log *zap.Logger) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, collector: collector, log: log}
}

type patientSignupRequest struct {
	Name     string         `json:"name" binding:"required"`
	Email    string         `json:"email" binding:"required,email"`
	Password string         `json:"password" binding:"required,min=8"`
	City     string         `json:"city"`
	Age      *int           `json:"age"`
	Gender   patient.Gender `json:"gender"`
}

type doctorSignupRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8"`
	Specialization string `json:"specialization"`
	Degree         string `json:"degree"`
	City           string `json:"city"`
	Contact        string `json:"contact"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
	ActorID   uuid.UUID `json:"actor_id"`
	Name      string    `json:"name"`
}

func toLoginResponse(r *service.LoginResult) loginResponse {
	return loginResponse{
		Token:     r.Token,
		TokenType: "Bearer",
		ExpiresAt: r.ExpiresAt,
		ActorID:   r.ActorID,
		Name:      r.Name,
	}
}

func (h *AuthHandler) PatientSignup(c *gin.Context) {
	var req patientSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.authSvc.RegisterPatient(c.Request.Context(), &patient.SignupCommand{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		City:     req.City,
		Age:      req.Age,
		Gender:   req.Gender,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	h.collector.SignupsTotal.WithLabelValues("patient").Inc()
	respondCreated(c, p)
}

func (h *AuthHandler) DoctorSignup(c *gin.Context) {
	var req doctorSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	d, err := h.authSvc.RegisterDoctor(c.Request.Context(), &doctor.SignupCommand{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		Specialization: req.Specialization,
		Degree:         req.Degree,
		City:           req.City,
		Contact:        req.Contact,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	h.collector.SignupsTotal.WithLabelValues("doctor").Inc()
	respondCreated(c, d)
}

func (h *AuthHandler) PatientLogin(c *gin.Context) {
	h.login(c, h.authSvc.LoginPatient)
}

func (h *AuthHandler) DoctorLogin(c *gin.Context) {
	h.login(c, h.authSvc.LoginDoctor)
}

func (h *AuthHandler) HospitalLogin(c *gin.Context) {
	h.login(c, h.authSvc.LoginHospital)
}

func (h *AuthHandler) AdminLogin(c *gin.Context) {
	h.login(c, h.authSvc.LoginAdmin)
}

func (h *AuthHandler) login(c *gin.Context, fn func(ctx context.Context, email, password, ip string) (*service.LoginResult, error)) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := fn(c.Request.Context(), req.Email, req.Password, c.ClientIP())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	respondOK(c, toLoginResponse(result))
}
