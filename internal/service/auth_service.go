package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/raksha360/backend/internal/domain"
	"github.com/raksha360/backend/internal/domain/admin"
	"github.com/raksha360/backend/internal/domain/doctor"
	"github.com/raksha360/backend/internal/domain/hospital"
	"github.com/raksha360/backend/internal/domain/patient"
)

// TokenIssuer is the contract the auth service expects from pkg/auth.
type TokenIssuer interface {
	Issue(claims *domain.TokenClaims) (string, time.Time, error)
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	ActorID   uuid.UUID
	Name      string
}

type AuthService struct {
	patients  patient.Repository
	doctors   doctor.Repository
	hospitals hospital.Repository
	admins    admin.Repository
	issuer    TokenIssuer
	log       *zap.Logger
}

func NewAuthService(
	patients patient.Repository,
	doctors doctor.Repository,
	hospitals hospital.Repository,
	admins admin.Repository,
	issuer TokenIssuer,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		patients:  patients,
		doctors:   doctors,
		hospitals: hospitals,
		admins:    admins,
		issuer:    issuer,
		log:       log,
	}
}

func (s *AuthService) RegisterPatient(ctx context.Context, cmd *patient.SignupCommand) (*patient.Patient, error) {
	if cmd.Gender != "" && !cmd.Gender.IsValid() {
		return nil, patient.ErrInvalidGender
	}

	hash, err := hashPassword(cmd.Password)
	if err != nil {
		return nil, err
	}

	p := &patient.Patient{
		Name:         cmd.Name,
		Email:        cmd.Email,
		PasswordHash: hash,
		City:         cmd.City,
		Age:          cmd.Age,
		Gender:       cmd.Gender,
	}

	if err := s.patients.Create(ctx, p); err != nil {
		return nil, err
	}

	s.log.Info("patient registered", zap.String("patient_id", p.ID.String()))
	return p, nil
}

func (s *AuthService) RegisterDoctor(ctx context.Context, cmd *doctor.SignupCommand) (*doctor.Doctor, error) {
	hash, err := hashPassword(cmd.Password)
	if err != nil {
		return nil, err
	}

	d := &doctor.Doctor{
		Name:           cmd.Name,
		Email:          cmd.Email,
		PasswordHash:   hash,
		Specialization: cmd.Specialization,
		Degree:         cmd.Degree,
		City:           cmd.City,
		Contact:        cmd.Contact,
	}

	if err := s.doctors.Create(ctx, d); err != nil {
		return nil, err
	}

	s.log.Info("doctor registered", zap.String("doctor_id", d.ID.String()))
	return d, nil
}

func (s *AuthService) LoginPatient(ctx context.Context, email, password, ip string) (*LoginResult, error) {
	p, err := s.patients.GetByEmail(ctx, email)
	if err != nil {
		return nil, s.rejectLogin(domain.RolePatient, email, password, ip)
	}
	if err := s.checkPassword(p.PasswordHash, password, domain.RolePatient, email, ip); err != nil {
		return nil, err
	}
	return s.issue(domain.RolePatient, p.ID, p.Email, p.Name, 0)
}

func (s *AuthService) LoginDoctor(ctx context.Context, email, password, ip string) (*LoginResult, error) {
	d, err := s.doctors.GetByEmail(ctx, email)
	if err != nil {
		return nil, s.rejectLogin(domain.RoleDoctor, email, password, ip)
	}
	if err := s.checkPassword(d.PasswordHash, password, domain.RoleDoctor, email, ip); err != nil {
		return nil, err
	}
	return s.issue(domain.RoleDoctor, d.ID, d.Email, d.Name, 0)
}

func (s *AuthService) LoginHospital(ctx context.Context, email, password, ip string) (*LoginResult, error) {
	h, err := s.hospitals.GetByEmail(ctx, email)
	if err != nil {
		return nil, s.rejectLogin(domain.RoleHospital, email, password, ip)
	}
	if err := s.checkPassword(h.PasswordHash, password, domain.RoleHospital, email, ip); err != nil {
		return nil, err
	}
	return s.issue(domain.RoleHospital, h.ID, h.Email, h.Name, h.TokenVersion)
}

func (s *AuthService) LoginAdmin(ctx context.Context, email, password, ip string) (*LoginResult, error) {
	a, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		return nil, s.rejectLogin(domain.RoleAdmin, email, password, ip)
	}
	if !a.IsActive {
		// Indistinguishable from bad credentials on purpose.
		return nil, s.rejectLogin(domain.RoleAdmin, email, password, ip)
	}
	if err := s.checkPassword(a.PasswordHash, password, domain.RoleAdmin, email, ip); err != nil {
		return nil, err
	}
	return s.issue(domain.RoleAdmin, a.ID, a.Email, a.Name, 0)
}

// rejectLogin burns a bcrypt comparison before failing so response timing
// does not reveal whether the email exists.
func (s *AuthService) rejectLogin(role domain.Role, email, password, ip string) error {
	_, _ = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	s.log.Warn("failed login attempt",
		zap.String("role", string(role)),
		zap.String("email", email),
		zap.String("ip", ip),
	)
	return ErrInvalidCredentials
}

func (s *AuthService) checkPassword(hash, password string, role domain.Role, email, ip string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		s.log.Warn("failed login attempt",
			zap.String("role", string(role)),
			zap.String("email", email),
			zap.String("ip", ip),
		)
		return ErrInvalidCredentials
	}
	return nil
}

func (s *AuthService) issue(role domain.Role, id uuid.UUID, email, name string, tokenVersion int) (*LoginResult, error) {
	token, expiresAt, err := s.issuer.Issue(&domain.TokenClaims{
		Email:        email,
		Role:         role,
		ActorID:      id,
		TokenVersion: tokenVersion,
	})
	if err != nil {
		s.log.Error("failed to issue token", zap.Error(err))
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	s.log.Info("actor logged in",
		zap.String("role", string(role)),
		zap.String("actor_id", id.String()),
	)

	return &LoginResult{Token: token, ExpiresAt: expiresAt, ActorID: id, Name: name}, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}
