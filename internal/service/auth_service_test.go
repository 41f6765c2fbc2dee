package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/raksha360/backend/internal/domain/admin"
	"github.com/raksha360/backend/internal/domain/hospital"
	"github.com/raksha360/backend/internal/domain/patient"
)

func newTestAuthService() (*AuthService, *fakePatientRepo, *fakeDoctorRepo, *fakeHospitalRepo, *fakeAdminRepo, *fakeIssuer) {
	patients := newFakePatientRepo()
	doctors := newFakeDoctorRepo()
	hospitals := newFakeHospitalRepo()
	admins := newFakeAdminRepo()
	issuer := &fakeIssuer{}
	svc := NewAuthService(patients, doctors, hospitals, admins, issuer, zap.NewNop())
	return svc, patients, doctors, hospitals, admins, issuer
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestRegisterPatient(t *testing.T) {
	svc, patients, _, _, _, _ := newTestAuthService()

	age := 34
	p, err := svc.RegisterPatient(context.Background(), &patient.SignupCommand{
		Name:     "Asha Rao",
		Email:    "asha@example.com",
		Password: "supersecret",
		City:     "Pune",
		Age:      &age,
		Gender:   patient.GenderFemale,
	})
	require.NoError(t, err)

	assert.NotEqual(t, "", p.PasswordHash)
	assert.NotEqual(t, "supersecret", p.PasswordHash, "password must be stored hashed")
	assert.Len(t, patients.created, 1)
}

func TestRegisterPatient_DuplicateEmail(t *testing.T) {
	svc, patients, _, _, _, _ := newTestAuthService()
	patients.add(&patient.Patient{Email: "asha@example.com"})

	_, err := svc.RegisterPatient(context.Background(), &patient.SignupCommand{
		Name:     "Asha Rao",
		Email:    "asha@example.com",
		Password: "supersecret",
	})
	assert.ErrorIs(t, err, patient.ErrPatientAlreadyExists)
}

func TestRegisterPatient_InvalidGender(t *testing.T) {
	svc, _, _, _, _, _ := newTestAuthService()

	_, err := svc.RegisterPatient(context.Background(), &patient.SignupCommand{
		Name:     "Asha Rao",
		Email:    "asha@example.com",
		Password: "supersecret",
		Gender:   patient.Gender("robot"),
	})
	assert.ErrorIs(t, err, patient.ErrInvalidGender)
}

func TestLoginPatient(t *testing.T) {
	svc, patients, _, _, _, issuer := newTestAuthService()
	patients.add(&patient.Patient{
		Name:         "Asha Rao",
		Email:        "asha@example.com",
		PasswordHash: mustHash(t, "supersecret"),
	})

	result, err := svc.LoginPatient(context.Background(), "asha@example.com", "supersecret", "127.0.0.1")
	require.NoError(t, err)

	assert.Equal(t, "test-token", result.Token)
	assert.Equal(t, "Asha Rao", result.Name)
	require.NotNil(t, issuer.lastClaims)
	assert.Equal(t, "asha@example.com", issuer.lastClaims.Email)
}

// Unknown email and wrong password must be indistinguishable to the
// caller.
func TestLoginPatient_BadCredentialsSameError(t *testing.T) {
	svc, patients, _, _, _, _ := newTestAuthService()
	patients.add(&patient.Patient{
		Email:        "asha@example.com",
		PasswordHash: mustHash(t, "supersecret"),
	})

	_, unknownErr := svc.LoginPatient(context.Background(), "nobody@example.com", "supersecret", "")
	_, wrongErr := svc.LoginPatient(context.Background(), "asha@example.com", "wrongpass", "")

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestLoginHospital_CarriesTokenVersion(t *testing.T) {
	svc, _, _, hospitals, _, issuer := newTestAuthService()
	hospitals.add(&hospital.Hospital{
		Name:         "City Care",
		Email:        "ops@citycare.example",
		PasswordHash: mustHash(t, "supersecret"),
		TokenVersion: 3,
	})

	_, err := svc.LoginHospital(context.Background(), "ops@citycare.example", "supersecret", "")
	require.NoError(t, err)

	require.NotNil(t, issuer.lastClaims)
	assert.Equal(t, 3, issuer.lastClaims.TokenVersion)
}

func TestLoginAdmin_InactiveRejected(t *testing.T) {
	svc, _, _, _, admins, _ := newTestAuthService()
	admins.add(&admin.AdminUser{
		Email:        "root@example.com",
		PasswordHash: mustHash(t, "supersecret"),
		IsActive:     false,
	})

	_, err := svc.LoginAdmin(context.Background(), "root@example.com", "supersecret", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginAdmin_Active(t *testing.T) {
	svc, _, _, _, admins, _ := newTestAuthService()
	admins.add(&admin.AdminUser{
		Name:         "Root",
		Email:        "root@example.com",
		PasswordHash: mustHash(t, "supersecret"),
		IsActive:     true,
	})

	result, err := svc.LoginAdmin(context.Background(), "root@example.com", "supersecret", "")
	require.NoError(t, err)
	assert.Equal(t, "Root", result.Name)
}
