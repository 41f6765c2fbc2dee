package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raksha360/backend/internal/domain"
	"github.com/raksha360/backend/internal/domain/admin"
	"github.com/raksha360/backend/internal/domain/patient"
)

func newTestResolver() (*ActorResolver, *fakePatientRepo, *fakeAdminRepo) {
	patients := newFakePatientRepo()
	doctors := newFakeDoctorRepo()
	hospitals := newFakeHospitalRepo()
	admins := newFakeAdminRepo()
	return NewActorResolver(patients, doctors, hospitals, admins), patients, admins
}

func TestResolve_Patient(t *testing.T) {
	resolver, patients, _ := newTestResolver()
	p := &patient.Patient{Email: "asha@example.com"}
	patients.add(p)

	actor, err := resolver.Resolve(context.Background(), &domain.TokenClaims{
		Email: "asha@example.com",
		Role:  domain.RolePatient,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RolePatient, actor.Role)
	assert.Equal(t, p.ID, actor.ID)
}

func TestResolve_RowGoneAfterIssuance(t *testing.T) {
	resolver, _, _ := newTestResolver()

	_, err := resolver.Resolve(context.Background(), &domain.TokenClaims{
		Email: "ghost@example.com",
		Role:  domain.RolePatient,
	})
	assert.ErrorIs(t, err, ErrActorNotFound)
}

func TestResolve_InactiveAdmin(t *testing.T) {
	resolver, _, admins := newTestResolver()
	admins.add(&admin.AdminUser{Email: "root@example.com", IsActive: false})

	_, err := resolver.Resolve(context.Background(), &domain.TokenClaims{
		Email: "root@example.com",
		Role:  domain.RoleAdmin,
	})
	assert.ErrorIs(t, err, ErrActorNotFound)
}

func TestResolve_UnknownRole(t *testing.T) {
	resolver, _, _ := newTestResolver()

	_, err := resolver.Resolve(context.Background(), &domain.TokenClaims{
		Email: "asha@example.com",
		Role:  domain.Role("superuser"),
	})
	assert.ErrorIs(t, err, ErrActorNotFound)
}
