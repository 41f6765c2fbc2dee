package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raksha360/backend/internal/config"
	"github.com/raksha360/backend/internal/domain"
)

func testManager(ttl time.Duration) *JWTManager {
	return NewJWTManager(config.JWTConfig{
		Secret:         "test-secret-test-secret-test-secret",
		AccessTokenTTL: ttl,
		Issuer:         "test-issuer",
	})
}

func TestIssueAndVerify(t *testing.T) {
	m := testManager(time.Hour)
	actorID := uuid.New()

	token, expiresAt, err := m.Issue(&domain.TokenClaims{
		Email:   "asha@example.com",
		Role:    domain.RolePatient,
		ActorID: actorID,
	})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", claims.Email)
	assert.Equal(t, domain.RolePatient, claims.Role)
	assert.Equal(t, actorID, claims.ActorID)
}

func TestVerify_Expired(t *testing.T) {
	m := testManager(-time.Minute)

	token, _, err := m.Issue(&domain.TokenClaims{
		Email: "asha@example.com",
		Role:  domain.RolePatient,
	})
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	m := testManager(time.Hour)
	token, _, err := m.Issue(&domain.TokenClaims{
		Email: "asha@example.com",
		Role:  domain.RoleDoctor,
	})
	require.NoError(t, err)

	other := NewJWTManager(config.JWTConfig{
		Secret:         "a-completely-different-secret-value",
		AccessTokenTTL: time.Hour,
		Issuer:         "test-issuer",
	})
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_Garbage(t *testing.T) {
	m := testManager(time.Hour)
	_, err := m.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_UnknownRoleRejected(t *testing.T) {
	m := testManager(time.Hour)
	token, _, err := m.Issue(&domain.TokenClaims{
		Email: "asha@example.com",
		Role:  domain.Role("superuser"),
	})
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyWithVersion(t *testing.T) {
	m := testManager(time.Hour)
	token, _, err := m.Issue(&domain.TokenClaims{
		Email:        "ops@citycare.example",
		Role:         domain.RoleHospital,
		TokenVersion: 2,
	})
	require.NoError(t, err)

	claims, err := m.VerifyWithVersion(token, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, claims.TokenVersion)

	// A bumped version on the hospital row revokes older tokens.
	_, err = m.VerifyWithVersion(token, 3)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}
