package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/raksha360/backend/internal/config"
	"github.com/raksha360/backend/internal/domain"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
	ErrTokenRevoked = errors.New("token has been revoked")
)

type apiClaims struct {
	jwt.RegisteredClaims
	Role    string    `json:"role"`
	ActorID uuid.UUID `json:"actor_id"`
	// Token-version revocation claim. Issued on every token; verified only
	// when the caller supplies an expected version.
	TokenVersion int `json:"tv"`
}

// JWTManager issues and verifies the signed bearer tokens shared by all
// four actor kinds. The role travels as a claim; scoping it is the
// caller's job.
type JWTManager struct {
	cfg config.JWTConfig
}

func NewJWTManager(cfg config.JWTConfig) *JWTManager {
	return &JWTManager{cfg: cfg}
}

// Issue signs a token for the given claims with the configured TTL.
func (m *JWTManager) Issue(claims *domain.TokenClaims) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(m.cfg.AccessTokenTTL)

	jwtClaims := apiClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.cfg.Issuer,
			Subject:   claims.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			// Skew tolerance of 10 seconds handles clock drift
			NotBefore: jwt.NewNumericDate(now.Add(-10 * time.Second)),
		},
		Role:         string(claims.Role),
		ActorID:      claims.ActorID,
		TokenVersion: claims.TokenVersion,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims)
	signed, err := token.SignedString([]byte(m.cfg.Secret))
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// Verify checks the signature, structure and expiry of a token and
// returns its claims. All malformation collapses to ErrTokenInvalid so
// callers cannot distinguish failure modes.
func (m *JWTManager) Verify(tokenString string) (*domain.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&apiClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(m.cfg.Secret), nil
		},
		jwt.WithIssuer(m.cfg.Issuer),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*apiClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	role := domain.Role(claims.Role)
	if !role.IsValid() {
		return nil, ErrTokenInvalid
	}

	return &domain.TokenClaims{
		Email:        claims.Subject,
		Role:         role,
		ActorID:      claims.ActorID,
		TokenVersion: claims.TokenVersion,
	}, nil
}

// VerifyWithVersion additionally checks the token-version claim against an
// expected value, failing with ErrTokenRevoked on mismatch.
func (m *JWTManager) VerifyWithVersion(tokenString string, expectedVersion int) (*domain.TokenClaims, error) {
	claims, err := m.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenVersion != expectedVersion {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}
