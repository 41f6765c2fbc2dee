package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/raksha360/backend/internal/domain"
	"github.com/raksha360/backend/pkg/auth"
)

const actorContextKey = "actor"

// Authenticate verifies the bearer token and resolves it to a concrete
// actor before the handler runs. Handlers downstream read the actor via
// MustActor and never touch the raw token.
func Authenticate(jwtManager *auth.JWTManager, resolver ActorResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		claims, err := jwtManager.Verify(parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				abortUnauthorized(c, "token has expired")
				return
			}
			abortUnauthorized(c, "invalid token")
			return
		}

		actor, err := resolver.Resolve(c.Request.Context(), claims)
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		c.Set(actorContextKey, actor)
		c.Next()
	}
}

// RequireRole narrows a route group to the given actor kinds. It must
// run after Authenticate.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := MustActor(c)
		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error":   "insufficient permissions",
		})
	}
}

// MustActor returns the actor set by Authenticate. It panics on routes
// that are not behind the middleware, which is a wiring bug.
func MustActor(c *gin.Context) domain.Actor {
	v, ok := c.Get(actorContextKey)
	if !ok {
		panic("actor not present in context; route is missing auth middleware")
	}
	return v.(domain.Actor)
}

// ActorResolver is satisfied by service.ActorResolver.
type ActorResolver interface {
	Resolve(ctx context.Context, claims *domain.TokenClaims) (domain.Actor, error)
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   msg,
	})
}
