package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/doctors-portal/internal/apperr"
	"github.com/harentsoaR/doctors-portal/internal/auth"
)

const (
	identityKey = "identity"
	adminKey    = "adminIdentity"
)

type Verifier interface {
	Verify(token string) (auth.Identity, error)
}

type Authorizer interface {
	Authorize(ctx context.Context, id auth.Identity) (auth.AdminIdentity, error)
}

// RequireIdentity verifies the bearer token and stores the caller's Identity.
// A missing header is 401; a header without a valid token is 403.
func RequireIdentity(v Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			AbortWithError(c, apperr.New(apperr.Unauthenticated, "UnAuthorized access"))
			return
		}

		var token string
		if parts := strings.Fields(authHeader); len(parts) > 1 {
			token = parts[1]
		}
		if token == "" {
			AbortWithError(c, apperr.New(apperr.Forbidden, "Forbidden access"))
			return
		}
		id, err := v.Verify(token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(identityKey, id)
		c.Next()
	}
}

// RequireAdmin must be chained after RequireIdentity. It converts the Identity into
// an AdminIdentity through the authorizer.
func RequireAdmin(a Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			AbortWithError(c, apperr.New(apperr.Unauthenticated, "UnAuthorized access"))
			return
		}
		admin, err := a.Authorize(c.Request.Context(), id)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.Set(adminKey, admin)
		c.Next()
	}
}

func IdentityFrom(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}

func AdminFrom(c *gin.Context) (auth.AdminIdentity, bool) {
	v, ok := c.Get(adminKey)
	if !ok {
		return auth.AdminIdentity{}, false
	}
	admin, ok := v.(auth.AdminIdentity)
	return admin, ok
}
