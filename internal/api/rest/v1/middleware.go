package v1

import (
	"net/http"
	"strings"

	"github.com/campuscred/campuscred/internal/domain/auth"
	"github.com/campuscred/campuscred/internal/domain/profiles"
	"github.com/campuscred/campuscred/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

const identityKey = "campuscred.identity"

// RequireAuth resolves the access token from the Authorization header or the
// session cookie and stores the caller's identity in the gin context.
func RequireAuth(authService auth.AuthService, cookieName string, log logger.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := requestToken(ctx, cookieName)
		if token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
			return
		}

		identity, err := authService.Authenticate(ctx, token)
		if err != nil {
			respondError(ctx, log, err)
			return
		}

		ctx.Set(identityKey, identity)
		ctx.Next()
	}
}

// RequireRole refuses callers whose role is not one of roles. It must run after RequireAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		identity, ok := currentIdentity(ctx)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
			return
		}
		for _, role := range roles {
			if identity.Role == role {
				ctx.Next()
				return
			}
		}
		ctx.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: "insufficient role"})
	}
}

func requestToken(ctx *gin.Context, cookieName string) string {
	if header := ctx.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := ctx.Cookie(cookieName); err == nil {
		return cookie
	}
	return ""
}

func currentIdentity(ctx *gin.Context) (*auth.Identity, bool) {
	value, ok := ctx.Get(identityKey)
	if !ok {
		return nil, false
	}
	identity, ok := value.(*auth.Identity)
	return identity, ok
}

// currentActor returns the authenticated caller; routes using it sit behind RequireAuth
func currentActor(ctx *gin.Context) profiles.Actor {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return profiles.Actor{}
	}
	return identity.Actor()
}
