package middleware

import (
	"log/slog"
	"strings"

	"session-booking/internal/domain/identity"
	"session-booking/internal/handler/httperr"
	"session-booking/internal/pkg/errs"
	"session-booking/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxGuestRefKey = "guest_ref"
	ctxUserRoleKey = "user_role"
	ctxClaimsKey   = "jwt_claims"
)

var (
	errTokenRequired    = errs.New("access token required")
	errTokenInvalid     = errs.New("invalid or expired token")
	errInsufficientRole = errs.New("insufficient permissions")
	errMissingPrincipal = errs.New("principal missing from context")
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			httperr.AbortWithError(c, httperr.StatusOf(httperr.CodeUnauthorized), errTokenRequired,
				httperr.CodeUnauthorized, "Access token required", nil)
			return
		}

		principal, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, httperr.StatusOf(httperr.CodeUnauthorized), errs.Wrap(errTokenInvalid, err.Error()),
				httperr.CodeUnauthorized, "Invalid or expired token", nil)
			return
		}

		SetPrincipal(c, principal)
		c.Next()
	}
}

// RequireRoleAtLeast must run after RequireAuth.
func (m *AuthMiddleware) RequireRoleAtLeast(minRole identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			httperr.AbortWithError(c, httperr.StatusOf(errs.CodeInternal), errMissingPrincipal,
				errs.CodeInternal, "Internal server error", nil)
			return
		}

		if !role.AtLeast(minRole) {
			httperr.AbortWithError(c, httperr.StatusOf(httperr.CodeForbidden), errInsufficientRole,
				httperr.CodeForbidden, "Insufficient permissions", nil)
			return
		}

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

// SetPrincipal stores the caller identity. Tests use it to fake authentication.
func SetPrincipal(c *gin.Context, p identity.Principal) {
	c.Set(ctxGuestRefKey, p.GuestRef)
	c.Set(ctxUserRoleKey, p.Role)
	c.Set(ctxClaimsKey, map[string]any{
		"guest_ref": p.GuestRef,
		"role":      string(p.Role),
	})
}

func GetGuestRef(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxGuestRefKey)
	if !exists {
		return "", false
	}

	guestRef, ok := v.(string)
	return guestRef, ok && guestRef != ""
}

func GetUserRole(c *gin.Context) (identity.Role, bool) {
	userRole, exists := c.Get(ctxUserRoleKey)
	if !exists {
		return "", false
	}

	role, ok := userRole.(identity.Role)
	return role, ok
}
