package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"coupon-budget-service/internal/domain/auth"
	"coupon-budget-service/internal/handler/httperr"
	"coupon-budget-service/internal/pkg/errs"
	"coupon-budget-service/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxPrincipalKey = "principal"
	ctxServiceIDKey = "service_id"
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
			httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrInvalidCredentials, "Access token required", nil)
			return
		}

		principal, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		c.Set(ctxPrincipalKey, principal)
		c.Set(ctxServiceIDKey, principal.ServiceID)
		c.Next()
	}
}

// RequirePermission must run after RequireAuth.
func (m *AuthMiddleware) RequirePermission(perm auth.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusInternalServerError, errs.ErrInternal, "Internal server error", nil)
			return
		}

		if !principal.Has(perm) {
			slog.Warn("Permission denied",
				"service_id", principal.ServiceID,
				"permission", string(perm),
				"path", c.Request.URL.Path)
			httperr.AbortWithError(c, http.StatusForbidden, errs.ErrPermissionDenied, "Insufficient permissions", nil)
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

func GetPrincipal(c *gin.Context) (auth.Principal, bool) {
	v, exists := c.Get(ctxPrincipalKey)
	if !exists {
		return auth.Principal{}, false
	}

	p, ok := v.(auth.Principal)
	return p, ok
}

func GetServiceID(c *gin.Context) string {
	return c.GetString(ctxServiceIDKey)
}
