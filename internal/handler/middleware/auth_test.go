//go:build unit

package middleware_test

import (
	"net/http"
	"testing"
	"time"

	"coupon-budget-service/internal/domain/auth"
	"coupon-budget-service/internal/handler/middleware"
	"coupon-budget-service/internal/pkg/jwt"
	"coupon-budget-service/internal/usecase"
	"coupon-budget-service/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T, svc *jwt.Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())

	m := middleware.NewAuthMiddleware(usecase.NewTokenValidator(svc))
	g := r.Group("/budgets", m.RequireAuth())
	g.GET("/:id", m.RequirePermission(auth.PermissionRead), func(c *gin.Context) {
		p, _ := middleware.GetPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"serviceId": p.ServiceID, "from_ctx": middleware.GetServiceID(c)})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	svc := jwt.NewService("secret", time.Minute, "budget-test")
	router := newRouter(t, svc)

	token := func(perms ...string) string {
		tok, err := svc.GenerateToken("order-service", perms)
		require.NoError(t, err)
		return tok
	}

	t.Run("allows a token with the permission", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/budgets/1", nil, token("budget:read"))

		var body map[string]string
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Equal(t, "order-service", body["serviceId"])
		assert.Equal(t, "order-service", body["from_ctx"])
	})

	t.Run("forbids a token without the permission", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/budgets/1", nil, token("budget:reserve"))
		httptest.AssertErrorResponse(t, rec, http.StatusForbidden, "Insufficient permissions")
	})

	t.Run("requires a token", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/budgets/1", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Access token required")
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		other := jwt.NewService("other", time.Minute, "budget-test")
		forged, err := other.GenerateToken("order-service", []string{"budget:read"})
		require.NoError(t, err)

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/budgets/1", nil, forged)
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	t.Run("rejects a non bearer scheme", func(t *testing.T) {
		rec := httptest.PerformRequestWithHeaders(t, router, http.MethodGet, "/budgets/1", nil,
			map[string]string{"Authorization": "Basic Zm9vOmJhcg=="})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequirePermission_WithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	m := middleware.NewAuthMiddleware(nil)
	r.GET("/x", m.RequirePermission(auth.PermissionRead), func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.PerformRequest(t, r, http.MethodGet, "/x", nil, "")
	httptest.AssertErrorResponse(t, rec, http.StatusInternalServerError, "")
}
