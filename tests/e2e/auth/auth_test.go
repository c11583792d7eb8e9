//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"coupon-budget-service/internal/domain/auth"
	resdto "coupon-budget-service/internal/handler/dto/response"
	"coupon-budget-service/tests/common/authtest"
	"coupon-budget-service/tests/common/httptest"
	"coupon-budget-service/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	tokenURL  = "/api/auth/token"
	budgetURL = "/api/budgets/1"
)

type authSuite struct {
	e2e.SharedSuite
	jwtHelper *authtest.JWTHelper
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwtHelper = authtest.NewJWTHelper(s.Config.Auth)
}

func (s *authSuite) TestIssueToken() {
	tests := []struct {
		name            string
		serviceID       string
		clientKey       string
		wantStatus      int
		wantPermissions []string
		wantError       string
	}{
		{
			name:            "full access caller",
			serviceID:       e2e.OrderServiceID,
			clientKey:       e2e.TestClientKey,
			wantStatus:      http.StatusOK,
			wantPermissions: []string{"budget:reserve", "budget:confirm", "budget:read"},
		},
		{
			name:            "read-only caller",
			serviceID:       e2e.ReaderServiceID,
			clientKey:       e2e.TestClientKey,
			wantStatus:      http.StatusOK,
			wantPermissions: []string{"budget:read"},
		},
		{
			name:       "wrong client key",
			serviceID:  e2e.OrderServiceID,
			clientKey:  "not-the-key",
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid service credentials",
		},
		{
			name:       "unknown service",
			serviceID:  "billing-service",
			clientKey:  e2e.TestClientKey,
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid service credentials",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()
			w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, tokenURL, nil, map[string]string{
				"X-Service-Id": tt.serviceID,
				"X-Client-Key": tt.clientKey,
			})

			if tt.wantError != "" {
				httptest.AssertErrorResponse(t, w, tt.wantStatus, tt.wantError)
				return
			}

			var res resdto.TokenResponse
			httptest.AssertSuccessResponse(t, w, tt.wantStatus, &res)
			require.NotEmpty(t, res.AccessToken)
			require.Equal(t, "Bearer", res.TokenType)
			require.Equal(t, tt.serviceID, res.ServiceID)
			require.Equal(t, int64(s.Config.Auth.JWTDuration.Seconds()), res.ExpiresIn)
			require.ElementsMatch(t, tt.wantPermissions, res.Permissions)
		})
	}
}

func (s *authSuite) TestProtectedRoutes() {
	s.Run("missing token is rejected", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, budgetURL, nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "")
	})

	s.Run("expired token is rejected", func() {
		token := s.jwtHelper.CreateExpiredToken(s.T(), e2e.OrderServiceID, auth.PermissionRead)
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, budgetURL, nil, token)
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "")
	})

	s.Run("token signed with another secret is rejected", func() {
		cfg := s.Config.Auth
		cfg.JWTSecret = "someone-else"
		token := authtest.NewJWTHelper(cfg).GenerateToken(s.T(), e2e.OrderServiceID, auth.PermissionRead)
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, budgetURL, nil, token)
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "")
	})

	s.Run("read-only caller cannot reserve", func() {
		token := authtest.IssueToken(s.T(), s.Router, e2e.ReaderServiceID, e2e.TestClientKey)
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/budgets/reservations",
			map[string]any{"couponUserId": "k", "budgetId": 1, "amount": "1.00"}, token)
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("request id is echoed on errors", func() {
		w := httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodGet, budgetURL, nil,
			map[string]string{"X-Request-Id": "trace-123"})
		httptest.AssertHeaders(s.T(), w, map[string]string{"X-Request-Id": "trace-123"})
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Access token required")
	})

	s.Run("issued token reaches the handler", func() {
		token := authtest.IssueToken(s.T(), s.Router, e2e.ReaderServiceID, e2e.TestClientKey)
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, budgetURL, nil, token)
		require.Equal(s.T(), http.StatusNotFound, w.Code, w.Body.String())
	})
}
