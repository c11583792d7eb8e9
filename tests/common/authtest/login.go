//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	resdto "coupon-budget-service/internal/handler/dto/response"
	"coupon-budget-service/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const tokenURL = "/api/auth/token"

// IssueToken exchanges service credentials for a bearer token through the API.
func IssueToken(t *testing.T, router *gin.Engine, serviceID, clientKey string) string {
	t.Helper()

	w := httptest.PerformRequestWithHeaders(t, router, http.MethodPost, tokenURL, nil, map[string]string{
		"X-Service-Id": serviceID,
		"X-Client-Key": clientKey,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res resdto.TokenResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
	require.NotEmpty(t, res.AccessToken, "access token is empty")
	return res.AccessToken
}
