//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"coupon-budget-service/internal/domain/auth"
	"coupon-budget-service/internal/pkg/config"
	"coupon-budget-service/internal/pkg/jwt"

	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.AuthConfig
}

func NewJWTHelper(cfg config.AuthConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, serviceID string, perms ...auth.Permission) string {
	t.Helper()
	service := jwt.NewService(h.cfg.JWTSecret, h.cfg.JWTDuration, h.cfg.JWTIssuer)
	token, err := service.GenerateToken(serviceID, auth.PermissionStrings(perms))
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, serviceID string, perms ...auth.Permission) string {
	t.Helper()
	service := jwt.NewService(h.cfg.JWTSecret, time.Millisecond, h.cfg.JWTIssuer)
	token, err := service.GenerateToken(serviceID, auth.PermissionStrings(perms))
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}
