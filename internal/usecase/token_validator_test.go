//go:build unit

package usecase_test

import (
	"testing"
	"time"

	"coupon-budget-service/internal/domain/auth"
	"coupon-budget-service/internal/pkg/jwt"
	"coupon-budget-service/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenValidator_ValidateToken(t *testing.T) {
	svc := jwt.NewService("secret", time.Minute, "budget-test")
	validator := usecase.NewTokenValidator(svc)

	t.Run("builds a principal and skips unknown permissions", func(t *testing.T) {
		token, err := svc.GenerateToken("order-service", []string{"budget:reserve", "budget:admin"})
		require.NoError(t, err)

		p, err := validator.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "order-service", p.ServiceID)
		assert.Equal(t, []auth.Permission{auth.PermissionReserve}, p.Permissions)
		assert.True(t, p.Has(auth.PermissionReserve))
		assert.False(t, p.Has(auth.PermissionRead))
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := validator.ValidateToken("garbage")
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}
