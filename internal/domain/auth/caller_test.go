//go:build unit

package auth_test

import (
	"testing"

	"coupon-budget-service/internal/domain/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePermissions(t *testing.T) {
	perms, err := auth.ParsePermissions([]string{"budget:reserve", " budget:read ", "budget:reserve"})
	require.NoError(t, err)
	assert.Equal(t, []auth.Permission{auth.PermissionReserve, auth.PermissionRead}, perms)

	_, err = auth.ParsePermissions([]string{"budget:delete"})
	assert.ErrorIs(t, err, auth.ErrUnknownPermission)
}

func TestCaller(t *testing.T) {
	t.Run("valid caller", func(t *testing.T) {
		c, err := auth.NewCaller(" order-service ", "$2a$hash", []auth.Permission{auth.PermissionReserve})
		require.NoError(t, err)
		assert.Equal(t, "order-service", c.ServiceID())

		p := c.Principal()
		assert.True(t, p.Has(auth.PermissionReserve))
		assert.False(t, p.Has(auth.PermissionConfirm))
	})

	t.Run("empty service id", func(t *testing.T) {
		_, err := auth.NewCaller("", "$2a$hash", nil)
		assert.ErrorIs(t, err, auth.ErrEmptyServiceID)
	})

	t.Run("empty hash", func(t *testing.T) {
		_, err := auth.NewCaller("svc", "", nil)
		assert.ErrorIs(t, err, auth.ErrEmptyKeyHash)
	})

	t.Run("permissions are copied", func(t *testing.T) {
		perms := []auth.Permission{auth.PermissionRead}
		c, err := auth.NewCaller("svc", "h", perms)
		require.NoError(t, err)
		perms[0] = auth.PermissionConfirm
		assert.Equal(t, []auth.Permission{auth.PermissionRead}, c.Permissions())
	})
}
