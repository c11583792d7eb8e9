//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"coupon-budget-service/internal/domain/auth"
	"coupon-budget-service/internal/pkg/errs"
	"coupon-budget-service/internal/pkg/secret"
	"coupon-budget-service/internal/usecase/commands"
	commandsmock "coupon-budget-service/tests/mock/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAuthCommands_IssueToken(t *testing.T) {
	ctx := context.Background()
	hash, err := secret.Hash("order-service-key")
	require.NoError(t, err)
	caller, err := auth.NewCaller("order-service", hash, []auth.Permission{auth.PermissionReserve, auth.PermissionConfirm})
	require.NoError(t, err)

	t.Run("issues a token carrying the caller's permissions", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		registry := commandsmock.NewMockCallerRegistry(ctrl)
		tokens := commandsmock.NewMockTokenIssuer(ctrl)

		registry.EXPECT().Find("order-service").Return(caller, true)
		tokens.EXPECT().GenerateToken("order-service", []string{"budget:reserve", "budget:confirm"}).Return("signed.jwt", nil)
		tokens.EXPECT().TokenDuration().Return(time.Hour)

		issued, err := commands.NewAuthCommands(registry, tokens).IssueToken(ctx, "order-service", "order-service-key")
		require.NoError(t, err)
		assert.Equal(t, "signed.jwt", issued.AccessToken)
		assert.Equal(t, time.Hour, issued.ExpiresIn)
		assert.Equal(t, "order-service", issued.ServiceID)
		assert.Equal(t, []string{"budget:reserve", "budget:confirm"}, issued.Permissions)
	})

	t.Run("unknown caller", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		registry := commandsmock.NewMockCallerRegistry(ctrl)
		registry.EXPECT().Find("ghost").Return(auth.Caller{}, false)

		_, err := commands.NewAuthCommands(registry, commandsmock.NewMockTokenIssuer(ctrl)).IssueToken(ctx, "ghost", "key")
		assert.True(t, errs.Is(err, errs.ErrInvalidCredentials))
	})

	t.Run("wrong client key", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		registry := commandsmock.NewMockCallerRegistry(ctrl)
		registry.EXPECT().Find("order-service").Return(caller, true)

		_, err := commands.NewAuthCommands(registry, commandsmock.NewMockTokenIssuer(ctrl)).IssueToken(ctx, "order-service", "wrong")
		assert.True(t, errs.Is(err, errs.ErrInvalidCredentials))
	})

	t.Run("missing headers", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		a := commands.NewAuthCommands(commandsmock.NewMockCallerRegistry(ctrl), commandsmock.NewMockTokenIssuer(ctrl))

		_, err := a.IssueToken(ctx, "", "key")
		assert.True(t, errs.Is(err, errs.ErrInvalidCredentials))
		_, err = a.IssueToken(ctx, "order-service", "")
		assert.True(t, errs.Is(err, errs.ErrInvalidCredentials))
	})

	t.Run("signing failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		registry := commandsmock.NewMockCallerRegistry(ctrl)
		tokens := commandsmock.NewMockTokenIssuer(ctrl)
		registry.EXPECT().Find("order-service").Return(caller, true)
		tokens.EXPECT().GenerateToken(gomock.Any(), gomock.Any()).Return("", errors.New("no key"))

		_, err := commands.NewAuthCommands(registry, tokens).IssueToken(ctx, "order-service", "order-service-key")
		assert.True(t, errs.Is(err, commands.ErrTokenGeneration))
		assert.False(t, errs.Is(err, errs.ErrInvalidCredentials))
	})
}
