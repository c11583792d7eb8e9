//go:build unit

package infra_test

import (
	"context"
	"errors"
	"testing"

	"coupon-budget-service/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		kind infra.RepositoryErrorKind
	}{
		{"no rows", pgx.ErrNoRows, infra.KindNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, infra.KindDuplicateKey},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, infra.KindForeignKeyViolated},
		{"lock timeout", &pgconn.PgError{Code: "55P03"}, infra.KindLockTimeout},
		{"statement canceled", &pgconn.PgError{Code: "57014"}, infra.KindUnavailable},
		{"deadline", context.DeadlineExceeded, infra.KindUnavailable},
		{"canceled", context.Canceled, infra.KindUnavailable},
		{"other pg error", &pgconn.PgError{Code: "22003"}, infra.KindDBFailure},
		{"plain error", errors.New("boom"), infra.KindDBFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := infra.WrapRepoErr("op", tc.err)
			assert.True(t, infra.IsKind(wrapped, tc.kind), "got %v", wrapped)
			assert.ErrorIs(t, wrapped, tc.err)
		})
	}

	t.Run("NewRepoErr carries kind only", func(t *testing.T) {
		err := infra.NewRepoErr(infra.KindNotFound, "budget 1")
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
		assert.Equal(t, "NOT_FOUND: budget 1", err.Error())
	})
}
