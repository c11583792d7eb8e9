//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"coupon-budget-service/internal/infra"
	"coupon-budget-service/internal/pkg/errs"
	"coupon-budget-service/internal/usecase/queries"
	queriesmock "coupon-budget-service/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func usages(n int) []*queries.UsageView {
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	out := make([]*queries.UsageView, n)
	for i := range out {
		out[i] = &queries.UsageView{ID: uuid.New(), BudgetID: 1, CreatedAt: base.Add(-time.Duration(i) * time.Second)}
	}
	return out
}

func TestBudgetQueries_GetBudget(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := queriesmock.NewMockBudgetReadStore(ctrl)
	q := queries.NewBudgetQueries(store)

	store.EXPECT().FindBudget(ctx, int64(1)).Return(&queries.BudgetView{ID: 1}, nil)
	b, err := q.GetBudget(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), b.ID)

	store.EXPECT().FindBudget(ctx, int64(2)).Return(nil, infra.NewRepoErr(infra.KindNotFound, "budget 2"))
	_, err = q.GetBudget(ctx, 2)
	assert.ErrorIs(t, err, queries.ErrBudgetNotFound)

	boom := errors.New("boom")
	store.EXPECT().FindBudget(ctx, int64(3)).Return(nil, boom)
	_, err = q.GetBudget(ctx, 3)
	assert.ErrorIs(t, err, boom)
}

func TestBudgetQueries_GetUsage(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := queriesmock.NewMockBudgetReadStore(ctrl)
	q := queries.NewBudgetQueries(store)

	store.EXPECT().FindLatestUsage(ctx, "A").Return(nil, infra.NewRepoErr(infra.KindNotFound, "usage A"))
	_, err := q.GetUsage(ctx, "A")
	assert.ErrorIs(t, err, queries.ErrUsageNotFound)
}

func TestBudgetQueries_ListUsages(t *testing.T) {
	ctx := context.Background()

	t.Run("first page with more rows returns cursor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockBudgetReadStore(ctrl)
		q := queries.NewBudgetQueries(store)

		rows := usages(3)
		store.EXPECT().FindUsagesFirstPage(ctx, int64(1), int32(3)).Return(rows, nil)

		page, next, err := q.ListUsages(ctx, 1, nil, 2)
		require.NoError(t, err)
		assert.Len(t, page, 2)
		require.NotNil(t, next)

		at, id, err := queries.DecodeAfterCursor(next.After)
		require.NoError(t, err)
		assert.Equal(t, rows[1].ID, id)
		assert.True(t, rows[1].CreatedAt.Equal(at))
	})

	t.Run("keyset page uses decoded cursor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockBudgetReadStore(ctrl)
		q := queries.NewBudgetQueries(store)

		at := time.Date(2025, 1, 1, 9, 0, 0, 123000, time.UTC)
		id := uuid.New()
		cursor := &queries.Cursor{After: queries.EncodeAfterCursor(at, id)}

		store.EXPECT().FindUsagesKeyset(ctx, int64(1), at, id, int32(queries.DefaultListLimit+1)).Return(usages(1), nil)

		page, next, err := q.ListUsages(ctx, 1, cursor, 0)
		require.NoError(t, err)
		assert.Len(t, page, 1)
		assert.Nil(t, next)
	})

	t.Run("garbage cursor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockBudgetReadStore(ctrl)
		q := queries.NewBudgetQueries(store)

		_, _, err := q.ListUsages(ctx, 1, &queries.Cursor{After: "not-a-cursor"}, 10)
		assert.True(t, errs.Is(err, queries.ErrInvalidCursor))
	})
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(0))
	assert.Equal(t, 5, queries.ValidateLimit(5))
	assert.Equal(t, queries.MaxListLimit, queries.ValidateLimit(10_000))
}
