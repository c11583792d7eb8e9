//go:build unit

package memstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"coupon-budget-service/internal/domain/budget"
	"coupon-budget-service/internal/infra"
	"coupon-budget-service/internal/pkg/clock"
	"coupon-budget-service/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

func newStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	s := New(clock.NewMockClock(testNow), opts...)
	s.PutBudget(1, budget.MustAmount("100.00"))
	return s
}

func reserve(ctx context.Context, tx shared.Tx, key string, amount string) error {
	b, err := tx.Budgets().LockByID(ctx, 1)
	if err != nil {
		return err
	}
	a := budget.MustAmount(amount)
	if err := b.Debit(a, testNow); err != nil {
		return err
	}
	u, err := budget.NewReservation(budget.CouponUserID(key), 1, 10, 100, a, testNow)
	if err != nil {
		return err
	}
	if err := tx.Budgets().UpdateRemaining(ctx, b); err != nil {
		return err
	}
	return tx.Usages().Insert(ctx, u)
}

func TestWithin_CommitAndRollback(t *testing.T) {
	ctx := context.Background()

	t.Run("committed writes are visible", func(t *testing.T) {
		s := newStore(t)
		err := s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return reserve(ctx, tx, "k1", "60.00")
		})
		require.NoError(t, err)

		b, err := s.Reads().BudgetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "40.00", b.Remaining().String())

		u, err := s.Reads().LatestUsage(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, budget.StatusReserved, u.Status())
	})

	t.Run("failed fn leaves no partial state", func(t *testing.T) {
		s := newStore(t)
		boom := assert.AnError
		err := s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			if err := reserve(ctx, tx, "k1", "60.00"); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		b, err := s.Reads().BudgetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "100.00", b.Remaining().String())

		_, err = s.Reads().LatestUsage(ctx, "k1")
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("cancelled context aborts the commit", func(t *testing.T) {
		s := newStore(t)
		cctx, cancel := context.WithCancel(ctx)
		err := s.Within(cctx, func(ctx context.Context, tx shared.Tx) error {
			defer cancel()
			return reserve(ctx, tx, "k1", "60.00")
		})
		assert.True(t, infra.IsKind(err, infra.KindUnavailable))

		b, _ := s.Reads().BudgetByID(ctx, 1)
		assert.Equal(t, "100.00", b.Remaining().String())
	})
}

func TestUsages(t *testing.T) {
	ctx := context.Background()

	t.Run("second active insert for the same key is a duplicate", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return reserve(ctx, tx, "k1", "10.00")
		}))
		err := s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return reserve(ctx, tx, "k1", "10.00")
		})
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
	})

	t.Run("rolled back key can be reserved again and latest prefers the active row", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return reserve(ctx, tx, "k1", "10.00")
		}))
		require.NoError(t, s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			u, err := tx.Usages().FindLatestForUpdate(ctx, "k1")
			if err != nil {
				return err
			}
			if err := u.RollBack(testNow); err != nil {
				return err
			}
			return tx.Usages().UpdateStatus(ctx, u)
		}))
		require.NoError(t, s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return reserve(ctx, tx, "k1", "20.00")
		}))

		u, err := s.Reads().LatestUsage(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, budget.StatusReserved, u.Status())
		assert.Equal(t, "20.00", u.Amount().String())

		views, err := s.FindUsagesFirstPage(ctx, 1, 10)
		require.NoError(t, err)
		assert.Len(t, views, 2)
	})

	t.Run("find latest active by owner", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return reserve(ctx, tx, "k1", "10.00")
		}))
		err := s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			u, err := tx.Usages().FindLatestActiveByOwner(ctx, 1, 10, 100)
			require.NoError(t, err)
			assert.Equal(t, budget.CouponUserID("k1"), u.CouponUserID())

			_, err = tx.Usages().FindLatestActiveByOwner(ctx, 1, 10, 999)
			assert.True(t, infra.IsKind(err, infra.KindNotFound))
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("update of an unknown row is not found", func(t *testing.T) {
		s := newStore(t)
		u, err := budget.NewReservation("ghost", 1, 10, 100, budget.MustAmount("1.00"), testNow)
		require.NoError(t, err)
		err = s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Usages().UpdateStatus(ctx, u)
		})
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestLockByID(t *testing.T) {
	ctx := context.Background()

	t.Run("missing budget keeps the lock and reports not found", func(t *testing.T) {
		s := newStore(t)
		err := s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			_, err := tx.Budgets().LockByID(ctx, 42)
			return err
		})
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("lock wait beyond the timeout is a lock timeout", func(t *testing.T) {
		s := newStore(t, WithLockTimeout(20*time.Millisecond))
		held := make(chan struct{})
		done := make(chan struct{})
		go func() {
			_ = s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
				_, err := tx.Budgets().LockByID(ctx, 1)
				close(held)
				<-done
				return err
			})
		}()
		<-held
		err := s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			_, err := tx.Budgets().LockByID(ctx, 1)
			return err
		})
		close(done)
		assert.True(t, infra.IsKind(err, infra.KindLockTimeout))
	})

	t.Run("concurrent reservations never overspend", func(t *testing.T) {
		s := newStore(t)
		var wg sync.WaitGroup
		var mu sync.Mutex
		succeeded := 0
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
					return reserve(ctx, tx, uuid.NewString(), "15.00")
				})
				if err == nil {
					mu.Lock()
					succeeded++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 6, succeeded)
		b, _ := s.Reads().BudgetByID(ctx, 1)
		assert.Equal(t, "10.00", b.Remaining().String())
	})
}

func TestProcessPending(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, WithMaxOutboxAttempts(2))

	require.NoError(t, s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		for i := 0; i < 2; i++ {
			if err := tx.Outbox().Enqueue(ctx, shared.OutboxMessage{ID: uuid.New(), Topic: "usage", Payload: []byte(`{}`)}); err != nil {
				return err
			}
		}
		return nil
	}))

	calls := 0
	n, err := s.ProcessPending(ctx, 10, func(ctx context.Context, msg shared.OutboxMessage) error {
		calls++
		if calls == 1 {
			return assert.AnError
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, s.PendingOutbox(), 1)
	assert.Equal(t, int32(1), s.PendingOutbox()[0].Attempts)

	// second failure exhausts the attempts
	_, err = s.ProcessPending(ctx, 10, func(ctx context.Context, msg shared.OutboxMessage) error {
		return assert.AnError
	})
	require.NoError(t, err)
	n, err = s.ProcessPending(ctx, 10, func(ctx context.Context, msg shared.OutboxMessage) error {
		t.Fatal("exhausted message must not be retried")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestParseSeeds(t *testing.T) {
	seeds, err := ParseSeeds([]string{"1:100.00", " 2:0.50"})
	require.NoError(t, err)
	assert.Equal(t, "100.00", seeds[1].String())
	assert.Equal(t, "0.50", seeds[2].String())

	_, err = ParseSeeds([]string{"1=100"})
	assert.Error(t, err)
	_, err = ParseSeeds([]string{"x:100"})
	assert.Error(t, err)
}
