//go:build unit

package ledger_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"coupon-budget-service/internal/domain/budget"
	"coupon-budget-service/internal/infra"
	"coupon-budget-service/internal/infra/memstore"
	"coupon-budget-service/internal/pkg/clock"
	"coupon-budget-service/internal/pkg/errs"
	"coupon-budget-service/internal/usecase/ledger"
	"coupon-budget-service/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	store  *memstore.Store
	clock  *clock.MockClock
	ledger *ledger.Ledger
}

func newFixture(t *testing.T, opts ...memstore.Option) *fixture {
	t.Helper()
	clk := clock.NewMockClock(testNow)
	store := memstore.New(clk, opts...)
	store.PutBudget(1, budget.MustAmount("100.00"))
	return &fixture{
		store:  store,
		clock:  clk,
		ledger: ledger.New(store, clk, ledger.Config{TxTimeout: time.Second, UsageTopic: "budget-usage"}),
	}
}

func (f *fixture) remaining(t *testing.T, id int64) string {
	t.Helper()
	b, err := f.store.Reads().BudgetByID(context.Background(), id)
	require.NoError(t, err)
	return b.Remaining().String()
}

func reserveCmd(key string, amount string) ledger.ReserveCommand {
	return ledger.ReserveCommand{
		BudgetID:     1,
		CouponUserID: budget.CouponUserID(key),
		CouponID:     10,
		UserID:       100,
		Amount:       budget.MustAmount(amount),
	}
}

func rollbackCmd(key string, amount string) ledger.RollbackCommand {
	return ledger.RollbackCommand{
		BudgetID:     1,
		CouponUserID: budget.CouponUserID(key),
		Amount:       budget.MustAmount(amount),
	}
}

func TestScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	out, err := f.ledger.Reserve(ctx, reserveCmd("A", "60.00"))
	require.NoError(t, err)
	require.IsType(t, budget.Reserved{}, out)
	assert.Equal(t, "40.00", out.(budget.Reserved).Balance.Remaining.String())
	assert.Equal(t, "40.00", f.remaining(t, 1))

	out, err = f.ledger.Reserve(ctx, reserveCmd("B", "60.00"))
	require.NoError(t, err)
	assert.Equal(t, budget.CodeInsufficientBudget, out.Code())
	assert.Equal(t, "40.00", f.remaining(t, 1))

	out, err = f.ledger.Reserve(ctx, reserveCmd("A", "60.00"))
	require.NoError(t, err)
	assert.Equal(t, budget.CodeAlreadyReserved, out.Code())
	assert.Equal(t, "40.00", f.remaining(t, 1))

	rb, err := f.ledger.Rollback(ctx, rollbackCmd("A", "60.00"))
	require.NoError(t, err)
	require.IsType(t, budget.RolledBack{}, rb)
	assert.Equal(t, budget.StatusReserved, rb.(budget.RolledBack).From)
	assert.Equal(t, "100.00", f.remaining(t, 1))

	co, err := f.ledger.Confirm(ctx, ledger.ConfirmCommand{CouponUserID: "A"})
	require.NoError(t, err)
	assert.Equal(t, budget.CodeNotFound, co.Code())
	assert.Equal(t, budget.ReservationNotFound{Key: "A", Status: budget.StatusRolledBack}, co)
}

func TestReserve(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid arguments", func(t *testing.T) {
		f := newFixture(t)
		cmds := map[string]ledger.ReserveCommand{
			"zero amount":   reserveCmd("A", "0"),
			"empty key":     reserveCmd("", "1.00"),
			"missing owner": {BudgetID: 1, CouponUserID: "A", Amount: budget.MustAmount("1.00")},
			"bad budget":    {BudgetID: 0, CouponUserID: "A", CouponID: 1, UserID: 1, Amount: budget.MustAmount("1.00")},
		}
		for name, cmd := range cmds {
			t.Run(name, func(t *testing.T) {
				_, err := f.ledger.Reserve(ctx, cmd)
				require.Error(t, err)
				assert.Equal(t, budget.CodeInvalidArgument, ledger.Code(err))
			})
		}
		assert.Equal(t, "100.00", f.remaining(t, 1))
	})

	t.Run("unknown budget is not found", func(t *testing.T) {
		f := newFixture(t)
		cmd := reserveCmd("A", "1.00")
		cmd.BudgetID = 99
		out, err := f.ledger.Reserve(ctx, cmd)
		require.NoError(t, err)
		assert.Equal(t, budget.BudgetNotFound{BudgetID: 99}, out)
	})

	t.Run("exact remaining can be reserved", func(t *testing.T) {
		f := newFixture(t)
		out, err := f.ledger.Reserve(ctx, reserveCmd("A", "100.00"))
		require.NoError(t, err)
		assert.IsType(t, budget.Reserved{}, out)
		assert.Equal(t, "0.00", f.remaining(t, 1))
	})

	t.Run("key is reusable after rollback", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.ledger.Reserve(ctx, reserveCmd("A", "30.00"))
		require.NoError(t, err)
		_, err = f.ledger.Rollback(ctx, rollbackCmd("A", "30.00"))
		require.NoError(t, err)

		out, err := f.ledger.Reserve(ctx, reserveCmd("A", "30.00"))
		require.NoError(t, err)
		assert.IsType(t, budget.Reserved{}, out)
		assert.Equal(t, "70.00", f.remaining(t, 1))
	})

	t.Run("idempotent under concurrent retries of the same key", func(t *testing.T) {
		f := newFixture(t)
		var wg sync.WaitGroup
		results := make(chan budget.ReserveOutcome, 10)
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				out, err := f.ledger.Reserve(ctx, reserveCmd("A", "10.00"))
				if assert.NoError(t, err) {
					results <- out
				}
			}()
		}
		wg.Wait()
		close(results)

		reserved := 0
		for out := range results {
			if _, ok := out.(budget.Reserved); ok {
				reserved++
			} else {
				assert.Equal(t, budget.CodeAlreadyReserved, out.Code())
			}
		}
		assert.Equal(t, 1, reserved)
		assert.Equal(t, "90.00", f.remaining(t, 1))
	})

	t.Run("no overspend under concurrency", func(t *testing.T) {
		f := newFixture(t)
		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			reserved int
		)
		for i := range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				out, err := f.ledger.Reserve(ctx, reserveCmd(fmt.Sprintf("user-%d", i), "7.00"))
				if !assert.NoError(t, err) {
					return
				}
				if _, ok := out.(budget.Reserved); ok {
					mu.Lock()
					reserved++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 14, reserved)
		assert.Equal(t, "2.00", f.remaining(t, 1))
	})
}

func TestConfirm(t *testing.T) {
	ctx := context.Background()

	t.Run("confirms once and enqueues one usage event", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.ledger.Reserve(ctx, reserveCmd("A", "25.50"))
		require.NoError(t, err)

		f.clock.Add(time.Minute)
		out, err := f.ledger.Confirm(ctx, ledger.ConfirmCommand{CouponUserID: "A"})
		require.NoError(t, err)
		require.IsType(t, budget.Confirmed{}, out)
		confirmed := out.(budget.Confirmed)
		assert.Equal(t, budget.StatusConfirmed, confirmed.Usage.Status())
		assert.Equal(t, testNow.Add(time.Minute), confirmed.Usage.UsageTime())

		out, err = f.ledger.Confirm(ctx, ledger.ConfirmCommand{CouponUserID: "A"})
		require.NoError(t, err)
		assert.IsType(t, budget.AlreadyConfirmed{}, out)
		assert.Equal(t, budget.CodeNone, out.Code())

		pending := f.store.PendingOutbox()
		require.Len(t, pending, 1)
		assert.Equal(t, "budget-usage", pending[0].Topic)
		assert.Equal(t, confirmed.Usage.ID().String(), pending[0].AggregateID)

		var ev ledger.UsageEvent
		require.NoError(t, json.Unmarshal(pending[0].Payload, &ev))
		assert.Equal(t, confirmed.Usage.ID().String(), ev.TransactionID)
		assert.Equal(t, "25.5", ev.DiscountAmount.String())
		assert.Equal(t, int64(1), ev.BudgetID)

		// remaining is untouched by confirm
		assert.Equal(t, "74.50", f.remaining(t, 1))
	})

	t.Run("unknown key is not found", func(t *testing.T) {
		f := newFixture(t)
		out, err := f.ledger.Confirm(ctx, ledger.ConfirmCommand{CouponUserID: "nobody"})
		require.NoError(t, err)
		assert.Equal(t, budget.ReservationNotFound{Key: "nobody", Status: budget.StatusNone}, out)
	})

	t.Run("budget mismatch is not found", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.ledger.Reserve(ctx, reserveCmd("A", "10.00"))
		require.NoError(t, err)

		out, err := f.ledger.Confirm(ctx, ledger.ConfirmCommand{CouponUserID: "A", BudgetID: 2})
		require.NoError(t, err)
		assert.Equal(t, budget.CodeNotFound, out.Code())
		assert.Empty(t, f.store.PendingOutbox())
	})

	t.Run("empty key is invalid", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.ledger.Confirm(ctx, ledger.ConfirmCommand{})
		assert.Equal(t, budget.CodeInvalidArgument, ledger.Code(err))
	})
}

func TestRollback(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate rollback is a no-op", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.ledger.Reserve(ctx, reserveCmd("A", "60.00"))
		require.NoError(t, err)

		_, err = f.ledger.Rollback(ctx, rollbackCmd("A", "60.00"))
		require.NoError(t, err)
		out, err := f.ledger.Rollback(ctx, rollbackCmd("A", "60.00"))
		require.NoError(t, err)
		assert.Equal(t, budget.NothingToRollBack{Key: "A", Status: budget.StatusRolledBack}, out)
		assert.Equal(t, "100.00", f.remaining(t, 1))
	})

	t.Run("absent usage is a no-op", func(t *testing.T) {
		f := newFixture(t)
		out, err := f.ledger.Rollback(ctx, rollbackCmd("ghost", "5.00"))
		require.NoError(t, err)
		assert.IsType(t, budget.NothingToRollBack{}, out)
		assert.Equal(t, budget.CodeNone, out.Code())
	})

	t.Run("confirmed usage is reversed", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.ledger.Reserve(ctx, reserveCmd("A", "60.00"))
		require.NoError(t, err)
		_, err = f.ledger.Confirm(ctx, ledger.ConfirmCommand{CouponUserID: "A"})
		require.NoError(t, err)

		out, err := f.ledger.Rollback(ctx, rollbackCmd("A", "60.00"))
		require.NoError(t, err)
		require.IsType(t, budget.RolledBack{}, out)
		rb := out.(budget.RolledBack)
		assert.Equal(t, budget.StatusConfirmed, rb.From)
		assert.Equal(t, budget.StatusConfirmed, rb.Usage.ReversedFrom())
		assert.Equal(t, "100.00", f.remaining(t, 1))
	})

	t.Run("expected status must match the usage", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.ledger.Reserve(ctx, reserveCmd("A", "60.00"))
		require.NoError(t, err)
		_, err = f.ledger.Confirm(ctx, ledger.ConfirmCommand{CouponUserID: "A"})
		require.NoError(t, err)

		cmd := rollbackCmd("A", "60.00")
		cmd.ExpectedStatus = budget.StatusReserved
		out, err := f.ledger.Rollback(ctx, cmd)
		require.NoError(t, err)
		assert.Equal(t, budget.NothingToRollBack{Key: "A", Status: budget.StatusConfirmed}, out)
		assert.Equal(t, "40.00", f.remaining(t, 1))

		u, err := f.store.Reads().LatestUsage(ctx, "A")
		require.NoError(t, err)
		assert.Equal(t, budget.StatusConfirmed, u.Status())

		cmd.ExpectedStatus = budget.StatusConfirmed
		out, err = f.ledger.Rollback(ctx, cmd)
		require.NoError(t, err)
		require.IsType(t, budget.RolledBack{}, out)
		assert.Equal(t, "100.00", f.remaining(t, 1))
	})

	t.Run("credits the reserved amount, not the event amount", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.ledger.Reserve(ctx, reserveCmd("A", "60.00"))
		require.NoError(t, err)

		_, err = f.ledger.Rollback(ctx, rollbackCmd("A", "99.00"))
		require.NoError(t, err)
		assert.Equal(t, "100.00", f.remaining(t, 1))
	})

	t.Run("by owner when no key is given", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.ledger.Reserve(ctx, reserveCmd("A", "60.00"))
		require.NoError(t, err)

		out, err := f.ledger.Rollback(ctx, ledger.RollbackCommand{BudgetID: 1, CouponID: 10, UserID: 100})
		require.NoError(t, err)
		require.IsType(t, budget.RolledBack{}, out)
		assert.Equal(t, budget.CouponUserID("A"), out.(budget.RolledBack).Usage.CouponUserID())
		assert.Equal(t, "100.00", f.remaining(t, 1))
	})

	t.Run("usage on another budget is left alone", func(t *testing.T) {
		f := newFixture(t)
		f.store.PutBudget(2, budget.MustAmount("10.00"))
		_, err := f.ledger.Reserve(ctx, reserveCmd("A", "60.00"))
		require.NoError(t, err)

		cmd := rollbackCmd("A", "60.00")
		cmd.BudgetID = 2
		out, err := f.ledger.Rollback(ctx, cmd)
		require.NoError(t, err)
		assert.IsType(t, budget.NothingToRollBack{}, out)
		assert.Equal(t, "40.00", f.remaining(t, 1))
		assert.Equal(t, "10.00", f.remaining(t, 2))
	})

	t.Run("missing budget fails without mutation", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.ledger.Reserve(ctx, reserveCmd("A", "60.00"))
		require.NoError(t, err)
		f.store.RemoveBudget(1)

		out, err := f.ledger.Rollback(ctx, rollbackCmd("A", "60.00"))
		require.NoError(t, err)
		require.IsType(t, budget.RollbackBudgetMissing{}, out)
		assert.Equal(t, budget.CodeRollbackFailed, out.Code())

		u, err := f.store.Reads().LatestUsage(ctx, "A")
		require.NoError(t, err)
		assert.Equal(t, budget.StatusReserved, u.Status())
	})

	t.Run("round trip conserves the budget", func(t *testing.T) {
		f := newFixture(t)
		var wg sync.WaitGroup
		for i := range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				key := fmt.Sprintf("rt-%d", i)
				_, err := f.ledger.Reserve(ctx, reserveCmd(key, "3.33"))
				assert.NoError(t, err)
				_, err = f.ledger.Rollback(ctx, rollbackCmd(key, "3.33"))
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
		assert.Equal(t, "100.00", f.remaining(t, 1))
	})

	t.Run("rollback racing confirm leaves a consistent state", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.ledger.Reserve(ctx, reserveCmd("A", "60.00"))
		require.NoError(t, err)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := f.ledger.Confirm(ctx, ledger.ConfirmCommand{CouponUserID: "A"})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := f.ledger.Rollback(ctx, rollbackCmd("A", "60.00"))
			assert.NoError(t, err)
		}()
		wg.Wait()

		u, err := f.store.Reads().LatestUsage(ctx, "A")
		require.NoError(t, err)
		assert.Equal(t, budget.StatusRolledBack, u.Status())
		assert.Equal(t, "100.00", f.remaining(t, 1))
	})

	t.Run("invalid command", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.ledger.Rollback(ctx, ledger.RollbackCommand{BudgetID: 1})
		assert.Equal(t, budget.CodeInvalidArgument, ledger.Code(err))
	})
}

func TestLockTimeoutIsServiceUnavailable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, memstore.WithLockTimeout(20*time.Millisecond))

	held := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = f.store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			_, err := tx.Budgets().LockByID(ctx, 1)
			close(held)
			<-release
			return err
		})
	}()
	<-held
	defer close(release)

	_, err := f.ledger.Reserve(ctx, reserveCmd("A", "1.00"))
	require.Error(t, err)
	assert.Equal(t, budget.CodeServiceUnavailable, ledger.Code(err))
	assert.True(t, ledger.Code(err).IsRetryable())
}

func TestTxTimeoutIsServiceUnavailable(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(testNow)
	store := memstore.New(clk)
	store.PutBudget(1, budget.MustAmount("100.00"))
	l := ledger.New(store, clk, ledger.Config{TxTimeout: 20 * time.Millisecond})

	held := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			_, err := tx.Budgets().LockByID(ctx, 1)
			close(held)
			<-release
			return err
		})
	}()
	<-held

	_, err := l.Reserve(ctx, reserveCmd("A", "1.00"))
	close(release)
	assert.Equal(t, budget.CodeServiceUnavailable, ledger.Code(err))

	b, err := store.Reads().BudgetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "100.00", b.Remaining().String())
}

type failingUoW struct {
	err error
}

func (u failingUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.err
}

func (u failingUoW) Reads() shared.LedgerReads { return nil }

func TestInfrastructureFailureIsInternal(t *testing.T) {
	l := ledger.New(failingUoW{err: infra.NewRepoErr(infra.KindDBFailure, "boom")}, clock.NewMockClock(testNow), ledger.Config{})
	_, err := l.Reserve(context.Background(), reserveCmd("A", "1.00"))
	require.Error(t, err)
	assert.Equal(t, budget.CodeInternal, ledger.Code(err))
	assert.True(t, errs.Is(err, errs.ErrInternal))
}

func TestCode(t *testing.T) {
	assert.Equal(t, budget.CodeNone, ledger.Code(nil))
	assert.Equal(t, budget.CodeInvalidArgument, ledger.Code(errs.Mark(assert.AnError, errs.ErrInvalidArgument)))
	assert.Equal(t, budget.CodeServiceUnavailable, ledger.Code(errs.Mark(assert.AnError, errs.ErrServiceUnavailable)))
	assert.Equal(t, budget.CodeInternal, ledger.Code(assert.AnError))
}
