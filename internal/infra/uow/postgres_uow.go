package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"coupon-budget-service/internal/domain/budget"
	"coupon-budget-service/internal/infra"
	"coupon-budget-service/internal/infra/readstore"
	"coupon-budget-service/internal/infra/repository"
	sqlc "coupon-budget-service/internal/infra/sqlc/generated"
	"coupon-budget-service/internal/pkg/config"
	"coupon-budget-service/internal/pkg/errs"
	"coupon-budget-service/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool        *pgxpool.Pool
	q           *sqlc.Queries
	maxRetries  int
	lockTimeout time.Duration
	reads       *ledgerReads
}

func NewPostgresUoW(pool *pgxpool.Pool, q *sqlc.Queries, cfg config.LedgerConfig) *PostgresUoW {
	return &PostgresUoW{
		pool:        pool,
		q:           q,
		maxRetries:  cfg.MaxRetries,
		lockTimeout: cfg.LockTimeout,
		reads:       &ledgerReads{store: readstore.NewBudgetReadStore(q, pool)},
	}
}

// ReadCommitted plus row locks: every mutation of a budget goes through SELECT ... FOR UPDATE on it
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) Reads() shared.LedgerReads {
	return u.reads
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	base := 50 * time.Millisecond

	for attempt := 0; attempt <= u.maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(infra.WrapRepoErr("begin", err), errTransactionBegin)
		}

		err = u.setLockTimeout(ctx, pgxTx)
		if err == nil {
			tx := &pgTx{dbtx: pgxTx, q: u.q}
			err = fn(ctx, tx)
		}
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(infra.WrapRepoErr("commit", err), errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, u.maxRetries) {
			if attempt == u.maxRetries && isRetryableError(err) {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return infra.WrapRepoErr("retry wait", ctx.Err())
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

// lock_timeout bounds how long a request queues behind a hot budget row
func (u *PostgresUoW) setLockTimeout(ctx context.Context, tx pgx.Tx) error {
	if u.lockTimeout <= 0 {
		return nil
	}
	ms := fmt.Sprintf("%dms", u.lockTimeout.Milliseconds())
	if _, err := tx.Exec(ctx, "SELECT set_config('lock_timeout', $1, true)", ms); err != nil {
		return infra.WrapRepoErr("failed to set lock_timeout", err)
	}
	return nil
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	// Safe conversion: mask high bit to ensure positive int64
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx sqlc.DBTX
	q    *sqlc.Queries

	// Lazy-initialized repositories
	budgetRepo shared.BudgetRepository
	usageRepo  shared.UsageRepository
	outboxRepo shared.OutboxRepository
}

func (t *pgTx) Budgets() shared.BudgetRepository {
	if t.budgetRepo == nil {
		t.budgetRepo = repository.NewBudgetRepository(t.q, t.dbtx)
	}
	return t.budgetRepo
}

func (t *pgTx) Usages() shared.UsageRepository {
	if t.usageRepo == nil {
		t.usageRepo = repository.NewUsageRepository(t.q, t.dbtx)
	}
	return t.usageRepo
}

func (t *pgTx) Outbox() shared.OutboxRepository {
	if t.outboxRepo == nil {
		t.outboxRepo = repository.NewOutboxRepository(t.q, t.dbtx)
	}
	return t.outboxRepo
}

type ledgerReads struct {
	store *readstore.BudgetReadStore
}

func (r *ledgerReads) BudgetByID(ctx context.Context, id int64) (*budget.Budget, error) {
	return r.store.BudgetByID(ctx, id)
}

func (r *ledgerReads) LatestUsage(ctx context.Context, key budget.CouponUserID) (*budget.Usage, error) {
	return r.store.LatestUsage(ctx, key)
}

func (r *ledgerReads) ListBudgets(ctx context.Context, afterID int64, limit int) ([]*budget.Budget, error) {
	return r.store.ListBudgets(ctx, afterID, limit)
}
