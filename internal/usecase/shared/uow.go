package shared

import (
	"context"

	"coupon-budget-service/internal/domain/budget"
)

type UnitOfWork interface {
	// Within runs fn in one atomic unit. Locks taken inside are held until it returns.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Reads gives non-locking access to committed state outside a transaction
	Reads() LedgerReads
}

type Tx interface {
	Budgets() BudgetRepository
	Usages() UsageRepository
	Outbox() OutboxRepository
}

// Every repository reports a missing row as infra.KindNotFound.
type BudgetRepository interface {
	// LockByID loads the budget and holds its exclusive lock for the rest of the transaction
	LockByID(ctx context.Context, id int64) (*budget.Budget, error)
	UpdateRemaining(ctx context.Context, b *budget.Budget) error
}

type UsageRepository interface {
	// FindLatestForUpdate returns the active row for key if one exists, otherwise the newest one
	FindLatestForUpdate(ctx context.Context, key budget.CouponUserID) (*budget.Usage, error)
	FindLatestActiveByOwner(ctx context.Context, budgetID, couponID, userID int64) (*budget.Usage, error)
	Insert(ctx context.Context, u *budget.Usage) error
	UpdateStatus(ctx context.Context, u *budget.Usage) error
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, msg OutboxMessage) error
}

type LedgerReads interface {
	BudgetByID(ctx context.Context, id int64) (*budget.Budget, error)
	LatestUsage(ctx context.Context, key budget.CouponUserID) (*budget.Usage, error)
	ListBudgets(ctx context.Context, afterID int64, limit int) ([]*budget.Budget, error)
}

// OutboxRelayStore hands pending messages to fn one at a time.
// A nil return marks the message published, an error records a failed attempt.
type OutboxRelayStore interface {
	ProcessPending(ctx context.Context, limit int, fn func(ctx context.Context, msg OutboxMessage) error) (int, error)
}
