package queries

import (
	"context"
	"time"

	"coupon-budget-service/internal/infra"
	"coupon-budget-service/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrBudgetNotFound = errs.ErrBudgetNotFound
	ErrUsageNotFound  = errs.ErrUsageNotFound
)

type BudgetView struct {
	ID        int64           `json:"id"`
	Remaining decimal.Decimal `json:"remaining"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type UsageView struct {
	ID           uuid.UUID       `json:"id"`
	CouponUserID string          `json:"coupon_user_id"`
	BudgetID     int64           `json:"budget_id"`
	CouponID     int64           `json:"coupon_id"`
	UserID       int64           `json:"user_id"`
	Amount       decimal.Decimal `json:"amount"`
	Status       string          `json:"status"`
	ReversedFrom *string         `json:"reversed_from,omitempty"`
	UsageTime    time.Time       `json:"usage_time"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type BudgetReadStore interface {
	FindBudget(ctx context.Context, id int64) (*BudgetView, error)
	FindLatestUsage(ctx context.Context, couponUserID string) (*UsageView, error)
	FindUsagesFirstPage(ctx context.Context, budgetID int64, limit int32) ([]*UsageView, error)
	FindUsagesKeyset(ctx context.Context, budgetID int64, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*UsageView, error)
}

type BudgetQueries interface {
	GetBudget(ctx context.Context, id int64) (*BudgetView, error)
	GetUsage(ctx context.Context, couponUserID string) (*UsageView, error)
	ListUsages(ctx context.Context, budgetID int64, cursor *Cursor, limit int) ([]*UsageView, *Cursor, error)
}

type budgetQueriesImpl struct {
	repo BudgetReadStore
}

func NewBudgetQueries(repo BudgetReadStore) BudgetQueries {
	return &budgetQueriesImpl{repo: repo}
}

func (q *budgetQueriesImpl) GetBudget(ctx context.Context, id int64) (*BudgetView, error) {
	b, err := q.repo.FindBudget(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, err
	}
	return b, nil
}

func (q *budgetQueriesImpl) GetUsage(ctx context.Context, couponUserID string) (*UsageView, error) {
	u, err := q.repo.FindLatestUsage(ctx, couponUserID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUsageNotFound
		}
		return nil, err
	}
	return u, nil
}

// ListUsages pages newest first.
func (q *budgetQueriesImpl) ListUsages(ctx context.Context, budgetID int64, cursor *Cursor, limit int) ([]*UsageView, *Cursor, error) {
	limit = ValidateLimit(limit)
	var rows []*UsageView
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.FindUsagesFirstPage(ctx, budgetID, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, errs.Mark(derr, ErrInvalidCursor)
		}
		rows, err = q.repo.FindUsagesKeyset(ctx, budgetID, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}
	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}
