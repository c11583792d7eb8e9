package readstore

import (
	"context"
	"fmt"
	"time"

	"coupon-budget-service/internal/domain/budget"
	"coupon-budget-service/internal/infra"
	"coupon-budget-service/internal/infra/repository/converter"
	sqlc "coupon-budget-service/internal/infra/sqlc/generated"
	"coupon-budget-service/internal/pkg/pgconv"
	"coupon-budget-service/internal/usecase/queries"

	"github.com/google/uuid"
)

type BudgetViewQueries interface {
	GetBudget(ctx context.Context, db sqlc.DBTX, id int64) (sqlc.Budgets, error)
	ListBudgetsAfter(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBudgetsAfterParams) ([]sqlc.Budgets, error)
	GetLatestUsageByCouponUserID(ctx context.Context, db sqlc.DBTX, couponUserID string) (sqlc.CouponBudgetUsages, error)
	ListUsagesByBudgetFirstPage(ctx context.Context, db sqlc.DBTX, arg sqlc.ListUsagesByBudgetFirstPageParams) ([]sqlc.CouponBudgetUsages, error)
	ListUsagesByBudgetKeyset(ctx context.Context, db sqlc.DBTX, arg sqlc.ListUsagesByBudgetKeysetParams) ([]sqlc.CouponBudgetUsages, error)
}

// BudgetReadStore serves committed state without taking locks.
// It backs both the HTTP read endpoints and the ledger's pre-lock lookups.
type BudgetReadStore struct {
	queries BudgetViewQueries
	db      sqlc.DBTX
}

func NewBudgetReadStore(queries BudgetViewQueries, db sqlc.DBTX) *BudgetReadStore {
	return &BudgetReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *BudgetReadStore) FindBudget(ctx context.Context, id int64) (*queries.BudgetView, error) {
	row, err := r.queries.GetBudget(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr(fmt.Sprintf("failed to get budget %d", id), err)
	}
	remaining, err := pgconv.DecimalFromNumeric(row.Remaining)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert budget", err)
	}
	return &queries.BudgetView{
		ID:        row.ID,
		Remaining: remaining,
		CreatedAt: pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt: pgconv.TimeFromPgtype(row.UpdatedAt),
	}, nil
}

func (r *BudgetReadStore) FindLatestUsage(ctx context.Context, couponUserID string) (*queries.UsageView, error) {
	row, err := r.queries.GetLatestUsageByCouponUserID(ctx, r.db, couponUserID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get usage "+couponUserID, err)
	}
	return toUsageView(row)
}

func (r *BudgetReadStore) FindUsagesFirstPage(ctx context.Context, budgetID int64, limit int32) ([]*queries.UsageView, error) {
	rows, err := r.queries.ListUsagesByBudgetFirstPage(ctx, r.db, sqlc.ListUsagesByBudgetFirstPageParams{
		BudgetID: budgetID,
		Limit:    limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list usages first page", err)
	}
	return toUsageViews(rows)
}

func (r *BudgetReadStore) FindUsagesKeyset(ctx context.Context, budgetID int64, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.UsageView, error) {
	rows, err := r.queries.ListUsagesByBudgetKeyset(ctx, r.db, sqlc.ListUsagesByBudgetKeysetParams{
		BudgetID:       budgetID,
		AfterCreatedAt: pgconv.TimeToPgtype(lastCreatedAt),
		AfterID:        lastID,
		PageLimit:      limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list usages keyset", err)
	}
	return toUsageViews(rows)
}

func (r *BudgetReadStore) BudgetByID(ctx context.Context, id int64) (*budget.Budget, error) {
	row, err := r.queries.GetBudget(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr(fmt.Sprintf("failed to get budget %d", id), err)
	}
	b, err := converter.BudgetToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert budget", err)
	}
	return b, nil
}

func (r *BudgetReadStore) LatestUsage(ctx context.Context, key budget.CouponUserID) (*budget.Usage, error) {
	row, err := r.queries.GetLatestUsageByCouponUserID(ctx, r.db, key.String())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get usage "+key.String(), err)
	}
	u, err := converter.UsageToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert usage", err)
	}
	return u, nil
}

func (r *BudgetReadStore) ListBudgets(ctx context.Context, afterID int64, limit int) ([]*budget.Budget, error) {
	rows, err := r.queries.ListBudgetsAfter(ctx, r.db, sqlc.ListBudgetsAfterParams{
		ID:    afterID,
		Limit: pgconv.IntToInt32(limit),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list budgets", err)
	}
	out := make([]*budget.Budget, 0, len(rows))
	for _, row := range rows {
		b, err := converter.BudgetToDomain(row)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to convert budget", err)
		}
		out = append(out, b)
	}
	return out, nil
}

func toUsageViews(rows []sqlc.CouponBudgetUsages) ([]*queries.UsageView, error) {
	out := make([]*queries.UsageView, 0, len(rows))
	for _, row := range rows {
		v, err := toUsageView(row)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func toUsageView(row sqlc.CouponBudgetUsages) (*queries.UsageView, error) {
	amount, err := pgconv.DecimalFromNumeric(row.Amount)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert usage amount", err)
	}
	return &queries.UsageView{
		ID:           row.ID,
		CouponUserID: row.CouponUserID,
		BudgetID:     row.BudgetID,
		CouponID:     row.CouponID,
		UserID:       row.UserID,
		Amount:       amount,
		Status:       row.Status,
		ReversedFrom: pgconv.StringPtrFromPgtype(row.ReversedFrom),
		UsageTime:    pgconv.TimeFromPgtype(row.UsageTime),
		CreatedAt:    pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:    pgconv.TimeFromPgtype(row.UpdatedAt),
	}, nil
}
