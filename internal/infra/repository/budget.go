package repository

import (
	"context"
	"fmt"

	"coupon-budget-service/internal/domain/budget"
	"coupon-budget-service/internal/infra"
	"coupon-budget-service/internal/infra/repository/converter"
	sqlc "coupon-budget-service/internal/infra/sqlc/generated"
)

type BudgetWriteQueries interface {
	GetBudgetForUpdate(ctx context.Context, db sqlc.DBTX, id int64) (sqlc.Budgets, error)
	UpdateBudgetRemaining(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateBudgetRemainingParams) (int64, error)
}

type BudgetRepository struct {
	queries BudgetWriteQueries
	db      sqlc.DBTX
}

func NewBudgetRepository(queries BudgetWriteQueries, db sqlc.DBTX) *BudgetRepository {
	return &BudgetRepository{
		queries: queries,
		db:      db,
	}
}

func (r *BudgetRepository) LockByID(ctx context.Context, id int64) (*budget.Budget, error) {
	row, err := r.queries.GetBudgetForUpdate(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr(fmt.Sprintf("failed to lock budget %d", id), err)
	}
	b, err := converter.BudgetToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert budget", err)
	}
	return b, nil
}

func (r *BudgetRepository) UpdateRemaining(ctx context.Context, b *budget.Budget) error {
	n, err := r.queries.UpdateBudgetRemaining(ctx, r.db, converter.BudgetToRemainingParams(b))
	if err != nil {
		return infra.WrapRepoErr(fmt.Sprintf("failed to update budget %d", b.ID()), err)
	}
	if n == 0 {
		return infra.NewRepoErr(infra.KindNotFound, fmt.Sprintf("budget %d", b.ID()))
	}
	return nil
}
