//go:build unit || e2e

package builder

import (
	"time"

	"coupon-budget-service/internal/domain/budget"
	sqlc "coupon-budget-service/internal/infra/sqlc/generated"
	"coupon-budget-service/internal/pkg/pgconv"

	"github.com/shopspring/decimal"
)

type BudgetBuilder struct {
	ID        int64
	Remaining string
	Now       time.Time
}

func NewBudgetBuilder() *BudgetBuilder {
	return &BudgetBuilder{
		ID:        1,
		Remaining: "100.00",
		Now:       time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *BudgetBuilder) With(mutate func(*BudgetBuilder)) *BudgetBuilder {
	mutate(b)
	return b
}

func (b *BudgetBuilder) BuildDomain() *budget.Budget {
	return budget.ReconstructBudget(b.ID, budget.MustAmount(b.Remaining), b.Now, b.Now)
}

func (b *BudgetBuilder) BuildInfra() sqlc.Budgets {
	return sqlc.Budgets{
		ID:        b.ID,
		Remaining: pgconv.NumericFromDecimal(decimal.RequireFromString(b.Remaining)),
		CreatedAt: pgconv.TimeToPgtype(b.Now),
		UpdatedAt: pgconv.TimeToPgtype(b.Now),
	}
}

func (b *BudgetBuilder) WithID(id int64) *BudgetBuilder {
	b.ID = id
	return b
}

func (b *BudgetBuilder) WithRemaining(remaining string) *BudgetBuilder {
	b.Remaining = remaining
	return b
}
