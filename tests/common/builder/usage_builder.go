//go:build unit || e2e

package builder

import (
	"time"

	"coupon-budget-service/internal/domain/budget"
	sqlc "coupon-budget-service/internal/infra/sqlc/generated"
	"coupon-budget-service/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type UsageBuilder struct {
	ID           uuid.UUID
	CouponUserID string
	BudgetID     int64
	CouponID     int64
	UserID       int64
	Amount       string
	Status       budget.Status
	ReversedFrom budget.Status
	Now          time.Time
}

func NewUsageBuilder() *UsageBuilder {
	return &UsageBuilder{
		ID:           uuid.New(),
		CouponUserID: "coupon-user-1",
		BudgetID:     1,
		CouponID:     10,
		UserID:       100,
		Amount:       "60.00",
		Status:       budget.StatusReserved,
		ReversedFrom: budget.StatusNone,
		Now:          time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (u *UsageBuilder) With(mutate func(*UsageBuilder)) *UsageBuilder {
	mutate(u)
	return u
}

// Build methods
func (u *UsageBuilder) BuildDomain() *budget.Usage {
	return budget.ReconstructUsage(
		u.ID,
		budget.CouponUserID(u.CouponUserID),
		u.BudgetID,
		u.CouponID,
		u.UserID,
		budget.MustAmount(u.Amount),
		u.Status,
		u.ReversedFrom,
		u.Now,
		u.Now,
		u.Now,
	)
}

func (u *UsageBuilder) BuildInfra() sqlc.CouponBudgetUsages {
	reversedFrom := pgtype.Text{}
	if u.ReversedFrom != budget.StatusNone {
		reversedFrom = pgconv.StringToPgtype(u.ReversedFrom.String())
	}
	return sqlc.CouponBudgetUsages{
		ID:           u.ID,
		CouponUserID: u.CouponUserID,
		BudgetID:     u.BudgetID,
		CouponID:     u.CouponID,
		UserID:       u.UserID,
		Amount:       pgconv.NumericFromDecimal(decimal.RequireFromString(u.Amount)),
		Status:       u.Status.String(),
		ReversedFrom: reversedFrom,
		UsageTime:    pgconv.TimeToPgtype(u.Now),
		CreatedAt:    pgconv.TimeToPgtype(u.Now),
		UpdatedAt:    pgconv.TimeToPgtype(u.Now),
	}
}

// Fluent builder methods
func (u *UsageBuilder) WithCouponUserID(key string) *UsageBuilder {
	u.CouponUserID = key
	return u
}

func (u *UsageBuilder) WithBudgetID(id int64) *UsageBuilder {
	u.BudgetID = id
	return u
}

func (u *UsageBuilder) WithAmount(amount string) *UsageBuilder {
	u.Amount = amount
	return u
}

func (u *UsageBuilder) WithStatus(status budget.Status) *UsageBuilder {
	u.Status = status
	return u
}

func (u *UsageBuilder) AsRolledBackFrom(from budget.Status) *UsageBuilder {
	u.Status = budget.StatusRolledBack
	u.ReversedFrom = from
	return u
}
