package converter

import (
	"coupon-budget-service/internal/domain/budget"
	sqlc "coupon-budget-service/internal/infra/sqlc/generated"
	"coupon-budget-service/internal/pkg/errs"
	"coupon-budget-service/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

func BudgetToDomain(row sqlc.Budgets) (*budget.Budget, error) {
	remaining, err := amountFromNumeric(row.Remaining)
	if err != nil {
		return nil, errs.Wrapf(err, "budget %d remaining", row.ID)
	}
	return budget.ReconstructBudget(
		row.ID,
		remaining,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

func BudgetToRemainingParams(b *budget.Budget) sqlc.UpdateBudgetRemainingParams {
	return sqlc.UpdateBudgetRemainingParams{
		ID:        b.ID(),
		Remaining: pgconv.NumericFromDecimal(b.Remaining().Decimal()),
		UpdatedAt: pgconv.TimeToPgtype(b.UpdatedAt()),
	}
}

func UsageToDomain(row sqlc.CouponBudgetUsages) (*budget.Usage, error) {
	amount, err := amountFromNumeric(row.Amount)
	if err != nil {
		return nil, errs.Wrapf(err, "usage %s amount", row.ID)
	}
	status, err := budget.ParseStatus(row.Status)
	if err != nil {
		return nil, errs.Wrapf(err, "usage %s status %q", row.ID, row.Status)
	}
	reversedFrom := budget.StatusNone
	if row.ReversedFrom.Valid {
		if reversedFrom, err = budget.ParseStatus(row.ReversedFrom.String); err != nil {
			return nil, errs.Wrapf(err, "usage %s reversed_from", row.ID)
		}
	}

	return budget.ReconstructUsage(
		row.ID,
		budget.CouponUserID(row.CouponUserID),
		row.BudgetID,
		row.CouponID,
		row.UserID,
		amount,
		status,
		reversedFrom,
		pgconv.TimeFromPgtype(row.UsageTime),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

func UsageToInsertParams(u *budget.Usage) sqlc.InsertUsageParams {
	return sqlc.InsertUsageParams{
		ID:           u.ID(),
		CouponUserID: u.CouponUserID().String(),
		BudgetID:     u.BudgetID(),
		CouponID:     u.CouponID(),
		UserID:       u.UserID(),
		Amount:       pgconv.NumericFromDecimal(u.Amount().Decimal()),
		Status:       u.Status().String(),
		ReversedFrom: reversedFromToPgtype(u.ReversedFrom()),
		UsageTime:    pgconv.TimeToPgtype(u.UsageTime()),
		CreatedAt:    pgconv.TimeToPgtype(u.CreatedAt()),
		UpdatedAt:    pgconv.TimeToPgtype(u.UpdatedAt()),
	}
}

func UsageToStatusParams(u *budget.Usage) sqlc.UpdateUsageStatusParams {
	return sqlc.UpdateUsageStatusParams{
		ID:           u.ID(),
		Status:       u.Status().String(),
		ReversedFrom: reversedFromToPgtype(u.ReversedFrom()),
		UsageTime:    pgconv.TimeToPgtype(u.UsageTime()),
		UpdatedAt:    pgconv.TimeToPgtype(u.UpdatedAt()),
	}
}

func reversedFromToPgtype(s budget.Status) pgtype.Text {
	if s == budget.StatusNone {
		return pgtype.Text{}
	}
	return pgconv.StringToPgtype(s.String())
}

func amountFromNumeric(n pgtype.Numeric) (budget.Amount, error) {
	d, err := pgconv.DecimalFromNumeric(n)
	if err != nil {
		return budget.Amount{}, err
	}
	return budget.NewAmount(d)
}
