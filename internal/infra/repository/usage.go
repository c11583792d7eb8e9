package repository

import (
	"context"

	"coupon-budget-service/internal/domain/budget"
	"coupon-budget-service/internal/infra"
	"coupon-budget-service/internal/infra/repository/converter"
	sqlc "coupon-budget-service/internal/infra/sqlc/generated"
)

type UsageWriteQueries interface {
	GetLatestUsageByCouponUserIDForUpdate(ctx context.Context, db sqlc.DBTX, couponUserID string) (sqlc.CouponBudgetUsages, error)
	GetLatestActiveUsageByOwnerForUpdate(ctx context.Context, db sqlc.DBTX, arg sqlc.GetLatestActiveUsageByOwnerForUpdateParams) (sqlc.CouponBudgetUsages, error)
	InsertUsage(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertUsageParams) error
	UpdateUsageStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateUsageStatusParams) (int64, error)
}

type UsageRepository struct {
	queries UsageWriteQueries
	db      sqlc.DBTX
}

func NewUsageRepository(queries UsageWriteQueries, db sqlc.DBTX) *UsageRepository {
	return &UsageRepository{
		queries: queries,
		db:      db,
	}
}

func (r *UsageRepository) FindLatestForUpdate(ctx context.Context, key budget.CouponUserID) (*budget.Usage, error) {
	row, err := r.queries.GetLatestUsageByCouponUserIDForUpdate(ctx, r.db, key.String())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock usage "+key.String(), err)
	}
	return toUsage(row)
}

func (r *UsageRepository) FindLatestActiveByOwner(ctx context.Context, budgetID, couponID, userID int64) (*budget.Usage, error) {
	row, err := r.queries.GetLatestActiveUsageByOwnerForUpdate(ctx, r.db, sqlc.GetLatestActiveUsageByOwnerForUpdateParams{
		BudgetID: budgetID,
		CouponID: couponID,
		UserID:   userID,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock usage by owner", err)
	}
	return toUsage(row)
}

func (r *UsageRepository) Insert(ctx context.Context, u *budget.Usage) error {
	if err := r.queries.InsertUsage(ctx, r.db, converter.UsageToInsertParams(u)); err != nil {
		return infra.WrapRepoErr("failed to insert usage "+u.CouponUserID().String(), err)
	}
	return nil
}

func (r *UsageRepository) UpdateStatus(ctx context.Context, u *budget.Usage) error {
	n, err := r.queries.UpdateUsageStatus(ctx, r.db, converter.UsageToStatusParams(u))
	if err != nil {
		return infra.WrapRepoErr("failed to update usage status", err)
	}
	if n == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "usage "+u.ID().String())
	}
	return nil
}

func toUsage(row sqlc.CouponBudgetUsages) (*budget.Usage, error) {
	u, err := converter.UsageToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert usage", err)
	}
	return u, nil
}
