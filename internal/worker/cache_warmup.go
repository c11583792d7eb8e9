package worker

import (
	"context"
	"log/slog"
	"time"

	"coupon-budget-service/internal/pkg/errs"
	"coupon-budget-service/internal/usecase/shared"
)

// CacheWarmup copies every budget's remaining amount into the cache.
type CacheWarmup struct {
	reads    shared.LedgerReads
	cache    shared.BudgetCache
	pageSize int
}

func NewCacheWarmup(reads shared.LedgerReads, cache shared.BudgetCache, pageSize int) *CacheWarmup {
	if pageSize <= 0 {
		pageSize = 500
	}
	return &CacheWarmup{reads: reads, cache: cache, pageSize: pageSize}
}

func (w *CacheWarmup) Run(ctx context.Context) (int, error) {
	start := time.Now()
	var afterID int64
	total := 0
	for {
		page, err := w.reads.ListBudgets(ctx, afterID, w.pageSize)
		if err != nil {
			return total, errs.Wrapf(err, "list budgets after %d", afterID)
		}
		for _, b := range page {
			w.cache.Put(ctx, shared.SnapshotFromBalance(b.Balance()))
		}
		total += len(page)
		if len(page) < w.pageSize {
			break
		}
		afterID = page[len(page)-1].ID()
	}

	slog.Info("Budget cache warmed", "budgets", total, "duration", time.Since(start))
	return total, nil
}
