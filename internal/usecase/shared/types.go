package shared

import (
	"context"
	"time"

	"coupon-budget-service/internal/domain/budget"

	"github.com/google/uuid"
)

type OutboxMessage struct {
	ID          uuid.UUID
	Topic       string
	AggregateID string
	Payload     []byte
	Attempts    int32
	CreatedAt   time.Time
}

// BudgetSnapshot is a cached remaining amount. Version orders snapshots of the same budget.
type BudgetSnapshot struct {
	BudgetID  int64
	Remaining budget.Amount
	Version   int64
}

func SnapshotFromBalance(b budget.Balance) BudgetSnapshot {
	return BudgetSnapshot{
		BudgetID:  b.BudgetID,
		Remaining: b.Remaining,
		Version:   b.AsOf.UnixMicro(),
	}
}

type CacheLookup struct {
	Snapshot BudgetSnapshot
	Hit      bool
	// Available is false when the backend could not be reached in time
	Available bool
}

// BudgetCache is advisory. Implementations swallow backend errors.
type BudgetCache interface {
	Get(ctx context.Context, budgetID int64) CacheLookup
	Put(ctx context.Context, snap BudgetSnapshot)
}
