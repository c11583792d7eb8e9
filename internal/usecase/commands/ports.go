package commands

import (
	"time"

	"coupon-budget-service/internal/domain/auth"
	"coupon-budget-service/internal/usecase/shared"
)

// SnapshotSink accepts cache snapshots for write-back off the request path.
type SnapshotSink interface {
	Submit(snap shared.BudgetSnapshot)
}

type CallerRegistry interface {
	Find(serviceID string) (auth.Caller, bool)
}

type TokenIssuer interface {
	GenerateToken(serviceID string, permissions []string) (string, error)
	TokenDuration() time.Duration
}
