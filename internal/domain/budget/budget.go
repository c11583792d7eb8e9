package budget

import (
	"time"

	"coupon-budget-service/internal/pkg/errs"
)

var (
	ErrInvalidBudgetID    = errs.New("budget id must be positive")
	ErrInsufficientBudget = errs.New("insufficient budget")
)

// Budget is a monetary pool. remaining never drops below zero.
type Budget struct {
	id        int64
	remaining Amount
	createdAt time.Time
	updatedAt time.Time
}

func NewBudget(id int64, remaining Amount, now time.Time) (*Budget, error) {
	if id <= 0 {
		return nil, ErrInvalidBudgetID
	}
	return &Budget{
		id:        id,
		remaining: remaining,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructBudget(id int64, remaining Amount, createdAt, updatedAt time.Time) *Budget {
	return &Budget{
		id:        id,
		remaining: remaining,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (b *Budget) ID() int64            { return b.id }
func (b *Budget) Remaining() Amount    { return b.remaining }
func (b *Budget) CreatedAt() time.Time { return b.createdAt }
func (b *Budget) UpdatedAt() time.Time { return b.updatedAt }

func (b *Budget) CanCover(amount Amount) bool {
	return !b.remaining.LessThan(amount)
}

func (b *Budget) Debit(amount Amount, now time.Time) error {
	next, err := b.remaining.Sub(amount)
	if err != nil {
		return ErrInsufficientBudget
	}
	b.remaining = next
	b.updatedAt = now
	return nil
}

func (b *Budget) Credit(amount Amount, now time.Time) {
	b.remaining = b.remaining.Add(amount)
	b.updatedAt = now
}

// Balance returns the point-in-time view used for cache snapshots.
func (b *Budget) Balance() Balance {
	return Balance{BudgetID: b.id, Remaining: b.remaining, AsOf: b.updatedAt}
}

func (b *Budget) Clone() *Budget {
	c := *b
	return &c
}

// Balance is the remaining amount of a budget as of its last mutation.
type Balance struct {
	BudgetID  int64
	Remaining Amount
	AsOf      time.Time
}
