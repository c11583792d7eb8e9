package budget

import (
	"strings"
	"time"

	"coupon-budget-service/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrEmptyCouponUserID = errs.New("couponUserId is required")
	ErrInvalidOwner      = errs.New("couponId and userId must be positive")
	ErrInvalidTransition = errs.New("invalid usage status transition")
)

// CouponUserID identifies one logical redemption and is the idempotency key of a reservation.
type CouponUserID string

func NewCouponUserID(s string) (CouponUserID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyCouponUserID
	}
	return CouponUserID(s), nil
}

func (k CouponUserID) String() string {
	return string(k)
}

// Usage records one reservation against a budget.
type Usage struct {
	id           uuid.UUID
	couponUserID CouponUserID
	budgetID     int64
	couponID     int64
	userID       int64
	amount       Amount
	status       Status
	reversedFrom Status
	usageTime    time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

func NewReservation(couponUserID CouponUserID, budgetID, couponID, userID int64, amount Amount, now time.Time) (*Usage, error) {
	if couponUserID == "" {
		return nil, ErrEmptyCouponUserID
	}
	if budgetID <= 0 {
		return nil, ErrInvalidBudgetID
	}
	if couponID <= 0 || userID <= 0 {
		return nil, ErrInvalidOwner
	}
	if !amount.IsPositive() {
		return nil, ErrAmountNotPositive
	}

	return &Usage{
		id:           uuid.New(),
		couponUserID: couponUserID,
		budgetID:     budgetID,
		couponID:     couponID,
		userID:       userID,
		amount:       amount,
		status:       StatusReserved,
		reversedFrom: StatusNone,
		usageTime:    now,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructUsage(
	id uuid.UUID,
	couponUserID CouponUserID,
	budgetID, couponID, userID int64,
	amount Amount,
	status, reversedFrom Status,
	usageTime, createdAt, updatedAt time.Time,
) *Usage {
	if reversedFrom == "" {
		reversedFrom = StatusNone
	}
	return &Usage{
		id:           id,
		couponUserID: couponUserID,
		budgetID:     budgetID,
		couponID:     couponID,
		userID:       userID,
		amount:       amount,
		status:       status,
		reversedFrom: reversedFrom,
		usageTime:    usageTime,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u *Usage) ID() uuid.UUID              { return u.id }
func (u *Usage) CouponUserID() CouponUserID { return u.couponUserID }
func (u *Usage) BudgetID() int64            { return u.budgetID }
func (u *Usage) CouponID() int64            { return u.couponID }
func (u *Usage) UserID() int64              { return u.userID }
func (u *Usage) Amount() Amount             { return u.amount }
func (u *Usage) Status() Status             { return u.status }
func (u *Usage) ReversedFrom() Status       { return u.reversedFrom }
func (u *Usage) UsageTime() time.Time       { return u.usageTime }
func (u *Usage) CreatedAt() time.Time       { return u.createdAt }
func (u *Usage) UpdatedAt() time.Time       { return u.updatedAt }
func (u *Usage) IsActive() bool             { return u.status.IsActive() }

// Confirm settles a reservation. usageTime becomes the confirmation time.
func (u *Usage) Confirm(now time.Time) error {
	if err := u.transition(StatusConfirmed, now); err != nil {
		return err
	}
	u.usageTime = now
	return nil
}

// RollBack releases the reservation and remembers which state it was reversed from.
func (u *Usage) RollBack(now time.Time) error {
	from := u.status
	if err := u.transition(StatusRolledBack, now); err != nil {
		return err
	}
	u.reversedFrom = from
	return nil
}

func (u *Usage) transition(next Status, now time.Time) error {
	if !u.status.CanTransitionTo(next) {
		return errs.Wrapf(ErrInvalidTransition, "%s -> %s", u.status, next)
	}
	u.status = next
	u.updatedAt = now
	return nil
}

func (u *Usage) Clone() *Usage {
	c := *u
	return &c
}
