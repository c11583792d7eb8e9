package ledger

import (
	"encoding/json"
	"fmt"
	"time"

	"coupon-budget-service/internal/domain/budget"

	"github.com/shopspring/decimal"
)

// UsageEvent is published once per transition to CONFIRMED.
// Consumers dedupe on TransactionID, which is the usage row id.
type UsageEvent struct {
	TransactionID  string          `json:"transactionId"`
	BudgetID       int64           `json:"budgetId"`
	CouponID       int64           `json:"couponId"`
	UserID         int64           `json:"userId"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	UsageTime      time.Time       `json:"usageTime"`
}

func NewUsageEvent(u *budget.Usage) UsageEvent {
	return UsageEvent{
		TransactionID:  u.ID().String(),
		BudgetID:       u.BudgetID(),
		CouponID:       u.CouponID(),
		UserID:         u.UserID(),
		DiscountAmount: u.Amount().Decimal(),
		UsageTime:      u.UsageTime(),
	}
}

// RollbackEvent asks for a reservation to be compensated.
// CouponUserID is optional; without it the latest active usage of (budget, coupon, user) is reversed.
type RollbackEvent struct {
	BudgetID       int64           `json:"budgetId"`
	CouponID       int64           `json:"couponId"`
	UserID         int64           `json:"userId"`
	CouponUserID   string          `json:"couponUserId,omitempty"`
	RollbackAmount decimal.Decimal `json:"rollbackAmount"`
	Status         string          `json:"status,omitempty"`
}

func DecodeRollbackEvent(data []byte) (RollbackEvent, error) {
	var ev RollbackEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return RollbackEvent{}, fmt.Errorf("decode rollback event: %w", err)
	}
	return ev, nil
}

// Command validates the event and turns it into a ledger command.
func (e RollbackEvent) Command() (RollbackCommand, error) {
	amount, err := budget.NewAmount(e.RollbackAmount)
	if err != nil {
		return RollbackCommand{}, invalidArgument(err)
	}
	expected := budget.StatusNone
	if e.Status != "" {
		if expected, err = budget.ParseStatus(e.Status); err != nil {
			return RollbackCommand{}, invalidArgument(err)
		}
	}
	cmd := RollbackCommand{
		BudgetID:       e.BudgetID,
		CouponID:       e.CouponID,
		UserID:         e.UserID,
		Amount:         amount,
		ExpectedStatus: expected,
	}
	if e.CouponUserID != "" {
		if cmd.CouponUserID, err = budget.NewCouponUserID(e.CouponUserID); err != nil {
			return RollbackCommand{}, invalidArgument(err)
		}
	}
	if err := cmd.validate(); err != nil {
		return RollbackCommand{}, err
	}
	return cmd, nil
}
