package request

import (
	"coupon-budget-service/internal/usecase/commands"

	"github.com/shopspring/decimal"
)

// ReserveRequest carries amounts as decimal strings ("60.00"); JSON numbers are accepted too.
type ReserveRequest struct {
	RequestID    string          `json:"requestId"`
	CouponUserID string          `json:"couponUserId" binding:"max=128"`
	UserID       int64           `json:"userId"`
	CouponID     int64           `json:"couponId"`
	BudgetID     int64           `json:"budgetId"`
	Amount       decimal.Decimal `json:"amount"`
}

func (r *ReserveRequest) ToCommand(fallbackRequestID string) commands.ReserveRequest {
	return commands.ReserveRequest{
		RequestID:    firstNonEmpty(r.RequestID, fallbackRequestID),
		CouponUserID: r.CouponUserID,
		UserID:       r.UserID,
		CouponID:     r.CouponID,
		BudgetID:     r.BudgetID,
		Amount:       r.Amount,
	}
}

type ConfirmRequest struct {
	RequestID     string          `json:"requestId"`
	UserID        int64           `json:"userId"`
	CouponID      int64           `json:"couponId"`
	OrderID       int64           `json:"orderId"`
	BudgetID      int64           `json:"budgetId"`
	ReservationID string          `json:"reservationId" binding:"max=128"`
	Amount        decimal.Decimal `json:"amount"`
}

func (r *ConfirmRequest) ToCommand(fallbackRequestID string) commands.ConfirmRequest {
	return commands.ConfirmRequest{
		RequestID:     firstNonEmpty(r.RequestID, fallbackRequestID),
		UserID:        r.UserID,
		CouponID:      r.CouponID,
		OrderID:       r.OrderID,
		BudgetID:      r.BudgetID,
		ReservationID: r.ReservationID,
		Amount:        r.Amount,
	}
}

type ListUsagesQuery struct {
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=200"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
