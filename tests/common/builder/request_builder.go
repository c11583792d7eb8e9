//go:build unit || e2e

package builder

import (
	reqdto "coupon-budget-service/internal/handler/dto/request"
	"coupon-budget-service/internal/usecase/commands"

	"github.com/shopspring/decimal"
)

type ReserveRequestBuilder struct {
	RequestID    string
	CouponUserID string
	UserID       int64
	CouponID     int64
	BudgetID     int64
	Amount       string
}

func NewReserveRequestBuilder() *ReserveRequestBuilder {
	return &ReserveRequestBuilder{
		RequestID:    "req-1",
		CouponUserID: "coupon-user-1",
		UserID:       100,
		CouponID:     10,
		BudgetID:     1,
		Amount:       "60.00",
	}
}

func (b *ReserveRequestBuilder) With(mutate func(*ReserveRequestBuilder)) *ReserveRequestBuilder {
	mutate(b)
	return b
}

func (b *ReserveRequestBuilder) BuildDTO() reqdto.ReserveRequest {
	return reqdto.ReserveRequest{
		RequestID:    b.RequestID,
		CouponUserID: b.CouponUserID,
		UserID:       b.UserID,
		CouponID:     b.CouponID,
		BudgetID:     b.BudgetID,
		Amount:       decimal.RequireFromString(b.Amount),
	}
}

func (b *ReserveRequestBuilder) BuildCommand() commands.ReserveRequest {
	dto := b.BuildDTO()
	return dto.ToCommand("")
}

type ConfirmRequestBuilder struct {
	RequestID     string
	UserID        int64
	CouponID      int64
	OrderID       int64
	BudgetID      int64
	ReservationID string
	Amount        string
}

func NewConfirmRequestBuilder() *ConfirmRequestBuilder {
	return &ConfirmRequestBuilder{
		RequestID:     "req-2",
		UserID:        100,
		CouponID:      10,
		OrderID:       5000,
		BudgetID:      1,
		ReservationID: "coupon-user-1",
		Amount:        "60.00",
	}
}

func (b *ConfirmRequestBuilder) With(mutate func(*ConfirmRequestBuilder)) *ConfirmRequestBuilder {
	mutate(b)
	return b
}

func (b *ConfirmRequestBuilder) BuildDTO() reqdto.ConfirmRequest {
	return reqdto.ConfirmRequest{
		RequestID:     b.RequestID,
		UserID:        b.UserID,
		CouponID:      b.CouponID,
		OrderID:       b.OrderID,
		BudgetID:      b.BudgetID,
		ReservationID: b.ReservationID,
		Amount:        decimal.RequireFromString(b.Amount),
	}
}

func (b *ConfirmRequestBuilder) BuildCommand() commands.ConfirmRequest {
	dto := b.BuildDTO()
	return dto.ToCommand("")
}
