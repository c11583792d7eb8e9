package commands

import (
	"context"
	"fmt"
	"log/slog"

	"coupon-budget-service/internal/domain/budget"
	"coupon-budget-service/internal/usecase/ledger"

	"github.com/shopspring/decimal"
)

type ConfirmRequest struct {
	RequestID string
	UserID    int64
	CouponID  int64
	OrderID   int64
	BudgetID  int64
	// ReservationID is the couponUserId the reservation was made with
	ReservationID string
	Amount        decimal.Decimal
}

type ConfirmResult struct {
	Success   bool
	ErrorCode budget.ErrorCode
	Message   string
}

type ConfirmationService interface {
	Confirm(ctx context.Context, req ConfirmRequest) ConfirmResult
}

type confirmationService struct {
	ledger ledger.BudgetLedger
}

func NewConfirmationService(l ledger.BudgetLedger) ConfirmationService {
	return &confirmationService{ledger: l}
}

// Confirm finalizes a reservation. The usage event is written to the outbox
// in the same transaction, so a replay never emits a second one.
func (s *confirmationService) Confirm(ctx context.Context, req ConfirmRequest) ConfirmResult {
	key, err := budget.NewCouponUserID(req.ReservationID)
	if err != nil {
		return ConfirmResult{ErrorCode: budget.CodeInvalidArgument, Message: err.Error()}
	}
	if req.BudgetID < 0 {
		return ConfirmResult{ErrorCode: budget.CodeInvalidArgument, Message: budget.ErrInvalidBudgetID.Error()}
	}

	out, err := s.ledger.Confirm(ctx, ledger.ConfirmCommand{CouponUserID: key, BudgetID: req.BudgetID})
	if err != nil {
		return ConfirmResult{ErrorCode: ledger.Code(err), Message: err.Error()}
	}
	return budget.MatchConfirm[ConfirmResult](out, confirmResults{req: req})
}

// warnOnMismatch flags a confirm whose owner or amount differs from the
// reservation it finalized. Zero request fields are not compared.
func warnOnMismatch(req ConfirmRequest, u *budget.Usage) {
	attrs := []any{
		slog.String("coupon_user_id", u.CouponUserID().String()),
		slog.String("request_id", req.RequestID),
	}
	mismatch := false
	if req.UserID != 0 && req.UserID != u.UserID() {
		attrs = append(attrs, slog.Int64("request_user_id", req.UserID), slog.Int64("usage_user_id", u.UserID()))
		mismatch = true
	}
	if req.CouponID != 0 && req.CouponID != u.CouponID() {
		attrs = append(attrs, slog.Int64("request_coupon_id", req.CouponID), slog.Int64("usage_coupon_id", u.CouponID()))
		mismatch = true
	}
	if !req.Amount.IsZero() && !req.Amount.Equal(u.Amount().Decimal()) {
		attrs = append(attrs, slog.String("request_amount", req.Amount.String()), slog.String("usage_amount", u.Amount().String()))
		mismatch = true
	}
	if mismatch {
		slog.Warn("Confirm request differs from the reservation", attrs...)
	}
}

type confirmResults struct {
	req ConfirmRequest
}

func (v confirmResults) Confirmed(o budget.Confirmed) ConfirmResult {
	warnOnMismatch(v.req, o.Usage)
	return ConfirmResult{Success: true, Message: fmt.Sprintf("usage %s confirmed", o.Usage.ID())}
}

func (v confirmResults) AlreadyConfirmed(o budget.AlreadyConfirmed) ConfirmResult {
	warnOnMismatch(v.req, o.Usage)
	return ConfirmResult{Success: true, Message: fmt.Sprintf("usage %s was already confirmed", o.Usage.ID())}
}

func (confirmResults) ReservationNotFound(o budget.ReservationNotFound) ConfirmResult {
	msg := fmt.Sprintf("no reservation for %s", o.Key)
	if o.Status != budget.StatusNone {
		msg = fmt.Sprintf("reservation for %s is %s", o.Key, o.Status)
	}
	return ConfirmResult{ErrorCode: budget.CodeNotFound, Message: msg}
}
