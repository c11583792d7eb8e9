package commands

import (
	"context"
	"log/slog"
	"time"

	"coupon-budget-service/internal/domain/budget"
)

// outcomeLevel puts business outcomes at INFO and failures the caller cannot fix at ERROR.
func outcomeLevel(code budget.ErrorCode) slog.Level {
	switch code {
	case budget.CodeNone, budget.CodeAlreadyReserved, budget.CodeInsufficientBudget, budget.CodeNotFound:
		return slog.LevelInfo
	case budget.CodeInvalidArgument:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

type loggingReservationService struct {
	next ReservationService
}

func NewLoggingReservationService(next ReservationService) ReservationService {
	return &loggingReservationService{next: next}
}

func (s *loggingReservationService) Register(ctx context.Context, req ReserveRequest) ReserveResult {
	start := time.Now()
	res := s.next.Register(ctx, req)

	slog.Log(ctx, outcomeLevel(res.ErrorCode), "reserve",
		slog.String("request_id", req.RequestID),
		slog.String("coupon_user_id", req.CouponUserID),
		slog.Int64("budget_id", req.BudgetID),
		slog.String("amount", req.Amount.String()),
		slog.Bool("success", res.Success),
		slog.String("status", res.Status.String()),
		slog.String("code", res.ErrorCode.String()),
		slog.Duration("duration", time.Since(start)))
	return res
}

type loggingConfirmationService struct {
	next ConfirmationService
}

func NewLoggingConfirmationService(next ConfirmationService) ConfirmationService {
	return &loggingConfirmationService{next: next}
}

func (s *loggingConfirmationService) Confirm(ctx context.Context, req ConfirmRequest) ConfirmResult {
	start := time.Now()
	res := s.next.Confirm(ctx, req)

	slog.Log(ctx, outcomeLevel(res.ErrorCode), "confirm",
		slog.String("request_id", req.RequestID),
		slog.String("reservation_id", req.ReservationID),
		slog.Int64("order_id", req.OrderID),
		slog.Int64("budget_id", req.BudgetID),
		slog.Bool("success", res.Success),
		slog.String("code", res.ErrorCode.String()),
		slog.Duration("duration", time.Since(start)))
	return res
}

type loggingRollbackHandler struct {
	next RollbackHandler
}

func NewLoggingRollbackHandler(next RollbackHandler) RollbackHandler {
	return &loggingRollbackHandler{next: next}
}

func (h *loggingRollbackHandler) Handle(ctx context.Context, payload []byte) RollbackResult {
	start := time.Now()
	res := h.next.Handle(ctx, payload)

	level := outcomeLevel(res.Code)
	if res.Disposition == DispositionDeadLetter {
		level = slog.LevelError
	}
	attrs := []any{
		slog.String("code", res.Code.String()),
		slog.String("disposition", res.Disposition.String()),
		slog.Duration("duration", time.Since(start)),
	}
	if res.Reason != "" {
		attrs = append(attrs, slog.String("reason", res.Reason))
	}
	if rb, ok := res.Outcome.(budget.RolledBack); ok {
		attrs = append(attrs,
			slog.String("coupon_user_id", rb.Usage.CouponUserID().String()),
			slog.Int64("budget_id", rb.Usage.BudgetID()),
			slog.String("from", rb.From.String()),
			slog.String("remaining", rb.Balance.Remaining.String()))
	}
	slog.Log(ctx, level, "rollback", attrs...)
	return res
}
