// Package ledger is the authoritative budget ledger. Every operation runs in one
// transaction that holds the budget lock before touching usage rows.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"coupon-budget-service/internal/domain/budget"
	"coupon-budget-service/internal/infra"
	"coupon-budget-service/internal/pkg/clock"
	"coupon-budget-service/internal/pkg/errs"
	"coupon-budget-service/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	errActiveKeyTaken = errs.New("active usage already exists for key")
	errUsageMoved     = errs.New("usage changed budget while waiting for its lock")
)

// confirm re-resolves the owning budget at most this many times
const maxConfirmAttempts = 3

type BudgetLedger interface {
	Reserve(ctx context.Context, cmd ReserveCommand) (budget.ReserveOutcome, error)
	Confirm(ctx context.Context, cmd ConfirmCommand) (budget.ConfirmOutcome, error)
	Rollback(ctx context.Context, cmd RollbackCommand) (budget.RollbackOutcome, error)
}

type ReserveCommand struct {
	BudgetID     int64
	CouponUserID budget.CouponUserID
	CouponID     int64
	UserID       int64
	Amount       budget.Amount
}

func (c ReserveCommand) validate() error {
	switch {
	case c.BudgetID <= 0:
		return invalidArgument(budget.ErrInvalidBudgetID)
	case c.CouponUserID == "":
		return invalidArgument(budget.ErrEmptyCouponUserID)
	case c.CouponID <= 0 || c.UserID <= 0:
		return invalidArgument(budget.ErrInvalidOwner)
	case !c.Amount.IsPositive():
		return invalidArgument(budget.ErrAmountNotPositive)
	}
	return nil
}

type ConfirmCommand struct {
	CouponUserID budget.CouponUserID
	// BudgetID is optional. When set, a usage on another budget is reported as not found.
	BudgetID int64
}

type RollbackCommand struct {
	BudgetID     int64
	CouponUserID budget.CouponUserID
	CouponID     int64
	UserID       int64
	// Amount is advisory; the row's own amount is credited. A set ExpectedStatus
	// that differs from the row's status makes the rollback a no-op.
	Amount         budget.Amount
	ExpectedStatus budget.Status
}

func (c RollbackCommand) validate() error {
	if c.BudgetID <= 0 {
		return invalidArgument(budget.ErrInvalidBudgetID)
	}
	if c.CouponUserID == "" && (c.CouponID <= 0 || c.UserID <= 0) {
		return invalidArgument(budget.ErrInvalidOwner)
	}
	return nil
}

type Config struct {
	TxTimeout  time.Duration
	UsageTopic string
}

type Ledger struct {
	uow        shared.UnitOfWork
	clock      clock.Clock
	txTimeout  time.Duration
	usageTopic string
}

func New(uow shared.UnitOfWork, clk clock.Clock, cfg Config) *Ledger {
	return &Ledger{
		uow:        uow,
		clock:      clk,
		txTimeout:  cfg.TxTimeout,
		usageTopic: cfg.UsageTopic,
	}
}

func (l *Ledger) Reserve(ctx context.Context, cmd ReserveCommand) (budget.ReserveOutcome, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	var out budget.ReserveOutcome
	err := l.within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := l.clock.Now()

		b, err := tx.Budgets().LockByID(ctx, cmd.BudgetID)
		budgetMissing := infra.IsKind(err, infra.KindNotFound)
		if err != nil && !budgetMissing {
			return err
		}

		existing, err := tx.Usages().FindLatestForUpdate(ctx, cmd.CouponUserID)
		if err != nil && !infra.IsKind(err, infra.KindNotFound) {
			return err
		}
		if existing != nil && existing.IsActive() {
			out = budget.AlreadyReserved{Usage: existing}
			return nil
		}
		if budgetMissing {
			out = budget.BudgetNotFound{BudgetID: cmd.BudgetID}
			return nil
		}
		if !b.CanCover(cmd.Amount) {
			out = budget.InsufficientBudget{BudgetID: b.ID(), Balance: b.Remaining(), Requested: cmd.Amount}
			return nil
		}

		usage, err := budget.NewReservation(cmd.CouponUserID, cmd.BudgetID, cmd.CouponID, cmd.UserID, cmd.Amount, now)
		if err != nil {
			return invalidArgument(err)
		}
		if err := b.Debit(cmd.Amount, now); err != nil {
			return err
		}
		if err := tx.Budgets().UpdateRemaining(ctx, b); err != nil {
			return err
		}
		if err := tx.Usages().Insert(ctx, usage); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, errActiveKeyTaken)
			}
			return err
		}

		out = budget.Reserved{Usage: usage, Balance: b.Balance()}
		return nil
	})

	if errs.Is(err, errActiveKeyTaken) {
		// a concurrent reservation for the same key on another budget won the unique index
		if existing, rerr := l.uow.Reads().LatestUsage(ctx, cmd.CouponUserID); rerr == nil && existing.IsActive() {
			return budget.AlreadyReserved{Usage: existing}, nil
		}
	}
	if err != nil {
		return nil, l.classify(err)
	}
	return out, nil
}

func (l *Ledger) Confirm(ctx context.Context, cmd ConfirmCommand) (budget.ConfirmOutcome, error) {
	if cmd.CouponUserID == "" {
		return nil, invalidArgument(budget.ErrEmptyCouponUserID)
	}

	for attempt := 1; ; attempt++ {
		out, err := l.confirmOnce(ctx, cmd)
		if errs.Is(err, errUsageMoved) && attempt < maxConfirmAttempts {
			continue
		}
		if err != nil {
			return nil, l.classify(err)
		}
		return out, nil
	}
}

func (l *Ledger) confirmOnce(ctx context.Context, cmd ConfirmCommand) (budget.ConfirmOutcome, error) {
	current, err := l.uow.Reads().LatestUsage(ctx, cmd.CouponUserID)
	if infra.IsKind(err, infra.KindNotFound) {
		return budget.ReservationNotFound{Key: cmd.CouponUserID, Status: budget.StatusNone}, nil
	}
	if err != nil {
		return nil, err
	}
	budgetID := current.BudgetID()

	var out budget.ConfirmOutcome
	err = l.within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Budgets().LockByID(ctx, budgetID); err != nil && !infra.IsKind(err, infra.KindNotFound) {
			return err
		}

		u, err := tx.Usages().FindLatestForUpdate(ctx, cmd.CouponUserID)
		if infra.IsKind(err, infra.KindNotFound) {
			out = budget.ReservationNotFound{Key: cmd.CouponUserID, Status: budget.StatusNone}
			return nil
		}
		if err != nil {
			return err
		}
		if u.BudgetID() != budgetID {
			return errUsageMoved
		}
		if cmd.BudgetID != 0 && cmd.BudgetID != u.BudgetID() {
			out = budget.ReservationNotFound{Key: cmd.CouponUserID, Status: u.Status()}
			return nil
		}

		switch u.Status() {
		case budget.StatusConfirmed:
			out = budget.AlreadyConfirmed{Usage: u}
			return nil
		case budget.StatusReserved:
		default:
			out = budget.ReservationNotFound{Key: cmd.CouponUserID, Status: u.Status()}
			return nil
		}

		now := l.clock.Now()
		if err := u.Confirm(now); err != nil {
			return err
		}
		if err := tx.Usages().UpdateStatus(ctx, u); err != nil {
			return err
		}
		msg, err := l.usageMessage(u, now)
		if err != nil {
			return err
		}
		if err := tx.Outbox().Enqueue(ctx, msg); err != nil {
			return err
		}

		out = budget.Confirmed{Usage: u}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (l *Ledger) usageMessage(u *budget.Usage, now time.Time) (shared.OutboxMessage, error) {
	payload, err := json.Marshal(NewUsageEvent(u))
	if err != nil {
		return shared.OutboxMessage{}, errs.Wrap(err, "marshal usage event")
	}
	return shared.OutboxMessage{
		ID:          uuid.New(),
		Topic:       l.usageTopic,
		AggregateID: u.ID().String(),
		Payload:     payload,
		CreatedAt:   now,
	}, nil
}

func (l *Ledger) Rollback(ctx context.Context, cmd RollbackCommand) (budget.RollbackOutcome, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	var out budget.RollbackOutcome
	err := l.within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Budgets().LockByID(ctx, cmd.BudgetID)
		budgetMissing := infra.IsKind(err, infra.KindNotFound)
		if err != nil && !budgetMissing {
			return err
		}

		var u *budget.Usage
		if cmd.CouponUserID != "" {
			u, err = tx.Usages().FindLatestForUpdate(ctx, cmd.CouponUserID)
		} else {
			u, err = tx.Usages().FindLatestActiveByOwner(ctx, cmd.BudgetID, cmd.CouponID, cmd.UserID)
		}
		if infra.IsKind(err, infra.KindNotFound) {
			out = budget.NothingToRollBack{Key: cmd.CouponUserID, Status: budget.StatusNone}
			return nil
		}
		if err != nil {
			return err
		}

		if !u.IsActive() {
			out = budget.NothingToRollBack{Key: u.CouponUserID(), Status: u.Status()}
			return nil
		}
		if u.BudgetID() != cmd.BudgetID {
			slog.Warn("Rollback event names a different budget than the usage",
				slog.Int64("event_budget_id", cmd.BudgetID),
				slog.Int64("usage_budget_id", u.BudgetID()),
				slog.String("coupon_user_id", u.CouponUserID().String()))
			out = budget.NothingToRollBack{Key: u.CouponUserID(), Status: u.Status()}
			return nil
		}
		if budgetMissing {
			out = budget.RollbackBudgetMissing{BudgetID: cmd.BudgetID, Usage: u}
			return nil
		}

		if !cmd.Amount.IsZero() && !cmd.Amount.Equal(u.Amount()) {
			slog.Warn("Rollback amount differs from the reserved amount; crediting the reserved amount",
				slog.String("coupon_user_id", u.CouponUserID().String()),
				slog.String("event_amount", cmd.Amount.String()),
				slog.String("usage_amount", u.Amount().String()))
		}
		// a reversal of a confirmed usage has to name CONFIRMED explicitly
		if cmd.ExpectedStatus != budget.StatusNone && cmd.ExpectedStatus != u.Status() {
			slog.Warn("Rollback expected a different usage status; leaving the usage untouched",
				slog.String("coupon_user_id", u.CouponUserID().String()),
				slog.String("expected", cmd.ExpectedStatus.String()),
				slog.String("actual", u.Status().String()))
			out = budget.NothingToRollBack{Key: u.CouponUserID(), Status: u.Status()}
			return nil
		}

		now := l.clock.Now()
		from := u.Status()
		if err := u.RollBack(now); err != nil {
			return err
		}
		b.Credit(u.Amount(), now)
		if err := tx.Budgets().UpdateRemaining(ctx, b); err != nil {
			return err
		}
		if err := tx.Usages().UpdateStatus(ctx, u); err != nil {
			return err
		}

		out = budget.RolledBack{Usage: u, Balance: b.Balance(), From: from}
		return nil
	})
	if err != nil {
		return nil, l.classify(err)
	}
	return out, nil
}

func (l *Ledger) within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if l.txTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.txTimeout)
		defer cancel()
	}
	return l.uow.Within(ctx, fn)
}

// classify marks err with the sentinel the transport layer maps to an error code.
func (l *Ledger) classify(err error) error {
	switch {
	case errs.Is(err, errs.ErrInvalidArgument, errs.ErrServiceUnavailable, errs.ErrInternal):
		return err
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		infra.IsKind(err, infra.KindLockTimeout),
		infra.IsKind(err, infra.KindUnavailable):
		return errs.Mark(err, errs.ErrServiceUnavailable)
	default:
		return errs.Mark(err, errs.ErrInternal)
	}
}

func invalidArgument(err error) error {
	return errs.Mark(err, errs.ErrInvalidArgument)
}

// Code maps an error returned by the ledger to its error code.
func Code(err error) budget.ErrorCode {
	switch {
	case err == nil:
		return budget.CodeNone
	case errs.Is(err, errs.ErrInvalidArgument):
		return budget.CodeInvalidArgument
	case errs.Is(err, errs.ErrServiceUnavailable):
		return budget.CodeServiceUnavailable
	default:
		return budget.CodeInternal
	}
}
