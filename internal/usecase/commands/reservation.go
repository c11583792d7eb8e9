package commands

import (
	"context"
	"fmt"
	"time"

	"coupon-budget-service/internal/domain/budget"
	"coupon-budget-service/internal/infra"
	"coupon-budget-service/internal/pkg/clock"
	"coupon-budget-service/internal/usecase/ledger"
	"coupon-budget-service/internal/usecase/shared"

	"github.com/shopspring/decimal"
)

type ReserveRequest struct {
	RequestID    string
	CouponUserID string
	UserID       int64
	CouponID     int64
	BudgetID     int64
	Amount       decimal.Decimal
}

type ReserveResult struct {
	Success   bool
	Status    budget.Status
	ErrorCode budget.ErrorCode
	Message   string
}

// CacheCheck configures the fast-fail path. Snapshots older than MaxStaleness
// are ignored; zero disables the bound.
type CacheCheck struct {
	Enabled      bool
	MaxStaleness time.Duration
	Clock        clock.Clock
}

type ReservationService interface {
	Register(ctx context.Context, req ReserveRequest) ReserveResult
}

type reservationService struct {
	ledger    ledger.BudgetLedger
	reads     shared.LedgerReads
	cache     shared.BudgetCache
	snapshots SnapshotSink
	check     CacheCheck
}

func NewReservationService(
	l ledger.BudgetLedger,
	reads shared.LedgerReads,
	cache shared.BudgetCache,
	snapshots SnapshotSink,
	check CacheCheck,
) ReservationService {
	if check.Clock == nil {
		check.Clock = clock.NewRealClock()
	}
	return &reservationService{
		ledger:    l,
		reads:     reads,
		cache:     cache,
		snapshots: snapshots,
		check:     check,
	}
}

func (s *reservationService) Register(ctx context.Context, req ReserveRequest) ReserveResult {
	cmd, err := req.command()
	if err != nil {
		return reserveFailure(budget.CodeInvalidArgument, err.Error())
	}

	if s.check.Enabled {
		if res, decided := s.checkCache(ctx, cmd); decided {
			return res
		}
	}

	out, err := s.ledger.Reserve(ctx, cmd)
	if err != nil {
		return reserveFailure(ledger.Code(err), err.Error())
	}
	return budget.MatchReserve[ReserveResult](out, reserveResults{snapshots: s.snapshots})
}

// checkCache refuses a request the cached snapshot cannot cover. A hit only
// short-circuits after confirming the key holds no active reservation, so a
// retried request still sees ALREADY_RESERVED, and after a lock-free read of
// the committed balance agrees, so a lost snapshot write never refuses what
// the ledger would accept.
func (s *reservationService) checkCache(ctx context.Context, cmd ledger.ReserveCommand) (ReserveResult, bool) {
	look := s.cache.Get(ctx, cmd.BudgetID)
	if !look.Available || !look.Hit || !look.Snapshot.Remaining.LessThan(cmd.Amount) {
		return ReserveResult{}, false
	}
	if s.stale(look.Snapshot) {
		return ReserveResult{}, false
	}

	existing, err := s.reads.LatestUsage(ctx, cmd.CouponUserID)
	switch {
	case err == nil && existing.IsActive():
		return alreadyReservedResult(existing), true
	case err != nil && !infra.IsKind(err, infra.KindNotFound):
		return ReserveResult{}, false
	}

	b, err := s.reads.BudgetByID(ctx, cmd.BudgetID)
	if err != nil {
		return ReserveResult{}, false
	}
	if b.CanCover(cmd.Amount) {
		// the snapshot lagged behind a credit
		s.snapshots.Submit(shared.SnapshotFromBalance(b.Balance()))
		return ReserveResult{}, false
	}

	return reserveResults{snapshots: s.snapshots}.InsufficientBudget(budget.InsufficientBudget{
		BudgetID:  cmd.BudgetID,
		Balance:   b.Remaining(),
		Requested: cmd.Amount,
	}), true
}

func (s *reservationService) stale(snap shared.BudgetSnapshot) bool {
	if s.check.MaxStaleness <= 0 {
		return false
	}
	age := s.check.Clock.Now().Sub(time.UnixMicro(snap.Version))
	return age > s.check.MaxStaleness
}

func (r ReserveRequest) command() (ledger.ReserveCommand, error) {
	key, err := budget.NewCouponUserID(r.CouponUserID)
	if err != nil {
		return ledger.ReserveCommand{}, err
	}
	if r.BudgetID <= 0 {
		return ledger.ReserveCommand{}, budget.ErrInvalidBudgetID
	}
	if r.CouponID <= 0 || r.UserID <= 0 {
		return ledger.ReserveCommand{}, budget.ErrInvalidOwner
	}
	amount, err := budget.NewPositiveAmount(r.Amount)
	if err != nil {
		return ledger.ReserveCommand{}, err
	}
	return ledger.ReserveCommand{
		BudgetID:     r.BudgetID,
		CouponUserID: key,
		CouponID:     r.CouponID,
		UserID:       r.UserID,
		Amount:       amount,
	}, nil
}

type reserveResults struct {
	snapshots SnapshotSink
}

func (v reserveResults) Reserved(o budget.Reserved) ReserveResult {
	v.snapshots.Submit(shared.SnapshotFromBalance(o.Balance))
	return ReserveResult{
		Success: true,
		Status:  budget.StatusReserved,
		Message: fmt.Sprintf("reserved %s, %s remaining", o.Usage.Amount(), o.Balance.Remaining),
	}
}

func (v reserveResults) AlreadyReserved(o budget.AlreadyReserved) ReserveResult {
	return alreadyReservedResult(o.Usage)
}

func (v reserveResults) InsufficientBudget(o budget.InsufficientBudget) ReserveResult {
	return reserveFailure(budget.CodeInsufficientBudget,
		fmt.Sprintf("budget %d has %s remaining, %s requested", o.BudgetID, o.Balance, o.Requested))
}

func (v reserveResults) BudgetNotFound(o budget.BudgetNotFound) ReserveResult {
	return reserveFailure(budget.CodeNotFound, fmt.Sprintf("budget %d not found", o.BudgetID))
}

func alreadyReservedResult(u *budget.Usage) ReserveResult {
	return ReserveResult{
		Success:   true,
		Status:    u.Status(),
		ErrorCode: budget.CodeAlreadyReserved,
		Message:   fmt.Sprintf("coupon user %s already holds a %s usage", u.CouponUserID(), u.Status()),
	}
}

func reserveFailure(code budget.ErrorCode, msg string) ReserveResult {
	return ReserveResult{
		Success:   false,
		Status:    budget.StatusNone,
		ErrorCode: code,
		Message:   msg,
	}
}
