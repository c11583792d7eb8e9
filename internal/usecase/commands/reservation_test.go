//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"coupon-budget-service/internal/domain/budget"
	"coupon-budget-service/internal/infra"
	"coupon-budget-service/internal/pkg/clock"
	"coupon-budget-service/internal/pkg/errs"
	"coupon-budget-service/internal/usecase/commands"
	"coupon-budget-service/internal/usecase/ledger"
	"coupon-budget-service/internal/usecase/shared"
	"coupon-budget-service/tests/common/builder"
	commandsmock "coupon-budget-service/tests/mock/commands"
	ledgermock "coupon-budget-service/tests/mock/ledger"
	sharedmock "coupon-budget-service/tests/mock/shared"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

type ReservationServiceTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	ledger    *ledgermock.MockBudgetLedger
	reads     *sharedmock.MockLedgerReads
	cache     *sharedmock.MockBudgetCache
	snapshots *commandsmock.MockSnapshotSink
	service   commands.ReservationService
}

func (s *ReservationServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.ledger = ledgermock.NewMockBudgetLedger(s.mockCtrl)
	s.reads = sharedmock.NewMockLedgerReads(s.mockCtrl)
	s.cache = sharedmock.NewMockBudgetCache(s.mockCtrl)
	s.snapshots = commandsmock.NewMockSnapshotSink(s.mockCtrl)
	s.service = commands.NewReservationService(s.ledger, s.reads, s.cache, s.snapshots, commands.CacheCheck{
		Enabled:      true,
		MaxStaleness: 5 * time.Second,
		Clock:        clock.NewMockClock(testNow),
	})
}

func (s *ReservationServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationServiceSuite(t *testing.T) {
	suite.Run(t, new(ReservationServiceTestSuite))
}

func validReserveRequest() commands.ReserveRequest {
	return commands.ReserveRequest{
		RequestID:    "req-1",
		CouponUserID: "coupon-user-1",
		UserID:       100,
		CouponID:     10,
		BudgetID:     1,
		Amount:       decimal.RequireFromString("60.00"),
	}
}

func cacheHit(remaining string) shared.CacheLookup {
	return shared.CacheLookup{
		Snapshot:  shared.BudgetSnapshot{BudgetID: 1, Remaining: budget.MustAmount(remaining), Version: testNow.UnixMicro()},
		Hit:       true,
		Available: true,
	}
}

func (s *ReservationServiceTestSuite) TestRegister() {
	ctx := context.Background()
	usage := builder.NewUsageBuilder().BuildDomain()

	s.Run("reserved: refreshes the cache snapshot", func() {
		balance := budget.Balance{BudgetID: 1, Remaining: budget.MustAmount("40.00"), AsOf: testNow}
		s.cache.EXPECT().Get(gomock.Any(), int64(1)).Return(cacheHit("100.00"))
		s.ledger.EXPECT().Reserve(gomock.Any(), ledger.ReserveCommand{
			BudgetID:     1,
			CouponUserID: "coupon-user-1",
			CouponID:     10,
			UserID:       100,
			Amount:       budget.MustAmount("60.00"),
		}).Return(budget.Reserved{Usage: usage, Balance: balance}, nil)
		s.snapshots.EXPECT().Submit(shared.SnapshotFromBalance(balance))

		res := s.service.Register(ctx, validReserveRequest())
		s.True(res.Success)
		s.Equal(budget.StatusReserved, res.Status)
		s.Equal(budget.CodeNone, res.ErrorCode)
	})

	s.Run("already reserved is a success carrying the code", func() {
		s.cache.EXPECT().Get(gomock.Any(), int64(1)).Return(shared.CacheLookup{Available: true})
		s.ledger.EXPECT().Reserve(gomock.Any(), gomock.Any()).Return(budget.AlreadyReserved{Usage: usage}, nil)

		res := s.service.Register(ctx, validReserveRequest())
		s.True(res.Success)
		s.Equal(budget.StatusReserved, res.Status)
		s.Equal(budget.CodeAlreadyReserved, res.ErrorCode)
	})

	s.Run("ledger outcomes map to codes", func() {
		cases := []struct {
			name string
			out  budget.ReserveOutcome
			code budget.ErrorCode
		}{
			{"insufficient", budget.InsufficientBudget{BudgetID: 1, Balance: budget.MustAmount("40.00"), Requested: budget.MustAmount("60.00")}, budget.CodeInsufficientBudget},
			{"budget missing", budget.BudgetNotFound{BudgetID: 1}, budget.CodeNotFound},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.cache.EXPECT().Get(gomock.Any(), int64(1)).Return(shared.CacheLookup{})
				s.ledger.EXPECT().Reserve(gomock.Any(), gomock.Any()).Return(tc.out, nil)

				res := s.service.Register(ctx, validReserveRequest())
				s.False(res.Success)
				s.Equal(budget.StatusNone, res.Status)
				s.Equal(tc.code, res.ErrorCode)
			})
		}
	})

	s.Run("ledger errors map to codes", func() {
		s.cache.EXPECT().Get(gomock.Any(), int64(1)).Return(shared.CacheLookup{})
		s.ledger.EXPECT().Reserve(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(assertErr, errs.ErrServiceUnavailable))

		res := s.service.Register(ctx, validReserveRequest())
		s.False(res.Success)
		s.Equal(budget.CodeServiceUnavailable, res.ErrorCode)
	})

	s.Run("invalid requests never reach the ledger", func() {
		mutations := map[string]func(r *commands.ReserveRequest){
			"zero amount":      func(r *commands.ReserveRequest) { r.Amount = decimal.Zero },
			"negative amount":  func(r *commands.ReserveRequest) { r.Amount = decimal.RequireFromString("-1") },
			"three decimals":   func(r *commands.ReserveRequest) { r.Amount = decimal.RequireFromString("1.005") },
			"blank key":        func(r *commands.ReserveRequest) { r.CouponUserID = "  " },
			"missing budget":   func(r *commands.ReserveRequest) { r.BudgetID = 0 },
			"missing user":     func(r *commands.ReserveRequest) { r.UserID = 0 },
			"negative coupon":  func(r *commands.ReserveRequest) { r.CouponID = -1 },
		}
		for name, mutate := range mutations {
			s.Run(name, func() {
				req := validReserveRequest()
				mutate(&req)
				res := s.service.Register(ctx, req)
				s.False(res.Success)
				s.Equal(budget.CodeInvalidArgument, res.ErrorCode)
			})
		}
	})
}

func (s *ReservationServiceTestSuite) TestRegister_CacheFastFail() {
	ctx := context.Background()
	notFound := infra.NewRepoErr(infra.KindNotFound, "usage")
	committed := func(remaining string) *budget.Budget {
		return builder.NewBudgetBuilder().WithRemaining(remaining).BuildDomain()
	}

	s.Run("cached remaining below amount fails fast", func() {
		s.cache.EXPECT().Get(gomock.Any(), int64(1)).Return(cacheHit("10.00"))
		s.reads.EXPECT().LatestUsage(gomock.Any(), budget.CouponUserID("coupon-user-1")).Return(nil, notFound)
		s.reads.EXPECT().BudgetByID(gomock.Any(), int64(1)).Return(committed("10.00"), nil)

		res := s.service.Register(ctx, validReserveRequest())
		s.False(res.Success)
		s.Equal(budget.CodeInsufficientBudget, res.ErrorCode)
		s.Equal("budget 1 has 10.00 remaining, 60.00 requested", res.Message)
	})

	s.Run("retry of an existing reservation still reports already reserved", func() {
		s.cache.EXPECT().Get(gomock.Any(), int64(1)).Return(cacheHit("0.00"))
		s.reads.EXPECT().LatestUsage(gomock.Any(), gomock.Any()).
			Return(builder.NewUsageBuilder().BuildDomain(), nil)

		res := s.service.Register(ctx, validReserveRequest())
		s.True(res.Success)
		s.Equal(budget.CodeAlreadyReserved, res.ErrorCode)
	})

	s.Run("rolled back key does not block the fast fail", func() {
		s.cache.EXPECT().Get(gomock.Any(), int64(1)).Return(cacheHit("0.00"))
		s.reads.EXPECT().LatestUsage(gomock.Any(), gomock.Any()).
			Return(builder.NewUsageBuilder().AsRolledBackFrom(budget.StatusReserved).BuildDomain(), nil)
		s.reads.EXPECT().BudgetByID(gomock.Any(), int64(1)).Return(committed("0.00"), nil)

		res := s.service.Register(ctx, validReserveRequest())
		s.Equal(budget.CodeInsufficientBudget, res.ErrorCode)
	})

	s.Run("snapshot behind a credit goes to the ledger and is refreshed", func() {
		current := committed("100.00")
		balance := budget.Balance{BudgetID: 1, Remaining: budget.MustAmount("40.00"), AsOf: testNow}
		s.cache.EXPECT().Get(gomock.Any(), int64(1)).Return(cacheHit("40.00"))
		s.reads.EXPECT().LatestUsage(gomock.Any(), gomock.Any()).Return(nil, notFound)
		s.reads.EXPECT().BudgetByID(gomock.Any(), int64(1)).Return(current, nil)
		gomock.InOrder(
			s.snapshots.EXPECT().Submit(shared.SnapshotFromBalance(current.Balance())),
			s.snapshots.EXPECT().Submit(shared.SnapshotFromBalance(balance)),
		)
		s.ledger.EXPECT().Reserve(gomock.Any(), gomock.Any()).
			Return(budget.Reserved{Usage: builder.NewUsageBuilder().BuildDomain(), Balance: balance}, nil)

		res := s.service.Register(ctx, validReserveRequest())
		s.True(res.Success)
		s.Equal(budget.StatusReserved, res.Status)
	})

	s.Run("stale snapshot is ignored", func() {
		old := cacheHit("0.00")
		old.Snapshot.Version = testNow.Add(-time.Minute).UnixMicro()
		s.cache.EXPECT().Get(gomock.Any(), int64(1)).Return(old)
		s.ledger.EXPECT().Reserve(gomock.Any(), gomock.Any()).Return(budget.BudgetNotFound{BudgetID: 1}, nil)

		res := s.service.Register(ctx, validReserveRequest())
		s.Equal(budget.CodeNotFound, res.ErrorCode)
	})

	s.Run("read failure falls through to the ledger", func() {
		s.cache.EXPECT().Get(gomock.Any(), int64(1)).Return(cacheHit("0.00"))
		s.reads.EXPECT().LatestUsage(gomock.Any(), gomock.Any()).
			Return(nil, infra.NewRepoErr(infra.KindUnavailable, "pool"))
		s.ledger.EXPECT().Reserve(gomock.Any(), gomock.Any()).
			Return(budget.InsufficientBudget{BudgetID: 1, Balance: budget.ZeroAmount(), Requested: budget.MustAmount("60.00")}, nil)

		res := s.service.Register(ctx, validReserveRequest())
		s.Equal(budget.CodeInsufficientBudget, res.ErrorCode)
	})

	s.Run("budget read failure falls through to the ledger", func() {
		s.cache.EXPECT().Get(gomock.Any(), int64(1)).Return(cacheHit("0.00"))
		s.reads.EXPECT().LatestUsage(gomock.Any(), gomock.Any()).Return(nil, notFound)
		s.reads.EXPECT().BudgetByID(gomock.Any(), int64(1)).Return(nil, infra.NewRepoErr(infra.KindNotFound, "budget"))
		s.ledger.EXPECT().Reserve(gomock.Any(), gomock.Any()).Return(budget.BudgetNotFound{BudgetID: 1}, nil)

		res := s.service.Register(ctx, validReserveRequest())
		s.Equal(budget.CodeNotFound, res.ErrorCode)
	})

	s.Run("unavailable cache goes to the ledger", func() {
		s.cache.EXPECT().Get(gomock.Any(), int64(1)).Return(shared.CacheLookup{Available: false})
		s.ledger.EXPECT().Reserve(gomock.Any(), gomock.Any()).
			Return(budget.Reserved{Usage: builder.NewUsageBuilder().BuildDomain(), Balance: budget.Balance{BudgetID: 1, Remaining: budget.MustAmount("40.00")}}, nil)
		s.snapshots.EXPECT().Submit(gomock.Any())

		res := s.service.Register(ctx, validReserveRequest())
		s.True(res.Success)
	})
}

func TestRegister_FastFailDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := ledgermock.NewMockBudgetLedger(ctrl)
	// no cache expectations: a disabled fast fail never consults it
	cache := sharedmock.NewMockBudgetCache(ctrl)
	service := commands.NewReservationService(l, sharedmock.NewMockLedgerReads(ctrl), cache, commandsmock.NewMockSnapshotSink(ctrl), commands.CacheCheck{})

	l.EXPECT().Reserve(gomock.Any(), gomock.Any()).Return(budget.BudgetNotFound{BudgetID: 1}, nil)
	res := service.Register(context.Background(), validReserveRequest())
	if res.ErrorCode != budget.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %q", res.ErrorCode)
	}
}
