package components

import (
	"log/slog"

	"coupon-budget-service/internal/infra/callers"
	"coupon-budget-service/internal/pkg/clock"
	"coupon-budget-service/internal/pkg/config"
	"coupon-budget-service/internal/pkg/jwt"
	"coupon-budget-service/internal/usecase"
	"coupon-budget-service/internal/usecase/commands"
	"coupon-budget-service/internal/usecase/ledger"
	"coupon-budget-service/internal/usecase/queries"
	"coupon-budget-service/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseLedgerModule,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseLedgerModule = fx.Module("usecase/ledger",
	fx.Provide(
		fx.Annotate(
			NewBudgetLedger,
			fx.As(new(ledger.BudgetLedger)),
		),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewReservationService,
		commands.NewConfirmationService,
		commands.NewRollbackHandler,
		commands.NewAuthCommands,
		fx.Annotate(
			NewCallerRegistry,
			fx.As(new(commands.CallerRegistry)),
		),
		fx.Annotate(
			func(s *jwt.Service) *jwt.Service { return s },
			fx.As(new(commands.TokenIssuer)),
		),
	),
)

// DecoratorOption wraps the three ledger entry points with timing and outcome
// logging. It must sit at the root so every consumer sees the decorated values.
var DecoratorOption = fx.Decorate(
	commands.NewLoggingReservationService,
	commands.NewLoggingConfirmationService,
	commands.NewLoggingRollbackHandler,
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBudgetQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewBudgetLedger(u shared.UnitOfWork, clk clock.Clock, cfg config.Config) *ledger.Ledger {
	return ledger.New(u, clk, ledger.Config{
		TxTimeout:  cfg.Ledger.TxTimeout,
		UsageTopic: cfg.Stream.UsageStream,
	})
}

func NewReservationService(
	l ledger.BudgetLedger,
	reads shared.LedgerReads,
	c shared.BudgetCache,
	snapshots commands.SnapshotSink,
	clk clock.Clock,
	cfg config.Config,
) commands.ReservationService {
	return commands.NewReservationService(l, reads, c, snapshots, commands.CacheCheck{
		Enabled:      cfg.Cache.Enabled && cfg.Cache.FastFail,
		MaxStaleness: cfg.Cache.MaxStaleness,
		Clock:        clk,
	})
}

func NewCallerRegistry(cfg config.Config) (*callers.Registry, error) {
	r, err := callers.LoadFile(cfg.Auth.CallersFile)
	if err != nil {
		return nil, err
	}
	slog.Info("Trusted callers loaded", "file", cfg.Auth.CallersFile, "callers", r.Len())
	return r, nil
}
