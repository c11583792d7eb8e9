package components

import (
	"log/slog"

	"coupon-budget-service/internal/infra/memstore"
	"coupon-budget-service/internal/infra/readstore"
	"coupon-budget-service/internal/infra/repository"
	sqlc "coupon-budget-service/internal/infra/sqlc/generated"
	"coupon-budget-service/internal/infra/uow"
	"coupon-budget-service/internal/pkg/clock"
	"coupon-budget-service/internal/pkg/config"
	"coupon-budget-service/internal/usecase/queries"
	"coupon-budget-service/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// PersistenceModule binds the ledger ports to Postgres or to the in-memory store.
func PersistenceModule(cfg config.LedgerConfig) fx.Option {
	if cfg.UsesMemory() {
		return memoryModule
	}
	return postgresModule
}

var postgresModule = fx.Module("persistence/postgres",
	fx.Provide(
		NewSQLQueries,
		NewDBTX,
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.BudgetViewQueries)),
		),
		fx.Annotate(
			readstore.NewBudgetReadStore,
			fx.As(new(queries.BudgetReadStore)),
		),
		fx.Annotate(
			NewOutboxRelayStore,
			fx.As(new(shared.OutboxRelayStore)),
		),
		ledgerReads,
	),
)

var memoryModule = fx.Module("persistence/memory",
	fx.Provide(
		NewMemoryStore,
		fx.Annotate(
			func(s *memstore.Store) *memstore.Store { return s },
			fx.As(new(shared.UnitOfWork)),
		),
		fx.Annotate(
			func(s *memstore.Store) *memstore.Store { return s },
			fx.As(new(queries.BudgetReadStore)),
		),
		fx.Annotate(
			func(s *memstore.Store) *memstore.Store { return s },
			fx.As(new(shared.OutboxRelayStore)),
		),
		ledgerReads,
	),
)

func ledgerReads(u shared.UnitOfWork) shared.LedgerReads {
	return u.Reads()
}

func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}

func NewDBTX(pool *pgxpool.Pool) sqlc.DBTX {
	return pool
}

func NewOutboxRelayStore(q *sqlc.Queries, pool *pgxpool.Pool, clk clock.Clock, cfg config.Config) *repository.OutboxRelayStore {
	return repository.NewOutboxRelayStore(q, pool, clk, cfg.Outbox.MaxAttempts)
}

func NewMemoryStore(clk clock.Clock, cfg config.Config) (*memstore.Store, error) {
	seeds, err := memstore.ParseSeeds(cfg.Ledger.SeedBudgets)
	if err != nil {
		return nil, err
	}
	s := memstore.New(clk,
		memstore.WithLockTimeout(cfg.Ledger.LockTimeout),
		memstore.WithMaxOutboxAttempts(cfg.Outbox.MaxAttempts),
	)
	s.Seed(seeds)
	slog.Warn("Using in-memory ledger; state is lost on restart", "seeded_budgets", len(seeds))
	return s, nil
}
