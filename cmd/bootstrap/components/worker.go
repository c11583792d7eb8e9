package components

import (
	"context"
	"log/slog"

	"coupon-budget-service/internal/infra/stream"
	"coupon-budget-service/internal/pkg/config"
	"coupon-budget-service/internal/usecase/commands"
	"coupon-budget-service/internal/usecase/shared"
	"coupon-budget-service/internal/worker"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// WorkerModule registers the background loops enabled in config.
func WorkerModule(cfg config.Config) fx.Option {
	opts := []fx.Option{}
	if cfg.Stream.ConsumerEnable {
		opts = append(opts,
			fx.Provide(NewRollbackConsumer),
			fx.Invoke(startRollbackConsumer),
		)
	}
	if cfg.Outbox.Enabled {
		opts = append(opts,
			fx.Provide(NewOutboxRelay),
			fx.Invoke(startOutboxRelay),
		)
	}
	if cfg.Cache.Enabled && cfg.Cache.WarmupOnStart {
		opts = append(opts,
			fx.Provide(NewCacheWarmup),
			fx.Invoke(runCacheWarmup),
		)
	}
	return fx.Module("worker", opts...)
}

func NewRollbackConsumer(client *goredis.Client, handler commands.RollbackHandler, cfg config.Config) *worker.RollbackConsumer {
	consumer := stream.NewConsumer(client, stream.ConsumerConfig{
		Stream:   cfg.Stream.RollbackStream,
		Group:    cfg.Stream.RollbackGroup,
		Consumer: cfg.Stream.Consumer,
		Block:    cfg.Stream.Block,
		MinIdle:  cfg.Stream.ClaimMinIdle,
		Batch:    cfg.Stream.BatchSize,
	})
	dlq := stream.NewDeadLetter(client, cfg.Stream.DeadLetter)
	return worker.NewRollbackConsumer(consumer, dlq, handler, cfg.Stream.MaxDeliveries)
}

func NewOutboxRelay(client *goredis.Client, store shared.OutboxRelayStore, cfg config.Config) *worker.OutboxRelay {
	publisher := stream.NewPublisher(client, cfg.Stream.UsageMaxLen)
	return worker.NewOutboxRelay(store, publisher, worker.OutboxRelayConfig{
		PollInterval: cfg.Outbox.PollInterval,
		BatchSize:    cfg.Outbox.BatchSize,
	})
}

func startRollbackConsumer(lc fx.Lifecycle, c *worker.RollbackConsumer) {
	lc.Append(fx.Hook{
		OnStart: c.Start,
		OnStop:  c.Stop,
	})
}

func startOutboxRelay(lc fx.Lifecycle, r *worker.OutboxRelay) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			r.Start()
			return nil
		},
		OnStop: r.Stop,
	})
}

func NewCacheWarmup(reads shared.LedgerReads, c shared.BudgetCache, cfg config.Config) *worker.CacheWarmup {
	return worker.NewCacheWarmup(reads, c, cfg.Cache.WarmupPageSize)
}

// A failed warmup only means a cold cache; startup continues.
func runCacheWarmup(lc fx.Lifecycle, w *worker.CacheWarmup) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if _, err := w.Run(ctx); err != nil {
				slog.Warn("Budget cache warmup failed", "error", err)
			}
			return nil
		},
	})
}
