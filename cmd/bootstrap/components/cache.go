package components

import (
	"context"

	"coupon-budget-service/internal/infra/cache"
	"coupon-budget-service/internal/pkg/config"
	"coupon-budget-service/internal/usecase/commands"
	"coupon-budget-service/internal/usecase/shared"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

func CacheModule(cfg config.CacheConfig) fx.Option {
	backend := fx.Provide(
		fx.Annotate(
			func() cache.Disabled { return cache.Disabled{} },
			fx.As(new(shared.BudgetCache)),
		),
	)
	if cfg.Enabled {
		backend = fx.Provide(
			fx.Annotate(
				NewRedisBudgetCache,
				fx.As(new(shared.BudgetCache)),
			),
		)
	}

	return fx.Module("cache",
		backend,
		fx.Provide(
			fx.Annotate(
				NewSnapshotWriter,
				fx.As(new(commands.SnapshotSink)),
			),
		),
	)
}

func NewRedisBudgetCache(client *goredis.Client, cfg config.Config) *cache.RedisCache {
	return cache.NewRedisCache(client,
		cache.WithKeyPrefix(cfg.Cache.Prefix),
		cache.WithTTL(cfg.Cache.BudgetTTL),
		cache.WithTimeout(cfg.Cache.OpTimeout),
	)
}

func NewSnapshotWriter(lc fx.Lifecycle, c shared.BudgetCache, cfg config.Config) *commands.SnapshotWriter {
	w := commands.NewSnapshotWriter(c, cfg.Cache.WriteQueue)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			w.Close()
			return nil
		},
	})
	return w
}
