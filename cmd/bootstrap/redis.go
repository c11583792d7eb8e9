package bootstrap

import (
	"log/slog"

	"coupon-budget-service/internal/infra/cache"
	"coupon-budget-service/internal/pkg/config"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedisClient,
	),
)

// NewRedisClient is only invoked when the cache or a stream worker is enabled.
func NewRedisClient(lc fx.Lifecycle, cfg config.Config) (*goredis.Client, error) {
	client, cleanup, err := cache.Connect(cfg.Redis)
	if err != nil {
		return nil, err
	}
	slog.Info("Redis connected", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
	closeOnStop(lc, cleanup)
	return client, nil
}
