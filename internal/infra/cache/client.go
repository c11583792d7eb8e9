package cache

import (
	"context"
	"fmt"
	"log/slog"

	"coupon-budget-service/internal/pkg/config"

	goredis "github.com/redis/go-redis/v9"
)

// Connect opens the shared Redis client used by the cache and the streams.
func Connect(cfg config.RedisConfig) (*goredis.Client, func(), error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr, err)
	}

	cleanup := func() {
		slog.Info("Closing redis client")
		if err := client.Close(); err != nil {
			slog.Warn("Failed to close redis client", "error", err)
		}
	}
	return client, cleanup, nil
}
