// Package cache holds advisory snapshots of budget remaining amounts.
// Nothing here takes part in a ledger decision; every failure degrades to a miss.
package cache

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"coupon-budget-service/internal/domain/budget"
	"coupon-budget-service/internal/usecase/shared"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

var _ shared.BudgetCache = (*RedisCache)(nil)

type RedisCache struct {
	client    goredis.Cmdable
	keyPrefix string
	ttl       time.Duration
	timeout   time.Duration
}

type Option func(*RedisCache)

func WithKeyPrefix(prefix string) Option {
	return func(c *RedisCache) { c.keyPrefix = prefix }
}

func WithTTL(ttl time.Duration) Option {
	return func(c *RedisCache) { c.ttl = ttl }
}

func WithTimeout(d time.Duration) Option {
	return func(c *RedisCache) { c.timeout = d }
}

func NewRedisCache(client goredis.Cmdable, opts ...Option) *RedisCache {
	c := &RedisCache{
		client:    client,
		keyPrefix: "budget-service:budget:",
		ttl:       7 * 24 * time.Hour,
		timeout:   50 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RedisCache) key(budgetID int64) string {
	return c.keyPrefix + strconv.FormatInt(budgetID, 10)
}

// putScript writes a snapshot unless a newer version is already stored.
// KEYS[1] = budget hash key
// ARGV[1] = remaining
// ARGV[2] = version
// ARGV[3] = ttl in milliseconds
//
// Returns 1 when written, 0 when the stored snapshot is newer.
var putScript = goredis.NewScript(`
local key = KEYS[1]
local version = tonumber(ARGV[2])
local current = tonumber(redis.call("HGET", key, "version") or "-1")
if current > version then
    return 0
end
redis.call("HSET", key, "remaining", ARGV[1], "version", ARGV[2])
redis.call("PEXPIRE", key, ARGV[3])
return 1
`)

func (c *RedisCache) Get(ctx context.Context, budgetID int64) shared.CacheLookup {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	vals, err := c.client.HMGet(ctx, c.key(budgetID), "remaining", "version").Result()
	if err != nil {
		slog.Warn("Budget cache read failed",
			slog.Int64("budget_id", budgetID),
			slog.String("error", err.Error()))
		return shared.CacheLookup{Available: false}
	}
	if len(vals) != 2 || vals[0] == nil {
		return shared.CacheLookup{Available: true}
	}

	raw, _ := vals[0].(string)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		slog.Warn("Budget cache holds an unreadable amount",
			slog.Int64("budget_id", budgetID),
			slog.String("value", raw))
		return shared.CacheLookup{Available: true}
	}
	remaining, err := budget.NewAmount(d)
	if err != nil {
		return shared.CacheLookup{Available: true}
	}
	var version int64
	if s, ok := vals[1].(string); ok {
		version, _ = strconv.ParseInt(s, 10, 64)
	}

	return shared.CacheLookup{
		Snapshot: shared.BudgetSnapshot{
			BudgetID:  budgetID,
			Remaining: remaining,
			Version:   version,
		},
		Hit:       true,
		Available: true,
	}
}

func (c *RedisCache) Put(ctx context.Context, snap shared.BudgetSnapshot) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	written, err := putScript.Run(ctx, c.client,
		[]string{c.key(snap.BudgetID)},
		snap.Remaining.String(), snap.Version, c.ttl.Milliseconds(),
	).Int64()
	if err != nil {
		slog.Warn("Budget cache write failed",
			slog.Int64("budget_id", snap.BudgetID),
			slog.String("error", err.Error()))
		return
	}
	if written == 0 {
		slog.Debug("Budget cache kept a newer snapshot",
			slog.Int64("budget_id", snap.BudgetID),
			slog.Int64("version", snap.Version))
	}
}

// Disabled is used when CACHE_ENABLED=false. Every lookup reports the cache as unavailable.
type Disabled struct{}

var _ shared.BudgetCache = Disabled{}

func (Disabled) Get(context.Context, int64) shared.CacheLookup {
	return shared.CacheLookup{Available: false}
}

func (Disabled) Put(context.Context, shared.BudgetSnapshot) {}
