package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server ServerConfig
	DB     DBConfig
	Redis  RedisConfig
	Cache  CacheConfig
	Ledger LedgerConfig
	Stream StreamConfig
	Outbox OutboxConfig
	CORS   CORSConfig
	Log    LogConfig
	Auth   AuthConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type RedisConfig struct {
	Addr        string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password    string        `envconfig:"REDIS_PASSWORD"`
	DB          int           `envconfig:"REDIS_DB" default:"0"`
	DialTimeout time.Duration `envconfig:"REDIS_DIAL_TIMEOUT" default:"2s"`
}

type CacheConfig struct {
	Enabled  bool `envconfig:"CACHE_ENABLED" default:"true"`
	FastFail bool `envconfig:"CACHE_FAST_FAIL" default:"true"`
	// snapshots older than this never short-circuit a reserve
	MaxStaleness time.Duration `envconfig:"CACHE_MAX_STALENESS" default:"5s"`
	Prefix       string        `envconfig:"CACHE_KEY_PREFIX" default:"budget-service:budget:"`
	// 604800s in the previous deployment
	BudgetTTL      time.Duration `envconfig:"CACHE_BUDGET_TTL" default:"168h"`
	OpTimeout      time.Duration `envconfig:"CACHE_OP_TIMEOUT" default:"50ms"`
	WriteQueue     int           `envconfig:"CACHE_WRITE_QUEUE" default:"256"`
	WarmupOnStart  bool          `envconfig:"CACHE_WARMUP_ON_START" default:"true"`
	WarmupPageSize int           `envconfig:"CACHE_WARMUP_BATCH" default:"500"`
}

type LedgerConfig struct {
	// postgres | memory
	Backend     string        `envconfig:"LEDGER_BACKEND" default:"postgres"`
	TxTimeout   time.Duration `envconfig:"LEDGER_TX_TIMEOUT" default:"3s"`
	LockTimeout time.Duration `envconfig:"LEDGER_LOCK_TIMEOUT" default:"2s"`
	MaxRetries  int           `envconfig:"LEDGER_MAX_RETRIES" default:"3"`
	// "id:amount" pairs, memory backend only
	SeedBudgets []string `envconfig:"LEDGER_SEED_BUDGETS"`
}

type StreamConfig struct {
	RollbackStream string        `envconfig:"STREAM_ROLLBACK" default:"rollback-budget-usage"`
	RollbackGroup  string        `envconfig:"STREAM_ROLLBACK_GROUP" default:"budget-service-group"`
	Consumer       string        `envconfig:"STREAM_CONSUMER" default:"budget-service-1"`
	DeadLetter     string        `envconfig:"STREAM_DEAD_LETTER" default:"rollback-budget-usage-dlq"`
	UsageStream    string        `envconfig:"STREAM_USAGE" default:"budget-usage"`
	UsageMaxLen    int64         `envconfig:"STREAM_USAGE_MAXLEN" default:"100000"`
	Block          time.Duration `envconfig:"STREAM_BLOCK" default:"2s"`
	ClaimMinIdle   time.Duration `envconfig:"STREAM_CLAIM_MIN_IDLE" default:"30s"`
	BatchSize      int64         `envconfig:"STREAM_BATCH" default:"32"`
	MaxDeliveries  int64         `envconfig:"STREAM_MAX_DELIVERIES" default:"10"`
	ConsumerEnable bool          `envconfig:"STREAM_CONSUMER_ENABLED" default:"true"`
}

type OutboxConfig struct {
	PollInterval time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"500ms"`
	BatchSize    int           `envconfig:"OUTBOX_BATCH" default:"100"`
	MaxAttempts  int32         `envconfig:"OUTBOX_MAX_ATTEMPTS" default:"20"`
	Enabled      bool          `envconfig:"OUTBOX_RELAY_ENABLED" default:"true"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,X-Service-Id,X-Client-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"false"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type AuthConfig struct {
	JWTSecret   string        `envconfig:"JWT_SECRET" required:"true"`
	JWTDuration time.Duration `envconfig:"JWT_DURATION" default:"1h"`
	JWTIssuer   string        `envconfig:"JWT_ISSUER" default:"coupon-budget-service"`
	CallersFile string        `envconfig:"AUTH_CALLERS_FILE" default:"config/callers.yaml"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c LedgerConfig) UsesMemory() bool {
	return c.Backend == "memory"
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if cfg.Ledger.Backend != "postgres" && cfg.Ledger.Backend != "memory" {
		return Config{}, fmt.Errorf("invalid LEDGER_BACKEND %q", cfg.Ledger.Backend)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 20,
		},
		Redis: RedisConfig{
			Addr:        "localhost:16379",
			DialTimeout: time.Second,
		},
		Cache: CacheConfig{
			Enabled:        true,
			FastFail:       true,
			MaxStaleness:   5 * time.Second,
			Prefix:         "test:budget:",
			BudgetTTL:      time.Hour,
			OpTimeout:      200 * time.Millisecond,
			WriteQueue:     64,
			WarmupOnStart:  false,
			WarmupPageSize: 100,
		},
		Ledger: LedgerConfig{
			Backend:     "postgres",
			TxTimeout:   5 * time.Second,
			LockTimeout: 3 * time.Second,
			MaxRetries:  3,
		},
		Stream: StreamConfig{
			RollbackStream: "test-rollback-budget-usage",
			RollbackGroup:  "test-budget-service-group",
			Consumer:       "test-consumer",
			DeadLetter:     "test-rollback-budget-usage-dlq",
			UsageStream:    "test-budget-usage",
			UsageMaxLen:    1000,
			Block:          100 * time.Millisecond,
			ClaimMinIdle:   time.Second,
			BatchSize:      16,
			MaxDeliveries:  5,
			ConsumerEnable: false,
		},
		Outbox: OutboxConfig{
			PollInterval: 50 * time.Millisecond,
			BatchSize:    50,
			MaxAttempts:  5,
			Enabled:      false,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		Auth: AuthConfig{
			JWTSecret:   "test-secret",
			JWTDuration: time.Hour,
			JWTIssuer:   "coupon-budget-service-test",
		},
	}
}
