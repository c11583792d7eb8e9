package bootstrap

import (
	"coupon-budget-service/cmd/bootstrap/components"
	"coupon-budget-service/internal/pkg/config"

	"go.uber.org/fx"
)

func Module(cfg config.Config) fx.Option {
	return fx.Options(
		ConfigModule(cfg),
		LoggerModule,
		DBModule,
		RedisModule,
		JWTModule,
		components.PersistenceModule(cfg.Ledger),
		components.CacheModule(cfg.Cache),
		components.UseCaseModule,
		components.DecoratorOption,
		components.WorkerModule(cfg),
		components.HandlerModule,
	)
}
