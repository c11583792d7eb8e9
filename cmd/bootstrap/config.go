package bootstrap

import (
	"coupon-budget-service/internal/pkg/config"

	"go.uber.org/fx"
)

// ConfigModule supplies the already loaded config; modules below are chosen from it.
func ConfigModule(cfg config.Config) fx.Option {
	return fx.Module("config",
		fx.Supply(cfg),
		fx.Provide(
			func(cfg config.Config) config.LedgerConfig { return cfg.Ledger },
		),
	)
}
