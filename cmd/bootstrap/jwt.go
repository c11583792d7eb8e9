package bootstrap

import (
	"coupon-budget-service/internal/pkg/config"
	"coupon-budget-service/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config) *jwt.Service {
	if cfg.Auth.JWTDuration <= 0 {
		panic("invalid JWT_DURATION: must be positive")
	}
	return jwt.NewService(cfg.Auth.JWTSecret, cfg.Auth.JWTDuration, cfg.Auth.JWTIssuer)
}
