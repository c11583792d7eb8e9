package components

import (
	"coupon-budget-service/internal/handler"
	"coupon-budget-service/internal/handler/api"
	"coupon-budget-service/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewBudgetHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
