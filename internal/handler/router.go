package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"coupon-budget-service/internal/domain/auth"
	"coupon-budget-service/internal/handler/api"
	"coupon-budget-service/internal/handler/middleware"
	"coupon-budget-service/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *middleware.Logger,
	authHandler *api.AuthHandler,
	budgetHandler *api.BudgetHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, authHandler, budgetHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, authHandler *api.AuthHandler, budgetHandler *api.BudgetHandler, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		authGroup := apiGroup.Group("/auth")
		addRoutes(authGroup, []route{
			{Method: http.MethodPost, Path: "/token", Handler: authHandler.IssueToken},
		})

		budgets := apiGroup.Group("/budgets")
		budgets.Use(authMiddleware.RequireAuth())
		{
			canReserve := authMiddleware.RequirePermission(auth.PermissionReserve)
			canConfirm := authMiddleware.RequirePermission(auth.PermissionConfirm)
			canRead := authMiddleware.RequirePermission(auth.PermissionRead)

			addRoutes(budgets, []route{
				{Method: http.MethodPost, Path: "/reservations", Handler: budgetHandler.Reserve, Mw: []gin.HandlerFunc{canReserve}},
				{Method: http.MethodPost, Path: "/confirmations", Handler: budgetHandler.Confirm, Mw: []gin.HandlerFunc{canConfirm}},
				{Method: http.MethodGet, Path: "/usages/:couponUserId", Handler: budgetHandler.GetUsage, Mw: []gin.HandlerFunc{canRead}},
				{Method: http.MethodGet, Path: "/:id", Handler: budgetHandler.GetBudget, Mw: []gin.HandlerFunc{canRead}},
				{Method: http.MethodGet, Path: "/:id/usages", Handler: budgetHandler.ListUsages, Mw: []gin.HandlerFunc{canRead}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
