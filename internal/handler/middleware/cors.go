package middleware

import (
	"log/slog"
	"slices"

	"coupon-budget-service/internal/handler/httperr"
	"coupon-budget-service/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware always allows and exposes the request id header so browsers can correlate logs.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowHeaders := slices.Clone(cfg.AllowHeaders)
	if !slices.Contains(allowHeaders, httperr.HeaderRequestID) {
		allowHeaders = append(allowHeaders, httperr.HeaderRequestID)
	}
	exposeHeaders := slices.Clone(cfg.ExposeHeaders)
	if !slices.Contains(exposeHeaders, httperr.HeaderRequestID) {
		exposeHeaders = append(exposeHeaders, httperr.HeaderRequestID)
	}

	slog.Info("CORS middleware initialized",
		"allow_origins", cfg.AllowOrigins,
		"allow_headers", allowHeaders,
		"expose_headers", exposeHeaders)

	return cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     allowHeaders,
		ExposeHeaders:    exposeHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}
