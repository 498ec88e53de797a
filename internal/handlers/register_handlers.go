package handlers

import (
	"github.com/SscSPs/tax_compare_app/cmd/docs"
	portssvc "github.com/SscSPs/tax_compare_app/internal/core/ports/services"
	"github.com/SscSPs/tax_compare_app/internal/middleware"
	"github.com/SscSPs/tax_compare_app/internal/platform/config"
	"github.com/SscSPs/tax_compare_app/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// rateLimiter may be nil to disable rate limiting.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
	rateLimiter *limiter.Limiter,
) {
	registerHomeRoutes(r)

	var public []gin.HandlerFunc
	if rateLimiter != nil {
		public = append(public, middleware.RateLimit(rateLimiter))
	}

	setupAPIV1Routes(r, cfg, services, posthogClient, public)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
	public []gin.HandlerFunc,
) {
	v1 := r.Group("/api/v1", public...)

	// Admin routes require a bearer token
	admin := v1.Group("/admin", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))

	registerTaxComparisonRoutes(r, v1, services.TaxComparison, posthogClient, public...)
	registerTaxScheduleRoutes(v1, admin, services.TaxSchedule)
	registerExchangeRateRoutes(v1, services.ExchangeRate)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
