package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/tax_compare_app/internal/adapters/exchangerates"
	portsrepo "github.com/SscSPs/tax_compare_app/internal/core/ports/repositories"
	"github.com/SscSPs/tax_compare_app/internal/core/services"
	"github.com/SscSPs/tax_compare_app/internal/handlers"
	"github.com/SscSPs/tax_compare_app/internal/middleware"
	"github.com/SscSPs/tax_compare_app/internal/platform/config"
	"github.com/SscSPs/tax_compare_app/internal/platform/logger"
	"github.com/SscSPs/tax_compare_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/tax_compare_app/internal/repositories/file"
	"github.com/SscSPs/tax_compare_app/internal/utils"
	"github.com/SscSPs/tax_compare_app/pkg/database"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 15 * time.Second

// @title Tax Compare API
// @version 1.0
// @description Compares progressive income tax schedules across countries.

// @host localhost:6000
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	schedules, err := file.LoadTaxSchedules(cfg.TaxesConfigPath)
	if err != nil {
		log.Error("Failed to load tax schedules", slog.String("path", cfg.TaxesConfigPath), slog.String("error", err.Error()))
		os.Exit(1)
	}
	log.Info("Tax schedules loaded", slog.String("path", cfg.TaxesConfigPath), slog.Int("countries", len(schedules)))

	var repos portsrepo.RepositoryProvider
	if cfg.DatabaseURL != "" {
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			log.Error("Failed to initialize database pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.ClosePgxPool(dbPool)

		log.Info("Running database migrations...")
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
			log.Error("Failed to run database migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		repos = pgsql.NewRepositoryProvider(dbPool)
	} else {
		repos.TaxScheduleRepo = file.NewTaxScheduleRepository(schedules)
	}
	repos.RateProvider = exchangerates.NewERAPIClient(cfg.ExchangeRateAPIURL, cfg.ExchangeRateTimeout)

	container, err := services.NewServiceContainer(cfg, repos)
	if err != nil {
		log.Error("Failed to build services", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.DatabaseURL != "" {
		added, err := container.TaxSchedule.SeedTaxSchedules(ctx, schedules)
		if err != nil {
			log.Error("Failed to seed tax schedules", slog.String("error", err.Error()))
			os.Exit(1)
		}
		log.Info("Tax schedules seeded", slog.Int("added", added))
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, log)
	defer posthogClient.Close()

	rateLimiter, err := middleware.NewMemoryLimiter(cfg.RateLimit)
	if err != nil {
		log.Error("Failed to configure rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(log),
		gin.Recovery(),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.PosthogMiddleware(posthogClient),
	)
	if err := r.SetTrustedProxies(nil); err != nil {
		log.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container, posthogClient, rateLimiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}
