package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ratewatch/rate-notifier/internal/adapters/database/pgsql"
	"github.com/ratewatch/rate-notifier/internal/adapters/nbu"
	"github.com/ratewatch/rate-notifier/internal/adapters/smtp"
	"github.com/ratewatch/rate-notifier/internal/core/services"
	"github.com/ratewatch/rate-notifier/internal/handlers"
	"github.com/ratewatch/rate-notifier/internal/middleware"
	"github.com/ratewatch/rate-notifier/internal/platform/metrics"
	"github.com/ratewatch/rate-notifier/internal/scheduler"
	"github.com/ratewatch/rate-notifier/pkg/config"
	"github.com/ratewatch/rate-notifier/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title RateWatch Notifier API
// @version 1.0
// @description Currency exchange rate synchronization and notification service.

// @host localhost:8080
// @BasePath /
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Wire leaf adapters
	rateRepo := pgsql.NewPgxExchangeRateRepository(dbPool)
	subscriptionRepo := pgsql.NewPgxSubscriptionRepository(dbPool)
	rateSource := nbu.NewClient(cfg.NBUAPIURL, cfg.FetchTimeout, logger)
	mailer := smtp.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, cfg.NotifyTimeout, logger)

	serviceContainer := services.NewServiceContainer(services.ContainerDeps{
		RateRepo:          rateRepo,
		SubscriptionRepo:  subscriptionRepo,
		RateSource:        rateSource,
		Notifier:          mailer,
		NotifyConcurrency: cfg.NotifyConcurrency,
		Logger:            logger,
	})

	// Start the sync scheduler: one cycle immediately, then on the configured interval.
	syncMetrics := metrics.NewSyncMetrics()
	syncScheduler := scheduler.NewSyncScheduler(
		serviceContainer.Rate,
		serviceContainer.Notification,
		cfg.SyncInterval,
		syncMetrics,
		logger,
	)

	schedulerCtx, stopScheduler := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopScheduler()
	go syncScheduler.Start(schedulerCtx)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations using a temporary
// database/sql connection compatible with the main pgx pool.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
