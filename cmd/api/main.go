package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billbook-api/internal/application/service"
	"github.com/sangkips/billbook-api/internal/config"
	"github.com/sangkips/billbook-api/internal/infrastructure/database"
	"github.com/sangkips/billbook-api/internal/infrastructure/repository"
	"github.com/sangkips/billbook-api/internal/presentation/http/handler"
	"github.com/sangkips/billbook-api/internal/presentation/http/middleware"
	"github.com/sangkips/billbook-api/internal/presentation/http/routes"
	"github.com/sangkips/billbook-api/pkg/logger"
	"github.com/sangkips/billbook-api/pkg/storagetime"
	"github.com/sangkips/billbook-api/pkg/utils"
	"github.com/shopspring/decimal"
)

func main() {
	// Load configuration
	cfg := config.Load()

	appLog, err := logger.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = appLog.Sync() }()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Amounts are rendered as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	clock, err := storagetime.NewFromString(cfg.Business.UTCOffset)
	if err != nil {
		appLog.Fatalw("invalid BUSINESS_UTC_OFFSET", "value", cfg.Business.UTCOffset, "error", err)
	}

	// Connect to database
	db, err := database.Open(&cfg.Database, cfg.App.Debug, appLog)
	if err != nil {
		appLog.Fatalw("failed to connect to database", "error", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db, appLog); err != nil {
		appLog.Fatalw("failed to run migrations", "error", err)
	}

	jwtManager := utils.NewJWTManager(cfg.Auth.Secret, cfg.Auth.ExpiryHours)

	// Initialize repositories
	billRepo := repository.NewBillRepository(db)
	sequencer := repository.NewInvoiceSequencer(db, billRepo)
	txManager := repository.NewTransactor(db, appLog)
	ledgerRepo := repository.NewLedgerRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	taxSettingsRepo := repository.NewTaxSettingsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	billService := service.NewBillService(billRepo, sequencer, txManager, clock, appLog.With("component", "bills"))
	catalogService := service.NewCatalogService(serviceRepo, appLog.With("component", "catalog"))
	dashboardService := service.NewDashboardService(ledgerRepo, serviceRepo, clock, appLog.With("component", "dashboard"))
	financeService := service.NewFinanceService(ledgerRepo, billRepo, expenseRepo, clock, appLog.With("component", "finance"))
	expenseService := service.NewExpenseService(expenseRepo, appLog.With("component", "expenses"))
	taxService := service.NewTaxService(taxSettingsRepo, appLog.With("component", "tax"))
	reportService := service.NewReportService(billRepo, clock, appLog.With("component", "reports"))

	// Initialize handlers
	handlers := &routes.Handlers{
		Bill:      handler.NewBillHandler(billService, catalogService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Finance:   handler.NewFinanceHandler(financeService),
		Expense:   handler.NewExpenseHandler(expenseService),
		Catalog:   handler.NewCatalogHandler(catalogService),
		Tax:       handler.NewTaxHandler(taxService),
		Report:    handler.NewReportHandler(reportService),
	}

	stop := make(chan struct{})
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfigFor(cfg.RateLimit.Requests, cfg.RateLimit.Duration))
	go rateLimiter.Run(stop)

	idempotency := middleware.IdempotencyConfig{Repo: idempotencyRepo, Logger: appLog.With("component", "idempotency")}
	go middleware.SweepIdempotencyKeys(idempotency, time.Hour, stop)

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:  jwtManager,
		Cfg:         cfg,
		Logger:      appLog,
		RateLimiter: rateLimiter,
		Idempotency: idempotency,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLog.Infow("starting server",
			"service", cfg.App.Name,
			"port", port,
			"env", cfg.App.Env,
			"utc_offset", clock.Offset().String(),
			"auth_enabled", cfg.Auth.Enabled,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatalw("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info("shutting down server")
	close(stop)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLog.Errorw("server forced to shutdown", "error", err)
	}
}
