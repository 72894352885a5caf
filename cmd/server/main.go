package main

import (
	"os"
	"os/signal"
	"syscall"

	"bms-backend/internal/adapters/http/middleware"
	"bms-backend/internal/adapters/http/routes"
	"bms-backend/internal/adapters/payment"
	"bms-backend/internal/adapters/persistence/models"
	"bms-backend/internal/config"
	"bms-backend/internal/core/services"
	"bms-backend/internal/pkg/logger"
	"bms-backend/internal/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	_ "bms-backend/docs" // Swagger docs
)

// @title Building Management API
// @version 1.0
// @description Building management backend: applications, members, payments and catalog.

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Logger.Fatalf("failed to load configuration: %v", err)
	}
	logger.Init("bms-backend", cfg.LogLevel)

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		logger.Logger.Fatalf("failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(db); err != nil {
		logger.Logger.Fatalf("failed to auto migrate: %v", err)
	}
	logger.Logger.Info("database migration completed")

	if err := config.NewSeeder(db, cfg.Seed).Run(); err != nil {
		logger.Logger.Warnf("seeding failed: %v", err)
	}

	// Metrics registry
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(reg)
	metricsHandler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})

	processor := payment.NewStripeProcessor(cfg.Payment.StripeSecretKey)
	deps := routes.NewDependencies(db, cfg, collector, processor, metricsHandler)

	// Coupon sweep and backlog report
	cronService := services.NewCronService(deps.Catalog, deps.Applications, cfg.Jobs.CouponSweepSchedule)
	if err := cronService.Start(); err != nil {
		logger.Logger.Fatalf("failed to start scheduler: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      "BMS API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	middleware.Setup(app, cfg, collector)
	routes.Setup(app, deps)

	go gracefulShutdown(app, cronService, db)

	logger.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"mode": cfg.AppMode,
	}).Info("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Logger.Fatalf("failed to start server: %v", err)
	}
}

// gracefulShutdown stops accepting requests, then the scheduler, then the store
func gracefulShutdown(app *fiber.App, cronService *services.CronService, db *gorm.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		logger.Logger.Errorf("error during shutdown: %v", err)
	}

	cronService.Stop()

	if err := config.CloseDatabase(db); err != nil {
		logger.Logger.Errorf("error closing database: %v", err)
	}
	logger.Logger.Info("server stopped gracefully")
}
