package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	syncapp "github.com/syncbridge/backend/internal/application/integration"
	"github.com/syncbridge/backend/internal/infrastructure/config"
	"github.com/syncbridge/backend/internal/infrastructure/logger"
	"github.com/syncbridge/backend/internal/infrastructure/magento"
	"github.com/syncbridge/backend/internal/infrastructure/odoo"
	"github.com/syncbridge/backend/internal/infrastructure/scheduler"
	"github.com/syncbridge/backend/internal/infrastructure/telemetry"
	"github.com/syncbridge/backend/internal/interfaces/http/handler"
	"github.com/syncbridge/backend/internal/interfaces/http/middleware"
	"github.com/syncbridge/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting sync bridge",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		_ = tracerProvider.Shutdown(context.Background())
	}()

	// Initialize remote clients
	odooClient, err := odoo.NewClient(&odoo.Config{
		Host:           cfg.Odoo.Host,
		Port:           cfg.Odoo.Port,
		Database:       cfg.Odoo.Database,
		Username:       cfg.Odoo.Username,
		Password:       cfg.Odoo.Password,
		UseTLS:         cfg.Odoo.UseTLS,
		TimeoutSeconds: cfg.Odoo.TimeoutSeconds,
	}, log)
	if err != nil {
		log.Fatal("Invalid Odoo configuration", zap.Error(err))
	}

	magentoClient, err := magento.NewClient(&magento.Config{
		BaseURL:        cfg.Magento.BaseURL,
		Username:       cfg.Magento.Username,
		Password:       cfg.Magento.Password,
		TokenLifetime:  cfg.Magento.TokenLifetime,
		TimeoutSeconds: cfg.Magento.TimeoutSeconds,
		OrderPageSize:  cfg.Sync.OrderPageSize,
	}, log)
	if err != nil {
		log.Fatal("Invalid Magento configuration", zap.Error(err))
	}

	// Remote systems may be down at startup; operations reconnect lazily
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 10*time.Second)
	if err := odooClient.Connect(startupCtx); err != nil {
		log.Warn("Odoo not reachable at startup", zap.Error(err))
	}
	if err := magentoClient.Authenticate(startupCtx); err != nil {
		log.Warn("Magento not reachable at startup", zap.Error(err))
	}
	cancelStartup()

	// Initialize application services
	productSync := syncapp.NewProductSyncService(odooClient, magentoClient, log,
		cfg.Sync.Throttle, cfg.Sync.ProductLimit)
	orderSync := syncapp.NewOrderSyncService(odooClient, magentoClient, log,
		cfg.Sync.Throttle)

	// Periodic auto-sync (disabled by default)
	var syncScheduler *scheduler.Scheduler
	if cfg.Sync.AutoSync {
		executor := scheduler.NewSyncExecutor(productSync, orderSync, log)
		syncScheduler = scheduler.NewScheduler(scheduler.Config{
			Enabled:  true,
			Interval: cfg.Sync.AutoSyncInterval,
		}, executor, log)
		if err := syncScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start sync scheduler", zap.Error(err))
		}
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Tracing - Create server spans
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Register routes
	router.NewRouter(engine).
		Register(handler.NewSystemHandler(odooClient, magentoClient, log)).
		Register(handler.NewSyncHandler(productSync, orderSync, log)).
		Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if syncScheduler != nil {
		if err := syncScheduler.Stop(ctx); err != nil {
			log.Error("Sync scheduler shutdown error", zap.Error(err))
		}
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
