package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/erp/orderbridge/docs"
	appintegration "github.com/erp/orderbridge/internal/application/integration"
	"github.com/erp/orderbridge/internal/domain/integration"
	"github.com/erp/orderbridge/internal/domain/shared"
	"github.com/erp/orderbridge/internal/infrastructure/cache"
	"github.com/erp/orderbridge/internal/infrastructure/config"
	"github.com/erp/orderbridge/internal/infrastructure/ecommerce"
	"github.com/erp/orderbridge/internal/infrastructure/logger"
	"github.com/erp/orderbridge/internal/infrastructure/metrics"
	"github.com/erp/orderbridge/internal/infrastructure/persistence"
	"github.com/erp/orderbridge/internal/infrastructure/storage"
	"github.com/erp/orderbridge/internal/infrastructure/telemetry"
	"github.com/erp/orderbridge/internal/infrastructure/transport"
	"github.com/erp/orderbridge/internal/infrastructure/validation"
	"github.com/erp/orderbridge/internal/interfaces/http/handler"
	"github.com/erp/orderbridge/internal/interfaces/http/middleware"
	"github.com/erp/orderbridge/internal/interfaces/http/router"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			Order Bridge API
//	@version		1.0
//	@description	Places marketplace orders on Shopify storefronts and reports their status, refunds and sync history back.
//
//	@BasePath	/
//
//	@securityDefinitions.apikey	StoreID
//	@in							header
//	@name						store-id
//	@description				Storefront identifier
//
//	@securityDefinitions.apikey	StoreToken
//	@in							header
//	@name						token
//	@description				Storefront access token
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
		Service:    cfg.App.Name,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting order bridge",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	ctx := context.Background()

	// Tracing
	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.App.Name,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// OTLP log export mirrors zap output once the provider is up
	lp, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.App.Name,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	if lp.IsEnabled() {
		level, err := logger.ParseLevel(cfg.Log.Level)
		if err != nil {
			log.Fatal("Invalid log level", zap.Error(err))
		}
		log = logger.Tee(log, telemetry.NewZapCore(lp.Provider(), cfg.App.Name, level))
	}
	defer func() {
		if err := lp.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down logger provider", zap.Error(err))
		}
	}()

	// Continuous profiling
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Profiling.Enabled,
		ServerAddress:     cfg.Profiling.ServerAddress,
		ApplicationName:   cfg.App.Name,
		BasicAuthUser:     cfg.Profiling.BasicAuthUser,
		BasicAuthPassword: cfg.Profiling.BasicAuthPassword,
		ProfileTypes:      cfg.Profiling.ProfileTypes,
		Tags:              map[string]string{"env": cfg.App.Env, "version": version},
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()
	if cfg.Profiling.SpanProfiles && profiler.IsEnabled() {
		tp.EnableSpanProfiles()
	}

	registry := metrics.NewRegistry()
	checks := map[string]handler.Pinger{}

	// Channel side: one transport shared by every storefront adapter
	httpTransport := transport.NewHTTPTransport(
		transport.Config{TimeoutSeconds: cfg.Shopify.TimeoutSeconds},
		transport.WithLogger(log),
		transport.WithObserver(registry),
	)
	channels, err := ecommerce.NewShopifyChannelFactory(&ecommerce.ShopifyConfig{
		APIVersion:        cfg.Shopify.APIVersion,
		BaseURLTemplate:   cfg.Shopify.BaseURLTemplate,
		TimeoutSeconds:    cfg.Shopify.TimeoutSeconds,
		PageSize:          cfg.Shopify.PageSize,
		RefundPageCeiling: cfg.Shopify.MaxPages,
		OrderPageCeiling:  cfg.Shopify.MaxPages,
		MaxStatusIDs:      cfg.Shopify.MaxStatusIDs,
	}, httpTransport,
		ecommerce.WithLogger(log),
		ecommerce.WithPageRecorder(registry),
	)
	if err != nil {
		log.Fatal("Invalid Shopify configuration", zap.Error(err))
	}

	serviceOpts := []appintegration.ServiceOption{
		appintegration.WithLogger(log),
		appintegration.WithOutcomeRecorder(registry),
		appintegration.WithContextLogger(requestLogger),
	}

	// Duplicate suppression
	idempotencyStore, err := cache.NewIdempotencyStoreFactory(
		cfg.Idempotency, cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(true),
	).CreateStore(ctx)
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	if idempotencyStore != nil {
		defer func() {
			if err := idempotencyStore.Close(); err != nil {
				log.Error("Error closing idempotency store", zap.Error(err))
			}
		}()
		if p, ok := idempotencyStore.(handler.Pinger); ok {
			checks["redis"] = p
		}
		serviceOpts = append(serviceOpts, appintegration.WithIdempotency(idempotencyStore, shared.IdempotencyConfig{
			Enabled: cfg.Idempotency.Enabled,
			TTL:     cfg.Idempotency.TTL,
		}))
	}

	// Sync history
	if cfg.Database.Enabled {
		db, err := persistence.NewDatabase(&cfg.Database, log, cfg.Log.Level,
			persistence.WithTracing(telemetry.DBTracingConfig{
				Enabled:    cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
				LogFullSQL: cfg.Telemetry.DBLogFullSQL,
			}),
		)
		if err != nil {
			log.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Error closing database", zap.Error(err))
			}
		}()
		if err := db.Migrate(); err != nil {
			log.Fatal("Failed to migrate database", zap.Error(err))
		}
		log.Info("Database connected successfully", zap.String("driver", cfg.Database.Driver))

		checks["database"] = db
		serviceOpts = append(serviceOpts, appintegration.WithSyncRepository(persistence.NewGormOrderSyncRecordRepository(db.DB)))
	}

	// Failed channel response archive
	var archive integration.ChannelResponseArchive = storage.NewDiscardArchive(log)
	if cfg.Storage.Enabled {
		s3Archive, err := storage.NewS3ChannelResponseArchive(ctx, &cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize response archive", zap.Error(err))
		}
		archive = s3Archive
	}
	serviceOpts = append(serviceOpts, appintegration.WithArchive(archive))

	bridgeService := appintegration.NewOrderBridgeService(channels, serviceOpts...)

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	var httpRecorder middleware.HTTPRecorder
	if cfg.Metrics.Enabled {
		httpRecorder = registry
	}
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.HTTPMetrics(httpRecorder),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	systemHandler := handler.NewSystemHandler(cfg.App.Name, version, checks)
	engine.GET("/healthz", systemHandler.Healthz)
	if cfg.Metrics.Enabled {
		engine.GET(cfg.Metrics.Path, gin.WrapH(registry.Handler()))
	}
	if cfg.Swagger.Enabled {
		engine.GET("/swagger/*any",
			middleware.SwaggerProtection(middleware.SwaggerConfig{
				Enabled:    cfg.Swagger.Enabled,
				AllowedIPs: cfg.Swagger.AllowedIPs,
			}),
			ginSwagger.WrapHandler(swaggerFiles.Handler),
		)
		log.Info("Swagger UI enabled", zap.Int("allowed_ips", len(cfg.Swagger.AllowedIPs)))
	}

	// store headers are only required on the bridge routes
	storeCfg := middleware.DefaultStoreConfig()
	storeCfg.Logger = log
	router.NewRouter(engine,
		router.WithTracing(middleware.TracingConfig{ServiceName: cfg.App.Name, Enabled: cfg.Telemetry.Enabled}),
		router.WithMiddleware(middleware.StoreCredentials(storeCfg)),
	).
		Register(handler.NewOrderBridgeHandler(bridgeService, validation.New())).
		Setup()

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// requestLogger returns the request-scoped logger placed on the context by
// the gin logging middleware, or nil so the service keeps its own.
func requestLogger(ctx context.Context) *zap.Logger {
	l, _ := logger.Lookup(ctx)
	return l
}
