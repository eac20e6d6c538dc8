package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	_ "github.com/retailpos/backend/docs"
	catalogapp "github.com/retailpos/backend/internal/application/catalog"
	financeapp "github.com/retailpos/backend/internal/application/finance"
	identityapp "github.com/retailpos/backend/internal/application/identity"
	partnerapp "github.com/retailpos/backend/internal/application/partner"
	reportapp "github.com/retailpos/backend/internal/application/report"
	tradeapp "github.com/retailpos/backend/internal/application/trade"
	"github.com/retailpos/backend/internal/infrastructure/cache"
	"github.com/retailpos/backend/internal/infrastructure/config"
	"github.com/retailpos/backend/internal/infrastructure/logger"
	"github.com/retailpos/backend/internal/infrastructure/migration"
	"github.com/retailpos/backend/internal/infrastructure/persistence"
	"github.com/retailpos/backend/internal/infrastructure/storage"
	"github.com/retailpos/backend/internal/infrastructure/telemetry"
	"github.com/retailpos/backend/internal/interfaces/http/handler"
	"github.com/retailpos/backend/internal/interfaces/http/middleware"
	"github.com/retailpos/backend/internal/interfaces/http/router"
	"github.com/retailpos/backend/migrations"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			Retail POS API
//	@version		1.0
//	@description	Back office API for a retail point of sale: catalog, customers, staff, suppliers, sales, payments and reports.

//	@contact.name	API Support
//	@contact.url	https://github.com/retailpos/backend

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@externalDocs.description	OpenAPI
//	@externalDocs.url			https://swagger.io/resources/open-api/

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	// Telemetry providers come first so the logger can be rebuilt with the OTLP bridge
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	if loggerProvider.IsEnabled() {
		log, err = logger.New(logCfg, loggerProvider.ZapCore(logger.ParseLevel(cfg.Log.Level)))
		if err != nil {
			panic("Failed to initialize logger: " + err.Error())
		}
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	profiler, err := telemetry.NewProfiler(cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	log.Info("Starting Retail POS backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Database with a zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
	)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := runMigrations(&cfg.Database, log); err != nil {
		log.Fatal("Failed to apply migrations", zap.Error(err))
	}

	if err := telemetry.RegisterDBTracing(db.DB, cfg.Telemetry, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	meter := meterProvider.Meter("github.com/retailpos/backend")
	var dbMetrics *telemetry.DBMetrics
	if meterProvider.IsEnabled() {
		dbMetrics, err = telemetry.RegisterDBMetrics(db.DB, meter, cfg.Telemetry.DBSlowQueryThresh, log)
		if err != nil {
			log.Fatal("Failed to register database metrics", zap.Error(err))
		}
	}

	// Report cache: Redis when configured, process memory otherwise
	reportCache, err := cache.NewReportCacheFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(true),
	).CreateCache(ctx)
	if err != nil {
		log.Fatal("Failed to create report cache", zap.Error(err))
	}
	defer func() {
		if err := reportCache.Close(); err != nil {
			log.Error("Error closing report cache", zap.Error(err))
		}
	}()

	imageUploader, err := storage.NewImageUploader(ctx, &cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize image uploader", zap.Error(err))
	}

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	staffRepo := persistence.NewGormStaffRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	reportQueryRepo := persistence.NewGormReportQueryRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Report service listens to payments so its cache never outlives a sale
	var reportOpts []reportapp.Option
	if cfg.Report.CacheEnabled {
		reportOpts = append(reportOpts, reportapp.WithCache(reportCache, cfg.Report.CacheTTL))
	}
	reportService := reportapp.NewReportService(reportQueryRepo, saleRepo, log, reportOpts...)

	paymentMetrics, err := telemetry.NewPaymentMetrics(meter, reportQueryRepo, log)
	if err != nil {
		log.Fatal("Failed to register payment metrics", zap.Error(err))
	}

	// Initialize application services
	paymentProcessor := tradeapp.NewPaymentProcessor(txScope, saleRepo, log,
		tradeapp.WithPaymentListener(reportService),
		tradeapp.WithPaymentListener(paymentMetrics),
	)
	productService := catalogapp.NewProductService(productRepo, imageUploader, log)
	customerService := partnerapp.NewCustomerService(customerRepo, log)
	supplierService := partnerapp.NewSupplierService(supplierRepo, log)
	staffService := identityapp.NewStaffService(staffRepo, log)
	saleService := tradeapp.NewSaleService(saleRepo, productRepo, customerRepo, paymentProcessor, log)
	paymentService := financeapp.NewPaymentService(paymentRepo, customerRepo, log)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Product:  handler.NewProductHandler(productService),
		Customer: handler.NewCustomerHandler(customerService),
		Staff:    handler.NewStaffHandler(staffService),
		Supplier: handler.NewSupplierHandler(supplierService),
		Sale:     handler.NewSaleHandler(saleService),
		Payment:  handler.NewPaymentHandler(paymentService),
		Report:   handler.NewReportHandler(reportService),
		System:   handler.NewSystemHandler(cfg.App.Name, version, db),
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. Recovery - Catch panics
	// 2. RequestID - Generate/propagate request ID
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. RateLimit - Apply rate limiting (if enabled)
	// 8. Tracing - Server spans, request ID and error status on the span
	// 9. Profiling - Pyroscope labels per route
	// 10. Metrics - Prometheus request counters (if enabled)
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure(middleware.DefaultSecurityConfig()))
	engine.Use(middleware.CORS(cfg.HTTP))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	var rateLimiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName, cfg.Telemetry.Enabled))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.Profiling(profiler.IsEnabled()))

	if cfg.HTTP.MetricsEnabled {
		httpMetrics := middleware.NewHTTPMetrics("pos")
		engine.Use(httpMetrics.Middleware())
		engine.GET("/metrics", gin.WrapH(httpMetrics.Handler()))
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", handlers.System.Health)

	// Swagger documentation endpoint
	if cfg.Swagger.Enabled {
		engine.GET("/swagger/*any",
			middleware.SwaggerProtection(cfg.Swagger.Enabled, cfg.Swagger.AllowedIPs),
			ginSwagger.WrapHandler(swaggerFiles.Handler),
		)
	}

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(router.APIGroups(handlers)...).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

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

	shutdownTimeout := cfg.HTTP.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	if rateLimiter != nil {
		rateLimiter.Stop()
	}
	if err := paymentMetrics.Stop(); err != nil {
		log.Warn("Failed to stop payment metrics", zap.Error(err))
	}
	if dbMetrics != nil {
		if err := dbMetrics.Stop(); err != nil {
			log.Warn("Failed to stop database metrics", zap.Error(err))
		}
	}
	if err := profiler.Stop(); err != nil {
		log.Warn("Failed to stop profiler", zap.Error(err))
	}
	if err := telemetry.Shutdown(shutdownCtx, tracerProvider, meterProvider, loggerProvider); err != nil {
		log.Warn("Telemetry shutdown incomplete", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// runMigrations brings the schema up to date from the embedded migrations.
// It uses its own connection since closing the migrator closes the pool.
func runMigrations(cfg *config.DatabaseConfig, log *zap.Logger) error {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	migrator, err := migration.NewFromFS(db, migrations.FS, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := migrator.Close(); err != nil {
			log.Warn("Failed to close migrator", zap.Error(err))
		}
	}()
	return migrator.Up()
}
