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
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/inventory/backend/docs"
	catalogapp "github.com/inventory/backend/internal/application/catalog"
	dashboardapp "github.com/inventory/backend/internal/application/dashboard"
	identityapp "github.com/inventory/backend/internal/application/identity"
	inventoryapp "github.com/inventory/backend/internal/application/inventory"
	issuanceapp "github.com/inventory/backend/internal/application/issuance"
	labelsapp "github.com/inventory/backend/internal/application/labels"
	systemapp "github.com/inventory/backend/internal/application/system"
	"github.com/inventory/backend/internal/domain/system"
	"github.com/inventory/backend/internal/infrastructure/auth"
	"github.com/inventory/backend/internal/infrastructure/cache"
	"github.com/inventory/backend/internal/infrastructure/config"
	"github.com/inventory/backend/internal/infrastructure/event"
	"github.com/inventory/backend/internal/infrastructure/logger"
	"github.com/inventory/backend/internal/infrastructure/migration"
	"github.com/inventory/backend/internal/infrastructure/persistence"
	"github.com/inventory/backend/internal/infrastructure/printing"
	"github.com/inventory/backend/internal/infrastructure/scheduler"
	"github.com/inventory/backend/internal/infrastructure/storage"
	"github.com/inventory/backend/internal/infrastructure/telemetry"
	"github.com/inventory/backend/internal/interfaces/http/handler"
	"github.com/inventory/backend/internal/interfaces/http/middleware"
	"github.com/inventory/backend/internal/interfaces/http/router"
	"github.com/inventory/backend/migrations"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Inventory Admin API
//	@version		1.0
//	@description	Admin console API for items, stock locations, stock movements and issue documents.

//	@contact.name	API Support
//	@contact.url	https://github.com/inventory/backend

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

const shutdownTimeout = 30 * time.Second

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
		TimeFormat: logger.DefaultTimeFormat,
		InitialFields: map[string]any{
			"service": cfg.App.Name,
			"env":     cfg.App.Env,
		},
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serviceName := cfg.Telemetry.ServiceName
	if serviceName == "" {
		serviceName = cfg.App.Name
	}

	// Telemetry providers are no-ops when disabled
	collector := telemetry.Collector{
		Endpoint:       cfg.Telemetry.CollectorEndpoint,
		Insecure:       cfg.Telemetry.Insecure,
		ServiceName:    serviceName,
		ServiceVersion: cfg.App.Version,
	}
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:       cfg.Telemetry.Enabled,
		SamplingRatio: cfg.Telemetry.SamplingRatio,
		Collector:     collector,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:        cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		ExportInterval: cfg.Telemetry.MetricsInterval,
		Collector:      collector,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	logsProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:   cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		Collector: collector,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logs provider", zap.Error(err))
	}
	if logsProvider.IsEnabled() {
		log = logsProvider.Bridge(log, logger.ParseLevel(cfg.Log.Level))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := telemetry.ShutdownAll(shutdownCtx, tracerProvider, meterProvider, logsProvider); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilingEnabled,
		ServerAddress:   cfg.Telemetry.PyroscopeAddress,
		ApplicationName: serviceName,
	}, log)
	if err != nil {
		log.Warn("Profiler unavailable", zap.Error(err))
	} else {
		if profiler.IsEnabled() {
			tracerProvider.EnableSpanProfiles()
		}
		defer func() { _ = profiler.Stop() }()
	}

	log.Info("Starting inventory backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", cfg.App.Version),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("dialect", db.Dialect()))

	if err := migrateSchema(db, &cfg.Database, log); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}

	meter := meterProvider.Meter("inventory")
	if sqlDB, err := db.DB.DB(); err == nil {
		if err := telemetry.InstrumentDB(db.DB, sqlDB, meter, telemetry.DBInstrumentationConfig{
			TraceEnabled:    cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
			LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
			DBSystem:        db.Dialect(),
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		}, log); err != nil {
			log.Warn("Database instrumentation failed", zap.Error(err))
		}
	}

	// Cache and Redis
	appCache, redisClient, err := cache.NewFactory(cfg.Redis, cache.WithLogger(log)).Create()
	if err != nil {
		log.Fatal("Failed to initialize cache", zap.Error(err))
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	// Object storage; nil disables backups, image uploads and label archiving
	var s3Store *storage.S3ObjectStorage
	if cfg.Storage.Enabled {
		s3Store, err = storage.NewS3ObjectStorage(ctx, &cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3Store.EnsureBucket(ctx); err != nil {
			log.Warn("Object storage bucket check failed", zap.Error(err))
		}
	}

	// Repositories
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	unitRepo := persistence.NewGormUnitRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	locationRepo := persistence.NewGormLocationRepository(db.DB)
	levelRepo := persistence.NewGormStockLevelRepository(db.DB)
	txRepo := persistence.NewGormStockTransactionRepository(db.DB)
	issueRepo := persistence.NewGormIssueRepository(db.DB)
	lineRepo := persistence.NewGormIssueItemRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	settingsRepo := persistence.NewGormSettingsRepository(db.DB)

	// Identity
	blacklist := auth.NewTokenBlacklist(redisClient)
	jwtService := auth.NewJWTService(cfg.JWT)
	var directory identityapp.DirectoryVerifier
	if cfg.OIDC.Enabled {
		verifier, err := auth.NewOIDCVerifier(ctx, cfg.OIDC)
		if err != nil {
			log.Fatal("Failed to initialize OIDC verifier", zap.Error(err))
		}
		directory = verifier
		log.Info("Directory sign-in enabled", zap.String("tenant_id", cfg.OIDC.TenantID))
	}
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, directory, log)
	userService := identityapp.NewUserService(userRepo, blacklist, cfg.JWT.RefreshTokenExpiration, log)

	// Settings are read by most services, so they come first
	settingsService := systemapp.NewSettingsService(settingsRepo, appCache, cfg.Cache.SettingsTTL, log)

	var images catalogapp.ImageStorage
	var archive labelsapp.ArchiveStore
	var backups system.BackupStore
	if s3Store != nil {
		images, archive, backups = s3Store, s3Store, s3Store
	}

	categoryService := catalogapp.NewCategoryService(categoryRepo, itemRepo, log)
	unitService := catalogapp.NewUnitService(unitRepo, itemRepo, log)
	itemService := catalogapp.NewItemService(itemRepo, categoryRepo, unitRepo, userRepo, txRepo, levelRepo, lineRepo, images, log)
	locationService := inventoryapp.NewLocationService(locationRepo, levelRepo, txRepo, log)
	stockService := inventoryapp.NewStockService(itemRepo, locationRepo, levelRepo, txRepo,
		persistence.NewGormTransactionScope(db.DB), settingsService, log)
	issueService := issuanceapp.NewIssueService(issueRepo, lineRepo, userRepo, itemRepo, locationRepo,
		persistence.NewGormIssueTransactionScope(db.DB), settingsService, log)
	issueItemService := issuanceapp.NewIssueItemService(issueRepo, lineRepo, itemRepo,
		persistence.NewGormIssueTransactionScope(db.DB), log)
	dashboardService := dashboardapp.NewDashboardService(itemRepo, locationRepo, levelRepo, txRepo, userRepo, issueRepo,
		settingsService, appCache, cfg.Cache.DashboardTTL, log)

	// Label printing
	var builder *printing.LabelSheetBuilder
	var renderer printing.PDFRenderer
	if cfg.Printing.Enabled {
		chromeRenderer, err := printing.NewChromedpRenderer(&printing.ChromedpConfig{
			DefaultTimeout: cfg.Printing.Timeout,
			ExecPath:       cfg.Printing.ChromePath,
			NoSandbox:      true,
			MaxConcurrent:  cfg.Printing.MaxConcurrent,
			Logger:         log,
		})
		if err != nil {
			log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
		}
		defer func() { _ = chromeRenderer.Close() }()
		builder, err = printing.NewLabelSheetBuilder(printing.NewTemplateEngine(), printing.NewQREncoder(0))
		if err != nil {
			log.Fatal("Failed to compile label sheet template", zap.Error(err))
		}
		renderer = chromeRenderer
	}
	labelService := labelsapp.NewLabelService(itemRepo, builder, renderer, archive, log)

	// System
	backupPrefix := cfg.Backup.Prefix
	if backupPrefix == "" {
		backupPrefix = systemapp.DefaultBackupPrefix
	}
	backupService := systemapp.NewBackupService(persistence.NewGormBackupSource(db.DB), backups, settingsService,
		backupPrefix, cfg.App.Version, log)
	checks := dependencyChecks(db, redisClient, s3Store)
	infoService := systemapp.NewSystemInfoService(systemapp.AppInfo{
		Name:           cfg.App.Name,
		Version:        cfg.App.Version,
		Environment:    cfg.App.Env,
		DatabaseDriver: db.Dialect(),
	}, checks)

	// Domain events
	eventBus := event.NewInMemoryEventBus(log, event.WithAsyncDispatch(5*time.Second))
	thresholdHandler := inventoryapp.NewStockBelowThresholdHandler(appCache, settingsService, log, dashboardapp.SummaryCacheKey)
	eventBus.Subscribe(thresholdHandler, thresholdHandler.EventTypes()...)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()
	stockService.SetEventPublisher(eventBus)
	issueService.SetEventPublisher(eventBus)
	log.Info("Event handlers registered", zap.Strings("stock_threshold_events", thresholdHandler.EventTypes()))

	// Business metrics
	businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:  meter,
		Logger: log,
		LowStockProvider: telemetry.LowStockFunc(func(ctx context.Context) (int64, error) {
			settings, err := settingsService.Current(ctx)
			if err != nil {
				return 0, err
			}
			return levelRepo.CountBelowMinimum(ctx, settings.LowStockThreshold)
		}),
	})
	if err != nil {
		log.Warn("Business metrics unavailable", zap.Error(err))
	} else {
		stockService.SetMetrics(businessMetrics)
		issueService.SetMetrics(businessMetrics)
		labelService.SetMetrics(businessMetrics)
		if meterProvider.IsEnabled() {
			businessMetrics.StartPeriodicCollection(ctx, cfg.Telemetry.MetricsInterval)
			defer businessMetrics.Stop()
		}
	}

	// Auto backup
	if backups != nil && cfg.Backup.Interval > 0 {
		schedCfg := scheduler.DefaultConfig()
		schedCfg.Interval = cfg.Backup.Interval
		backupScheduler, err := scheduler.NewScheduler(schedCfg, backupService.RunScheduled, log)
		if err != nil {
			log.Fatal("Failed to create backup scheduler", zap.Error(err))
		}
		if err := backupScheduler.Start(ctx); err != nil {
			log.Fatal("Failed to start backup scheduler", zap.Error(err))
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := backupScheduler.Stop(stopCtx); err != nil {
				log.Error("Error stopping backup scheduler", zap.Error(err))
			}
		}()
	}

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		middleware.Tracing(serviceName),
		middleware.SpanAttributes(),
		logger.AccessLog(log, "/health", "/health/ready"),
		middleware.HTTPMetrics(meter, log),
		middleware.Secure(),
		middleware.CORSWithConfig(corsCfg),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer limiter.Stop()
		engine.Use(middleware.RateLimit(limiter))
	}

	authenticate := middleware.Authenticate(authService, log)
	guards := router.Guards{Authenticate: authenticate}
	if cfg.HTTP.AuthRateLimitEnabled {
		loginLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		defer loginLimiter.Stop()
		guards.LoginLimit = middleware.AuthRateLimit(loginLimiter)
	}

	r := router.NewRouter(engine)
	router.RegisterAPI(r, router.Handlers{
		Auth:      handler.NewAuthHandler(authService, log),
		User:      handler.NewUserHandler(userService, log),
		Category:  handler.NewCategoryHandler(categoryService, log),
		Unit:      handler.NewUnitHandler(unitService, log),
		Item:      handler.NewItemHandler(itemService, log),
		Location:  handler.NewLocationHandler(locationService, log),
		Stock:     handler.NewStockHandler(stockService, log),
		Issue:     handler.NewIssueHandler(issueService, log),
		IssueItem: handler.NewIssueItemHandler(issueItemService, log),
		Label:     handler.NewLabelHandler(labelService, log),
		Dashboard: handler.NewDashboardHandler(dashboardService, log),
		System:    handler.NewSystemHandler(settingsService, backupService, infoService, log),
	}, guards)
	r.Setup()
	router.RegisterHealth(engine, handler.NewHealthHandler(cfg.App.Version, checks))

	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(cfg.Swagger, authenticate, middleware.RequireAdmin()),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	cancel()

	log.Info("Server exited gracefully")
}

// migrateSchema applies the versioned migrations on PostgreSQL and the entity
// mappings on SQLite. Nothing runs unless auto migration is enabled.
func migrateSchema(db *persistence.Database, cfg *config.DatabaseConfig, log *zap.Logger) error {
	if !cfg.AutoMigrate {
		return nil
	}
	if db.Dialect() != "postgres" {
		log.Info("Applying entity mappings", zap.String("dialect", db.Dialect()))
		return db.AutoMigrate()
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	m, err := migration.New(sqlDB, migration.Source{Dir: cfg.MigrationsPath, FS: migrations.FS}, log)
	if err != nil {
		return err
	}
	return m.Up()
}

// dependencyChecks probes the backing services for readiness and system info
func dependencyChecks(db *persistence.Database, client *redis.Client, store *storage.S3ObjectStorage) map[string]systemapp.DependencyCheck {
	checks := map[string]systemapp.DependencyCheck{
		"database": db.Ping,
		"redis":    nil,
		"storage":  nil,
	}
	if client != nil {
		checks["redis"] = func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}
	}
	if store != nil {
		checks["storage"] = store.Ping
	}
	return checks
}
