package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/dreamhome-service/internal/api/http"
	"github.com/spec-kit/dreamhome-service/internal/api/http/handlers"
	"github.com/spec-kit/dreamhome-service/internal/auth"
	"github.com/spec-kit/dreamhome-service/internal/config"
	"github.com/spec-kit/dreamhome-service/internal/events"
	"github.com/spec-kit/dreamhome-service/internal/observability"
	"github.com/spec-kit/dreamhome-service/internal/persistence"
	"github.com/spec-kit/dreamhome-service/internal/repository"
	"github.com/spec-kit/dreamhome-service/internal/service"
	"github.com/spec-kit/dreamhome-service/internal/staffcache"
	"github.com/spec-kit/dreamhome-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations && pg.PoolHandle() != nil {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	exec := persistence.NewExecutor(persistence.NewConnPool(pg.PoolHandle()), logger)
	staffRepo := repository.NewStaffRepository(exec)
	branchRepo := repository.NewBranchRepository(exec)
	clientRepo := repository.NewClientRepository(exec)

	var cacheOpts []staffcache.Option
	if mirror := persistence.NewRedisStaffMirror(redis, cfg.Redis.MirrorKey); mirror != nil {
		cacheOpts = append(cacheOpts, staffcache.WithMirror(mirror))
	}
	staffCache := staffcache.New(staffRepo, logger.Named("staffcache"), cacheOpts...)
	// The service starts with an empty cache when the first load fails.
	if err := staffCache.Rebuild(ctx); err != nil {
		logger.Warn("initial staff cache load failed", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(logger.Named("notifications"), cfg.Notification)
	notifier := worker.NewNotificationWorker(notificationService, 256, logger.Named("notification-worker"))
	notifier.Subscribe(dispatcher, service.NotificationEvents...)
	notifier.Start(ctx)

	refresher := worker.NewCacheRefreshWorker(staffCache, cfg.Cache.RefreshInterval(), logger.Named("cache-refresh"))
	refresher.Start(ctx)

	staffService := service.NewStaffService(service.StaffDependencies{
		StaffRepo:  staffRepo,
		BranchRepo: branchRepo,
		Cache:      staffCache,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	branchService := service.NewBranchService(branchRepo, dispatcher, logger)
	clientService := service.NewClientService(clientRepo, dispatcher, logger)
	authService := service.NewAuthService(cfg.Auth)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager())

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	health := handlers.HealthDependencies{
		ServiceName: cfg.App.Name,
		Version:     cfg.App.Version,
		Postgres:    pg,
		Cache:       staffCache,
		Metrics:     metrics,
	}
	if redis.Enabled() {
		health.Redis = redis
	}

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:      handlers.NewHealthHandler(health),
		Auth:        handlers.NewAuthHandler(authService),
		Staff:       handlers.NewStaffHandler(staffService),
		Branch:      handlers.NewBranchHandler(branchService),
		Client:      handlers.NewClientHandler(clientService),
		WriteGuards: auth.WriteGuards(cfg.Auth.Required, authMiddleware),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()
	logger.Info("server started",
		zap.String("addr", cfg.App.Addr()),
		zap.Int("staff_cache_entries", staffCache.Len()),
		zap.Bool("auth_required", cfg.Auth.Required))

	waitForShutdown(logger)

	// In-flight requests drain before the workers stop.
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("fiber shutdown", zap.Error(err))
	}
	cancel()
	<-notifier.Done()
	if refresher != nil {
		<-refresher.Done()
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
