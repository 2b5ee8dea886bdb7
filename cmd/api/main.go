package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ticket-dashboard/internal/api/http"
	"github.com/spec-kit/ticket-dashboard/internal/api/http/handlers"
	"github.com/spec-kit/ticket-dashboard/internal/config"
	"github.com/spec-kit/ticket-dashboard/internal/events"
	"github.com/spec-kit/ticket-dashboard/internal/observability"
	"github.com/spec-kit/ticket-dashboard/internal/persistence"
	"github.com/spec-kit/ticket-dashboard/internal/service"
	"github.com/spec-kit/ticket-dashboard/internal/store"
	"github.com/spec-kit/ticket-dashboard/internal/tracker"
	"github.com/spec-kit/ticket-dashboard/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck
	zap.ReplaceGlobals(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	snapshotRepo := store.NewSnapshotRepository(pool)
	notificationRepo := store.NewNotificationRepository(pool)
	snapshotCache := store.NewSnapshotCache(redis.Client, cfg.Dashboard.CacheTTL())

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	trackerClient := tracker.NewClient(cfg.Tracker, logger)

	dashboardService := service.NewDashboardService(service.DashboardDependencies{
		SnapshotRepo: snapshotRepo,
		Cache:        snapshotCache,
		Tracker:      trackerClient,
		TrackerCfg:   cfg.Tracker,
		Dispatcher:   dispatcher,
		Metrics:      metrics,
		Logger:       logger,
		PageSize:     cfg.Dashboard.PageSize,
	})
	notificationService := service.NewNotificationService(notificationRepo, dispatcher, logger)

	if err := dashboardService.Load(ctx); err != nil {
		logger.Warn("initial dataset load failed", zap.Error(err))
	}
	worker.StartRefreshWorker(ctx, dashboardService, cfg.Dashboard.RefreshInterval(), logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:        handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Dashboard:     handlers.NewDashboardHandler(dashboardService),
		Imports:       handlers.NewImportsHandler(dashboardService),
		Tickets:       handlers.NewTicketsHandler(dashboardService),
		Notifications: handlers.NewNotificationsHandler(notificationService),
		Relay:         handlers.NewRelayHandler(cfg.Tracker),
		APIKey:        cfg.Dashboard.APIKey,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
