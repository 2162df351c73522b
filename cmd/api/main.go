package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/doutly/doutly-service/internal/api/http"
	"github.com/doutly/doutly-service/internal/api/http/handlers"
	"github.com/doutly/doutly-service/internal/auth"
	"github.com/doutly/doutly-service/internal/config"
	"github.com/doutly/doutly-service/internal/events"
	"github.com/doutly/doutly-service/internal/observability"
	"github.com/doutly/doutly-service/internal/persistence"
	"github.com/doutly/doutly-service/internal/repository"
	"github.com/doutly/doutly-service/internal/service"
	"github.com/doutly/doutly-service/internal/worker"
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
	userRepo := repository.NewUserRepository(pool)
	doubtRepo := repository.NewDoubtRepository(pool)
	leadRepo := repository.NewLeadRepository(pool)
	teamRepo := repository.NewTeamRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, userRepo)
	doubtService := service.NewDoubtService(service.DoubtDependencies{
		DoubtRepo:  doubtRepo,
		Dispatcher: dispatcher,
	})
	leadService := service.NewLeadService(service.LeadDependencies{
		LeadRepo:   leadRepo,
		Dispatcher: dispatcher,
	})
	teamService := service.NewTeamService(teamRepo)
	profileService := service.NewProfileService(profileRepo, doubtRepo)
	eventService := service.NewEventService(eventRepo, profileRepo, logger)
	projectService := service.NewProjectService(projectRepo, profileRepo, logger)
	dashboardService := service.NewDashboardService(service.DashboardDependencies{
		LeadRepo:  leadRepo,
		DoubtRepo: doubtRepo,
		Cache:     redis,
		CacheTTL:  cfg.Dashboard.CacheTTL(),
		Logger:    logger,
	})
	notificationService := service.NewNotificationService(dispatcher, notificationRepo, logger, cfg.Notification)

	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New()
	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Doubts:         handlers.NewDoubtsHandler(doubtService),
		Leads:          handlers.NewLeadsHandler(leadService),
		Teams:          handlers.NewTeamsHandler(teamService),
		Profile:        handlers.NewProfileHandler(profileService),
		Events:         handlers.NewEventsHandler(eventService),
		Projects:       handlers.NewProjectsHandler(projectService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService),
		Notifications:  handlers.NewNotificationsHandler(notificationService),
		AuthMiddleware: authMiddleware,
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
