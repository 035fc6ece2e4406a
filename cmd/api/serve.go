package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/jobboard/internal/api/http"
	"github.com/spec-kit/jobboard/internal/api/http/handlers"
	"github.com/spec-kit/jobboard/internal/auth"
	"github.com/spec-kit/jobboard/internal/cache"
	"github.com/spec-kit/jobboard/internal/config"
	"github.com/spec-kit/jobboard/internal/events"
	"github.com/spec-kit/jobboard/internal/observability"
	"github.com/spec-kit/jobboard/internal/persistence"
	"github.com/spec-kit/jobboard/internal/repository"
	"github.com/spec-kit/jobboard/internal/service"
	"github.com/spec-kit/jobboard/internal/worker"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return serve(cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(cfg *config.Config) error {
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	volunteerRepo := repository.NewVolunteerRepository(pool)
	companyRepo := repository.NewCompanyRepository(pool)
	jobRepo := repository.NewJobRepository(pool)
	applicationRepo := repository.NewJobApplicationRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	notifier := worker.NewNotificationWorker(
		service.NewNotificationService(logger, cfg.Notification),
		logger,
		cfg.Notification.QueueSize,
	)
	notifier.Subscribe(dispatcher)
	notifier.Start(ctx)
	defer notifier.Stop()

	authService := service.NewAuthService(service.AuthDependencies{
		VolunteerRepo: volunteerRepo,
		CompanyRepo:   companyRepo,
		TokenManager:  tokens,
		BcryptCost:    cfg.Auth.BcryptCost,
	})
	jobService := service.NewJobService(service.JobDependencies{
		JobRepo:         jobRepo,
		ApplicationRepo: applicationRepo,
		Cache:           cache.NewJobListCache(redis.Handle(), cfg.Cache.JobListTTL()),
		Dispatcher:      dispatcher,
		Logger:          logger,
	})
	applicationService := service.NewApplicationService(service.ApplicationDependencies{
		ApplicationRepo: applicationRepo,
		JobRepo:         jobRepo,
		VolunteerRepo:   volunteerRepo,
		Dispatcher:      dispatcher,
		Logger:          logger,
	})

	probes := map[string]handlers.Pinger{"postgres": pg}
	if redis.Handle() != nil {
		probes["redis"] = redis
	}

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler(logger, metrics),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, probes, logger),
		Metrics:        handlers.NewMetricsHandler(metrics),
		Auth:           handlers.NewAuthHandler(authService, auth.NewCookieIssuer(cfg.Cookie)),
		Join:           handlers.NewJoinHandler(authService),
		Jobs:           handlers.NewJobsHandler(jobService),
		Applications:   handlers.NewApplicationsHandler(applicationService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager()),
	})

	listenErr := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		listenErr <- app.Listen(cfg.App.Addr())
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-listenErr:
		if err != nil {
			return fmt.Errorf("fiber listen: %w", err)
		}
	}

	return app.Shutdown()
}
