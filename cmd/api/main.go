package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/member-directory/internal/api/http"
	"github.com/spec-kit/member-directory/internal/api/http/handlers"
	"github.com/spec-kit/member-directory/internal/auth"
	"github.com/spec-kit/member-directory/internal/authstate"
	"github.com/spec-kit/member-directory/internal/config"
	"github.com/spec-kit/member-directory/internal/domain"
	"github.com/spec-kit/member-directory/internal/events"
	"github.com/spec-kit/member-directory/internal/observability"
	"github.com/spec-kit/member-directory/internal/persistence"
	"github.com/spec-kit/member-directory/internal/repository"
	"github.com/spec-kit/member-directory/internal/service"
	"github.com/spec-kit/member-directory/internal/session"
	"github.com/spec-kit/member-directory/internal/worker"
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
	accountRepo := repository.NewAccountRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)
	announcementRepo := repository.NewAnnouncementRepository(pool)
	countryRepo := repository.NewCountryRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	store := session.NewRedisStore(redis.Client, accountRepo, roleRepo, dispatcher, session.Options{
		SessionTTL:  cfg.Auth.SessionTTL(),
		BcryptCost:  cfg.Auth.BcryptCost,
		DefaultRole: domain.RoleBasic,
	}, logger)

	resolver := authstate.NewRepositoryResolver(profileRepo, roleRepo)
	tracker := authstate.New(store, resolver, logger)
	if err := tracker.Start(ctx); err != nil {
		logger.Fatal("failed to start auth state tracker", zap.Error(err))
	}
	defer tracker.Close()

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewMiddleware(tokenManager, tracker)

	accountService := service.NewAccountService(cfg.Auth, accountRepo, resetRepo)
	profileService := service.NewProfileService(profileRepo)
	directoryService := service.NewDirectoryService(profileRepo, roleRepo, countryRepo)
	announcementService := service.NewAnnouncementService(announcementRepo, dispatcher)
	adminService := service.NewAdminService(profileRepo, announcementRepo, dispatcher)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)

	worker.StartNotificationWorker(notificationService)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Config:         cfg,
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(tracker, store, tokenManager, accountService),
		Profile:        handlers.NewProfileHandler(profileService, tracker),
		Directory:      handlers.NewDirectoryHandler(directoryService),
		Announcements:  handlers.NewAnnouncementsHandler(announcementService),
		Admin:          handlers.NewAdminHandler(adminService),
		AuthMiddleware: authMiddleware,
		Metrics:        metrics,
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
