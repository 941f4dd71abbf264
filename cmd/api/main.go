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

	httptransport "github.com/spec-kit/job-portal/internal/api/http"
	"github.com/spec-kit/job-portal/internal/api/http/handlers"
	"github.com/spec-kit/job-portal/internal/auth"
	"github.com/spec-kit/job-portal/internal/config"
	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/events"
	"github.com/spec-kit/job-portal/internal/notify"
	"github.com/spec-kit/job-portal/internal/observability"
	"github.com/spec-kit/job-portal/internal/persistence"
	"github.com/spec-kit/job-portal/internal/repository"
	"github.com/spec-kit/job-portal/internal/repository/memory"
	"github.com/spec-kit/job-portal/internal/service"
	"github.com/spec-kit/job-portal/internal/validation"
	"github.com/spec-kit/job-portal/internal/worker"
)

type repositories struct {
	users         repository.UserRepository
	profiles      repository.ProfileRepository
	jobs          repository.JobRepository
	applications  repository.ApplicationRepository
	notifications repository.NotificationRepository
}

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

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	rdb := persistence.NewRedis(ctx, cfg.Redis, cfg.App.Name, logger)
	defer rdb.Close()

	repos := buildRepositories(pg, logger)

	var (
		revocations auth.RevocationStore = auth.NoopRevocationStore{}
		publisher   notify.Publisher     = notify.NoopPublisher{}
	)
	if rdb.Enabled() {
		revocations = auth.NewRedisRevocationStore(rdb.Client)
		publisher = notify.NewRedisPublisher(rdb.Client, cfg.Notification.ChannelPrefix)
	}

	var policy domain.TransitionPolicy = domain.FlatTransitions{}
	if cfg.Applications.StrictTransitions {
		policy = domain.StrictTransitions{}
	}

	dispatcher := events.NewInMemoryDispatcher(logger)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:     repos.users,
		ProfileRepo:  repos.profiles,
		TokenManager: tokens,
		Revocations:  revocations,
	})
	profileService := service.NewProfileService(service.ProfileDependencies{
		UserRepo:    repos.users,
		ProfileRepo: repos.profiles,
	})
	jobService := service.NewJobService(service.JobDependencies{JobRepo: repos.jobs})
	applicationService := service.NewApplicationService(service.ApplicationDependencies{
		ApplicationRepo: repos.applications,
		JobRepo:         repos.jobs,
		Dispatcher:      dispatcher,
		Policy:          policy,
	})
	dashboardService := service.NewDashboardService(service.DashboardDependencies{
		ApplicationRepo: repos.applications,
		JobRepo:         repos.jobs,
		ProfileRepo:     repos.profiles,
		RecentLimit:     cfg.Applications.RecentLimit,
	})
	statsService := service.NewStatsService(repos.jobs, repos.users, repos.applications)
	notificationService := service.NewNotificationService(service.NotificationDependencies{
		Dispatcher:       dispatcher,
		NotificationRepo: repos.notifications,
		UserRepo:         repos.users,
		Publisher:        publisher,
		Mailer:           notify.NewMailer(cfg.SMTP, cfg.Notification.EmailFrom),
		Logger:           logger,
	})
	worker.StartNotificationWorker(notificationService, logger)

	authMiddleware := auth.NewAuthMiddleware(tokens, repos.users, revocations)
	validator := validation.New()
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: !cfg.App.IsDevelopment(),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.App.IsDevelopment())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    rdb,
		}, metrics),
		Auth:           handlers.NewAuthHandler(authService, validator),
		Profiles:       handlers.NewProfileHandler(profileService, validator),
		Jobs:           handlers.NewJobsHandler(jobService, validator),
		Applications:   handlers.NewApplicationsHandler(applicationService, validator),
		Dashboards:     handlers.NewDashboardHandler(dashboardService, statsService),
		Notifications:  handlers.NewNotificationsHandler(notificationService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

// buildRepositories selects Postgres when a pool is configured and the
// in-process store otherwise.
func buildRepositories(pg *persistence.Postgres, logger *zap.Logger) repositories {
	if pg.Enabled() {
		pool := pg.PoolHandle()
		return repositories{
			users:         repository.NewUserRepository(pool),
			profiles:      repository.NewProfileRepository(pool),
			jobs:          repository.NewJobRepository(pool),
			applications:  repository.NewApplicationRepository(pool),
			notifications: repository.NewNotificationRepository(pool),
		}
	}

	logger.Warn("using in-memory storage; data is lost on restart")
	store := memory.NewStore()
	return repositories{
		users:         store.Users(),
		profiles:      store.Profiles(),
		jobs:          store.Jobs(),
		applications:  store.Applications(),
		notifications: store.Notifications(),
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
