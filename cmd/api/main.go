package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/tracker-service/internal/api/http"
	"github.com/spec-kit/tracker-service/internal/api/http/handlers"
	"github.com/spec-kit/tracker-service/internal/config"
	"github.com/spec-kit/tracker-service/internal/events"
	"github.com/spec-kit/tracker-service/internal/graphql"
	"github.com/spec-kit/tracker-service/internal/observability"
	"github.com/spec-kit/tracker-service/internal/persistence"
	"github.com/spec-kit/tracker-service/internal/presence"
	"github.com/spec-kit/tracker-service/internal/repository"
	"github.com/spec-kit/tracker-service/internal/repository/memory"
	"github.com/spec-kit/tracker-service/internal/service"
	"github.com/spec-kit/tracker-service/internal/storage"
	"github.com/spec-kit/tracker-service/internal/worker"
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

	pool := pg.PoolHandle()
	if pool != nil && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pool, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var (
		ticketRepo     repository.TicketRepository
		activityRepo   repository.ActivityRepository
		commentRepo    repository.CommentRepository
		userRepo       repository.UserRepository
		preferenceRepo repository.PreferenceRepository
	)
	if pool != nil {
		ticketRepo = repository.NewTicketRepository(pool)
		activityRepo = repository.NewActivityRepository(pool)
		commentRepo = repository.NewCommentRepository(pool)
		userRepo = repository.NewUserRepository(pool)
		preferenceRepo = repository.NewPreferenceRepository(redis.Client)
	} else {
		tickets := memory.NewTicketStore()
		comments := memory.NewCommentStore()
		users := memory.NewUserStore()
		memory.Seed(tickets, comments, users)
		ticketRepo = tickets
		activityRepo = memory.NewActivityStore()
		commentRepo = comments
		userRepo = users
		preferenceRepo = memory.NewPreferenceStore()
	}

	dispatcher := events.NewInMemoryDispatcher()
	presenceTracker := presence.NewTracker(redis.Client)
	gqlClient := graphql.NewClient(cfg.Hasura)
	if gqlClient == nil {
		logger.Warn("HASURA_GRAPHQL_ENDPOINT not provided; chat subsystem disabled")
	}

	fileStore, err := storage.NewLocalFileStore(cfg.Upload)
	if err != nil {
		logger.Fatal("failed to init upload storage", zap.Error(err))
	}

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:   ticketRepo,
		ActivityRepo: activityRepo,
		UserRepo:     userRepo,
		Dispatcher:   dispatcher,
	})
	commentService := service.NewCommentService(service.CommentDependencies{
		TicketRepo:  ticketRepo,
		CommentRepo: commentRepo,
		UserRepo:    userRepo,
		Dispatcher:  dispatcher,
		Locks:       ticketService.Locks(),
	})
	preferenceService := service.NewPreferenceService(preferenceRepo, userRepo)
	chatService := service.NewChatService(gqlClient, presenceTracker)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: cfg.Upload.MaxSizeMB * 1024 * 1024,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	app.Static(cfg.Upload.BaseURL, cfg.Upload.Dir)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Tickets:  handlers.NewTicketsHandler(ticketService),
		Comments: handlers.NewCommentsHandler(commentService),
		Users:    handlers.NewUsersHandler(userRepo, preferenceService, presenceTracker),
		Chat:     handlers.NewChatHandler(chatService),
		Uploads:  handlers.NewUploadHandler(fileStore, cfg.Upload),
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
