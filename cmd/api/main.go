package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/mistatas/soporte-service/internal/api/http"
	"github.com/mistatas/soporte-service/internal/api/http/handlers"
	"github.com/mistatas/soporte-service/internal/auth"
	"github.com/mistatas/soporte-service/internal/config"
	"github.com/mistatas/soporte-service/internal/events"
	"github.com/mistatas/soporte-service/internal/observability"
	"github.com/mistatas/soporte-service/internal/persistence"
	"github.com/mistatas/soporte-service/internal/repository"
	"github.com/mistatas/soporte-service/internal/service"
	"github.com/mistatas/soporte-service/internal/stream"
	"github.com/mistatas/soporte-service/internal/worker"
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
	ticketRepo := repository.NewTicketRepository(pool)
	technicianRepo := repository.NewTechnicianRepository(pool)
	amaiaRepo := repository.NewAmaiaTicketRepository(pool)

	revocation := auth.NewRevocationList(redis.Client)
	dispatcher := events.NewInMemoryDispatcher()
	hub := stream.NewHub(ticketRepo.List, logger)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Revocation: revocation,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		Dispatcher: dispatcher,
	})
	amaiaService := service.NewAmaiaService(amaiaRepo)
	reportService := service.NewReportService()
	notificationService := service.NewNotificationService(cfg.Notification, logger)

	worker.StartStreamWorker(dispatcher, hub)
	worker.StartNotificationWorker(dispatcher, notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo, revocation)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Stream:         handlers.NewStreamHandler(hub),
		Technicians:    handlers.NewTechniciansHandler(technicianRepo),
		Amaia:          handlers.NewAmaiaHandler(amaiaService),
		Reports:        handlers.NewReportsHandler(ticketService, reportService),
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
