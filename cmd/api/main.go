package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/hjalloh/campsite/internal/api/http"
	"github.com/hjalloh/campsite/internal/api/http/handlers"
	"github.com/hjalloh/campsite/internal/config"
	"github.com/hjalloh/campsite/internal/events"
	"github.com/hjalloh/campsite/internal/observability"
	"github.com/hjalloh/campsite/internal/persistence"
	"github.com/hjalloh/campsite/internal/repository"
	"github.com/hjalloh/campsite/internal/service"
	"github.com/hjalloh/campsite/internal/worker"
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

	var bookingRepo repository.BookingRepository
	if pool := pg.PoolHandle(); pool != nil {
		bookingRepo = repository.NewBookingRepository(pool)
	} else {
		bookingRepo = repository.NewMemoryBookingRepository()
	}
	availabilityCache := repository.NewAvailabilityCache(redis.Client, cfg.Booking.AvailabilityCacheTTL())

	dispatcher := events.NewInMemoryDispatcher()

	bookingService := service.NewBookingService(cfg.Booking, service.BookingDependencies{
		BookingRepo: bookingRepo,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	availabilityService := service.NewAvailabilityService(bookingRepo, availabilityCache, logger)
	availabilityService.RegisterCacheInvalidation(dispatcher)

	notificationService := service.NewNotificationService(logger, cfg.Notify)
	notificationWorker := worker.NewNotificationWorker(notificationService, logger)
	notificationWorker.Start(ctx, dispatcher)
	defer notificationWorker.Stop()

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:       handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Bookings:     handlers.NewBookingsHandler(bookingService),
		Availability: handlers.NewAvailabilityHandler(availabilityService),
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
