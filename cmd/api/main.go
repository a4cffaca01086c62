package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/employee-registry/internal/api/http"
	"github.com/spec-kit/employee-registry/internal/api/http/handlers"
	"github.com/spec-kit/employee-registry/internal/config"
	"github.com/spec-kit/employee-registry/internal/events"
	"github.com/spec-kit/employee-registry/internal/observability"
	"github.com/spec-kit/employee-registry/internal/persistence"
	"github.com/spec-kit/employee-registry/internal/repository"
	"github.com/spec-kit/employee-registry/internal/service"
	"github.com/spec-kit/employee-registry/internal/worker"
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

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(registry)

	store, err := repository.OpenStore(ctx, cfg, metrics, logger)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer store.Close()

	checks := map[string]handlers.HealthCheck{"store": store.Ping}

	var publisher service.Publisher
	if cfg.Redis.Enabled() {
		redis := persistence.NewRedis(ctx, cfg.Redis, logger)
		defer redis.Close()
		checks["redis"] = redis.Ping
		publisher = redis
	}

	dispatcher := events.NewInMemoryDispatcher()
	stopNotifications := worker.StartNotificationWorker(dispatcher, publisher, cfg.Redis, logger)

	employeeService := service.NewEmployeeService(service.EmployeeDependencies{
		Repo:       store.Employees,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:       logger,
		Metrics:      metrics,
		Timeout:      cfg.App.RequestTimeout(),
		AllowOrigins: cfg.App.CORSAllowOrigins,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, checks),
		Employees: handlers.NewEmployeesHandler(employeeService),
		Metrics:   metrics,
	})

	go func() {
		logger.Info("listening",
			zap.String("addr", cfg.App.Addr()),
			zap.String("store_driver", store.Driver))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
	stopNotifications()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
