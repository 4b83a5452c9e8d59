package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/angelmondragon/costlab-backend/api/routes"
	"github.com/angelmondragon/costlab-backend/internal/campaigns"
	"github.com/angelmondragon/costlab-backend/internal/costing"
	"github.com/angelmondragon/costlab-backend/internal/dashboard"
	"github.com/angelmondragon/costlab-backend/internal/inputs"
	"github.com/angelmondragon/costlab-backend/internal/inventory"
	"github.com/angelmondragon/costlab-backend/internal/production"
	"github.com/angelmondragon/costlab-backend/internal/products"
	"github.com/angelmondragon/costlab-backend/pkg/config"
	"github.com/angelmondragon/costlab-backend/pkg/db"
	"github.com/angelmondragon/costlab-backend/pkg/instance"
	"github.com/angelmondragon/costlab-backend/pkg/logger"
	"github.com/angelmondragon/costlab-backend/pkg/metrics"
	"github.com/angelmondragon/costlab-backend/pkg/migrate"
	"github.com/angelmondragon/costlab-backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Console:     cfg.App.ConsoleLogs(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.Bootstrap(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to prepare schema", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(ctx, "REDIS_URL not set, idempotency keys are ignored")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := metrics.NewHTTPMetrics(registry)

	services, err := buildServices(dbClient)
	if err != nil {
		logg.Error(ctx, "failed to create services", err)
		os.Exit(1)
	}

	addr := ":" + cfg.App.Port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.ID(),
		"driver":   cfg.DB.Driver,
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, dbClient, redisClient, httpMetrics, services),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "graceful shutdown failed", err)
		}
	}
}

func buildServices(dbClient *db.Client) (routes.Services, error) {
	conn := dbClient.DB()

	costingSvc, err := costing.NewService(costing.NewRepository(conn))
	if err != nil {
		return routes.Services{}, err
	}
	productSvc, err := products.NewService(products.NewRepository(conn), dbClient, costingSvc)
	if err != nil {
		return routes.Services{}, err
	}
	inputSvc, err := inputs.NewService(inputs.NewRepository(conn))
	if err != nil {
		return routes.Services{}, err
	}
	inventorySvc, err := inventory.NewService(inventory.NewRepository(conn))
	if err != nil {
		return routes.Services{}, err
	}
	dashboardSvc, err := dashboard.NewService(dashboard.NewRepository(conn), inventorySvc, costingSvc)
	if err != nil {
		return routes.Services{}, err
	}
	campaignSvc, err := campaigns.NewService(campaigns.NewRepository(conn))
	if err != nil {
		return routes.Services{}, err
	}
	productionSvc, err := production.NewService(production.NewRepository(conn))
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Products:   productSvc,
		Inputs:     inputSvc,
		Inventory:  inventorySvc,
		Costing:    costingSvc,
		Dashboard:  dashboardSvc,
		Campaigns:  campaignSvc,
		Production: productionSvc,
	}, nil
}
