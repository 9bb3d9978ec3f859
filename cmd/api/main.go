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

	"github.com/angelmondragon/invitation-backend/api/routes"
	"github.com/angelmondragon/invitation-backend/internal/admin"
	"github.com/angelmondragon/invitation-backend/internal/eligibility"
	"github.com/angelmondragon/invitation-backend/internal/gifts"
	"github.com/angelmondragon/invitation-backend/internal/messages"
	"github.com/angelmondragon/invitation-backend/internal/rsvp"
	"github.com/angelmondragon/invitation-backend/pkg/clock"
	"github.com/angelmondragon/invitation-backend/pkg/config"
	"github.com/angelmondragon/invitation-backend/pkg/logger"
	"github.com/angelmondragon/invitation-backend/pkg/metrics"
	"github.com/angelmondragon/invitation-backend/pkg/redis"
	"github.com/angelmondragon/invitation-backend/pkg/sheets"
)

const shutdownTimeout = 15 * time.Second

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
	})

	if cfg.Admin.Password == "" {
		logg.Warn(context.Background(), "ADMIN_PASSWORD is empty, admin routes will reject every request")
	}

	store, closeStore, err := sheets.Open(context.Background(), cfg, logg)
	if err != nil {
		logg.Error(logg.WithField(context.Background(), "store_driver", cfg.App.StoreDriver), "failed to bootstrap store", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeStore(); err != nil {
			logg.Error(context.Background(), "error closing store", err)
		}
	}()

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Info(context.Background(), "redis not configured, rate limiting and idempotent replays disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	clk := clock.New(cfg.Event.Location())

	giftService, err := gifts.NewService(gifts.ServiceParams{
		Repo:    gifts.NewRepository(store),
		Clock:   clk,
		Logger:  logg,
		Metrics: metrics.NewGiftMetrics(registry),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create gift service", err)
		os.Exit(1)
	}

	rsvpService, err := rsvp.NewService(rsvp.ServiceParams{Store: store, Clock: clk, Logger: logg})
	if err != nil {
		logg.Error(context.Background(), "failed to create rsvp service", err)
		os.Exit(1)
	}

	messageService, err := messages.NewService(messages.ServiceParams{Store: store, Clock: clk, Logger: logg})
	if err != nil {
		logg.Error(context.Background(), "failed to create messages service", err)
		os.Exit(1)
	}

	eligibilityService, err := eligibility.NewService(eligibility.ServiceParams{Store: store, RSVP: rsvpService})
	if err != nil {
		logg.Error(context.Background(), "failed to create eligibility service", err)
		os.Exit(1)
	}

	adminService, err := admin.NewService(admin.ServiceParams{Store: store, Logger: logg})
	if err != nil {
		logg.Error(context.Background(), "failed to create admin service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":          cfg.App.Env,
		"addr":         addr,
		"store_driver": cfg.App.StoreDriver,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			registry,
			metrics.NewHTTPMetrics(registry),
			store,
			redisClient,
			giftService,
			rsvpService,
			messageService,
			eligibilityService,
			adminService,
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
