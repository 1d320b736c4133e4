package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"logsviewer/internal/activity"
	"logsviewer/internal/platform/config"
	"logsviewer/internal/platform/httpserver"
	"logsviewer/internal/platform/logger"
	"logsviewer/internal/platform/metrics"
	"logsviewer/internal/platform/middleware"
	"logsviewer/internal/platform/redis"
	"logsviewer/pkg/platform/middleware/metadata"
	"logsviewer/pkg/platform/middleware/request"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal/activity.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := activity.Deps{Logger: log, Registerer: prometheus.DefaultRegisterer}
	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		deps.Redis = redisClient
	}

	mod, err := activity.New(activity.Config{
		Source:             cfg.Activity.Source,
		FetchTimeout:       cfg.Activity.FetchTimeout,
		AvatarsFile:        cfg.Activity.AvatarsFile,
		DecomposeCacheSize: cfg.Activity.DecomposeCacheSize,
		AdminToken:         cfg.Server.AdminToken,
	}, deps)
	if err != nil {
		return err
	}

	// A failed initial load is absorbed: the record set stays empty and the
	// server still starts so the source can be fixed and reloaded.
	loadCtx, cancel := context.WithTimeout(ctx, cfg.Activity.FetchTimeout)
	if _, err := mod.Service.Load(loadCtx); err != nil {
		log.Warn("starting with an empty activity log", "error", err)
	}
	cancel()

	router := newRouter(log, metrics.New(), mod.Handler)
	srv := httpserver.New(cfg.Server.Addr, router)
	return httpserver.Run(ctx, srv, cfg.Server.ShutdownTimeout, log)
}

func newRouter(log *slog.Logger, m *metrics.Metrics, h *activity.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(request.Logger(log))
	r.Use(middleware.Instrument(m))
	r.Use(request.Recover(log))

	h.Register(r)
	r.Handle("/metrics", promhttp.Handler())
	return r
}
