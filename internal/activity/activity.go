package activity

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"logsviewer/internal/activity/avatar"
	"logsviewer/internal/activity/decompose"
	"logsviewer/internal/activity/handler"
	"logsviewer/internal/activity/ingest"
	"logsviewer/internal/activity/metrics"
	"logsviewer/internal/activity/service"
	"logsviewer/internal/activity/store"
)

// Service loads the activity log and answers page queries.
type Service = service.Service

// Handler wires HTTP endpoints to the activity service.
type Handler = handler.Handler

// Config selects the source and tunes the pipeline.
type Config struct {
	Source             string
	FetchTimeout       time.Duration
	AvatarsFile        string
	DecomposeCacheSize int
	AdminToken         string
}

// Deps are the shared collaborators owned by main.
type Deps struct {
	Logger     *slog.Logger
	Registerer prometheus.Registerer
	// Redis is required only for redis:// sources.
	Redis ingest.KeyReader
}

// Module is the assembled activity pipeline.
type Module struct {
	Service *Service
	Handler *Handler
}

// New assembles source, loader, store, metrics and service. It does not load.
func New(cfg Config, deps Deps) (*Module, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	reg := deps.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	src, err := ingest.NewSource(cfg.Source, ingest.SourceDeps{
		HTTPClient: &http.Client{Timeout: cfg.FetchTimeout},
		Redis:      deps.Redis,
	})
	if err != nil {
		return nil, fmt.Errorf("activity source: %w", err)
	}

	loaderOpts := []ingest.LoaderOption{ingest.WithLoaderLogger(logger)}
	if cfg.DecomposeCacheSize > 0 {
		cache, err := decompose.NewCache(cfg.DecomposeCacheSize)
		if err != nil {
			return nil, fmt.Errorf("decompose cache: %w", err)
		}
		loaderOpts = append(loaderOpts, ingest.WithDecomposer(cache.Decompose))
	}
	loader, err := ingest.NewLoader(src, loaderOpts...)
	if err != nil {
		return nil, err
	}

	avatars := avatar.Default()
	if cfg.AvatarsFile != "" {
		avatars, err = avatar.LoadFile(cfg.AvatarsFile)
		if err != nil {
			return nil, fmt.Errorf("avatar table: %w", err)
		}
	}

	svc, err := service.New(loader, store.NewInMemoryStore(),
		service.WithLogger(logger),
		service.WithMetrics(metrics.NewWithRegisterer(reg)),
		service.WithAvatars(avatars),
	)
	if err != nil {
		return nil, err
	}

	return &Module{
		Service: svc,
		Handler: handler.New(svc, logger, cfg.AdminToken),
	}, nil
}
