package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"logsviewer/internal/activity/ingest"
	"logsviewer/internal/activity/service"
	"logsviewer/internal/activity/store"
	"logsviewer/pkg/platform/httputil"
	"logsviewer/pkg/platform/middleware/admin"
	"logsviewer/pkg/platform/sentinel"
	"logsviewer/pkg/requestcontext"
)

// Service defines the activity operations the HTTP layer needs.
type Service interface {
	Load(ctx context.Context) (service.LoadResult, error)
	Query(ctx context.Context, q service.Query) service.Page
	Status() store.Snapshot
}

// Handler wires activity log endpoints to the service.
type Handler struct {
	service    Service
	logger     *slog.Logger
	adminToken string
}

// New constructs an activity handler. adminToken guards the reload endpoint;
// empty leaves it open.
func New(svc Service, logger *slog.Logger, adminToken string) *Handler {
	return &Handler{
		service:    svc,
		logger:     logger,
		adminToken: adminToken,
	}
}

// Register mounts activity endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/logs", h.HandleListLogs)
	r.Get("/healthz", h.HandleHealth)
	r.Group(func(r chi.Router) {
		r.Use(admin.RequireAdminToken(h.adminToken, h.logger))
		r.Post("/admin/logs/reload", h.HandleReload)
	})
}

// HandleListLogs handles GET /logs?search=&page=&set=.
func (h *Handler) HandleListLogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q, err := parseQuery(r)
	if err != nil {
		h.logger.InfoContext(ctx, "rejected logs query",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	page := h.service.Query(ctx, q)
	httputil.WriteJSON(w, http.StatusOK, FromPage(page))
}

// HandleReload handles POST /admin/logs/reload.
func (h *Handler) HandleReload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	result, err := h.service.Load(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "activity log reload failed",
			"request_id", requestID,
			"error", err,
		)
		if errors.Is(err, ingest.ErrSourceUnavailable) {
			httputil.WriteErrorCode(w, http.StatusServiceUnavailable, "source_unavailable", "activity log source could not be read")
			return
		}
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "activity log reloaded",
		"request_id", requestID,
		"records", result.Records,
		"malformed", result.Malformed,
	)
	w.WriteHeader(http.StatusNoContent)
}

// HandleHealth handles GET /healthz.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, FromSnapshot(h.service.Status()))
}

// parseQuery reads search, page (1-based, default 1) and set (0-based,
// default 0). The search term is used verbatim.
func parseQuery(r *http.Request) (service.Query, error) {
	values := r.URL.Query()
	q := service.Query{Search: values.Get("search"), Page: 1}

	if raw := values.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return service.Query{}, fmt.Errorf("page must be a positive integer: %w", sentinel.ErrInvalidInput)
		}
		q.Page = n
	}
	if raw := values.Get("set"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return service.Query{}, fmt.Errorf("set must be a non-negative integer: %w", sentinel.ErrInvalidInput)
		}
		q.Set = n
	}
	return q, nil
}
