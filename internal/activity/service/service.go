package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"logsviewer/internal/activity/avatar"
	"logsviewer/internal/activity/highlight"
	"logsviewer/internal/activity/ingest"
	"logsviewer/internal/activity/metrics"
	"logsviewer/internal/activity/models"
	"logsviewer/internal/activity/state"
	"logsviewer/internal/activity/store"
)

// Loader produces a freshly ingested record set.
type Loader interface {
	Load(ctx context.Context) (ingest.Batch, error)
}

// RecordStore holds the current record set.
type RecordStore interface {
	Replace(records []models.LogRecord, source string, loadedAt time.Time)
	All() []models.LogRecord
	Snapshot() store.Snapshot
}

// Service loads the activity log and answers page queries over it.
type Service struct {
	loader  Loader
	store   RecordStore
	avatars *avatar.Table
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
	loads   singleflight.Group
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAvatars(table *avatar.Table) Option {
	return func(s *Service) {
		s.avatars = table
	}
}

// New constructs a Service.
func New(loader Loader, records RecordStore, opts ...Option) (*Service, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if records == nil {
		return nil, fmt.Errorf("record store is required")
	}

	s := &Service{
		loader:  loader,
		store:   records,
		avatars: avatar.Default(),
		logger:  slog.Default(),
		tracer:  otel.Tracer("logsviewer/activity"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// LoadResult summarises a successful load.
type LoadResult struct {
	Source       string
	Records      int
	Malformed    int
	DuplicateIDs []string
	LoadedAt     time.Time
}

// Load fetches and ingests the record set, replacing the current one on
// success. On failure the current set is kept as is; at startup that means it
// stays empty. Concurrent calls share a single in-flight load.
func (s *Service) Load(ctx context.Context) (LoadResult, error) {
	v, err, _ := s.loads.Do("load", func() (any, error) {
		return s.load(ctx)
	})
	if err != nil {
		return LoadResult{}, err
	}
	return v.(LoadResult), nil
}

func (s *Service) load(ctx context.Context) (LoadResult, error) {
	ctx, span := s.tracer.Start(ctx, "activity.Load")
	defer span.End()

	start := time.Now()
	batch, err := s.loader.Load(ctx)
	if err != nil {
		outcome := "error"
		if errors.Is(err, ingest.ErrSourceUnavailable) {
			outcome = "unavailable"
		}
		s.metrics.ObserveLoad(outcome, time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		s.logger.ErrorContext(ctx, "activity log load failed",
			"outcome", outcome,
			"error", err,
		)
		return LoadResult{}, err
	}

	dups := store.DuplicateIDs(batch.Records)
	if len(dups) > 0 {
		s.logger.WarnContext(ctx, "activity log contains duplicate ids",
			"source", batch.Source,
			"count", len(dups),
		)
	}

	s.store.Replace(batch.Records, batch.Source, batch.FetchedAt)

	s.metrics.ObserveLoad("success", time.Since(start))
	s.metrics.SetRecordsLoaded(len(batch.Records))
	s.metrics.AddMalformedRows(len(batch.Malformed))
	s.metrics.AddDuplicateIDs(len(dups))
	span.SetAttributes(
		attribute.String("activity.source", batch.Source),
		attribute.Int("activity.records", len(batch.Records)),
		attribute.Int("activity.malformed", len(batch.Malformed)),
	)
	s.logger.InfoContext(ctx, "activity log loaded",
		"source", batch.Source,
		"records", len(batch.Records),
		"malformed", len(batch.Malformed),
		"duration", time.Since(start),
	)

	return LoadResult{
		Source:       batch.Source,
		Records:      len(batch.Records),
		Malformed:    len(batch.Malformed),
		DuplicateIDs: dups,
		LoadedAt:     batch.FetchedAt,
	}, nil
}

// Status describes the currently loaded record set.
func (s *Service) Status() store.Snapshot {
	return s.store.Snapshot()
}

// Query is one request for a page of the activity log.
type Query struct {
	Search string
	Page   int
	Set    int
}

// Highlights holds the highlight segments of every displayed field.
type Highlights struct {
	ID         []models.Segment
	UserID     []models.Segment
	Actor      []models.Segment
	ActionType []models.Segment
	Details    []models.Segment
	Category   []models.Segment
	CategoryID []models.Segment
	Date       []models.Segment
}

// Row is one visible record ready for rendering.
type Row struct {
	Record     models.LogRecord
	Avatar     string
	Highlights Highlights
}

// Page is the rendered answer to a Query.
type Page struct {
	View state.View
	Rows []Row
}

// Query filters, pages and highlights the current record set. It never fails:
// an empty or unloaded set yields an empty page.
func (s *Service) Query(ctx context.Context, q Query) Page {
	start := time.Now()
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Set < 0 {
		q.Set = 0
	}

	view := state.Render(state.State{
		Records: s.store.All(),
		Search:  q.Search,
		Page:    q.Page,
		Set:     q.Set,
	})

	h := highlight.New(q.Search)
	if h.Literal() {
		s.logger.DebugContext(ctx, "search term is not a valid pattern, highlighting literally",
			"search", q.Search,
		)
	}

	rows := make([]Row, 0, len(view.Rows))
	for _, rec := range view.Rows {
		rows = append(rows, Row{
			Record: rec,
			Avatar: s.avatars.Lookup(rec.UserID),
			Highlights: Highlights{
				ID:         h.Segments(rec.ID),
				UserID:     h.Segments(rec.UserID),
				Actor:      h.Segments(rec.Actor),
				ActionType: h.Segments(rec.ActionType),
				Details:    h.Segments(rec.Details),
				Category:   h.Segments(rec.Category),
				CategoryID: h.Segments(rec.CategoryID),
				Date:       h.Segments(rec.Date),
			},
		})
	}

	s.metrics.ObserveQuery(q.Search != "", view.FilteredRecords, time.Since(start))
	return Page{View: view, Rows: rows}
}
