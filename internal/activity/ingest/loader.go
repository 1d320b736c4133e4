package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"logsviewer/internal/activity/decompose"
	"logsviewer/internal/activity/models"
)

// Batch is a fully ingested record set together with what was dropped.
type Batch struct {
	Source    string
	Records   []models.LogRecord
	Malformed []MalformedRow
	FetchedAt time.Time
}

// Loader fetches a CSV document, parses it and decomposes every row's action.
type Loader struct {
	source    Source
	decompose decompose.Func
	logger    *slog.Logger
	now       func() time.Time
}

type LoaderOption func(*Loader)

func WithLoaderLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithDecomposer replaces decompose.Decompose, e.g. with a decompose.Cache.
func WithDecomposer(fn decompose.Func) LoaderOption {
	return func(l *Loader) {
		l.decompose = fn
	}
}

func WithClock(now func() time.Time) LoaderOption {
	return func(l *Loader) {
		l.now = now
	}
}

func NewLoader(source Source, opts ...LoaderOption) (*Loader, error) {
	if source == nil {
		return nil, fmt.Errorf("source is required")
	}

	l := &Loader{
		source:    source,
		decompose: decompose.Decompose,
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Load runs one fetch-then-parse sequence. Fetch failures are returned
// wrapping ErrSourceUnavailable; malformed rows are logged and skipped.
func (l *Loader) Load(ctx context.Context) (Batch, error) {
	data, err := l.source.Fetch(ctx)
	if err != nil {
		return Batch{}, err
	}

	parsed, err := Parse(string(data))
	if err != nil {
		return Batch{}, fmt.Errorf("parse %s: %w", l.source.Name(), err)
	}

	for _, row := range parsed.Malformed {
		l.logger.WarnContext(ctx, "dropping malformed csv row",
			"source", l.source.Name(),
			"line", row.Line,
			"reason", row.Reason,
		)
	}

	records := make([]models.LogRecord, 0, len(parsed.Records))
	for _, raw := range parsed.Records {
		records = append(records, models.NewLogRecord(raw, l.decompose(raw.Action)))
	}

	return Batch{
		Source:    l.source.Name(),
		Records:   records,
		Malformed: parsed.Malformed,
		FetchedAt: l.now(),
	}, nil
}
