package ingest

import (
	"errors"
	"fmt"

	"logsviewer/pkg/platform/sentinel"
)

var (
	// ErrSourceUnavailable is returned when the CSV resource cannot be fetched
	// or read. The record set is left as it was; no retry is attempted.
	ErrSourceUnavailable = fmt.Errorf("source %w", sentinel.ErrUnavailable)

	// ErrMissingColumns is returned when the header row lacks a required column.
	ErrMissingColumns = fmt.Errorf("missing csv columns: %w", sentinel.ErrInvalidInput)

	// ErrMalformedRow classifies rows dropped during parsing. It is never
	// returned from Parse; MalformedRow values match it with errors.Is.
	ErrMalformedRow = errors.New("malformed row")
)

// MalformedRow describes a data row that was dropped during parsing.
type MalformedRow struct {
	Line   int    `json:"line"`
	Fields int    `json:"fields"`
	Reason string `json:"reason"`
}

func (m MalformedRow) Error() string {
	return fmt.Sprintf("malformed row at line %d: %s", m.Line, m.Reason)
}

// Is reports MalformedRow values as ErrMalformedRow.
func (m MalformedRow) Is(target error) bool {
	return target == ErrMalformedRow
}

func unavailable(source string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, source, err)
}
