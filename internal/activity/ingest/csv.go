package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"logsviewer/internal/activity/models"
)

const utf8BOM = "\ufeff"

// Result is the outcome of parsing one CSV document.
type Result struct {
	Records   []models.RawRecord
	Malformed []MalformedRow
}

// Parse reads csvText whose first row is a header naming the columns in
// models.Columns. Columns are mapped by name, so their order is free and
// unknown columns are ignored. Empty lines are skipped.
//
// Rows whose field count differs from the header are dropped and reported in
// Result.Malformed; a single bad row never fails the parse. Parse only fails
// when the header lacks a required column. Empty input yields an empty Result.
func Parse(csvText string) (Result, error) {
	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(csvText, utf8BOM)))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return Result{}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("read csv header: %w", err)
	}

	index, err := columnIndex(header)
	if err != nil {
		return Result{}, err
	}

	var result Result
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return result, fmt.Errorf("read csv: %w", err)
			}
			result.Malformed = append(result.Malformed, MalformedRow{
				Line:   parseErr.StartLine,
				Reason: parseErr.Err.Error(),
			})
			continue
		}

		if len(fields) != len(header) {
			line, _ := reader.FieldPos(0)
			result.Malformed = append(result.Malformed, MalformedRow{
				Line:   line,
				Fields: len(fields),
				Reason: fmt.Sprintf("expected %d fields, got %d", len(header), len(fields)),
			})
			continue
		}

		result.Records = append(result.Records, models.RawRecord{
			ID:         fields[index[models.ColumnID]],
			UserID:     fields[index[models.ColumnUserID]],
			Action:     fields[index[models.ColumnAction]],
			Category:   fields[index[models.ColumnCategory]],
			CategoryID: fields[index[models.ColumnCategoryID]],
			Date:       fields[index[models.ColumnDate]],
		})
	}

	return result, nil
}

// columnIndex maps each required column to its position in header.
func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	var missing []string
	for _, col := range models.Columns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return index, nil
}
