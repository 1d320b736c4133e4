package filter

import (
	"strings"

	"logsviewer/internal/activity/models"
)

// Filter returns the records containing term in any searchable field.
// Matching is a case-sensitive substring test. An empty term returns records
// itself rather than a copy. Order is preserved and records is never
// modified.
func Filter(records []models.LogRecord, term string) []models.LogRecord {
	if term == "" {
		return records
	}

	var out []models.LogRecord
	for _, rec := range records {
		if Matches(rec, term) {
			out = append(out, rec)
		}
	}
	return out
}

// Matches reports whether term occurs in any of the record's searchable
// fields: id, user id, actor, action type, details, category, category id
// and date.
func Matches(rec models.LogRecord, term string) bool {
	return strings.Contains(rec.ID, term) ||
		strings.Contains(rec.UserID, term) ||
		strings.Contains(rec.Actor, term) ||
		strings.Contains(rec.ActionType, term) ||
		strings.Contains(rec.Details, term) ||
		strings.Contains(rec.Category, term) ||
		strings.Contains(rec.CategoryID, term) ||
		strings.Contains(rec.Date, term)
}
