// Package decompose splits the free-text action column of an activity log row
// into the party that performed it, a short action type and the details.
//
// The raw text has the informal shape
//
//	"<actor>, <actionType> <rest of details...>"
//
// Decompose is total: any input, including the empty string, produces an
// Action whose fields are all present (possibly empty).
package decompose

import (
	"strings"

	"logsviewer/internal/activity/models"
)

// Decompose splits raw at its first comma. The trimmed text before the comma
// is the actor; the trimmed text after it is the details, whose first
// whitespace-delimited token is the action type. Details keeps the action type
// as its prefix.
//
// Without a comma the whole trimmed input is the actor.
func Decompose(raw string) models.Action {
	before, after, found := strings.Cut(raw, ",")
	if !found {
		return models.Action{Actor: strings.TrimSpace(raw)}
	}

	details := strings.TrimSpace(after)
	return models.Action{
		Actor:      strings.TrimSpace(before),
		ActionType: firstToken(details),
		Details:    details,
	}
}

func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
