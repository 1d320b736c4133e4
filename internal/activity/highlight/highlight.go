// Package highlight splits display text into segments that do or do not
// match a search term, for rendering matches with emphasis.
//
// The search term is used as a case-insensitive pattern fragment without
// escaping, so a term like "a.c" also finds "abc". Only segments whose text
// equals the term (ignoring case) are flagged as matches. Terms that are not
// valid patterns are matched literally instead. Joining the segment texts in
// order always reproduces the input text.
package highlight

import (
	"regexp"
	"strings"

	"logsviewer/internal/activity/models"
)

// Highlighter holds the compiled pattern for one search term so that a whole
// page of fields can be segmented without recompiling.
type Highlighter struct {
	term    string
	pattern *regexp.Regexp
	literal bool
}

// New compiles term. An empty term produces a Highlighter that never splits.
func New(term string) *Highlighter {
	h := &Highlighter{term: term}
	if term == "" {
		return h
	}
	pattern, err := regexp.Compile("(?i)" + term)
	if err != nil {
		pattern = regexp.MustCompile("(?i)" + regexp.QuoteMeta(term))
		h.literal = true
	}
	h.pattern = pattern
	return h
}

// Term returns the search term the Highlighter was built with.
func (h *Highlighter) Term() string {
	return h.term
}

// Literal reports whether the term was not a valid pattern and is matched
// literally.
func (h *Highlighter) Literal() bool {
	return h.literal
}

// Segments splits text around every match of the term.
func (h *Highlighter) Segments(text string) []models.Segment {
	if h.pattern == nil {
		return []models.Segment{{Text: text}}
	}

	var segments []models.Segment
	last := 0
	for _, loc := range h.pattern.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			segments = append(segments, h.segment(text[last:loc[0]]))
		}
		if loc[1] > loc[0] {
			segments = append(segments, h.segment(text[loc[0]:loc[1]]))
		}
		last = loc[1]
	}
	if last < len(text) {
		segments = append(segments, h.segment(text[last:]))
	}

	if len(segments) == 0 {
		return []models.Segment{{Text: text}}
	}
	return segments
}

func (h *Highlighter) segment(part string) models.Segment {
	return models.Segment{Text: part, Match: strings.EqualFold(part, h.term)}
}

// Highlight is New(term).Segments(text).
func Highlight(text, term string) []models.Segment {
	return New(term).Segments(text)
}

// Join concatenates segment texts.
func Join(segments []models.Segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.Text)
	}
	return b.String()
}
