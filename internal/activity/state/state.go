// Package state models the viewer's search and paging cursors as an explicit
// value updated by pure reducers. Every reducer returns a new State and never
// modifies the record slice it carries.
package state

import (
	"logsviewer/internal/activity/filter"
	"logsviewer/internal/activity/models"
	"logsviewer/internal/activity/pager"
)

// State is the full input of one render: the ingested records, the search
// term, the 1-based current page and the 0-based page-button set.
type State struct {
	Records []models.LogRecord
	Search  string
	Page    int
	Set     int
}

// New returns the initial state: no records, no search, page 1, set 0.
func New() State {
	return State{Page: 1}
}

// ApplyIngested replaces the whole record set. The search term is kept and
// both cursors return to the start.
func ApplyIngested(s State, records []models.LogRecord) State {
	s.Records = records
	s.Page = 1
	s.Set = 0
	return s
}

// ApplySearch sets a new search term. A changed term resets the page to 1 and
// the page-button set to 0 so the current page stays visible; an unchanged
// term leaves the state as is.
func ApplySearch(s State, term string) State {
	if term == s.Search {
		return s
	}
	s.Search = term
	s.Page = 1
	s.Set = 0
	return s
}

// ApplyPage moves to page. Non-positive pages are ignored; pages past the end
// render as empty.
func ApplyPage(s State, page int) State {
	if page < 1 {
		return s
	}
	s.Page = page
	return s
}

// ApplyNextSet advances the page-button set when more pages exist beyond it.
// The current page is not changed.
func ApplyNextSet(s State) State {
	if Render(s).Window.HasNext {
		s.Set++
	}
	return s
}

// ApplyPrevSet moves the page-button set back when not already at the first.
func ApplyPrevSet(s State) State {
	if s.Set > 0 {
		s.Set--
	}
	return s
}

// View is everything the presentation layer needs for one render.
type View struct {
	Search          string
	Page            int
	TotalPages      int
	TotalRecords    int
	FilteredRecords int
	Rows            []models.LogRecord
	Window          pager.Window
}

// Render derives the visible rows and page-button window from s.
func Render(s State) View {
	filtered := filter.Filter(s.Records, s.Search)
	totalPages := pager.TotalPages(len(filtered), pager.PageSize)
	return View{
		Search:          s.Search,
		Page:            s.Page,
		TotalPages:      totalPages,
		TotalRecords:    len(s.Records),
		FilteredRecords: len(filtered),
		Rows:            pager.Page(filtered, pager.PageSize, s.Page),
		Window:          pager.NewWindow(s.Set, totalPages, pager.PagesPerSet),
	}
}
