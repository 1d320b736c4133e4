// Package pager slices a filtered record set into fixed-size pages and groups
// page numbers into small windows of buttons.
package pager

import "logsviewer/internal/activity/models"

const (
	// PageSize is the number of records shown per page.
	PageSize = 20
	// PagesPerSet bounds how many page buttons are rendered at once.
	PagesPerSet = 4
)

// Page returns records[(pageNumber-1)*pageSize : pageNumber*pageSize], clamped
// to the slice bounds. Pages outside 1..TotalPages yield an empty slice.
// The result shares its backing array with records but has no spare
// capacity, so appending to it never overwrites the following records.
func Page(records []models.LogRecord, pageSize, pageNumber int) []models.LogRecord {
	if pageSize <= 0 || pageNumber < 1 {
		return []models.LogRecord{}
	}
	// Compare page indexes before multiplying so huge page numbers cannot wrap.
	if pageNumber-1 >= TotalPages(len(records), pageSize) {
		return []models.LogRecord{}
	}
	start := (pageNumber - 1) * pageSize
	end := min(start+pageSize, len(records))
	return records[start:end:end]
}

// TotalPages is ceil(n / pageSize); zero records means zero pages.
func TotalPages(n, pageSize int) int {
	if n <= 0 || pageSize <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}

// Window is the visible range of page buttons for one page set.
type Window struct {
	SetIndex  int  `json:"set"`
	StartPage int  `json:"start_page"`
	EndPage   int  `json:"end_page"`
	HasPrev   bool `json:"has_prev"`
	HasNext   bool `json:"has_next"`
}

// NewWindow computes the button range for setIndex (0-based):
// StartPage = setIndex*pagesPerSet + 1, EndPage = min(StartPage+pagesPerSet-1, totalPages).
// Moving to the next set is allowed only while EndPage < totalPages, moving
// back only while setIndex > 0. A set past the last page has EndPage < StartPage
// and no buttons.
func NewWindow(setIndex, totalPages, pagesPerSet int) Window {
	if setIndex < 0 {
		setIndex = 0
	}
	if pagesPerSet <= 0 {
		pagesPerSet = PagesPerSet
	}
	if totalPages < 0 {
		totalPages = 0
	}
	// Sets beyond the last one are empty; checked before multiplying so huge
	// indexes cannot wrap around into a valid window.
	if lastSet := (totalPages - 1) / pagesPerSet; setIndex > lastSet {
		return Window{
			SetIndex:  setIndex,
			StartPage: totalPages + 1,
			EndPage:   totalPages,
			HasPrev:   true,
			HasNext:   false,
		}
	}
	start := setIndex*pagesPerSet + 1
	end := min(start+pagesPerSet-1, totalPages)
	return Window{
		SetIndex:  setIndex,
		StartPage: start,
		EndPage:   end,
		HasPrev:   setIndex > 0,
		HasNext:   end < totalPages,
	}
}

// Pages lists the page numbers of the window's buttons.
func (w Window) Pages() []int {
	if w.EndPage < w.StartPage {
		return []int{}
	}
	pages := make([]int, 0, w.EndPage-w.StartPage+1)
	for p := w.StartPage; p <= w.EndPage; p++ {
		pages = append(pages, p)
	}
	return pages
}

// Contains reports whether page has a button in this window.
func (w Window) Contains(page int) bool {
	return page >= w.StartPage && page <= w.EndPage
}

// SetFor returns the set index whose window contains page.
func SetFor(page, pagesPerSet int) int {
	if page < 1 || pagesPerSet <= 0 {
		return 0
	}
	return (page - 1) / pagesPerSet
}
