package handler

import (
	"time"

	"logsviewer/internal/activity/models"
	"logsviewer/internal/activity/service"
	"logsviewer/internal/activity/store"
)

// SegmentsResponse carries the highlight segments of each displayed field.
type SegmentsResponse struct {
	ID         []models.Segment `json:"id"`
	UserID     []models.Segment `json:"user_id"`
	Actor      []models.Segment `json:"actor"`
	ActionType []models.Segment `json:"action_type"`
	Details    []models.Segment `json:"details"`
	Category   []models.Segment `json:"category"`
	CategoryID []models.Segment `json:"cat_id"`
	Date       []models.Segment `json:"date"`
}

type RowResponse struct {
	models.LogRecord
	Avatar   string           `json:"avatar"`
	Segments SegmentsResponse `json:"segments"`
}

type PagerResponse struct {
	Set       int   `json:"set"`
	StartPage int   `json:"start_page"`
	EndPage   int   `json:"end_page"`
	Pages     []int `json:"pages"`
	HasPrev   bool  `json:"has_prev"`
	HasNext   bool  `json:"has_next"`
}

// LogsResponse is the body of GET /logs.
type LogsResponse struct {
	Search          string        `json:"search"`
	Page            int           `json:"page"`
	TotalPages      int           `json:"total_pages"`
	TotalRecords    int           `json:"total_records"`
	FilteredRecords int           `json:"filtered_records"`
	Pager           PagerResponse `json:"pager"`
	Rows            []RowResponse `json:"rows"`
}

type HealthResponse struct {
	Status   string     `json:"status"`
	Records  int        `json:"records"`
	Source   string     `json:"source,omitempty"`
	LoadedAt *time.Time `json:"loaded_at,omitempty"`
}

func FromPage(p service.Page) LogsResponse {
	rows := make([]RowResponse, 0, len(p.Rows))
	for _, row := range p.Rows {
		hl := row.Highlights
		rows = append(rows, RowResponse{
			LogRecord: row.Record,
			Avatar:    row.Avatar,
			Segments: SegmentsResponse{
				ID:         hl.ID,
				UserID:     hl.UserID,
				Actor:      hl.Actor,
				ActionType: hl.ActionType,
				Details:    hl.Details,
				Category:   hl.Category,
				CategoryID: hl.CategoryID,
				Date:       hl.Date,
			},
		})
	}

	v := p.View
	return LogsResponse{
		Search:          v.Search,
		Page:            v.Page,
		TotalPages:      v.TotalPages,
		TotalRecords:    v.TotalRecords,
		FilteredRecords: v.FilteredRecords,
		Pager: PagerResponse{
			Set:       v.Window.SetIndex,
			StartPage: v.Window.StartPage,
			EndPage:   v.Window.EndPage,
			Pages:     v.Window.Pages(),
			HasPrev:   v.Window.HasPrev,
			HasNext:   v.Window.HasNext,
		},
		Rows: rows,
	}
}

// FromSnapshot reports "empty" until a load has succeeded.
func FromSnapshot(s store.Snapshot) HealthResponse {
	resp := HealthResponse{Status: "ok", Records: s.Records, Source: s.Source}
	if s.LoadedAt.IsZero() {
		resp.Status = "empty"
		return resp
	}
	loadedAt := s.LoadedAt
	resp.LoadedAt = &loadedAt
	return resp
}
