package models

// Column names expected in the CSV header row.
const (
	ColumnID         = "id"
	ColumnUserID     = "user_id"
	ColumnAction     = "action"
	ColumnCategory   = "category"
	ColumnCategoryID = "cat_id"
	ColumnDate       = "date"
)

// Columns lists every header column a source must provide.
var Columns = []string{
	ColumnID,
	ColumnUserID,
	ColumnAction,
	ColumnCategory,
	ColumnCategoryID,
	ColumnDate,
}

// RawRecord is one CSV data row keyed by header column, before decomposition.
type RawRecord struct {
	ID         string
	UserID     string
	Action     string
	Category   string
	CategoryID string
	Date       string
}

// Action is the decomposed form of a raw action string such as
// "Jane Doe, updated the syllabus".
type Action struct {
	Actor      string `json:"actor"`
	ActionType string `json:"action_type"`
	Details    string `json:"details"`
}

// LogRecord is an ingested audit-log entry. All fields are opaque strings as
// sourced from the CSV; Date is searched as text and never parsed.
// Records are treated as immutable once ingested.
type LogRecord struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	RawAction  string `json:"action"`
	Category   string `json:"category"`
	CategoryID string `json:"cat_id"`
	Date       string `json:"date"`

	// Derived at ingestion; empty string when decomposition yields nothing.
	Actor      string `json:"actor"`
	ActionType string `json:"action_type"`
	Details    string `json:"details"`
}

// NewLogRecord combines a raw row with its decomposed action.
func NewLogRecord(raw RawRecord, action Action) LogRecord {
	return LogRecord{
		ID:         raw.ID,
		UserID:     raw.UserID,
		RawAction:  raw.Action,
		Category:   raw.Category,
		CategoryID: raw.CategoryID,
		Date:       raw.Date,
		Actor:      action.Actor,
		ActionType: action.ActionType,
		Details:    action.Details,
	}
}

// SearchFields returns the fields a search term is matched against, in
// display order.
func (r LogRecord) SearchFields() []string {
	return []string{
		r.ID,
		r.UserID,
		r.Actor,
		r.ActionType,
		r.Details,
		r.Category,
		r.CategoryID,
		r.Date,
	}
}

// Segment is a contiguous run of display text that either matches the
// current search term or does not.
type Segment struct {
	Text  string `json:"text"`
	Match bool   `json:"match"`
}
