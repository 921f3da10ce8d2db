package tools

import "github.com/unowned-tools/lifelog/pkg/timeline"

// The facade's operation set is closed: one request/response pair per
// operation, so the agent-facing boundary is exhaustively matchable rather
// than free-form dispatch.

// LogEventRequest records a new timeline event. When may be an ISO timestamp,
// an ISO date, or a relative phrase ("yesterday", "in 3 days"); empty means
// now.
type LogEventRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	When        string   `json:"when,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// LogEventResponse returns the stored record.
type LogEventResponse struct {
	Event timeline.Event `json:"event"`
}

// SetReminderRequest creates a reminder. Exactly one of DueInDays or DueDate
// must be supplied; DueDate may be an ISO date or a relative phrase.
type SetReminderRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	DueInDays   *int     `json:"due_in_days,omitempty"`
	DueDate     string   `json:"due_date,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// SetReminderResponse returns the stored reminder event.
type SetReminderResponse struct {
	Event timeline.Event `json:"event"`
}

// QueryByDateRequest retrieves events in a date range, chronological. Start
// and End accept ISO dates or relative phrases; either may be empty for an
// open bound.
type QueryByDateRequest struct {
	Start string `json:"start_date,omitempty"`
	End   string `json:"end_date,omitempty"`
	Limit int    `json:"limit,omitempty"`
}

// QueryByDateResponse lists the matching events, timestamp ascending.
type QueryByDateResponse struct {
	Events []timeline.Event `json:"events"`
}

// QueryRequest retrieves events through the combined filter descriptor:
// every present field constrains the result (logical AND), absent fields
// leave that dimension unconstrained. Start and End accept ISO dates or
// relative phrases.
type QueryRequest struct {
	Start    string `json:"start_date,omitempty"`
	End      string `json:"end_date,omitempty"`
	Category string `json:"category,omitempty"`
	Text     string `json:"search_text,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

// QueryResponse lists the matching events: chronological when a date bound
// is present, most recent first otherwise.
type QueryResponse struct {
	Events []timeline.Event `json:"events"`
}

// QueryByCategoryRequest retrieves events of one category, most recent first.
type QueryByCategoryRequest struct {
	Category string `json:"category"`
	Limit    int    `json:"limit,omitempty"`
}

// QueryByCategoryResponse lists the matching events, timestamp descending.
type QueryByCategoryResponse struct {
	Events []timeline.Event `json:"events"`
}

// SearchRequest finds events whose title or description contains Term,
// case-insensitively.
type SearchRequest struct {
	Term  string `json:"term"`
	Limit int    `json:"limit,omitempty"`
}

// SearchResponse lists the matching events, timestamp descending.
type SearchResponse struct {
	Events []timeline.Event `json:"events"`
}

// GetRecentRequest retrieves the most recent events.
type GetRecentRequest struct {
	Limit int `json:"limit,omitempty"`
}

// GetRecentResponse lists events, newest first.
type GetRecentResponse struct {
	Events []timeline.Event `json:"events"`
}

// GetStatsRequest retrieves the timeline statistics snapshot.
type GetStatsRequest struct{}

// GetStatsResponse carries the aggregate snapshot including the day span and
// the category breakdown (count descending, ties alphabetical).
type GetStatsResponse struct {
	Statistics timeline.Statistics `json:"statistics"`
}

// GetUpcomingRemindersRequest scans for reminders due within DaysAhead days
// of today.
type GetUpcomingRemindersRequest struct {
	DaysAhead int `json:"days_ahead,omitempty"`
}

// GetUpcomingRemindersResponse lists reminders, soonest first.
type GetUpcomingRemindersResponse struct {
	Reminders []timeline.Event `json:"reminders"`
}

// ListCategoriesRequest retrieves the category breakdown.
type ListCategoriesRequest struct{}

// ListCategoriesResponse lists per-category stats, count descending, ties
// alphabetical.
type ListCategoriesResponse struct {
	Categories []timeline.CategoryStat `json:"categories"`
}

// GetEventRequest retrieves one event by its identifier.
type GetEventRequest struct {
	ID int64 `json:"id"`
}

// GetEventResponse carries the found event.
type GetEventResponse struct {
	Event timeline.Event `json:"event"`
}

// ResolveDateRequest resolves a relative phrase, or a day offset from today,
// into an absolute date. Exactly one of Phrase or DaysFromNow is consulted;
// Phrase wins when both are set.
type ResolveDateRequest struct {
	Phrase      string `json:"phrase,omitempty"`
	DaysFromNow *int   `json:"days_from_now,omitempty"`
}

// ResolveDateResponse carries the resolved absolute date (YYYY-MM-DD).
type ResolveDateResponse struct {
	Date string `json:"date"`
}
