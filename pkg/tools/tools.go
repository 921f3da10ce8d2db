// Package tools is the operation boundary consumed by the conversational
// agent layer. Every operation takes a typed request and returns a typed
// result or an error of a distinguishable kind; relative date expressions
// never bypass the date resolver.
package tools

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/unowned-tools/lifelog/pkg/dates"
	"github.com/unowned-tools/lifelog/pkg/timeline"
)

// Defaults applied when a request leaves the corresponding field unset.
const (
	DefaultQueryLimit     = 50
	DefaultRecentLimit    = 10
	DefaultReminderWindow = 30
)

// ReminderDueHour is the wall-clock hour a reminder comes due on its date.
const ReminderDueHour = 9

// Tools wraps an explicitly constructed store handle and a clock. There is no
// package-level state: independent instances (e.g. for tests) are cheap.
type Tools struct {
	db             *sql.DB
	clock          dates.Clock
	queryLimit     int
	reminderWindow int
}

// Options tunes a facade instance. Zero values mean the built-in defaults;
// a nil Clock means time.Now. QueryLimit and ReminderWindowDays typically
// come from the loaded configuration.
type Options struct {
	Clock              dates.Clock
	QueryLimit         int
	ReminderWindowDays int
}

// New returns a facade over the given database using the wall clock and the
// built-in defaults.
func New(dbConn *sql.DB) *Tools {
	return NewWithOptions(dbConn, Options{})
}

// NewWithClock returns a facade with an injected clock. A nil clock means
// time.Now.
func NewWithClock(dbConn *sql.DB, clock dates.Clock) *Tools {
	return NewWithOptions(dbConn, Options{Clock: clock})
}

// NewWithOptions returns a facade with the given tuning applied.
func NewWithOptions(dbConn *sql.DB, opts Options) *Tools {
	t := &Tools{
		db:             dbConn,
		clock:          opts.Clock,
		queryLimit:     opts.QueryLimit,
		reminderWindow: opts.ReminderWindowDays,
	}
	if t.queryLimit <= 0 {
		t.queryLimit = DefaultQueryLimit
	}
	if t.reminderWindow <= 0 {
		t.reminderWindow = DefaultReminderWindow
	}
	return t
}

// LogEvent resolves the When expression against a single reference date and
// stores the event.
func (t *Tools) LogEvent(ctx context.Context, req LogEventRequest) (LogEventResponse, error) {
	timestamp, err := t.resolveWhen(req.When)
	if err != nil {
		return LogEventResponse{}, err
	}

	event, err := timeline.InsertEvent(ctx, t.db, timeline.Draft{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Timestamp:   timestamp,
		Tags:        req.Tags,
	})
	if err != nil {
		return LogEventResponse{}, err
	}
	return LogEventResponse{Event: event}, nil
}

// SetReminder resolves the due date (offset or date/phrase) and stores a
// reminder-category event due at 09:00 on that date.
func (t *Tools) SetReminder(ctx context.Context, req SetReminderRequest) (SetReminderResponse, error) {
	if (req.DueInDays == nil) == (req.DueDate == "") {
		return SetReminderResponse{}, fmt.Errorf("%w: exactly one of due_in_days or due_date must be set", timeline.ErrValidation)
	}

	var due time.Time
	var err error
	if req.DueInDays != nil {
		due, err = dates.FutureDate(dates.Today(t.clock), *req.DueInDays)
	} else {
		due, err = t.resolveDateExpr(req.DueDate)
	}
	if err != nil {
		return SetReminderResponse{}, err
	}

	dueAt := time.Date(due.Year(), due.Month(), due.Day(), ReminderDueHour, 0, 0, 0, due.Location())
	event, err := timeline.InsertEvent(ctx, t.db, timeline.Draft{
		Title:       req.Title,
		Description: req.Description,
		Category:    timeline.ReminderCategory,
		Timestamp:   dates.FormatTimestamp(dueAt),
		Tags:        req.Tags,
	})
	if err != nil {
		return SetReminderResponse{}, err
	}
	return SetReminderResponse{Event: event}, nil
}

// QueryByDate returns events in the resolved date range, chronological. Both
// bounds resolve against the same reference date.
func (t *Tools) QueryByDate(ctx context.Context, req QueryByDateRequest) (QueryByDateResponse, error) {
	reference := dates.Today(t.clock)

	var start, end *time.Time
	if req.Start != "" {
		d, err := t.resolveDateExprAt(req.Start, reference)
		if err != nil {
			return QueryByDateResponse{}, err
		}
		start = &d
	}
	if req.End != "" {
		d, err := t.resolveDateExprAt(req.End, reference)
		if err != nil {
			return QueryByDateResponse{}, err
		}
		end = &d
	}

	events, err := timeline.ListByDateRange(ctx, t.db, start, end, limitOrDefault(req.Limit, t.queryLimit))
	if err != nil {
		return QueryByDateResponse{}, err
	}
	return QueryByDateResponse{Events: events}, nil
}

// Query applies the combined filter descriptor. Date bounds resolve against
// a single reference date before the store sees them.
func (t *Tools) Query(ctx context.Context, req QueryRequest) (QueryResponse, error) {
	reference := dates.Today(t.clock)

	q := timeline.Query{
		Category:   req.Category,
		SearchText: req.Text,
		Limit:      limitOrDefault(req.Limit, t.queryLimit),
	}
	if req.Start != "" {
		d, err := t.resolveDateExprAt(req.Start, reference)
		if err != nil {
			return QueryResponse{}, err
		}
		q.Start = dates.FormatDate(d)
	}
	if req.End != "" {
		d, err := t.resolveDateExprAt(req.End, reference)
		if err != nil {
			return QueryResponse{}, err
		}
		q.End = dates.FormatDate(d)
	}

	events, err := timeline.QueryEvents(ctx, t.db, q)
	if err != nil {
		return QueryResponse{}, err
	}
	return QueryResponse{Events: events}, nil
}

// QueryByCategory returns events of one category, most recent first.
func (t *Tools) QueryByCategory(ctx context.Context, req QueryByCategoryRequest) (QueryByCategoryResponse, error) {
	if req.Category == "" {
		return QueryByCategoryResponse{}, fmt.Errorf("%w: category is required", timeline.ErrValidation)
	}
	events, err := timeline.ListByCategory(ctx, t.db, req.Category, limitOrDefault(req.Limit, t.queryLimit))
	if err != nil {
		return QueryByCategoryResponse{}, err
	}
	return QueryByCategoryResponse{Events: events}, nil
}

// Search returns events matching a free-text term, most recent first.
func (t *Tools) Search(ctx context.Context, req SearchRequest) (SearchResponse, error) {
	if req.Term == "" {
		return SearchResponse{}, fmt.Errorf("%w: search term is required", timeline.ErrValidation)
	}
	events, err := timeline.SearchText(ctx, t.db, req.Term, limitOrDefault(req.Limit, t.queryLimit))
	if err != nil {
		return SearchResponse{}, err
	}
	return SearchResponse{Events: events}, nil
}

// GetRecent returns the most recent events, newest first.
func (t *Tools) GetRecent(ctx context.Context, req GetRecentRequest) (GetRecentResponse, error) {
	events, err := timeline.ListRecent(ctx, t.db, limitOrDefault(req.Limit, DefaultRecentLimit))
	if err != nil {
		return GetRecentResponse{}, err
	}
	return GetRecentResponse{Events: events}, nil
}

// GetStats returns the timeline statistics snapshot.
func (t *Tools) GetStats(ctx context.Context, _ GetStatsRequest) (GetStatsResponse, error) {
	stats, err := timeline.TimelineStatistics(ctx, t.db)
	if err != nil {
		return GetStatsResponse{}, err
	}
	return GetStatsResponse{Statistics: stats}, nil
}

// GetUpcomingReminders scans forward from today for due reminders, soonest
// first.
func (t *Tools) GetUpcomingReminders(ctx context.Context, req GetUpcomingRemindersRequest) (GetUpcomingRemindersResponse, error) {
	window := req.DaysAhead
	if window == 0 {
		window = t.reminderWindow
	}
	reminders, err := timeline.UpcomingReminders(ctx, t.db, dates.Today(t.clock), window)
	if err != nil {
		return GetUpcomingRemindersResponse{}, err
	}
	return GetUpcomingRemindersResponse{Reminders: reminders}, nil
}

// ListCategories returns the category breakdown.
func (t *Tools) ListCategories(ctx context.Context, _ ListCategoriesRequest) (ListCategoriesResponse, error) {
	breakdown, err := timeline.CategoryBreakdown(ctx, t.db)
	if err != nil {
		return ListCategoriesResponse{}, err
	}
	return ListCategoriesResponse{Categories: breakdown}, nil
}

// GetEvent returns one event by id.
func (t *Tools) GetEvent(ctx context.Context, req GetEventRequest) (GetEventResponse, error) {
	event, err := timeline.GetEvent(ctx, t.db, req.ID)
	if err != nil {
		return GetEventResponse{}, err
	}
	return GetEventResponse{Event: event}, nil
}

// ResolveDate resolves a relative phrase or a day offset into an absolute
// date anchored at today.
func (t *Tools) ResolveDate(_ context.Context, req ResolveDateRequest) (ResolveDateResponse, error) {
	reference := dates.Today(t.clock)

	switch {
	case req.Phrase != "":
		d, err := dates.ParseRelative(req.Phrase, reference)
		if err != nil {
			return ResolveDateResponse{}, err
		}
		return ResolveDateResponse{Date: dates.FormatDate(d)}, nil
	case req.DaysFromNow != nil:
		d, err := dates.FutureDate(reference, *req.DaysFromNow)
		if err != nil {
			return ResolveDateResponse{}, err
		}
		return ResolveDateResponse{Date: dates.FormatDate(d)}, nil
	default:
		return ResolveDateResponse{Date: dates.FormatDate(reference)}, nil
	}
}

// resolveWhen turns a When expression into a canonical timestamp. Empty means
// the current instant; ISO inputs pass through canonicalized; anything else
// goes through the relative-phrase resolver.
func (t *Tools) resolveWhen(when string) (string, error) {
	if when == "" {
		now := time.Now()
		if t.clock != nil {
			now = t.clock()
		}
		return dates.FormatTimestamp(now), nil
	}
	if ts, err := dates.ParseTimestamp(when); err == nil {
		return dates.FormatTimestamp(ts), nil
	}
	d, err := dates.ParseRelative(when, dates.Today(t.clock))
	if err != nil {
		return "", err
	}
	return dates.FormatTimestamp(d), nil
}

// resolveDateExpr resolves an ISO date or relative phrase against today.
func (t *Tools) resolveDateExpr(expr string) (time.Time, error) {
	return t.resolveDateExprAt(expr, dates.Today(t.clock))
}

func (t *Tools) resolveDateExprAt(expr string, reference time.Time) (time.Time, error) {
	if d, err := dates.ParseDate(expr); err == nil {
		return d, nil
	}
	return dates.ParseRelative(expr, reference)
}

func limitOrDefault(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	return limit
}
