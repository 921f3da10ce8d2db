// Package timeline is the event store and aggregation engine for the
// personal timeline: durable, indexed persistence of immutable events plus
// the derived views built on top of it.
package timeline

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/unowned-tools/lifelog/pkg/dates"
)

const (
	insertEventStatement = `
	INSERT INTO events (title, description, category, timestamp, tags, created_at)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	selectEventStatement = `
	SELECT id, title, description, category, timestamp, tags, created_at
	FROM events
	`

	getEventStatement = selectEventStatement + `
	WHERE id = ?
	`

	deleteEventStatement = `
	DELETE FROM events
	WHERE id = ?
	`
)

// InsertEvent validates and persists a new timeline event. Category and tags
// are normalized, the timestamp canonicalized, and id/created_at assigned by
// the store. The full stored record is returned.
func InsertEvent(ctx context.Context, dbConn *sql.DB, draft Draft) (Event, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return Event{}, fmt.Errorf("%w: title must not be empty", ErrValidation)
	}

	if strings.TrimSpace(draft.Timestamp) == "" {
		return Event{}, fmt.Errorf("%w: timestamp is required", ErrValidation)
	}
	ts, err := dates.ParseTimestamp(draft.Timestamp)
	if err != nil {
		return Event{}, fmt.Errorf("%w: timestamp %q is not a valid ISO date-time", ErrValidation, draft.Timestamp)
	}

	category := NormalizeCategory(draft.Category)
	tags := NormalizeTags(draft.Tags)

	var tagsJSON sql.NullString
	if len(tags) > 0 {
		encoded, err := json.Marshal(tags)
		if err != nil {
			return Event{}, fmt.Errorf("%w: encoding tags: %v", ErrStorage, err)
		}
		tagsJSON = sql.NullString{String: string(encoded), Valid: true}
	}

	createdAt := dates.FormatTimestamp(time.Now())

	res, err := dbConn.ExecContext(
		ctx,
		insertEventStatement,
		title,
		strings.TrimSpace(draft.Description),
		category,
		dates.FormatTimestamp(ts),
		tagsJSON,
		createdAt,
	)
	if err != nil {
		return Event{}, fmt.Errorf("%w: inserting event: %v", ErrStorage, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return Event{}, fmt.Errorf("%w: reading inserted event id: %v", ErrStorage, err)
	}

	return GetEvent(ctx, dbConn, id)
}

// GetEvent retrieves a single event by its identifier.
func GetEvent(ctx context.Context, dbConn *sql.DB, id int64) (Event, error) {
	row := dbConn.QueryRowContext(ctx, getEventStatement, id)
	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Event{}, ErrEventNotFound
		}
		return Event{}, fmt.Errorf("%w: fetching event %d: %v", ErrStorage, id, err)
	}
	return event, nil
}

// ListByDateRange returns events whose timestamp falls in [start, end],
// chronological (timestamp ascending, ties by id ascending). Either bound may
// be nil, leaving that side open. End covers its whole calendar day. A limit
// of zero or less means unlimited.
func ListByDateRange(ctx context.Context, dbConn *sql.DB, start, end *time.Time, limit int) ([]Event, error) {
	query := selectEventStatement + " WHERE 1=1"
	var args []any

	if start != nil {
		query += " AND timestamp >= ?"
		args = append(args, dates.FormatTimestamp(dates.Midnight(*start)))
	}
	if end != nil {
		// Inclusive of the whole end day: compare against the next midnight.
		query += " AND timestamp < ?"
		args = append(args, dates.FormatTimestamp(dates.Midnight(*end).AddDate(0, 0, 1)))
	}

	query += " ORDER BY timestamp ASC, id ASC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	return listEvents(ctx, dbConn, query, args...)
}

// ListByCategory returns events with the given (normalized) category, most
// recent first.
func ListByCategory(ctx context.Context, dbConn *sql.DB, category string, limit int) ([]Event, error) {
	query := selectEventStatement + " WHERE category = ? ORDER BY timestamp DESC, id DESC"
	args := []any{NormalizeCategory(category)}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return listEvents(ctx, dbConn, query, args...)
}

// SearchText returns events whose title or description contains term,
// case-insensitively, most recent first.
func SearchText(ctx context.Context, dbConn *sql.DB, term string, limit int) ([]Event, error) {
	pattern := "%" + strings.TrimSpace(term) + "%"
	query := selectEventStatement + " WHERE (title LIKE ? OR description LIKE ?) ORDER BY timestamp DESC, id DESC"
	args := []any{pattern, pattern}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return listEvents(ctx, dbConn, query, args...)
}

// ListRecent returns the limit most recent events (timestamp descending, ties
// by id descending).
func ListRecent(ctx context.Context, dbConn *sql.DB, limit int) ([]Event, error) {
	query := selectEventStatement + " ORDER BY timestamp DESC, id DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return listEvents(ctx, dbConn, query, args...)
}

// QueryEvents applies a combined filter descriptor: every present field
// constrains the result (logical AND), absent fields leave that dimension
// unconstrained. Results are chronological when a date bound is present,
// most recent first otherwise.
func QueryEvents(ctx context.Context, dbConn *sql.DB, q Query) ([]Event, error) {
	query := selectEventStatement + " WHERE 1=1"
	var args []any
	chronological := false

	if q.Start != "" {
		start, err := dates.ParseDate(q.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: start date %q", ErrValidation, q.Start)
		}
		query += " AND timestamp >= ?"
		args = append(args, dates.FormatTimestamp(start))
		chronological = true
	}
	if q.End != "" {
		end, err := dates.ParseDate(q.End)
		if err != nil {
			return nil, fmt.Errorf("%w: end date %q", ErrValidation, q.End)
		}
		query += " AND timestamp < ?"
		args = append(args, dates.FormatTimestamp(end.AddDate(0, 0, 1)))
		chronological = true
	}
	if q.Category != "" {
		query += " AND category = ?"
		args = append(args, NormalizeCategory(q.Category))
	}
	if q.SearchText != "" {
		pattern := "%" + strings.TrimSpace(q.SearchText) + "%"
		query += " AND (title LIKE ? OR description LIKE ?)"
		args = append(args, pattern, pattern)
	}

	if chronological {
		query += " ORDER BY timestamp ASC, id ASC"
	} else {
		query += " ORDER BY timestamp DESC, id DESC"
	}
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	return listEvents(ctx, dbConn, query, args...)
}

// ListCategories returns every distinct category with its event count and the
// earliest/latest event timestamps. Set semantics: no particular order.
func ListCategories(ctx context.Context, dbConn *sql.DB) ([]CategoryStat, error) {
	query := `
	SELECT category, COUNT(*), MIN(timestamp), MAX(timestamp)
	FROM events
	GROUP BY category
	`
	rows, err := dbConn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: listing categories: %v", ErrStorage, err)
	}
	defer rows.Close()

	var stats []CategoryStat
	for rows.Next() {
		var cs CategoryStat
		if err := rows.Scan(&cs.Category, &cs.Count, &cs.Earliest, &cs.Latest); err != nil {
			return nil, fmt.Errorf("%w: scanning category row: %v", ErrStorage, err)
		}
		stats = append(stats, cs)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating category rows: %v", ErrStorage, err)
	}
	return stats, nil
}

// GetStats returns a single aggregate snapshot of the timeline. An empty
// store yields zero counts and empty bounds, never an error.
func GetStats(ctx context.Context, dbConn *sql.DB) (Stats, error) {
	var stats Stats
	query := `SELECT COUNT(*), COALESCE(MIN(timestamp), ''), COALESCE(MAX(timestamp), '') FROM events`
	err := dbConn.QueryRowContext(ctx, query).Scan(&stats.TotalCount, &stats.Earliest, &stats.Latest)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: reading timeline stats: %v", ErrStorage, err)
	}

	stats.Categories, err = ListCategories(ctx, dbConn)
	if err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// DeleteEvent removes an event by id. This is an administrative operation:
// the tool facade never exposes it, events are immutable from the agent's
// point of view.
func DeleteEvent(ctx context.Context, dbConn *sql.DB, id int64) error {
	res, err := dbConn.ExecContext(ctx, deleteEventStatement, id)
	if err != nil {
		return fmt.Errorf("%w: deleting event %d: %v", ErrStorage, id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: deleting event %d: %v", ErrStorage, id, err)
	}
	if affected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func listEvents(ctx context.Context, dbConn *sql.DB, query string, args ...any) ([]Event, error) {
	rows, err := dbConn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying events: %v", ErrStorage, err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning event row: %v", ErrStorage, err)
		}
		events = append(events, event)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating event rows: %v", ErrStorage, err)
	}
	return events, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (Event, error) {
	var event Event
	var description, tagsJSON sql.NullString

	err := row.Scan(
		&event.ID,
		&event.Title,
		&description,
		&event.Category,
		&event.Timestamp,
		&tagsJSON,
		&event.CreatedAt,
	)
	if err != nil {
		return Event{}, err
	}

	event.Description = description.String
	if tagsJSON.Valid && tagsJSON.String != "" {
		if err := json.Unmarshal([]byte(tagsJSON.String), &event.Tags); err != nil {
			return Event{}, fmt.Errorf("decoding tags for event %d: %w", event.ID, err)
		}
	}
	return event, nil
}
