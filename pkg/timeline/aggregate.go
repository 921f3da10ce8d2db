package timeline

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/unowned-tools/lifelog/pkg/dates"
)

// UpcomingReminders returns events in the reserved reminder category due in
// [reference, reference + windowDays], soonest first. This is the one view
// that orders a category lookup ascending: the next thing due comes first.
func UpcomingReminders(ctx context.Context, dbConn *sql.DB, reference time.Time, windowDays int) ([]Event, error) {
	end, err := dates.FutureDate(reference, windowDays)
	if err != nil {
		return nil, err
	}
	start := dates.Midnight(reference)

	query := selectEventStatement + `
	WHERE category = ? AND timestamp >= ? AND timestamp < ?
	ORDER BY timestamp ASC, id ASC
	`
	return listEvents(ctx, dbConn, query,
		ReminderCategory,
		dates.FormatTimestamp(start),
		dates.FormatTimestamp(end.AddDate(0, 0, 1)),
	)
}

// CategoryBreakdown returns per-category stats sorted by count descending,
// ties broken alphabetically, for stable presentation.
func CategoryBreakdown(ctx context.Context, dbConn *sql.DB) ([]CategoryStat, error) {
	stats, err := ListCategories(ctx, dbConn)
	if err != nil {
		return nil, err
	}
	sortBreakdown(stats)
	return stats, nil
}

func sortBreakdown(stats []CategoryStat) {
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Category < stats[j].Category
	})
}

// TimelineStatistics returns the aggregate snapshot plus the day span between
// the earliest and latest event dates (0 for zero or one event). Reading it
// twice with no intervening writes yields identical results.
func TimelineStatistics(ctx context.Context, dbConn *sql.DB) (Statistics, error) {
	stats, err := GetStats(ctx, dbConn)
	if err != nil {
		return Statistics{}, err
	}
	sortBreakdown(stats.Categories)
	result := Statistics{Stats: stats}

	if stats.Earliest != "" && stats.Latest != "" {
		earliest, err := dates.ParseTimestamp(stats.Earliest)
		if err != nil {
			return Statistics{}, err
		}
		latest, err := dates.ParseTimestamp(stats.Latest)
		if err != nil {
			return Statistics{}, err
		}
		result.SpanDays = int64(dates.Midnight(latest).Sub(dates.Midnight(earliest)).Hours() / 24)
	}
	return result, nil
}
