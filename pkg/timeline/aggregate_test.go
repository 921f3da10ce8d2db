package timeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/unowned-tools/lifelog/pkg/dates"
)

func TestUpcomingReminders(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()

	mustInsert(t, ctx, testDB, Draft{Title: "Cancel Netflix", Category: "reminder", Timestamp: "2025-11-18T09:00:00"})
	mustInsert(t, ctx, testDB, Draft{Title: "Renew passport", Category: "reminder", Timestamp: "2025-12-01T09:00:00"})
	mustInsert(t, ctx, testDB, Draft{Title: "Pay rent", Category: "reminder", Timestamp: "2025-11-10T09:00:00"})
	// A non-reminder event inside the window must not appear.
	mustInsert(t, ctx, testDB, Draft{Title: "Lunch", Category: "social", Timestamp: "2025-11-12T12:00:00"})

	reference := time.Date(2025, 11, 8, 0, 0, 0, 0, time.UTC)
	reminders, err := UpcomingReminders(ctx, testDB, reference, 15)
	if err != nil {
		t.Fatalf("UpcomingReminders failed: %v", err)
	}

	// Soonest first, 2025-12-01 outside the 15-day window.
	if len(reminders) != 2 {
		t.Fatalf("Expected 2 reminders in window, got %d: %+v", len(reminders), reminders)
	}
	if reminders[0].Title != "Pay rent" || reminders[1].Title != "Cancel Netflix" {
		t.Errorf("Expected ascending due order [Pay rent, Cancel Netflix], got %+v", reminders)
	}

	// A reminder due before the reference is not upcoming.
	reminders, err = UpcomingReminders(ctx, testDB, time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC), 30)
	if err != nil {
		t.Fatalf("UpcomingReminders failed: %v", err)
	}
	if len(reminders) != 1 || reminders[0].Title != "Renew passport" {
		t.Errorf("Expected only the December reminder, got %+v", reminders)
	}

	if _, err := UpcomingReminders(ctx, testDB, reference, -1); !errors.Is(err, dates.ErrInvalidOffset) {
		t.Errorf("Expected ErrInvalidOffset for negative window, got %v", err)
	}
}

func TestCategoryBreakdownOrdering(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()

	for _, d := range []Draft{
		{Title: "a", Category: "travel", Timestamp: "2025-01-01T10:00:00"},
		{Title: "b", Category: "travel", Timestamp: "2025-01-02T10:00:00"},
		{Title: "c", Category: "health", Timestamp: "2025-01-03T10:00:00"},
		{Title: "d", Category: "career", Timestamp: "2025-01-04T10:00:00"},
	} {
		mustInsert(t, ctx, testDB, d)
	}

	breakdown, err := CategoryBreakdown(ctx, testDB)
	if err != nil {
		t.Fatalf("CategoryBreakdown failed: %v", err)
	}

	want := []struct {
		category string
		count    int64
	}{
		{"travel", 2},  // highest count first
		{"career", 1},  // ties alphabetical
		{"health", 1},
	}
	if len(breakdown) != len(want) {
		t.Fatalf("Expected %d categories, got %d", len(want), len(breakdown))
	}
	for i, w := range want {
		if breakdown[i].Category != w.category || breakdown[i].Count != w.count {
			t.Errorf("Position %d: expected %s/%d, got %s/%d", i, w.category, w.count, breakdown[i].Category, breakdown[i].Count)
		}
	}
}

func TestCategoryBreakdownSumsToTotal(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()

	for _, d := range []Draft{
		{Title: "a", Category: "travel", Timestamp: "2025-01-01T10:00:00"},
		{Title: "b", Category: "health", Timestamp: "2025-01-02T10:00:00"},
		{Title: "c", Category: "health", Timestamp: "2025-01-03T10:00:00"},
		{Title: "d", Timestamp: "2025-01-04T10:00:00"},
	} {
		mustInsert(t, ctx, testDB, d)
	}

	stats, err := TimelineStatistics(ctx, testDB)
	if err != nil {
		t.Fatalf("TimelineStatistics failed: %v", err)
	}

	var sum int64
	for _, cs := range stats.Categories {
		sum += cs.Count
	}
	if sum != stats.TotalCount {
		t.Errorf("Category counts sum to %d, total is %d", sum, stats.TotalCount)
	}
}

func TestTimelineStatisticsEmptyStore(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()

	stats, err := TimelineStatistics(ctx, testDB)
	if err != nil {
		t.Fatalf("TimelineStatistics failed on empty store: %v", err)
	}
	if stats.TotalCount != 0 {
		t.Errorf("Expected total 0, got %d", stats.TotalCount)
	}
	if stats.Earliest != "" || stats.Latest != "" {
		t.Errorf("Expected empty bounds, got earliest=%q latest=%q", stats.Earliest, stats.Latest)
	}
	if len(stats.Categories) != 0 {
		t.Errorf("Expected empty category breakdown, got %+v", stats.Categories)
	}
	if stats.SpanDays != 0 {
		t.Errorf("Expected zero span, got %d", stats.SpanDays)
	}
}

func TestTimelineStatisticsSpanDays(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()

	mustInsert(t, ctx, testDB, Draft{Title: "only", Timestamp: "2025-06-15T12:00:00"})

	stats, err := TimelineStatistics(ctx, testDB)
	if err != nil {
		t.Fatalf("TimelineStatistics failed: %v", err)
	}
	if stats.SpanDays != 0 {
		t.Errorf("Expected zero span for a single event, got %d", stats.SpanDays)
	}

	mustInsert(t, ctx, testDB, Draft{Title: "later", Timestamp: "2025-06-25T06:00:00"})
	stats, err = TimelineStatistics(ctx, testDB)
	if err != nil {
		t.Fatalf("TimelineStatistics failed: %v", err)
	}
	if stats.SpanDays != 10 {
		t.Errorf("Expected 10-day span, got %d", stats.SpanDays)
	}
	if stats.Earliest != "2025-06-15T12:00:00" || stats.Latest != "2025-06-25T06:00:00" {
		t.Errorf("Unexpected bounds: %+v", stats.Stats)
	}
}

func TestTimelineStatisticsIdempotent(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()

	mustInsert(t, ctx, testDB, Draft{Title: "a", Category: "travel", Timestamp: "2025-01-01T10:00:00"})
	mustInsert(t, ctx, testDB, Draft{Title: "b", Category: "health", Timestamp: "2025-02-01T10:00:00"})

	first, err := TimelineStatistics(ctx, testDB)
	if err != nil {
		t.Fatalf("TimelineStatistics failed: %v", err)
	}
	second, err := TimelineStatistics(ctx, testDB)
	if err != nil {
		t.Fatalf("TimelineStatistics failed: %v", err)
	}

	if first.TotalCount != second.TotalCount || first.Earliest != second.Earliest ||
		first.Latest != second.Latest || first.SpanDays != second.SpanDays {
		t.Errorf("Statistics changed without writes: %+v vs %+v", first, second)
	}
	if len(first.Categories) != len(second.Categories) {
		t.Fatalf("Category breakdown changed without writes")
	}
	for i := range first.Categories {
		if first.Categories[i] != second.Categories[i] {
			t.Errorf("Category breakdown position %d changed: %+v vs %+v", i, first.Categories[i], second.Categories[i])
		}
	}
}
