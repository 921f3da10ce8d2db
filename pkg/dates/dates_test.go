package dates

import (
	"errors"
	"testing"
	"time"
)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func TestToday(t *testing.T) {
	now := time.Date(2025, 11, 8, 14, 30, 45, 123, time.UTC)
	today := Today(fixedClock(now))

	want := time.Date(2025, 11, 8, 0, 0, 0, 0, time.UTC)
	if !today.Equal(want) {
		t.Errorf("Today returned %v, want %v", today, want)
	}

	// nil clock falls back to wall-clock time, truncated to midnight
	wall := Today(nil)
	if wall.Hour() != 0 || wall.Minute() != 0 || wall.Second() != 0 {
		t.Errorf("Today(nil) not truncated to midnight: %v", wall)
	}
}

func TestFutureDate(t *testing.T) {
	base := time.Date(2025, 11, 8, 10, 0, 0, 0, time.UTC)

	got, err := FutureDate(base, 10)
	if err != nil {
		t.Fatalf("FutureDate failed: %v", err)
	}
	if FormatDate(got) != "2025-11-18" {
		t.Errorf("FutureDate(2025-11-08, 10) = %s, want 2025-11-18", FormatDate(got))
	}

	// zero offset is valid and yields the base date
	got, err = FutureDate(base, 0)
	if err != nil {
		t.Fatalf("FutureDate with zero offset failed: %v", err)
	}
	if FormatDate(got) != "2025-11-08" {
		t.Errorf("FutureDate(base, 0) = %s, want 2025-11-08", FormatDate(got))
	}
}

func TestFutureDateRejectsNegativeOffsets(t *testing.T) {
	bases := []time.Time{
		time.Date(2025, 11, 8, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		time.Date(1999, 12, 31, 23, 59, 59, 0, time.UTC),
	}
	for _, base := range bases {
		if _, err := FutureDate(base, -1); !errors.Is(err, ErrInvalidOffset) {
			t.Errorf("FutureDate(%s, -1): expected ErrInvalidOffset, got %v", FormatDate(base), err)
		}
	}
}

func TestParseRelative(t *testing.T) {
	ref := time.Date(2025, 11, 8, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		phrase string
		want   string
	}{
		{"today", "2025-11-08"},
		{"yesterday", "2025-11-07"},
		{"tomorrow", "2025-11-09"},
		{"3 days ago", "2025-11-05"},
		{"1 day ago", "2025-11-07"},
		{"in 10 days", "2025-11-18"},
		{"in 1 day", "2025-11-09"},
		{"10 days from now", "2025-11-18"},
		{"last week", "2025-11-01"},
		{"next week", "2025-11-15"},
		{"last month", "2025-10-09"},
		{"2 weeks ago", "2025-10-25"},
		{"  Tomorrow ", "2025-11-09"}, // case and whitespace insensitive
		{"IN  5  DAYS", "2025-11-13"},
	}
	for _, tc := range cases {
		got, err := ParseRelative(tc.phrase, ref)
		if err != nil {
			t.Errorf("ParseRelative(%q) failed: %v", tc.phrase, err)
			continue
		}
		if FormatDate(got) != tc.want {
			t.Errorf("ParseRelative(%q) = %s, want %s", tc.phrase, FormatDate(got), tc.want)
		}
	}
}

func TestParseRelativeUnrecognized(t *testing.T) {
	ref := time.Date(2025, 11, 8, 0, 0, 0, 0, time.UTC)
	for _, phrase := range []string{"", "sometime soon", "next millennium", "days ago", "in days", "-3 days ago"} {
		if _, err := ParseRelative(phrase, ref); !errors.Is(err, ErrUnparseableDate) {
			t.Errorf("ParseRelative(%q): expected ErrUnparseableDate, got %v", phrase, err)
		}
	}
}

// ParseRelative("in N days") and FutureDate(ref, N) must agree for any
// reference date, so the event-logging path and the reminder path cannot
// drift apart.
func TestParseRelativeMatchesFutureDate(t *testing.T) {
	refs := []time.Time{
		time.Date(2025, 11, 8, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC), // leap-year boundary
		time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC),
	}
	for _, ref := range refs {
		fromPhrase, err := ParseRelative("in 10 days", ref)
		if err != nil {
			t.Fatalf("ParseRelative failed: %v", err)
		}
		fromOffset, err := FutureDate(ref, 10)
		if err != nil {
			t.Fatalf("FutureDate failed: %v", err)
		}
		if !fromPhrase.Equal(fromOffset) {
			t.Errorf("ref %s: ParseRelative gave %v, FutureDate gave %v", FormatDate(ref), fromPhrase, fromOffset)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2025-01-14T15:30:00", "2025-01-14T15:30:00"},
		{"2025-01-14T15:30:00Z", "2025-01-14T15:30:00"},
		{"2025-01-14", "2025-01-14T00:00:00"},
	}
	for _, tc := range cases {
		got, err := ParseTimestamp(tc.in)
		if err != nil {
			t.Errorf("ParseTimestamp(%q) failed: %v", tc.in, err)
			continue
		}
		if FormatTimestamp(got) != tc.want {
			t.Errorf("ParseTimestamp(%q) = %s, want %s", tc.in, FormatTimestamp(got), tc.want)
		}
	}

	for _, bad := range []string{"", "not a date", "14/01/2025", "2025-13-40T00:00:00"} {
		if _, err := ParseTimestamp(bad); err == nil {
			t.Errorf("ParseTimestamp(%q): expected error, got none", bad)
		}
	}
}
