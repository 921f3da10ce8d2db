// Package dates resolves relative date expressions into absolute calendar
// dates. All functions are pure: the current date enters only through an
// injected clock, so every caller of a resolution sequence works against a
// single consistent reference.
package dates

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidOffset indicates a negative or otherwise nonsensical day count.
	ErrInvalidOffset = errors.New("invalid day offset")
	// ErrUnparseableDate indicates a relative-date phrase outside the
	// recognized vocabulary. Callers must surface it, never default to today.
	ErrUnparseableDate = errors.New("unparseable date phrase")
)

const (
	// DateLayout is the canonical calendar-date form.
	DateLayout = "2006-01-02"
	// TimestampLayout is the canonical ISO-8601 date-time form used for
	// storage. Lexicographic order on this layout matches chronological order.
	TimestampLayout = "2006-01-02T15:04:05"
)

var (
	daysAgoRe     = regexp.MustCompile(`^(\d+) days? ago$`)
	inDaysRe      = regexp.MustCompile(`^in (\d+) days?$`)
	daysFromNowRe = regexp.MustCompile(`^(\d+) days? from now$`)
	weeksAgoRe    = regexp.MustCompile(`^(\d+) weeks? ago$`)
)

// Clock supplies the current time. A nil Clock means time.Now.
type Clock func() time.Time

// Today returns the current calendar date (midnight) according to clock.
// This is the only function in the package that may consult wall-clock time.
func Today(clock Clock) time.Time {
	if clock == nil {
		clock = time.Now
	}
	return Midnight(clock())
}

// Midnight truncates t to its calendar date.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FutureDate returns base plus days calendar days. Zero is allowed; a
// negative count fails with ErrInvalidOffset.
func FutureDate(base time.Time, days int) (time.Time, error) {
	if days < 0 {
		return time.Time{}, fmt.Errorf("%w: %d days", ErrInvalidOffset, days)
	}
	return Midnight(base).AddDate(0, 0, days), nil
}

// ParseRelative maps a constrained vocabulary of relative phrases to an
// absolute date against the supplied reference date. Recognized phrases:
// "today", "yesterday", "tomorrow", "N days ago", "in N days",
// "N days from now", "N weeks ago", "last week", "next week", "last month".
// Anything else fails with ErrUnparseableDate.
func ParseRelative(phrase string, reference time.Time) (time.Time, error) {
	term := strings.ToLower(strings.TrimSpace(phrase))
	term = strings.Join(strings.Fields(term), " ")
	ref := Midnight(reference)

	switch term {
	case "today":
		return ref, nil
	case "yesterday":
		return ref.AddDate(0, 0, -1), nil
	case "tomorrow":
		return ref.AddDate(0, 0, 1), nil
	case "last week":
		return ref.AddDate(0, 0, -7), nil
	case "next week":
		return ref.AddDate(0, 0, 7), nil
	case "last month":
		return ref.AddDate(0, 0, -30), nil
	}

	if m := daysAgoRe.FindStringSubmatch(term); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableDate, phrase)
		}
		return ref.AddDate(0, 0, -n), nil
	}
	if m := weeksAgoRe.FindStringSubmatch(term); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableDate, phrase)
		}
		return ref.AddDate(0, 0, -7*n), nil
	}
	for _, re := range []*regexp.Regexp{inDaysRe, daysFromNowRe} {
		if m := re.FindStringSubmatch(term); m != nil {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableDate, phrase)
			}
			return FutureDate(ref, n)
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableDate, phrase)
}

// ParseDate parses a calendar date in canonical YYYY-MM-DD form.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableDate, s)
	}
	return t, nil
}

// ParseTimestamp parses an ISO-8601 date-time. Accepted forms are the
// canonical YYYY-MM-DDTHH:MM:SS, RFC3339, and a bare date (taken as
// midnight). The zone offset, if any, is dropped after parsing: the timeline
// stores local wall-clock time.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(TimestampLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableDate, s)
}

// FormatDate renders t in canonical YYYY-MM-DD form.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatTimestamp renders t in the canonical storage form.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
