package calendar

import (
	"fmt"
	"time"
)

// Period identifies an aggregation bucket.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodAll   Period = "all"
)

// Periods lists every bucket in display order.
var Periods = []Period{PeriodWeek, PeriodMonth, PeriodYear, PeriodAll}

// ParsePeriod validates a bucket name.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case PeriodWeek, PeriodMonth, PeriodYear, PeriodAll:
		return p, nil
	default:
		return "", fmt.Errorf("unknown period %q", s)
	}
}

// Range is an inclusive date range. An unbounded range contains every date.
type Range struct {
	Start     time.Time
	End       time.Time
	Unbounded bool
}

// Contains reports whether t's date lies within the range, both ends
// inclusive.
func (r Range) Contains(t time.Time) bool {
	if r.Unbounded {
		return true
	}
	return DaysBetween(r.Start, t) >= 0 && DaysBetween(t, r.End) >= 0
}

// PeriodBounds returns the bucket containing ref. Weeks run Monday to Sunday.
func PeriodBounds(ref time.Time, period Period) Range {
	loc := ref.Location()

	switch period {
	case PeriodWeek:
		start := WeekStart(ref)
		return Range{Start: start, End: start.AddDate(0, 0, 6)}
	case PeriodMonth:
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, loc)
		return Range{Start: start, End: start.AddDate(0, 1, -1)}
	case PeriodYear:
		start := time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, loc)
		return Range{Start: start, End: time.Date(ref.Year(), time.December, 31, 0, 0, 0, 0, loc)}
	default:
		return Range{Unbounded: true}
	}
}
