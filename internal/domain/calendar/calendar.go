// Package calendar contains the pure date arithmetic behind payment
// schedules: weekday anchoring, day-of-month clamping and period bounds.
//
// All functions operate on calendar dates. Time-of-day is discarded and the
// location of the input is preserved, so "midnight local" comparisons hold.
package calendar

import "time"

const (
	// MinDueDay is the smallest valid day-of-month selector.
	MinDueDay = 1
	// MaxDueDay is the largest valid day-of-month selector.
	MaxDueDay = 31

	daysPerWeek = 7
)

// DateOnly truncates t to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysInMonth returns the number of days of the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampDueDay forces a day-of-month selector into [1,31].
func ClampDueDay(day int) int {
	if day < MinDueDay {
		return MinDueDay
	}
	if day > MaxDueDay {
		return MaxDueDay
	}
	return day
}

// WeekdayFromInt maps any integer onto 0=Sunday..6=Saturday.
func WeekdayFromInt(n int) time.Weekday {
	return time.Weekday(((n % daysPerWeek) + daysPerWeek) % daysPerWeek)
}

// NextWeekday returns the first date strictly after from that falls on
// target. When from already is the target weekday the following week's
// occurrence is returned, so the first due date is never from itself.
func NextWeekday(from time.Time, target time.Weekday) time.Time {
	day := DateOnly(from)
	diff := (int(WeekdayFromInt(int(target))) - int(day.Weekday()) + daysPerWeek) % daysPerWeek
	if diff == 0 {
		diff = daysPerWeek
	}
	return day.AddDate(0, 0, diff)
}

// MonthlyAnchor returns the date monthsAhead calendar months after from with
// the day set to min(dueDay, days in that month).
func MonthlyAnchor(from time.Time, monthsAhead, dueDay int) time.Time {
	// Step from the first of the month so AddDate never spills over
	// (Jan 31 + 1 month must land in February).
	first := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, from.Location()).AddDate(0, monthsAhead, 0)
	day := ClampDueDay(dueDay)
	if last := DaysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, from.Location())
}

// DaysBetween returns the number of calendar days from -> to. Only the civil
// dates matter, so DST transitions and clock skew never shift the result.
func DaysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / (24 * time.Hour))
}

// SameDate reports whether a and b fall on the same civil date.
func SameDate(a, b time.Time) bool {
	return DaysBetween(a, b) == 0
}

// WeekStart returns the Monday of the week containing t. Go numbers Sunday
// as 0, so Sunday is shifted to the end of the week.
func WeekStart(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday is 7
	}
	return DateOnly(t).AddDate(0, 0, -(weekday - 1))
}
