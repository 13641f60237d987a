// Package schedule generates the ordered due dates of a recurring payment
// plan.
package schedule

import (
	"math"
	"time"

	"github.com/consultorio/dashboard-backend/internal/domain/calendar"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
)

// Params fully determines a schedule.
type Params struct {
	Kind    entity.ObligationKind
	Start   time.Time
	Periods int
	Weekday time.Weekday // weekly plans
	DueDay  int          // monthly plans, expected in [1,31]
}

// ParamsFromPlan extracts the schedule parameters of a plan.
func ParamsFromPlan(plan entity.PaymentPlan) Params {
	return Params{
		Kind:    plan.Kind,
		Start:   plan.StartDate,
		Periods: plan.Periods,
		Weekday: plan.DueWeekday,
		DueDay:  plan.DueDay,
	}
}

// GenerateWeekly returns totalWeeks dates: the first occurrence of
// targetWeekday after start, then one every 7 days.
func GenerateWeekly(start time.Time, totalWeeks int, targetWeekday time.Weekday) []time.Time {
	if totalWeeks <= 0 || start.IsZero() {
		return []time.Time{}
	}

	dates := make([]time.Time, totalWeeks)
	first := calendar.NextWeekday(start, targetWeekday)
	for i := range dates {
		// Offsets from the first anchor, never recomputed per period.
		dates[i] = first.AddDate(0, 0, 7*i)
	}
	return dates
}

// GenerateMonthly returns totalMonths dates, entry i being dueDay of the i-th
// month after start (clamped to the month length). The start month itself is
// never included.
func GenerateMonthly(start time.Time, totalMonths int, dueDay int) []time.Time {
	if totalMonths <= 0 || start.IsZero() {
		return []time.Time{}
	}

	dates := make([]time.Time, totalMonths)
	for i := range dates {
		dates[i] = calendar.MonthlyAnchor(start, i+1, dueDay)
	}
	return dates
}

// Generate dispatches on the plan kind. Unknown kinds yield no dates.
func Generate(p Params) []time.Time {
	switch p.Kind {
	case entity.ObligationKindWeekly:
		return GenerateWeekly(p.Start, p.Periods, p.Weekday)
	case entity.ObligationKindMonthly:
		return GenerateMonthly(p.Start, p.Periods, p.DueDay)
	default:
		return []time.Time{}
	}
}

// CoercePeriods truncates a possibly fractional period count. NaN and
// infinities become 0, which generates nothing.
func CoercePeriods(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	t := math.Trunc(v)
	if t > MaxPeriods {
		return MaxPeriods
	}
	if t < -MaxPeriods {
		return -MaxPeriods
	}
	return int(t)
}

// MaxPeriods is the longest schedule ever generated from a coerced count:
// ten years of weekly payments.
const MaxPeriods = 520
