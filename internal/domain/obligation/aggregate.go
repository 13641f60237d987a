package obligation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/consultorio/dashboard-backend/internal/domain/calendar"
)

// Billable is anything that can be counted towards period revenue.
type Billable interface {
	IsSettled() bool
	BillingDate() time.Time
	BillingAmount() decimal.Decimal
}

// supersedable is implemented by records that a later version replaced.
// Superseded records are left out of every aggregate.
type supersedable interface {
	IsSuperseded() bool
}

// Aggregate summarises the records falling inside one period.
type Aggregate struct {
	Period         calendar.Period
	Range          calendar.Range
	Count          int
	PaidCount      int
	SumPaid        decimal.Decimal
	SumOutstanding decimal.Decimal
}

// PeriodAggregate counts records dated inside the period containing ref, both
// ends inclusive. Only settled records add to SumPaid.
func PeriodAggregate(records []Billable, ref time.Time, period calendar.Period) Aggregate {
	agg := RangeAggregate(records, calendar.PeriodBounds(ref, period))
	agg.Period = period
	return agg
}

// RangeAggregate counts records dated inside r.
func RangeAggregate(records []Billable, r calendar.Range) Aggregate {
	agg := Aggregate{
		Range:          r,
		SumPaid:        decimal.Zero,
		SumOutstanding: decimal.Zero,
	}

	for _, rec := range records {
		if rec == nil || !r.Contains(rec.BillingDate()) {
			continue
		}
		if s, ok := rec.(supersedable); ok && s.IsSuperseded() {
			continue
		}
		agg.Count++
		if rec.IsSettled() {
			agg.PaidCount++
			agg.SumPaid = agg.SumPaid.Add(rec.BillingAmount())
		} else {
			agg.SumOutstanding = agg.SumOutstanding.Add(rec.BillingAmount())
		}
	}
	return agg
}

// Summary holds the aggregate of every period bucket for one reference date.
type Summary struct {
	Week  Aggregate
	Month Aggregate
	Year  Aggregate
	All   Aggregate
}

// Summarize computes all buckets at once.
func Summarize(records []Billable, ref time.Time) Summary {
	return Summary{
		Week:  PeriodAggregate(records, ref, calendar.PeriodWeek),
		Month: PeriodAggregate(records, ref, calendar.PeriodMonth),
		Year:  PeriodAggregate(records, ref, calendar.PeriodYear),
		All:   PeriodAggregate(records, ref, calendar.PeriodAll),
	}
}
