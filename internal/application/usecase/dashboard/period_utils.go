package dashboard

import (
	"fmt"
	"time"

	"github.com/consultorio/dashboard-backend/internal/domain/calendar"
)

// Granularity represents the bucket size of a trend series.
type Granularity string

const (
	GranularityWeekly    Granularity = "weekly"
	GranularityMonthly   Granularity = "monthly"
	GranularityQuarterly Granularity = "quarterly"
)

// IsValid reports whether g is a supported granularity.
func (g Granularity) IsValid() bool {
	return g == GranularityWeekly || g == GranularityMonthly || g == GranularityQuarterly
}

// monthAbbreviations maps months to Portuguese abbreviations.
var monthAbbreviations = map[time.Month]string{
	time.January:   "Jan",
	time.February:  "Fev",
	time.March:     "Mar",
	time.April:     "Abr",
	time.May:       "Mai",
	time.June:      "Jun",
	time.July:      "Jul",
	time.August:    "Ago",
	time.September: "Set",
	time.October:   "Out",
	time.November:  "Nov",
	time.December:  "Dez",
}

// GeneratePeriodLabel generates a human-readable label for a period based on granularity.
// Formats:
// - Weekly: "S{week} {year}" (e.g., "S12 2025")
// - Monthly: "{month_abbr} {year}" (e.g., "Mar 2025")
// - Quarterly: "T{quarter} {year}" (e.g., "T1 2025")
func GeneratePeriodLabel(date time.Time, granularity Granularity) string {
	switch granularity {
	case GranularityWeekly:
		year, week := date.ISOWeek()
		return fmt.Sprintf("S%d %d", week, year)
	case GranularityMonthly:
		return fmt.Sprintf("%s %d", monthAbbreviations[date.Month()], date.Year())
	case GranularityQuarterly:
		quarter := (int(date.Month())-1)/3 + 1
		return fmt.Sprintf("T%d %d", quarter, date.Year())
	default:
		return date.Format("02/01/2006")
	}
}

// PeriodInfo holds information about a single period.
type PeriodInfo struct {
	Range       calendar.Range
	PeriodLabel string
}

// periodStart returns the first day of the period containing date.
func periodStart(date time.Time, granularity Granularity) time.Time {
	date = calendar.DateOnly(date)
	switch granularity {
	case GranularityWeekly:
		return calendar.WeekStart(date)
	case GranularityQuarterly:
		quarter := (int(date.Month()) - 1) / 3
		return time.Date(date.Year(), time.Month(quarter*3+1), 1, 0, 0, 0, 0, date.Location())
	default:
		return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	}
}

// nextPeriod advances a period start by one step.
func nextPeriod(start time.Time, granularity Granularity) time.Time {
	switch granularity {
	case GranularityWeekly:
		return start.AddDate(0, 0, 7)
	case GranularityQuarterly:
		return start.AddDate(0, 3, 0)
	default:
		return start.AddDate(0, 1, 0)
	}
}

// GeneratePeriodSeries generates every whole period touching startDate..endDate,
// so the series has no gaps.
func GeneratePeriodSeries(startDate, endDate time.Time, granularity Granularity) []PeriodInfo {
	var periods []PeriodInfo
	last := calendar.DateOnly(endDate)

	for current := periodStart(startDate, granularity); !current.After(last); {
		next := nextPeriod(current, granularity)
		periods = append(periods, PeriodInfo{
			Range:       calendar.Range{Start: current, End: next.AddDate(0, 0, -1)},
			PeriodLabel: GeneratePeriodLabel(current, granularity),
		})
		current = next
	}
	return periods
}
