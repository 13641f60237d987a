package schedule

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consultorio/dashboard-backend/internal/domain/entity"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerateWeekly(t *testing.T) {
	t.Run("first occurrence strictly after start", func(t *testing.T) {
		// 2024-06-03 is a Monday.
		dates := GenerateWeekly(date(2024, 6, 3), 3, time.Friday)
		require.Len(t, dates, 3)
		assert.Equal(t, date(2024, 6, 7), dates[0])
		assert.Equal(t, date(2024, 6, 14), dates[1])
		assert.Equal(t, date(2024, 6, 21), dates[2])
	})

	t.Run("start on target weekday moves a full week", func(t *testing.T) {
		dates := GenerateWeekly(date(2024, 6, 7), 1, time.Friday)
		require.Len(t, dates, 1)
		assert.Equal(t, date(2024, 6, 14), dates[0])
	})

	t.Run("dates are seven days apart and share the weekday", func(t *testing.T) {
		dates := GenerateWeekly(date(2024, 12, 20), 8, time.Wednesday)
		require.Len(t, dates, 8)
		for i, d := range dates {
			assert.Equal(t, time.Wednesday, d.Weekday())
			if i > 0 {
				assert.Equal(t, 7*24*time.Hour, d.Sub(dates[i-1]))
			}
		}
	})

	t.Run("non-positive count yields nothing", func(t *testing.T) {
		assert.Empty(t, GenerateWeekly(date(2024, 6, 3), 0, time.Friday))
		assert.Empty(t, GenerateWeekly(date(2024, 6, 3), -2, time.Friday))
	})

	t.Run("zero start yields nothing", func(t *testing.T) {
		assert.Empty(t, GenerateWeekly(time.Time{}, 4, time.Friday))
	})
}

func TestGenerateMonthly(t *testing.T) {
	t.Run("clamps to short months", func(t *testing.T) {
		dates := GenerateMonthly(date(2024, 1, 15), 3, 31)
		require.Len(t, dates, 3)
		assert.Equal(t, date(2024, 2, 29), dates[0])
		assert.Equal(t, date(2024, 3, 31), dates[1])
		assert.Equal(t, date(2024, 4, 30), dates[2])
	})

	t.Run("start month is skipped even when due day is ahead", func(t *testing.T) {
		dates := GenerateMonthly(date(2024, 3, 1), 1, 20)
		require.Len(t, dates, 1)
		assert.Equal(t, date(2024, 4, 20), dates[0])
	})

	t.Run("crosses the year boundary", func(t *testing.T) {
		dates := GenerateMonthly(date(2024, 11, 30), 3, 30)
		require.Len(t, dates, 3)
		assert.Equal(t, date(2024, 12, 30), dates[0])
		assert.Equal(t, date(2025, 1, 30), dates[1])
		assert.Equal(t, date(2025, 2, 28), dates[2])
	})

	t.Run("strictly increasing", func(t *testing.T) {
		dates := GenerateMonthly(date(2023, 1, 31), 24, 31)
		require.Len(t, dates, 24)
		for i := 1; i < len(dates); i++ {
			assert.True(t, dates[i].After(dates[i-1]))
		}
	})

	t.Run("non-positive count yields nothing", func(t *testing.T) {
		assert.Empty(t, GenerateMonthly(date(2024, 1, 15), 0, 10))
	})
}

func TestGenerate(t *testing.T) {
	start := date(2024, 6, 3)

	weekly := Generate(Params{Kind: entity.ObligationKindWeekly, Start: start, Periods: 2, Weekday: time.Friday, DueDay: 9})
	assert.Equal(t, GenerateWeekly(start, 2, time.Friday), weekly)

	monthly := Generate(Params{Kind: entity.ObligationKindMonthly, Start: start, Periods: 2, Weekday: time.Friday, DueDay: 9})
	assert.Equal(t, GenerateMonthly(start, 2, 9), monthly)

	assert.Empty(t, Generate(Params{Kind: "yearly", Start: start, Periods: 2}))
}

func TestParamsFromPlan(t *testing.T) {
	plan := entity.PaymentPlan{
		Kind:       entity.ObligationKindMonthly,
		ClientName: "Ana",
		StartDate:  date(2024, 1, 1),
		Periods:    6,
		DueWeekday: time.Tuesday,
		DueDay:     10,
	}

	p := ParamsFromPlan(plan)
	assert.Equal(t, Params{Kind: entity.ObligationKindMonthly, Start: date(2024, 1, 1), Periods: 6, Weekday: time.Tuesday, DueDay: 10}, p)
}

func TestCoercePeriods(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{4, 4},
		{3.9, 3},
		{0.5, 0},
		{-1.5, -1},
		{math.NaN(), 0},
		{math.Inf(1), 0},
		{1e9, MaxPeriods},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CoercePeriods(tt.in), "input %v", tt.in)
	}
}
