package dashboard

import (
	"context"
	"time"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
	"github.com/consultorio/dashboard-backend/internal/domain/calendar"
	"github.com/consultorio/dashboard-backend/internal/domain/clock"
	domainerror "github.com/consultorio/dashboard-backend/internal/domain/error"
	"github.com/consultorio/dashboard-backend/internal/domain/obligation"
)

// maxTrendDays caps the span of a trend request.
const maxTrendDays = 5 * 366

// GetTrendsInput represents the input for getting trends.
// Missing dates default to the six months around today.
type GetTrendsInput struct {
	StartDate   *time.Time
	EndDate     *time.Time
	Granularity Granularity
}

// TrendPoint represents a single trend data point.
type TrendPoint struct {
	PeriodLabel  string
	Range        calendar.Range
	Obligations  obligation.Aggregate
	Appointments obligation.Aggregate
	Total        obligation.Aggregate
}

// GetTrendsOutput represents the output of getting trends.
type GetTrendsOutput struct {
	StartDate   time.Time
	EndDate     time.Time
	Granularity Granularity
	Trends      []TrendPoint
}

// GetTrendsUseCase builds a gap-free revenue series.
type GetTrendsUseCase struct {
	obligationRepo  adapter.ObligationRepository
	appointmentRepo adapter.AppointmentRepository
	clock           clock.Clock
}

// NewGetTrendsUseCase creates a new GetTrendsUseCase instance.
func NewGetTrendsUseCase(obligationRepo adapter.ObligationRepository, appointmentRepo adapter.AppointmentRepository, clk clock.Clock) *GetTrendsUseCase {
	return &GetTrendsUseCase{
		obligationRepo:  obligationRepo,
		appointmentRepo: appointmentRepo,
		clock:           clk,
	}
}

// Execute retrieves the trend series for the given range and granularity.
func (uc *GetTrendsUseCase) Execute(ctx context.Context, input GetTrendsInput) (*GetTrendsOutput, error) {
	if input.Granularity == "" {
		input.Granularity = GranularityMonthly
	}

	today := calendar.DateOnly(uc.clock.Now())
	start := today.AddDate(0, -5, 0)
	end := today
	if input.StartDate != nil {
		start = calendar.DateOnly(*input.StartDate)
	}
	if input.EndDate != nil {
		end = calendar.DateOnly(*input.EndDate)
	}

	if err := validateTrendsInput(start, end, input.Granularity); err != nil {
		return nil, err
	}

	obligationRecords, appointmentRecords, err := loadBillables(ctx, uc.obligationRepo, uc.appointmentRepo)
	if err != nil {
		return nil, err
	}
	all := append(append(make([]obligation.Billable, 0, len(obligationRecords)+len(appointmentRecords)), obligationRecords...), appointmentRecords...)

	periods := GeneratePeriodSeries(start, end, input.Granularity)
	trends := make([]TrendPoint, 0, len(periods))
	for _, p := range periods {
		trends = append(trends, TrendPoint{
			PeriodLabel:  p.PeriodLabel,
			Range:        p.Range,
			Obligations:  obligation.RangeAggregate(obligationRecords, p.Range),
			Appointments: obligation.RangeAggregate(appointmentRecords, p.Range),
			Total:        obligation.RangeAggregate(all, p.Range),
		})
	}

	return &GetTrendsOutput{
		StartDate:   start,
		EndDate:     end,
		Granularity: input.Granularity,
		Trends:      trends,
	}, nil
}

// validateTrendsInput validates the input parameters.
func validateTrendsInput(start, end time.Time, granularity Granularity) error {
	if end.Before(start) {
		return domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidDateRange,
			"end_date must be after start_date",
			domainerror.ErrInvalidDateRange,
		)
	}

	if calendar.DaysBetween(start, end) > maxTrendDays {
		return domainerror.NewDashboardError(
			domainerror.ErrCodeDateRangeTooLarge,
			"date range cannot exceed five years",
			domainerror.ErrDateRangeTooLarge,
		)
	}

	if !granularity.IsValid() {
		return domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidGranularity,
			"granularity must be: weekly, monthly, or quarterly",
			domainerror.ErrInvalidGranularity,
		)
	}

	return nil
}
