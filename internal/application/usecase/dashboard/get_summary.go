// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
	"github.com/consultorio/dashboard-backend/internal/domain/calendar"
	"github.com/consultorio/dashboard-backend/internal/domain/clock"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
	domainerror "github.com/consultorio/dashboard-backend/internal/domain/error"
	"github.com/consultorio/dashboard-backend/internal/domain/obligation"
)

// GetSummaryInput represents the input for the revenue summary.
type GetSummaryInput struct {
	ReferenceDate *time.Time // defaults to today
	Period        string     // empty returns every period
}

// PeriodSummary splits one period's aggregate by record source.
type PeriodSummary struct {
	Total        obligation.Aggregate
	Obligations  obligation.Aggregate
	Appointments obligation.Aggregate
}

// GetSummaryOutput represents the output for the revenue summary.
type GetSummaryOutput struct {
	ReferenceDate time.Time
	Periods       []PeriodSummary
}

// GetSummaryUseCase aggregates obligations and paid appointments per period.
type GetSummaryUseCase struct {
	obligationRepo  adapter.ObligationRepository
	appointmentRepo adapter.AppointmentRepository
	clock           clock.Clock
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(obligationRepo adapter.ObligationRepository, appointmentRepo adapter.AppointmentRepository, clk clock.Clock) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		obligationRepo:  obligationRepo,
		appointmentRepo: appointmentRepo,
		clock:           clk,
	}
}

// Execute computes the summary.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	periods := calendar.Periods
	if input.Period != "" {
		p, err := calendar.ParsePeriod(input.Period)
		if err != nil {
			return nil, domainerror.NewDashboardError(
				domainerror.ErrCodeInvalidPeriod,
				"period must be: week, month, year, or all",
				domainerror.ErrInvalidPeriod,
			)
		}
		periods = []calendar.Period{p}
	}

	ref := uc.clock.Now()
	if input.ReferenceDate != nil {
		ref = *input.ReferenceDate
	}

	obligationRecords, appointmentRecords, err := loadBillables(ctx, uc.obligationRepo, uc.appointmentRepo)
	if err != nil {
		return nil, err
	}
	all := append(append(make([]obligation.Billable, 0, len(obligationRecords)+len(appointmentRecords)), obligationRecords...), appointmentRecords...)

	out := &GetSummaryOutput{ReferenceDate: calendar.DateOnly(ref)}
	for _, p := range periods {
		out.Periods = append(out.Periods, PeriodSummary{
			Total:        obligation.PeriodAggregate(all, ref, p),
			Obligations:  obligation.PeriodAggregate(obligationRecords, ref, p),
			Appointments: obligation.PeriodAggregate(appointmentRecords, ref, p),
		})
	}
	return out, nil
}

// loadBillables returns every obligation and every non-cancelled appointment.
func loadBillables(ctx context.Context, obligationRepo adapter.ObligationRepository, appointmentRepo adapter.AppointmentRepository) ([]obligation.Billable, []obligation.Billable, error) {
	obligations, err := obligationRepo.LoadByScope(ctx, adapter.ObligationScope{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load obligations: %w", err)
	}
	appointments, err := appointmentRepo.List(ctx, adapter.AppointmentFilter{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load appointments: %w", err)
	}

	obligationRecords := make([]obligation.Billable, 0, len(obligations))
	for _, o := range obligations {
		obligationRecords = append(obligationRecords, o)
	}
	appointmentRecords := make([]obligation.Billable, 0, len(appointments))
	for _, a := range appointments {
		if a.Status == entity.AppointmentStatusCancelled {
			continue
		}
		appointmentRecords = append(appointmentRecords, a)
	}
	return obligationRecords, appointmentRecords, nil
}
