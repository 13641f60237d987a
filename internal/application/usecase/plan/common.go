// Package plan contains payment plan use cases.
package plan

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/consultorio/dashboard-backend/internal/domain/calendar"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
	domainerror "github.com/consultorio/dashboard-backend/internal/domain/error"
	"github.com/consultorio/dashboard-backend/internal/domain/schedule"
)

// PlanInput carries raw plan parameters from the entrypoint.
type PlanInput struct {
	Kind       string
	ClientName string
	Amount     decimal.Decimal
	StartDate  time.Time
	Periods    int
	DueWeekday int // 0=Sunday..6=Saturday, normalised mod 7
	DueDay     int // clamped to [1,31]
}

// ToPaymentPlan validates the input and builds the plan.
func (in PlanInput) ToPaymentPlan() (entity.PaymentPlan, error) {
	return in.toPlan(true)
}

func (in PlanInput) toPlan(requireClient bool) (entity.PaymentPlan, error) {
	kind := entity.ObligationKind(strings.ToLower(strings.TrimSpace(in.Kind)))
	if !kind.IsValid() {
		return entity.PaymentPlan{}, domainerror.NewPlanError(
			domainerror.ErrCodeInvalidPlanKind,
			"kind must be 'monthly' or 'weekly'",
			domainerror.ErrInvalidObligationKind,
		)
	}

	clientName := strings.TrimSpace(in.ClientName)
	if requireClient && clientName == "" {
		return entity.PaymentPlan{}, domainerror.NewPlanError(
			domainerror.ErrCodePlanClientRequired,
			"client name is required",
			domainerror.ErrPlanClientRequired,
		)
	}

	if in.Amount.IsNegative() {
		return entity.PaymentPlan{}, domainerror.NewPlanError(
			domainerror.ErrCodeNegativeAmount,
			"amount cannot be negative",
			domainerror.ErrNegativeAmount,
		)
	}

	if in.StartDate.IsZero() {
		return entity.PaymentPlan{}, domainerror.NewPlanError(
			domainerror.ErrCodePlanStartRequired,
			"start date is required",
			domainerror.ErrPlanStartDateRequired,
		)
	}

	if in.Periods > schedule.MaxPeriods {
		return entity.PaymentPlan{}, domainerror.NewPlanError(
			domainerror.ErrCodeTooManyPeriods,
			fmt.Sprintf("periods cannot exceed %d", schedule.MaxPeriods),
			domainerror.ErrTooManyPeriods,
		)
	}

	return entity.PaymentPlan{
		Kind:       kind,
		ClientName: clientName,
		Amount:     in.Amount,
		StartDate:  calendar.DateOnly(in.StartDate),
		Periods:    in.Periods,
		DueWeekday: calendar.WeekdayFromInt(in.DueWeekday),
		DueDay:     calendar.ClampDueDay(in.DueDay),
	}, nil
}

// LockKey is the PlanLocker key guarding an analysis' plan.
func LockKey(analysisID uuid.UUID) string {
	return "plan:" + analysisID.String()
}

func obligationIDs(obligations []*entity.Obligation) []string {
	ids := make([]string, len(obligations))
	for i, o := range obligations {
		ids[i] = o.ID
	}
	return ids
}
