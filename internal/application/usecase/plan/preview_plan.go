// Package plan contains payment plan use cases.
package plan

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/consultorio/dashboard-backend/internal/domain/calendar"
	"github.com/consultorio/dashboard-backend/internal/domain/clock"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
	"github.com/consultorio/dashboard-backend/internal/domain/obligation"
	"github.com/consultorio/dashboard-backend/internal/domain/schedule"
)

// PreviewPlanInput represents the input for plan preview.
type PreviewPlanInput struct {
	Plan PlanInput
}

// PreviewItem is one due date the plan would create.
type PreviewItem struct {
	SequenceIndex int
	DueDate       time.Time
	Amount        decimal.Decimal
	Urgency       obligation.Urgency
}

// PreviewPlanOutput represents the output of plan preview.
type PreviewPlanOutput struct {
	Plan  entity.PaymentPlan
	Items []PreviewItem
	Total decimal.Decimal
}

// PreviewPlanUseCase computes a plan's schedule without persisting anything.
type PreviewPlanUseCase struct {
	memo  *schedule.Memo
	clock clock.Clock
}

// NewPreviewPlanUseCase creates a new PreviewPlanUseCase instance.
func NewPreviewPlanUseCase(memo *schedule.Memo, clk clock.Clock) *PreviewPlanUseCase {
	return &PreviewPlanUseCase{
		memo:  memo,
		clock: clk,
	}
}

// Execute performs the preview. A client name is optional here.
func (uc *PreviewPlanUseCase) Execute(ctx context.Context, input PreviewPlanInput) (*PreviewPlanOutput, error) {
	plan, err := input.Plan.toPlan(false)
	if err != nil {
		return nil, err
	}

	dates := uc.memo.Generate(schedule.ParamsFromPlan(plan))
	today := uc.clock.Now()

	items := make([]PreviewItem, len(dates))
	for i, due := range dates {
		items[i] = PreviewItem{
			SequenceIndex: i + 1,
			DueDate:       due,
			Amount:        plan.Amount,
			Urgency:       obligation.ClassifyUrgency(calendar.DaysBetween(today, due)),
		}
	}

	return &PreviewPlanOutput{
		Plan:  plan,
		Items: items,
		Total: plan.Amount.Mul(decimal.NewFromInt(int64(len(dates)))),
	}, nil
}
