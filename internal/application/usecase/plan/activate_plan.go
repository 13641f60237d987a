// Package plan contains payment plan use cases.
package plan

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
	"github.com/consultorio/dashboard-backend/internal/domain/clock"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
	"github.com/consultorio/dashboard-backend/internal/domain/obligation"
)

// ActivatePlanInput represents the input for plan activation.
type ActivatePlanInput struct {
	Plan       PlanInput
	AnalysisID *uuid.UUID // optional originating analysis
}

// ActivatePlanOutput represents the output of plan activation.
type ActivatePlanOutput struct {
	Plan        entity.PaymentPlan
	Obligations []*entity.Obligation
	Deactivated []string
}

// ActivatePlanUseCase creates the obligations of a plan. A plan bound to an
// analysis replaces the analysis' plan through resync, so saving it twice or
// switching its kind never leaves duplicates active.
type ActivatePlanUseCase struct {
	obligationRepo adapter.ObligationRepository
	analysisRepo   adapter.AnalysisRepository
	resync         *ResyncPlanUseCase
	factory        *obligation.Factory
	notifier       adapter.ChangeNotifier
	metrics        adapter.Metrics
	clock          clock.Clock
}

// NewActivatePlanUseCase creates a new ActivatePlanUseCase instance.
func NewActivatePlanUseCase(
	obligationRepo adapter.ObligationRepository,
	analysisRepo adapter.AnalysisRepository,
	resync *ResyncPlanUseCase,
	factory *obligation.Factory,
	notifier adapter.ChangeNotifier,
	metrics adapter.Metrics,
	clk clock.Clock,
) *ActivatePlanUseCase {
	return &ActivatePlanUseCase{
		obligationRepo: obligationRepo,
		analysisRepo:   analysisRepo,
		resync:         resync,
		factory:        factory,
		notifier:       notifier,
		metrics:        metrics,
		clock:          clk,
	}
}

// Execute performs the activation.
func (uc *ActivatePlanUseCase) Execute(ctx context.Context, input ActivatePlanInput) (*ActivatePlanOutput, error) {
	plan, err := input.Plan.ToPaymentPlan()
	if err != nil {
		return nil, err
	}

	if input.AnalysisID != nil {
		return uc.replaceAnalysisPlan(ctx, *input.AnalysisID, plan)
	}

	obligations := uc.factory.BuildFromPlan(plan)
	if err := uc.obligationRepo.SaveAll(ctx, obligations); err != nil {
		return nil, storageError("failed to save obligations", err)
	}

	uc.metrics.ObligationsCreated(string(plan.Kind), len(obligations))
	uc.notifier.Notify(ctx, adapter.ChangeEvent{
		Type:       adapter.ChangeCreated,
		ClientName: plan.ClientName,
		Created:    obligationIDs(obligations),
		OccurredAt: uc.clock.Now(),
	})

	return &ActivatePlanOutput{
		Plan:        plan,
		Obligations: obligations,
		Deactivated: []string{},
	}, nil
}

// replaceAnalysisPlan resyncs first and stores the plan on the analysis only
// once its obligations follow it. A failed store is repaired by repeating the
// call.
func (uc *ActivatePlanUseCase) replaceAnalysisPlan(ctx context.Context, analysisID uuid.UUID, plan entity.PaymentPlan) (*ActivatePlanOutput, error) {
	analysis, err := findAnalysis(ctx, uc.analysisRepo, analysisID)
	if err != nil {
		return nil, err
	}

	plan.ClientName = analysis.ClientName
	plan = plan.WithAnalysis(analysisID)
	out, err := uc.resync.Execute(ctx, ResyncPlanInput{AnalysisID: analysisID, Plan: &plan})
	if err != nil {
		return nil, err
	}

	analysis.Plan = &plan
	analysis.UpdatedAt = uc.clock.Now().UTC()
	if err := uc.analysisRepo.Update(ctx, analysis); err != nil {
		return nil, fmt.Errorf("failed to store analysis plan: %w", err)
	}

	return &ActivatePlanOutput{Plan: plan, Obligations: out.Created, Deactivated: out.Deactivated}, nil
}
