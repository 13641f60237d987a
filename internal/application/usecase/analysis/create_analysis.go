// Package analysis contains analysis-related use cases.
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
	"github.com/consultorio/dashboard-backend/internal/application/usecase/plan"
	"github.com/consultorio/dashboard-backend/internal/domain/clock"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
)

// CreateAnalysisInput represents the input for analysis creation.
type CreateAnalysisInput struct {
	ClientName  string
	ServiceType string
	SessionDate time.Time
	Notes       string
	Plan        *plan.PlanInput // Optional
}

// CreateAnalysisOutput represents the output of analysis creation.
type CreateAnalysisOutput struct {
	Analysis    *entity.Analysis
	Obligations []*entity.Obligation
}

// CreateAnalysisUseCase records an analysis and activates its plan.
type CreateAnalysisUseCase struct {
	analysisRepo adapter.AnalysisRepository
	resync       *plan.ResyncPlanUseCase
	clock        clock.Clock
}

// NewCreateAnalysisUseCase creates a new CreateAnalysisUseCase instance.
func NewCreateAnalysisUseCase(analysisRepo adapter.AnalysisRepository, resync *plan.ResyncPlanUseCase, clk clock.Clock) *CreateAnalysisUseCase {
	return &CreateAnalysisUseCase{
		analysisRepo: analysisRepo,
		resync:       resync,
		clock:        clk,
	}
}

// Execute performs the analysis creation.
func (uc *CreateAnalysisUseCase) Execute(ctx context.Context, input CreateAnalysisInput) (*CreateAnalysisOutput, error) {
	clientName, err := cleanClientName(input.ClientName)
	if err != nil {
		return nil, err
	}

	serviceType, err := parseServiceType(input.ServiceType)
	if err != nil {
		return nil, err
	}

	var paymentPlan *entity.PaymentPlan
	if input.Plan != nil {
		if paymentPlan, err = buildPlan(*input.Plan, clientName); err != nil {
			return nil, err
		}
	}

	analysis := entity.NewAnalysis(clientName, serviceType, input.SessionDate, input.Notes, paymentPlan, uc.clock.Now())
	if err := uc.analysisRepo.Create(ctx, analysis); err != nil {
		return nil, fmt.Errorf("failed to create analysis: %w", err)
	}

	out := &CreateAnalysisOutput{Analysis: analysis, Obligations: []*entity.Obligation{}}
	if analysis.HasPlan() {
		res, err := uc.resync.Execute(ctx, plan.ResyncPlanInput{AnalysisID: analysis.ID, Plan: analysis.Plan})
		if err != nil {
			return nil, err
		}
		out.Obligations = res.Created
	}
	return out, nil
}
