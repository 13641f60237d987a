// Package analysis contains analysis-related use cases.
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
	"github.com/consultorio/dashboard-backend/internal/application/usecase/plan"
	"github.com/consultorio/dashboard-backend/internal/domain/clock"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
)

// UpdateAnalysisInput represents the input for analysis update.
type UpdateAnalysisInput struct {
	AnalysisID  uuid.UUID
	ClientName  *string         // Optional
	ServiceType *string         // Optional
	SessionDate *time.Time      // Optional
	Notes       *string         // Optional
	Plan        *plan.PlanInput // Optional, replaces the plan
	RemovePlan  bool            // Drops the plan and its outstanding obligations
}

// UpdateAnalysisOutput represents the output of analysis update.
type UpdateAnalysisOutput struct {
	Analysis    *entity.Analysis
	Resynced    bool
	Created     []*entity.Obligation
	Deactivated []string
	Deleted     []string
}

// UpdateAnalysisUseCase edits an analysis. A changed plan supersedes the
// outstanding obligations of the old one.
type UpdateAnalysisUseCase struct {
	analysisRepo   adapter.AnalysisRepository
	obligationRepo adapter.ObligationRepository
	resync         *plan.ResyncPlanUseCase
	notifier       adapter.ChangeNotifier
	clock          clock.Clock
}

// NewUpdateAnalysisUseCase creates a new UpdateAnalysisUseCase instance.
func NewUpdateAnalysisUseCase(
	analysisRepo adapter.AnalysisRepository,
	obligationRepo adapter.ObligationRepository,
	resync *plan.ResyncPlanUseCase,
	notifier adapter.ChangeNotifier,
	clk clock.Clock,
) *UpdateAnalysisUseCase {
	return &UpdateAnalysisUseCase{
		analysisRepo:   analysisRepo,
		obligationRepo: obligationRepo,
		resync:         resync,
		notifier:       notifier,
		clock:          clk,
	}
}

// Execute performs the analysis update.
func (uc *UpdateAnalysisUseCase) Execute(ctx context.Context, input UpdateAnalysisInput) (*UpdateAnalysisOutput, error) {
	analysis, err := findAnalysis(ctx, uc.analysisRepo, input.AnalysisID)
	if err != nil {
		return nil, err
	}

	var previous *entity.PaymentPlan
	if analysis.Plan != nil {
		p := *analysis.Plan
		previous = &p
	}

	if input.ClientName != nil {
		name, err := cleanClientName(*input.ClientName)
		if err != nil {
			return nil, err
		}
		analysis.ClientName = name
		if analysis.Plan != nil {
			analysis.Plan.ClientName = name
		}
	}

	if input.ServiceType != nil {
		st, err := parseServiceType(*input.ServiceType)
		if err != nil {
			return nil, err
		}
		analysis.ServiceType = st
	}

	if input.SessionDate != nil {
		analysis.SessionDate = *input.SessionDate
	}
	if input.Notes != nil {
		analysis.Notes = *input.Notes
	}

	switch {
	case input.RemovePlan:
		analysis.Plan = nil
	case input.Plan != nil:
		p, err := buildPlan(*input.Plan, analysis.ClientName)
		if err != nil {
			return nil, err
		}
		bound := p.WithAnalysis(analysis.ID)
		analysis.Plan = &bound
	}

	now := uc.clock.Now()
	out := &UpdateAnalysisOutput{Analysis: analysis}

	// Obligations follow the new plan before the analysis stores it, so a
	// failed resync leaves the old plan in place and the edit can be retried.
	switch {
	case previous != nil && !analysis.HasPlan():
		deleted, err := uc.obligationRepo.DeleteActiveByAnalysis(ctx, analysis.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to remove plan obligations: %w", err)
		}
		out.Deleted = deleted
		if len(deleted) > 0 {
			uc.notifier.Notify(ctx, adapter.ChangeEvent{
				Type:       adapter.ChangeDeleted,
				ClientName: analysis.ClientName,
				AnalysisID: &analysis.ID,
				Deleted:    deleted,
				OccurredAt: now,
			})
		}
	case analysis.HasPlan() && (previous == nil || !previous.SameSchedule(*analysis.Plan)):
		res, err := uc.resync.Execute(ctx, plan.ResyncPlanInput{AnalysisID: analysis.ID, Plan: analysis.Plan})
		if err != nil {
			return nil, err
		}
		out.Resynced = true
		out.Created = res.Created
		out.Deactivated = res.Deactivated
	}

	analysis.UpdatedAt = now.UTC()
	if err := uc.analysisRepo.Update(ctx, analysis); err != nil {
		return nil, fmt.Errorf("failed to update analysis: %w", err)
	}

	return out, nil
}
