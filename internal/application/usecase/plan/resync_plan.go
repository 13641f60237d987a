// Package plan contains payment plan use cases.
package plan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
	"github.com/consultorio/dashboard-backend/internal/domain/clock"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
	domainerror "github.com/consultorio/dashboard-backend/internal/domain/error"
	"github.com/consultorio/dashboard-backend/internal/domain/obligation"
)

// ResyncPlanInput represents the input for plan resync.
type ResyncPlanInput struct {
	AnalysisID uuid.UUID
	// Plan to apply. Nil resyncs the plan stored on the analysis.
	Plan *entity.PaymentPlan
}

// ResyncPlanOutput represents the output of plan resync.
type ResyncPlanOutput struct {
	Deactivated []string
	Created     []*entity.Obligation
}

// ResyncPlanUseCase supersedes a plan's active obligations with a fresh
// schedule. An analysis carries one plan, so active obligations of any other
// kind are superseded too. At most one resync per plan runs at a time.
type ResyncPlanUseCase struct {
	obligationRepo adapter.ObligationRepository
	analysisRepo   adapter.AnalysisRepository
	locker         adapter.PlanLocker
	factory        *obligation.Factory
	notifier       adapter.ChangeNotifier
	metrics        adapter.Metrics
	clock          clock.Clock
}

// NewResyncPlanUseCase creates a new ResyncPlanUseCase instance.
func NewResyncPlanUseCase(
	obligationRepo adapter.ObligationRepository,
	analysisRepo adapter.AnalysisRepository,
	locker adapter.PlanLocker,
	factory *obligation.Factory,
	notifier adapter.ChangeNotifier,
	metrics adapter.Metrics,
	clk clock.Clock,
) *ResyncPlanUseCase {
	return &ResyncPlanUseCase{
		obligationRepo: obligationRepo,
		analysisRepo:   analysisRepo,
		locker:         locker,
		factory:        factory,
		notifier:       notifier,
		metrics:        metrics,
		clock:          clk,
	}
}

// Execute performs the resync.
func (uc *ResyncPlanUseCase) Execute(ctx context.Context, input ResyncPlanInput) (*ResyncPlanOutput, error) {
	plan, err := uc.resolvePlan(ctx, input)
	if err != nil {
		return nil, err
	}

	lock, ok, err := uc.locker.TryLock(ctx, LockKey(input.AnalysisID))
	if err != nil {
		uc.metrics.ResyncFinished("error")
		return nil, fmt.Errorf("failed to acquire plan lock: %w", err)
	}
	if !ok {
		uc.metrics.ResyncFinished("conflict")
		return nil, domainerror.NewObligationError(
			domainerror.ErrCodeResyncInProgress,
			"a resync of this plan is already running",
			domainerror.ErrResyncInProgress,
		)
	}
	defer func() {
		if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
			slog.Warn("Failed to release plan lock", "analysis_id", input.AnalysisID, "error", err)
		}
	}()

	existing, err := uc.obligationRepo.LoadByScope(ctx, adapter.ObligationScope{AnalysisID: &input.AnalysisID})
	if err != nil {
		uc.metrics.ResyncFinished("error")
		return nil, storageError("failed to load plan obligations", err)
	}

	result := obligation.Resync(existing, input.AnalysisID, plan, uc.factory)
	for _, o := range existing {
		if o.Active && o.Kind != plan.Kind && o.AnalysisID != nil && *o.AnalysisID == input.AnalysisID {
			result.ToDeactivate = append(result.ToDeactivate, o.ID)
		}
	}

	now := uc.clock.Now()
	if err := uc.obligationRepo.ApplyResync(ctx, result, now); err != nil {
		uc.metrics.ResyncFinished("error")
		return nil, storageError("failed to apply plan resync", err)
	}

	uc.metrics.ResyncFinished("ok")
	uc.metrics.ObligationsDeactivated(len(result.ToDeactivate))
	uc.metrics.ObligationsCreated(string(plan.Kind), len(result.ToCreate))

	analysisID := input.AnalysisID
	uc.notifier.Notify(ctx, adapter.ChangeEvent{
		Type:        adapter.ChangeResynced,
		ClientName:  plan.ClientName,
		AnalysisID:  &analysisID,
		Created:     obligationIDs(result.ToCreate),
		Deactivated: result.ToDeactivate,
		OccurredAt:  now,
	})

	slog.Info("Plan resynced",
		"analysis_id", input.AnalysisID,
		"kind", plan.Kind,
		"deactivated", len(result.ToDeactivate),
		"created", len(result.ToCreate),
	)

	return &ResyncPlanOutput{
		Deactivated: result.ToDeactivate,
		Created:     result.ToCreate,
	}, nil
}

func (uc *ResyncPlanUseCase) resolvePlan(ctx context.Context, input ResyncPlanInput) (entity.PaymentPlan, error) {
	if input.Plan != nil {
		return input.Plan.WithAnalysis(input.AnalysisID), nil
	}

	analysis, err := findAnalysis(ctx, uc.analysisRepo, input.AnalysisID)
	if err != nil {
		return entity.PaymentPlan{}, err
	}

	if !analysis.HasPlan() {
		return entity.PaymentPlan{}, domainerror.NewPlanError(
			domainerror.ErrCodePlanNotFound,
			"analysis has no payment plan",
			domainerror.ErrPlanNotFound,
		)
	}
	return analysis.Plan.WithAnalysis(input.AnalysisID), nil
}

func findAnalysis(ctx context.Context, repo adapter.AnalysisRepository, id uuid.UUID) (*entity.Analysis, error) {
	analysis, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrAnalysisNotFound) {
			return nil, domainerror.NewAnalysisError(
				domainerror.ErrCodeAnalysisNotFound,
				"analysis not found",
				domainerror.ErrAnalysisNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find analysis: %w", err)
	}
	return analysis, nil
}

func storageError(message string, err error) error {
	return domainerror.NewObligationError(domainerror.ErrCodeObligationStorage, message, err)
}
