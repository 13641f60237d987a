// Package analysis contains analysis-related use cases.
package analysis

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
	"github.com/consultorio/dashboard-backend/internal/domain/clock"
)

// DeleteAnalysisInput represents the input for analysis deletion.
type DeleteAnalysisInput struct {
	AnalysisID uuid.UUID
}

// DeleteAnalysisOutput lists the outstanding obligations removed with the
// analysis. Settled ones are kept as payment history.
type DeleteAnalysisOutput struct {
	Deleted []string
}

// DeleteAnalysisUseCase handles analysis deletion.
type DeleteAnalysisUseCase struct {
	analysisRepo   adapter.AnalysisRepository
	obligationRepo adapter.ObligationRepository
	notifier       adapter.ChangeNotifier
	clock          clock.Clock
}

// NewDeleteAnalysisUseCase creates a new DeleteAnalysisUseCase instance.
func NewDeleteAnalysisUseCase(analysisRepo adapter.AnalysisRepository, obligationRepo adapter.ObligationRepository, notifier adapter.ChangeNotifier, clk clock.Clock) *DeleteAnalysisUseCase {
	return &DeleteAnalysisUseCase{
		analysisRepo:   analysisRepo,
		obligationRepo: obligationRepo,
		notifier:       notifier,
		clock:          clk,
	}
}

// Execute performs the deletion.
func (uc *DeleteAnalysisUseCase) Execute(ctx context.Context, input DeleteAnalysisInput) (*DeleteAnalysisOutput, error) {
	analysis, err := findAnalysis(ctx, uc.analysisRepo, input.AnalysisID)
	if err != nil {
		return nil, err
	}

	deleted, err := uc.obligationRepo.DeleteActiveByAnalysis(ctx, analysis.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete analysis obligations: %w", err)
	}

	if err := uc.analysisRepo.Delete(ctx, analysis.ID); err != nil {
		return nil, fmt.Errorf("failed to delete analysis: %w", err)
	}

	if len(deleted) > 0 {
		uc.notifier.Notify(ctx, adapter.ChangeEvent{
			Type:       adapter.ChangeDeleted,
			ClientName: analysis.ClientName,
			AnalysisID: &analysis.ID,
			Deleted:    deleted,
			OccurredAt: uc.clock.Now(),
		})
	}

	return &DeleteAnalysisOutput{Deleted: deleted}, nil
}
