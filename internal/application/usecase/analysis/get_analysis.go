// Package analysis contains analysis-related use cases.
package analysis

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
)

// GetAnalysisInput represents the input for fetching an analysis.
type GetAnalysisInput struct {
	AnalysisID uuid.UUID
}

// GetAnalysisOutput carries the analysis and every obligation it produced.
type GetAnalysisOutput struct {
	Analysis    *entity.Analysis
	Obligations []*entity.Obligation
}

// GetAnalysisUseCase handles fetching a single analysis.
type GetAnalysisUseCase struct {
	analysisRepo   adapter.AnalysisRepository
	obligationRepo adapter.ObligationRepository
}

// NewGetAnalysisUseCase creates a new GetAnalysisUseCase instance.
func NewGetAnalysisUseCase(analysisRepo adapter.AnalysisRepository, obligationRepo adapter.ObligationRepository) *GetAnalysisUseCase {
	return &GetAnalysisUseCase{
		analysisRepo:   analysisRepo,
		obligationRepo: obligationRepo,
	}
}

// Execute performs the lookup.
func (uc *GetAnalysisUseCase) Execute(ctx context.Context, input GetAnalysisInput) (*GetAnalysisOutput, error) {
	analysis, err := findAnalysis(ctx, uc.analysisRepo, input.AnalysisID)
	if err != nil {
		return nil, err
	}

	obligations, err := uc.obligationRepo.LoadByScope(ctx, adapter.ObligationScope{AnalysisID: &analysis.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis obligations: %w", err)
	}

	return &GetAnalysisOutput{Analysis: analysis, Obligations: obligations}, nil
}
