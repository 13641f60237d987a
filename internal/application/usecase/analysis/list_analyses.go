// Package analysis contains analysis-related use cases.
package analysis

import (
	"context"
	"fmt"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
)

// ListAnalysesInput represents the input for listing analyses.
type ListAnalysesInput struct {
	ClientName  string
	ServiceType string
}

// ListAnalysesOutput represents the output of listing analyses.
type ListAnalysesOutput struct {
	Analyses []*entity.Analysis
}

// ListAnalysesUseCase handles listing analyses.
type ListAnalysesUseCase struct {
	analysisRepo adapter.AnalysisRepository
}

// NewListAnalysesUseCase creates a new ListAnalysesUseCase instance.
func NewListAnalysesUseCase(analysisRepo adapter.AnalysisRepository) *ListAnalysesUseCase {
	return &ListAnalysesUseCase{analysisRepo: analysisRepo}
}

// Execute performs the listing.
func (uc *ListAnalysesUseCase) Execute(ctx context.Context, input ListAnalysesInput) (*ListAnalysesOutput, error) {
	filter := adapter.AnalysisFilter{ClientName: input.ClientName}
	if input.ServiceType != "" {
		st, err := parseServiceType(input.ServiceType)
		if err != nil {
			return nil, err
		}
		filter.ServiceType = st
	}

	analyses, err := uc.analysisRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	return &ListAnalysesOutput{Analyses: analyses}, nil
}
