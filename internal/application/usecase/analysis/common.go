// Package analysis contains analysis-related use cases.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
	"github.com/consultorio/dashboard-backend/internal/application/usecase/plan"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
	domainerror "github.com/consultorio/dashboard-backend/internal/domain/error"
)

func findAnalysis(ctx context.Context, repo adapter.AnalysisRepository, id uuid.UUID) (*entity.Analysis, error) {
	a, err := repo.FindByID(ctx, id)
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
	return a, nil
}

func parseServiceType(s string) (entity.ServiceType, error) {
	st := entity.ServiceType(strings.ToLower(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", domainerror.NewAnalysisError(
			domainerror.ErrCodeInvalidServiceType,
			"service type must be 'tarot', 'therapy', or 'consultation'",
			domainerror.ErrInvalidServiceType,
		)
	}
	return st, nil
}

func cleanClientName(name string) (string, error) {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return "", domainerror.NewAnalysisError(
			domainerror.ErrCodeAnalysisClientRequired,
			"client name is required",
			domainerror.ErrAnalysisClientRequired,
		)
	}
	return name, nil
}

// buildPlan validates a plan for an analysis. The plan always bills the
// analysis' client.
func buildPlan(input plan.PlanInput, clientName string) (*entity.PaymentPlan, error) {
	input.ClientName = clientName
	p, err := input.ToPaymentPlan()
	if err != nil {
		return nil, err
	}
	return &p, nil
}
