// Package obligation contains obligation-related use cases.
package obligation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
	"github.com/consultorio/dashboard-backend/internal/domain/clock"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
	domainerror "github.com/consultorio/dashboard-backend/internal/domain/error"
	domainobligation "github.com/consultorio/dashboard-backend/internal/domain/obligation"
)

// ListObligationsInput represents the input for listing obligations.
type ListObligationsInput struct {
	ClientName string
	AnalysisID *uuid.UUID
	Kind       string
	Active     *bool
	DueFrom    *time.Time
	DueTo      *time.Time
}

// ObligationItem is an obligation with its current urgency.
type ObligationItem struct {
	Obligation *entity.Obligation
	Urgency    domainobligation.Urgency
}

// ListObligationsOutput represents the output of listing obligations.
type ListObligationsOutput struct {
	Items []ObligationItem
	Today time.Time
}

// ListObligationsUseCase handles listing obligations.
type ListObligationsUseCase struct {
	obligationRepo adapter.ObligationRepository
	clock          clock.Clock
}

// NewListObligationsUseCase creates a new ListObligationsUseCase instance.
func NewListObligationsUseCase(obligationRepo adapter.ObligationRepository, clk clock.Clock) *ListObligationsUseCase {
	return &ListObligationsUseCase{
		obligationRepo: obligationRepo,
		clock:          clk,
	}
}

// Execute performs the listing.
func (uc *ListObligationsUseCase) Execute(ctx context.Context, input ListObligationsInput) (*ListObligationsOutput, error) {
	scope := adapter.ObligationScope{
		ClientName: input.ClientName,
		AnalysisID: input.AnalysisID,
		Active:     input.Active,
		DueFrom:    input.DueFrom,
		DueTo:      input.DueTo,
	}

	if input.Kind != "" {
		kind := entity.ObligationKind(input.Kind)
		if !kind.IsValid() {
			return nil, domainerror.NewObligationError(
				domainerror.ErrCodeInvalidObligationKind,
				"kind must be 'monthly' or 'weekly'",
				domainerror.ErrInvalidObligationKind,
			)
		}
		scope.Kind = kind
	}

	if input.DueFrom != nil && input.DueTo != nil && input.DueTo.Before(*input.DueFrom) {
		return nil, domainerror.NewObligationError(
			domainerror.ErrCodeInvalidObligationFilter,
			"due_to must not be before due_from",
			domainerror.ErrInvalidDateRange,
		)
	}

	obligations, err := uc.obligationRepo.LoadByScope(ctx, scope)
	if err != nil {
		return nil, storageError("failed to list obligations", err)
	}

	today := uc.clock.Now()
	items := make([]ObligationItem, len(obligations))
	for i, o := range obligations {
		items[i] = ObligationItem{Obligation: o, Urgency: domainobligation.UrgencyOf(o, today)}
	}

	return &ListObligationsOutput{Items: items, Today: today}, nil
}
