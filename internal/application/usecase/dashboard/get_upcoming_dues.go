// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
	"github.com/consultorio/dashboard-backend/internal/domain/clock"
	domainerror "github.com/consultorio/dashboard-backend/internal/domain/error"
	"github.com/consultorio/dashboard-backend/internal/domain/obligation"
)

// GetUpcomingDuesInput represents the input for the upcoming dues panel.
type GetUpcomingDuesInput struct {
	// WithinDays limits groups to those whose most urgent obligation is due
	// within this many days. Nil uses the configured default, 0 disables it.
	WithinDays *int
}

// GetUpcomingDuesOutput represents the output for the upcoming dues panel.
type GetUpcomingDuesOutput struct {
	Today      time.Time
	WithinDays int
	Groups     []obligation.ClientDues
}

// GetUpcomingDuesUseCase groups outstanding obligations per known client.
type GetUpcomingDuesUseCase struct {
	obligationRepo adapter.ObligationRepository
	clientRepo     adapter.ClientRepository
	clock          clock.Clock
	defaultHorizon int
}

// NewGetUpcomingDuesUseCase creates a new GetUpcomingDuesUseCase instance.
func NewGetUpcomingDuesUseCase(obligationRepo adapter.ObligationRepository, clientRepo adapter.ClientRepository, clk clock.Clock, defaultHorizon int) *GetUpcomingDuesUseCase {
	return &GetUpcomingDuesUseCase{
		obligationRepo: obligationRepo,
		clientRepo:     clientRepo,
		clock:          clk,
		defaultHorizon: defaultHorizon,
	}
}

// Execute builds the grouped dues.
func (uc *GetUpcomingDuesUseCase) Execute(ctx context.Context, input GetUpcomingDuesInput) (*GetUpcomingDuesOutput, error) {
	horizon := uc.defaultHorizon
	if input.WithinDays != nil {
		if *input.WithinDays < 0 {
			return nil, domainerror.NewDashboardError(
				domainerror.ErrCodeInvalidHorizon,
				"within_days cannot be negative",
				domainerror.ErrInvalidHorizon,
			)
		}
		horizon = *input.WithinDays
	}

	active := true
	obligations, err := uc.obligationRepo.LoadByScope(ctx, adapter.ObligationScope{Active: &active})
	if err != nil {
		return nil, fmt.Errorf("failed to load active obligations: %w", err)
	}

	names, err := uc.clientRepo.ListNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load client names: %w", err)
	}

	today := uc.clock.Now()
	groups := obligation.GroupByClient(obligations, obligation.NewClientSet(names...), today)

	return &GetUpcomingDuesOutput{
		Today:      today,
		WithinDays: horizon,
		Groups:     obligation.WithinDays(groups, horizon),
	}, nil
}
