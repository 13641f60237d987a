// Package obligation contains obligation-related use cases.
package obligation

import (
	"context"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
	"github.com/consultorio/dashboard-backend/internal/domain/clock"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
	domainobligation "github.com/consultorio/dashboard-backend/internal/domain/obligation"
)

// ReopenInput represents the input for reopening an obligation.
type ReopenInput struct {
	ObligationID string
}

// ReopenOutput represents the output of reopening an obligation.
type ReopenOutput struct {
	Obligation *entity.Obligation
}

// ReopenUseCase makes a settled obligation outstanding again.
type ReopenUseCase struct {
	obligationRepo adapter.ObligationRepository
	notifier       adapter.ChangeNotifier
	clock          clock.Clock
}

// NewReopenUseCase creates a new ReopenUseCase instance.
func NewReopenUseCase(obligationRepo adapter.ObligationRepository, notifier adapter.ChangeNotifier, clk clock.Clock) *ReopenUseCase {
	return &ReopenUseCase{
		obligationRepo: obligationRepo,
		notifier:       notifier,
		clock:          clk,
	}
}

// Execute performs the reopen. Reopening an active obligation is a no-op.
// Superseded obligations stay closed so they never sit next to their
// replacements.
func (uc *ReopenUseCase) Execute(ctx context.Context, input ReopenInput) (*ReopenOutput, error) {
	o, err := findObligation(ctx, uc.obligationRepo, input.ObligationID)
	if err != nil {
		return nil, err
	}

	if o.Active {
		return &ReopenOutput{Obligation: o}, nil
	}
	if o.IsSuperseded() {
		return nil, supersededError()
	}

	now := uc.clock.Now()
	domainobligation.Reopen(o, now)
	if err := uc.obligationRepo.Update(ctx, o); err != nil {
		return nil, storageError("failed to reopen obligation", err)
	}

	uc.notifier.Notify(ctx, adapter.ChangeEvent{
		Type:       adapter.ChangeReopened,
		ClientName: o.ClientName,
		AnalysisID: o.AnalysisID,
		Updated:    []string{o.ID},
		OccurredAt: now,
	})

	return &ReopenOutput{Obligation: o}, nil
}
