// Package obligation contains obligation-related use cases.
package obligation

import (
	"context"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
	"github.com/consultorio/dashboard-backend/internal/domain/clock"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
	domainobligation "github.com/consultorio/dashboard-backend/internal/domain/obligation"
)

// MarkPaidInput represents the input for settling an obligation.
type MarkPaidInput struct {
	ObligationID string
}

// MarkPaidOutput represents the output of settling an obligation.
type MarkPaidOutput struct {
	Obligation *entity.Obligation
}

// MarkPaidUseCase settles a single obligation without touching its siblings.
type MarkPaidUseCase struct {
	obligationRepo adapter.ObligationRepository
	notifier       adapter.ChangeNotifier
	metrics        adapter.Metrics
	clock          clock.Clock
}

// NewMarkPaidUseCase creates a new MarkPaidUseCase instance.
func NewMarkPaidUseCase(obligationRepo adapter.ObligationRepository, notifier adapter.ChangeNotifier, metrics adapter.Metrics, clk clock.Clock) *MarkPaidUseCase {
	return &MarkPaidUseCase{
		obligationRepo: obligationRepo,
		notifier:       notifier,
		metrics:        metrics,
		clock:          clk,
	}
}

// Execute performs the settlement. Settling a paid obligation is a no-op.
func (uc *MarkPaidUseCase) Execute(ctx context.Context, input MarkPaidInput) (*MarkPaidOutput, error) {
	o, err := findObligation(ctx, uc.obligationRepo, input.ObligationID)
	if err != nil {
		return nil, err
	}

	if o.IsSettled() {
		return &MarkPaidOutput{Obligation: o}, nil
	}
	if o.IsSuperseded() {
		return nil, supersededError()
	}

	now := uc.clock.Now()
	domainobligation.MarkPaid(o, now)
	if err := uc.obligationRepo.Update(ctx, o); err != nil {
		return nil, storageError("failed to mark obligation as paid", err)
	}

	uc.metrics.ObligationsSettled(1)
	uc.notifier.Notify(ctx, adapter.ChangeEvent{
		Type:       adapter.ChangePaid,
		ClientName: o.ClientName,
		AnalysisID: o.AnalysisID,
		Updated:    []string{o.ID},
		OccurredAt: now,
	})

	return &MarkPaidOutput{Obligation: o}, nil
}
