// Package obligation contains obligation-related use cases.
package obligation

import (
	"context"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
	"github.com/consultorio/dashboard-backend/internal/domain/clock"
)

// DeleteObligationInput represents the input for deleting an obligation.
type DeleteObligationInput struct {
	ObligationID string
}

// DeleteObligationUseCase permanently removes one obligation.
type DeleteObligationUseCase struct {
	obligationRepo adapter.ObligationRepository
	notifier       adapter.ChangeNotifier
	clock          clock.Clock
}

// NewDeleteObligationUseCase creates a new DeleteObligationUseCase instance.
func NewDeleteObligationUseCase(obligationRepo adapter.ObligationRepository, notifier adapter.ChangeNotifier, clk clock.Clock) *DeleteObligationUseCase {
	return &DeleteObligationUseCase{
		obligationRepo: obligationRepo,
		notifier:       notifier,
		clock:          clk,
	}
}

// Execute performs the deletion.
func (uc *DeleteObligationUseCase) Execute(ctx context.Context, input DeleteObligationInput) error {
	o, err := findObligation(ctx, uc.obligationRepo, input.ObligationID)
	if err != nil {
		return err
	}

	if err := uc.obligationRepo.Delete(ctx, o.ID); err != nil {
		return storageError("failed to delete obligation", err)
	}

	uc.notifier.Notify(ctx, adapter.ChangeEvent{
		Type:       adapter.ChangeDeleted,
		ClientName: o.ClientName,
		AnalysisID: o.AnalysisID,
		Deleted:    []string{o.ID},
		OccurredAt: uc.clock.Now(),
	})
	return nil
}
