// Package obligation contains obligation-related use cases.
package obligation

import (
	"context"
	"errors"
	"fmt"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
	domainerror "github.com/consultorio/dashboard-backend/internal/domain/error"
)

func findObligation(ctx context.Context, repo adapter.ObligationRepository, id string) (*entity.Obligation, error) {
	o, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrObligationNotFound) {
			return nil, domainerror.NewObligationError(
				domainerror.ErrCodeObligationNotFound,
				"obligation not found",
				domainerror.ErrObligationNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find obligation: %w", err)
	}
	return o, nil
}

func storageError(message string, err error) error {
	return domainerror.NewObligationError(domainerror.ErrCodeObligationStorage, message, err)
}

func supersededError() error {
	return domainerror.NewObligationError(
		domainerror.ErrCodeObligationSuperseded,
		"obligation was replaced by a newer schedule",
		domainerror.ErrObligationSuperseded,
	)
}
