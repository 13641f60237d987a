// Package client contains client-related use cases.
package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
)

// DeleteClientInput represents the input for client deletion.
type DeleteClientInput struct {
	ClientID uuid.UUID
}

// DeleteClientUseCase handles client deletion. Obligations are kept; a
// deleted client simply drops out of the upcoming dues panel.
type DeleteClientUseCase struct {
	clientRepo adapter.ClientRepository
}

// NewDeleteClientUseCase creates a new DeleteClientUseCase instance.
func NewDeleteClientUseCase(clientRepo adapter.ClientRepository) *DeleteClientUseCase {
	return &DeleteClientUseCase{clientRepo: clientRepo}
}

// Execute performs the deletion.
func (uc *DeleteClientUseCase) Execute(ctx context.Context, input DeleteClientInput) error {
	if _, err := findClient(ctx, uc.clientRepo, input.ClientID); err != nil {
		return err
	}
	if err := uc.clientRepo.Delete(ctx, input.ClientID); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}
