// Package client contains client-related use cases.
package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
	"github.com/consultorio/dashboard-backend/internal/domain/clock"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
)

// UpdateClientInput represents the input for client update.
type UpdateClientInput struct {
	ClientID uuid.UUID
	Name     *string // Optional
	Email    *string // Optional
	Phone    *string // Optional
	Notes    *string // Optional
}

// UpdateClientOutput represents the output of client update.
type UpdateClientOutput struct {
	Client *entity.Client
}

// UpdateClientUseCase handles client update logic.
type UpdateClientUseCase struct {
	clientRepo adapter.ClientRepository
	clock      clock.Clock
}

// NewUpdateClientUseCase creates a new UpdateClientUseCase instance.
func NewUpdateClientUseCase(clientRepo adapter.ClientRepository, clk clock.Clock) *UpdateClientUseCase {
	return &UpdateClientUseCase{
		clientRepo: clientRepo,
		clock:      clk,
	}
}

// Execute performs the client update.
func (uc *UpdateClientUseCase) Execute(ctx context.Context, input UpdateClientInput) (*UpdateClientOutput, error) {
	client, err := findClient(ctx, uc.clientRepo, input.ClientID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name, err := cleanName(*input.Name)
		if err != nil {
			return nil, err
		}
		if err := ensureNameAvailable(ctx, uc.clientRepo, name, &client.ID); err != nil {
			return nil, err
		}
		client.Name = name
	}

	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		client.Email = email
	}

	if input.Phone != nil {
		client.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Notes != nil {
		client.Notes = *input.Notes
	}

	client.UpdatedAt = uc.clock.Now().UTC()
	if err := uc.clientRepo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	return &UpdateClientOutput{Client: client}, nil
}
