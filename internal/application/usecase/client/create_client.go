// Package client contains client-related use cases.
package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
	"github.com/consultorio/dashboard-backend/internal/domain/clock"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
)

// CreateClientInput represents the input for client creation.
type CreateClientInput struct {
	Name  string
	Email string
	Phone string
	Notes string
}

// CreateClientOutput represents the output of client creation.
type CreateClientOutput struct {
	Client *entity.Client
}

// CreateClientUseCase handles client creation logic.
type CreateClientUseCase struct {
	clientRepo adapter.ClientRepository
	clock      clock.Clock
}

// NewCreateClientUseCase creates a new CreateClientUseCase instance.
func NewCreateClientUseCase(clientRepo adapter.ClientRepository, clk clock.Clock) *CreateClientUseCase {
	return &CreateClientUseCase{
		clientRepo: clientRepo,
		clock:      clk,
	}
}

// Execute performs the client creation.
func (uc *CreateClientUseCase) Execute(ctx context.Context, input CreateClientInput) (*CreateClientOutput, error) {
	name, err := cleanName(input.Name)
	if err != nil {
		return nil, err
	}

	email := strings.TrimSpace(input.Email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	if err := ensureNameAvailable(ctx, uc.clientRepo, name, nil); err != nil {
		return nil, err
	}

	client := entity.NewClient(name, email, strings.TrimSpace(input.Phone), input.Notes, uc.clock.Now())
	if err := uc.clientRepo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &CreateClientOutput{Client: client}, nil
}
