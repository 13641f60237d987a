// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/consultorio/dashboard-backend/internal/domain/entity"
)

// ClientRepository defines the interface for client persistence operations.
type ClientRepository interface {
	// Create creates a new client in the database.
	Create(ctx context.Context, client *entity.Client) error

	// FindByID retrieves a client by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Client, error)

	// FindByName retrieves a client by normalised name.
	FindByName(ctx context.Context, name string) (*entity.Client, error)

	// List retrieves all clients ordered by name.
	List(ctx context.Context) ([]*entity.Client, error)

	// ListNames returns the display names of every client.
	ListNames(ctx context.Context) ([]string, error)

	// Update updates an existing client.
	Update(ctx context.Context, client *entity.Client) error

	// Delete permanently removes a client, freeing its name.
	Delete(ctx context.Context, id uuid.UUID) error
}
