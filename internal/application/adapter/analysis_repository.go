// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/consultorio/dashboard-backend/internal/domain/entity"
)

// AnalysisFilter narrows analysis listings.
type AnalysisFilter struct {
	ClientName  string
	ServiceType entity.ServiceType
}

// AnalysisRepository defines the interface for analysis persistence operations.
type AnalysisRepository interface {
	// Create creates a new analysis in the database.
	Create(ctx context.Context, analysis *entity.Analysis) error

	// FindByID retrieves an analysis by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Analysis, error)

	// List retrieves analyses matching the filter, newest session first.
	List(ctx context.Context, filter AnalysisFilter) ([]*entity.Analysis, error)

	// Update updates an existing analysis including its plan.
	Update(ctx context.Context, analysis *entity.Analysis) error

	// Delete removes an analysis (soft delete).
	Delete(ctx context.Context, id uuid.UUID) error
}
