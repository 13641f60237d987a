// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/consultorio/dashboard-backend/internal/domain/entity"
	"github.com/consultorio/dashboard-backend/internal/domain/obligation"
)

// ObligationScope narrows which obligations are loaded. Zero fields do not filter.
type ObligationScope struct {
	ClientName string // matched on the normalised name
	AnalysisID *uuid.UUID
	Kind       entity.ObligationKind
	Active     *bool
	DueFrom    *time.Time
	DueTo      *time.Time
}

// ObligationRepository defines the interface for obligation persistence operations.
type ObligationRepository interface {
	// LoadByScope returns the obligations in scope ordered by due date then sequence index.
	LoadByScope(ctx context.Context, scope ObligationScope) ([]*entity.Obligation, error)

	// SaveAll inserts the given obligations in one transaction.
	SaveAll(ctx context.Context, obligations []*entity.Obligation) error

	// ApplyResync deactivates and creates obligations in one transaction.
	ApplyResync(ctx context.Context, result obligation.ResyncResult, now time.Time) error

	// FindByID retrieves an obligation by its ID.
	FindByID(ctx context.Context, id string) (*entity.Obligation, error)

	// Update saves the mutable fields of an obligation.
	Update(ctx context.Context, o *entity.Obligation) error

	// Delete permanently removes an obligation.
	Delete(ctx context.Context, id string) error

	// DeleteActiveByAnalysis removes the still-outstanding obligations of an analysis.
	// Settled ones are kept. Returns the deleted IDs.
	DeleteActiveByAnalysis(ctx context.Context, analysisID uuid.UUID) ([]string, error)
}
