package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/consultorio/dashboard-backend/internal/domain/entity"
)

// EmailQueueRepository persists queued reminder mails.
type EmailQueueRepository interface {
	// Create adds a new email job to the queue.
	Create(ctx context.Context, job *entity.EmailJob) error

	// ClaimDue moves up to limit due pending jobs to processing and returns
	// them, oldest schedule first. A job is handed to one caller only.
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error)

	// Update saves changes to an email job.
	Update(ctx context.Context, job *entity.EmailJob) error

	// GetByID retrieves a specific job by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.EmailJob, error)

	// ListByObligation returns the reminders queued for an obligation, newest first.
	ListByObligation(ctx context.Context, obligationID string) ([]*entity.EmailJob, error)

	// ReleaseStale returns jobs claimed before cutoff to pending.
	ReleaseStale(ctx context.Context, cutoff time.Time) (int64, error)

	// PurgeSent removes sent jobs processed before cutoff.
	PurgeSent(ctx context.Context, cutoff time.Time) (int64, error)
}
