package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
	domainerror "github.com/consultorio/dashboard-backend/internal/domain/error"
	"github.com/consultorio/dashboard-backend/internal/integration/persistence/model"
)

// emailQueueRepository implements the adapter.EmailQueueRepository interface.
type emailQueueRepository struct {
	db *gorm.DB
}

// NewEmailQueueRepository creates a new email queue repository instance.
func NewEmailQueueRepository(db *gorm.DB) adapter.EmailQueueRepository {
	return &emailQueueRepository{
		db: db,
	}
}

// Create adds a new email job to the queue.
func (r *emailQueueRepository) Create(ctx context.Context, job *entity.EmailJob) error {
	return r.db.WithContext(ctx).Create(model.EmailQueueModelFromEntity(job)).Error
}

// ClaimDue selects due pending jobs and flips them to processing in one
// transaction. The status guard on the update drops rows another worker
// claimed in between.
func (r *emailQueueRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error) {
	now = now.UTC()
	var claimed []*entity.EmailJob

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var models []model.EmailQueueModel
		if err := tx.
			Where("status = ? AND scheduled_at <= ?", entity.EmailStatusPending, now).
			Order("scheduled_at ASC").
			Limit(limit).
			Find(&models).Error; err != nil {
			return err
		}

		for i := range models {
			result := tx.Model(&model.EmailQueueModel{}).
				Where("id = ? AND status = ?", models[i].ID, entity.EmailStatusPending).
				Updates(map[string]any{
					"status":     entity.EmailStatusProcessing,
					"claimed_at": now,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				continue
			}
			job := models[i].ToEntity()
			job.Claim(now)
			claimed = append(claimed, job)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

// Update saves changes to an email job.
func (r *emailQueueRepository) Update(ctx context.Context, job *entity.EmailJob) error {
	return r.db.WithContext(ctx).Save(model.EmailQueueModelFromEntity(job)).Error
}

// GetByID retrieves a specific job by its ID.
func (r *emailQueueRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.EmailJob, error) {
	var m model.EmailQueueModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrEmailJobNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

// ListByObligation returns the reminders queued for an obligation, newest first.
func (r *emailQueueRepository) ListByObligation(ctx context.Context, obligationID string) ([]*entity.EmailJob, error) {
	var models []model.EmailQueueModel
	if err := r.db.WithContext(ctx).
		Where("obligation_id = ?", obligationID).
		Order("reminder_date DESC, created_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	jobs := make([]*entity.EmailJob, len(models))
	for i := range models {
		jobs[i] = models[i].ToEntity()
	}
	return jobs, nil
}

// ReleaseStale returns jobs claimed before cutoff to pending.
func (r *emailQueueRepository) ReleaseStale(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.EmailQueueModel{}).
		Where("status = ? AND claimed_at < ?", entity.EmailStatusProcessing, cutoff.UTC()).
		Updates(map[string]any{
			"status":     entity.EmailStatusPending,
			"claimed_at": nil,
		})
	return result.RowsAffected, result.Error
}

// PurgeSent removes sent jobs processed before cutoff.
func (r *emailQueueRepository) PurgeSent(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("status = ? AND processed_at < ?", entity.EmailStatusSent, cutoff.UTC()).
		Delete(&model.EmailQueueModel{})
	return result.RowsAffected, result.Error
}
