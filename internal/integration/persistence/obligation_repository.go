// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
	domainerror "github.com/consultorio/dashboard-backend/internal/domain/error"
	"github.com/consultorio/dashboard-backend/internal/domain/obligation"
	"github.com/consultorio/dashboard-backend/internal/integration/persistence/model"
)

// saveBatchSize bounds the rows per INSERT when saving a generated schedule.
const saveBatchSize = 100

// obligationRepository implements the adapter.ObligationRepository interface.
type obligationRepository struct {
	db *gorm.DB
}

// NewObligationRepository creates a new obligation repository instance.
func NewObligationRepository(db *gorm.DB) adapter.ObligationRepository {
	return &obligationRepository{
		db: db,
	}
}

// LoadByScope returns the obligations in scope ordered by due date.
func (r *obligationRepository) LoadByScope(ctx context.Context, scope adapter.ObligationScope) ([]*entity.Obligation, error) {
	query := r.db.WithContext(ctx).Model(&model.ObligationModel{})

	if scope.ClientName != "" {
		query = query.Where("normalized_name = ?", entity.NormalizeClientName(scope.ClientName))
	}
	if scope.AnalysisID != nil {
		query = query.Where("analysis_id = ?", *scope.AnalysisID)
	}
	if scope.Kind != "" {
		query = query.Where("kind = ?", string(scope.Kind))
	}
	if scope.Active != nil {
		query = query.Where("active = ?", *scope.Active)
	}
	if scope.DueFrom != nil {
		query = query.Where("due_date >= ?", model.CivilDate(*scope.DueFrom))
	}
	if scope.DueTo != nil {
		query = query.Where("due_date <= ?", model.CivilDate(*scope.DueTo))
	}

	var models []model.ObligationModel
	if err := query.Order("due_date ASC, sequence_index ASC, id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to load obligations: %w", err)
	}

	obligations := make([]*entity.Obligation, len(models))
	for i := range models {
		obligations[i] = models[i].ToEntity()
	}
	return obligations, nil
}

// SaveAll inserts the given obligations in one transaction.
func (r *obligationRepository) SaveAll(ctx context.Context, obligations []*entity.Obligation) error {
	if len(obligations) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return insertObligations(tx, obligations)
	})
}

// ApplyResync deactivates the superseded obligations and inserts their
// replacements atomically. Either every change lands or none does.
func (r *obligationRepository) ApplyResync(ctx context.Context, result obligation.ResyncResult, now time.Time) error {
	if result.IsEmpty() {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(result.ToDeactivate) > 0 {
			err := tx.Model(&model.ObligationModel{}).
				Where("id IN ?", result.ToDeactivate).
				Where("active = ?", true).
				Updates(map[string]interface{}{
					"active":     false,
					"updated_at": now.UTC(),
				}).Error
			if err != nil {
				return fmt.Errorf("failed to deactivate obligations: %w", err)
			}
		}
		return insertObligations(tx, result.ToCreate)
	})
}

func insertObligations(tx *gorm.DB, obligations []*entity.Obligation) error {
	if len(obligations) == 0 {
		return nil
	}
	models := make([]*model.ObligationModel, len(obligations))
	for i, o := range obligations {
		models[i] = model.ObligationModelFromEntity(o)
	}
	if err := tx.CreateInBatches(models, saveBatchSize).Error; err != nil {
		return fmt.Errorf("failed to insert obligations: %w", err)
	}
	return nil
}

// FindByID retrieves an obligation by its ID.
func (r *obligationRepository) FindByID(ctx context.Context, id string) (*entity.Obligation, error) {
	var m model.ObligationModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrObligationNotFound
		}
		return nil, result.Error
	}
	return m.ToEntity(), nil
}

// Update saves the mutable fields of an obligation.
func (r *obligationRepository) Update(ctx context.Context, o *entity.Obligation) error {
	m := model.ObligationModelFromEntity(o)
	result := r.db.WithContext(ctx).
		Model(&model.ObligationModel{}).
		Where("id = ?", o.ID).
		Updates(map[string]interface{}{
			"client_name":     m.ClientName,
			"normalized_name": m.NormalizedName,
			"amount":          m.Amount,
			"due_date":        m.DueDate,
			"active":          m.Active,
			"paid_at":         m.PaidAt,
			"notes":           m.Notes,
			"updated_at":      m.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrObligationNotFound
	}
	return nil
}

// Delete permanently removes an obligation.
func (r *obligationRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ObligationModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrObligationNotFound
	}
	return nil
}

// DeleteActiveByAnalysis removes the outstanding obligations of an analysis
// and returns their IDs. Settled obligations are payment history and stay.
func (r *obligationRepository) DeleteActiveByAnalysis(ctx context.Context, analysisID uuid.UUID) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		scope := tx.Model(&model.ObligationModel{}).
			Where("analysis_id = ?", analysisID).
			Where("active = ?", true)

		if err := scope.Order("id ASC").Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		return tx.Where("id IN ?", ids).Delete(&model.ObligationModel{}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete analysis obligations: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
