// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
	domainerror "github.com/consultorio/dashboard-backend/internal/domain/error"
	"github.com/consultorio/dashboard-backend/internal/integration/persistence/model"
)

// analysisRepository implements the adapter.AnalysisRepository interface.
type analysisRepository struct {
	db *gorm.DB
}

// NewAnalysisRepository creates a new analysis repository instance.
func NewAnalysisRepository(db *gorm.DB) adapter.AnalysisRepository {
	return &analysisRepository{
		db: db,
	}
}

// Create creates a new analysis in the database.
func (r *analysisRepository) Create(ctx context.Context, analysis *entity.Analysis) error {
	return r.db.WithContext(ctx).Create(model.AnalysisModelFromEntity(analysis)).Error
}

// FindByID retrieves an analysis by its ID.
func (r *analysisRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Analysis, error) {
	var analysisModel model.AnalysisModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&analysisModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAnalysisNotFound
		}
		return nil, result.Error
	}
	return analysisModel.ToEntity(), nil
}

// List retrieves analyses matching the filter, newest session first.
func (r *analysisRepository) List(ctx context.Context, filter adapter.AnalysisFilter) ([]*entity.Analysis, error) {
	query := r.db.WithContext(ctx).Model(&model.AnalysisModel{})
	if filter.ClientName != "" {
		query = query.Where("normalized_name = ?", entity.NormalizeClientName(filter.ClientName))
	}
	if filter.ServiceType != "" {
		query = query.Where("service_type = ?", string(filter.ServiceType))
	}

	var models []model.AnalysisModel
	if err := query.Order("session_date DESC, created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	analyses := make([]*entity.Analysis, len(models))
	for i := range models {
		analyses[i] = models[i].ToEntity()
	}
	return analyses, nil
}

// Update updates an existing analysis including its plan columns.
func (r *analysisRepository) Update(ctx context.Context, analysis *entity.Analysis) error {
	result := r.db.WithContext(ctx).Save(model.AnalysisModelFromEntity(analysis))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes an analysis (soft delete).
func (r *analysisRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.AnalysisModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrAnalysisNotFound
	}
	return nil
}
