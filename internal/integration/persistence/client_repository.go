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

// clientRepository implements the adapter.ClientRepository interface.
type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository instance.
func NewClientRepository(db *gorm.DB) adapter.ClientRepository {
	return &clientRepository{
		db: db,
	}
}

// Create creates a new client in the database.
func (r *clientRepository) Create(ctx context.Context, client *entity.Client) error {
	result := r.db.WithContext(ctx).Create(model.ClientModelFromEntity(client))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domainerror.ErrClientNameTaken
		}
		return result.Error
	}
	return nil
}

// FindByID retrieves a client by its ID.
func (r *clientRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	var clientModel model.ClientModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&clientModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrClientNotFound
		}
		return nil, result.Error
	}
	return clientModel.ToEntity(), nil
}

// FindByName retrieves a client by normalised name.
func (r *clientRepository) FindByName(ctx context.Context, name string) (*entity.Client, error) {
	var clientModel model.ClientModel
	result := r.db.WithContext(ctx).
		Where("normalized_name = ?", entity.NormalizeClientName(name)).
		First(&clientModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrClientNotFound
		}
		return nil, result.Error
	}
	return clientModel.ToEntity(), nil
}

// List retrieves all clients ordered by name.
func (r *clientRepository) List(ctx context.Context) ([]*entity.Client, error) {
	var models []model.ClientModel
	if err := r.db.WithContext(ctx).Order("normalized_name ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	clients := make([]*entity.Client, len(models))
	for i := range models {
		clients[i] = models[i].ToEntity()
	}
	return clients, nil
}

// ListNames returns the display names of every client.
func (r *clientRepository) ListNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&model.ClientModel{}).
		Order("normalized_name ASC").
		Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Update updates an existing client in the database.
func (r *clientRepository) Update(ctx context.Context, client *entity.Client) error {
	result := r.db.WithContext(ctx).Save(model.ClientModelFromEntity(client))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domainerror.ErrClientNameTaken
		}
		return result.Error
	}
	return nil
}

// Delete permanently removes a client so its name can be reused.
func (r *clientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Unscoped().Delete(&model.ClientModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrClientNotFound
	}
	return nil
}
