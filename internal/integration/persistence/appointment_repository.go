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

// appointmentRepository implements the adapter.AppointmentRepository interface.
type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new appointment repository instance.
func NewAppointmentRepository(db *gorm.DB) adapter.AppointmentRepository {
	return &appointmentRepository{
		db: db,
	}
}

// Create creates a new appointment in the database.
func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	return r.db.WithContext(ctx).Create(model.AppointmentModelFromEntity(appointment)).Error
}

// FindByID retrieves an appointment by its ID.
func (r *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	var appointmentModel model.AppointmentModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&appointmentModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAppointmentNotFound
		}
		return nil, result.Error
	}
	return appointmentModel.ToEntity(), nil
}

// List retrieves appointments matching the filter ordered by scheduled time.
func (r *appointmentRepository) List(ctx context.Context, filter adapter.AppointmentFilter) ([]*entity.Appointment, error) {
	query := r.db.WithContext(ctx).Model(&model.AppointmentModel{})
	if filter.ClientName != "" {
		query = query.Where("normalized_name = ?", entity.NormalizeClientName(filter.ClientName))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.From != nil {
		query = query.Where("scheduled_at >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		query = query.Where("scheduled_at <= ?", filter.To.UTC())
	}

	var models []model.AppointmentModel
	if err := query.Order("scheduled_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	appointments := make([]*entity.Appointment, len(models))
	for i := range models {
		appointments[i] = models[i].ToEntity()
	}
	return appointments, nil
}

// Update updates an existing appointment in the database.
func (r *appointmentRepository) Update(ctx context.Context, appointment *entity.Appointment) error {
	result := r.db.WithContext(ctx).Save(model.AppointmentModelFromEntity(appointment))
	if result.Error != nil {
		return result.Error
	}
	return nil
}
