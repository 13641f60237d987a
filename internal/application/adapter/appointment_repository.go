// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/consultorio/dashboard-backend/internal/domain/entity"
)

// AppointmentFilter narrows appointment listings. Zero fields do not filter.
type AppointmentFilter struct {
	ClientName string
	Status     entity.AppointmentStatus
	From       *time.Time
	To         *time.Time
}

// AppointmentRepository defines the interface for appointment persistence operations.
type AppointmentRepository interface {
	// Create creates a new appointment in the database.
	Create(ctx context.Context, appointment *entity.Appointment) error

	// FindByID retrieves an appointment by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)

	// List retrieves appointments matching the filter ordered by scheduled time.
	List(ctx context.Context, filter AppointmentFilter) ([]*entity.Appointment, error)

	// Update updates an existing appointment.
	Update(ctx context.Context, appointment *entity.Appointment) error
}
