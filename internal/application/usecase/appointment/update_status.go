// Package appointment contains appointment-related use cases.
package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
	"github.com/consultorio/dashboard-backend/internal/domain/clock"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
	domainerror "github.com/consultorio/dashboard-backend/internal/domain/error"
)

// UpdateStatusInput represents the input for an appointment status change.
type UpdateStatusInput struct {
	AppointmentID uuid.UUID
	Status        string
}

// UpdateStatusOutput represents the output of an appointment status change.
type UpdateStatusOutput struct {
	Appointment *entity.Appointment
}

// UpdateStatusUseCase moves an appointment through its lifecycle.
type UpdateStatusUseCase struct {
	appointmentRepo adapter.AppointmentRepository
	clock           clock.Clock
}

// NewUpdateStatusUseCase creates a new UpdateStatusUseCase instance.
func NewUpdateStatusUseCase(appointmentRepo adapter.AppointmentRepository, clk clock.Clock) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{
		appointmentRepo: appointmentRepo,
		clock:           clk,
	}
}

// Execute performs the status change.
func (uc *UpdateStatusUseCase) Execute(ctx context.Context, input UpdateStatusInput) (*UpdateStatusOutput, error) {
	status := entity.AppointmentStatus(input.Status)
	if !status.IsValid() {
		return nil, invalidStatus()
	}

	appointment, err := uc.appointmentRepo.FindByID(ctx, input.AppointmentID)
	if err != nil {
		if errors.Is(err, domainerror.ErrAppointmentNotFound) {
			return nil, domainerror.NewAppointmentError(
				domainerror.ErrCodeAppointmentNotFound,
				"appointment not found",
				domainerror.ErrAppointmentNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find appointment: %w", err)
	}

	appointment.Status = status
	appointment.UpdatedAt = uc.clock.Now().UTC()
	if err := uc.appointmentRepo.Update(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	return &UpdateStatusOutput{Appointment: appointment}, nil
}
