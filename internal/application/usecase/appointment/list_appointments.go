// Package appointment contains appointment-related use cases.
package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
	domainerror "github.com/consultorio/dashboard-backend/internal/domain/error"
)

// ListAppointmentsInput represents the input for listing appointments.
type ListAppointmentsInput struct {
	ClientName string
	Status     string
	From       *time.Time
	To         *time.Time
}

// ListAppointmentsOutput represents the output of listing appointments.
type ListAppointmentsOutput struct {
	Appointments []*entity.Appointment
}

// ListAppointmentsUseCase handles listing appointments.
type ListAppointmentsUseCase struct {
	appointmentRepo adapter.AppointmentRepository
}

// NewListAppointmentsUseCase creates a new ListAppointmentsUseCase instance.
func NewListAppointmentsUseCase(appointmentRepo adapter.AppointmentRepository) *ListAppointmentsUseCase {
	return &ListAppointmentsUseCase{appointmentRepo: appointmentRepo}
}

// Execute performs the listing.
func (uc *ListAppointmentsUseCase) Execute(ctx context.Context, input ListAppointmentsInput) (*ListAppointmentsOutput, error) {
	if input.From != nil && input.To != nil && input.To.Before(*input.From) {
		return nil, domainerror.NewAppointmentError(
			domainerror.ErrCodeInvalidAppointmentDateRange,
			"end date must not be before start date",
			domainerror.ErrInvalidDateRange,
		)
	}

	filter := adapter.AppointmentFilter{
		ClientName: input.ClientName,
		From:       input.From,
		To:         input.To,
	}
	if input.Status != "" {
		status := entity.AppointmentStatus(input.Status)
		if !status.IsValid() {
			return nil, invalidStatus()
		}
		filter.Status = status
	}

	appointments, err := uc.appointmentRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return &ListAppointmentsOutput{Appointments: appointments}, nil
}

func invalidStatus() error {
	return domainerror.NewAppointmentError(
		domainerror.ErrCodeInvalidAppointmentStatus,
		"status must be 'scheduled', 'completed', 'paid', or 'cancelled'",
		domainerror.ErrInvalidAppointmentStatus,
	)
}
