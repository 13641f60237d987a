// Package appointment contains appointment-related use cases.
package appointment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
	"github.com/consultorio/dashboard-backend/internal/domain/clock"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
	domainerror "github.com/consultorio/dashboard-backend/internal/domain/error"
)

// CreateAppointmentInput represents the input for appointment creation.
type CreateAppointmentInput struct {
	ClientName  string
	ServiceType string
	ScheduledAt time.Time
	Amount      decimal.Decimal
	Notes       string
}

// CreateAppointmentOutput represents the output of appointment creation.
type CreateAppointmentOutput struct {
	Appointment *entity.Appointment
}

// CreateAppointmentUseCase handles appointment creation logic.
type CreateAppointmentUseCase struct {
	appointmentRepo adapter.AppointmentRepository
	clock           clock.Clock
}

// NewCreateAppointmentUseCase creates a new CreateAppointmentUseCase instance.
func NewCreateAppointmentUseCase(appointmentRepo adapter.AppointmentRepository, clk clock.Clock) *CreateAppointmentUseCase {
	return &CreateAppointmentUseCase{
		appointmentRepo: appointmentRepo,
		clock:           clk,
	}
}

// Execute performs the appointment creation.
func (uc *CreateAppointmentUseCase) Execute(ctx context.Context, input CreateAppointmentInput) (*CreateAppointmentOutput, error) {
	clientName := strings.Join(strings.Fields(input.ClientName), " ")
	if clientName == "" {
		return nil, domainerror.NewAppointmentError(
			domainerror.ErrCodeAppointmentClientRequired,
			"client name is required",
			domainerror.ErrAppointmentClientRequired,
		)
	}

	serviceType := entity.ServiceType(strings.ToLower(strings.TrimSpace(input.ServiceType)))
	if !serviceType.IsValid() {
		return nil, domainerror.NewAppointmentError(
			domainerror.ErrCodeInvalidAppointmentService,
			"service type must be 'tarot', 'therapy', or 'consultation'",
			domainerror.ErrInvalidServiceType,
		)
	}

	if input.Amount.IsNegative() {
		return nil, domainerror.NewAppointmentError(
			domainerror.ErrCodeAppointmentNegativeAmount,
			"amount cannot be negative",
			domainerror.ErrNegativeAmount,
		)
	}

	appointment := entity.NewAppointment(clientName, serviceType, input.ScheduledAt, input.Amount, input.Notes, uc.clock.Now())
	if err := uc.appointmentRepo.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	return &CreateAppointmentOutput{Appointment: appointment}, nil
}
