package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consultorio/dashboard-backend/internal/application/usecase/usecasetest"
	"github.com/consultorio/dashboard-backend/internal/domain/clock"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
	domainerror "github.com/consultorio/dashboard-backend/internal/domain/error"
)

var now = time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC)

func appointmentCode(t *testing.T, err error) domainerror.AppointmentErrorCode {
	t.Helper()
	var aptErr *domainerror.AppointmentError
	require.True(t, errors.As(err, &aptErr), "expected AppointmentError, got %v", err)
	return aptErr.Code
}

func TestCreateAppointment(t *testing.T) {
	ctx := context.Background()
	repo := usecasetest.NewAppointmentRepository()
	uc := NewCreateAppointmentUseCase(repo, clock.NewFixed(now))

	out, err := uc.Execute(ctx, CreateAppointmentInput{
		ClientName:  "Ana",
		ServiceType: "THERAPY",
		ScheduledAt: now.Add(48 * time.Hour),
		Amount:      decimal.NewFromInt(200),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ServiceTypeTherapy, out.Appointment.ServiceType)
	assert.Equal(t, entity.AppointmentStatusScheduled, out.Appointment.Status)

	tests := []struct {
		name  string
		input CreateAppointmentInput
		code  domainerror.AppointmentErrorCode
	}{
		{"missing client", CreateAppointmentInput{ServiceType: "tarot"}, domainerror.ErrCodeAppointmentClientRequired},
		{"unknown service", CreateAppointmentInput{ClientName: "Ana", ServiceType: "reiki"}, domainerror.ErrCodeInvalidAppointmentService},
		{"negative amount", CreateAppointmentInput{ClientName: "Ana", ServiceType: "tarot", Amount: decimal.NewFromInt(-5)}, domainerror.ErrCodeAppointmentNegativeAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, tt.input)
			assert.Equal(t, tt.code, appointmentCode(t, err))
		})
	}
}

func TestListAppointments(t *testing.T) {
	ctx := context.Background()
	first := entity.NewAppointment("Ana", entity.ServiceTypeTarot, now, decimal.NewFromInt(100), "", now)
	second := entity.NewAppointment("Bruno", entity.ServiceTypeTarot, now.Add(24*time.Hour), decimal.NewFromInt(100), "", now)
	second.Status = entity.AppointmentStatusPaid
	uc := NewListAppointmentsUseCase(usecasetest.NewAppointmentRepository(first, second))

	out, err := uc.Execute(ctx, ListAppointmentsInput{})
	require.NoError(t, err)
	require.Len(t, out.Appointments, 2)
	assert.Equal(t, first.ID, out.Appointments[0].ID)

	out, err = uc.Execute(ctx, ListAppointmentsInput{Status: "paid"})
	require.NoError(t, err)
	require.Len(t, out.Appointments, 1)
	assert.Equal(t, second.ID, out.Appointments[0].ID)

	_, err = uc.Execute(ctx, ListAppointmentsInput{Status: "lost"})
	assert.Equal(t, domainerror.ErrCodeInvalidAppointmentStatus, appointmentCode(t, err))

	from, to := now, now.Add(-time.Hour)
	_, err = uc.Execute(ctx, ListAppointmentsInput{From: &from, To: &to})
	assert.Equal(t, domainerror.ErrCodeInvalidAppointmentDateRange, appointmentCode(t, err))
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	a := entity.NewAppointment("Ana", entity.ServiceTypeTarot, now, decimal.NewFromInt(100), "", now)
	repo := usecasetest.NewAppointmentRepository(a)
	later := now.Add(time.Hour)
	uc := NewUpdateStatusUseCase(repo, clock.NewFixed(later))

	out, err := uc.Execute(ctx, UpdateStatusInput{AppointmentID: a.ID, Status: "paid"})
	require.NoError(t, err)
	assert.True(t, out.Appointment.IsSettled())
	assert.Equal(t, later, out.Appointment.UpdatedAt)

	_, err = uc.Execute(ctx, UpdateStatusInput{AppointmentID: uuid.New(), Status: "paid"})
	assert.Equal(t, domainerror.ErrCodeAppointmentNotFound, appointmentCode(t, err))

	_, err = uc.Execute(ctx, UpdateStatusInput{AppointmentID: a.ID, Status: "done"})
	assert.Equal(t, domainerror.ErrCodeInvalidAppointmentStatus, appointmentCode(t, err))
}
