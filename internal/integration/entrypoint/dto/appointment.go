package dto

import (
	"time"

	"github.com/consultorio/dashboard-backend/internal/domain/entity"
)

// CreateAppointmentRequest represents the request body for appointment
// creation. scheduled_at is RFC 3339 or a YYYY-MM-DD date.
type CreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required,max=200"`
	ServiceType string `json:"service_type" binding:"required"`
	ScheduledAt string `json:"scheduled_at" binding:"required"`
	Amount      Amount `json:"amount"`
	Notes       string `json:"notes,omitempty"`
}

// UpdateAppointmentStatusRequest represents the request body for a status change.
type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AppointmentResponse represents a single appointment in API responses.
type AppointmentResponse struct {
	ID          string    `json:"id"`
	ClientName  string    `json:"client_name"`
	ServiceType string    `json:"service_type"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Amount      Amount    `json:"amount"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AppointmentListResponse represents the response for listing appointments.
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// ParseTimestamp accepts RFC 3339 or a bare YYYY-MM-DD date.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return ParseDate(s)
}

// ToAppointmentResponse converts a domain Appointment to an AppointmentResponse DTO.
func ToAppointmentResponse(a *entity.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:          a.ID.String(),
		ClientName:  a.ClientName,
		ServiceType: string(a.ServiceType),
		ScheduledAt: a.ScheduledAt,
		Amount:      NewAmount(a.Amount),
		Status:      string(a.Status),
		Notes:       a.Notes,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// ToAppointmentListResponse converts appointments to an AppointmentListResponse DTO.
func ToAppointmentListResponse(appointments []*entity.Appointment) AppointmentListResponse {
	items := make([]AppointmentResponse, len(appointments))
	for i, a := range appointments {
		items[i] = ToAppointmentResponse(a)
	}
	return AppointmentListResponse{Appointments: items}
}
