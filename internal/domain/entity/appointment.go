// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppointmentStatus represents the lifecycle of a session.
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusPaid      AppointmentStatus = "paid"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// IsValid reports whether s is a known status.
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusPaid, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Appointment represents a single session with a client.
type Appointment struct {
	ID          uuid.UUID
	ClientName  string
	ServiceType ServiceType
	ScheduledAt time.Time
	Amount      decimal.Decimal
	Status      AppointmentStatus
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewAppointment creates a scheduled appointment.
func NewAppointment(clientName string, serviceType ServiceType, scheduledAt time.Time, amount decimal.Decimal, notes string, now time.Time) *Appointment {
	now = now.UTC()

	return &Appointment{
		ID:          uuid.New(),
		ClientName:  clientName,
		ServiceType: serviceType,
		ScheduledAt: scheduledAt,
		Amount:      amount,
		Status:      AppointmentStatusScheduled,
		Notes:       notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsSettled reports whether the appointment has been paid.
func (a *Appointment) IsSettled() bool {
	return a.Status == AppointmentStatusPaid
}

// BillingDate returns the session date.
func (a *Appointment) BillingDate() time.Time {
	return a.ScheduledAt
}

// BillingAmount returns the session price.
func (a *Appointment) BillingAmount() decimal.Decimal {
	return a.Amount
}
