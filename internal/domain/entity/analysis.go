// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ServiceType identifies the kind of session offered.
type ServiceType string

const (
	ServiceTypeTarot        ServiceType = "tarot"
	ServiceTypeTherapy      ServiceType = "therapy"
	ServiceTypeConsultation ServiceType = "consultation"
)

// IsValid reports whether s is a known service type.
func (s ServiceType) IsValid() bool {
	return s == ServiceTypeTarot || s == ServiceTypeTherapy || s == ServiceTypeConsultation
}

// Analysis is a consultation record (a tarot reading, a therapy assessment)
// that may carry the payment plan agreed with the client.
type Analysis struct {
	ID          uuid.UUID
	ClientName  string
	ServiceType ServiceType
	SessionDate time.Time
	Notes       string
	Plan        *PaymentPlan
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // Soft-delete support
}

// NewAnalysis creates a new Analysis. A non-nil plan is bound to the new ID.
func NewAnalysis(clientName string, serviceType ServiceType, sessionDate time.Time, notes string, plan *PaymentPlan, now time.Time) *Analysis {
	now = now.UTC()
	id := uuid.New()

	if plan != nil {
		bound := plan.WithAnalysis(id)
		plan = &bound
	}

	return &Analysis{
		ID:          id,
		ClientName:  clientName,
		ServiceType: serviceType,
		SessionDate: sessionDate,
		Notes:       notes,
		Plan:        plan,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// HasPlan reports whether a payment plan is attached.
func (a *Analysis) HasPlan() bool {
	return a.Plan != nil && a.Plan.Periods > 0
}
