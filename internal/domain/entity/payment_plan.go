// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentPlan is the recurring-payment configuration that generates a set of
// obligations. DueWeekday is used by weekly plans, DueDay by monthly ones.
type PaymentPlan struct {
	Kind       ObligationKind
	ClientName string
	Amount     decimal.Decimal
	StartDate  time.Time
	Periods    int
	DueWeekday time.Weekday
	DueDay     int
	AnalysisID *uuid.UUID
}

// WithAnalysis returns a copy of the plan bound to the given analysis.
func (p PaymentPlan) WithAnalysis(id uuid.UUID) PaymentPlan {
	p.AnalysisID = &id
	return p
}

// SameSchedule reports whether two plans generate the same obligations,
// ignoring the analysis binding.
func (p PaymentPlan) SameSchedule(o PaymentPlan) bool {
	return p.Kind == o.Kind &&
		p.ClientName == o.ClientName &&
		p.Amount.Equal(o.Amount) &&
		p.StartDate.Equal(o.StartDate) &&
		p.Periods == o.Periods &&
		p.DueWeekday == o.DueWeekday &&
		p.DueDay == o.DueDay
}
