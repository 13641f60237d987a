// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ObligationKind tags which recurrence rule produced an obligation.
type ObligationKind string

const (
	ObligationKindMonthly ObligationKind = "monthly"
	ObligationKindWeekly  ObligationKind = "weekly"
)

// IsValid reports whether k is a known kind.
func (k ObligationKind) IsValid() bool {
	return k == ObligationKindMonthly || k == ObligationKindWeekly
}

// Rank orders kinds for deterministic tie-breaking: monthly sorts first.
func (k ObligationKind) Rank() int {
	switch k {
	case ObligationKindMonthly:
		return 0
	case ObligationKindWeekly:
		return 1
	default:
		return 2
	}
}

// Obligation is one scheduled payment due from a client on a given date.
// Weekly obligations were anchored on a weekday, monthly ones on a
// day-of-month; Kind records which.
type Obligation struct {
	ID              string
	ClientName      string
	Kind            ObligationKind
	Amount          decimal.Decimal
	DueDate         time.Time
	SequenceIndex   int
	TotalInSequence int
	Active          bool       // true while unpaid
	AnalysisID      *uuid.UUID // weak reference, linkage only
	PaidAt          *time.Time
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsSettled reports whether the obligation has been paid.
func (o *Obligation) IsSettled() bool {
	return !o.Active && o.PaidAt != nil
}

// IsSuperseded reports whether a resync replaced the obligation before it
// was paid.
func (o *Obligation) IsSuperseded() bool {
	return !o.Active && o.PaidAt == nil
}

// BillingDate returns the due date.
func (o *Obligation) BillingDate() time.Time {
	return o.DueDate
}

// BillingAmount returns the amount owed.
func (o *Obligation) BillingAmount() decimal.Decimal {
	return o.Amount
}

// BelongsTo reports whether the obligation was generated for the given
// analysis and kind.
func (o *Obligation) BelongsTo(analysisID uuid.UUID, kind ObligationKind) bool {
	return o.AnalysisID != nil && *o.AnalysisID == analysisID && o.Kind == kind
}

// Clone returns a deep copy.
func (o *Obligation) Clone() *Obligation {
	c := *o
	if o.AnalysisID != nil {
		id := *o.AnalysisID
		c.AnalysisID = &id
	}
	if o.PaidAt != nil {
		paid := *o.PaidAt
		c.PaidAt = &paid
	}
	return &c
}
