// Package model defines database models for persistence layer.
package model

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/consultorio/dashboard-backend/internal/domain/entity"
)

// ObligationModel represents the obligations table in the database.
type ObligationModel struct {
	ID              string          `gorm:"type:varchar(200);primaryKey"`
	ClientName      string          `gorm:"type:varchar(255);not null"`
	NormalizedName  string          `gorm:"type:varchar(255);not null;index"`
	Kind            string          `gorm:"type:varchar(10);not null;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	DueDate         time.Time       `gorm:"type:date;not null;index"`
	SequenceIndex   int             `gorm:"not null"`
	TotalInSequence int             `gorm:"not null"`
	Active          bool            `gorm:"not null;default:true;index"`
	AnalysisID      *uuid.UUID      `gorm:"type:uuid;index"`
	PaidAt          sql.NullTime    `gorm:"type:timestamp"`
	Notes           string          `gorm:"type:text"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ObligationModel.
func (ObligationModel) TableName() string {
	return "obligations"
}

// ToEntity converts an ObligationModel to a domain Obligation entity.
func (m *ObligationModel) ToEntity() *entity.Obligation {
	var paidAt *time.Time
	if m.PaidAt.Valid {
		t := m.PaidAt.Time.UTC()
		paidAt = &t
	}

	return &entity.Obligation{
		ID:              m.ID,
		ClientName:      m.ClientName,
		Kind:            entity.ObligationKind(m.Kind),
		Amount:          m.Amount,
		DueDate:         CivilDate(m.DueDate),
		SequenceIndex:   m.SequenceIndex,
		TotalInSequence: m.TotalInSequence,
		Active:          m.Active,
		AnalysisID:      m.AnalysisID,
		PaidAt:          paidAt,
		Notes:           m.Notes,
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
}

// ObligationModelFromEntity creates an ObligationModel from a domain Obligation entity.
func ObligationModelFromEntity(o *entity.Obligation) *ObligationModel {
	var paidAt sql.NullTime
	if o.PaidAt != nil {
		paidAt = sql.NullTime{Time: *o.PaidAt, Valid: true}
	}

	return &ObligationModel{
		ID:              o.ID,
		ClientName:      o.ClientName,
		NormalizedName:  entity.NormalizeClientName(o.ClientName),
		Kind:            string(o.Kind),
		Amount:          o.Amount,
		DueDate:         CivilDate(o.DueDate),
		SequenceIndex:   o.SequenceIndex,
		TotalInSequence: o.TotalInSequence,
		Active:          o.Active,
		AnalysisID:      o.AnalysisID,
		PaidAt:          paidAt,
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// CivilDate maps t to midnight UTC of its own calendar date. Date columns
// carry no zone, so every date is stored and compared in this form.
func CivilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
