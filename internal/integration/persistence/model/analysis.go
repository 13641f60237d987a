// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/consultorio/dashboard-backend/internal/domain/entity"
)

// AnalysisModel represents the analyses table in the database. The payment
// plan is stored inline; PlanKind is empty when the analysis has no plan.
type AnalysisModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ClientName     string          `gorm:"type:varchar(255);not null"`
	NormalizedName string          `gorm:"type:varchar(255);not null;index"`
	ServiceType    string          `gorm:"type:varchar(20);not null;index"`
	SessionDate    time.Time       `gorm:"type:date"`
	Notes          string          `gorm:"type:text"`
	PlanKind       string          `gorm:"type:varchar(10)"`
	PlanAmount     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	PlanStartDate  *time.Time      `gorm:"type:date"`
	PlanPeriods    int             `gorm:"not null;default:0"`
	PlanDueWeekday int             `gorm:"not null;default:0"`
	PlanDueDay     int             `gorm:"not null;default:0"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
	DeletedAt      gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the AnalysisModel.
func (AnalysisModel) TableName() string {
	return "analyses"
}

// ToEntity converts an AnalysisModel to a domain Analysis entity.
func (m *AnalysisModel) ToEntity() *entity.Analysis {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	a := &entity.Analysis{
		ID:          m.ID,
		ClientName:  m.ClientName,
		ServiceType: entity.ServiceType(m.ServiceType),
		SessionDate: m.SessionDate.UTC(),
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
		DeletedAt:   deletedAt,
	}

	if m.PlanKind != "" {
		id := m.ID
		plan := entity.PaymentPlan{
			Kind:       entity.ObligationKind(m.PlanKind),
			ClientName: m.ClientName,
			Amount:     m.PlanAmount,
			Periods:    m.PlanPeriods,
			DueWeekday: time.Weekday(m.PlanDueWeekday),
			DueDay:     m.PlanDueDay,
			AnalysisID: &id,
		}
		if m.PlanStartDate != nil {
			plan.StartDate = CivilDate(*m.PlanStartDate)
		}
		a.Plan = &plan
	}

	return a
}

// AnalysisModelFromEntity creates an AnalysisModel from a domain Analysis entity.
func AnalysisModelFromEntity(a *entity.Analysis) *AnalysisModel {
	var deletedAt gorm.DeletedAt
	if a.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *a.DeletedAt, Valid: true}
	}

	m := &AnalysisModel{
		ID:             a.ID,
		ClientName:     a.ClientName,
		NormalizedName: entity.NormalizeClientName(a.ClientName),
		ServiceType:    string(a.ServiceType),
		SessionDate:    a.SessionDate,
		Notes:          a.Notes,
		PlanAmount:     decimal.Zero,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
		DeletedAt:      deletedAt,
	}

	if a.Plan != nil {
		start := CivilDate(a.Plan.StartDate)
		m.PlanKind = string(a.Plan.Kind)
		m.PlanAmount = a.Plan.Amount
		m.PlanStartDate = &start
		m.PlanPeriods = a.Plan.Periods
		m.PlanDueWeekday = int(a.Plan.DueWeekday)
		m.PlanDueDay = a.Plan.DueDay
	}

	return m
}
