// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/consultorio/dashboard-backend/internal/domain/entity"
)

// AppointmentModel represents the appointments table in the database.
type AppointmentModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ClientName     string          `gorm:"type:varchar(255);not null"`
	NormalizedName string          `gorm:"type:varchar(255);not null;index"`
	ServiceType    string          `gorm:"type:varchar(20);not null"`
	ScheduledAt    time.Time       `gorm:"type:timestamp;not null;index"`
	Amount         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Status         string          `gorm:"type:varchar(20);not null;default:'scheduled';index"`
	Notes          string          `gorm:"type:text"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for the AppointmentModel.
func (AppointmentModel) TableName() string {
	return "appointments"
}

// ToEntity converts an AppointmentModel to a domain Appointment entity.
func (m *AppointmentModel) ToEntity() *entity.Appointment {
	return &entity.Appointment{
		ID:          m.ID,
		ClientName:  m.ClientName,
		ServiceType: entity.ServiceType(m.ServiceType),
		ScheduledAt: m.ScheduledAt.UTC(),
		Amount:      m.Amount,
		Status:      entity.AppointmentStatus(m.Status),
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

// AppointmentModelFromEntity creates an AppointmentModel from a domain Appointment entity.
func AppointmentModelFromEntity(a *entity.Appointment) *AppointmentModel {
	return &AppointmentModel{
		ID:             a.ID,
		ClientName:     a.ClientName,
		NormalizedName: entity.NormalizeClientName(a.ClientName),
		ServiceType:    string(a.ServiceType),
		ScheduledAt:    a.ScheduledAt.UTC(),
		Amount:         a.Amount,
		Status:         string(a.Status),
		Notes:          a.Notes,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
