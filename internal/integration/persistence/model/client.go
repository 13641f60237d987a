// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/consultorio/dashboard-backend/internal/domain/entity"
)

// ClientModel represents the clients table in the database.
type ClientModel struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name           string         `gorm:"type:varchar(255);not null"`
	NormalizedName string         `gorm:"type:varchar(255);not null;uniqueIndex"`
	Email          string         `gorm:"type:varchar(255)"`
	Phone          string         `gorm:"type:varchar(50)"`
	Notes          string         `gorm:"type:text"`
	CreatedAt      time.Time      `gorm:"not null"`
	UpdatedAt      time.Time      `gorm:"not null"`
	DeletedAt      gorm.DeletedAt `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the ClientModel.
func (ClientModel) TableName() string {
	return "clients"
}

// ToEntity converts a ClientModel to a domain Client entity.
func (m *ClientModel) ToEntity() *entity.Client {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Client{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
		DeletedAt: deletedAt,
	}
}

// ClientModelFromEntity creates a ClientModel from a domain Client entity.
func ClientModelFromEntity(c *entity.Client) *ClientModel {
	var deletedAt gorm.DeletedAt
	if c.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *c.DeletedAt, Valid: true}
	}

	return &ClientModel{
		ID:             c.ID,
		Name:           c.Name,
		NormalizedName: c.NormalizedName(),
		Email:          c.Email,
		Phone:          c.Phone,
		Notes:          c.Notes,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
		DeletedAt:      deletedAt,
	}
}
