package model

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/consultorio/dashboard-backend/internal/domain/entity"
)

// EmailQueueModel represents the email_queue table in the database.
// Reminder content is stored in columns so queued mails stay queryable.
type EmailQueueModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TemplateType    string          `gorm:"type:varchar(50);not null"`
	ObligationID    string          `gorm:"type:varchar(200);not null;index:idx_email_queue_obligation_day,priority:1"`
	ReminderDate    time.Time       `gorm:"type:date;not null;index:idx_email_queue_obligation_day,priority:2"`
	RecipientEmail  string          `gorm:"type:varchar(255);not null"`
	RecipientName   string          `gorm:"type:varchar(255)"`
	Subject         string          `gorm:"type:varchar(500);not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	DueDate         time.Time       `gorm:"type:date;not null"`
	SequenceIndex   int             `gorm:"not null"`
	TotalInSequence int             `gorm:"not null"`
	UrgencyText     string          `gorm:"type:varchar(100)"`
	PracticeName    string          `gorm:"type:varchar(255)"`
	Status          string          `gorm:"type:varchar(20);not null;default:'pending';index:idx_email_queue_due,priority:1"`
	Attempts        int             `gorm:"not null;default:0"`
	MaxAttempts     int             `gorm:"not null;default:3"`
	LastError       string          `gorm:"type:text"`
	ProviderID      string          `gorm:"type:varchar(100)"`
	CreatedAt       time.Time       `gorm:"not null"`
	ScheduledAt     time.Time       `gorm:"not null;index:idx_email_queue_due,priority:2"`
	ClaimedAt       sql.NullTime    `gorm:"type:timestamp"`
	ProcessedAt     sql.NullTime    `gorm:"type:timestamp"`
}

// TableName returns the table name for the EmailQueueModel.
func (EmailQueueModel) TableName() string {
	return "email_queue"
}

// ToEntity converts an EmailQueueModel to a domain EmailJob entity.
func (m *EmailQueueModel) ToEntity() *entity.EmailJob {
	return &entity.EmailJob{
		ID:             m.ID,
		TemplateType:   entity.EmailTemplateType(m.TemplateType),
		ObligationID:   m.ObligationID,
		ReminderDate:   CivilDate(m.ReminderDate),
		RecipientEmail: m.RecipientEmail,
		Subject:        m.Subject,
		Content: entity.ReminderContent{
			ClientName:      m.RecipientName,
			Amount:          m.Amount,
			DueDate:         CivilDate(m.DueDate),
			SequenceIndex:   m.SequenceIndex,
			TotalInSequence: m.TotalInSequence,
			UrgencyText:     m.UrgencyText,
			PracticeName:    m.PracticeName,
		},
		Status:      entity.EmailStatus(m.Status),
		Attempts:    m.Attempts,
		MaxAttempts: m.MaxAttempts,
		LastError:   m.LastError,
		ProviderID:  m.ProviderID,
		CreatedAt:   m.CreatedAt.UTC(),
		ScheduledAt: m.ScheduledAt.UTC(),
		ClaimedAt:   fromNullTime(m.ClaimedAt),
		ProcessedAt: fromNullTime(m.ProcessedAt),
	}
}

// EmailQueueModelFromEntity creates an EmailQueueModel from a domain EmailJob entity.
func EmailQueueModelFromEntity(job *entity.EmailJob) *EmailQueueModel {
	c := job.Content
	return &EmailQueueModel{
		ID:              job.ID,
		TemplateType:    string(job.TemplateType),
		ObligationID:    job.ObligationID,
		ReminderDate:    job.ReminderDate,
		RecipientEmail:  job.RecipientEmail,
		RecipientName:   c.ClientName,
		Subject:         job.Subject,
		Amount:          c.Amount,
		DueDate:         c.DueDate,
		SequenceIndex:   c.SequenceIndex,
		TotalInSequence: c.TotalInSequence,
		UrgencyText:     c.UrgencyText,
		PracticeName:    c.PracticeName,
		Status:          string(job.Status),
		Attempts:        job.Attempts,
		MaxAttempts:     job.MaxAttempts,
		LastError:       job.LastError,
		ProviderID:      job.ProviderID,
		CreatedAt:       job.CreatedAt,
		ScheduledAt:     job.ScheduledAt,
		ClaimedAt:       toNullTime(job.ClaimedAt),
		ProcessedAt:     toNullTime(job.ProcessedAt),
	}
}

func fromNullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
