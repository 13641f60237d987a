package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmailStatus represents the status of an email job in the queue.
type EmailStatus string

const (
	EmailStatusPending    EmailStatus = "pending"
	EmailStatusProcessing EmailStatus = "processing"
	EmailStatusSent       EmailStatus = "sent"
	EmailStatusFailed     EmailStatus = "failed"
)

// EmailTemplateType represents the type of email template.
type EmailTemplateType string

const (
	TemplatePaymentReminder EmailTemplateType = "payment_reminder"
	TemplateOverdueNotice   EmailTemplateType = "overdue_notice"
)

// IsValid reports whether t names a known template.
func (t EmailTemplateType) IsValid() bool {
	return t == TemplatePaymentReminder || t == TemplateOverdueNotice
}

const defaultMaxAttempts = 3

// retryDelays is indexed by the number of failed attempts so far.
var retryDelays = []time.Duration{0, 1 * time.Minute, 5 * time.Minute}

// ReminderContent is the snapshot of an obligation taken when the reminder
// was queued. Later edits to the obligation do not change a queued mail.
type ReminderContent struct {
	ClientName      string
	Amount          decimal.Decimal
	DueDate         time.Time
	SequenceIndex   int
	TotalInSequence int
	UrgencyText     string
	PracticeName    string
}

// Installment renders the "index/total" position, e.g. "2/6".
func (c ReminderContent) Installment() string {
	return fmt.Sprintf("%d/%d", c.SequenceIndex, c.TotalInSequence)
}

// EmailJob is a queued payment reminder for one obligation on one day.
type EmailJob struct {
	ID             uuid.UUID
	TemplateType   EmailTemplateType
	ObligationID   string
	ReminderDate   time.Time // civil day the reminder covers
	RecipientEmail string
	Subject        string
	Content        ReminderContent
	Status         EmailStatus
	Attempts       int
	MaxAttempts    int
	LastError      string
	ProviderID     string
	CreatedAt      time.Time
	ScheduledAt    time.Time
	ClaimedAt      *time.Time
	ProcessedAt    *time.Time
}

// NewReminderJob creates a pending reminder scheduled for immediate delivery.
func NewReminderJob(templateType EmailTemplateType, obligationID, recipientEmail, subject string, content ReminderContent, now time.Time) *EmailJob {
	now = now.UTC()
	return &EmailJob{
		ID:             uuid.New(),
		TemplateType:   templateType,
		ObligationID:   obligationID,
		ReminderDate:   time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		RecipientEmail: recipientEmail,
		Subject:        subject,
		Content:        content,
		Status:         EmailStatusPending,
		MaxAttempts:    defaultMaxAttempts,
		CreatedAt:      now,
		ScheduledAt:    now,
	}
}

// Claim takes the job for delivery.
func (e *EmailJob) Claim(now time.Time) {
	now = now.UTC()
	e.Status = EmailStatusProcessing
	e.ClaimedAt = &now
}

// MarkSent marks the email job as successfully sent.
func (e *EmailJob) MarkSent(providerID string, now time.Time) {
	now = now.UTC()
	e.Status = EmailStatusSent
	e.ProviderID = providerID
	e.ClaimedAt = nil
	e.ProcessedAt = &now
}

// MarkFailed records a failed attempt. The job is rescheduled with backoff
// unless the failure is permanent or attempts are exhausted.
func (e *EmailJob) MarkFailed(err error, permanent bool, now time.Time) {
	now = now.UTC()
	e.Attempts++
	e.LastError = err.Error()
	e.ClaimedAt = nil

	if permanent || e.Attempts >= e.MaxAttempts {
		e.Status = EmailStatusFailed
		e.ProcessedAt = &now
		return
	}

	delay := retryDelays[len(retryDelays)-1]
	if e.Attempts < len(retryDelays) {
		delay = retryDelays[e.Attempts]
	}
	e.Status = EmailStatusPending
	e.ScheduledAt = now.Add(delay)
}

// IsDue reports whether the job is pending and scheduled at or before now.
func (e *EmailJob) IsDue(now time.Time) bool {
	return e.Status == EmailStatusPending && !now.UTC().Before(e.ScheduledAt)
}

// IsStale reports whether a claimed job has been processing since before cutoff.
func (e *EmailJob) IsStale(cutoff time.Time) bool {
	return e.Status == EmailStatusProcessing && e.ClaimedAt != nil && e.ClaimedAt.Before(cutoff)
}
