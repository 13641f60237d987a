// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ProviderID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// EmailService defines the interface for queueing emails.
type EmailService interface {
	// QueuePaymentReminderEmail queues a reminder about an upcoming or overdue payment.
	QueuePaymentReminderEmail(ctx context.Context, input QueuePaymentReminderInput) error
}

// QueuePaymentReminderInput represents the input for queueing a payment reminder.
type QueuePaymentReminderInput struct {
	ObligationID    string
	ClientName      string
	ClientEmail     string
	Amount          decimal.Decimal
	DueDate         time.Time
	SequenceIndex   int
	TotalInSequence int
	UrgencyText     string
	Overdue         bool
}
