// Package email provides email sending functionality.
package email

import (
	"context"
	"fmt"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
	"github.com/consultorio/dashboard-backend/internal/domain/clock"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
	domainerror "github.com/consultorio/dashboard-backend/internal/domain/error"
)

// Service handles email queueing operations.
type Service struct {
	queue        adapter.EmailQueueRepository
	clock        clock.Clock
	practiceName string
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository, clk clock.Clock, practiceName string) *Service {
	return &Service{
		queue:        queue,
		clock:        clk,
		practiceName: practiceName,
	}
}

// QueuePaymentReminderEmail queues a payment reminder, or an overdue notice
// when the obligation is past due.
func (s *Service) QueuePaymentReminderEmail(ctx context.Context, input adapter.QueuePaymentReminderInput) error {
	if input.ClientEmail == "" {
		return domainerror.NewEmailError(
			domainerror.ErrCodeRecipientMissing,
			"client has no email address",
			domainerror.ErrRecipientMissing,
		)
	}

	templateType := entity.TemplatePaymentReminder
	subject := fmt.Sprintf("Lembrete de pagamento - %s", s.practiceName)
	if input.Overdue {
		templateType = entity.TemplateOverdueNotice
		subject = fmt.Sprintf("Pagamento em atraso - %s", s.practiceName)
	}

	job := entity.NewReminderJob(
		templateType,
		input.ObligationID,
		input.ClientEmail,
		subject,
		entity.ReminderContent{
			ClientName:      input.ClientName,
			Amount:          input.Amount,
			DueDate:         input.DueDate,
			SequenceIndex:   input.SequenceIndex,
			TotalInSequence: input.TotalInSequence,
			UrgencyText:     input.UrgencyText,
			PracticeName:    s.practiceName,
		},
		s.clock.Now(),
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue payment reminder email",
			err,
		)
	}

	return nil
}

// Ensure Service implements adapter.EmailService.
var _ adapter.EmailService = (*Service)(nil)
