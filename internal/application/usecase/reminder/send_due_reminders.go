// Package reminder contains payment reminder use cases.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
	"github.com/consultorio/dashboard-backend/internal/domain/clock"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
	"github.com/consultorio/dashboard-backend/internal/domain/obligation"
)

// SendDueRemindersOutput reports what one sweep did.
type SendDueRemindersOutput struct {
	Queued           int
	SkippedNoEmail   int
	SkippedDuplicate int
	Failed           int
}

// SendDueRemindersUseCase queues one reminder per due or overdue obligation
// per day for clients with an e-mail address.
type SendDueRemindersUseCase struct {
	obligationRepo adapter.ObligationRepository
	clientRepo     adapter.ClientRepository
	ledger         adapter.ReminderLedger
	emailService   adapter.EmailService
	metrics        adapter.Metrics
	clock          clock.Clock
	leadDays       int
}

// NewSendDueRemindersUseCase creates a new SendDueRemindersUseCase instance.
// Obligations due within leadDays (and all overdue ones) are reminded.
func NewSendDueRemindersUseCase(
	obligationRepo adapter.ObligationRepository,
	clientRepo adapter.ClientRepository,
	ledger adapter.ReminderLedger,
	emailService adapter.EmailService,
	metrics adapter.Metrics,
	clk clock.Clock,
	leadDays int,
) *SendDueRemindersUseCase {
	return &SendDueRemindersUseCase{
		obligationRepo: obligationRepo,
		clientRepo:     clientRepo,
		ledger:         ledger,
		emailService:   emailService,
		metrics:        metrics,
		clock:          clk,
		leadDays:       leadDays,
	}
}

// Execute performs one reminder sweep.
func (uc *SendDueRemindersUseCase) Execute(ctx context.Context) (*SendDueRemindersOutput, error) {
	today := uc.clock.Now()

	active := true
	dueTo := today.AddDate(0, 0, uc.leadDays)
	obligations, err := uc.obligationRepo.LoadByScope(ctx, adapter.ObligationScope{Active: &active, DueTo: &dueTo})
	if err != nil {
		return nil, fmt.Errorf("failed to load due obligations: %w", err)
	}

	clients, err := uc.clientRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load clients: %w", err)
	}
	byName := make(map[string]*entity.Client, len(clients))
	for _, c := range clients {
		byName[c.NormalizedName()] = c
	}

	out := &SendDueRemindersOutput{}
	for _, o := range obligations {
		urgency := obligation.UrgencyOf(o, today)
		if urgency.Days > uc.leadDays {
			continue
		}

		client, ok := byName[entity.NormalizeClientName(o.ClientName)]
		if !ok || client.Email == "" {
			out.SkippedNoEmail++
			continue
		}

		logger := slog.With("obligation_id", o.ID, "client", client.Name)

		fresh, err := uc.ledger.MarkSent(ctx, o.ID, today)
		if err != nil {
			logger.Error("Failed to check reminder ledger", "error", err)
			out.Failed++
			continue
		}
		if !fresh {
			out.SkippedDuplicate++
			continue
		}

		overdue := urgency.Level == obligation.UrgencyOverdue
		err = uc.emailService.QueuePaymentReminderEmail(ctx, adapter.QueuePaymentReminderInput{
			ObligationID:    o.ID,
			ClientName:      client.Name,
			ClientEmail:     client.Email,
			Amount:          o.Amount,
			DueDate:         o.DueDate,
			SequenceIndex:   o.SequenceIndex,
			TotalInSequence: o.TotalInSequence,
			UrgencyText:     urgency.Text,
			Overdue:         overdue,
		})
		if err != nil {
			logger.Error("Failed to queue payment reminder", "error", err)
			out.Failed++
			continue
		}

		template := entity.TemplatePaymentReminder
		if overdue {
			template = entity.TemplateOverdueNotice
		}
		uc.metrics.RemindersQueued(string(template), 1)
		out.Queued++
	}

	slog.Info("Reminder sweep finished",
		"queued", out.Queued,
		"skipped_no_email", out.SkippedNoEmail,
		"skipped_duplicate", out.SkippedDuplicate,
		"failed", out.Failed,
	)
	return out, nil
}

// Scheduler runs the reminder sweep periodically.
type Scheduler struct {
	useCase  *SendDueRemindersUseCase
	interval time.Duration
}

// NewScheduler creates a new reminder scheduler.
func NewScheduler(useCase *SendDueRemindersUseCase, interval time.Duration) *Scheduler {
	return &Scheduler{
		useCase:  useCase,
		interval: interval,
	}
}

// Start begins the scheduler loop. It blocks until the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	slog.Info("Reminder scheduler started", "interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.run(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Reminder scheduler shutting down")
			return
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

func (s *Scheduler) run(ctx context.Context) {
	if _, err := s.useCase.Execute(ctx); err != nil {
		slog.Error("Reminder sweep failed", "error", err)
	}
}
