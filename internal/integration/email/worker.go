package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
	"github.com/consultorio/dashboard-backend/internal/domain/clock"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
	domainerror "github.com/consultorio/dashboard-backend/internal/domain/error"
	"github.com/consultorio/dashboard-backend/internal/integration/email/templates"
)

// Worker delivers queued reminders through the configured sender.
type Worker struct {
	queue        adapter.EmailQueueRepository
	sender       adapter.EmailSender
	renderer     *templates.Renderer
	clock        clock.Clock
	pollInterval time.Duration
	batchSize    int
	claimTimeout time.Duration
	retention    time.Duration
	lastCleanup  time.Time
}

// WorkerConfig holds configuration for the email worker.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
	// ClaimTimeout is how long a job may stay processing before another
	// poll may take it again.
	ClaimTimeout time.Duration
	// Retention is how long sent jobs are kept. Zero keeps them forever.
	Retention time.Duration
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 5 * time.Second,
		BatchSize:    10,
		ClaimTimeout: 10 * time.Minute,
		Retention:    30 * 24 * time.Hour,
	}
}

// NewWorker creates a new email worker.
func NewWorker(queue adapter.EmailQueueRepository, sender adapter.EmailSender, renderer *templates.Renderer, clk clock.Clock, config WorkerConfig) *Worker {
	return &Worker{
		queue:        queue,
		sender:       sender,
		renderer:     renderer,
		clock:        clk,
		pollInterval: config.PollInterval,
		batchSize:    config.BatchSize,
		claimTimeout: config.ClaimTimeout,
		retention:    config.Retention,
	}
}

// Start runs the worker loop until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Email worker started",
		"poll_interval", w.pollInterval,
		"batch_size", w.batchSize,
	)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.processBatch(ctx)
	for {
		select {
		case <-ctx.Done():
			slog.Info("Email worker shutting down")
			return
		case <-ticker.C:
			w.processBatch(ctx)
		}
	}
}

// ProcessNow runs one poll immediately.
func (w *Worker) ProcessNow(ctx context.Context) {
	w.processBatch(ctx)
}

func (w *Worker) processBatch(ctx context.Context) {
	w.maintain(ctx)

	jobs, err := w.queue.ClaimDue(ctx, w.clock.Now(), w.batchSize)
	if err != nil {
		slog.Error("Failed to claim email jobs", "error", err)
		return
	}
	if len(jobs) == 0 {
		return
	}

	slog.Debug("Processing email batch", "count", len(jobs))
	for _, job := range jobs {
		if ctx.Err() != nil {
			// Unsent claims are picked up again once the claim times out.
			return
		}
		w.deliver(ctx, job)
	}
}

func (w *Worker) deliver(ctx context.Context, job *entity.EmailJob) {
	logger := slog.With(
		"job_id", job.ID,
		"template", job.TemplateType,
		"obligation_id", job.ObligationID,
	)

	if !job.TemplateType.IsValid() {
		w.fail(ctx, logger, job, domainerror.NewEmailError(
			domainerror.ErrCodeInvalidTemplate,
			"unknown template type",
			domainerror.ErrInvalidTemplate,
		), true)
		return
	}

	html, text, err := w.renderer.Render(string(job.TemplateType), templates.NewPaymentReminderData(job.Content))
	if err != nil {
		w.fail(ctx, logger, job, domainerror.NewEmailError(
			domainerror.ErrCodeTemplateRenderFailed,
			"failed to render email template",
			err,
		), true)
		return
	}

	result, err := w.sender.Send(ctx, adapter.SendEmailInput{
		To:      job.RecipientEmail,
		Name:    job.Content.ClientName,
		Subject: job.Subject,
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		w.fail(ctx, logger, job, err, domainerror.IsPermanentEmailFailure(err))
		return
	}

	job.MarkSent(result.ProviderID, w.clock.Now())
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("Failed to mark job as sent", "error", err)
		return
	}
	logger.Info("Reminder email sent", "provider_id", result.ProviderID)
}

func (w *Worker) fail(ctx context.Context, logger *slog.Logger, job *entity.EmailJob, err error, permanent bool) {
	job.MarkFailed(err, permanent, w.clock.Now())
	if updateErr := w.queue.Update(ctx, job); updateErr != nil {
		logger.Error("Failed to update job after failure", "error", updateErr)
	}

	if job.Status == entity.EmailStatusFailed {
		logger.Warn("Email job permanently failed",
			"attempts", job.Attempts,
			"last_error", job.LastError,
		)
		return
	}
	logger.Info("Email job scheduled for retry",
		"attempts", job.Attempts,
		"scheduled_at", job.ScheduledAt,
		"error", err,
	)
}

// maintain releases timed-out claims and purges old sent jobs, at most
// once per hour.
func (w *Worker) maintain(ctx context.Context) {
	now := w.clock.Now()
	if !w.lastCleanup.IsZero() && now.Sub(w.lastCleanup) < time.Hour {
		return
	}
	w.lastCleanup = now

	if w.claimTimeout > 0 {
		released, err := w.queue.ReleaseStale(ctx, now.Add(-w.claimTimeout))
		if err != nil {
			slog.Error("Failed to release stale email jobs", "error", err)
		} else if released > 0 {
			slog.Warn("Released stale email jobs", "count", released)
		}
	}

	if w.retention > 0 {
		removed, err := w.queue.PurgeSent(ctx, now.Add(-w.retention))
		if err != nil {
			slog.Error("Failed to delete old email jobs", "error", err)
		} else if removed > 0 {
			slog.Info("Deleted old email jobs", "count", removed)
		}
	}
}
