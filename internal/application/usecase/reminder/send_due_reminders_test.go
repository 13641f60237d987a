package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consultorio/dashboard-backend/internal/application/usecase/usecasetest"
	"github.com/consultorio/dashboard-backend/internal/domain/calendar"
	"github.com/consultorio/dashboard-backend/internal/domain/clock"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
)

var today = time.Date(2024, 7, 15, 7, 0, 0, 0, time.UTC)

func due(id, client string, days int) *entity.Obligation {
	return &entity.Obligation{
		ID:              id,
		ClientName:      client,
		Kind:            entity.ObligationKindMonthly,
		Amount:          decimal.NewFromInt(150),
		DueDate:         calendar.DateOnly(today).AddDate(0, 0, days),
		SequenceIndex:   2,
		TotalInSequence: 6,
		Active:          true,
	}
}

type fixture struct {
	email   *usecasetest.EmailService
	metrics *usecasetest.Metrics
	uc      *SendDueRemindersUseCase
}

func newFixture(t *testing.T, obligations ...*entity.Obligation) *fixture {
	t.Helper()
	repo := usecasetest.NewObligationRepository()
	require.NoError(t, repo.SaveAll(context.Background(), obligations))
	clients := usecasetest.NewClientRepository(
		entity.NewClient("Ana", "ana@example.com", "", "", today),
		entity.NewClient("Bruno", "", "", "", today),
	)
	f := &fixture{email: &usecasetest.EmailService{}, metrics: usecasetest.NewMetrics()}
	f.uc = NewSendDueRemindersUseCase(repo, clients, usecasetest.NewLedger(), f.email, f.metrics, clock.NewFixed(today), 2)
	return f
}

func TestSendDueReminders(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t,
		due("ana-overdue", "ana", -3),
		due("ana-soon", "Ana", 2),
		due("ana-later", "Ana", 3),
		due("bruno-today", "Bruno", 0),
		due("stranger", "Carla", 0),
	)

	out, err := f.uc.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Queued)
	assert.Equal(t, 2, out.SkippedNoEmail)
	assert.Equal(t, 0, out.Failed)

	require.Len(t, f.email.Reminders, 2)
	overdue := f.email.Reminders[0]
	assert.Equal(t, "ana-overdue", overdue.ObligationID)
	assert.True(t, overdue.Overdue)
	assert.Equal(t, "3 dias em atraso", overdue.UrgencyText)
	assert.Equal(t, "ana@example.com", overdue.ClientEmail)
	assert.Equal(t, 2, overdue.SequenceIndex)
	assert.Equal(t, 6, overdue.TotalInSequence)
	assert.False(t, f.email.Reminders[1].Overdue)
	assert.Equal(t, "Vence em 2 dias", f.email.Reminders[1].UrgencyText)

	assert.Equal(t, 1, f.metrics.Get("reminder_"+string(entity.TemplateOverdueNotice)))
	assert.Equal(t, 1, f.metrics.Get("reminder_"+string(entity.TemplatePaymentReminder)))

	t.Run("second sweep on the same day sends nothing", func(t *testing.T) {
		again, err := f.uc.Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, again.Queued)
		assert.Equal(t, 2, again.SkippedDuplicate)
		assert.Len(t, f.email.Reminders, 2)
	})
}

func TestSendDueReminders_QueueFailure(t *testing.T) {
	f := newFixture(t, due("ana-soon", "Ana", 1))
	f.email.Err = errors.New("queue down")

	out, err := f.uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, out.Failed)
	assert.Equal(t, 0, out.Queued)
}

func TestScheduler_RunsImmediately(t *testing.T) {
	f := newFixture(t, due("ana-soon", "Ana", 1))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		NewScheduler(f.uc, time.Hour).Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return f.metrics.Get("reminder_"+string(entity.TemplatePaymentReminder)) == 1 }, time.Second, 10*time.Millisecond)
	cancel()
	<-done
}
