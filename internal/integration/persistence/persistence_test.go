package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
	"github.com/consultorio/dashboard-backend/internal/domain/clock"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
	domainerror "github.com/consultorio/dashboard-backend/internal/domain/error"
	"github.com/consultorio/dashboard-backend/internal/domain/obligation"
	"github.com/consultorio/dashboard-backend/internal/integration/persistence/model"
)

var now = time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(model.All()...))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func weeklyPlan(analysisID uuid.UUID, periods int) entity.PaymentPlan {
	return entity.PaymentPlan{
		Kind:       entity.ObligationKindWeekly,
		ClientName: "Ana Souza",
		Amount:     decimal.RequireFromString("120.50"),
		StartDate:  time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		Periods:    periods,
		DueWeekday: time.Friday,
		AnalysisID: &analysisID,
	}
}

func TestObligationRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewObligationRepository(openTestDB(t))
	factory := obligation.NewFactory(clock.NewFixed(now))
	analysisID := uuid.New()

	created := factory.BuildFromPlan(weeklyPlan(analysisID, 3))
	require.NoError(t, repo.SaveAll(ctx, created))

	loaded, err := repo.LoadByScope(ctx, adapter.ObligationScope{ClientName: "  ana   SOUZA"})
	require.NoError(t, err)
	require.Len(t, loaded, 3)

	first := loaded[0]
	assert.Equal(t, created[0].ID, first.ID)
	assert.Equal(t, time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC), first.DueDate)
	assert.True(t, decimal.RequireFromString("120.50").Equal(first.Amount))
	assert.Equal(t, 1, first.SequenceIndex)
	assert.Equal(t, 3, first.TotalInSequence)
	require.NotNil(t, first.AnalysisID)
	assert.Equal(t, analysisID, *first.AnalysisID)
	assert.True(t, first.Active)
	assert.Nil(t, first.PaidAt)

	t.Run("due range is inclusive", func(t *testing.T) {
		from := time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 6, 21, 23, 0, 0, 0, time.UTC)
		inRange, err := repo.LoadByScope(ctx, adapter.ObligationScope{DueFrom: &from, DueTo: &to})
		require.NoError(t, err)
		require.Len(t, inRange, 2)
		assert.Equal(t, 2, inRange[0].SequenceIndex)
		assert.Equal(t, 3, inRange[1].SequenceIndex)
	})

	t.Run("mark paid persists", func(t *testing.T) {
		o, err := repo.FindByID(ctx, first.ID)
		require.NoError(t, err)
		obligation.MarkPaid(o, now)
		require.NoError(t, repo.Update(ctx, o))

		reloaded, err := repo.FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.False(t, reloaded.Active)
		require.NotNil(t, reloaded.PaidAt)
		assert.True(t, now.Equal(*reloaded.PaidAt))

		active := true
		outstanding, err := repo.LoadByScope(ctx, adapter.ObligationScope{AnalysisID: &analysisID, Active: &active})
		require.NoError(t, err)
		assert.Len(t, outstanding, 2)
	})

	t.Run("missing obligation", func(t *testing.T) {
		_, err := repo.FindByID(ctx, "nope")
		assert.True(t, errors.Is(err, domainerror.ErrObligationNotFound))
		assert.True(t, errors.Is(repo.Update(ctx, &entity.Obligation{ID: "nope"}), domainerror.ErrObligationNotFound))
		assert.True(t, errors.Is(repo.Delete(ctx, "nope"), domainerror.ErrObligationNotFound))
	})
}

func TestObligationRepository_ApplyResync(t *testing.T) {
	ctx := context.Background()
	repo := NewObligationRepository(openTestDB(t))
	factory := obligation.NewFactory(clock.NewFixed(now))
	analysisID := uuid.New()

	require.NoError(t, repo.SaveAll(ctx, factory.BuildFromPlan(weeklyPlan(analysisID, 2))))

	existing, err := repo.LoadByScope(ctx, adapter.ObligationScope{AnalysisID: &analysisID})
	require.NoError(t, err)

	later := now.Add(time.Hour)
	result := obligation.Resync(existing, analysisID, weeklyPlan(analysisID, 4), factory)
	require.NoError(t, repo.ApplyResync(ctx, result, later))

	all, err := repo.LoadByScope(ctx, adapter.ObligationScope{AnalysisID: &analysisID})
	require.NoError(t, err)
	require.Len(t, all, 6)

	active, inactive := 0, 0
	for _, o := range all {
		if o.Active {
			active++
		} else {
			inactive++
			assert.True(t, later.Equal(o.UpdatedAt))
		}
	}
	assert.Equal(t, 4, active)
	assert.Equal(t, 2, inactive)
}

func TestObligationRepository_ApplyResyncIsAtomic(t *testing.T) {
	ctx := context.Background()
	repo := NewObligationRepository(openTestDB(t))
	factory := obligation.NewFactory(clock.NewFixed(now))
	analysisID := uuid.New()

	original := factory.BuildFromPlan(weeklyPlan(analysisID, 2))
	require.NoError(t, repo.SaveAll(ctx, original))

	// Re-inserting an existing primary key fails the insert half.
	result := obligation.ResyncResult{
		ToDeactivate: []string{original[0].ID, original[1].ID},
		ToCreate:     []*entity.Obligation{original[0]},
	}
	require.Error(t, repo.ApplyResync(ctx, result, now))

	active := true
	still, err := repo.LoadByScope(ctx, adapter.ObligationScope{Active: &active})
	require.NoError(t, err)
	assert.Len(t, still, 2, "deactivation must roll back with the failed insert")
}

func TestObligationRepository_DeleteActiveByAnalysis(t *testing.T) {
	ctx := context.Background()
	repo := NewObligationRepository(openTestDB(t))
	factory := obligation.NewFactory(clock.NewFixed(now))
	analysisID := uuid.New()
	other := uuid.New()

	mine := factory.BuildFromPlan(weeklyPlan(analysisID, 3))
	obligation.MarkPaid(mine[0], now)
	require.NoError(t, repo.SaveAll(ctx, mine))
	require.NoError(t, repo.SaveAll(ctx, factory.BuildFromPlan(weeklyPlan(other, 1))))

	deleted, err := repo.DeleteActiveByAnalysis(ctx, analysisID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{mine[1].ID, mine[2].ID}, deleted)

	left, err := repo.LoadByScope(ctx, adapter.ObligationScope{})
	require.NoError(t, err)
	assert.Len(t, left, 2)

	none, err := repo.DeleteActiveByAnalysis(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestClientRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewClientRepository(openTestDB(t))

	ana := entity.NewClient("Ana Souza", "ana@example.com", "", "", now)
	require.NoError(t, repo.Create(ctx, ana))
	require.NoError(t, repo.Create(ctx, entity.NewClient("Bruno", "", "", "", now)))

	found, err := repo.FindByName(ctx, "ANA  souza")
	require.NoError(t, err)
	assert.Equal(t, ana.ID, found.ID)
	assert.Equal(t, "ana@example.com", found.Email)

	err = repo.Create(ctx, entity.NewClient("ana souza", "", "", "", now))
	assert.True(t, errors.Is(err, domainerror.ErrClientNameTaken))

	names, err := repo.ListNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ana Souza", "Bruno"}, names)

	require.NoError(t, repo.Delete(ctx, ana.ID))
	_, err = repo.FindByID(ctx, ana.ID)
	assert.True(t, errors.Is(err, domainerror.ErrClientNotFound))
	assert.True(t, errors.Is(repo.Delete(ctx, ana.ID), domainerror.ErrClientNotFound))

	// The name is free again once the client is gone.
	require.NoError(t, repo.Create(ctx, entity.NewClient("Ana Souza", "", "", "", now)))
}

func TestAnalysisRepository_PlanColumns(t *testing.T) {
	ctx := context.Background()
	repo := NewAnalysisRepository(openTestDB(t))

	plan := entity.PaymentPlan{
		Kind:       entity.ObligationKindMonthly,
		ClientName: "Ana",
		Amount:     decimal.NewFromInt(300),
		StartDate:  time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		Periods:    6,
		DueDay:     31,
	}
	withPlan := entity.NewAnalysis("Ana", entity.ServiceTypeTherapy, now, "first session", &plan, now)
	without := entity.NewAnalysis("Ana", entity.ServiceTypeTarot, now.AddDate(0, 0, 1), "", nil, now)
	require.NoError(t, repo.Create(ctx, withPlan))
	require.NoError(t, repo.Create(ctx, without))

	loaded, err := repo.FindByID(ctx, withPlan.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Plan)
	assert.True(t, loaded.HasPlan())
	assert.True(t, plan.SameSchedule(*loaded.Plan))
	require.NotNil(t, loaded.Plan.AnalysisID)
	assert.Equal(t, withPlan.ID, *loaded.Plan.AnalysisID)

	loaded, err = repo.FindByID(ctx, without.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded.Plan)

	list, err := repo.List(ctx, adapter.AnalysisFilter{ClientName: "ana"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, without.ID, list[0].ID, "newest session first")

	list, err = repo.List(ctx, adapter.AnalysisFilter{ServiceType: entity.ServiceTypeTherapy})
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, withPlan.ID))
	_, err = repo.FindByID(ctx, withPlan.ID)
	assert.True(t, errors.Is(err, domainerror.ErrAnalysisNotFound))
}

func TestAppointmentRepository_Filters(t *testing.T) {
	ctx := context.Background()
	repo := NewAppointmentRepository(openTestDB(t))

	first := entity.NewAppointment("Ana", entity.ServiceTypeTarot, now, decimal.NewFromInt(100), "", now)
	second := entity.NewAppointment("Bruno", entity.ServiceTypeTherapy, now.Add(48*time.Hour), decimal.NewFromInt(200), "", now)
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, first))

	second.Status = entity.AppointmentStatusPaid
	require.NoError(t, repo.Update(ctx, second))

	all, err := repo.List(ctx, adapter.AppointmentFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)

	paid, err := repo.List(ctx, adapter.AppointmentFilter{Status: entity.AppointmentStatusPaid})
	require.NoError(t, err)
	require.Len(t, paid, 1)
	assert.True(t, decimal.NewFromInt(200).Equal(paid[0].Amount))

	to := now.Add(time.Hour)
	early, err := repo.List(ctx, adapter.AppointmentFilter{To: &to})
	require.NoError(t, err)
	require.Len(t, early, 1)
	assert.Equal(t, first.ID, early[0].ID)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.True(t, errors.Is(err, domainerror.ErrAppointmentNotFound))
}

func TestEmailQueueRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewEmailQueueRepository(openTestDB(t))

	content := entity.ReminderContent{
		ClientName:      "Ana",
		Amount:          decimal.RequireFromString("150.00"),
		DueDate:         time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC),
		SequenceIndex:   2,
		TotalInSequence: 4,
		UrgencyText:     "Vence em 2 dias",
		PracticeName:    "Espaço Lua",
	}
	job := entity.NewReminderJob(entity.TemplatePaymentReminder, "weekly-abc-1-x", "ana@example.com", "Lembrete", content, now)
	later := entity.NewReminderJob(entity.TemplateOverdueNotice, "weekly-abc-2-y", "ana@example.com", "Atraso", content, now.Add(time.Hour))
	require.NoError(t, repo.Create(ctx, job))
	require.NoError(t, repo.Create(ctx, later))

	claimed, err := repo.ClaimDue(ctx, now, 10)
	require.NoError(t, err)
	require.Len(t, claimed, 1)
	assert.Equal(t, job.ID, claimed[0].ID)
	assert.Equal(t, entity.EmailStatusProcessing, claimed[0].Status)
	assert.True(t, content.Amount.Equal(claimed[0].Content.Amount))
	assert.Equal(t, content.DueDate, claimed[0].Content.DueDate)
	assert.Equal(t, "2/4", claimed[0].Content.Installment())

	again, err := repo.ClaimDue(ctx, now, 10)
	require.NoError(t, err)
	assert.Empty(t, again)

	released, err := repo.ReleaseStale(ctx, now.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, int64(1), released)

	byObligation, err := repo.ListByObligation(ctx, "weekly-abc-1-x")
	require.NoError(t, err)
	require.Len(t, byObligation, 1)
	assert.Equal(t, entity.EmailStatusPending, byObligation[0].Status)
	assert.Nil(t, byObligation[0].ClaimedAt)

	job.MarkSent("re_123", now)
	require.NoError(t, repo.Update(ctx, job))
	stored, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.EmailStatusSent, stored.Status)
	assert.Equal(t, "re_123", stored.ProviderID)

	removed, err := repo.PurgeSent(ctx, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = repo.GetByID(ctx, job.ID)
	assert.True(t, errors.Is(err, domainerror.ErrEmailJobNotFound))
}
