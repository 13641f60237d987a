package obligation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
	"github.com/consultorio/dashboard-backend/internal/application/usecase/usecasetest"
	"github.com/consultorio/dashboard-backend/internal/domain/clock"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
	domainerror "github.com/consultorio/dashboard-backend/internal/domain/error"
	domainobligation "github.com/consultorio/dashboard-backend/internal/domain/obligation"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func seed(t *testing.T, repo *usecasetest.ObligationRepository, clk clock.Clock) []*entity.Obligation {
	t.Helper()
	f := domainobligation.NewFactory(clk)
	obligations := f.BuildFromPlan(entity.PaymentPlan{
		Kind:       entity.ObligationKindWeekly,
		ClientName: "Ana",
		Amount:     decimal.NewFromInt(90),
		StartDate:  time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
		Periods:    3,
		DueWeekday: time.Monday,
	})
	require.NoError(t, repo.SaveAll(context.Background(), obligations))
	return obligations
}

func TestMarkPaidAndReopen(t *testing.T) {
	ctx := context.Background()
	repo := usecasetest.NewObligationRepository()
	notifier := &usecasetest.Notifier{}
	metrics := usecasetest.NewMetrics()
	clk := clock.NewFixed(now)
	obligations := seed(t, repo, clk)

	paid, err := NewMarkPaidUseCase(repo, notifier, metrics, clk).Execute(ctx, MarkPaidInput{ObligationID: obligations[0].ID})
	require.NoError(t, err)
	assert.False(t, paid.Obligation.Active)
	require.NotNil(t, paid.Obligation.PaidAt)
	assert.Equal(t, adapter.ChangePaid, notifier.Last().Type)
	assert.Equal(t, 1, metrics.Get("settled"))

	sibling, err := repo.FindByID(ctx, obligations[1].ID)
	require.NoError(t, err)
	assert.True(t, sibling.Active)

	// Paying twice changes nothing and broadcasts nothing.
	_, err = NewMarkPaidUseCase(repo, notifier, metrics, clk).Execute(ctx, MarkPaidInput{ObligationID: obligations[0].ID})
	require.NoError(t, err)
	assert.Len(t, notifier.Events, 1)

	reopened, err := NewReopenUseCase(repo, notifier, clk).Execute(ctx, ReopenInput{ObligationID: obligations[0].ID})
	require.NoError(t, err)
	assert.True(t, reopened.Obligation.Active)
	assert.Nil(t, reopened.Obligation.PaidAt)
	assert.Equal(t, adapter.ChangeReopened, notifier.Last().Type)
}

func TestSupersededObligationStaysClosed(t *testing.T) {
	ctx := context.Background()
	repo := usecasetest.NewObligationRepository()
	notifier := &usecasetest.Notifier{}
	metrics := usecasetest.NewMetrics()
	clk := clock.NewFixed(now)
	obligations := seed(t, repo, clk)
	require.NoError(t, repo.ApplyResync(ctx, domainobligation.ResyncResult{ToDeactivate: []string{obligations[0].ID}}, now))

	_, err := NewReopenUseCase(repo, notifier, clk).Execute(ctx, ReopenInput{ObligationID: obligations[0].ID})
	var oblErr *domainerror.ObligationError
	require.True(t, errors.As(err, &oblErr))
	assert.Equal(t, domainerror.ErrCodeObligationSuperseded, oblErr.Code)

	_, err = NewMarkPaidUseCase(repo, notifier, metrics, clk).Execute(ctx, MarkPaidInput{ObligationID: obligations[0].ID})
	require.True(t, errors.As(err, &oblErr))
	assert.Equal(t, domainerror.ErrCodeObligationSuperseded, oblErr.Code)

	stored, err := repo.FindByID(ctx, obligations[0].ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)
	assert.Nil(t, stored.PaidAt)
	assert.Empty(t, notifier.Events)
	assert.Equal(t, 0, metrics.Get("settled"))
}

func TestMarkPaid_NotFound(t *testing.T) {
	repo := usecasetest.NewObligationRepository()
	clk := clock.NewFixed(now)

	_, err := NewMarkPaidUseCase(repo, &usecasetest.Notifier{}, usecasetest.NewMetrics(), clk).Execute(context.Background(), MarkPaidInput{ObligationID: "missing"})

	var oblErr *domainerror.ObligationError
	require.True(t, errors.As(err, &oblErr))
	assert.Equal(t, domainerror.ErrCodeObligationNotFound, oblErr.Code)
}

func TestListObligations(t *testing.T) {
	ctx := context.Background()
	repo := usecasetest.NewObligationRepository()
	clk := clock.NewFixed(now)
	obligations := seed(t, repo, clk)
	uc := NewListObligationsUseCase(repo, clk)

	out, err := uc.Execute(ctx, ListObligationsInput{ClientName: "ana", Kind: "weekly"})
	require.NoError(t, err)
	require.Len(t, out.Items, 3)
	assert.Equal(t, obligations[0].ID, out.Items[0].Obligation.ID)
	// 2024-05-27 is five days before 2024-06-01.
	assert.Equal(t, domainobligation.UrgencyOverdue, out.Items[0].Urgency.Level)
	assert.Equal(t, "5 dias em atraso", out.Items[0].Urgency.Text)

	_, err = uc.Execute(ctx, ListObligationsInput{Kind: "daily"})
	var oblErr *domainerror.ObligationError
	require.True(t, errors.As(err, &oblErr))
	assert.Equal(t, domainerror.ErrCodeInvalidObligationKind, oblErr.Code)

	from := now
	to := now.AddDate(0, 0, -1)
	_, err = uc.Execute(ctx, ListObligationsInput{DueFrom: &from, DueTo: &to})
	require.True(t, errors.As(err, &oblErr))
	assert.Equal(t, domainerror.ErrCodeInvalidObligationFilter, oblErr.Code)
}

func TestDeleteObligation(t *testing.T) {
	ctx := context.Background()
	repo := usecasetest.NewObligationRepository()
	notifier := &usecasetest.Notifier{}
	clk := clock.NewFixed(now)
	obligations := seed(t, repo, clk)

	require.NoError(t, NewDeleteObligationUseCase(repo, notifier, clk).Execute(ctx, DeleteObligationInput{ObligationID: obligations[1].ID}))

	assert.Len(t, repo.All(), 2)
	assert.Equal(t, []string{obligations[1].ID}, notifier.Last().Deleted)

	err := NewDeleteObligationUseCase(repo, notifier, clk).Execute(ctx, DeleteObligationInput{ObligationID: obligations[1].ID})
	assert.True(t, errors.Is(err, domainerror.ErrObligationNotFound))
}
