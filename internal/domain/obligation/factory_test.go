package obligation

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consultorio/dashboard-backend/internal/domain/clock"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
	"github.com/consultorio/dashboard-backend/internal/domain/schedule"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type sequenceTokens struct {
	tokens []string
	i      int
}

func (s *sequenceTokens) Next() string {
	t := s.tokens[s.i%len(s.tokens)]
	s.i++
	return t
}

var fixedNow = time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC)

func TestFactory_Build(t *testing.T) {
	c := clock.NewFixed(fixedNow)
	f := NewFactory(c)
	analysisID := uuid.New()
	dates := []time.Time{date(2024, 7, 10), date(2024, 8, 10), date(2024, 9, 10)}

	got := f.Build(dates, "Ana Souza", decimal.NewFromInt(150), entity.ObligationKindMonthly, &analysisID)

	require.Len(t, got, 3)
	seen := map[string]bool{}
	for i, o := range got {
		assert.Equal(t, i+1, o.SequenceIndex)
		assert.Equal(t, 3, o.TotalInSequence)
		assert.True(t, o.Active)
		assert.Equal(t, fixedNow, o.CreatedAt)
		assert.Equal(t, dates[i], o.DueDate)
		assert.True(t, decimal.NewFromInt(150).Equal(o.Amount))
		require.NotNil(t, o.AnalysisID)
		assert.Equal(t, analysisID, *o.AnalysisID)
		assert.True(t, strings.HasPrefix(o.ID, "monthly-"+analysisID.String()+"-"))
		assert.False(t, seen[o.ID], "duplicate id %s", o.ID)
		seen[o.ID] = true
	}

	// The caller's analysis ID is copied, not aliased.
	got[0].AnalysisID[0] ^= 0xff
	assert.Equal(t, analysisID, *got[1].AnalysisID)
}

func TestFactory_Build_ScopeFromClientName(t *testing.T) {
	f := NewFactory(clock.NewFixed(fixedNow), WithTokenSource(&sequenceTokens{tokens: []string{"t1", "t2"}}))

	got := f.Build([]time.Time{date(2024, 6, 7)}, "  Ana  SOUZA ", decimal.NewFromInt(10), entity.ObligationKindWeekly, nil)

	require.Len(t, got, 1)
	assert.Equal(t, "weekly-ana-souza-1-t1", got[0].ID)
	assert.Nil(t, got[0].AnalysisID)
}

func TestFactory_Build_FloorsNegativeAmount(t *testing.T) {
	f := NewFactory(clock.NewFixed(fixedNow))
	got := f.Build([]time.Time{date(2024, 6, 7)}, "Ana", decimal.NewFromInt(-5), entity.ObligationKindWeekly, nil)
	require.Len(t, got, 1)
	assert.True(t, got[0].Amount.IsZero())
}

func TestFactory_NeverReissuesTakenIDs(t *testing.T) {
	tokens := &sequenceTokens{tokens: []string{"a", "a", "b"}}
	f := NewFactory(clock.NewFixed(fixedNow), WithTokenSource(tokens))
	taken := map[string]struct{}{"weekly-ana-1-a": {}}

	got := f.build([]time.Time{date(2024, 6, 7)}, "Ana", decimal.NewFromInt(10), entity.ObligationKindWeekly, nil, taken)

	require.Len(t, got, 1)
	assert.Equal(t, "weekly-ana-1-b", got[0].ID)
	assert.Contains(t, taken, "weekly-ana-1-b")
}

func TestFactory_ExhaustedTokensFallBackToRandomSuffix(t *testing.T) {
	tokens := &sequenceTokens{tokens: []string{"a"}}
	f := NewFactory(clock.NewFixed(fixedNow), WithTokenSource(tokens))
	taken := map[string]struct{}{"weekly-ana-1-a": {}}

	got := f.build([]time.Time{date(2024, 6, 7)}, "Ana", decimal.NewFromInt(10), entity.ObligationKindWeekly, nil, taken)

	require.Len(t, got, 1)
	assert.Equal(t, maxTokenAttempts, tokens.i)
	suffix := strings.TrimPrefix(got[0].ID, "weekly-ana-1-")
	_, err := uuid.Parse(suffix)
	assert.NoError(t, err, "unexpected id %s", got[0].ID)
}

func TestFactory_DoesNotRetainIssuedIDs(t *testing.T) {
	tokens := &sequenceTokens{tokens: []string{"a"}}
	f := NewFactory(clock.NewFixed(fixedNow), WithTokenSource(tokens))
	dates := []time.Time{date(2024, 6, 7)}

	first := f.Build(dates, "Ana", decimal.NewFromInt(10), entity.ObligationKindWeekly, nil)
	second := f.Build(dates, "Ana", decimal.NewFromInt(10), entity.ObligationKindWeekly, nil)

	// Uniqueness across calls comes from the token source alone.
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, 2, tokens.i)
}

func TestFactory_RepeatedBuildsDoNotCollide(t *testing.T) {
	tokens := &sequenceTokens{tokens: []string{"same", "other", "third"}}
	f := NewFactory(clock.NewFixed(fixedNow), WithTokenSource(tokens))
	dates := []time.Time{date(2024, 6, 7)}

	first := f.Build(dates, "Ana", decimal.NewFromInt(10), entity.ObligationKindWeekly, nil)
	second := f.Build(dates, "Ana", decimal.NewFromInt(10), entity.ObligationKindWeekly, nil)

	assert.NotEqual(t, first[0].ID, second[0].ID)
}

func TestFactory_BuildFromPlan(t *testing.T) {
	f := NewFactory(clock.NewFixed(fixedNow))
	plan := entity.PaymentPlan{
		Kind:       entity.ObligationKindMonthly,
		ClientName: "Ana",
		Amount:     decimal.NewFromInt(200),
		StartDate:  date(2024, 1, 15),
		Periods:    3,
		DueDay:     45,
	}

	got := f.BuildFromPlan(plan)

	require.Len(t, got, 3)
	assert.Equal(t, date(2024, 2, 29), got[0].DueDate)
	assert.Equal(t, date(2024, 3, 31), got[1].DueDate)
	assert.Equal(t, date(2024, 4, 30), got[2].DueDate)
}

func TestFactory_BuildFromPlan_UsesMemo(t *testing.T) {
	memo, err := schedule.NewMemo(4, schedule.EvictOldest)
	require.NoError(t, err)
	f := NewFactory(clock.NewFixed(fixedNow), WithSchedule(memo.Generate))
	plan := entity.PaymentPlan{
		Kind:       entity.ObligationKindWeekly,
		ClientName: "Ana",
		Amount:     decimal.NewFromInt(80),
		StartDate:  date(2024, 6, 3),
		Periods:    3,
		DueWeekday: time.Friday,
	}

	first := f.BuildFromPlan(plan)
	second := f.BuildFromPlan(plan)

	require.Len(t, first, 3)
	assert.Equal(t, date(2024, 6, 7), first[0].DueDate)
	assert.Equal(t, first[2].DueDate, second[2].DueDate)
	assert.Equal(t, uint64(1), memo.Stats().Hits)
}

func TestFactory_BuildFromPlan_NoPeriods(t *testing.T) {
	f := NewFactory(clock.NewFixed(fixedNow))
	got := f.BuildFromPlan(entity.PaymentPlan{Kind: entity.ObligationKindWeekly, StartDate: date(2024, 6, 3)})
	assert.Empty(t, got)
}

func TestClockTokenSource_StrictlyIncreasing(t *testing.T) {
	src := NewClockTokenSource(clock.NewFixed(fixedNow))
	prev := src.Next()
	for i := 0; i < 50; i++ {
		next := src.Next()
		assert.NotEqual(t, prev, next)
		assert.True(t, len(next) > len(prev) || next > prev, "%s should follow %s", next, prev)
		prev = next
	}
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "joão-da-silva", slug("joão da silva"))
	assert.Equal(t, "ana", slug("ana!!"))
	assert.Equal(t, "client", slug("  "))
}
