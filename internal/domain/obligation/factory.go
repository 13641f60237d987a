// Package obligation turns payment plans into obligation records and holds
// the pure rules that classify, group, aggregate and resync them.
package obligation

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/consultorio/dashboard-backend/internal/domain/calendar"
	"github.com/consultorio/dashboard-backend/internal/domain/clock"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
	"github.com/consultorio/dashboard-backend/internal/domain/schedule"
)

// TokenSource yields the distinguishing suffix of obligation IDs.
type TokenSource interface {
	Next() string
}

// ClockTokenSource issues base-36 wall-clock milliseconds, bumped by one when
// the clock has not advanced, so tokens strictly increase within a process.
type ClockTokenSource struct {
	clock clock.Clock
	last  atomic.Int64
}

// NewClockTokenSource creates a token source driven by c.
func NewClockTokenSource(c clock.Clock) *ClockTokenSource {
	return &ClockTokenSource{clock: c}
}

// Next returns the next token.
func (s *ClockTokenSource) Next() string {
	for {
		last := s.last.Load()
		next := s.clock.Now().UnixMilli()
		if next <= last {
			next = last + 1
		}
		if s.last.CompareAndSwap(last, next) {
			return strconv.FormatInt(next, 36)
		}
	}
}

// ScheduleFunc produces due dates for a plan.
type ScheduleFunc func(schedule.Params) []time.Time

// maxTokenAttempts bounds how many tokens issueID draws before it falls back
// to a random suffix.
const maxTokenAttempts = 8

// Factory builds obligation records. It is safe for concurrent use.
type Factory struct {
	clock    clock.Clock
	tokens   TokenSource
	schedule ScheduleFunc

	mu sync.Mutex // serialises token draws
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithTokenSource overrides the default clock-based token source.
func WithTokenSource(tokens TokenSource) FactoryOption {
	return func(f *Factory) { f.tokens = tokens }
}

// WithSchedule overrides how BuildFromPlan computes due dates, e.g. with a
// schedule.Memo.
func WithSchedule(fn ScheduleFunc) FactoryOption {
	return func(f *Factory) { f.schedule = fn }
}

// NewFactory creates a factory stamping CreatedAt from c.
func NewFactory(c clock.Clock, opts ...FactoryOption) *Factory {
	f := &Factory{
		clock:    c,
		schedule: schedule.Generate,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.tokens == nil {
		f.tokens = NewClockTokenSource(c)
	}
	return f
}

// Build creates one active obligation per date, in order. Negative amounts
// are floored at zero.
func (f *Factory) Build(dates []time.Time, clientName string, amount decimal.Decimal, kind entity.ObligationKind, analysisID *uuid.UUID) []*entity.Obligation {
	return f.build(dates, clientName, amount, kind, analysisID, nil)
}

// build issues IDs outside taken and adds each issued ID to it.
func (f *Factory) build(dates []time.Time, clientName string, amount decimal.Decimal, kind entity.ObligationKind, analysisID *uuid.UUID, taken map[string]struct{}) []*entity.Obligation {
	if taken == nil {
		taken = make(map[string]struct{}, len(dates))
	}
	if amount.IsNegative() {
		amount = decimal.Zero
	}

	now := f.clock.Now()
	scope := idScope(clientName, analysisID)
	obligations := make([]*entity.Obligation, 0, len(dates))

	f.mu.Lock()
	defer f.mu.Unlock()

	for i, due := range dates {
		index := i + 1
		o := &entity.Obligation{
			ID:              f.issueID(kind, scope, index, taken),
			ClientName:      clientName,
			Kind:            kind,
			Amount:          amount,
			DueDate:         calendar.DateOnly(due),
			SequenceIndex:   index,
			TotalInSequence: len(dates),
			Active:          true,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if analysisID != nil {
			id := *analysisID
			o.AnalysisID = &id
		}
		obligations = append(obligations, o)
	}
	return obligations
}

// BuildFromPlan generates the plan's schedule and builds its obligations.
// The due day is clamped to [1,31] before generation.
func (f *Factory) BuildFromPlan(plan entity.PaymentPlan) []*entity.Obligation {
	return f.buildFromPlan(plan, nil)
}

func (f *Factory) buildFromPlan(plan entity.PaymentPlan, taken map[string]struct{}) []*entity.Obligation {
	params := schedule.ParamsFromPlan(plan)
	params.DueDay = calendar.ClampDueDay(params.DueDay)
	params.Weekday = calendar.WeekdayFromInt(int(params.Weekday))

	dates := f.schedule(params)
	return f.build(dates, plan.ClientName, plan.Amount, plan.Kind, plan.AnalysisID, taken)
}

// issueID must be called with f.mu held.
func (f *Factory) issueID(kind entity.ObligationKind, scope string, index int, taken map[string]struct{}) string {
	prefix := fmt.Sprintf("%s-%s-%d-", kind, scope, index)
	for attempt := 0; attempt < maxTokenAttempts; attempt++ {
		id := prefix + f.tokens.Next()
		if _, dup := taken[id]; !dup {
			taken[id] = struct{}{}
			return id
		}
	}
	id := prefix + uuid.NewString()
	taken[id] = struct{}{}
	return id
}

func idScope(clientName string, analysisID *uuid.UUID) string {
	if analysisID != nil {
		return analysisID.String()
	}
	return slug(entity.NormalizeClientName(clientName))
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "client"
	}
	return out
}
