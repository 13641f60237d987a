// Package usecasetest provides in-memory collaborators for use case tests.
package usecasetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
	"github.com/consultorio/dashboard-backend/internal/domain/calendar"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
	domainerror "github.com/consultorio/dashboard-backend/internal/domain/error"
	"github.com/consultorio/dashboard-backend/internal/domain/obligation"
)

// ObligationRepository is an in-memory adapter.ObligationRepository.
type ObligationRepository struct {
	mu    sync.Mutex
	items map[string]*entity.Obligation
	// Err, when set, is returned by every call.
	Err error
}

// NewObligationRepository creates an empty repository.
func NewObligationRepository() *ObligationRepository {
	return &ObligationRepository{items: make(map[string]*entity.Obligation)}
}

func (r *ObligationRepository) LoadByScope(_ context.Context, scope adapter.ObligationScope) ([]*entity.Obligation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}

	out := []*entity.Obligation{}
	for _, o := range r.items {
		if scope.ClientName != "" && entity.NormalizeClientName(o.ClientName) != entity.NormalizeClientName(scope.ClientName) {
			continue
		}
		if scope.AnalysisID != nil && (o.AnalysisID == nil || *o.AnalysisID != *scope.AnalysisID) {
			continue
		}
		if scope.Kind != "" && o.Kind != scope.Kind {
			continue
		}
		if scope.Active != nil && o.Active != *scope.Active {
			continue
		}
		if scope.DueFrom != nil && calendar.DaysBetween(*scope.DueFrom, o.DueDate) < 0 {
			continue
		}
		if scope.DueTo != nil && calendar.DaysBetween(o.DueDate, *scope.DueTo) < 0 {
			continue
		}
		out = append(out, o.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		return out[i].SequenceIndex < out[j].SequenceIndex
	})
	return out, nil
}

func (r *ObligationRepository) SaveAll(_ context.Context, obligations []*entity.Obligation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, o := range obligations {
		r.items[o.ID] = o.Clone()
	}
	return nil
}

func (r *ObligationRepository) ApplyResync(_ context.Context, result obligation.ResyncResult, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, id := range result.ToDeactivate {
		if o, ok := r.items[id]; ok {
			o.Active = false
			o.UpdatedAt = now
		}
	}
	for _, o := range result.ToCreate {
		r.items[o.ID] = o.Clone()
	}
	return nil
}

func (r *ObligationRepository) FindByID(_ context.Context, id string) (*entity.Obligation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	o, ok := r.items[id]
	if !ok {
		return nil, domainerror.ErrObligationNotFound
	}
	return o.Clone(), nil
}

func (r *ObligationRepository) Update(_ context.Context, o *entity.Obligation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.items[o.ID]; !ok {
		return domainerror.ErrObligationNotFound
	}
	r.items[o.ID] = o.Clone()
	return nil
}

func (r *ObligationRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.items[id]; !ok {
		return domainerror.ErrObligationNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *ObligationRepository) DeleteActiveByAnalysis(_ context.Context, analysisID uuid.UUID) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	deleted := []string{}
	for id, o := range r.items {
		if o.Active && o.AnalysisID != nil && *o.AnalysisID == analysisID {
			deleted = append(deleted, id)
			delete(r.items, id)
		}
	}
	sort.Strings(deleted)
	return deleted, nil
}

// All returns every stored obligation ordered by due date.
func (r *ObligationRepository) All() []*entity.Obligation {
	out, _ := r.LoadByScope(context.Background(), adapter.ObligationScope{})
	return out
}

// ClientRepository is an in-memory adapter.ClientRepository.
type ClientRepository struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.Client
}

// NewClientRepository creates a repository holding clients.
func NewClientRepository(clients ...*entity.Client) *ClientRepository {
	r := &ClientRepository{items: make(map[uuid.UUID]*entity.Client)}
	for _, c := range clients {
		r.items[c.ID] = c
	}
	return r
}

func (r *ClientRepository) Create(_ context.Context, c *entity.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *c
	r.items[c.ID] = &copied
	return nil
}

func (r *ClientRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return nil, domainerror.ErrClientNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *ClientRepository) FindByName(_ context.Context, name string) (*entity.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := entity.NormalizeClientName(name)
	for _, c := range r.items {
		if c.NormalizedName() == key {
			copied := *c
			return &copied, nil
		}
	}
	return nil, domainerror.ErrClientNotFound
}

func (r *ClientRepository) List(_ context.Context) ([]*entity.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Client, 0, len(r.items))
	for _, c := range r.items {
		copied := *c
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NormalizedName() < out[j].NormalizedName() })
	return out, nil
}

func (r *ClientRepository) ListNames(ctx context.Context) ([]string, error) {
	clients, _ := r.List(ctx)
	names := make([]string, len(clients))
	for i, c := range clients {
		names[i] = c.Name
	}
	return names, nil
}

func (r *ClientRepository) Update(_ context.Context, c *entity.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[c.ID]; !ok {
		return domainerror.ErrClientNotFound
	}
	copied := *c
	r.items[c.ID] = &copied
	return nil
}

func (r *ClientRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domainerror.ErrClientNotFound
	}
	delete(r.items, id)
	return nil
}

// AnalysisRepository is an in-memory adapter.AnalysisRepository.
type AnalysisRepository struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.Analysis
}

// NewAnalysisRepository creates an empty repository.
func NewAnalysisRepository() *AnalysisRepository {
	return &AnalysisRepository{items: make(map[uuid.UUID]*entity.Analysis)}
}

func cloneAnalysis(a *entity.Analysis) *entity.Analysis {
	copied := *a
	if a.Plan != nil {
		p := *a.Plan
		copied.Plan = &p
	}
	return &copied
}

func (r *AnalysisRepository) Create(_ context.Context, a *entity.Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[a.ID] = cloneAnalysis(a)
	return nil
}

func (r *AnalysisRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Analysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return nil, domainerror.ErrAnalysisNotFound
	}
	return cloneAnalysis(a), nil
}

func (r *AnalysisRepository) List(_ context.Context, filter adapter.AnalysisFilter) ([]*entity.Analysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Analysis{}
	for _, a := range r.items {
		if filter.ClientName != "" && entity.NormalizeClientName(a.ClientName) != entity.NormalizeClientName(filter.ClientName) {
			continue
		}
		if filter.ServiceType != "" && a.ServiceType != filter.ServiceType {
			continue
		}
		out = append(out, cloneAnalysis(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SessionDate.After(out[j].SessionDate) })
	return out, nil
}

func (r *AnalysisRepository) Update(_ context.Context, a *entity.Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[a.ID]; !ok {
		return domainerror.ErrAnalysisNotFound
	}
	r.items[a.ID] = cloneAnalysis(a)
	return nil
}

func (r *AnalysisRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domainerror.ErrAnalysisNotFound
	}
	delete(r.items, id)
	return nil
}

// AppointmentRepository is an in-memory adapter.AppointmentRepository.
type AppointmentRepository struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.Appointment
}

// NewAppointmentRepository creates a repository holding appointments.
func NewAppointmentRepository(appointments ...*entity.Appointment) *AppointmentRepository {
	r := &AppointmentRepository{items: make(map[uuid.UUID]*entity.Appointment)}
	for _, a := range appointments {
		r.items[a.ID] = a
	}
	return r
}

func (r *AppointmentRepository) Create(_ context.Context, a *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *a
	r.items[a.ID] = &copied
	return nil
}

func (r *AppointmentRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return nil, domainerror.ErrAppointmentNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *AppointmentRepository) List(_ context.Context, filter adapter.AppointmentFilter) ([]*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Appointment{}
	for _, a := range r.items {
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.ClientName != "" && entity.NormalizeClientName(a.ClientName) != entity.NormalizeClientName(filter.ClientName) {
			continue
		}
		if filter.From != nil && a.ScheduledAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && a.ScheduledAt.After(*filter.To) {
			continue
		}
		copied := *a
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })
	return out, nil
}

func (r *AppointmentRepository) Update(_ context.Context, a *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[a.ID]; !ok {
		return domainerror.ErrAppointmentNotFound
	}
	copied := *a
	r.items[a.ID] = &copied
	return nil
}

// Notifier records every event.
type Notifier struct {
	mu     sync.Mutex
	Events []adapter.ChangeEvent
}

func (n *Notifier) Notify(_ context.Context, event adapter.ChangeEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Events = append(n.Events, event)
}

// Last returns the most recent event.
func (n *Notifier) Last() adapter.ChangeEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.Events) == 0 {
		return adapter.ChangeEvent{}
	}
	return n.Events[len(n.Events)-1]
}

// Locker hands out one lock per key. Held keys report ok=false.
type Locker struct {
	mu   sync.Mutex
	held map[string]bool
}

// NewLocker creates an empty locker.
func NewLocker() *Locker {
	return &Locker{held: make(map[string]bool)}
}

func (l *Locker) TryLock(_ context.Context, key string) (adapter.PlanLock, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] {
		return nil, false, nil
	}
	l.held[key] = true
	return lockFunc(func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, key)
	}), true, nil
}

// Hold takes key without returning a handle, simulating another holder.
func (l *Locker) Hold(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.held[key] = true
}

// Free drops a lock taken with Hold.
func (l *Locker) Free(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, key)
}

// Held reports whether key is currently locked.
func (l *Locker) Held(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.held[key]
}

type lockFunc func()

func (f lockFunc) Release(context.Context) error {
	f()
	return nil
}

// Ledger is an in-memory adapter.ReminderLedger.
type Ledger struct {
	mu   sync.Mutex
	seen map[string]bool
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{seen: make(map[string]bool)}
}

func (l *Ledger) MarkSent(_ context.Context, obligationID string, day time.Time) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := obligationID + "@" + day.Format("2006-01-02")
	if l.seen[key] {
		return false, nil
	}
	l.seen[key] = true
	return true, nil
}

// EmailService records queued reminders.
type EmailService struct {
	mu        sync.Mutex
	Reminders []adapter.QueuePaymentReminderInput
	Err       error
}

func (s *EmailService) QueuePaymentReminderEmail(_ context.Context, input adapter.QueuePaymentReminderInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Reminders = append(s.Reminders, input)
	return nil
}

// Metrics counts recorded values by name.
type Metrics struct {
	mu     sync.Mutex
	Counts map[string]int
}

// NewMetrics creates an empty recorder.
func NewMetrics() *Metrics {
	return &Metrics{Counts: make(map[string]int)}
}

func (m *Metrics) add(name string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Counts[name] += n
}

// Get returns the count recorded under name.
func (m *Metrics) Get(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Counts[name]
}

func (m *Metrics) ObligationsCreated(kind string, n int) { m.add("created_"+kind, n) }
func (m *Metrics) ObligationsDeactivated(n int) { m.add("deactivated", n) }
func (m *Metrics) ObligationsSettled(n int) { m.add("settled", n) }
func (m *Metrics) ResyncFinished(outcome string) { m.add("resync_"+outcome, 1) }
func (m *Metrics) RemindersQueued(template string, n int) { m.add("reminder_"+template, n) }

var (
	_ adapter.ObligationRepository  = (*ObligationRepository)(nil)
	_ adapter.ClientRepository      = (*ClientRepository)(nil)
	_ adapter.AnalysisRepository    = (*AnalysisRepository)(nil)
	_ adapter.AppointmentRepository = (*AppointmentRepository)(nil)
	_ adapter.ChangeNotifier        = (*Notifier)(nil)
	_ adapter.PlanLocker            = (*Locker)(nil)
	_ adapter.ReminderLedger        = (*Ledger)(nil)
	_ adapter.EmailService          = (*EmailService)(nil)
	_ adapter.Metrics               = (*Metrics)(nil)
)
