package obligation

import (
	"sort"
	"time"

	"github.com/consultorio/dashboard-backend/internal/domain/entity"
)

// ClientSet is the set of known clients, keyed by normalised name. A nil set
// accepts every client; an empty non-nil set accepts none.
type ClientSet map[string]struct{}

// NewClientSet builds a set from display names.
func NewClientSet(names ...string) ClientSet {
	s := make(ClientSet, len(names))
	for _, n := range names {
		s[entity.NormalizeClientName(n)] = struct{}{}
	}
	return s
}

// Contains reports whether name belongs to a known client.
func (s ClientSet) Contains(name string) bool {
	if s == nil {
		return true
	}
	_, ok := s[entity.NormalizeClientName(name)]
	return ok
}

// DueItem pairs an obligation with its urgency.
type DueItem struct {
	Obligation *entity.Obligation
	Urgency    Urgency
}

// ClientDues is one client's outstanding obligations: the most urgent one and
// the rest in due-date order.
type ClientDues struct {
	ClientName string
	MostUrgent DueItem
	Additional []DueItem
	TotalCount int
}

// GroupByClient groups active obligations of known clients by normalised
// client name. Groups are ordered by their most urgent due date, then name.
func GroupByClient(obligations []*entity.Obligation, known ClientSet, today time.Time) []ClientDues {
	type bucket struct {
		display string
		items   []*entity.Obligation
	}

	buckets := make(map[string]*bucket)
	for _, o := range obligations {
		if o == nil || !o.Active || !known.Contains(o.ClientName) {
			continue
		}
		key := entity.NormalizeClientName(o.ClientName)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		// Display casing follows the last record seen.
		b.display = o.ClientName
		b.items = append(b.items, o)
	}

	groups := make([]ClientDues, 0, len(buckets))
	for _, b := range buckets {
		sort.SliceStable(b.items, func(i, j int) bool {
			return moreUrgent(b.items[i], b.items[j])
		})

		g := ClientDues{
			ClientName: b.display,
			MostUrgent: dueItem(b.items[0], today),
			Additional: make([]DueItem, 0, len(b.items)-1),
			TotalCount: len(b.items),
		}
		for _, o := range b.items[1:] {
			g.Additional = append(g.Additional, dueItem(o, today))
		}
		groups = append(groups, g)
	}

	sort.Slice(groups, func(i, j int) bool {
		a, b := groups[i].MostUrgent.Obligation, groups[j].MostUrgent.Obligation
		if !a.DueDate.Equal(b.DueDate) {
			return a.DueDate.Before(b.DueDate)
		}
		return entity.NormalizeClientName(groups[i].ClientName) < entity.NormalizeClientName(groups[j].ClientName)
	})
	return groups
}

// moreUrgent orders by due date, then sequence index, then monthly before
// weekly.
func moreUrgent(a, b *entity.Obligation) bool {
	if !a.DueDate.Equal(b.DueDate) {
		return a.DueDate.Before(b.DueDate)
	}
	if a.SequenceIndex != b.SequenceIndex {
		return a.SequenceIndex < b.SequenceIndex
	}
	return a.Kind.Rank() < b.Kind.Rank()
}

func dueItem(o *entity.Obligation, today time.Time) DueItem {
	return DueItem{Obligation: o, Urgency: UrgencyOf(o, today)}
}

// WithinDays keeps only groups whose most urgent obligation is due within
// horizon days of today. Overdue groups are always kept. A non-positive
// horizon keeps everything.
func WithinDays(groups []ClientDues, horizon int) []ClientDues {
	if horizon <= 0 {
		return groups
	}
	out := make([]ClientDues, 0, len(groups))
	for _, g := range groups {
		if g.MostUrgent.Urgency.Days <= horizon {
			out = append(out, g)
		}
	}
	return out
}
