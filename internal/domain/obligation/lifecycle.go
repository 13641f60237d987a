package obligation

import (
	"time"

	"github.com/google/uuid"

	"github.com/consultorio/dashboard-backend/internal/domain/entity"
)

// ResyncResult is the transition that replaces a plan's active obligations.
type ResyncResult struct {
	ToDeactivate []string
	ToCreate     []*entity.Obligation
}

// IsEmpty reports whether applying the result changes nothing.
func (r ResyncResult) IsEmpty() bool {
	return len(r.ToDeactivate) == 0 && len(r.ToCreate) == 0
}

// Resync deactivates every active obligation of analysisID with the plan's
// kind and builds a fresh schedule from plan. New IDs never repeat an existing
// one. With no history, nothing is deactivated.
func Resync(existing []*entity.Obligation, analysisID uuid.UUID, plan entity.PaymentPlan, factory *Factory) ResyncResult {
	result := ResyncResult{ToDeactivate: []string{}}

	taken := make(map[string]struct{}, len(existing))
	for _, o := range existing {
		if o == nil {
			continue
		}
		taken[o.ID] = struct{}{}
		if o.Active && o.BelongsTo(analysisID, plan.Kind) {
			result.ToDeactivate = append(result.ToDeactivate, o.ID)
		}
	}
	result.ToCreate = factory.buildFromPlan(plan.WithAnalysis(analysisID), taken)
	return result
}

// MarkPaid settles one obligation. Siblings are untouched. Settling an
// already settled obligation keeps its original PaidAt.
func MarkPaid(o *entity.Obligation, now time.Time) {
	if !o.Active {
		return
	}
	paid := now
	o.Active = false
	o.PaidAt = &paid
	o.UpdatedAt = now
}

// Reopen makes a settled obligation outstanding again.
func Reopen(o *entity.Obligation, now time.Time) {
	if o.Active {
		return
	}
	o.Active = true
	o.PaidAt = nil
	o.UpdatedAt = now
}
