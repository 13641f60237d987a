// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// PlanLock is a held lock on one payment plan.
type PlanLock interface {
	// Release frees the lock. Releasing an expired lock is not an error.
	Release(ctx context.Context) error
}

// PlanLocker serialises read-modify-write sequences on a plan.
type PlanLocker interface {
	// TryLock acquires the lock for key without waiting. ok is false when
	// another holder has it.
	TryLock(ctx context.Context, key string) (lock PlanLock, ok bool, err error)
}

// ReminderLedger remembers which reminders were already queued.
type ReminderLedger interface {
	// MarkSent records a reminder for obligationID on day. It returns false
	// when one was already recorded for that day.
	MarkSent(ctx context.Context, obligationID string, day time.Time) (bool, error)
}

// Metrics records operational counters.
type Metrics interface {
	ObligationsCreated(kind string, n int)
	ObligationsDeactivated(n int)
	ObligationsSettled(n int)
	ResyncFinished(outcome string)
	RemindersQueued(template string, n int)
}
