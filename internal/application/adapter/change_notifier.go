// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ChangeType names what happened to a set of obligations.
type ChangeType string

const (
	ChangeCreated  ChangeType = "created"
	ChangeResynced ChangeType = "resynced"
	ChangePaid     ChangeType = "paid"
	ChangeReopened ChangeType = "reopened"
	ChangeDeleted  ChangeType = "deleted"
)

// ChangeEvent is broadcast after a committed obligation change.
type ChangeEvent struct {
	Type        ChangeType `json:"type"`
	ClientName  string     `json:"client_name,omitempty"`
	AnalysisID  *uuid.UUID `json:"analysis_id,omitempty"`
	Created     []string   `json:"created,omitempty"`
	Deactivated []string   `json:"deactivated,omitempty"`
	Updated     []string   `json:"updated,omitempty"`
	Deleted     []string   `json:"deleted,omitempty"`
	OccurredAt  time.Time  `json:"occurred_at"`
}

// ChangeNotifier broadcasts obligation changes. Delivery is fire-and-forget:
// implementations log failures and never report them to the caller.
type ChangeNotifier interface {
	Notify(ctx context.Context, event ChangeEvent)
}
