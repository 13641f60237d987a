package dto

import (
	"time"

	"github.com/consultorio/dashboard-backend/internal/application/usecase/obligation"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
	domainobligation "github.com/consultorio/dashboard-backend/internal/domain/obligation"
)

// ObligationResponse represents a single obligation in API responses.
type ObligationResponse struct {
	ID              string           `json:"id"`
	ClientName      string           `json:"client_name"`
	Kind            string           `json:"kind"`
	Amount          Amount           `json:"amount"`
	DueDate         string           `json:"due_date"`
	SequenceIndex   int              `json:"sequence_index"`
	TotalInSequence int              `json:"total_in_sequence"`
	Active          bool             `json:"active"`
	Superseded      bool             `json:"superseded,omitempty"`
	AnalysisID      *string          `json:"analysis_id,omitempty"`
	PaidAt          *time.Time       `json:"paid_at,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	Urgency         *UrgencyResponse `json:"urgency,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// ObligationListResponse represents the response for listing obligations.
type ObligationListResponse struct {
	Today       string               `json:"today"`
	Obligations []ObligationResponse `json:"obligations"`
}

// ToObligationResponse converts a domain Obligation to an ObligationResponse
// DTO. Urgency is attached to active obligations only.
func ToObligationResponse(o *entity.Obligation, urgency *domainobligation.Urgency) ObligationResponse {
	response := ObligationResponse{
		ID:              o.ID,
		ClientName:      o.ClientName,
		Kind:            string(o.Kind),
		Amount:          NewAmount(o.Amount),
		DueDate:         FormatDate(o.DueDate),
		SequenceIndex:   o.SequenceIndex,
		TotalInSequence: o.TotalInSequence,
		Active:          o.Active,
		Superseded:      o.IsSuperseded(),
		PaidAt:          o.PaidAt,
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	if o.AnalysisID != nil {
		id := o.AnalysisID.String()
		response.AnalysisID = &id
	}
	if urgency != nil && o.Active {
		u := ToUrgencyResponse(*urgency)
		response.Urgency = &u
	}
	return response
}

// ToObligationResponses converts obligations, computing urgency with
// urgencyOf when it is non-nil.
func ToObligationResponses(obligations []*entity.Obligation, urgencyOf func(*entity.Obligation) domainobligation.Urgency) []ObligationResponse {
	items := make([]ObligationResponse, len(obligations))
	for i, o := range obligations {
		var urgency *domainobligation.Urgency
		if urgencyOf != nil {
			u := urgencyOf(o)
			urgency = &u
		}
		items[i] = ToObligationResponse(o, urgency)
	}
	return items
}

// ToObligationListResponse converts list output to an ObligationListResponse DTO.
func ToObligationListResponse(output *obligation.ListObligationsOutput) ObligationListResponse {
	items := make([]ObligationResponse, len(output.Items))
	for i, item := range output.Items {
		urgency := item.Urgency
		items[i] = ToObligationResponse(item.Obligation, &urgency)
	}
	return ObligationListResponse{
		Today:       FormatDate(output.Today),
		Obligations: items,
	}
}
