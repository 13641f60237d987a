package dto

import (
	"time"

	"github.com/consultorio/dashboard-backend/internal/domain/entity"
	domainobligation "github.com/consultorio/dashboard-backend/internal/domain/obligation"
)

// CreateAnalysisRequest represents the request body for analysis creation.
type CreateAnalysisRequest struct {
	ClientName  string       `json:"client_name" binding:"required,max=200"`
	ServiceType string       `json:"service_type" binding:"required"`
	SessionDate string       `json:"session_date" binding:"required"`
	Notes       string       `json:"notes,omitempty"`
	Plan        *PlanRequest `json:"plan,omitempty"`
}

// UpdateAnalysisRequest represents the request body for analysis update.
// Sending a plan replaces the current one; remove_plan drops it.
type UpdateAnalysisRequest struct {
	ClientName  *string      `json:"client_name,omitempty" binding:"omitempty,max=200"`
	ServiceType *string      `json:"service_type,omitempty"`
	SessionDate *string      `json:"session_date,omitempty"`
	Notes       *string      `json:"notes,omitempty"`
	Plan        *PlanRequest `json:"plan,omitempty"`
	RemovePlan  bool         `json:"remove_plan,omitempty"`
}

// AnalysisResponse represents a single analysis in API responses.
type AnalysisResponse struct {
	ID          string               `json:"id"`
	ClientName  string               `json:"client_name"`
	ServiceType string               `json:"service_type"`
	SessionDate string               `json:"session_date"`
	Notes       string               `json:"notes,omitempty"`
	Plan        *PlanResponse        `json:"plan,omitempty"`
	Obligations []ObligationResponse `json:"obligations,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// AnalysisListResponse represents the response for listing analyses.
type AnalysisListResponse struct {
	Analyses []AnalysisResponse `json:"analyses"`
}

// UpdateAnalysisResponse represents the response for analysis update.
type UpdateAnalysisResponse struct {
	Analysis    AnalysisResponse     `json:"analysis"`
	Resynced    bool                 `json:"resynced"`
	Created     []ObligationResponse `json:"created"`
	Deactivated []string             `json:"deactivated"`
	Deleted     []string             `json:"deleted"`
}

// DeleteAnalysisResponse represents the response for analysis deletion.
type DeleteAnalysisResponse struct {
	Deleted []string `json:"deleted"`
}

// ToAnalysisResponse converts a domain Analysis entity to an AnalysisResponse DTO.
func ToAnalysisResponse(a *entity.Analysis) AnalysisResponse {
	response := AnalysisResponse{
		ID:          a.ID.String(),
		ClientName:  a.ClientName,
		ServiceType: string(a.ServiceType),
		SessionDate: FormatDate(a.SessionDate),
		Notes:       a.Notes,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	if a.HasPlan() {
		plan := ToPlanResponse(*a.Plan)
		response.Plan = &plan
	}
	return response
}

// ToAnalysisWithObligations attaches the analysis' obligations.
func ToAnalysisWithObligations(a *entity.Analysis, obligations []*entity.Obligation, urgencyOf func(*entity.Obligation) domainobligation.Urgency) AnalysisResponse {
	response := ToAnalysisResponse(a)
	response.Obligations = ToObligationResponses(obligations, urgencyOf)
	return response
}

// ToAnalysisListResponse converts a slice of analyses to an AnalysisListResponse DTO.
func ToAnalysisListResponse(analyses []*entity.Analysis) AnalysisListResponse {
	items := make([]AnalysisResponse, len(analyses))
	for i, a := range analyses {
		items[i] = ToAnalysisResponse(a)
	}
	return AnalysisListResponse{Analyses: items}
}

func emptyIfNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

// ToUpdateAnalysisResponse builds the update response.
func ToUpdateAnalysisResponse(a *entity.Analysis, resynced bool, created []*entity.Obligation, deactivated, deleted []string, urgencyOf func(*entity.Obligation) domainobligation.Urgency) UpdateAnalysisResponse {
	return UpdateAnalysisResponse{
		Analysis:    ToAnalysisResponse(a),
		Resynced:    resynced,
		Created:     ToObligationResponses(created, urgencyOf),
		Deactivated: emptyIfNil(deactivated),
		Deleted:     emptyIfNil(deleted),
	}
}
