package dto

import (
	"github.com/consultorio/dashboard-backend/internal/application/usecase/plan"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
	"github.com/consultorio/dashboard-backend/internal/domain/obligation"
)

// PlanRequest carries payment plan parameters.
type PlanRequest struct {
	Kind       string `json:"kind" binding:"required"`
	ClientName string `json:"client_name,omitempty"`
	Amount     Amount `json:"amount"`
	StartDate  string `json:"start_date"`
	Periods    int    `json:"periods"`
	DueWeekday int    `json:"due_weekday,omitempty"`
	DueDay     int    `json:"due_day,omitempty"`
}

// ToPlanInput converts the request to use case input. An empty start date is
// left zero for the use case to reject.
func (r PlanRequest) ToPlanInput() (plan.PlanInput, error) {
	input := plan.PlanInput{
		Kind:       r.Kind,
		ClientName: r.ClientName,
		Amount:     r.Amount.Decimal,
		Periods:    r.Periods,
		DueWeekday: r.DueWeekday,
		DueDay:     r.DueDay,
	}
	if r.StartDate != "" {
		start, err := ParseDate(r.StartDate)
		if err != nil {
			return plan.PlanInput{}, err
		}
		input.StartDate = start
	}
	return input, nil
}

// ActivatePlanRequest represents the request body for standalone activation.
type ActivatePlanRequest struct {
	PlanRequest
	AnalysisID *string `json:"analysis_id,omitempty" binding:"omitempty,uuid"`
}

// PlanResponse represents a payment plan in API responses.
type PlanResponse struct {
	Kind       string  `json:"kind"`
	ClientName string  `json:"client_name"`
	Amount     Amount  `json:"amount"`
	StartDate  string  `json:"start_date"`
	Periods    int     `json:"periods"`
	DueWeekday int     `json:"due_weekday"`
	DueDay     int     `json:"due_day"`
	AnalysisID *string `json:"analysis_id,omitempty"`
}

// UrgencyResponse represents an urgency classification.
type UrgencyResponse struct {
	Level string `json:"level"`
	Days  int    `json:"days"`
	Text  string `json:"text"`
}

// PreviewItemResponse is one due date of a previewed plan.
type PreviewItemResponse struct {
	SequenceIndex int             `json:"sequence_index"`
	DueDate       string          `json:"due_date"`
	Amount        Amount          `json:"amount"`
	Urgency       UrgencyResponse `json:"urgency"`
}

// PreviewPlanResponse represents the response for plan preview.
type PreviewPlanResponse struct {
	Plan  PlanResponse          `json:"plan"`
	Items []PreviewItemResponse `json:"items"`
	Total Amount                `json:"total"`
}

// ActivatePlanResponse represents the response for plan activation and resync.
type ActivatePlanResponse struct {
	Plan        *PlanResponse        `json:"plan,omitempty"`
	Obligations []ObligationResponse `json:"obligations"`
	Deactivated []string             `json:"deactivated"`
}

// ToPlanResponse converts a PaymentPlan to a PlanResponse DTO.
func ToPlanResponse(p entity.PaymentPlan) PlanResponse {
	response := PlanResponse{
		Kind:       string(p.Kind),
		ClientName: p.ClientName,
		Amount:     NewAmount(p.Amount),
		StartDate:  FormatDate(p.StartDate),
		Periods:    p.Periods,
		DueWeekday: int(p.DueWeekday),
		DueDay:     p.DueDay,
	}
	if p.AnalysisID != nil {
		id := p.AnalysisID.String()
		response.AnalysisID = &id
	}
	return response
}

// ToUrgencyResponse converts an Urgency to an UrgencyResponse DTO.
func ToUrgencyResponse(u obligation.Urgency) UrgencyResponse {
	return UrgencyResponse{
		Level: string(u.Level),
		Days:  u.Days,
		Text:  u.Text,
	}
}

// ToPreviewPlanResponse converts preview output to a PreviewPlanResponse DTO.
func ToPreviewPlanResponse(output *plan.PreviewPlanOutput) PreviewPlanResponse {
	items := make([]PreviewItemResponse, len(output.Items))
	for i, item := range output.Items {
		items[i] = PreviewItemResponse{
			SequenceIndex: item.SequenceIndex,
			DueDate:       FormatDate(item.DueDate),
			Amount:        NewAmount(item.Amount),
			Urgency:       ToUrgencyResponse(item.Urgency),
		}
	}
	return PreviewPlanResponse{
		Plan:  ToPlanResponse(output.Plan),
		Items: items,
		Total: NewAmount(output.Total),
	}
}

// ToActivatePlanResponse builds the activation response.
func ToActivatePlanResponse(p *entity.PaymentPlan, created []*entity.Obligation, deactivated []string, urgencyOf func(*entity.Obligation) obligation.Urgency) ActivatePlanResponse {
	response := ActivatePlanResponse{
		Obligations: ToObligationResponses(created, urgencyOf),
		Deactivated: deactivated,
	}
	if response.Deactivated == nil {
		response.Deactivated = []string{}
	}
	if p != nil {
		pr := ToPlanResponse(*p)
		response.Plan = &pr
	}
	return response
}
