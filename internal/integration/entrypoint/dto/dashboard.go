package dto

import (
	"github.com/consultorio/dashboard-backend/internal/application/usecase/dashboard"
	"github.com/consultorio/dashboard-backend/internal/application/usecase/reminder"
	"github.com/consultorio/dashboard-backend/internal/domain/obligation"
)

// DueItemResponse is one obligation inside a client group.
type DueItemResponse struct {
	ObligationID    string          `json:"obligation_id"`
	Kind            string          `json:"kind"`
	Amount          Amount          `json:"amount"`
	DueDate         string          `json:"due_date"`
	SequenceIndex   int             `json:"sequence_index"`
	TotalInSequence int             `json:"total_in_sequence"`
	Urgency         UrgencyResponse `json:"urgency"`
}

// ClientDuesResponse groups a client's outstanding obligations.
type ClientDuesResponse struct {
	ClientName string            `json:"client_name"`
	MostUrgent DueItemResponse   `json:"most_urgent"`
	Additional []DueItemResponse `json:"additional"`
	TotalCount int               `json:"total_count"`
}

// UpcomingDuesResponse represents the response for the upcoming dues panel.
type UpcomingDuesResponse struct {
	Today      string               `json:"today"`
	WithinDays int                  `json:"within_days"`
	Groups     []ClientDuesResponse `json:"groups"`
}

// AggregateResponse is one period's count and sums.
type AggregateResponse struct {
	Count          int     `json:"count"`
	PaidCount      int     `json:"paid_count"`
	SumPaid        Amount  `json:"sum_paid"`
	SumOutstanding Amount  `json:"sum_outstanding"`
	Start          *string `json:"start,omitempty"`
	End            *string `json:"end,omitempty"`
}

// PeriodSummaryResponse splits a period by record source.
type PeriodSummaryResponse struct {
	Period       string            `json:"period"`
	Total        AggregateResponse `json:"total"`
	Obligations  AggregateResponse `json:"obligations"`
	Appointments AggregateResponse `json:"appointments"`
}

// SummaryResponse represents the response for the revenue summary.
type SummaryResponse struct {
	ReferenceDate string                  `json:"reference_date"`
	Periods       []PeriodSummaryResponse `json:"periods"`
}

// TrendPointResponse is one bucket of the trend series.
type TrendPointResponse struct {
	PeriodLabel  string            `json:"period_label"`
	Start        string            `json:"start"`
	End          string            `json:"end"`
	Total        AggregateResponse `json:"total"`
	Obligations  AggregateResponse `json:"obligations"`
	Appointments AggregateResponse `json:"appointments"`
}

// TrendsResponse represents the response for the revenue trends chart.
type TrendsResponse struct {
	StartDate   string               `json:"start_date"`
	EndDate     string               `json:"end_date"`
	Granularity string               `json:"granularity"`
	Trends      []TrendPointResponse `json:"trends"`
}

// ReminderRunResponse reports a reminder sweep.
type ReminderRunResponse struct {
	Queued           int `json:"queued"`
	SkippedNoEmail   int `json:"skipped_no_email"`
	SkippedDuplicate int `json:"skipped_duplicate"`
	Failed           int `json:"failed"`
}

func toDueItemResponse(item obligation.DueItem) DueItemResponse {
	o := item.Obligation
	return DueItemResponse{
		ObligationID:    o.ID,
		Kind:            string(o.Kind),
		Amount:          NewAmount(o.Amount),
		DueDate:         FormatDate(o.DueDate),
		SequenceIndex:   o.SequenceIndex,
		TotalInSequence: o.TotalInSequence,
		Urgency:         ToUrgencyResponse(item.Urgency),
	}
}

// ToUpcomingDuesResponse converts grouped dues to an UpcomingDuesResponse DTO.
func ToUpcomingDuesResponse(output *dashboard.GetUpcomingDuesOutput) UpcomingDuesResponse {
	groups := make([]ClientDuesResponse, len(output.Groups))
	for i, g := range output.Groups {
		additional := make([]DueItemResponse, len(g.Additional))
		for j, item := range g.Additional {
			additional[j] = toDueItemResponse(item)
		}
		groups[i] = ClientDuesResponse{
			ClientName: g.ClientName,
			MostUrgent: toDueItemResponse(g.MostUrgent),
			Additional: additional,
			TotalCount: g.TotalCount,
		}
	}
	return UpcomingDuesResponse{
		Today:      FormatDate(output.Today),
		WithinDays: output.WithinDays,
		Groups:     groups,
	}
}

func toAggregateResponse(a obligation.Aggregate) AggregateResponse {
	response := AggregateResponse{
		Count:          a.Count,
		PaidCount:      a.PaidCount,
		SumPaid:        NewAmount(a.SumPaid),
		SumOutstanding: NewAmount(a.SumOutstanding),
	}
	if !a.Range.Unbounded {
		response.Start = formatOptionalDate(&a.Range.Start)
		response.End = formatOptionalDate(&a.Range.End)
	}
	return response
}

// ToSummaryResponse converts summary output to a SummaryResponse DTO.
func ToSummaryResponse(output *dashboard.GetSummaryOutput) SummaryResponse {
	periods := make([]PeriodSummaryResponse, len(output.Periods))
	for i, p := range output.Periods {
		periods[i] = PeriodSummaryResponse{
			Period:       string(p.Total.Period),
			Total:        toAggregateResponse(p.Total),
			Obligations:  toAggregateResponse(p.Obligations),
			Appointments: toAggregateResponse(p.Appointments),
		}
	}
	return SummaryResponse{
		ReferenceDate: FormatDate(output.ReferenceDate),
		Periods:       periods,
	}
}

// ToTrendsResponse converts trends output to a TrendsResponse DTO.
func ToTrendsResponse(output *dashboard.GetTrendsOutput) TrendsResponse {
	trends := make([]TrendPointResponse, len(output.Trends))
	for i, p := range output.Trends {
		trends[i] = TrendPointResponse{
			PeriodLabel:  p.PeriodLabel,
			Start:        FormatDate(p.Range.Start),
			End:          FormatDate(p.Range.End),
			Total:        toAggregateResponse(p.Total),
			Obligations:  toAggregateResponse(p.Obligations),
			Appointments: toAggregateResponse(p.Appointments),
		}
	}
	return TrendsResponse{
		StartDate:   FormatDate(output.StartDate),
		EndDate:     FormatDate(output.EndDate),
		Granularity: string(output.Granularity),
		Trends:      trends,
	}
}

// ToReminderRunResponse converts sweep output to a ReminderRunResponse DTO.
func ToReminderRunResponse(output *reminder.SendDueRemindersOutput) ReminderRunResponse {
	return ReminderRunResponse{
		Queued:           output.Queued,
		SkippedNoEmail:   output.SkippedNoEmail,
		SkippedDuplicate: output.SkippedDuplicate,
		Failed:           output.Failed,
	}
}
