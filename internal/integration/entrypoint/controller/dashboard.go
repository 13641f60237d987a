// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/consultorio/dashboard-backend/internal/application/usecase/dashboard"
	domainerror "github.com/consultorio/dashboard-backend/internal/domain/error"
	"github.com/consultorio/dashboard-backend/internal/integration/entrypoint/dto"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	upcomingUseCase *dashboard.GetUpcomingDuesUseCase
	summaryUseCase  *dashboard.GetSummaryUseCase
	trendsUseCase   *dashboard.GetTrendsUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	upcomingUseCase *dashboard.GetUpcomingDuesUseCase,
	summaryUseCase *dashboard.GetSummaryUseCase,
	trendsUseCase *dashboard.GetTrendsUseCase,
) *DashboardController {
	return &DashboardController{
		upcomingUseCase: upcomingUseCase,
		summaryUseCase:  summaryUseCase,
		trendsUseCase:   trendsUseCase,
	}
}

// Upcoming handles GET /dashboard/upcoming requests.
// Query: within_days (optional, 0 disables the horizon).
func (c *DashboardController) Upcoming(ctx *gin.Context) {
	var input dashboard.GetUpcomingDuesInput

	if raw := ctx.Query("within_days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(ctx, "within_days must be an integer", string(domainerror.ErrCodeInvalidHorizon), nil)
			return
		}
		input.WithinDays = &days
	}

	output, err := c.upcomingUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUpcomingDuesResponse(output))
}

// Summary handles GET /dashboard/summary requests.
// Query: period (week|month|year|all, optional), date (YYYY-MM-DD, optional).
func (c *DashboardController) Summary(ctx *gin.Context) {
	input := dashboard.GetSummaryInput{
		Period: ctx.Query("period"),
	}

	ref, err := dto.ParseOptionalDate(ctx.Query("date"))
	if err != nil {
		badRequest(ctx, "Invalid date format, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidDateFormat), err)
		return
	}
	input.ReferenceDate = ref

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSummaryResponse(output))
}

// Trends handles GET /dashboard/trends requests.
// Query: start_date, end_date (YYYY-MM-DD, optional), granularity (weekly|monthly|quarterly).
func (c *DashboardController) Trends(ctx *gin.Context) {
	input := dashboard.GetTrendsInput{
		Granularity: dashboard.Granularity(ctx.Query("granularity")),
	}

	var err error
	if input.StartDate, err = dto.ParseOptionalDate(ctx.Query("start_date")); err != nil {
		badRequest(ctx, "Invalid start_date format, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidDateFormat), err)
		return
	}
	if input.EndDate, err = dto.ParseOptionalDate(ctx.Query("end_date")); err != nil {
		badRequest(ctx, "Invalid end_date format, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidDateFormat), err)
		return
	}

	output, err := c.trendsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTrendsResponse(output))
}
