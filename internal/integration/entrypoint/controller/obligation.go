// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/consultorio/dashboard-backend/internal/application/usecase/obligation"
	"github.com/consultorio/dashboard-backend/internal/domain/clock"
	domainerror "github.com/consultorio/dashboard-backend/internal/domain/error"
	domainobligation "github.com/consultorio/dashboard-backend/internal/domain/obligation"
	"github.com/consultorio/dashboard-backend/internal/integration/entrypoint/dto"
)

// ObligationController handles obligation endpoints.
type ObligationController struct {
	listUseCase     *obligation.ListObligationsUseCase
	markPaidUseCase *obligation.MarkPaidUseCase
	reopenUseCase   *obligation.ReopenUseCase
	deleteUseCase   *obligation.DeleteObligationUseCase
	clock           clock.Clock
}

// NewObligationController creates a new obligation controller instance.
func NewObligationController(
	listUseCase *obligation.ListObligationsUseCase,
	markPaidUseCase *obligation.MarkPaidUseCase,
	reopenUseCase *obligation.ReopenUseCase,
	deleteUseCase *obligation.DeleteObligationUseCase,
	clk clock.Clock,
) *ObligationController {
	return &ObligationController{
		listUseCase:     listUseCase,
		markPaidUseCase: markPaidUseCase,
		reopenUseCase:   reopenUseCase,
		deleteUseCase:   deleteUseCase,
		clock:           clk,
	}
}

// List handles GET /obligations requests.
// Query: client, analysis_id, kind, active, from, to.
func (c *ObligationController) List(ctx *gin.Context) {
	input := obligation.ListObligationsInput{
		ClientName: ctx.Query("client"),
		Kind:       ctx.Query("kind"),
	}

	if raw := ctx.Query("analysis_id"); raw != "" {
		analysisID, err := uuid.Parse(raw)
		if err != nil {
			badRequest(ctx, "Invalid analysis ID format", string(domainerror.ErrCodeInvalidObligationFilter), nil)
			return
		}
		input.AnalysisID = &analysisID
	}

	if raw := ctx.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(ctx, "active must be true or false", string(domainerror.ErrCodeInvalidObligationFilter), nil)
			return
		}
		input.Active = &active
	}

	var err error
	if input.DueFrom, err = dto.ParseOptionalDate(ctx.Query("from")); err != nil {
		badRequest(ctx, "Invalid from date", string(domainerror.ErrCodeInvalidObligationFilter), err)
		return
	}
	if input.DueTo, err = dto.ParseOptionalDate(ctx.Query("to")); err != nil {
		badRequest(ctx, "Invalid to date", string(domainerror.ErrCodeInvalidObligationFilter), err)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToObligationListResponse(output))
}

// MarkPaid handles POST /obligations/:id/pay requests.
func (c *ObligationController) MarkPaid(ctx *gin.Context) {
	output, err := c.markPaidUseCase.Execute(ctx.Request.Context(), obligation.MarkPaidInput{
		ObligationID: ctx.Param("id"),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToObligationResponse(output.Obligation, nil))
}

// Reopen handles POST /obligations/:id/reopen requests.
func (c *ObligationController) Reopen(ctx *gin.Context) {
	output, err := c.reopenUseCase.Execute(ctx.Request.Context(), obligation.ReopenInput{
		ObligationID: ctx.Param("id"),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	urgency := domainobligation.UrgencyOf(output.Obligation, c.clock.Now())
	ctx.JSON(http.StatusOK, dto.ToObligationResponse(output.Obligation, &urgency))
}

// Delete handles DELETE /obligations/:id requests.
func (c *ObligationController) Delete(ctx *gin.Context) {
	if err := c.deleteUseCase.Execute(ctx.Request.Context(), obligation.DeleteObligationInput{
		ObligationID: ctx.Param("id"),
	}); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
