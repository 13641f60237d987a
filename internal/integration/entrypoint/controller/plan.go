// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/consultorio/dashboard-backend/internal/application/usecase/plan"
	"github.com/consultorio/dashboard-backend/internal/domain/clock"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
	domainerror "github.com/consultorio/dashboard-backend/internal/domain/error"
	domainobligation "github.com/consultorio/dashboard-backend/internal/domain/obligation"
	"github.com/consultorio/dashboard-backend/internal/integration/entrypoint/dto"
)

// PlanController handles payment plan endpoints.
type PlanController struct {
	previewUseCase  *plan.PreviewPlanUseCase
	activateUseCase *plan.ActivatePlanUseCase
	resyncUseCase   *plan.ResyncPlanUseCase
	clock           clock.Clock
}

// NewPlanController creates a new plan controller instance.
func NewPlanController(
	previewUseCase *plan.PreviewPlanUseCase,
	activateUseCase *plan.ActivatePlanUseCase,
	resyncUseCase *plan.ResyncPlanUseCase,
	clk clock.Clock,
) *PlanController {
	return &PlanController{
		previewUseCase:  previewUseCase,
		activateUseCase: activateUseCase,
		resyncUseCase:   resyncUseCase,
		clock:           clk,
	}
}

func (c *PlanController) urgencyOf() func(*entity.Obligation) domainobligation.Urgency {
	today := c.clock.Now()
	return func(o *entity.Obligation) domainobligation.Urgency {
		return domainobligation.UrgencyOf(o, today)
	}
}

// Preview handles POST /plans/preview requests.
func (c *PlanController) Preview(ctx *gin.Context) {
	var req dto.PlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeInvalidPlanRequest), err)
		return
	}

	input, ok := planInputFrom(ctx, req)
	if !ok {
		return
	}

	output, err := c.previewUseCase.Execute(ctx.Request.Context(), plan.PreviewPlanInput{Plan: input})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPreviewPlanResponse(output))
}

// Activate handles POST /plans requests.
func (c *PlanController) Activate(ctx *gin.Context) {
	var req dto.ActivatePlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeInvalidPlanRequest), err)
		return
	}

	input, ok := planInputFrom(ctx, req.PlanRequest)
	if !ok {
		return
	}

	activate := plan.ActivatePlanInput{Plan: input}
	if req.AnalysisID != nil {
		analysisID, err := uuid.Parse(*req.AnalysisID)
		if err != nil {
			badRequest(ctx, "Invalid analysis ID format", string(domainerror.ErrCodeInvalidPlanRequest), err)
			return
		}
		activate.AnalysisID = &analysisID
	}

	output, err := c.activateUseCase.Execute(ctx.Request.Context(), activate)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToActivatePlanResponse(&output.Plan, output.Obligations, output.Deactivated, c.urgencyOf()))
}

// Resync handles POST /analyses/:id/plan/resync requests. The analysis'
// stored plan is regenerated and supersedes its active obligations.
func (c *PlanController) Resync(ctx *gin.Context) {
	analysisID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		badRequest(ctx, "Invalid analysis ID format", "", nil)
		return
	}

	output, err := c.resyncUseCase.Execute(ctx.Request.Context(), plan.ResyncPlanInput{AnalysisID: analysisID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToActivatePlanResponse(nil, output.Created, output.Deactivated, c.urgencyOf()))
}

func planInputFrom(ctx *gin.Context, req dto.PlanRequest) (plan.PlanInput, bool) {
	input, err := req.ToPlanInput()
	if err != nil {
		badRequest(ctx, "Invalid plan start date", string(domainerror.ErrCodeInvalidPlanDate), err)
		return plan.PlanInput{}, false
	}
	return input, true
}
