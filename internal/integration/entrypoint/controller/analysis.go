// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/consultorio/dashboard-backend/internal/application/usecase/analysis"
	"github.com/consultorio/dashboard-backend/internal/domain/clock"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
	domainerror "github.com/consultorio/dashboard-backend/internal/domain/error"
	domainobligation "github.com/consultorio/dashboard-backend/internal/domain/obligation"
	"github.com/consultorio/dashboard-backend/internal/integration/entrypoint/dto"
)

// AnalysisController handles analysis endpoints.
type AnalysisController struct {
	listUseCase   *analysis.ListAnalysesUseCase
	createUseCase *analysis.CreateAnalysisUseCase
	getUseCase    *analysis.GetAnalysisUseCase
	updateUseCase *analysis.UpdateAnalysisUseCase
	deleteUseCase *analysis.DeleteAnalysisUseCase
	clock         clock.Clock
}

// NewAnalysisController creates a new analysis controller instance.
func NewAnalysisController(
	listUseCase *analysis.ListAnalysesUseCase,
	createUseCase *analysis.CreateAnalysisUseCase,
	getUseCase *analysis.GetAnalysisUseCase,
	updateUseCase *analysis.UpdateAnalysisUseCase,
	deleteUseCase *analysis.DeleteAnalysisUseCase,
	clk clock.Clock,
) *AnalysisController {
	return &AnalysisController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		clock:         clk,
	}
}

func (c *AnalysisController) urgencyOf() func(*entity.Obligation) domainobligation.Urgency {
	today := c.clock.Now()
	return func(o *entity.Obligation) domainobligation.Urgency {
		return domainobligation.UrgencyOf(o, today)
	}
}

// List handles GET /analyses requests.
func (c *AnalysisController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context(), analysis.ListAnalysesInput{
		ClientName:  ctx.Query("client"),
		ServiceType: ctx.Query("service_type"),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAnalysisListResponse(output.Analyses))
}

// Create handles POST /analyses requests.
func (c *AnalysisController) Create(ctx *gin.Context) {
	var req dto.CreateAnalysisRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeAnalysisClientRequired), err)
		return
	}

	sessionDate, err := dto.ParseDate(req.SessionDate)
	if err != nil {
		badRequest(ctx, "Invalid session date", string(domainerror.ErrCodeInvalidAnalysisDate), err)
		return
	}

	input := analysis.CreateAnalysisInput{
		ClientName:  req.ClientName,
		ServiceType: req.ServiceType,
		SessionDate: sessionDate,
		Notes:       req.Notes,
	}

	if req.Plan != nil {
		planInput, ok := planInputFrom(ctx, *req.Plan)
		if !ok {
			return
		}
		input.Plan = &planInput
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToAnalysisWithObligations(output.Analysis, output.Obligations, c.urgencyOf()))
}

// Get handles GET /analyses/:id requests.
func (c *AnalysisController) Get(ctx *gin.Context) {
	analysisID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		badRequest(ctx, "Invalid analysis ID format", "", nil)
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), analysis.GetAnalysisInput{AnalysisID: analysisID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAnalysisWithObligations(output.Analysis, output.Obligations, c.urgencyOf()))
}

// Update handles PATCH /analyses/:id requests. A plan in the body replaces
// the current one and resyncs its obligations.
func (c *AnalysisController) Update(ctx *gin.Context) {
	analysisID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		badRequest(ctx, "Invalid analysis ID format", "", nil)
		return
	}

	var req dto.UpdateAnalysisRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", "", err)
		return
	}

	input := analysis.UpdateAnalysisInput{
		AnalysisID:  analysisID,
		ClientName:  req.ClientName,
		ServiceType: req.ServiceType,
		Notes:       req.Notes,
		RemovePlan:  req.RemovePlan,
	}

	if req.SessionDate != nil {
		sessionDate, err := dto.ParseDate(*req.SessionDate)
		if err != nil {
			badRequest(ctx, "Invalid session date", string(domainerror.ErrCodeInvalidAnalysisDate), err)
			return
		}
		input.SessionDate = &sessionDate
	}

	if req.Plan != nil {
		planInput, ok := planInputFrom(ctx, *req.Plan)
		if !ok {
			return
		}
		input.Plan = &planInput
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUpdateAnalysisResponse(
		output.Analysis,
		output.Resynced,
		output.Created,
		output.Deactivated,
		output.Deleted,
		c.urgencyOf(),
	))
}

// Delete handles DELETE /analyses/:id requests.
func (c *AnalysisController) Delete(ctx *gin.Context) {
	analysisID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		badRequest(ctx, "Invalid analysis ID format", "", nil)
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), analysis.DeleteAnalysisInput{AnalysisID: analysisID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeleteAnalysisResponse{Deleted: output.Deleted})
}
