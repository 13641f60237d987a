// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/consultorio/dashboard-backend/internal/application/usecase/appointment"
	domainerror "github.com/consultorio/dashboard-backend/internal/domain/error"
	"github.com/consultorio/dashboard-backend/internal/integration/entrypoint/dto"
)

// AppointmentController handles appointment endpoints.
type AppointmentController struct {
	listUseCase   *appointment.ListAppointmentsUseCase
	createUseCase *appointment.CreateAppointmentUseCase
	statusUseCase *appointment.UpdateStatusUseCase
}

// NewAppointmentController creates a new appointment controller instance.
func NewAppointmentController(
	listUseCase *appointment.ListAppointmentsUseCase,
	createUseCase *appointment.CreateAppointmentUseCase,
	statusUseCase *appointment.UpdateStatusUseCase,
) *AppointmentController {
	return &AppointmentController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		statusUseCase: statusUseCase,
	}
}

// List handles GET /appointments requests.
// Query: client, status, from, to.
func (c *AppointmentController) List(ctx *gin.Context) {
	input := appointment.ListAppointmentsInput{
		ClientName: ctx.Query("client"),
		Status:     ctx.Query("status"),
	}

	var err error
	if input.From, err = dto.ParseOptionalDate(ctx.Query("from")); err != nil {
		badRequest(ctx, "Invalid from date", string(domainerror.ErrCodeInvalidDateFormat), err)
		return
	}
	if input.To, err = dto.ParseOptionalDate(ctx.Query("to")); err != nil {
		badRequest(ctx, "Invalid to date", string(domainerror.ErrCodeInvalidDateFormat), err)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAppointmentListResponse(output.Appointments))
}

// Create handles POST /appointments requests.
func (c *AppointmentController) Create(ctx *gin.Context) {
	var req dto.CreateAppointmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeAppointmentClientRequired), err)
		return
	}

	scheduledAt, err := dto.ParseTimestamp(req.ScheduledAt)
	if err != nil {
		badRequest(ctx, "Invalid scheduled_at", string(domainerror.ErrCodeInvalidDateFormat), err)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), appointment.CreateAppointmentInput{
		ClientName:  req.ClientName,
		ServiceType: req.ServiceType,
		ScheduledAt: scheduledAt,
		Amount:      req.Amount.Decimal,
		Notes:       req.Notes,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToAppointmentResponse(output.Appointment))
}

// UpdateStatus handles PATCH /appointments/:id/status requests.
func (c *AppointmentController) UpdateStatus(ctx *gin.Context) {
	appointmentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		badRequest(ctx, "Invalid appointment ID format", "", nil)
		return
	}

	var req dto.UpdateAppointmentStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeInvalidAppointmentStatus), err)
		return
	}

	output, err := c.statusUseCase.Execute(ctx.Request.Context(), appointment.UpdateStatusInput{
		AppointmentID: appointmentID,
		Status:        req.Status,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAppointmentResponse(output.Appointment))
}
