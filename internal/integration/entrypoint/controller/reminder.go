// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/consultorio/dashboard-backend/internal/application/usecase/reminder"
	"github.com/consultorio/dashboard-backend/internal/integration/entrypoint/dto"
)

// ReminderController handles reminder endpoints.
type ReminderController struct {
	sendUseCase *reminder.SendDueRemindersUseCase
}

// NewReminderController creates a new reminder controller instance.
func NewReminderController(sendUseCase *reminder.SendDueRemindersUseCase) *ReminderController {
	return &ReminderController{sendUseCase: sendUseCase}
}

// Run handles POST /reminders/run requests by sweeping due reminders now.
func (c *ReminderController) Run(ctx *gin.Context) {
	output, err := c.sendUseCase.Execute(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReminderRunResponse(output))
}
