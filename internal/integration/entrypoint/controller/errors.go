// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/consultorio/dashboard-backend/internal/domain/error"
	"github.com/consultorio/dashboard-backend/internal/integration/entrypoint/dto"
)

// respondError writes the coded domain error carried by err, or a generic
// 500 when err carries none.
func respondError(ctx *gin.Context, err error) {
	var (
		oblErr  *domainerror.ObligationError
		planErr *domainerror.PlanError
		cliErr  *domainerror.ClientError
		anlErr  *domainerror.AnalysisError
		aptErr  *domainerror.AppointmentError
		dshErr  *domainerror.DashboardError
		mailErr *domainerror.EmailError
	)

	switch {
	case errors.As(err, &oblErr):
		writeError(ctx, getStatusCodeForObligationError(oblErr.Code), oblErr.Message, string(oblErr.Code))
	case errors.As(err, &planErr):
		writeError(ctx, getStatusCodeForPlanError(planErr.Code), planErr.Message, string(planErr.Code))
	case errors.As(err, &cliErr):
		writeError(ctx, getStatusCodeForClientError(cliErr.Code), cliErr.Message, string(cliErr.Code))
	case errors.As(err, &anlErr):
		writeError(ctx, getStatusCodeForAnalysisError(anlErr.Code), anlErr.Message, string(anlErr.Code))
	case errors.As(err, &aptErr):
		writeError(ctx, getStatusCodeForAppointmentError(aptErr.Code), aptErr.Message, string(aptErr.Code))
	case errors.As(err, &dshErr):
		writeError(ctx, getStatusCodeForDashboardError(dshErr.Code), dshErr.Message, string(dshErr.Code))
	case errors.As(err, &mailErr):
		writeError(ctx, http.StatusInternalServerError, mailErr.Message, string(mailErr.Code))
	default:
		slog.Error("Unhandled request error",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"error", err,
		)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
	}
}

func writeError(ctx *gin.Context, status int, message, code string) {
	ctx.JSON(status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func badRequest(ctx *gin.Context, message, code string, err error) {
	response := dto.ErrorResponse{
		Error: message,
		Code:  code,
	}
	if err != nil {
		response.Details = err.Error()
	}
	ctx.JSON(http.StatusBadRequest, response)
}

// getStatusCodeForObligationError maps obligation error codes to HTTP status codes.
func getStatusCodeForObligationError(code domainerror.ObligationErrorCode) int {
	switch code {
	case domainerror.ErrCodeObligationNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeResyncInProgress,
		domainerror.ErrCodeObligationSuperseded:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidObligationKind,
		domainerror.ErrCodeInvalidObligationFilter:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForPlanError maps plan error codes to HTTP status codes.
func getStatusCodeForPlanError(code domainerror.PlanErrorCode) int {
	switch code {
	case domainerror.ErrCodePlanNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidPlanKind,
		domainerror.ErrCodeTooManyPeriods,
		domainerror.ErrCodeNegativeAmount,
		domainerror.ErrCodePlanStartRequired,
		domainerror.ErrCodePlanClientRequired,
		domainerror.ErrCodeInvalidPlanDate,
		domainerror.ErrCodeInvalidPlanRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForClientError maps client error codes to HTTP status codes.
func getStatusCodeForClientError(code domainerror.ClientErrorCode) int {
	switch code {
	case domainerror.ErrCodeClientNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeClientNameTaken:
		return http.StatusConflict
	case domainerror.ErrCodeClientNameRequired,
		domainerror.ErrCodeInvalidClientEmail:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForAnalysisError maps analysis error codes to HTTP status codes.
func getStatusCodeForAnalysisError(code domainerror.AnalysisErrorCode) int {
	switch code {
	case domainerror.ErrCodeAnalysisNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeAnalysisClientRequired,
		domainerror.ErrCodeInvalidServiceType,
		domainerror.ErrCodeInvalidAnalysisDate,
		domainerror.ErrCodeInvalidAnalysisPlan:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForAppointmentError maps appointment error codes to HTTP status codes.
func getStatusCodeForAppointmentError(code domainerror.AppointmentErrorCode) int {
	switch code {
	case domainerror.ErrCodeAppointmentNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidAppointmentStatus,
		domainerror.ErrCodeInvalidAppointmentService,
		domainerror.ErrCodeAppointmentNegativeAmount,
		domainerror.ErrCodeInvalidAppointmentDateRange,
		domainerror.ErrCodeAppointmentClientRequired:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForDashboardError maps dashboard error codes to HTTP status codes.
func getStatusCodeForDashboardError(code domainerror.DashboardErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidDateRange,
		domainerror.ErrCodeInvalidPeriod,
		domainerror.ErrCodeInvalidHorizon,
		domainerror.ErrCodeInvalidDateFormat,
		domainerror.ErrCodeInvalidGranularity,
		domainerror.ErrCodeDateRangeTooLarge:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
