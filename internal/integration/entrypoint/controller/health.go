// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/consultorio/dashboard-backend/internal/domain/clock"
)

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthChecker    func() bool
	redisHealthChecker func() bool
	clock              clock.Clock
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Redis     string `json:"redis"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance. A nil
// redisHealthChecker reports Redis as disabled.
func NewHealthController(dbHealthChecker, redisHealthChecker func() bool, clk clock.Clock) *HealthController {
	return &HealthController{
		dbHealthChecker:    dbHealthChecker,
		redisHealthChecker: redisHealthChecker,
		clock:              clk,
	}
}

// Check handles GET /health requests.
// It returns the current health status of the API and its dependencies.
func (h *HealthController) Check(c *gin.Context) {
	dbStatus := "disconnected"
	if h.dbHealthChecker != nil && h.dbHealthChecker() {
		dbStatus = "connected"
	}

	redisStatus := "disabled"
	if h.redisHealthChecker != nil {
		redisStatus = "disconnected"
		if h.redisHealthChecker() {
			redisStatus = "connected"
		}
	}

	status := "ok"
	if dbStatus != "connected" || redisStatus == "disconnected" {
		status = "degraded"
	}

	response := HealthResponse{
		Status:    status,
		Database:  dbStatus,
		Redis:     redisStatus,
		Timestamp: h.clock.Now().UTC().Format(time.RFC3339),
	}

	c.JSON(http.StatusOK, response)
}
