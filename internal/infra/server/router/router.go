// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/consultorio/dashboard-backend/internal/integration/entrypoint/controller"
	"github.com/consultorio/dashboard-backend/internal/integration/entrypoint/middleware"
	"github.com/consultorio/dashboard-backend/internal/integration/metrics"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	clientController      *controller.ClientController
	analysisController    *controller.AnalysisController
	planController        *controller.PlanController
	obligationController  *controller.ObligationController
	dashboardController   *controller.DashboardController
	appointmentController *controller.AppointmentController
	reminderController    *controller.ReminderController
	writeRateLimiter      *middleware.RateLimiter
	metrics               *metrics.Recorder
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	clientController *controller.ClientController,
	analysisController *controller.AnalysisController,
	planController *controller.PlanController,
	obligationController *controller.ObligationController,
	dashboardController *controller.DashboardController,
	appointmentController *controller.AppointmentController,
	reminderController *controller.ReminderController,
	writeRateLimiter *middleware.RateLimiter,
	recorder *metrics.Recorder,
) *Router {
	return &Router{
		healthController:      healthController,
		clientController:      clientController,
		analysisController:    analysisController,
		planController:        planController,
		obligationController:  obligationController,
		dashboardController:   dashboardController,
		appointmentController: appointmentController,
		reminderController:    reminderController,
		writeRateLimiter:      writeRateLimiter,
		metrics:               recorder,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()
	if r.metrics != nil {
		r.engine.Use(r.metrics.Middleware())
	}

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check and metrics endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
	if r.metrics != nil {
		r.engine.GET("/metrics", gin.WrapH(r.metrics.Handler()))
	}
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	if r.writeRateLimiter != nil {
		v1.Use(r.writeRateLimiter.Middleware())
	}

	if r.clientController != nil {
		clients := v1.Group("/clients")
		{
			clients.GET("", r.clientController.List)
			clients.POST("", r.clientController.Create)
			clients.PATCH("/:id", r.clientController.Update)
			clients.DELETE("/:id", r.clientController.Delete)
		}
	}

	if r.analysisController != nil {
		analyses := v1.Group("/analyses")
		{
			analyses.GET("", r.analysisController.List)
			analyses.POST("", r.analysisController.Create)
			analyses.GET("/:id", r.analysisController.Get)
			analyses.PATCH("/:id", r.analysisController.Update)
			analyses.DELETE("/:id", r.analysisController.Delete)

			if r.planController != nil {
				analyses.POST("/:id/plan/resync", r.planController.Resync)
			}
		}
	}

	if r.planController != nil {
		plans := v1.Group("/plans")
		{
			plans.POST("/preview", r.planController.Preview)
			plans.POST("", r.planController.Activate)
		}
	}

	if r.obligationController != nil {
		obligations := v1.Group("/obligations")
		{
			obligations.GET("", r.obligationController.List)
			obligations.POST("/:id/pay", r.obligationController.MarkPaid)
			obligations.POST("/:id/reopen", r.obligationController.Reopen)
			obligations.DELETE("/:id", r.obligationController.Delete)
		}
	}

	if r.dashboardController != nil {
		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("/upcoming", r.dashboardController.Upcoming)
			dashboard.GET("/summary", r.dashboardController.Summary)
			dashboard.GET("/trends", r.dashboardController.Trends)
		}
	}

	if r.appointmentController != nil {
		appointments := v1.Group("/appointments")
		{
			appointments.GET("", r.appointmentController.List)
			appointments.POST("", r.appointmentController.Create)
			appointments.PATCH("/:id/status", r.appointmentController.UpdateStatus)
		}
	}

	if r.reminderController != nil {
		v1.POST("/reminders/run", r.reminderController.Run)
	}
}
