// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/consultorio/dashboard-backend/internal/application/usecase/client"
	domainerror "github.com/consultorio/dashboard-backend/internal/domain/error"
	"github.com/consultorio/dashboard-backend/internal/integration/entrypoint/dto"
)

// ClientController handles client endpoints.
type ClientController struct {
	listUseCase   *client.ListClientsUseCase
	createUseCase *client.CreateClientUseCase
	updateUseCase *client.UpdateClientUseCase
	deleteUseCase *client.DeleteClientUseCase
}

// NewClientController creates a new client controller instance.
func NewClientController(
	listUseCase *client.ListClientsUseCase,
	createUseCase *client.CreateClientUseCase,
	updateUseCase *client.UpdateClientUseCase,
	deleteUseCase *client.DeleteClientUseCase,
) *ClientController {
	return &ClientController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /clients requests.
func (c *ClientController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToClientListResponse(output.Clients))
}

// Create handles POST /clients requests.
func (c *ClientController) Create(ctx *gin.Context) {
	var req dto.CreateClientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeClientNameRequired), err)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), client.CreateClientInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Notes: req.Notes,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToClientResponse(output.Client))
}

// Update handles PATCH /clients/:id requests.
func (c *ClientController) Update(ctx *gin.Context) {
	clientID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		badRequest(ctx, "Invalid client ID format", "", nil)
		return
	}

	var req dto.UpdateClientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", "", err)
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), client.UpdateClientInput{
		ClientID: clientID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Notes:    req.Notes,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToClientResponse(output.Client))
}

// Delete handles DELETE /clients/:id requests.
func (c *ClientController) Delete(ctx *gin.Context) {
	clientID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		badRequest(ctx, "Invalid client ID format", "", nil)
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), client.DeleteClientInput{ClientID: clientID}); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
