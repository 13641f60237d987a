package dto

import (
	"time"

	"github.com/consultorio/dashboard-backend/internal/domain/entity"
)

// CreateClientRequest represents the request body for client creation.
type CreateClientRequest struct {
	Name  string `json:"name" binding:"required,max=200"`
	Email string `json:"email,omitempty" binding:"omitempty,max=320"`
	Phone string `json:"phone,omitempty" binding:"omitempty,max=50"`
	Notes string `json:"notes,omitempty"`
}

// UpdateClientRequest represents the request body for client update.
type UpdateClientRequest struct {
	Name  *string `json:"name,omitempty" binding:"omitempty,max=200"`
	Email *string `json:"email,omitempty" binding:"omitempty,max=320"`
	Phone *string `json:"phone,omitempty" binding:"omitempty,max=50"`
	Notes *string `json:"notes,omitempty"`
}

// ClientResponse represents a single client in API responses.
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClientListResponse represents the response for listing clients.
type ClientListResponse struct {
	Clients []ClientResponse `json:"clients"`
}

// ToClientResponse converts a domain Client entity to a ClientResponse DTO.
func ToClientResponse(c *entity.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToClientListResponse converts a slice of clients to a ClientListResponse DTO.
func ToClientListResponse(clients []*entity.Client) ClientListResponse {
	items := make([]ClientResponse, len(clients))
	for i, c := range clients {
		items[i] = ToClientResponse(c)
	}
	return ClientListResponse{Clients: items}
}
