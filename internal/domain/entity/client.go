// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// Client represents a person attended by the practice.
type Client struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Phone     string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete support
}

// NewClient creates a new Client entity.
func NewClient(name, email, phone, notes string, now time.Time) *Client {
	now = now.UTC()

	return &Client{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		Phone:     strings.TrimSpace(phone),
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NormalizedName returns the grouping key for the client.
func (c *Client) NormalizedName() string {
	return NormalizeClientName(c.Name)
}

// NormalizeClientName produces the case- and whitespace-insensitive key used
// to match obligations to clients.
func NormalizeClientName(name string) string {
	return cases.Fold().String(strings.Join(strings.Fields(name), " "))
}
