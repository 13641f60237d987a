// Package client contains client-related use cases.
package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
	domainerror "github.com/consultorio/dashboard-backend/internal/domain/error"
)

var validate = validator.New()

func validateEmail(email string) error {
	if email == "" {
		return nil
	}
	if err := validate.Var(email, "email"); err != nil {
		return domainerror.NewClientError(
			domainerror.ErrCodeInvalidClientEmail,
			"invalid email address",
			domainerror.ErrInvalidClientEmail,
		)
	}
	return nil
}

func cleanName(name string) (string, error) {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return "", domainerror.NewClientError(
			domainerror.ErrCodeClientNameRequired,
			"client name is required",
			domainerror.ErrClientNameRequired,
		)
	}
	return name, nil
}

// ensureNameAvailable fails when another client already uses name. self is
// the client being renamed, if any.
func ensureNameAvailable(ctx context.Context, repo adapter.ClientRepository, name string, self *uuid.UUID) error {
	existing, err := repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, domainerror.ErrClientNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check client name: %w", err)
	}
	if self != nil && existing.ID == *self {
		return nil
	}
	return domainerror.NewClientError(
		domainerror.ErrCodeClientNameTaken,
		"a client with this name already exists",
		domainerror.ErrClientNameTaken,
	)
}

func findClient(ctx context.Context, repo adapter.ClientRepository, id uuid.UUID) (*entity.Client, error) {
	c, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrClientNotFound) {
			return nil, domainerror.NewClientError(
				domainerror.ErrCodeClientNotFound,
				"client not found",
				domainerror.ErrClientNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find client: %w", err)
	}
	return c, nil
}
