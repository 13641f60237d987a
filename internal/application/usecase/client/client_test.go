package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consultorio/dashboard-backend/internal/application/usecase/usecasetest"
	"github.com/consultorio/dashboard-backend/internal/domain/clock"
	domainerror "github.com/consultorio/dashboard-backend/internal/domain/error"
)

var now = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

func clientErrorCode(t *testing.T, err error) domainerror.ClientErrorCode {
	t.Helper()
	var clientErr *domainerror.ClientError
	require.True(t, errors.As(err, &clientErr), "expected ClientError, got %v", err)
	return clientErr.Code
}

func TestCreateClient(t *testing.T) {
	ctx := context.Background()
	repo := usecasetest.NewClientRepository()
	uc := NewCreateClientUseCase(repo, clock.NewFixed(now))

	out, err := uc.Execute(ctx, CreateClientInput{Name: "  Ana   Souza ", Email: "ana@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", out.Client.Name)
	assert.Equal(t, now, out.Client.CreatedAt)

	t.Run("duplicate name ignores case and spacing", func(t *testing.T) {
		_, err := uc.Execute(ctx, CreateClientInput{Name: "ana souza"})
		assert.Equal(t, domainerror.ErrCodeClientNameTaken, clientErrorCode(t, err))
	})

	t.Run("name required", func(t *testing.T) {
		_, err := uc.Execute(ctx, CreateClientInput{Name: "   "})
		assert.Equal(t, domainerror.ErrCodeClientNameRequired, clientErrorCode(t, err))
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := uc.Execute(ctx, CreateClientInput{Name: "Bruno", Email: "not-an-email"})
		assert.Equal(t, domainerror.ErrCodeInvalidClientEmail, clientErrorCode(t, err))
	})

	t.Run("email is optional", func(t *testing.T) {
		_, err := uc.Execute(ctx, CreateClientInput{Name: "Bruno"})
		require.NoError(t, err)
	})
}

func TestUpdateClient(t *testing.T) {
	ctx := context.Background()
	repo := usecasetest.NewClientRepository()
	create := NewCreateClientUseCase(repo, clock.NewFixed(now))
	ana, err := create.Execute(ctx, CreateClientInput{Name: "Ana"})
	require.NoError(t, err)
	_, err = create.Execute(ctx, CreateClientInput{Name: "Bruno"})
	require.NoError(t, err)

	later := now.Add(time.Hour)
	uc := NewUpdateClientUseCase(repo, clock.NewFixed(later))

	anaUpper := "ANA"
	email := "ana@example.com"
	out, err := uc.Execute(ctx, UpdateClientInput{ClientID: ana.Client.ID, Name: &anaUpper, Email: &email})
	require.NoError(t, err, "renaming to the same normalized name is allowed")
	assert.Equal(t, "ANA", out.Client.Name)
	assert.Equal(t, email, out.Client.Email)
	assert.Equal(t, later, out.Client.UpdatedAt)

	bruno := "bruno"
	_, err = uc.Execute(ctx, UpdateClientInput{ClientID: ana.Client.ID, Name: &bruno})
	assert.Equal(t, domainerror.ErrCodeClientNameTaken, clientErrorCode(t, err))
}

func TestListAndDeleteClients(t *testing.T) {
	ctx := context.Background()
	repo := usecasetest.NewClientRepository()
	create := NewCreateClientUseCase(repo, clock.NewFixed(now))
	for _, name := range []string{"Carla", "ana", "Bruno"} {
		_, err := create.Execute(ctx, CreateClientInput{Name: name})
		require.NoError(t, err)
	}

	list, err := NewListClientsUseCase(repo).Execute(ctx)
	require.NoError(t, err)
	require.Len(t, list.Clients, 3)
	assert.Equal(t, "ana", list.Clients[0].Name)

	del := NewDeleteClientUseCase(repo)
	require.NoError(t, del.Execute(ctx, DeleteClientInput{ClientID: list.Clients[0].ID}))

	err = del.Execute(ctx, DeleteClientInput{ClientID: list.Clients[0].ID})
	assert.Equal(t, domainerror.ErrCodeClientNotFound, clientErrorCode(t, err))
}
