//go:build integration
// +build integration

package app

import (
	"context"
	"errors"
	"testing"

	"github.com/campuscred/campuscred/internal/domain/documents"
	"github.com/campuscred/campuscred/internal/domain/portfolios"
	"github.com/campuscred/campuscred/internal/domain/profiles"
	"github.com/campuscred/campuscred/internal/pkg/apperr"
	"github.com/campuscred/campuscred/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePublic(t *testing.T, services *TestServices, actor profiles.Actor, document *documents.Document) {
	t.Helper()
	public := documents.VisibilityPublic
	_, err := services.DocumentService.Update(context.Background(), actor, document.ID, &documents.DocumentUpdate{Visibility: &public})
	require.NoError(t, err)
}

func TestPortfolioService_SaveAndGetPublic(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	owner := services.CreateActor(t, profiles.RoleStudent)

	first := services.UploadPDF(t, owner, "First")
	hidden := services.UploadPDF(t, owner, "Hidden")
	second := services.UploadPDF(t, owner, "Second")
	makePublic(t, services, owner, first)
	makePublic(t, services, owner, second)

	input := &portfolios.PortfolioInput{
		Slug:        "ada-lovelace",
		Title:       "Ada's work",
		DocumentIDs: []string{second.ID, hidden.ID, first.ID},
	}
	saved, err := services.PortfolioService.Save(ctx, owner, input)
	require.NoError(t, err)
	assert.Equal(t, portfolios.ThemeClassic, saved.Theme)

	_, err = services.PortfolioService.GetPublic(ctx, "ada-lovelace")
	assert.True(t, errors.Is(err, apperr.ErrNotFound), "unpublished")

	input.Published = true
	_, err = services.PortfolioService.Save(ctx, owner, input)
	require.NoError(t, err)

	public, err := services.PortfolioService.GetPublic(ctx, "ada-lovelace")
	require.NoError(t, err)
	assert.Equal(t, owner.ProfileID, public.Owner.ID)
	require.Len(t, public.Documents, 2)
	assert.Equal(t, second.ID, public.Documents[0].ID)
	assert.Equal(t, first.ID, public.Documents[1].ID)
	assert.Equal(t, documents.StatusUnverified, public.Documents[0].Status)

	mine, err := services.PortfolioService.GetMine(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, mine.ID)
}

func TestPortfolioService_Validation(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	owner := services.CreateActor(t, profiles.RoleStudent)
	other := services.CreateActor(t, profiles.RoleStudent)
	foreign := services.UploadPDF(t, other, "Not yours")

	_, err := services.PortfolioService.Save(ctx, owner, &portfolios.PortfolioInput{Slug: "No Caps", Title: "x"})
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))

	_, err = services.PortfolioService.Save(ctx, owner, &portfolios.PortfolioInput{Slug: "valid-slug", Title: "x", Theme: "neon"})
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))

	_, err = services.PortfolioService.Save(ctx, owner, &portfolios.PortfolioInput{
		Slug: "valid-slug", Title: "x", DocumentIDs: []string{foreign.ID},
	})
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))

	_, err = services.PortfolioService.Save(ctx, owner, &portfolios.PortfolioInput{
		Slug: "valid-slug", Title: "x", DocumentIDs: []string{uuid.NewString()},
	})
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))
}

func TestPortfolioService_SlugConflictAndDelete(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	alice := services.CreateActor(t, profiles.RoleStudent)
	bob := services.CreateActor(t, profiles.RoleStudent)

	_, err := services.PortfolioService.Save(ctx, alice, &portfolios.PortfolioInput{Slug: "shared-name", Title: "Alice"})
	require.NoError(t, err)

	_, err = services.PortfolioService.Save(ctx, bob, &portfolios.PortfolioInput{Slug: "shared-name", Title: "Bob"})
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	require.NoError(t, services.PortfolioService.DeleteMine(ctx, alice))
	err = services.PortfolioService.DeleteMine(ctx, alice)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = services.PortfolioService.Save(ctx, bob, &portfolios.PortfolioInput{Slug: "shared-name", Title: "Bob"})
	assert.NoError(t, err)
}
