//go:build integration
// +build integration

package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/campuscred/campuscred/internal/domain/profiles"
	"github.com/campuscred/campuscred/internal/infrastructure/persistence/models"
	"github.com/campuscred/campuscred/internal/pkg/apperr"
	"github.com/campuscred/campuscred/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileSqliteRepository_CreateAndGet(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	profile := CreateTestProfile(t, profiles.RoleStudent)
	require.NoError(t, ctx.ProfileRepo.Create(context.Background(), profile))

	var model models.ProfileModel
	require.NoError(t, ctx.DB.First(&model, "id = ?", profile.ID).Error)
	assert.Equal(t, profile.Email, model.Email)

	byID, err := ctx.ProfileRepo.GetByID(context.Background(), profile.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.FullName, byID.FullName)

	byEmail, err := ctx.ProfileRepo.GetByEmail(context.Background(), "  "+profile.Email+" ")
	require.NoError(t, err)
	assert.Equal(t, profile.ID, byEmail.ID)
}

func TestProfileSqliteRepository_DuplicateEmail(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	first := CreateTestProfile(t, profiles.RoleStudent)
	require.NoError(t, ctx.ProfileRepo.Create(context.Background(), first))

	second := CreateTestProfile(t, profiles.RoleFaculty)
	second.Email = first.Email

	err := ctx.ProfileRepo.Create(context.Background(), second)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrConflict))
}

func TestProfileSqliteRepository_InvalidProfile(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	err := ctx.ProfileRepo.Create(context.Background(), &profiles.Profile{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))
	assert.Contains(t, err.Error(), "validation")
}

func TestProfileSqliteRepository_GetByID_NotFound(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	_, err := ctx.ProfileRepo.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestProfileSqliteRepository_ListAndRoles(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	student := CreateTestProfile(t, profiles.RoleStudent)
	faculty := CreateTestProfile(t, profiles.RoleFaculty)
	admin := CreateTestProfile(t, profiles.RoleAdmin)
	for _, p := range []*profiles.Profile{student, faculty, admin} {
		require.NoError(t, ctx.ProfileRepo.Create(context.Background(), p))
	}

	query := profiles.NewProfileQuery()
	query.Role = profiles.RoleFaculty
	list, err := ctx.ProfileRepo.List(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, faculty.ID, list[0].ID)

	reviewers, err := ctx.ProfileRepo.ListByRoles(context.Background(), profiles.RoleFaculty, profiles.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, reviewers, 2)
}

func TestProfileSqliteRepository_Update(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	profile := CreateTestProfile(t, profiles.RoleStudent)
	require.NoError(t, ctx.ProfileRepo.Create(context.Background(), profile))

	profile.Role = profiles.RoleFaculty
	profile.Department = "Physics"
	require.NoError(t, ctx.ProfileRepo.Update(context.Background(), profile))

	updated, err := ctx.ProfileRepo.GetByID(context.Background(), profile.ID)
	require.NoError(t, err)
	assert.Equal(t, profiles.RoleFaculty, updated.Role)
	assert.Equal(t, "Physics", updated.Department)
}
