//go:build integration
// +build integration

package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/campuscred/campuscred/internal/domain/documents"
	"github.com/campuscred/campuscred/internal/domain/notifications"
	"github.com/campuscred/campuscred/internal/domain/profiles"
	"github.com/campuscred/campuscred/internal/pkg/apperr"
	"github.com/campuscred/campuscred/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notificationTypes(t *testing.T, services *TestServices, actor profiles.Actor) []string {
	t.Helper()

	list, err := services.NotificationService.List(context.Background(), actor, notifications.NewNotificationQuery())
	require.NoError(t, err)
	types := make([]string, len(list))
	for i, n := range list {
		types[i] = n.Type
	}
	return types
}

func TestVerificationService_RequestNotifiesReviewers(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	student := services.CreateActor(t, profiles.RoleStudent)
	faculty := services.CreateActor(t, profiles.RoleFaculty)
	admin := services.CreateActor(t, profiles.RoleAdmin)
	other := services.CreateActor(t, profiles.RoleStudent)

	document := services.UploadPDF(t, student, "Transcript")

	_, err := services.VerificationService.RequestVerification(ctx, other, document.ID)
	assert.True(t, errors.Is(err, apperr.ErrForbidden))

	pending, err := services.VerificationService.RequestVerification(ctx, student, document.ID)
	require.NoError(t, err)
	assert.Equal(t, documents.StatusPending, pending.Status)

	_, err = services.VerificationService.RequestVerification(ctx, student, document.ID)
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	assert.Equal(t, []string{notifications.TypeVerificationRequested}, notificationTypes(t, services, faculty))
	assert.Equal(t, []string{notifications.TypeVerificationRequested}, notificationTypes(t, services, admin))
	assert.Empty(t, notificationTypes(t, services, other))

	list, err := services.VerificationService.ListPending(ctx, faculty, documents.NewDocumentQuery())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, document.ID, list[0].ID)

	_, err = services.VerificationService.ListPending(ctx, student, documents.NewDocumentQuery())
	assert.True(t, errors.Is(err, apperr.ErrForbidden))
}

func TestVerificationService_Verify(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	student := services.CreateActor(t, profiles.RoleStudent)
	faculty := services.CreateActor(t, profiles.RoleFaculty)

	document := services.UploadPDF(t, student, "Transcript")

	_, err := services.VerificationService.Verify(ctx, faculty, document.ID)
	assert.True(t, errors.Is(err, apperr.ErrConflict), "only pending documents can be verified")

	_, err = services.VerificationService.RequestVerification(ctx, student, document.ID)
	require.NoError(t, err)

	_, err = services.VerificationService.Verify(ctx, student, document.ID)
	assert.True(t, errors.Is(err, apperr.ErrForbidden))

	verified, err := services.VerificationService.Verify(ctx, faculty, document.ID)
	require.NoError(t, err)
	assert.Equal(t, documents.StatusVerified, verified.Status)
	require.NotNil(t, verified.VerifiedBy)
	assert.Equal(t, faculty.ProfileID, *verified.VerifiedBy)
	assert.NotNil(t, verified.VerifiedAt)

	_, err = services.VerificationService.Verify(ctx, faculty, document.ID)
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	assert.Equal(t, []string{notifications.TypeDocumentVerified}, notificationTypes(t, services, student))
}

func TestVerificationService_ReviewerCannotVerifyOwnDocument(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	faculty := services.CreateActor(t, profiles.RoleFaculty)

	document := services.UploadPDF(t, faculty, "My own paper")
	_, err := services.VerificationService.RequestVerification(ctx, faculty, document.ID)
	require.NoError(t, err)

	_, err = services.VerificationService.Verify(ctx, faculty, document.ID)
	assert.True(t, errors.Is(err, apperr.ErrForbidden))
}

func TestVerificationService_RejectAndResubmit(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	student := services.CreateActor(t, profiles.RoleStudent)
	faculty := services.CreateActor(t, profiles.RoleFaculty)
	stranger := services.CreateActor(t, profiles.RoleStudent)

	document := services.UploadPDF(t, student, "Transcript")
	_, err := services.VerificationService.RequestVerification(ctx, student, document.ID)
	require.NoError(t, err)

	_, err = services.VerificationService.Reject(ctx, faculty, document.ID, "   ")
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))

	_, err = services.VerificationService.Reject(ctx, faculty, document.ID, strings.Repeat("x", 1001))
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))

	rejected, err := services.VerificationService.Reject(ctx, faculty, document.ID, "Scan is <i>blurry</i>")
	require.NoError(t, err)
	assert.Equal(t, documents.StatusRejected, rejected.Status)

	rejections, err := services.VerificationService.ListRejections(ctx, student, document.ID)
	require.NoError(t, err)
	require.Len(t, rejections, 1)
	assert.Equal(t, "Scan is blurry", rejections[0].Reason)
	assert.Equal(t, faculty.ProfileID, rejections[0].ReviewerID)

	_, err = services.VerificationService.ListRejections(ctx, stranger, document.ID)
	assert.True(t, errors.Is(err, apperr.ErrForbidden))

	assert.Equal(t, []string{notifications.TypeDocumentRejected}, notificationTypes(t, services, student))

	again, err := services.VerificationService.RequestVerification(ctx, student, document.ID)
	require.NoError(t, err)
	assert.Equal(t, documents.StatusPending, again.Status)
}
