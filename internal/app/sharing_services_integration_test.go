//go:build integration
// +build integration

package app

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/campuscred/campuscred/internal/domain/notifications"
	"github.com/campuscred/campuscred/internal/domain/profiles"
	"github.com/campuscred/campuscred/internal/domain/sharing"
	"github.com/campuscred/campuscred/internal/pkg/apperr"
	"github.com/campuscred/campuscred/internal/pkg/config"
	"github.com/campuscred/campuscred/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareLinkService_CreateAndAccess(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	owner := services.CreateActor(t, profiles.RoleStudent)
	stranger := services.CreateActor(t, profiles.RoleStudent)
	document := services.UploadPDF(t, owner, "Transcript")

	_, err := services.ShareLinkService.Create(ctx, stranger, document.ID, &sharing.CreateShareLinkRequest{})
	assert.True(t, errors.Is(err, apperr.ErrForbidden))

	hours := 24
	link, err := services.ShareLinkService.Create(ctx, owner, document.ID, &sharing.CreateShareLinkRequest{ExpiresInHours: &hours})
	require.NoError(t, err)
	assert.Len(t, link.Token, 43)
	require.NotNil(t, link.ExpiresAt)

	shared, err := services.ShareLinkService.Access(ctx, link.Token, sharing.SourceLink)
	require.NoError(t, err)
	assert.Equal(t, document.ID, shared.Document.ID)
	assert.Equal(t, owner.ProfileID, shared.Owner.ID)
	assert.Equal(t, 1, shared.ShareLink.AccessCount)

	_, content, err := services.ShareLinkService.Download(ctx, link.Token, sharing.SourceLink)
	require.NoError(t, err)
	assert.Equal(t, testutil.PDFContent, content)

	stored, err := services.DBContext.ShareLinkRepo.GetByID(ctx, link.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.AccessCount)

	owned, err := services.NotificationService.List(ctx, owner, notifications.NewNotificationQuery())
	require.NoError(t, err)
	require.Len(t, owned, 1, "only the first access notifies")
	assert.Equal(t, notifications.TypeShareAccessed, owned[0].Type)

	_, err = services.ShareLinkService.Access(ctx, "no-such-token", sharing.SourceLink)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestShareLinkService_RevokeAndLimits(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	owner := services.CreateActor(t, profiles.RoleStudent)
	stranger := services.CreateActor(t, profiles.RoleStudent)
	document := services.UploadPDF(t, owner, "Transcript")

	one := 1
	limited, err := services.ShareLinkService.Create(ctx, owner, document.ID, &sharing.CreateShareLinkRequest{MaxAccesses: &one})
	require.NoError(t, err)

	_, err = services.ShareLinkService.Access(ctx, limited.Token, "")
	require.NoError(t, err)
	_, err = services.ShareLinkService.Access(ctx, limited.Token, "")
	assert.True(t, errors.Is(err, apperr.ErrForbidden))
	assert.True(t, errors.Is(err, sharing.ErrLinkExhausted))

	open, err := services.ShareLinkService.Create(ctx, owner, document.ID, &sharing.CreateShareLinkRequest{})
	require.NoError(t, err)

	_, err = services.ShareLinkService.Revoke(ctx, stranger, open.ID)
	assert.True(t, errors.Is(err, apperr.ErrForbidden))

	revoked, err := services.ShareLinkService.Revoke(ctx, owner, open.ID)
	require.NoError(t, err)
	assert.True(t, revoked.Revoked)

	_, err = services.ShareLinkService.Access(ctx, open.Token, "")
	assert.True(t, errors.Is(err, sharing.ErrLinkRevoked))

	links, err := services.ShareLinkService.ListByDocument(ctx, owner, document.ID)
	require.NoError(t, err)
	assert.Len(t, links, 2)
}

func TestShareLinkService_ConcurrentAccessHonoursCap(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	owner := services.CreateActor(t, profiles.RoleStudent)
	document := services.UploadPDF(t, owner, "Transcript")

	limit := 3
	link, err := services.ShareLinkService.Create(ctx, owner, document.ID, &sharing.CreateShareLinkRequest{MaxAccesses: &limit})
	require.NoError(t, err)

	var granted int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := services.ShareLinkService.Access(ctx, link.Token, sharing.SourceLink); err == nil {
				atomic.AddInt32(&granted, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(limit), granted)
	stored, err := services.DBContext.ShareLinkRepo.GetByID(ctx, link.ID)
	require.NoError(t, err)
	assert.Equal(t, limit, stored.AccessCount)
}

func TestShareLinkService_ConcurrentFirstAccessNotifiesOnce(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	owner := services.CreateActor(t, profiles.RoleStudent)
	document := services.UploadPDF(t, owner, "Transcript")

	link, err := services.ShareLinkService.Create(ctx, owner, document.ID, &sharing.CreateShareLinkRequest{})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := services.ShareLinkService.Access(ctx, link.Token, sharing.SourceLink)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	owned, err := services.NotificationService.List(ctx, owner, notifications.NewNotificationQuery())
	require.NoError(t, err)
	assert.Len(t, owned, 1)
}

// accessingRepository runs access once right after a link is loaded
type accessingRepository struct {
	sharing.ShareLinkRepository
	once   sync.Once
	access func()
}

func (r *accessingRepository) GetByID(ctx context.Context, shareLinkID string) (*sharing.ShareLink, error) {
	link, err := r.ShareLinkRepository.GetByID(ctx, shareLinkID)
	r.once.Do(r.access)
	return link, err
}

func TestShareLinkService_RevokeKeepsConcurrentAccess(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	owner := services.CreateActor(t, profiles.RoleStudent)
	document := services.UploadPDF(t, owner, "Transcript")

	link, err := services.ShareLinkService.Create(ctx, owner, document.ID, &sharing.CreateShareLinkRequest{})
	require.NoError(t, err)

	repo := &accessingRepository{
		ShareLinkRepository: services.DBContext.ShareLinkRepo,
		access: func() {
			_, err := services.ShareLinkService.Access(ctx, link.Token, sharing.SourceLink)
			require.NoError(t, err)
		},
	}
	shareLinkService, err := NewShareLinkService(services.DBContext.DocumentRepo, services.DBContext.ProfileRepo,
		repo, services.DBContext.QRCodeRepo, services.Connector, services.NotificationService,
		testutil.SetupTestLogger(t))
	require.NoError(t, err)

	revoked, err := shareLinkService.Revoke(ctx, owner, link.ID)
	require.NoError(t, err)
	assert.True(t, revoked.Revoked)
	assert.Equal(t, 1, revoked.AccessCount)

	stored, err := services.DBContext.ShareLinkRepo.GetByID(ctx, link.ID)
	require.NoError(t, err)
	assert.True(t, stored.Revoked)
	assert.Equal(t, 1, stored.AccessCount)
	assert.NotNil(t, stored.LastAccessedAt)
}

func TestQRCodeService_CreateAndScan(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	owner := services.CreateActor(t, profiles.RoleStudent)
	stranger := services.CreateActor(t, profiles.RoleStudent)
	document := services.UploadPDF(t, owner, "Transcript")

	qr, err := services.QRCodeService.Create(ctx, owner, document.ID, nil)
	require.NoError(t, err)

	link, err := services.DBContext.ShareLinkRepo.GetByID(ctx, qr.ShareLinkID)
	require.NoError(t, err)
	assert.Equal(t, TestAPIURL+"/share/"+link.Token+"?src=qr", qr.TargetURL)
	assert.Equal(t, QRCodeStoragePath(owner.ProfileID, qr.ID), qr.StoragePath)

	image, err := services.QRCodeService.GetImage(ctx, owner, qr.ID)
	require.NoError(t, err)
	decoded, err := png.Decode(bytes.NewReader(image))
	require.NoError(t, err)
	assert.Equal(t, sharing.QRCodeSize, decoded.Bounds().Dx())

	_, err = services.QRCodeService.GetByID(ctx, stranger, qr.ID)
	assert.True(t, errors.Is(err, apperr.ErrForbidden))

	_, err = services.QRCodeService.Create(ctx, owner, document.ID, &qr.ShareLinkID)
	assert.True(t, errors.Is(err, apperr.ErrConflict), "one QR code per share link")

	_, err = services.ShareLinkService.Access(ctx, link.Token, sharing.SourceQR)
	require.NoError(t, err)
	_, err = services.ShareLinkService.Access(ctx, link.Token, sharing.SourceLink)
	require.NoError(t, err)

	scanned, err := services.QRCodeService.GetByID(ctx, owner, qr.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, scanned.ScanCount)

	list, err := services.QRCodeService.ListByDocument(ctx, owner, document.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestQRCodeService_ExistingLinkOfAnotherDocument(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	owner := services.CreateActor(t, profiles.RoleStudent)
	first := services.UploadPDF(t, owner, "First")
	second := services.UploadPDF(t, owner, "Second")

	link, err := services.ShareLinkService.Create(ctx, owner, first.ID, &sharing.CreateShareLinkRequest{})
	require.NoError(t, err)

	_, err = services.QRCodeService.Create(ctx, owner, second.ID, &link.ID)
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))

	qr, err := services.QRCodeService.Create(ctx, owner, first.ID, &link.ID)
	require.NoError(t, err)
	assert.Equal(t, link.ID, qr.ShareLinkID)
}
