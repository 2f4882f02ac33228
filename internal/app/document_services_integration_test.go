//go:build integration
// +build integration

package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"testing"

	"github.com/campuscred/campuscred/internal/domain/documents"
	"github.com/campuscred/campuscred/internal/domain/profiles"
	"github.com/campuscred/campuscred/internal/pkg/apperr"
	"github.com/campuscred/campuscred/internal/pkg/config"
	"github.com/campuscred/campuscred/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentService_Upload(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	student := services.CreateActor(t, profiles.RoleStudent)

	document := services.UploadPDF(t, student, "Transcript <b>2024</b>")

	sum := sha256.Sum256(testutil.PDFContent)
	assert.Equal(t, hex.EncodeToString(sum[:]), document.Checksum)
	assert.Equal(t, "Transcript 2024", document.Title)
	assert.Equal(t, "application/pdf", document.ContentType)
	assert.Equal(t, documents.StatusUnverified, document.Status)
	assert.Equal(t, DocumentStoragePath(student.ProfileID, document.ID, "transcript.pdf"), document.StoragePath)

	stored, err := services.Connector.Download(context.Background(), document.StoragePath)
	require.NoError(t, err)
	assert.Equal(t, testutil.PDFContent, stored)
}

func TestDocumentService_UploadRejectsDisallowedType(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	student := services.CreateActor(t, profiles.RoleStudent)

	_, err := services.DocumentService.Upload(context.Background(), student, &documents.UploadRequest{
		Title:      "Binary",
		Category:   documents.CategoryOther,
		Visibility: documents.VisibilityPrivate,
		FileName:   "transcript.pdf",
		Content:    testutil.ELFContent,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))
}

func TestDocumentService_UploadRejectsOversizedFile(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	student := services.CreateActor(t, profiles.RoleStudent)

	content := append([]byte{}, testutil.PDFContent...)
	content = append(content, make([]byte, TestMaxFileSize)...)

	_, err := services.DocumentService.Upload(context.Background(), student, &documents.UploadRequest{
		Title:      "Huge",
		Category:   documents.CategoryOther,
		Visibility: documents.VisibilityPrivate,
		FileName:   "huge.pdf",
		Content:    content,
	})
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))
}

func TestDocumentService_ListOnlyOwn(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	alice := services.CreateActor(t, profiles.RoleStudent)
	bob := services.CreateActor(t, profiles.RoleStudent)

	services.UploadPDF(t, alice, "Alice 1")
	services.UploadPDF(t, alice, "Alice 2")
	services.UploadPDF(t, bob, "Bob 1")

	query := documents.NewDocumentQuery()
	query.OwnerID = bob.ProfileID
	list, err := services.DocumentService.List(context.Background(), alice, query)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	for _, d := range list {
		assert.Equal(t, alice.ProfileID, d.OwnerID)
	}
}

func TestDocumentService_AccessRules(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	owner := services.CreateActor(t, profiles.RoleStudent)
	stranger := services.CreateActor(t, profiles.RoleStudent)
	faculty := services.CreateActor(t, profiles.RoleFaculty)

	document := services.UploadPDF(t, owner, "Private transcript")

	_, err := services.DocumentService.GetByID(ctx, owner, document.ID)
	assert.NoError(t, err)
	_, err = services.DocumentService.GetByID(ctx, faculty, document.ID)
	assert.NoError(t, err)
	_, err = services.DocumentService.GetByID(ctx, stranger, document.ID)
	assert.True(t, errors.Is(err, apperr.ErrForbidden))

	public := documents.VisibilityPublic
	_, err = services.DocumentService.Update(ctx, stranger, document.ID, &documents.DocumentUpdate{Visibility: &public})
	assert.True(t, errors.Is(err, apperr.ErrForbidden))
	_, err = services.DocumentService.Update(ctx, owner, document.ID, &documents.DocumentUpdate{Visibility: &public})
	require.NoError(t, err)

	_, err = services.DocumentService.GetByID(ctx, stranger, document.ID)
	assert.True(t, errors.Is(err, apperr.ErrForbidden), "public but unverified stays hidden")

	_, err = services.VerificationService.RequestVerification(ctx, owner, document.ID)
	require.NoError(t, err)
	_, err = services.VerificationService.Verify(ctx, faculty, document.ID)
	require.NoError(t, err)

	_, content, err := services.DocumentService.Download(ctx, stranger, document.ID)
	require.NoError(t, err)
	assert.Equal(t, testutil.PDFContent, content)
}

func TestDocumentService_DeleteCascades(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	owner := services.CreateActor(t, profiles.RoleStudent)
	stranger := services.CreateActor(t, profiles.RoleStudent)

	document := services.UploadPDF(t, owner, "Transcript")
	qr, err := services.QRCodeService.Create(ctx, owner, document.ID, nil)
	require.NoError(t, err)

	err = services.DocumentService.DeleteByID(ctx, stranger, document.ID)
	assert.True(t, errors.Is(err, apperr.ErrForbidden))

	require.NoError(t, services.DocumentService.DeleteByID(ctx, owner, document.ID))

	_, err = services.DBContext.DocumentRepo.GetByID(ctx, document.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	links, err := services.DBContext.ShareLinkRepo.ListByDocumentID(ctx, document.ID)
	require.NoError(t, err)
	assert.Empty(t, links)
	_, err = services.DBContext.QRCodeRepo.GetByID(ctx, qr.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	_, err = services.Connector.Download(ctx, document.StoragePath)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	_, err = services.Connector.Download(ctx, qr.StoragePath)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestDocumentService_AdminCanDelete(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	owner := services.CreateActor(t, profiles.RoleStudent)
	admin := services.CreateActor(t, profiles.RoleAdmin)

	document := services.UploadPDF(t, owner, "Transcript")
	require.NoError(t, services.DocumentService.DeleteByID(context.Background(), admin, document.ID))
}

// reviewingRepository runs review once between the owner's read and write
type reviewingRepository struct {
	documents.DocumentRepository
	once   sync.Once
	review func()
}

func (r *reviewingRepository) GetByID(ctx context.Context, documentID string) (*documents.Document, error) {
	document, err := r.DocumentRepository.GetByID(ctx, documentID)
	r.once.Do(r.review)
	return document, err
}

func TestDocumentService_UpdateKeepsConcurrentVerification(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	student := services.CreateActor(t, profiles.RoleStudent)
	faculty := services.CreateActor(t, profiles.RoleFaculty)

	document := services.UploadPDF(t, student, "Transcript")
	_, err := services.VerificationService.RequestVerification(ctx, student, document.ID)
	require.NoError(t, err)

	repo := &reviewingRepository{
		DocumentRepository: services.DBContext.DocumentRepo,
		review: func() {
			_, err := services.VerificationService.Verify(ctx, faculty, document.ID)
			require.NoError(t, err)
		},
	}
	documentService, err := NewDocumentService(repo, services.DBContext.RejectionRepo,
		services.DBContext.ShareLinkRepo, services.DBContext.QRCodeRepo, services.Connector,
		TestMaxFileSize, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	title := "Transcript 2025"
	updated, err := documentService.Update(ctx, student, document.ID, &documents.DocumentUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, documents.StatusVerified, updated.Status)

	stored, err := services.DBContext.DocumentRepo.GetByID(ctx, document.ID)
	require.NoError(t, err)
	assert.Equal(t, title, stored.Title)
	assert.Equal(t, documents.StatusVerified, stored.Status)
	require.NotNil(t, stored.VerifiedBy)
	assert.Equal(t, faculty.ProfileID, *stored.VerifiedBy)
}

func TestDetectContentType(t *testing.T) {
	for name, tc := range map[string]struct {
		content []byte
		allowed bool
	}{
		"pdf":  {testutil.PDFContent, true},
		"png":  {testutil.PNGContent, true},
		"text": {[]byte("plain notes\n"), true},
		"elf":  {testutil.ELFContent, false},
	} {
		t.Run(name, func(t *testing.T) {
			_, ok := DetectContentType(tc.content)
			assert.Equal(t, tc.allowed, ok)
		})
	}
}
