package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/campuscred/campuscred/internal/domain/documents"
	"github.com/campuscred/campuscred/internal/domain/profiles"
	"github.com/campuscred/campuscred/internal/domain/sharing"
	"github.com/campuscred/campuscred/internal/domain/storage"
	"github.com/campuscred/campuscred/internal/pkg/apperr"
	"github.com/campuscred/campuscred/internal/pkg/logger"
	"github.com/campuscred/campuscred/internal/pkg/metrics"
	"github.com/campuscred/campuscred/internal/pkg/sanitize"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// AllowedContentTypes lists the sniffed types accepted for upload
var AllowedContentTypes = []string{
	"application/pdf",
	"image/png",
	"image/jpeg",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/msword",
	"text/plain",
}

// documentService implements the DocumentService interface
type documentService struct {
	documentRepo  documents.DocumentRepository
	rejectionRepo documents.RejectionRepository
	shareLinkRepo sharing.ShareLinkRepository
	qrCodeRepo    sharing.QRCodeRepository
	connector     storage.ObjectConnector
	maxFileSize   int64
	logger        logger.Logger
}

// NewDocumentService creates a new instance of DocumentService
func NewDocumentService(
	documentRepo documents.DocumentRepository,
	rejectionRepo documents.RejectionRepository,
	shareLinkRepo sharing.ShareLinkRepository,
	qrCodeRepo sharing.QRCodeRepository,
	connector storage.ObjectConnector,
	maxFileSize int64,
	logger logger.Logger,
) (documents.DocumentService, error) {
	if maxFileSize <= 0 {
		return nil, fmt.Errorf("max file size must be positive")
	}
	return &documentService{
		documentRepo:  documentRepo,
		rejectionRepo: rejectionRepo,
		shareLinkRepo: shareLinkRepo,
		qrCodeRepo:    qrCodeRepo,
		connector:     connector,
		maxFileSize:   maxFileSize,
		logger:        logger,
	}, nil
}

// DocumentStoragePath is the object key of a document's file
func DocumentStoragePath(ownerID, documentID, fileName string) string {
	return fmt.Sprintf("documents/%s/%s/%s", ownerID, documentID, fileName)
}

// DetectContentType sniffs content and reports whether it may be uploaded
func DetectContentType(content []byte) (string, bool) {
	detected := mimetype.Detect(content)
	for _, allowed := range AllowedContentTypes {
		if detected.Is(allowed) {
			return detected.String(), true
		}
	}
	return detected.String(), false
}

// Upload stores the file and records an unverified document owned by actor
func (s *documentService) Upload(ctx context.Context, actor profiles.Actor, request *documents.UploadRequest) (*documents.Document, error) {
	request.Title = sanitize.Text(request.Title)
	request.Description = sanitize.Text(request.Description)
	request.FileName = sanitize.FileName(request.FileName)
	if request.Category == "" {
		request.Category = documents.CategoryOther
	}
	if request.Visibility == "" {
		request.Visibility = documents.VisibilityPrivate
	}
	if err := request.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrInvalidInput, err)
	}
	if int64(len(request.Content)) > s.maxFileSize {
		return nil, fmt.Errorf("file exceeds %d bytes: %w", s.maxFileSize, apperr.ErrInvalidInput)
	}

	contentType, ok := DetectContentType(request.Content)
	if !ok {
		return nil, fmt.Errorf("file type %s is not accepted: %w", contentType, apperr.ErrInvalidInput)
	}

	sum := sha256.Sum256(request.Content)
	now := time.Now().UTC()
	document := &documents.Document{
		ID:          uuid.NewString(),
		OwnerID:     actor.ProfileID,
		Title:       request.Title,
		Description: request.Description,
		Category:    request.Category,
		Visibility:  request.Visibility,
		Status:      documents.StatusUnverified,
		FileName:    request.FileName,
		ContentType: contentType,
		Size:        int64(len(request.Content)),
		Checksum:    hex.EncodeToString(sum[:]),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	document.StoragePath = DocumentStoragePath(document.OwnerID, document.ID, document.FileName)

	if err := document.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrInvalidInput, err)
	}

	if err := s.connector.Upload(ctx, document.StoragePath, contentType, request.Content); err != nil {
		return nil, fmt.Errorf("failed to store document file: %w", err)
	}
	if err := s.documentRepo.Create(ctx, document); err != nil {
		if delErr := s.connector.Delete(ctx, document.StoragePath); delErr != nil {
			s.logger.Error("Failed to remove orphaned object ", document.StoragePath, ": ", delErr)
		}
		return nil, err
	}

	metrics.DocumentsUploaded.WithLabelValues(document.Category).Inc()
	s.logger.Info("Uploaded document ", document.ID, " for ", actor.ProfileID)
	return document, nil
}

// List returns the caller's own documents
func (s *documentService) List(ctx context.Context, actor profiles.Actor, query *documents.DocumentQuery) ([]*documents.Document, error) {
	query.OwnerID = actor.ProfileID
	query.Title = sanitize.Text(query.Title)
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrInvalidInput, err)
	}
	return s.documentRepo.List(ctx, query)
}

func (s *documentService) GetByID(ctx context.Context, actor profiles.Actor, documentID string) (*documents.Document, error) {
	document, err := s.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if !canView(actor, document) {
		return nil, fmt.Errorf("document %s: %w", documentID, apperr.ErrForbidden)
	}
	return document, nil
}

func (s *documentService) Update(ctx context.Context, actor profiles.Actor, documentID string, update *documents.DocumentUpdate) (*documents.Document, error) {
	update.Title = sanitize.TextPtr(update.Title)
	update.Description = sanitize.TextPtr(update.Description)
	if err := update.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrInvalidInput, err)
	}

	document, err := ownedDocument(ctx, s.documentRepo, actor, documentID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		document.Title = *update.Title
	}
	if update.Description != nil {
		document.Description = *update.Description
	}
	if update.Category != nil {
		document.Category = *update.Category
	}
	if update.Visibility != nil {
		document.Visibility = *update.Visibility
	}
	document.UpdatedAt = time.Now().UTC()

	if err := s.documentRepo.UpdateMetadata(ctx, document); err != nil {
		return nil, err
	}
	return s.documentRepo.GetByID(ctx, documentID)
}

func (s *documentService) Download(ctx context.Context, actor profiles.Actor, documentID string) (*documents.Document, []byte, error) {
	document, err := s.GetByID(ctx, actor, documentID)
	if err != nil {
		return nil, nil, err
	}

	content, err := s.connector.Download(ctx, document.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch document file: %w", err)
	}
	return document, content, nil
}

// DeleteByID removes a document together with its share links, QR codes,
// rejection history and stored objects. Owner or admin only.
func (s *documentService) DeleteByID(ctx context.Context, actor profiles.Actor, documentID string) error {
	document, err := s.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		return err
	}
	if document.OwnerID != actor.ProfileID && !actor.IsAdmin() {
		return fmt.Errorf("document %s: %w", documentID, apperr.ErrForbidden)
	}

	qrCodes, err := s.qrCodeRepo.ListByDocumentID(ctx, documentID)
	if err != nil {
		return err
	}
	for _, qr := range qrCodes {
		if err := s.connector.Delete(ctx, qr.StoragePath); err != nil {
			s.logger.Warn("Failed to delete QR image ", qr.StoragePath, ": ", err)
		}
	}

	if err := s.qrCodeRepo.DeleteByDocumentID(ctx, documentID); err != nil {
		return err
	}
	if err := s.shareLinkRepo.DeleteByDocumentID(ctx, documentID); err != nil {
		return err
	}
	if err := s.rejectionRepo.DeleteByDocumentID(ctx, documentID); err != nil {
		return err
	}
	if err := s.connector.Delete(ctx, document.StoragePath); err != nil {
		return fmt.Errorf("failed to delete document file: %w", err)
	}
	if err := s.documentRepo.DeleteByID(ctx, documentID); err != nil {
		return err
	}

	s.logger.Info("Deleted document ", documentID, " by ", actor.ProfileID)
	return nil
}

// canView: owner, any reviewer, or anyone once the document is public and verified
func canView(actor profiles.Actor, document *documents.Document) bool {
	return document.OwnerID == actor.ProfileID || actor.IsReviewer() || document.IsPubliclyAttested()
}

func ownedDocument(ctx context.Context, repo documents.DocumentRepository, actor profiles.Actor, documentID string) (*documents.Document, error) {
	document, err := repo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if document.OwnerID != actor.ProfileID {
		return nil, fmt.Errorf("document %s is not yours: %w", documentID, apperr.ErrForbidden)
	}
	return document, nil
}
