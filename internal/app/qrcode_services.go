package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/campuscred/campuscred/internal/domain/documents"
	"github.com/campuscred/campuscred/internal/domain/profiles"
	"github.com/campuscred/campuscred/internal/domain/sharing"
	"github.com/campuscred/campuscred/internal/domain/storage"
	"github.com/campuscred/campuscred/internal/pkg/apperr"
	"github.com/campuscred/campuscred/internal/pkg/logger"

	"github.com/google/uuid"
)

// qrCodeService implements the QRCodeService interface
type qrCodeService struct {
	documentRepo     documents.DocumentRepository
	shareLinkRepo    sharing.ShareLinkRepository
	qrCodeRepo       sharing.QRCodeRepository
	shareLinkService sharing.ShareLinkService
	renderer         sharing.QRRenderer
	connector        storage.ObjectConnector
	apiURL           string
	logger           logger.Logger
}

// NewQRCodeService creates a new instance of QRCodeService. QR codes point at
// apiURL + "/share/<token>?src=qr".
func NewQRCodeService(
	documentRepo documents.DocumentRepository,
	shareLinkRepo sharing.ShareLinkRepository,
	qrCodeRepo sharing.QRCodeRepository,
	shareLinkService sharing.ShareLinkService,
	renderer sharing.QRRenderer,
	connector storage.ObjectConnector,
	apiURL string,
	logger logger.Logger,
) (sharing.QRCodeService, error) {
	return &qrCodeService{
		documentRepo:     documentRepo,
		shareLinkRepo:    shareLinkRepo,
		qrCodeRepo:       qrCodeRepo,
		shareLinkService: shareLinkService,
		renderer:         renderer,
		connector:        connector,
		apiURL:           strings.TrimRight(apiURL, "/"),
		logger:           logger,
	}, nil
}

// QRCodeStoragePath is the object key of a QR code image
func QRCodeStoragePath(ownerID, qrCodeID string) string {
	return fmt.Sprintf("qrcodes/%s/%s.png", ownerID, qrCodeID)
}

// Create renders a QR code for an existing share link of the document, or for
// a fresh unrestricted one when shareLinkID is nil
func (s *qrCodeService) Create(ctx context.Context, actor profiles.Actor, documentID string, shareLinkID *string) (*sharing.QRCode, error) {
	document, err := ownedDocument(ctx, s.documentRepo, actor, documentID)
	if err != nil {
		return nil, err
	}

	link, err := s.resolveLink(ctx, actor, document, shareLinkID)
	if err != nil {
		return nil, err
	}

	if _, err := s.qrCodeRepo.GetByShareLinkID(ctx, link.ID); err == nil {
		return nil, fmt.Errorf("share link %s already has a QR code: %w", link.ID, apperr.ErrConflict)
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	qrCode := &sharing.QRCode{
		ID:          uuid.NewString(),
		ShareLinkID: link.ID,
		DocumentID:  document.ID,
		OwnerID:     document.OwnerID,
		TargetURL:   s.apiURL + "/share/" + link.Token + "?src=" + sharing.SourceQR,
		CreatedAt:   time.Now().UTC(),
	}
	qrCode.StoragePath = QRCodeStoragePath(qrCode.OwnerID, qrCode.ID)

	image, err := s.renderer.Render(qrCode.TargetURL, sharing.QRCodeSize)
	if err != nil {
		return nil, err
	}
	if err := s.connector.Upload(ctx, qrCode.StoragePath, "image/png", image); err != nil {
		return nil, fmt.Errorf("failed to store QR image: %w", err)
	}
	if err := s.qrCodeRepo.Create(ctx, qrCode); err != nil {
		if delErr := s.connector.Delete(ctx, qrCode.StoragePath); delErr != nil {
			s.logger.Error("Failed to remove orphaned QR image ", qrCode.StoragePath, ": ", delErr)
		}
		return nil, err
	}

	s.logger.Info("Created QR code ", qrCode.ID, " for document ", documentID)
	return qrCode, nil
}

func (s *qrCodeService) resolveLink(ctx context.Context, actor profiles.Actor, document *documents.Document, shareLinkID *string) (*sharing.ShareLink, error) {
	if shareLinkID == nil || *shareLinkID == "" {
		return s.shareLinkService.Create(ctx, actor, document.ID, &sharing.CreateShareLinkRequest{})
	}

	link, err := s.shareLinkRepo.GetByID(ctx, *shareLinkID)
	if err != nil {
		return nil, err
	}
	if link.DocumentID != document.ID {
		return nil, fmt.Errorf("share link %s belongs to another document: %w", link.ID, apperr.ErrInvalidInput)
	}
	if err := link.Usable(time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrInvalidInput, err)
	}
	return link, nil
}

func (s *qrCodeService) GetByID(ctx context.Context, actor profiles.Actor, qrCodeID string) (*sharing.QRCode, error) {
	qrCode, err := s.qrCodeRepo.GetByID(ctx, qrCodeID)
	if err != nil {
		return nil, err
	}
	if qrCode.OwnerID != actor.ProfileID {
		return nil, fmt.Errorf("QR code %s is not yours: %w", qrCodeID, apperr.ErrForbidden)
	}
	return qrCode, nil
}

func (s *qrCodeService) GetImage(ctx context.Context, actor profiles.Actor, qrCodeID string) ([]byte, error) {
	qrCode, err := s.GetByID(ctx, actor, qrCodeID)
	if err != nil {
		return nil, err
	}
	image, err := s.connector.Download(ctx, qrCode.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch QR image: %w", err)
	}
	return image, nil
}

func (s *qrCodeService) ListByDocument(ctx context.Context, actor profiles.Actor, documentID string) ([]*sharing.QRCode, error) {
	if _, err := ownedDocument(ctx, s.documentRepo, actor, documentID); err != nil {
		return nil, err
	}
	return s.qrCodeRepo.ListByDocumentID(ctx, documentID)
}
