package app

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/campuscred/campuscred/internal/domain/documents"
	"github.com/campuscred/campuscred/internal/domain/notifications"
	"github.com/campuscred/campuscred/internal/domain/profiles"
	"github.com/campuscred/campuscred/internal/domain/sharing"
	"github.com/campuscred/campuscred/internal/domain/storage"
	"github.com/campuscred/campuscred/internal/pkg/apperr"
	"github.com/campuscred/campuscred/internal/pkg/logger"
	"github.com/campuscred/campuscred/internal/pkg/metrics"

	"github.com/google/uuid"
)

const shareTokenBytes = 32

// shareLinkService implements the ShareLinkService interface
type shareLinkService struct {
	documentRepo  documents.DocumentRepository
	profileRepo   profiles.ProfileRepository
	shareLinkRepo sharing.ShareLinkRepository
	qrCodeRepo    sharing.QRCodeRepository
	connector     storage.ObjectConnector
	notifier      notifications.Notifier
	logger        logger.Logger
}

// NewShareLinkService creates a new instance of ShareLinkService
func NewShareLinkService(
	documentRepo documents.DocumentRepository,
	profileRepo profiles.ProfileRepository,
	shareLinkRepo sharing.ShareLinkRepository,
	qrCodeRepo sharing.QRCodeRepository,
	connector storage.ObjectConnector,
	notifier notifications.Notifier,
	logger logger.Logger,
) (sharing.ShareLinkService, error) {
	return &shareLinkService{
		documentRepo:  documentRepo,
		profileRepo:   profileRepo,
		shareLinkRepo: shareLinkRepo,
		qrCodeRepo:    qrCodeRepo,
		connector:     connector,
		notifier:      notifier,
		logger:        logger,
	}, nil
}

// NewShareToken returns 32 random bytes, base64url encoded without padding
func NewShareToken() (string, error) {
	b := make([]byte, shareTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate share token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func (s *shareLinkService) Create(ctx context.Context, actor profiles.Actor, documentID string, request *sharing.CreateShareLinkRequest) (*sharing.ShareLink, error) {
	if err := request.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrInvalidInput, err)
	}
	document, err := ownedDocument(ctx, s.documentRepo, actor, documentID)
	if err != nil {
		return nil, err
	}

	token, err := NewShareToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	link := &sharing.ShareLink{
		ID:          uuid.NewString(),
		DocumentID:  document.ID,
		OwnerID:     document.OwnerID,
		Token:       token,
		MaxAccesses: request.MaxAccesses,
		CreatedAt:   now,
	}
	if request.ExpiresInHours != nil {
		expiresAt := now.Add(time.Duration(*request.ExpiresInHours) * time.Hour)
		link.ExpiresAt = &expiresAt
	}

	if err := s.shareLinkRepo.Create(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *shareLinkService) ListByDocument(ctx context.Context, actor profiles.Actor, documentID string) ([]*sharing.ShareLink, error) {
	if _, err := ownedDocument(ctx, s.documentRepo, actor, documentID); err != nil {
		return nil, err
	}
	return s.shareLinkRepo.ListByDocumentID(ctx, documentID)
}

func (s *shareLinkService) Revoke(ctx context.Context, actor profiles.Actor, shareLinkID string) (*sharing.ShareLink, error) {
	link, err := s.shareLinkRepo.GetByID(ctx, shareLinkID)
	if err != nil {
		return nil, err
	}
	if link.OwnerID != actor.ProfileID {
		return nil, fmt.Errorf("share link %s is not yours: %w", shareLinkID, apperr.ErrForbidden)
	}
	if link.Revoked {
		return link, nil
	}

	if err := s.shareLinkRepo.Revoke(ctx, shareLinkID); err != nil {
		return nil, err
	}
	s.logger.Info("Revoked share link ", shareLinkID)
	return s.shareLinkRepo.GetByID(ctx, shareLinkID)
}

// Access resolves a share token for an anonymous visitor and records the visit
func (s *shareLinkService) Access(ctx context.Context, token, source string) (*sharing.SharedDocument, error) {
	source = normalizeSource(source)

	link, err := s.record(ctx, token, source)
	if err != nil {
		return nil, err
	}

	document, err := s.documentRepo.GetByID(ctx, link.DocumentID)
	if err != nil {
		return nil, err
	}
	owner, err := s.profileRepo.GetByID(ctx, document.OwnerID)
	if err != nil {
		return nil, err
	}

	return &sharing.SharedDocument{
		Document:  document,
		Owner:     owner.Public(),
		ShareLink: link,
	}, nil
}

func (s *shareLinkService) Download(ctx context.Context, token, source string) (*documents.Document, []byte, error) {
	link, err := s.record(ctx, token, normalizeSource(source))
	if err != nil {
		return nil, nil, err
	}

	document, err := s.documentRepo.GetByID(ctx, link.DocumentID)
	if err != nil {
		return nil, nil, err
	}
	content, err := s.connector.Download(ctx, document.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch shared file: %w", err)
	}
	return document, content, nil
}

// record checks that the link is usable and counts one access atomically.
// The first access of a link notifies its owner.
func (s *shareLinkService) record(ctx context.Context, token, source string) (*sharing.ShareLink, error) {
	link, err := s.shareLinkRepo.GetByToken(ctx, token)
	if err != nil {
		metrics.ShareAccesses.WithLabelValues(source, "not_found").Inc()
		return nil, err
	}

	if err := link.Usable(time.Now().UTC()); err != nil {
		metrics.ShareAccesses.WithLabelValues(source, "refused").Inc()
		return nil, fmt.Errorf("%w: %w", apperr.ErrForbidden, err)
	}

	count, err := s.shareLinkRepo.RecordAccess(ctx, link.ID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		// lost a race against revocation, expiry or the access cap
		metrics.ShareAccesses.WithLabelValues(source, "refused").Inc()
		current, err := s.shareLinkRepo.GetByID(ctx, link.ID)
		if err != nil {
			return nil, err
		}
		reason := current.Usable(time.Now().UTC())
		if reason == nil {
			reason = sharing.ErrLinkExhausted
		}
		return nil, fmt.Errorf("%w: %w", apperr.ErrForbidden, reason)
	}

	if source == sharing.SourceQR {
		if err := s.qrCodeRepo.IncrementScanCount(ctx, link.ID); err != nil {
			s.logger.Warn("Failed to count QR scan for share link ", link.ID, ": ", err)
		}
	}

	first := count == 1
	link.AccessCount = count
	now := time.Now().UTC()
	link.LastAccessedAt = &now
	metrics.ShareAccesses.WithLabelValues(source, "ok").Inc()

	if first {
		notifyQuietly(ctx, s.notifier, s.logger, link.OwnerID, notifications.TypeShareAccessed,
			"Shared document opened", "Someone opened a document you shared", documentLink(link.DocumentID))
	}
	return link, nil
}

func normalizeSource(source string) string {
	if source == sharing.SourceQR {
		return sharing.SourceQR
	}
	return sharing.SourceLink
}
