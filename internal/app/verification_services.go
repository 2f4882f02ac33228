package app

import (
	"context"
	"fmt"
	"time"

	"github.com/campuscred/campuscred/internal/domain/documents"
	"github.com/campuscred/campuscred/internal/domain/notifications"
	"github.com/campuscred/campuscred/internal/domain/profiles"
	"github.com/campuscred/campuscred/internal/pkg/apperr"
	"github.com/campuscred/campuscred/internal/pkg/logger"
	"github.com/campuscred/campuscred/internal/pkg/metrics"
	"github.com/campuscred/campuscred/internal/pkg/sanitize"

	"github.com/google/uuid"
)

const maxRejectionReason = 1000

// verificationService implements the VerificationService interface
type verificationService struct {
	documentRepo  documents.DocumentRepository
	rejectionRepo documents.RejectionRepository
	profileRepo   profiles.ProfileRepository
	notifier      notifications.Notifier
	logger        logger.Logger
}

// NewVerificationService creates a new instance of VerificationService
func NewVerificationService(
	documentRepo documents.DocumentRepository,
	rejectionRepo documents.RejectionRepository,
	profileRepo profiles.ProfileRepository,
	notifier notifications.Notifier,
	logger logger.Logger,
) (documents.VerificationService, error) {
	return &verificationService{
		documentRepo:  documentRepo,
		rejectionRepo: rejectionRepo,
		profileRepo:   profileRepo,
		notifier:      notifier,
		logger:        logger,
	}, nil
}

func documentLink(documentID string) string {
	return "/documents/" + documentID
}

// RequestVerification queues an unverified or rejected document for review
// and tells every reviewer about it
func (s *verificationService) RequestVerification(ctx context.Context, actor profiles.Actor, documentID string) (*documents.Document, error) {
	document, err := ownedDocument(ctx, s.documentRepo, actor, documentID)
	if err != nil {
		return nil, err
	}
	if !document.CanRequestVerification() {
		return nil, fmt.Errorf("document is %s: %w", document.Status, apperr.ErrConflict)
	}

	document.Status = documents.StatusPending
	document.UpdatedAt = time.Now().UTC()
	moved, err := s.documentRepo.TransitionStatus(ctx, document, documents.StatusUnverified, documents.StatusRejected)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, fmt.Errorf("document status changed concurrently: %w", apperr.ErrConflict)
	}

	reviewers, err := s.profileRepo.ListByRoles(ctx, profiles.RoleFaculty, profiles.RoleAdmin)
	if err != nil {
		s.logger.Warn("Failed to list reviewers for document ", documentID, ": ", err)
	}
	for _, reviewer := range reviewers {
		if reviewer.ID == document.OwnerID {
			continue
		}
		notifyQuietly(ctx, s.notifier, s.logger, reviewer.ID, notifications.TypeVerificationRequested,
			"Verification requested", fmt.Sprintf("%q is waiting for review", document.Title), documentLink(document.ID))
	}

	s.logger.Info("Verification requested for document ", documentID)
	return document, nil
}

func (s *verificationService) ListPending(ctx context.Context, actor profiles.Actor, query *documents.DocumentQuery) ([]*documents.Document, error) {
	if !actor.IsReviewer() {
		return nil, fmt.Errorf("reviewing requires faculty or admin: %w", apperr.ErrForbidden)
	}
	query.OwnerID = ""
	query.Status = documents.StatusPending
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrInvalidInput, err)
	}
	return s.documentRepo.List(ctx, query)
}

func (s *verificationService) Verify(ctx context.Context, actor profiles.Actor, documentID string) (*documents.Document, error) {
	document, err := s.reviewable(ctx, actor, documentID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	reviewer := actor.ProfileID
	document.Status = documents.StatusVerified
	document.VerifiedBy = &reviewer
	document.VerifiedAt = &now
	document.UpdatedAt = now
	if err := s.transition(ctx, document); err != nil {
		return nil, err
	}

	metrics.VerificationDecisions.WithLabelValues(documents.StatusVerified).Inc()
	notifyQuietly(ctx, s.notifier, s.logger, document.OwnerID, notifications.TypeDocumentVerified,
		"Document verified", fmt.Sprintf("%q has been verified", document.Title), documentLink(document.ID))

	s.logger.Info("Document ", documentID, " verified by ", actor.ProfileID)
	return document, nil
}

func (s *verificationService) Reject(ctx context.Context, actor profiles.Actor, documentID, reason string) (*documents.Document, error) {
	reason = sanitize.Text(reason)
	if reason == "" {
		return nil, fmt.Errorf("a rejection reason is required: %w", apperr.ErrInvalidInput)
	}
	if len([]rune(reason)) > maxRejectionReason {
		return nil, fmt.Errorf("rejection reason exceeds %d characters: %w", maxRejectionReason, apperr.ErrInvalidInput)
	}

	document, err := s.reviewable(ctx, actor, documentID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	document.Status = documents.StatusRejected
	document.VerifiedBy = nil
	document.VerifiedAt = nil
	document.UpdatedAt = now
	if err := s.transition(ctx, document); err != nil {
		return nil, err
	}

	rejection := &documents.Rejection{
		ID:         uuid.NewString(),
		DocumentID: document.ID,
		ReviewerID: actor.ProfileID,
		Reason:     reason,
		CreatedAt:  now,
	}
	if err := s.rejectionRepo.Create(ctx, rejection); err != nil {
		return nil, err
	}

	metrics.VerificationDecisions.WithLabelValues(documents.StatusRejected).Inc()
	notifyQuietly(ctx, s.notifier, s.logger, document.OwnerID, notifications.TypeDocumentRejected,
		"Document rejected", fmt.Sprintf("%q was rejected: %s", document.Title, reason), documentLink(document.ID))

	s.logger.Info("Document ", documentID, " rejected by ", actor.ProfileID)
	return document, nil
}

func (s *verificationService) ListRejections(ctx context.Context, actor profiles.Actor, documentID string) ([]*documents.Rejection, error) {
	document, err := s.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if document.OwnerID != actor.ProfileID && !actor.IsReviewer() {
		return nil, fmt.Errorf("document %s: %w", documentID, apperr.ErrForbidden)
	}
	return s.rejectionRepo.ListByDocumentID(ctx, documentID)
}

// reviewable loads a pending document the actor may decide on
func (s *verificationService) reviewable(ctx context.Context, actor profiles.Actor, documentID string) (*documents.Document, error) {
	if !actor.IsReviewer() {
		return nil, fmt.Errorf("reviewing requires faculty or admin: %w", apperr.ErrForbidden)
	}

	document, err := s.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if document.OwnerID == actor.ProfileID {
		return nil, fmt.Errorf("reviewers cannot decide on their own documents: %w", apperr.ErrForbidden)
	}
	if document.Status != documents.StatusPending {
		return nil, fmt.Errorf("document is %s, not pending: %w", document.Status, apperr.ErrConflict)
	}
	return document, nil
}

func (s *verificationService) transition(ctx context.Context, document *documents.Document) error {
	moved, err := s.documentRepo.TransitionStatus(ctx, document, documents.StatusPending)
	if err != nil {
		return err
	}
	if !moved {
		return fmt.Errorf("document is no longer pending: %w", apperr.ErrConflict)
	}
	return nil
}
