package documents

import (
	"context"

	"github.com/campuscred/campuscred/internal/domain/profiles"
)

// DocumentService defines the owner facing document operations.
type DocumentService interface {
	// Upload sniffs, checksums and stores a new document owned by the actor.
	Upload(ctx context.Context, actor profiles.Actor, request *UploadRequest) (*Document, error)

	// List returns the actor's own documents matching the query.
	List(ctx context.Context, actor profiles.Actor, query *DocumentQuery) ([]*Document, error)

	// GetByID returns a document the actor may read.
	GetByID(ctx context.Context, actor profiles.Actor, documentID string) (*Document, error)

	// Update changes a document's metadata. Owner only.
	Update(ctx context.Context, actor profiles.Actor, documentID string, update *DocumentUpdate) (*Document, error)

	// Download returns a readable document with its content.
	Download(ctx context.Context, actor profiles.Actor, documentID string) (*Document, []byte, error)

	// DeleteByID removes a document, its stored object and everything shared from it.
	DeleteByID(ctx context.Context, actor profiles.Actor, documentID string) error
}

// VerificationService defines the review workflow.
type VerificationService interface {
	// RequestVerification moves an unverified or rejected document to pending. Owner only.
	RequestVerification(ctx context.Context, actor profiles.Actor, documentID string) (*Document, error)

	// ListPending returns documents awaiting review. Faculty and admin only.
	ListPending(ctx context.Context, actor profiles.Actor, query *DocumentQuery) ([]*Document, error)

	// Verify marks a pending document as verified.
	Verify(ctx context.Context, actor profiles.Actor, documentID string) (*Document, error)

	// Reject marks a pending document as rejected and records the reason.
	Reject(ctx context.Context, actor profiles.Actor, documentID, reason string) (*Document, error)

	// ListRejections returns the rejection history of a document.
	ListRejections(ctx context.Context, actor profiles.Actor, documentID string) ([]*Rejection, error)
}

// DocumentRepository defines the interface for Document-related operations
type DocumentRepository interface {
	// Create adds a new Document to the database
	Create(ctx context.Context, document *Document) error
	// List lists Documents with optional filter
	List(ctx context.Context, query *DocumentQuery) ([]*Document, error)
	// GetByID retrieves a Document by ID
	GetByID(ctx context.Context, documentID string) (*Document, error)
	// GetByIDs retrieves the Documents with the given IDs in no particular order
	GetByIDs(ctx context.Context, documentIDs []string) ([]*Document, error)
	// UpdateMetadata writes title, description, category, visibility and updated_at only.
	// Status and verification fields are left to TransitionStatus.
	UpdateMetadata(ctx context.Context, document *Document) error
	// TransitionStatus updates a Document only if its status is still one of from.
	// It returns false when no row matched.
	TransitionStatus(ctx context.Context, document *Document, from ...string) (bool, error)
	// DeleteByID deletes a Document by ID
	DeleteByID(ctx context.Context, documentID string) error
}

// RejectionRepository stores rejection history
type RejectionRepository interface {
	Create(ctx context.Context, rejection *Rejection) error
	ListByDocumentID(ctx context.Context, documentID string) ([]*Rejection, error)
	DeleteByDocumentID(ctx context.Context, documentID string) error
}
