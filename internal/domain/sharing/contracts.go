package sharing

import (
	"context"

	"github.com/campuscred/campuscred/internal/domain/documents"
	"github.com/campuscred/campuscred/internal/domain/profiles"
)

// ShareLinkService manages share links and anonymous access through them.
type ShareLinkService interface {
	// Create issues a new share link for a document. Owner only.
	Create(ctx context.Context, actor profiles.Actor, documentID string, request *CreateShareLinkRequest) (*ShareLink, error)

	// ListByDocument returns every link issued for a document. Owner only.
	ListByDocument(ctx context.Context, actor profiles.Actor, documentID string) ([]*ShareLink, error)

	// Revoke disables a link. Owner only.
	Revoke(ctx context.Context, actor profiles.Actor, shareLinkID string) (*ShareLink, error)

	// Access follows a link anonymously, recording the access.
	Access(ctx context.Context, token, source string) (*SharedDocument, error)

	// Download follows a link anonymously and returns the document content, recording the access.
	Download(ctx context.Context, token, source string) (*documents.Document, []byte, error)
}

// QRCodeService renders and serves QR codes for share links.
type QRCodeService interface {
	// Create renders a QR code for an existing share link of the document, or for a new one when shareLinkID is nil.
	Create(ctx context.Context, actor profiles.Actor, documentID string, shareLinkID *string) (*QRCode, error)

	// GetByID returns QR code metadata. Owner only.
	GetByID(ctx context.Context, actor profiles.Actor, qrCodeID string) (*QRCode, error)

	// GetImage returns the PNG image of a QR code. Owner only.
	GetImage(ctx context.Context, actor profiles.Actor, qrCodeID string) ([]byte, error)

	// ListByDocument returns the QR codes of a document. Owner only.
	ListByDocument(ctx context.Context, actor profiles.Actor, documentID string) ([]*QRCode, error)
}

// ShareLinkRepository defines the interface for ShareLink-related operations
type ShareLinkRepository interface {
	Create(ctx context.Context, link *ShareLink) error
	GetByID(ctx context.Context, shareLinkID string) (*ShareLink, error)
	GetByToken(ctx context.Context, token string) (*ShareLink, error)
	ListByDocumentID(ctx context.Context, documentID string) ([]*ShareLink, error)
	// Revoke sets only the revoked flag of a link
	Revoke(ctx context.Context, shareLinkID string) error
	// RecordAccess increments the access count unless the link is revoked, expired or at its limit.
	// It returns the number of this access, 1 for exactly one caller, or 0 when the increment was refused.
	RecordAccess(ctx context.Context, shareLinkID string) (int, error)
	DeleteByDocumentID(ctx context.Context, documentID string) error
}

// QRCodeRepository defines the interface for QRCode-related operations
type QRCodeRepository interface {
	Create(ctx context.Context, qrCode *QRCode) error
	GetByID(ctx context.Context, qrCodeID string) (*QRCode, error)
	GetByShareLinkID(ctx context.Context, shareLinkID string) (*QRCode, error)
	ListByDocumentID(ctx context.Context, documentID string) ([]*QRCode, error)
	IncrementScanCount(ctx context.Context, shareLinkID string) error
	DeleteByDocumentID(ctx context.Context, documentID string) error
}

// QRRenderer encodes content as a square PNG image of size pixels
type QRRenderer interface {
	Render(content string, size int) ([]byte, error)
}
