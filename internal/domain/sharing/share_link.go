package sharing

import (
	"errors"
	"time"

	"github.com/campuscred/campuscred/internal/pkg/validators"
)

// Access sources
const (
	SourceLink = "link"
	SourceQR   = "qr"
)

var (
	// ErrLinkRevoked is returned for a link its owner revoked
	ErrLinkRevoked = errors.New("share link has been revoked")

	// ErrLinkExpired is returned once ExpiresAt has passed
	ErrLinkExpired = errors.New("share link has expired")

	// ErrLinkExhausted is returned once AccessCount reached MaxAccesses
	ErrLinkExhausted = errors.New("share link has reached its access limit")
)

// ShareLink grants unauthenticated read access to one document
type ShareLink struct {
	ID             string     `validate:"required,uuid4"`
	DocumentID     string     `validate:"required,uuid4"`
	OwnerID        string     `validate:"required,uuid4"`
	Token          string     `validate:"required,min=32,max=128"`
	ExpiresAt      *time.Time `validate:"omitempty"`
	MaxAccesses    *int       `validate:"omitempty,min=1"`
	AccessCount    int        `validate:"min=0"`
	LastAccessedAt *time.Time
	Revoked        bool
	CreatedAt      time.Time `validate:"required"`
}

// Validate for validating ShareLink struct
func (l *ShareLink) Validate() error {
	return validators.Struct(l)
}

// Usable reports why the link cannot be followed at now, or nil if it can
func (l *ShareLink) Usable(now time.Time) error {
	switch {
	case l.Revoked:
		return ErrLinkRevoked
	case l.ExpiresAt != nil && !now.Before(*l.ExpiresAt):
		return ErrLinkExpired
	case l.MaxAccesses != nil && l.AccessCount >= *l.MaxAccesses:
		return ErrLinkExhausted
	}
	return nil
}

// CreateShareLinkRequest carries the optional limits of a new link
type CreateShareLinkRequest struct {
	ExpiresInHours *int `validate:"omitempty,min=1,max=8760"`
	MaxAccesses    *int `validate:"omitempty,min=1,max=100000"`
}

// Validate for validating CreateShareLinkRequest struct
func (r *CreateShareLinkRequest) Validate() error {
	return validators.Struct(r)
}
