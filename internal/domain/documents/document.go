package documents

import (
	"time"

	"github.com/campuscred/campuscred/internal/pkg/validators"
)

// Categories
const (
	CategoryCertificate = "certificate"
	CategoryTranscript  = "transcript"
	CategoryResume      = "resume"
	CategoryOther       = "other"
)

// Visibility
const (
	VisibilityPrivate = "private"
	VisibilityPublic  = "public"
)

// Verification status
const (
	StatusUnverified = "unverified"
	StatusPending    = "pending"
	StatusVerified   = "verified"
	StatusRejected   = "rejected"
)

// Document entity
type Document struct {
	ID          string     `validate:"required,uuid4"`
	OwnerID     string     `validate:"required,uuid4"`
	Title       string     `validate:"required,min=1,max=255"`
	Description string     `validate:"max=2000"`
	Category    string     `validate:"required,oneof=certificate transcript resume other"`
	Visibility  string     `validate:"required,oneof=private public"`
	Status      string     `validate:"required,oneof=unverified pending verified rejected"`
	FileName    string     `validate:"required,min=1,max=255"`
	ContentType string     `validate:"required,max=255"`
	Size        int64      `validate:"required,min=1"`
	Checksum    string     `validate:"required,len=64,hexadecimal"`
	StoragePath string     `validate:"required,max=1024"`
	VerifiedBy  *string    `validate:"omitempty,uuid4"`
	VerifiedAt  *time.Time `validate:"required_with=VerifiedBy"`
	CreatedAt   time.Time  `validate:"required"`
	UpdatedAt   time.Time  `validate:"required"`
}

// Validate for validating Document struct
func (d *Document) Validate() error {
	return validators.Struct(d)
}

// IsPubliclyAttested reports whether anyone may read the document without a share link
func (d *Document) IsPubliclyAttested() bool {
	return d.Visibility == VisibilityPublic && d.Status == StatusVerified
}

// CanRequestVerification reports whether the owner may submit the document for review
func (d *Document) CanRequestVerification() bool {
	return d.Status == StatusUnverified || d.Status == StatusRejected
}

// DocumentUpdate holds the editable metadata. Nil fields are left unchanged.
type DocumentUpdate struct {
	Title       *string `validate:"omitempty,min=1,max=255"`
	Description *string `validate:"omitempty,max=2000"`
	Category    *string `validate:"omitempty,oneof=certificate transcript resume other"`
	Visibility  *string `validate:"omitempty,oneof=private public"`
}

// Validate for validating DocumentUpdate struct
func (u *DocumentUpdate) Validate() error {
	return validators.Struct(u)
}

// UploadRequest carries a new document's metadata and content
type UploadRequest struct {
	Title       string `validate:"required,min=1,max=255"`
	Description string `validate:"max=2000"`
	Category    string `validate:"required,oneof=certificate transcript resume other"`
	Visibility  string `validate:"required,oneof=private public"`
	FileName    string `validate:"required,min=1,max=255"`
	Content     []byte `validate:"required,min=1"`
}

// Validate for validating UploadRequest struct
func (r *UploadRequest) Validate() error {
	return validators.Struct(r)
}

// Rejection records why a reviewer rejected a document
type Rejection struct {
	ID         string    `validate:"required,uuid4"`
	DocumentID string    `validate:"required,uuid4"`
	ReviewerID string    `validate:"required,uuid4"`
	Reason     string    `validate:"required,min=1,max=1000"`
	CreatedAt  time.Time `validate:"required"`
}

// Validate for validating Rejection struct
func (r *Rejection) Validate() error {
	return validators.Struct(r)
}
