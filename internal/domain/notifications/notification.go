package notifications

import (
	"time"

	"github.com/campuscred/campuscred/internal/pkg/validators"
)

// Notification types
const (
	TypeVerificationRequested = "verification_requested"
	TypeDocumentVerified      = "document_verified"
	TypeDocumentRejected      = "document_rejected"
	TypeShareAccessed         = "share_accessed"
	TypeAnnouncement          = "announcement"
)

// Notification entity
type Notification struct {
	ID        string    `validate:"required,uuid4"`
	UserID    string    `validate:"required,uuid4"`
	Type      string    `validate:"required,oneof=verification_requested document_verified document_rejected share_accessed announcement"`
	Title     string    `validate:"required,min=1,max=255"`
	Message   string    `validate:"max=2000"`
	Link      string    `validate:"max=1024"`
	IsRead    bool
	CreatedAt time.Time `validate:"required"`
}

// Validate for validating Notification struct
func (n *Notification) Validate() error {
	return validators.Struct(n)
}

// CreateRequest is an admin authored notification
type CreateRequest struct {
	UserID  string `validate:"required,uuid4"`
	Type    string `validate:"required,oneof=verification_requested document_verified document_rejected share_accessed announcement"`
	Title   string `validate:"required,min=1,max=255"`
	Message string `validate:"max=2000"`
	Link    string `validate:"max=1024"`
}

// Validate for validating CreateRequest struct
func (r *CreateRequest) Validate() error {
	return validators.Struct(r)
}

// NotificationQuery filters a user's notifications
type NotificationQuery struct {
	UnreadOnly bool
	Limit      int `validate:"omitempty,gte=1,lte=100"`
	Offset     int `validate:"omitempty,gte=0"`
}

// NewNotificationQuery returns a query with the default page size
func NewNotificationQuery() *NotificationQuery {
	return &NotificationQuery{Limit: 50}
}

// Validate for validating NotificationQuery struct
func (q *NotificationQuery) Validate() error {
	return validators.Struct(q)
}
