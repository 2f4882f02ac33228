package notifications

import (
	"context"

	"github.com/campuscred/campuscred/internal/domain/profiles"
)

// Notifier delivers system generated notifications without an authorization check
type Notifier interface {
	Notify(ctx context.Context, userID, notificationType, title, message, link string) error
}

// NotificationService defines the inbox operations of a signed in user.
type NotificationService interface {
	Notifier

	// Create stores an admin authored notification.
	Create(ctx context.Context, actor profiles.Actor, request *CreateRequest) (*Notification, error)

	// List returns the actor's notifications, newest first.
	List(ctx context.Context, actor profiles.Actor, query *NotificationQuery) ([]*Notification, error)

	// UnreadCount returns how many of the actor's notifications are unread.
	UnreadCount(ctx context.Context, actor profiles.Actor) (int64, error)

	// MarkRead marks one of the actor's notifications as read.
	MarkRead(ctx context.Context, actor profiles.Actor, notificationID string) error

	// MarkAllRead marks every notification of the actor as read and returns how many changed.
	MarkAllRead(ctx context.Context, actor profiles.Actor) (int64, error)

	// DeleteByID removes one of the actor's notifications.
	DeleteByID(ctx context.Context, actor profiles.Actor, notificationID string) error
}

// NotificationRepository defines the interface for Notification-related operations
type NotificationRepository interface {
	Create(ctx context.Context, notification *Notification) error
	GetByID(ctx context.Context, notificationID string) (*Notification, error)
	ListByUserID(ctx context.Context, userID string, query *NotificationQuery) ([]*Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	DeleteByID(ctx context.Context, notificationID string) error
}
