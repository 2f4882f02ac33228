package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campuscred/campuscred/internal/domain/notifications"
	"github.com/campuscred/campuscred/internal/domain/profiles"
	"github.com/campuscred/campuscred/internal/pkg/apperr"
	"github.com/campuscred/campuscred/internal/pkg/logger"
	"github.com/campuscred/campuscred/internal/pkg/sanitize"

	"github.com/google/uuid"
)

// notificationService implements the NotificationService interface
type notificationService struct {
	notificationRepo notifications.NotificationRepository
	logger           logger.Logger
}

// NewNotificationService creates a new instance of NotificationService
func NewNotificationService(notificationRepo notifications.NotificationRepository, logger logger.Logger) (notifications.NotificationService, error) {
	return &notificationService{
		notificationRepo: notificationRepo,
		logger:           logger,
	}, nil
}

// Notify stores a notification for userID on behalf of the system
func (s *notificationService) Notify(ctx context.Context, userID, notificationType, title, message, link string) error {
	_, err := s.create(ctx, &notifications.CreateRequest{
		UserID:  userID,
		Type:    notificationType,
		Title:   title,
		Message: message,
		Link:    link,
	})
	return err
}

func (s *notificationService) Create(ctx context.Context, actor profiles.Actor, request *notifications.CreateRequest) (*notifications.Notification, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("creating notifications requires admin: %w", apperr.ErrForbidden)
	}
	request.Title = sanitize.Text(request.Title)
	request.Message = sanitize.Text(request.Message)
	return s.create(ctx, request)
}

func (s *notificationService) create(ctx context.Context, request *notifications.CreateRequest) (*notifications.Notification, error) {
	if err := request.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrInvalidInput, err)
	}

	notification := &notifications.Notification{
		ID:        uuid.NewString(),
		UserID:    request.UserID,
		Type:      request.Type,
		Title:     request.Title,
		Message:   request.Message,
		Link:      request.Link,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

func (s *notificationService) List(ctx context.Context, actor profiles.Actor, query *notifications.NotificationQuery) ([]*notifications.Notification, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrInvalidInput, err)
	}
	return s.notificationRepo.ListByUserID(ctx, actor.ProfileID, query)
}

func (s *notificationService) UnreadCount(ctx context.Context, actor profiles.Actor) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, actor.ProfileID)
}

func (s *notificationService) MarkRead(ctx context.Context, actor profiles.Actor, notificationID string) error {
	if _, err := s.owned(ctx, actor, notificationID); err != nil {
		return err
	}
	return s.notificationRepo.MarkRead(ctx, notificationID)
}

func (s *notificationService) MarkAllRead(ctx context.Context, actor profiles.Actor) (int64, error) {
	return s.notificationRepo.MarkAllRead(ctx, actor.ProfileID)
}

func (s *notificationService) DeleteByID(ctx context.Context, actor profiles.Actor, notificationID string) error {
	if _, err := s.owned(ctx, actor, notificationID); err != nil {
		return err
	}
	return s.notificationRepo.DeleteByID(ctx, notificationID)
}

// owned hides other users' notifications behind ErrNotFound
func (s *notificationService) owned(ctx context.Context, actor profiles.Actor, notificationID string) (*notifications.Notification, error) {
	notification, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if notification.UserID != actor.ProfileID {
		return nil, fmt.Errorf("notification %s: %w", notificationID, apperr.ErrNotFound)
	}
	return notification, nil
}

// notifyQuietly sends a notification and only logs failures, so a failed
// notification never undoes the action that triggered it
func notifyQuietly(ctx context.Context, notifier notifications.Notifier, log logger.Logger, userID, notificationType, title, message, link string) {
	if err := notifier.Notify(ctx, userID, notificationType, title, message, link); err != nil && !errors.Is(err, context.Canceled) {
		log.Warn("Failed to notify ", userID, " (", notificationType, "): ", err)
	}
}
