package persistence

import (
	"context"
	"fmt"

	"github.com/campuscred/campuscred/internal/domain/notifications"
	"github.com/campuscred/campuscred/internal/infrastructure/persistence/models"
	"github.com/campuscred/campuscred/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormNotificationRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormNotificationRepository creates a new GORM-based NotificationRepository implementation
func NewGormNotificationRepository(db *gorm.DB, logger logger.Logger) (notifications.NotificationRepository, error) {
	return &gormNotificationRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormNotificationRepository) Create(ctx context.Context, notification *notifications.Notification) error {
	if err := notification.Validate(); err != nil {
		return invalid(err)
	}

	model := &models.NotificationModel{}
	model.FromDomain(notification)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translate(err, "failed to create notification")
	}
	return nil
}

func (r *gormNotificationRepository) GetByID(ctx context.Context, notificationID string) (*notifications.Notification, error) {
	var model models.NotificationModel
	if err := r.db.WithContext(ctx).Where("id = ?", notificationID).First(&model).Error; err != nil {
		return nil, translate(err, "notification with ID %s", notificationID)
	}
	return model.ToDomain(), nil
}

func (r *gormNotificationRepository) ListByUserID(ctx context.Context, userID string, query *notifications.NotificationQuery) ([]*notifications.Notification, error) {
	if err := query.Validate(); err != nil {
		return nil, invalid(err)
	}

	var modelList []*models.NotificationModel
	dbQuery := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if query.UnreadOnly {
		dbQuery = dbQuery.Where("is_read = ?", false)
	}
	dbQuery = dbQuery.Order("created_at desc")

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}

	domainList := make([]*notifications.Notification, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormNotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	return count, nil
}

func (r *gormNotificationRepository) MarkRead(ctx context.Context, notificationID string) error {
	result := r.db.WithContext(ctx).
		Model(&models.NotificationModel{}).
		Where("id = ?", notificationID).
		Update("is_read", true)
	if result.Error != nil {
		return fmt.Errorf("failed to mark notification read: %w", result.Error)
	}
	return nil
}

func (r *gormNotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *gormNotificationRepository) DeleteByID(ctx context.Context, notificationID string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", notificationID).Delete(&models.NotificationModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}
