package models

import (
	"time"

	"github.com/campuscred/campuscred/internal/domain/notifications"
)

// NotificationModel is the GORM database model for notifications
type NotificationModel struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	UserID    string    `gorm:"not null;index:idx_notifications_user_read;type:uuid"`
	Type      string    `gorm:"not null;type:varchar(50)"`
	Title     string    `gorm:"not null;type:varchar(255)"`
	Message   string    `gorm:"type:text"`
	Link      string    `gorm:"type:varchar(1024)"`
	IsRead    bool      `gorm:"not null;default:false;index:idx_notifications_user_read"`
	CreatedAt time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToDomain converts GORM model to domain entity
func (m *NotificationModel) ToDomain() *notifications.Notification {
	return &notifications.Notification{
		ID:        m.ID,
		UserID:    m.UserID,
		Type:      m.Type,
		Title:     m.Title,
		Message:   m.Message,
		Link:      m.Link,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *NotificationModel) FromDomain(n *notifications.Notification) {
	m.ID = n.ID
	m.UserID = n.UserID
	m.Type = n.Type
	m.Title = n.Title
	m.Message = n.Message
	m.Link = n.Link
	m.IsRead = n.IsRead
	m.CreatedAt = n.CreatedAt
}
