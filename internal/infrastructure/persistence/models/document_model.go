package models

import (
	"time"

	"github.com/campuscred/campuscred/internal/domain/documents"
)

// DocumentModel is the GORM database model for documents
type DocumentModel struct {
	ID          string     `gorm:"primaryKey;type:uuid"`
	OwnerID     string     `gorm:"not null;index;type:uuid"`
	Title       string     `gorm:"not null;type:varchar(255)"`
	Description string     `gorm:"type:text"`
	Category    string     `gorm:"not null;index;type:varchar(20)"`
	Visibility  string     `gorm:"not null;type:varchar(20)"`
	Status      string     `gorm:"not null;index;type:varchar(20)"`
	FileName    string     `gorm:"not null;type:varchar(255)"`
	ContentType string     `gorm:"not null;type:varchar(255)"`
	Size        int64      `gorm:"not null"`
	Checksum    string     `gorm:"not null;type:char(64)"`
	StoragePath string     `gorm:"not null;type:varchar(1024)"`
	VerifiedBy  *string    `gorm:"type:uuid"`
	VerifiedAt  *time.Time
	CreatedAt   time.Time  `gorm:"not null;index"`
	UpdatedAt   time.Time  `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (DocumentModel) TableName() string {
	return "documents"
}

// ToDomain converts GORM model to domain entity
func (m *DocumentModel) ToDomain() *documents.Document {
	return &documents.Document{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Title:       m.Title,
		Description: m.Description,
		Category:    m.Category,
		Visibility:  m.Visibility,
		Status:      m.Status,
		FileName:    m.FileName,
		ContentType: m.ContentType,
		Size:        m.Size,
		Checksum:    m.Checksum,
		StoragePath: m.StoragePath,
		VerifiedBy:  m.VerifiedBy,
		VerifiedAt:  m.VerifiedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *DocumentModel) FromDomain(d *documents.Document) {
	m.ID = d.ID
	m.OwnerID = d.OwnerID
	m.Title = d.Title
	m.Description = d.Description
	m.Category = d.Category
	m.Visibility = d.Visibility
	m.Status = d.Status
	m.FileName = d.FileName
	m.ContentType = d.ContentType
	m.Size = d.Size
	m.Checksum = d.Checksum
	m.StoragePath = d.StoragePath
	m.VerifiedBy = d.VerifiedBy
	m.VerifiedAt = d.VerifiedAt
	m.CreatedAt = d.CreatedAt
	m.UpdatedAt = d.UpdatedAt
}

// RejectionModel is the GORM database model for document rejections
type RejectionModel struct {
	ID         string    `gorm:"primaryKey;type:uuid"`
	DocumentID string    `gorm:"not null;index;type:uuid"`
	ReviewerID string    `gorm:"not null;type:uuid"`
	Reason     string    `gorm:"not null;type:text"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (RejectionModel) TableName() string {
	return "document_rejections"
}

// ToDomain converts GORM model to domain entity
func (m *RejectionModel) ToDomain() *documents.Rejection {
	return &documents.Rejection{
		ID:         m.ID,
		DocumentID: m.DocumentID,
		ReviewerID: m.ReviewerID,
		Reason:     m.Reason,
		CreatedAt:  m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *RejectionModel) FromDomain(r *documents.Rejection) {
	m.ID = r.ID
	m.DocumentID = r.DocumentID
	m.ReviewerID = r.ReviewerID
	m.Reason = r.Reason
	m.CreatedAt = r.CreatedAt
}
