package models

import (
	"time"

	"github.com/campuscred/campuscred/internal/domain/sharing"
)

// ShareLinkModel is the GORM database model for share links
type ShareLinkModel struct {
	ID             string     `gorm:"primaryKey;type:uuid"`
	DocumentID     string     `gorm:"not null;index;type:uuid"`
	OwnerID        string     `gorm:"not null;index;type:uuid"`
	Token          string     `gorm:"not null;uniqueIndex;type:varchar(128)"`
	ExpiresAt      *time.Time
	MaxAccesses    *int
	AccessCount    int        `gorm:"not null;default:0"`
	LastAccessedAt *time.Time
	Revoked        bool       `gorm:"not null;default:false"`
	CreatedAt      time.Time  `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ShareLinkModel) TableName() string {
	return "share_links"
}

// ToDomain converts GORM model to domain entity
func (m *ShareLinkModel) ToDomain() *sharing.ShareLink {
	return &sharing.ShareLink{
		ID:             m.ID,
		DocumentID:     m.DocumentID,
		OwnerID:        m.OwnerID,
		Token:          m.Token,
		ExpiresAt:      m.ExpiresAt,
		MaxAccesses:    m.MaxAccesses,
		AccessCount:    m.AccessCount,
		LastAccessedAt: m.LastAccessedAt,
		Revoked:        m.Revoked,
		CreatedAt:      m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ShareLinkModel) FromDomain(l *sharing.ShareLink) {
	m.ID = l.ID
	m.DocumentID = l.DocumentID
	m.OwnerID = l.OwnerID
	m.Token = l.Token
	m.ExpiresAt = l.ExpiresAt
	m.MaxAccesses = l.MaxAccesses
	m.AccessCount = l.AccessCount
	m.LastAccessedAt = l.LastAccessedAt
	m.Revoked = l.Revoked
	m.CreatedAt = l.CreatedAt
}

// QRCodeModel is the GORM database model for QR codes
type QRCodeModel struct {
	ID          string    `gorm:"primaryKey;type:uuid"`
	ShareLinkID string    `gorm:"not null;uniqueIndex;type:uuid"`
	DocumentID  string    `gorm:"not null;index;type:uuid"`
	OwnerID     string    `gorm:"not null;type:uuid"`
	TargetURL   string    `gorm:"not null;type:varchar(2048)"`
	StoragePath string    `gorm:"not null;type:varchar(1024)"`
	ScanCount   int       `gorm:"not null;default:0"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (QRCodeModel) TableName() string {
	return "qr_codes"
}

// ToDomain converts GORM model to domain entity
func (m *QRCodeModel) ToDomain() *sharing.QRCode {
	return &sharing.QRCode{
		ID:          m.ID,
		ShareLinkID: m.ShareLinkID,
		DocumentID:  m.DocumentID,
		OwnerID:     m.OwnerID,
		TargetURL:   m.TargetURL,
		StoragePath: m.StoragePath,
		ScanCount:   m.ScanCount,
		CreatedAt:   m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *QRCodeModel) FromDomain(q *sharing.QRCode) {
	m.ID = q.ID
	m.ShareLinkID = q.ShareLinkID
	m.DocumentID = q.DocumentID
	m.OwnerID = q.OwnerID
	m.TargetURL = q.TargetURL
	m.StoragePath = q.StoragePath
	m.ScanCount = q.ScanCount
	m.CreatedAt = q.CreatedAt
}
