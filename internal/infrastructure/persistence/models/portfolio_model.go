package models

import (
	"time"

	"github.com/campuscred/campuscred/internal/domain/portfolios"

	"gorm.io/datatypes"
)

// PortfolioModel is the GORM database model for portfolios.
// DocumentIDs keeps the owner's ordering as a JSON array.
type PortfolioModel struct {
	ID          string                      `gorm:"primaryKey;type:uuid"`
	OwnerID     string                      `gorm:"not null;uniqueIndex;type:uuid"`
	Slug        string                      `gorm:"not null;uniqueIndex;type:varchar(64)"`
	Title       string                      `gorm:"not null;type:varchar(255)"`
	Headline    string                      `gorm:"type:varchar(255)"`
	Bio         string                      `gorm:"type:text"`
	Theme       string                      `gorm:"not null;type:varchar(20)"`
	DocumentIDs datatypes.JSONSlice[string] `gorm:"not null"`
	Published   bool                        `gorm:"not null;default:false"`
	CreatedAt   time.Time                   `gorm:"not null"`
	UpdatedAt   time.Time                   `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (PortfolioModel) TableName() string {
	return "portfolios"
}

// ToDomain converts GORM model to domain entity
func (m *PortfolioModel) ToDomain() *portfolios.Portfolio {
	ids := make([]string, len(m.DocumentIDs))
	copy(ids, m.DocumentIDs)

	return &portfolios.Portfolio{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Slug:        m.Slug,
		Title:       m.Title,
		Headline:    m.Headline,
		Bio:         m.Bio,
		Theme:       m.Theme,
		DocumentIDs: ids,
		Published:   m.Published,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *PortfolioModel) FromDomain(p *portfolios.Portfolio) {
	m.ID = p.ID
	m.OwnerID = p.OwnerID
	m.Slug = p.Slug
	m.Title = p.Title
	m.Headline = p.Headline
	m.Bio = p.Bio
	m.Theme = p.Theme
	m.DocumentIDs = datatypes.NewJSONSlice(append([]string{}, p.DocumentIDs...))
	m.Published = p.Published
	m.CreatedAt = p.CreatedAt
	m.UpdatedAt = p.UpdatedAt
}
