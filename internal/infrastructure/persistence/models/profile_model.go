package models

import (
	"time"

	"github.com/campuscred/campuscred/internal/domain/profiles"
)

// ProfileModel is the GORM database model for profiles
type ProfileModel struct {
	ID           string    `gorm:"primaryKey;type:uuid"`
	Email        string    `gorm:"not null;uniqueIndex;type:varchar(255)"`
	FullName     string    `gorm:"not null;type:varchar(255)"`
	Role         string    `gorm:"not null;index;type:varchar(20)"`
	Institution  string    `gorm:"type:varchar(255)"`
	Department   string    `gorm:"type:varchar(255)"`
	Bio          string    `gorm:"type:text"`
	PasswordHash string    `gorm:"not null;type:varchar(255)"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ProfileModel) TableName() string {
	return "profiles"
}

// ToDomain converts GORM model to domain entity
func (m *ProfileModel) ToDomain() *profiles.Profile {
	return &profiles.Profile{
		ID:           m.ID,
		Email:        m.Email,
		FullName:     m.FullName,
		Role:         m.Role,
		Institution:  m.Institution,
		Department:   m.Department,
		Bio:          m.Bio,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ProfileModel) FromDomain(p *profiles.Profile) {
	m.ID = p.ID
	m.Email = p.Email
	m.FullName = p.FullName
	m.Role = p.Role
	m.Institution = p.Institution
	m.Department = p.Department
	m.Bio = p.Bio
	m.PasswordHash = p.PasswordHash
	m.CreatedAt = p.CreatedAt
	m.UpdatedAt = p.UpdatedAt
}
