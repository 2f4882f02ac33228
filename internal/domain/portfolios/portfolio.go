package portfolios

import (
	"time"

	"github.com/campuscred/campuscred/internal/domain/documents"
	"github.com/campuscred/campuscred/internal/domain/profiles"
	"github.com/campuscred/campuscred/internal/pkg/validators"
)

// Themes
const (
	ThemeClassic = "classic"
	ThemeModern  = "modern"
	ThemeMinimal = "minimal"
)

// MaxDocuments bounds how many documents one portfolio may list
const MaxDocuments = 50

// Portfolio is a user's public page of selected documents
type Portfolio struct {
	ID          string    `validate:"required,uuid4"`
	OwnerID     string    `validate:"required,uuid4"`
	Slug        string    `validate:"required,slug"`
	Title       string    `validate:"required,min=1,max=255"`
	Headline    string    `validate:"max=255"`
	Bio         string    `validate:"max=4000"`
	Theme       string    `validate:"required,oneof=classic modern minimal"`
	DocumentIDs []string  `validate:"max=50,dive,uuid4"`
	Published   bool
	CreatedAt   time.Time `validate:"required"`
	UpdatedAt   time.Time `validate:"required"`
}

// Validate for validating Portfolio struct
func (p *Portfolio) Validate() error {
	return validators.Struct(p)
}

// PortfolioInput is the full builder state submitted by the owner
type PortfolioInput struct {
	Slug        string   `validate:"required,slug"`
	Title       string   `validate:"required,min=1,max=255"`
	Headline    string   `validate:"max=255"`
	Bio         string   `validate:"max=4000"`
	Theme       string   `validate:"omitempty,oneof=classic modern minimal"`
	DocumentIDs []string `validate:"max=50,unique,dive,uuid4"`
	Published   bool
}

// Validate for validating PortfolioInput struct
func (i *PortfolioInput) Validate() error {
	return validators.Struct(i)
}

// PublicPortfolio is the anonymous view of a published portfolio
type PublicPortfolio struct {
	Portfolio *Portfolio
	Owner     *profiles.PublicProfile
	Documents []*documents.Document
}
