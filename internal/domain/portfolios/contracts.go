package portfolios

import (
	"context"

	"github.com/campuscred/campuscred/internal/domain/profiles"
)

// PortfolioService defines the portfolio builder and the public page.
type PortfolioService interface {
	// Save creates or replaces the actor's portfolio.
	Save(ctx context.Context, actor profiles.Actor, input *PortfolioInput) (*Portfolio, error)

	// GetMine returns the actor's portfolio.
	GetMine(ctx context.Context, actor profiles.Actor) (*Portfolio, error)

	// DeleteMine removes the actor's portfolio.
	DeleteMine(ctx context.Context, actor profiles.Actor) error

	// GetPublic returns a published portfolio by slug with its public documents.
	GetPublic(ctx context.Context, slug string) (*PublicPortfolio, error)
}

// PortfolioRepository defines the interface for Portfolio-related operations
type PortfolioRepository interface {
	Create(ctx context.Context, portfolio *Portfolio) error
	GetByOwnerID(ctx context.Context, ownerID string) (*Portfolio, error)
	GetBySlug(ctx context.Context, slug string) (*Portfolio, error)
	UpdateByID(ctx context.Context, portfolio *Portfolio) error
	DeleteByOwnerID(ctx context.Context, ownerID string) error
}
