package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campuscred/campuscred/internal/domain/documents"
	"github.com/campuscred/campuscred/internal/domain/portfolios"
	"github.com/campuscred/campuscred/internal/domain/profiles"
	"github.com/campuscred/campuscred/internal/pkg/apperr"
	"github.com/campuscred/campuscred/internal/pkg/logger"
	"github.com/campuscred/campuscred/internal/pkg/sanitize"

	"github.com/google/uuid"
)

// portfolioService implements the PortfolioService interface
type portfolioService struct {
	portfolioRepo portfolios.PortfolioRepository
	documentRepo  documents.DocumentRepository
	profileRepo   profiles.ProfileRepository
	logger        logger.Logger
}

// NewPortfolioService creates a new instance of PortfolioService
func NewPortfolioService(
	portfolioRepo portfolios.PortfolioRepository,
	documentRepo documents.DocumentRepository,
	profileRepo profiles.ProfileRepository,
	logger logger.Logger,
) (portfolios.PortfolioService, error) {
	return &portfolioService{
		portfolioRepo: portfolioRepo,
		documentRepo:  documentRepo,
		profileRepo:   profileRepo,
		logger:        logger,
	}, nil
}

// Save creates the caller's portfolio or replaces its contents
func (s *portfolioService) Save(ctx context.Context, actor profiles.Actor, input *portfolios.PortfolioInput) (*portfolios.Portfolio, error) {
	input.Title = sanitize.Text(input.Title)
	input.Headline = sanitize.Text(input.Headline)
	input.Bio = sanitize.Text(input.Bio)
	if input.Theme == "" {
		input.Theme = portfolios.ThemeClassic
	}
	if input.DocumentIDs == nil {
		input.DocumentIDs = []string{}
	}
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrInvalidInput, err)
	}

	if err := s.checkDocuments(ctx, actor, input.DocumentIDs); err != nil {
		return nil, err
	}

	if taken, err := s.portfolioRepo.GetBySlug(ctx, input.Slug); err == nil && taken.OwnerID != actor.ProfileID {
		return nil, fmt.Errorf("slug %q is taken: %w", input.Slug, apperr.ErrConflict)
	} else if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	existing, err := s.portfolioRepo.GetByOwnerID(ctx, actor.ProfileID)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		portfolio := &portfolios.Portfolio{
			ID:        uuid.NewString(),
			OwnerID:   actor.ProfileID,
			CreatedAt: now,
		}
		applyPortfolioInput(portfolio, input, now)
		if err := s.portfolioRepo.Create(ctx, portfolio); err != nil {
			return nil, err
		}
		s.logger.Info("Created portfolio ", portfolio.Slug, " for ", actor.ProfileID)
		return portfolio, nil

	case err != nil:
		return nil, err

	default:
		applyPortfolioInput(existing, input, now)
		if err := s.portfolioRepo.UpdateByID(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
}

func applyPortfolioInput(p *portfolios.Portfolio, input *portfolios.PortfolioInput, now time.Time) {
	p.Slug = input.Slug
	p.Title = input.Title
	p.Headline = input.Headline
	p.Bio = input.Bio
	p.Theme = input.Theme
	p.DocumentIDs = input.DocumentIDs
	p.Published = input.Published
	p.UpdatedAt = now
}

// checkDocuments requires every listed document to exist and belong to actor
func (s *portfolioService) checkDocuments(ctx context.Context, actor profiles.Actor, documentIDs []string) error {
	if len(documentIDs) == 0 {
		return nil
	}

	found, err := s.documentRepo.GetByIDs(ctx, documentIDs)
	if err != nil {
		return err
	}
	owned := make(map[string]bool, len(found))
	for _, d := range found {
		if d.OwnerID == actor.ProfileID {
			owned[d.ID] = true
		}
	}
	for _, id := range documentIDs {
		if !owned[id] {
			return fmt.Errorf("document %s is not yours: %w", id, apperr.ErrInvalidInput)
		}
	}
	return nil
}

func (s *portfolioService) GetMine(ctx context.Context, actor profiles.Actor) (*portfolios.Portfolio, error) {
	return s.portfolioRepo.GetByOwnerID(ctx, actor.ProfileID)
}

func (s *portfolioService) DeleteMine(ctx context.Context, actor profiles.Actor) error {
	if _, err := s.portfolioRepo.GetByOwnerID(ctx, actor.ProfileID); err != nil {
		return err
	}
	return s.portfolioRepo.DeleteByOwnerID(ctx, actor.ProfileID)
}

// GetPublic returns a published portfolio with the listed documents that are
// still public, in the owner's order
func (s *portfolioService) GetPublic(ctx context.Context, slug string) (*portfolios.PublicPortfolio, error) {
	portfolio, err := s.portfolioRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !portfolio.Published {
		return nil, fmt.Errorf("portfolio %s: %w", slug, apperr.ErrNotFound)
	}

	owner, err := s.profileRepo.GetByID(ctx, portfolio.OwnerID)
	if err != nil {
		return nil, err
	}

	found, err := s.documentRepo.GetByIDs(ctx, portfolio.DocumentIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*documents.Document, len(found))
	for _, d := range found {
		byID[d.ID] = d
	}

	listed := make([]*documents.Document, 0, len(portfolio.DocumentIDs))
	for _, id := range portfolio.DocumentIDs {
		if d, ok := byID[id]; ok && d.OwnerID == portfolio.OwnerID && d.Visibility == documents.VisibilityPublic {
			listed = append(listed, d)
		}
	}

	return &portfolios.PublicPortfolio{
		Portfolio: portfolio,
		Owner:     owner.Public(),
		Documents: listed,
	}, nil
}
