package persistence

import (
	"context"
	"fmt"

	"github.com/campuscred/campuscred/internal/domain/portfolios"
	"github.com/campuscred/campuscred/internal/infrastructure/persistence/models"
	"github.com/campuscred/campuscred/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormPortfolioRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormPortfolioRepository creates a new GORM-based PortfolioRepository implementation
func NewGormPortfolioRepository(db *gorm.DB, logger logger.Logger) (portfolios.PortfolioRepository, error) {
	return &gormPortfolioRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormPortfolioRepository) Create(ctx context.Context, portfolio *portfolios.Portfolio) error {
	if err := portfolio.Validate(); err != nil {
		return invalid(err)
	}

	model := &models.PortfolioModel{}
	model.FromDomain(portfolio)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translate(err, "failed to create portfolio %s", portfolio.Slug)
	}

	r.logger.Info("Created portfolio ", portfolio.Slug)
	return nil
}

func (r *gormPortfolioRepository) GetByOwnerID(ctx context.Context, ownerID string) (*portfolios.Portfolio, error) {
	var model models.PortfolioModel
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&model).Error; err != nil {
		return nil, translate(err, "portfolio of profile %s", ownerID)
	}
	return model.ToDomain(), nil
}

func (r *gormPortfolioRepository) GetBySlug(ctx context.Context, slug string) (*portfolios.Portfolio, error) {
	var model models.PortfolioModel
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&model).Error; err != nil {
		return nil, translate(err, "portfolio %s", slug)
	}
	return model.ToDomain(), nil
}

func (r *gormPortfolioRepository) UpdateByID(ctx context.Context, portfolio *portfolios.Portfolio) error {
	if err := portfolio.Validate(); err != nil {
		return invalid(err)
	}

	model := &models.PortfolioModel{}
	model.FromDomain(portfolio)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return translate(err, "failed to update portfolio %s", portfolio.Slug)
	}

	r.logger.Info("Updated portfolio ", portfolio.Slug)
	return nil
}

func (r *gormPortfolioRepository) DeleteByOwnerID(ctx context.Context, ownerID string) error {
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Delete(&models.PortfolioModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}
	return nil
}
