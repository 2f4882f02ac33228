package persistence

import (
	"context"
	"fmt"

	"github.com/campuscred/campuscred/internal/domain/profiles"
	"github.com/campuscred/campuscred/internal/infrastructure/persistence/models"
	"github.com/campuscred/campuscred/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormProfileRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormProfileRepository creates a new GORM-based ProfileRepository implementation
func NewGormProfileRepository(db *gorm.DB, logger logger.Logger) (profiles.ProfileRepository, error) {
	return &gormProfileRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormProfileRepository) Create(ctx context.Context, profile *profiles.Profile) error {
	if err := profile.Validate(); err != nil {
		return invalid(err)
	}

	model := &models.ProfileModel{}
	model.FromDomain(profile)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translate(err, "failed to create profile with email %s", profile.Email)
	}

	r.logger.Info("Created profile with id ", profile.ID)
	return nil
}

func (r *gormProfileRepository) GetByID(ctx context.Context, profileID string) (*profiles.Profile, error) {
	var model models.ProfileModel
	if err := r.db.WithContext(ctx).Where("id = ?", profileID).First(&model).Error; err != nil {
		return nil, translate(err, "profile with ID %s", profileID)
	}
	return model.ToDomain(), nil
}

func (r *gormProfileRepository) GetByEmail(ctx context.Context, email string) (*profiles.Profile, error) {
	var model models.ProfileModel
	if err := r.db.WithContext(ctx).Where("email = ?", profiles.NormalizeEmail(email)).First(&model).Error; err != nil {
		return nil, translate(err, "profile with email %s", email)
	}
	return model.ToDomain(), nil
}

func (r *gormProfileRepository) List(ctx context.Context, query *profiles.ProfileQuery) ([]*profiles.Profile, error) {
	if err := query.Validate(); err != nil {
		return nil, invalid(err)
	}

	var modelList []*models.ProfileModel
	dbQuery := r.db.WithContext(ctx).Model(&models.ProfileModel{})

	if query.Role != "" {
		dbQuery = dbQuery.Where("role = ?", query.Role)
	}
	if query.Email != "" {
		dbQuery = dbQuery.Where("email LIKE ?", "%"+profiles.NormalizeEmail(query.Email)+"%")
	}

	sortBy := query.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	order := query.SortOrder
	if order == "" {
		order = "asc"
	}
	dbQuery = dbQuery.Order(fmt.Sprintf("%s %s", sortBy, order))

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch profiles: %w", err)
	}

	domainList := make([]*profiles.Profile, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormProfileRepository) ListByRoles(ctx context.Context, roles ...string) ([]*profiles.Profile, error) {
	var modelList []*models.ProfileModel
	if err := r.db.WithContext(ctx).Where("role IN ?", roles).Order("created_at asc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch profiles by role: %w", err)
	}

	domainList := make([]*profiles.Profile, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormProfileRepository) Update(ctx context.Context, profile *profiles.Profile) error {
	if err := profile.Validate(); err != nil {
		return invalid(err)
	}

	model := &models.ProfileModel{}
	model.FromDomain(profile)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return translate(err, "failed to update profile %s", profile.ID)
	}

	r.logger.Info("Updated profile with id ", profile.ID)
	return nil
}
