package persistence

import (
	"context"
	"fmt"

	"github.com/campuscred/campuscred/internal/domain/documents"
	"github.com/campuscred/campuscred/internal/infrastructure/persistence/models"
	"github.com/campuscred/campuscred/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormDocumentRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormDocumentRepository creates a new GORM-based DocumentRepository implementation
func NewGormDocumentRepository(db *gorm.DB, logger logger.Logger) (documents.DocumentRepository, error) {
	return &gormDocumentRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormDocumentRepository) Create(ctx context.Context, document *documents.Document) error {
	if err := document.Validate(); err != nil {
		return invalid(err)
	}

	model := &models.DocumentModel{}
	model.FromDomain(document)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translate(err, "failed to create document")
	}

	r.logger.Info("Created document metadata with id ", document.ID)
	return nil
}

func (r *gormDocumentRepository) List(ctx context.Context, query *documents.DocumentQuery) ([]*documents.Document, error) {
	if err := query.Validate(); err != nil {
		return nil, invalid(err)
	}

	var modelList []*models.DocumentModel
	dbQuery := r.db.WithContext(ctx).Model(&models.DocumentModel{})

	if query.OwnerID != "" {
		dbQuery = dbQuery.Where("owner_id = ?", query.OwnerID)
	}
	if query.Title != "" {
		dbQuery = dbQuery.Where("title LIKE ?", "%"+query.Title+"%")
	}
	if query.Category != "" {
		dbQuery = dbQuery.Where("category = ?", query.Category)
	}
	if query.Visibility != "" {
		dbQuery = dbQuery.Where("visibility = ?", query.Visibility)
	}
	if query.Status != "" {
		dbQuery = dbQuery.Where("status = ?", query.Status)
	}

	if query.SortBy != "" {
		order := query.SortOrder
		if order == "" {
			order = "asc"
		}
		dbQuery = dbQuery.Order(fmt.Sprintf("%s %s", query.SortBy, order))
	}

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch documents: %w", err)
	}

	domainList := make([]*documents.Document, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormDocumentRepository) GetByID(ctx context.Context, documentID string) (*documents.Document, error) {
	var model models.DocumentModel
	if err := r.db.WithContext(ctx).Where("id = ?", documentID).First(&model).Error; err != nil {
		return nil, translate(err, "document with ID %s", documentID)
	}
	return model.ToDomain(), nil
}

func (r *gormDocumentRepository) GetByIDs(ctx context.Context, documentIDs []string) ([]*documents.Document, error) {
	if len(documentIDs) == 0 {
		return []*documents.Document{}, nil
	}

	var modelList []*models.DocumentModel
	if err := r.db.WithContext(ctx).Where("id IN ?", documentIDs).Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch documents: %w", err)
	}

	domainList := make([]*documents.Document, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormDocumentRepository) UpdateMetadata(ctx context.Context, document *documents.Document) error {
	if err := document.Validate(); err != nil {
		return invalid(err)
	}

	result := r.db.WithContext(ctx).
		Model(&models.DocumentModel{}).
		Where("id = ?", document.ID).
		Updates(map[string]interface{}{
			"title":       document.Title,
			"description": document.Description,
			"category":    document.Category,
			"visibility":  document.Visibility,
			"updated_at":  document.UpdatedAt,
		})
	if result.Error != nil {
		return translate(result.Error, "failed to update document %s", document.ID)
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "document with ID %s", document.ID)
	}

	r.logger.Info("Updated document metadata with id ", document.ID)
	return nil
}

func (r *gormDocumentRepository) TransitionStatus(ctx context.Context, document *documents.Document, from ...string) (bool, error) {
	if err := document.Validate(); err != nil {
		return false, invalid(err)
	}

	result := r.db.WithContext(ctx).
		Model(&models.DocumentModel{}).
		Where("id = ? AND status IN ?", document.ID, from).
		Updates(map[string]interface{}{
			"status":      document.Status,
			"verified_by": document.VerifiedBy,
			"verified_at": document.VerifiedAt,
			"updated_at":  document.UpdatedAt,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to update status of document %s: %w", document.ID, result.Error)
	}

	if result.RowsAffected == 0 {
		return false, nil
	}
	r.logger.Info("Document ", document.ID, " moved to status ", document.Status)
	return true, nil
}

func (r *gormDocumentRepository) DeleteByID(ctx context.Context, documentID string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", documentID).Delete(&models.DocumentModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	r.logger.Info("Deleted document metadata with id ", documentID)
	return nil
}

type gormRejectionRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormRejectionRepository creates a new GORM-based RejectionRepository implementation
func NewGormRejectionRepository(db *gorm.DB, logger logger.Logger) (documents.RejectionRepository, error) {
	return &gormRejectionRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormRejectionRepository) Create(ctx context.Context, rejection *documents.Rejection) error {
	if err := rejection.Validate(); err != nil {
		return invalid(err)
	}

	model := &models.RejectionModel{}
	model.FromDomain(rejection)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translate(err, "failed to record rejection of document %s", rejection.DocumentID)
	}

	r.logger.Info("Recorded rejection of document ", rejection.DocumentID)
	return nil
}

func (r *gormRejectionRepository) ListByDocumentID(ctx context.Context, documentID string) ([]*documents.Rejection, error) {
	var modelList []*models.RejectionModel
	if err := r.db.WithContext(ctx).Where("document_id = ?", documentID).Order("created_at desc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch rejections: %w", err)
	}

	domainList := make([]*documents.Rejection, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormRejectionRepository) DeleteByDocumentID(ctx context.Context, documentID string) error {
	if err := r.db.WithContext(ctx).Where("document_id = ?", documentID).Delete(&models.RejectionModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete rejections: %w", err)
	}
	return nil
}
