package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/campuscred/campuscred/internal/domain/sharing"
	"github.com/campuscred/campuscred/internal/infrastructure/persistence/models"
	"github.com/campuscred/campuscred/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormShareLinkRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormShareLinkRepository creates a new GORM-based ShareLinkRepository implementation
func NewGormShareLinkRepository(db *gorm.DB, logger logger.Logger) (sharing.ShareLinkRepository, error) {
	return &gormShareLinkRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormShareLinkRepository) Create(ctx context.Context, link *sharing.ShareLink) error {
	if err := link.Validate(); err != nil {
		return invalid(err)
	}

	model := &models.ShareLinkModel{}
	model.FromDomain(link)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translate(err, "failed to create share link")
	}

	r.logger.Info("Created share link ", link.ID, " for document ", link.DocumentID)
	return nil
}

func (r *gormShareLinkRepository) GetByID(ctx context.Context, shareLinkID string) (*sharing.ShareLink, error) {
	var model models.ShareLinkModel
	if err := r.db.WithContext(ctx).Where("id = ?", shareLinkID).First(&model).Error; err != nil {
		return nil, translate(err, "share link with ID %s", shareLinkID)
	}
	return model.ToDomain(), nil
}

func (r *gormShareLinkRepository) GetByToken(ctx context.Context, token string) (*sharing.ShareLink, error) {
	var model models.ShareLinkModel
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&model).Error; err != nil {
		return nil, translate(err, "share link")
	}
	return model.ToDomain(), nil
}

func (r *gormShareLinkRepository) ListByDocumentID(ctx context.Context, documentID string) ([]*sharing.ShareLink, error) {
	var modelList []*models.ShareLinkModel
	if err := r.db.WithContext(ctx).Where("document_id = ?", documentID).Order("created_at desc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch share links: %w", err)
	}

	domainList := make([]*sharing.ShareLink, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormShareLinkRepository) Revoke(ctx context.Context, shareLinkID string) error {
	result := r.db.WithContext(ctx).
		Model(&models.ShareLinkModel{}).
		Where("id = ?", shareLinkID).
		UpdateColumn("revoked", true)
	if result.Error != nil {
		return fmt.Errorf("failed to revoke share link %s: %w", shareLinkID, result.Error)
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "share link with ID %s", shareLinkID)
	}

	r.logger.Info("Revoked share link with id ", shareLinkID)
	return nil
}

// usable scopes an update to a link that can still be followed at now
func (r *gormShareLinkRepository) usable(ctx context.Context, shareLinkID string, now time.Time) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.ShareLinkModel{}).
		Where("id = ? AND revoked = ?", shareLinkID, false).
		Where("max_accesses IS NULL OR access_count < max_accesses").
		Where("expires_at IS NULL OR expires_at > ?", now)
}

func (r *gormShareLinkRepository) RecordAccess(ctx context.Context, shareLinkID string) (int, error) {
	now := time.Now().UTC()

	// only one caller can move the count from 0 to 1
	first := r.usable(ctx, shareLinkID, now).
		Where("access_count = ?", 0).
		Updates(map[string]interface{}{
			"access_count":     1,
			"last_accessed_at": now,
		})
	if first.Error != nil {
		return 0, fmt.Errorf("failed to record access of share link %s: %w", shareLinkID, first.Error)
	}
	if first.RowsAffected == 1 {
		return 1, nil
	}

	result := r.usable(ctx, shareLinkID, now).
		Updates(map[string]interface{}{
			"access_count":     gorm.Expr("access_count + 1"),
			"last_accessed_at": now,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to record access of share link %s: %w", shareLinkID, result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, nil
	}

	var model models.ShareLinkModel
	if err := r.db.WithContext(ctx).Select("access_count").Where("id = ?", shareLinkID).First(&model).Error; err != nil {
		return 0, translate(err, "share link with ID %s", shareLinkID)
	}
	if model.AccessCount < 2 {
		return 2, nil
	}
	return model.AccessCount, nil
}

func (r *gormShareLinkRepository) DeleteByDocumentID(ctx context.Context, documentID string) error {
	if err := r.db.WithContext(ctx).Where("document_id = ?", documentID).Delete(&models.ShareLinkModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete share links: %w", err)
	}
	return nil
}

type gormQRCodeRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormQRCodeRepository creates a new GORM-based QRCodeRepository implementation
func NewGormQRCodeRepository(db *gorm.DB, logger logger.Logger) (sharing.QRCodeRepository, error) {
	return &gormQRCodeRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormQRCodeRepository) Create(ctx context.Context, qrCode *sharing.QRCode) error {
	if err := qrCode.Validate(); err != nil {
		return invalid(err)
	}

	model := &models.QRCodeModel{}
	model.FromDomain(qrCode)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translate(err, "failed to create QR code for share link %s", qrCode.ShareLinkID)
	}

	r.logger.Info("Created QR code ", qrCode.ID, " for share link ", qrCode.ShareLinkID)
	return nil
}

func (r *gormQRCodeRepository) GetByID(ctx context.Context, qrCodeID string) (*sharing.QRCode, error) {
	var model models.QRCodeModel
	if err := r.db.WithContext(ctx).Where("id = ?", qrCodeID).First(&model).Error; err != nil {
		return nil, translate(err, "QR code with ID %s", qrCodeID)
	}
	return model.ToDomain(), nil
}

func (r *gormQRCodeRepository) GetByShareLinkID(ctx context.Context, shareLinkID string) (*sharing.QRCode, error) {
	var model models.QRCodeModel
	if err := r.db.WithContext(ctx).Where("share_link_id = ?", shareLinkID).First(&model).Error; err != nil {
		return nil, translate(err, "QR code for share link %s", shareLinkID)
	}
	return model.ToDomain(), nil
}

func (r *gormQRCodeRepository) ListByDocumentID(ctx context.Context, documentID string) ([]*sharing.QRCode, error) {
	var modelList []*models.QRCodeModel
	if err := r.db.WithContext(ctx).Where("document_id = ?", documentID).Order("created_at desc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch QR codes: %w", err)
	}

	domainList := make([]*sharing.QRCode, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormQRCodeRepository) IncrementScanCount(ctx context.Context, shareLinkID string) error {
	err := r.db.WithContext(ctx).
		Model(&models.QRCodeModel{}).
		Where("share_link_id = ?", shareLinkID).
		UpdateColumn("scan_count", gorm.Expr("scan_count + 1")).Error
	if err != nil {
		return fmt.Errorf("failed to count QR scan for share link %s: %w", shareLinkID, err)
	}
	return nil
}

func (r *gormQRCodeRepository) DeleteByDocumentID(ctx context.Context, documentID string) error {
	if err := r.db.WithContext(ctx).Where("document_id = ?", documentID).Delete(&models.QRCodeModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete QR codes: %w", err)
	}
	return nil
}
