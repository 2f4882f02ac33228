package persistence

import (
	"fmt"

	"github.com/campuscred/campuscred/internal/domain/documents"
	"github.com/campuscred/campuscred/internal/domain/notifications"
	"github.com/campuscred/campuscred/internal/domain/portfolios"
	"github.com/campuscred/campuscred/internal/domain/profiles"
	"github.com/campuscred/campuscred/internal/domain/sharing"
	"github.com/campuscred/campuscred/internal/pkg/logger"

	"gorm.io/gorm"
)

// Repositories bundles every gorm backed repository over one connection
type Repositories struct {
	Profiles      profiles.ProfileRepository
	Documents     documents.DocumentRepository
	Rejections    documents.RejectionRepository
	Notifications notifications.NotificationRepository
	ShareLinks    sharing.ShareLinkRepository
	QRCodes       sharing.QRCodeRepository
	Portfolios    portfolios.PortfolioRepository
}

// NewRepositories creates all repositories on db
func NewRepositories(db *gorm.DB, logger logger.Logger) (*Repositories, error) {
	var (
		repos Repositories
		err   error
	)
	if repos.Profiles, err = NewGormProfileRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create profile repository: %w", err)
	}
	if repos.Documents, err = NewGormDocumentRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create document repository: %w", err)
	}
	if repos.Rejections, err = NewGormRejectionRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create rejection repository: %w", err)
	}
	if repos.Notifications, err = NewGormNotificationRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create notification repository: %w", err)
	}
	if repos.ShareLinks, err = NewGormShareLinkRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create share link repository: %w", err)
	}
	if repos.QRCodes, err = NewGormQRCodeRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create qr code repository: %w", err)
	}
	if repos.Portfolios, err = NewGormPortfolioRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create portfolio repository: %w", err)
	}
	return &repos, nil
}
