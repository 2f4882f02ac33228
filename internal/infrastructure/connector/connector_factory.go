package connector

import (
	"context"
	"fmt"

	"github.com/campuscred/campuscred/internal/domain/storage"
	"github.com/campuscred/campuscred/internal/pkg/config"
	"github.com/campuscred/campuscred/internal/pkg/logger"
)

// NewObjectConnector returns the connector selected by settings.CloudProvider
func NewObjectConnector(ctx context.Context, settings *config.StorageSettings, logger logger.Logger) (storage.ObjectConnector, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	switch settings.CloudProvider {
	case config.LocalStorageProvider:
		return NewLocalConnector(settings, logger)
	case config.CloudinaryStorageProvider:
		return NewCloudinaryConnector(settings, logger)
	case config.GcpStorageProvider:
		return NewGCSConnector(ctx, settings, logger)
	default:
		return nil, fmt.Errorf("unsupported cloud provider: %s", settings.CloudProvider)
	}
}
