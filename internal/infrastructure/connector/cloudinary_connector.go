package connector

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"time"

	"github.com/campuscred/campuscred/internal/domain/storage"
	"github.com/campuscred/campuscred/internal/pkg/apperr"
	"github.com/campuscred/campuscred/internal/pkg/config"
	"github.com/campuscred/campuscred/internal/pkg/logger"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// documents are not images, so everything is kept as a raw asset
const cloudinaryResourceType = "raw"

// authenticated assets are only delivered through signed URLs
const cloudinaryDeliveryType = api.Authenticated

type cloudinaryConnector struct {
	cld        *cloudinary.Cloudinary
	folder     string
	httpClient *http.Client
	logger     logger.Logger
}

// NewCloudinaryConnector stores objects as authenticated raw Cloudinary assets below settings.Folder
func NewCloudinaryConnector(settings *config.StorageSettings, logger logger.Logger) (storage.ObjectConnector, error) {
	cld, err := cloudinary.NewFromURL(settings.CloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true

	return &cloudinaryConnector{
		cld:        cld,
		folder:     settings.Folder,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
	}, nil
}

func (c *cloudinaryConnector) publicID(key string) string {
	if c.folder == "" {
		return key
	}
	return path.Join(c.folder, key)
}

func (c *cloudinaryConnector) uploadParams(key string) uploader.UploadParams {
	return uploader.UploadParams{
		PublicID:     c.publicID(key),
		ResourceType: cloudinaryResourceType,
		Type:         cloudinaryDeliveryType,
		Overwrite:    api.Bool(true),
	}
}

// deliveryURL returns the signed URL of an authenticated raw asset
func (c *cloudinaryConnector) deliveryURL(key string) (string, error) {
	media, err := c.cld.Media(c.publicID(key))
	if err != nil {
		return "", fmt.Errorf("failed to build asset for %s: %w", key, err)
	}
	media.AssetType = cloudinaryResourceType
	media.DeliveryType = cloudinaryDeliveryType
	media.Config.URL.SignURL = true

	url, err := media.String()
	if err != nil {
		return "", fmt.Errorf("failed to build URL for %s: %w", key, err)
	}
	return url, nil
}

func (c *cloudinaryConnector) Upload(ctx context.Context, key, contentType string, data []byte) error {
	result, err := c.cld.Upload.Upload(ctx, bytes.NewReader(data), c.uploadParams(key))
	if err != nil {
		return fmt.Errorf("failed to upload object %s: %w", key, err)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("failed to upload object %s: %s", key, result.Error.Message)
	}

	c.logger.Info("Uploaded object ", key, " (", contentType, ") as ", result.PublicID)
	return nil
}

func (c *cloudinaryConnector) Download(ctx context.Context, key string) ([]byte, error) {
	url, err := c.deliveryURL(key)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", key, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download object %s: %w", key, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("object %s: %w", key, apperr.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("failed to download object %s: unexpected status %d", key, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}
	return data, nil
}

func (c *cloudinaryConnector) Delete(ctx context.Context, key string) error {
	result, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     c.publicID(key),
		Type:         cloudinaryDeliveryType,
		ResourceType: cloudinaryResourceType,
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("failed to delete object %s: %s", key, result.Error.Message)
	}

	c.logger.Info("Deleted object ", key)
	return nil
}
