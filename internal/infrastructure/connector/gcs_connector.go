package connector

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/campuscred/campuscred/internal/domain/storage"
	"github.com/campuscred/campuscred/internal/pkg/apperr"
	"github.com/campuscred/campuscred/internal/pkg/config"
	"github.com/campuscred/campuscred/internal/pkg/logger"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type gcsConnector struct {
	client *gcs.Client
	bucket string
	logger logger.Logger
}

// NewGCSConnector stores objects in a Google Cloud Storage bucket. Without a
// credentials file the client falls back to application default credentials.
func NewGCSConnector(ctx context.Context, settings *config.StorageSettings, logger logger.Logger) (storage.ObjectConnector, error) {
	var opts []option.ClientOption
	if settings.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(settings.CredentialsFile))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &gcsConnector{
		client: client,
		bucket: settings.BucketName,
		logger: logger,
	}, nil
}

func (c *gcsConnector) Upload(ctx context.Context, key, contentType string, data []byte) error {
	w := c.client.Bucket(c.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close writer for %s: %w", key, err)
	}

	c.logger.Info("Uploaded object ", key, " to bucket ", c.bucket)
	return nil
}

func (c *gcsConnector) Download(ctx context.Context, key string) ([]byte, error) {
	r, err := c.client.Bucket(c.bucket).Object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return nil, fmt.Errorf("object %s: %w", key, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to open object %s: %w", key, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}
	return data, nil
}

func (c *gcsConnector) Delete(ctx context.Context, key string) error {
	err := c.client.Bucket(c.bucket).Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}

	c.logger.Info("Deleted object ", key, " from bucket ", c.bucket)
	return nil
}
