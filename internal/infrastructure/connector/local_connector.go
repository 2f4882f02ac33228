package connector

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/campuscred/campuscred/internal/domain/storage"
	"github.com/campuscred/campuscred/internal/pkg/apperr"
	"github.com/campuscred/campuscred/internal/pkg/config"
	"github.com/campuscred/campuscred/internal/pkg/logger"
)

type localConnector struct {
	rootDir string
	logger  logger.Logger
}

// NewLocalConnector stores objects as files below settings.RootDir
func NewLocalConnector(settings *config.StorageSettings, logger logger.Logger) (storage.ObjectConnector, error) {
	root, err := filepath.Abs(settings.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage root %s: %w", settings.RootDir, err)
	}
	if err := os.MkdirAll(root, 0750); err != nil {
		return nil, fmt.Errorf("failed to create storage root %s: %w", root, err)
	}

	return &localConnector{
		rootDir: root,
		logger:  logger,
	}, nil
}

// resolve maps key onto a path inside rootDir, refusing keys that escape it
func (c *localConnector) resolve(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("empty object key: %w", apperr.ErrInvalidInput)
	}
	path := filepath.Join(c.rootDir, filepath.FromSlash(key))
	if path != c.rootDir && !strings.HasPrefix(path, c.rootDir+string(os.PathSeparator)) {
		return "", fmt.Errorf("object key %q escapes storage root: %w", key, apperr.ErrInvalidInput)
	}
	return path, nil
}

func (c *localConnector) Upload(ctx context.Context, key, contentType string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := c.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", key, err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write object %s: %w", key, err)
	}

	c.logger.Info("Stored object ", key, " (", contentType, ", ", len(data), " bytes)")
	return nil
}

func (c *localConnector) Download(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := c.resolve(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("object %s: %w", key, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}
	return data, nil
}

func (c *localConnector) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := c.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}

	c.logger.Info("Deleted object ", key)
	return nil
}
