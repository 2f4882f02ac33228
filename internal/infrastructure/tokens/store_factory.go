package tokens

import (
	"context"
	"io"

	"github.com/campuscred/campuscred/internal/domain/auth"
	"github.com/campuscred/campuscred/internal/pkg/config"
	"github.com/campuscred/campuscred/internal/pkg/logger"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewTokenStore returns a Redis-backed store when settings.Addr is set and an
// in-memory store otherwise. The closer releases the Redis connection.
func NewTokenStore(ctx context.Context, settings *config.RedisSettings, logger logger.Logger) (auth.TokenStore, io.Closer, error) {
	if settings.Addr == "" {
		logger.Warn("No Redis address configured, token revocation is kept in memory")
		return NewMemoryTokenStore(), nopCloser{}, nil
	}

	client, err := NewRedisClient(ctx, settings)
	if err != nil {
		return nil, nil, err
	}
	store, err := NewRedisTokenStore(client, logger)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	return store, client, nil
}
