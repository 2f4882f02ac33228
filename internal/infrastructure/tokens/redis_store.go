package tokens

import (
	"context"
	"fmt"
	"time"

	"github.com/campuscred/campuscred/internal/domain/auth"
	"github.com/campuscred/campuscred/internal/pkg/config"
	"github.com/campuscred/campuscred/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const (
	revokedKeyPrefix  = "campuscred:token:revoked:"
	consumedKeyPrefix = "campuscred:token:consumed:"
)

// NewRedisClient creates a client for settings and checks the connection
func NewRedisClient(ctx context.Context, settings *config.RedisSettings) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     settings.Addr,
		Password: settings.Password,
		DB:       settings.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

type redisTokenStore struct {
	client redis.Cmdable
	logger logger.Logger
}

// NewRedisTokenStore keeps revoked and consumed token ids in Redis with a TTL
// matching the token's remaining lifetime
func NewRedisTokenStore(client redis.Cmdable, logger logger.Logger) (auth.TokenStore, error) {
	return &redisTokenStore{
		client: client,
		logger: logger,
	}, nil
}

func (s *redisTokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token %s: %w", tokenID, err)
	}
	s.logger.Info("Revoked token ", tokenID)
	return nil
}

func (s *redisTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token %s: %w", tokenID, err)
	}
	return n > 0, nil
}

func (s *redisTokenStore) ConsumeOnce(ctx context.Context, tokenID string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		return false, nil
	}
	ok, err := s.client.SetNX(ctx, consumedKeyPrefix+tokenID, 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to consume token %s: %w", tokenID, err)
	}
	return ok, nil
}
