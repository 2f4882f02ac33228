package tokens

import (
	"context"
	"sync"
	"time"

	"github.com/campuscred/campuscred/internal/domain/auth"
)

type memoryTokenStore struct {
	mu       sync.Mutex
	revoked  map[string]time.Time
	consumed map[string]time.Time
	now      func() time.Time
}

// NewMemoryTokenStore keeps token state in process. It suits a single
// instance and tests; state is lost on restart.
func NewMemoryTokenStore() auth.TokenStore {
	return &memoryTokenStore{
		revoked:  make(map[string]time.Time),
		consumed: make(map[string]time.Time),
		now:      time.Now,
	}
}

func (s *memoryTokenStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep()
	s.revoked[tokenID] = s.now().Add(ttl)
	return nil
}

func (s *memoryTokenStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt, ok := s.revoked[tokenID]
	return ok && s.now().Before(expiresAt), nil
}

func (s *memoryTokenStore) ConsumeOnce(_ context.Context, tokenID string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep()
	if expiresAt, ok := s.consumed[tokenID]; ok && s.now().Before(expiresAt) {
		return false, nil
	}
	s.consumed[tokenID] = s.now().Add(ttl)
	return true, nil
}

// sweep drops expired entries; callers hold mu
func (s *memoryTokenStore) sweep() {
	now := s.now()
	for id, expiresAt := range s.revoked {
		if !now.Before(expiresAt) {
			delete(s.revoked, id)
		}
	}
	for id, expiresAt := range s.consumed {
		if !now.Before(expiresAt) {
			delete(s.consumed, id)
		}
	}
}
