// Package tokenstore keeps a blacklist of revoked access-token IDs until they expire.
package tokenstore

import (
	"context"
	"sync"
	"time"
)

type Store interface {
	// Revoke blacklists jti until the token would have expired anyway.
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// MemoryStore is a process-local Store, used when no Redis is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{revoked: make(map[string]time.Time), now: time.Now}
}

func (m *MemoryStore) Revoke(_ context.Context, jti string, expiresAt time.Time) error {
	if jti == "" || !expiresAt.After(m.now()) {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[jti] = expiresAt
	return nil
}

func (m *MemoryStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	until, ok := m.revoked[jti]
	return ok && until.After(m.now()), nil
}

// Purge drops entries whose tokens have expired and returns how many were removed.
func (m *MemoryStore) Purge() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	removed := 0
	for jti, until := range m.revoked {
		if !until.After(now) {
			delete(m.revoked, jti)
			removed++
		}
	}
	return removed
}
