package session

import (
	"context"
	"sync"
	"time"
)

// MemoryManager keeps sessions in process memory. It is the fallback when no
// Redis address is configured, matching the single-process deployment model.
type MemoryManager struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	expires map[string]time.Time
}

// NewMemoryManager creates an in-memory session manager.
func NewMemoryManager(ttl time.Duration) *MemoryManager {
	return &MemoryManager{
		ttl:     ttl,
		now:     time.Now,
		expires: make(map[string]time.Time),
	}
}

// Issue creates a new token and records its expiry. Expired entries are
// purged opportunistically so the map cannot grow unbounded.
func (m *MemoryManager) Issue(ctx context.Context) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	now := m.now()
	for t, exp := range m.expires {
		if now.After(exp) {
			delete(m.expires, t)
		}
	}
	m.expires[token] = now.Add(m.ttl)
	m.mu.Unlock()

	return token, nil
}

// Validate reports whether token exists and has not expired.
func (m *MemoryManager) Validate(ctx context.Context, token string) (bool, error) {
	m.mu.RLock()
	exp, ok := m.expires[token]
	m.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if m.now().After(exp) {
		m.mu.Lock()
		delete(m.expires, token)
		m.mu.Unlock()
		return false, nil
	}
	return true, nil
}

// Revoke drops the token.
func (m *MemoryManager) Revoke(ctx context.Context, token string) error {
	m.mu.Lock()
	delete(m.expires, token)
	m.mu.Unlock()
	return nil
}
