package auth

import (
	"context"
	"sync"
	"time"
)

// SessionCache tracks issued admin tokens so logout can revoke them before
// expiry. A token must be registered on login and present at request time.
type SessionCache interface {
	Register(ctx context.Context, token string, expiresAt time.Time) error
	Active(ctx context.Context, token string) (bool, error)
	Revoke(ctx context.Context, token string) error
}

// MemorySessionCache is the in-process fallback when Redis is not
// configured. Sessions do not survive a restart, matching single-instance
// deployments.
type MemorySessionCache struct {
	mu       sync.Mutex
	sessions map[string]time.Time
}

func NewMemorySessionCache() *MemorySessionCache {
	return &MemorySessionCache{sessions: make(map[string]time.Time)}
}

func (c *MemorySessionCache) Register(ctx context.Context, token string, expiresAt time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[token] = expiresAt
	c.pruneLocked()
	return nil
}

func (c *MemorySessionCache) Active(ctx context.Context, token string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt, ok := c.sessions[token]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiresAt) {
		delete(c.sessions, token)
		return false, nil
	}
	return true, nil
}

func (c *MemorySessionCache) Revoke(ctx context.Context, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, token)
	return nil
}

func (c *MemorySessionCache) pruneLocked() {
	now := time.Now()
	for token, expiresAt := range c.sessions {
		if now.After(expiresAt) {
			delete(c.sessions, token)
		}
	}
}
