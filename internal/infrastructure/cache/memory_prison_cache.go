package cache

import (
	"context"
	"sync"
	"time"

	appprison "github.com/registers/backend/internal/application/prison"
)

// MemoryPrisonCache is an in-memory prison cache for single-instance
// deployments and tests. Entries expire lazily on read.
type MemoryPrisonCache struct {
	mu      sync.RWMutex
	entries map[string]memoryPrisonEntry
	ttl     time.Duration
	now     func() time.Time
}

type memoryPrisonEntry struct {
	response  appprison.PrisonResponse
	expiresAt time.Time
}

// NewMemoryPrisonCache creates an in-memory prison cache
func NewMemoryPrisonCache(ttl time.Duration) *MemoryPrisonCache {
	return &MemoryPrisonCache{
		entries: make(map[string]memoryPrisonEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

var _ appprison.Cache = (*MemoryPrisonCache)(nil)

// Get returns the cached response for a prison id, reporting whether it was
// found
func (c *MemoryPrisonCache) Get(ctx context.Context, prisonID string) (*appprison.PrisonResponse, bool) {
	c.mu.RLock()
	entry, ok := c.entries[prisonID]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, prisonID)
		c.mu.Unlock()
		return nil, false
	}

	response := entry.response
	return &response, true
}

// Set stores a prison response with the configured TTL
func (c *MemoryPrisonCache) Set(ctx context.Context, response appprison.PrisonResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[response.PrisonID] = memoryPrisonEntry{
		response:  response,
		expiresAt: c.now().Add(c.ttl),
	}
}

// Invalidate drops the cached response for a prison id
func (c *MemoryPrisonCache) Invalidate(ctx context.Context, prisonID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, prisonID)
}
