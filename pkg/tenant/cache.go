package tenant

import (
	"context"
	"sync"
	"time"
)

// Cache holds loaded tenants between requests so the hot path does not hit
// the store on every page view.
type Cache interface {
	Get(ctx context.Context, slug string) (*Tenant, bool)
	Set(ctx context.Context, slug string, t *Tenant, ttl time.Duration)
	// Delete removes a cache entry, used when a billing event changes the
	// tenant's status.
	Delete(ctx context.Context, slug string)
	Close() error
}

// DefaultCacheSize bounds the in-memory cache.
const DefaultCacheSize = 1000

type memoryEntry struct {
	tenant    *Tenant
	expiresAt time.Time
}

// memoryCache is a size-bounded TTL cache with LRU eviction.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	order   []string
	maxSize int
	stop    chan struct{}
	once    sync.Once
}

// NewMemoryCache creates an in-memory cache with background expiry sweeps.
func NewMemoryCache(maxSize int) Cache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	c := &memoryCache{
		entries: make(map[string]memoryEntry),
		maxSize: maxSize,
		stop:    make(chan struct{}),
	}
	go c.sweep()
	return c
}

func (c *memoryCache) Get(ctx context.Context, slug string) (*Tenant, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[slug]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.entries, slug)
		c.remove(slug)
		return nil, false
	}
	c.bump(slug)
	return entry.tenant, true
}

func (c *memoryCache) Set(ctx context.Context, slug string, t *Tenant, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[slug]; !exists && len(c.entries) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[slug] = memoryEntry{tenant: t, expiresAt: time.Now().Add(ttl)}
	c.bump(slug)
}

func (c *memoryCache) Delete(ctx context.Context, slug string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, slug)
	c.remove(slug)
}

func (c *memoryCache) Close() error {
	c.once.Do(func() { close(c.stop) })
	return nil
}

func (c *memoryCache) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for slug, entry := range c.entries {
				if now.After(entry.expiresAt) {
					delete(c.entries, slug)
					c.remove(slug)
				}
			}
			c.mu.Unlock()
		case <-c.stop:
			return
		}
	}
}

// bump moves slug to the most-recently-used end. Caller holds the lock.
func (c *memoryCache) bump(slug string) {
	c.remove(slug)
	c.order = append(c.order, slug)
}

// remove deletes slug from the LRU order. Caller holds the lock.
func (c *memoryCache) remove(slug string) {
	for i, s := range c.order {
		if s == slug {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// noopCache disables caching; every request loads from the store.
type noopCache struct{}

// NewNoopCache returns a cache that never stores anything.
func NewNoopCache() Cache { return noopCache{} }

func (noopCache) Get(ctx context.Context, slug string) (*Tenant, bool)           { return nil, false }
func (noopCache) Set(ctx context.Context, slug string, t *Tenant, _ time.Duration) {}
func (noopCache) Delete(ctx context.Context, slug string)                        {}
func (noopCache) Close() error                                                   { return nil }
