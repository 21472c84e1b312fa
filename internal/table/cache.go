package table

import (
	"sync"
	"time"
)

// CachedService wraps a Service and reuses the file's modification time for
// a TTL. The status bar asks for it on every render; with the cache that is
// at most one stat per TTL. Save primes the entry with the time of the
// write, so the session's own saves never look like outside changes.
type CachedService struct {
	inner Service
	ttl   time.Duration

	mu  sync.Mutex
	mod *cacheEntry
}

type cacheEntry struct {
	val    time.Time
	err    error
	expiry time.Time
}

// Compile-time checks.
var (
	_ Service   = (*CachedService)(nil)
	_ Refresher = (*CachedService)(nil)
)

// NewCachedService wraps inner with a TTL cache.
func NewCachedService(inner Service, ttl time.Duration) *CachedService {
	return &CachedService{inner: inner, ttl: ttl}
}

// Refresh drops the cached modification time.
func (c *CachedService) Refresh() {
	c.mu.Lock()
	c.mod = nil
	c.mu.Unlock()
}

// Path delegates to the inner service.
func (c *CachedService) Path() string { return c.inner.Path() }

// Load always reads through. Reloads follow a change, so a cached document
// would be the stale one.
func (c *CachedService) Load() (*Table, error) { return c.inner.Load() }

// ModTime returns the file modification time (cached).
func (c *CachedService) ModTime() (time.Time, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mod != nil && time.Now().Before(c.mod.expiry) {
		return c.mod.val, c.mod.err
	}
	v, err := c.inner.ModTime()
	c.mod = &cacheEntry{val: v, err: err, expiry: time.Now().Add(c.ttl)}
	return v, err
}

// Save writes through and primes the modification time with the new one.
func (c *CachedService) Save(t *Table) error {
	if err := c.inner.Save(t); err != nil {
		c.Refresh()
		return err
	}
	c.Refresh()
	_, err := c.ModTime()
	return err
}
