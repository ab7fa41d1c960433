package source

import (
	"context"
	"sync"
	"time"
)

// CachedFetcher wraps another Fetcher with a per-source TTL cache. The
// pipeline is idempotent, so a cache race at worst recomputes; the mutex only
// keeps the map itself consistent.
type CachedFetcher struct {
	next    Fetcher
	ttl     time.Duration
	now     func() time.Time
	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	table   *RawTable
	fetched time.Time
}

// NewCachedFetcher wraps next with a TTL cache. A non-positive ttl disables
// caching entirely.
func NewCachedFetcher(next Fetcher, ttl time.Duration) *CachedFetcher {
	return &CachedFetcher{
		next:    next,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Fetch returns the cached table when fresh, otherwise delegates. Failed
// fetches are never cached.
func (c *CachedFetcher) Fetch(ctx context.Context, id, url string) (*RawTable, error) {
	if c.ttl <= 0 {
		return c.next.Fetch(ctx, id, url)
	}

	c.mu.Lock()
	if e, ok := c.entries[id]; ok && c.now().Sub(e.fetched) < c.ttl {
		c.mu.Unlock()
		return e.table, nil
	}
	c.mu.Unlock()

	table, err := c.next.Fetch(ctx, id, url)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[id] = cacheEntry{table: table, fetched: c.now()}
	c.mu.Unlock()
	return table, nil
}

// Invalidate drops every cached entry, forcing fresh fetches.
func (c *CachedFetcher) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}
