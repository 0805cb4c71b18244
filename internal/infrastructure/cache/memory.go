package cache

import (
	"encoding/json"
	"sync"
	"time"

	"stock-quote-proxy/internal/application"
	"stock-quote-proxy/internal/domain"
	"stock-quote-proxy/internal/infrastructure/metrics"
)

var _ application.QuoteCache = (*MemoryCache)(nil)

// MemoryCache is the process-local quote store. Entries are only ever
// overwritten, never evicted; everything is discarded at exit.
type MemoryCache struct {
	mu          sync.RWMutex
	entries     map[string]domain.Quote
	lastUpdated int64
}

func NewMemory() *MemoryCache {
	return &MemoryCache{entries: map[string]domain.Quote{}}
}

func (c *MemoryCache) Put(q domain.Quote) {
	c.mu.Lock()
	c.entries[q.Symbol] = q
	c.mu.Unlock()
}

func (c *MemoryCache) Get(symbol string) (domain.Quote, bool) {
	c.mu.RLock()
	q, ok := c.entries[symbol]
	c.mu.RUnlock()
	if ok {
		metrics.RecordCacheHit("memory")
	} else {
		metrics.RecordCacheMiss("memory")
	}
	return q, ok
}

func (c *MemoryCache) Snapshot() map[string]json.RawMessage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]json.RawMessage, len(c.entries))
	for sym, q := range c.entries {
		out[sym] = q.Payload
	}
	return out
}

func (c *MemoryCache) TouchLastUpdated(t time.Time) {
	c.mu.Lock()
	c.lastUpdated = t.UnixMilli()
	c.mu.Unlock()
}

func (c *MemoryCache) LastUpdated() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastUpdated
}

func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
