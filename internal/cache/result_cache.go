package cache

import (
	"strings"
	"sync"
	"time"
)

// ResultCache memoizes operation results under (operation, key) with an
// absolute per-entry expiry. Reads that hit an expired entry are misses:
// stale values are recomputed, never served.
//
// Entries are replaced wholesale; nothing edits a cached value in place.
// Concurrent misses on the same key may compute redundantly, which the
// read-mostly dashboard workload tolerates.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration

	nowFn func() time.Time
}

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// opSeparator splits the operation name from the rest of the key.
const opSeparator = "|"

// Key builds a cache key from an operation name and its qualifier.
func Key(operation, qualifier string) string {
	return operation + opSeparator + qualifier
}

// New creates a result cache whose entries live for ttl after each write.
func New(ttl time.Duration) *ResultCache {
	return &ResultCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		nowFn:   time.Now,
	}
}

// Get returns the live value for key, if any.
func (c *ResultCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.nowFn().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with the cache's TTL.
func (c *ResultCache) Set(key string, value interface{}) {
	c.mu.Lock()
	c.entries[key] = entry{
		value:     value,
		expiresAt: c.nowFn().Add(c.ttl),
	}
	c.mu.Unlock()
}

// Clear drops every entry.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// ClearOperation drops every entry memoized for one operation.
func (c *ResultCache) ClearOperation(operation string) {
	prefix := operation + opSeparator

	c.mu.Lock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}

// Len returns the number of entries, expired ones included.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
