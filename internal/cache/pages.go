// Package cache provides a TTL-based page cache with path invalidation.
package cache

import (
	"strings"
	"sync"
	"time"
)

// Pages caches computed page data keyed by request path (including the query
// string). Entries expire after a TTL; mutation pipelines additionally
// invalidate a path after a confirmed write so the next read recomputes it.
type Pages[V any] struct {
	mu      sync.RWMutex
	entries map[string]*entry[V]
	ttl     time.Duration
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// NewPages creates a page cache whose entries live for ttl.
func NewPages[V any](ttl time.Duration) *Pages[V] {
	return &Pages[V]{
		entries: make(map[string]*entry[V]),
		ttl:     ttl,
	}
}

// Get returns the cached value for key if present and not expired.
func (p *Pages[V]) Get(key string) (V, bool) {
	p.mu.RLock()
	e, ok := p.entries[key]
	p.mu.RUnlock()

	if ok && time.Now().Before(e.expiresAt) {
		return e.value, true
	}
	var zero V
	return zero, false
}

// Put stores a value for key.
func (p *Pages[V]) Put(key string, value V) {
	p.mu.Lock()
	p.entries[key] = &entry[V]{
		value:     value,
		expiresAt: time.Now().Add(p.ttl),
	}
	p.mu.Unlock()
}

// Invalidate marks a path stale: it removes the exact key and every variant
// of it cached under a query string, so all pages of a filtered list are
// recomputed together.
func (p *Pages[V]) Invalidate(path string) {
	prefix := path + "?"
	p.mu.Lock()
	for k := range p.entries {
		if k == path || strings.HasPrefix(k, prefix) {
			delete(p.entries, k)
		}
	}
	p.mu.Unlock()
}

// InvalidateAll clears the entire cache.
func (p *Pages[V]) InvalidateAll() {
	p.mu.Lock()
	p.entries = make(map[string]*entry[V])
	p.mu.Unlock()
}
