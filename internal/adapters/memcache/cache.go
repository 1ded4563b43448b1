// Package memcache implements ports.ResultCache as a bounded in-memory
// map with least-recently-inserted eviction. This is the default cache:
// the interpreter core is pure in-memory computation, so the cache lives
// for the process lifetime and vanishes with it.
package memcache

import (
	"sync"
	"time"

	"github.com/corey/hark/internal/ports"
)

// Cache is a bounded, concurrency-safe result cache.
// A read racing a write for the same key returns either the old or the
// new value, never a partial one (map access is fully serialized).
type Cache struct {
	mu       sync.RWMutex
	entries  map[string]ports.CacheEntry
	order    []string // insertion order, oldest first
	capacity int
}

// New creates a cache holding at most capacity entries (minimum 1).
func New(capacity int) *Cache {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache{
		entries:  make(map[string]ports.CacheEntry, capacity),
		capacity: capacity,
	}
}

// Lookup returns the cached command for a normalized input string.
func (c *Cache) Lookup(normalized string) (ports.Command, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[normalized]
	if !ok {
		return ports.Command{}, false
	}
	return e.Command, true
}

// Insert stores a command, evicting the least-recently-inserted entry
// when the cap is exceeded. Re-inserting an existing key refreshes its
// insertion position (last-writer-wins).
func (c *Cache) Insert(normalized string, cmd ports.Command) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[normalized]; exists {
		c.removeFromOrder(normalized)
	} else if len(c.entries) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[normalized] = ports.CacheEntry{Command: cmd, InsertedAt: time.Now()}
	c.order = append(c.order, normalized)
}

// Purge drops every entry.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]ports.CacheEntry, c.capacity)
	c.order = c.order[:0]
}

// Len reports the number of live entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close is a no-op for the in-memory cache.
func (c *Cache) Close() error {
	return nil
}

// removeFromOrder drops one key from the insertion-order slice.
// Caller holds the write lock.
func (c *Cache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
