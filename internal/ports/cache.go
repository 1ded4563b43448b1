package ports

import "time"

// CacheEntry pairs a cached command with its insertion time.
type CacheEntry struct {
	Command    Command   `json:"command"`
	InsertedAt time.Time `json:"inserted_at"`
}

// ResultCache memoizes normalized-input → Command mappings for
// high-confidence results. Implementations must serialize concurrent
// access per entry: a read racing a write for the same key may observe
// either value, never a partial one.
//
// Capacity is bounded; when the cap is exceeded the least-recently-inserted
// entry is evicted first. The pipeline only inserts context-independent
// results, so a hit is valid for any session.
type ResultCache interface {
	// Lookup returns the cached command for a normalized input string.
	Lookup(normalized string) (Command, bool)

	// Insert stores a command under its normalized input string,
	// evicting the oldest entry if the capacity cap is exceeded.
	Insert(normalized string, cmd Command)

	// Purge drops every entry. Called when the pattern catalog changes,
	// since stale interpretations must not survive a catalog swap.
	Purge()

	// Len reports the number of live entries.
	Len() int

	// Close releases adapter resources (no-op for in-memory caches).
	Close() error
}
