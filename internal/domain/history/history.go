// Package history implements the per-session command history: a bounded
// ring of the most recent canonical forms, oldest evicted first. The
// context booster reads it for recency-based disambiguation; nothing is
// ever persisted across process restarts.
//
// Thread safety: NOT safe for concurrent use. Each session owns its own
// ring and the app serializes access per session.
package history

import (
	"time"

	"github.com/corey/hark/internal/ports"
)

// Entry records one successful interpretation.
type Entry struct {
	Intent    ports.Intent
	Action    string
	Canonical string
	At        time.Time
}

// Ring is a fixed-capacity ring buffer of history entries.
type Ring struct {
	entries []Entry
	head    int // index of the oldest entry
	size    int
}

// New creates an empty ring with the given capacity (minimum 1).
func New(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{entries: make([]Entry, capacity)}
}

// Append adds an entry, evicting the oldest when full.
func (r *Ring) Append(e Entry) {
	if r.size < len(r.entries) {
		r.entries[(r.head+r.size)%len(r.entries)] = e
		r.size++
		return
	}
	r.entries[r.head] = e
	r.head = (r.head + 1) % len(r.entries)
}

// Last returns the most recent entry.
func (r *Ring) Last() (Entry, bool) {
	if r.size == 0 {
		return Entry{}, false
	}
	return r.entries[(r.head+r.size-1)%len(r.entries)], true
}

// Len returns the number of live entries (never exceeds capacity).
func (r *Ring) Len() int {
	return r.size
}

// Cap returns the configured capacity.
func (r *Ring) Cap() int {
	return len(r.entries)
}

// Entries returns the live entries, oldest first.
func (r *Ring) Entries() []Entry {
	out := make([]Entry, r.size)
	for i := 0; i < r.size; i++ {
		out[i] = r.entries[(r.head+i)%len(r.entries)]
	}
	return out
}
