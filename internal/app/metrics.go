package app

import (
	"sync"
	"time"
)

// metrics accumulates pipeline counters. Guarded by its own mutex so
// recording never contends with catalog reloads.
type metrics struct {
	mu         sync.Mutex
	total      int64
	recognized int64
	cacheHits  int64
	elapsed    time.Duration
}

// record counts one non-cached interpretation.
func (m *metrics) record(d time.Duration, recognized bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.total++
	if recognized {
		m.recognized++
	}
	m.elapsed += d
}

// recordHit counts one cache-served interpretation.
func (m *metrics) recordHit(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.total++
	m.recognized++
	m.cacheHits++
	m.elapsed += d
}

// Metrics is a point-in-time snapshot of interpreter statistics.
type Metrics struct {
	// TotalProcessed counts every Interpret call, recognized or not.
	TotalProcessed int64 `json:"total_processed"`

	// Recognized counts calls that produced a command.
	Recognized int64 `json:"recognized"`

	// CacheHits counts calls served from the result cache.
	CacheHits int64 `json:"cache_hits"`

	// CacheHitRatio is CacheHits over TotalProcessed (0 when idle).
	CacheHitRatio float64 `json:"cache_hit_ratio"`

	// AverageProcessingMs is the mean pipeline time per call.
	AverageProcessingMs float64 `json:"average_processing_ms"`

	// SupportedIntents and SupportedActions describe the live catalog.
	SupportedIntents int `json:"supported_intents"`
	SupportedActions int `json:"supported_actions"`
}

// Metrics returns a snapshot of the interpreter's counters and the live
// catalog's dimensions.
func (it *Interpreter) Metrics() Metrics {
	it.mu.RLock()
	cat := it.cat
	it.mu.RUnlock()

	it.metrics.mu.Lock()
	defer it.metrics.mu.Unlock()

	out := Metrics{
		TotalProcessed:   it.metrics.total,
		Recognized:       it.metrics.recognized,
		CacheHits:        it.metrics.cacheHits,
		SupportedIntents: cat.IntentCount(),
		SupportedActions: cat.ActionCount(),
	}
	if it.metrics.total > 0 {
		out.CacheHitRatio = float64(it.metrics.cacheHits) / float64(it.metrics.total)
		out.AverageProcessingMs = float64(it.metrics.elapsed.Microseconds()) / 1000.0 / float64(it.metrics.total)
	}
	return out
}
