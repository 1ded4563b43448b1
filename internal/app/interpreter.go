// Package app wires the domain pipeline together behind a single entry
// point. It owns the interpretation lifecycle: normalize, cache lookup,
// match, extract, boost, memoize, record history. Adapters (cache
// backend, phrase scanner, config watcher) are injected so the pipeline
// itself stays free of I/O.
package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/corey/hark/internal/adapters/ahocorasick"
	fsw "github.com/corey/hark/internal/adapters/fsnotify"
	"github.com/corey/hark/internal/config"
	"github.com/corey/hark/internal/domain/boost"
	"github.com/corey/hark/internal/domain/catalog"
	"github.com/corey/hark/internal/domain/extract"
	"github.com/corey/hark/internal/domain/history"
	"github.com/corey/hark/internal/domain/match"
	"github.com/corey/hark/internal/domain/normalize"
	"github.com/corey/hark/internal/ports"
)

// errUnrecognized is reported when no catalog entry scores above the
// discard floor, or the input is empty after normalization.
const errUnrecognized = "could not understand the command"

// Interpreter is the top-level command interpreter. Safe for concurrent
// use: catalog and matcher are immutable between reloads, session
// history is guarded separately, and cache backends synchronize
// themselves.
type Interpreter struct {
	mu      sync.RWMutex // guards cfg, cat, matcher across reloads
	cfg     config.Config
	cat     *catalog.Catalog
	matcher *match.Matcher

	cache ports.ResultCache
	log   *zap.Logger

	sessMu   sync.Mutex
	sessions map[string]*history.Ring

	metrics metrics

	watcher *fsw.Watcher
}

// New builds an interpreter over the built-in catalog extended with the
// config's synonym and trigger overrides. cache must not be nil; a nil
// logger disables logging.
func New(cfg config.Config, cache ports.ResultCache, log *zap.Logger) (*Interpreter, error) {
	if cache == nil {
		return nil, fmt.Errorf("nil result cache")
	}
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cat := catalog.BuiltinWith(cfg.Synonyms, cfg.Triggers)
	return &Interpreter{
		cfg:      cfg,
		cat:      cat,
		matcher:  newMatcher(cat, cfg),
		cache:    cache,
		log:      log,
		sessions: make(map[string]*history.Ring),
	}, nil
}

// newMatcher compiles the phrase automaton and builds the matcher.
func newMatcher(cat *catalog.Catalog, cfg config.Config) *match.Matcher {
	return match.New(cat, cfg, func(phrases []string) match.Scanner {
		return ahocorasick.NewPhraseScanner(phrases)
	})
}

// Interpret runs the full pipeline on one utterance. ctx carries the
// caller's session state; sessionID scopes history (an empty ID gets a
// fresh anonymous session). Identical input with identical catalog,
// config, context, and history always produces the identical result.
func (it *Interpreter) Interpret(utterance string, ctx ports.SessionContext, sessionID string) ports.InterpretationResult {
	start := time.Now()
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	it.mu.RLock()
	cfg, matcher := it.cfg, it.matcher
	it.mu.RUnlock()

	normalized, tokens := normalize.Normalize(utterance)
	if normalized == "" {
		it.metrics.record(time.Since(start), false)
		return ports.InterpretationResult{
			Success:      false,
			Error:        errUnrecognized,
			ProcessingMs: msSince(start),
		}
	}

	// Memoized fast path. Cached commands predate this call's context,
	// so only context-independent results are ever inserted.
	if cmd, ok := it.cache.Lookup(normalized); ok {
		it.appendHistory(sessionID, &cmd)
		it.metrics.recordHit(time.Since(start))
		it.log.Debug("cache hit",
			zap.String("input", normalized),
			zap.String("canonical", cmd.Canonical))
		cmd.Duration = time.Since(start)
		return resultFor(&cmd, true, start)
	}

	cands := matcher.Rank(normalized, tokens)
	if len(cands) == 0 {
		it.metrics.record(time.Since(start), false)
		it.log.Debug("unrecognized input", zap.String("input", normalized))
		return ports.InterpretationResult{
			Success:      false,
			Error:        errUnrecognized,
			Suggestions:  matcher.Suggest(normalized, tokens, cfg.SuggestionLimit, ""),
			ProcessingMs: msSince(start),
		}
	}

	best := cands[0]
	params, missing := extract.Resolve(best.Action, utterance, best.Consumed, ctx)

	confidence := best.Score
	for range missing {
		confidence *= cfg.MissingParamPenalty
	}

	cmd := ports.Command{
		Intent:  best.Action.Intent,
		Action:  best.Action.Name,
		Params:  params,
		Missing: missing,
	}

	last := it.lastEntry(sessionID)
	confidence = boost.Apply(confidence, &cmd, ctx, last, cfg)

	cmd.Confidence = confidence
	cmd.Canonical = ports.CanonicalForm(cmd.Intent, cmd.Action, cmd.Params)
	cmd.Duration = time.Since(start)

	// Memoize only clean, high-confidence, context-free results: a
	// context-dependent parameter would go stale the moment the caller's
	// session moves on.
	if confidence >= cfg.CacheThreshold && len(missing) == 0 && !usesContext(&cmd, ctx) {
		it.cache.Insert(normalized, cmd)
	}

	it.appendHistory(sessionID, &cmd)
	it.metrics.record(time.Since(start), true)

	res := resultFor(&cmd, false, start)
	if confidence < cfg.LowConfidence {
		res.Suggestions = matcher.Suggest(normalized, tokens, cfg.SuggestionLimit, best.Action.Canonical())
	}

	it.log.Debug("interpreted",
		zap.String("input", normalized),
		zap.String("canonical", cmd.Canonical),
		zap.Float64("confidence", confidence),
		zap.Bool("exact", best.Exact))
	return res
}

// resultFor builds the success response for a finished command.
func resultFor(cmd *ports.Command, cacheHit bool, start time.Time) ports.InterpretationResult {
	return ports.InterpretationResult{
		Success:      true,
		Command:      cmd,
		Confidence:   cmd.Confidence,
		Canonical:    cmd.Canonical,
		ProcessingMs: msSince(start),
		CacheHit:     cacheHit,
	}
}

// usesContext reports whether any resolved parameter came from (or names)
// the session context. Such results must not be memoized.
func usesContext(cmd *ports.Command, ctx ports.SessionContext) bool {
	for _, p := range cmd.Params {
		if p.Type != ports.ParamPath || p.Text == "" {
			continue
		}
		if p.Text == ctx.CurrentFile || p.Text == ctx.CurrentDir {
			return true
		}
	}
	return false
}

// appendHistory records a command in the session's ring, creating the
// session on first use.
func (it *Interpreter) appendHistory(sessionID string, cmd *ports.Command) {
	it.mu.RLock()
	capacity := it.cfg.HistoryCapacity
	it.mu.RUnlock()

	it.sessMu.Lock()
	defer it.sessMu.Unlock()

	ring, ok := it.sessions[sessionID]
	if !ok {
		ring = history.New(capacity)
		it.sessions[sessionID] = ring
	}
	ring.Append(history.Entry{
		Intent:    cmd.Intent,
		Action:    cmd.Action,
		Canonical: cmd.Canonical,
		At:        time.Now(),
	})
}

// lastEntry returns the most recent history entry for a session, or nil.
func (it *Interpreter) lastEntry(sessionID string) *history.Entry {
	it.sessMu.Lock()
	defer it.sessMu.Unlock()

	ring, ok := it.sessions[sessionID]
	if !ok {
		return nil
	}
	if e, ok := ring.Last(); ok {
		return &e
	}
	return nil
}

// History returns a session's recorded entries, oldest first.
func (it *Interpreter) History(sessionID string) []history.Entry {
	it.sessMu.Lock()
	defer it.sessMu.Unlock()
	if ring, ok := it.sessions[sessionID]; ok {
		return ring.Entries()
	}
	return nil
}

// Catalog returns the live catalog (for the CLI's catalog listing).
func (it *Interpreter) Catalog() *catalog.Catalog {
	it.mu.RLock()
	defer it.mu.RUnlock()
	return it.cat
}

// Reload swaps in a new configuration, rebuilds the catalog and matcher,
// and purges the result cache: cached commands are only valid against
// the catalog that produced them.
func (it *Interpreter) Reload(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	cat := catalog.BuiltinWith(cfg.Synonyms, cfg.Triggers)
	matcher := newMatcher(cat, cfg)

	it.mu.Lock()
	fpChanged := cat.Fingerprint() != it.cat.Fingerprint()
	it.cfg, it.cat, it.matcher = cfg, cat, matcher
	it.mu.Unlock()

	if fpChanged {
		it.cache.Purge()
	}
	it.log.Info("configuration reloaded",
		zap.Bool("cache_purged", fpChanged),
		zap.String("fingerprint", cat.Fingerprint()))
	return nil
}

// WatchConfig reloads the interpreter whenever the config file changes.
// A reload that fails to parse keeps the previous configuration.
func (it *Interpreter) WatchConfig(path string) error {
	w, err := fsw.New(path, func() {
		cfg, err := config.Load(path)
		if err != nil {
			it.log.Warn("config reload skipped", zap.Error(err))
			return
		}
		if err := it.Reload(cfg); err != nil {
			it.log.Warn("config reload failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	it.watcher = w
	return nil
}

// Close stops the config watcher (if any) and closes the cache backend.
func (it *Interpreter) Close() error {
	if it.watcher != nil {
		if err := it.watcher.Stop(); err != nil {
			return err
		}
	}
	return it.cache.Close()
}

// msSince returns elapsed wall-clock time in fractional milliseconds.
func msSince(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
