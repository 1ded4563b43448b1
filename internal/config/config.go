// Package config holds every tunable threshold of the interpreter.
// Fuzzy scoring is inherently approximate, so none of these values are
// hard-coded in domain logic: tests and deployments tune behavior here
// without code changes.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries interpreter thresholds plus catalog overrides.
type Config struct {
	// DiscardFloor is the minimum candidate score; patterns scoring
	// below it are not candidates at all.
	DiscardFloor float64 `yaml:"discard_floor"`

	// CacheThreshold is the minimum final confidence for a result to be
	// memoized. Caching ambiguous results would freeze potentially wrong
	// interpretations, so this sits high.
	CacheThreshold float64 `yaml:"cache_threshold"`

	// LowConfidence is the threshold below which the result is flagged
	// and suggestions are attached for caller-side clarification.
	LowConfidence float64 `yaml:"low_confidence"`

	// EditTolerance is the maximum absolute edit distance for a fuzzy
	// token match. Tokens shorter than four characters always tolerate
	// at most one edit regardless of this value.
	EditTolerance int `yaml:"edit_tolerance"`

	// FuzzyTokenWeight is the per-token credit for a fuzzy (edit
	// distance) match, versus 1.0 for an exact or synonym match. Keeping
	// it below the cache threshold means typo'd input is never memoized.
	FuzzyTokenWeight float64 `yaml:"fuzzy_token_weight"`

	// MissingParamPenalty multiplies confidence when a required slot
	// fails extraction. The candidate still surfaces, explicitly flagged,
	// rather than silently failing.
	MissingParamPenalty float64 `yaml:"missing_param_penalty"`

	// ContinuityBonus is added when the intent matches the most recent
	// history entry for the session (conversational continuity).
	ContinuityBonus float64 `yaml:"continuity_bonus"`

	// ContextBonus is added when a resolved path parameter matches the
	// session's current file or directory.
	ContextBonus float64 `yaml:"context_bonus"`

	// HistoryCapacity bounds the per-session command history ring.
	HistoryCapacity int `yaml:"history_capacity"`

	// CacheCapacity bounds the result cache; least-recently-inserted
	// entries are evicted beyond it.
	CacheCapacity int `yaml:"cache_capacity"`

	// SuggestionLimit caps the alternatives attached to low-confidence
	// and unrecognized results.
	SuggestionLimit int `yaml:"suggestion_limit"`

	// Synonyms adds input-token → trigger-token mappings on top of the
	// built-in synonym table.
	Synonyms map[string]string `yaml:"synonyms,omitempty"`

	// Triggers adds trigger phrases per canonical action name
	// ("task_management.create": ["note down"]).
	Triggers map[string][]string `yaml:"triggers,omitempty"`
}

// Default returns the canonical thresholds.
func Default() Config {
	return Config{
		DiscardFloor:        0.3,
		CacheThreshold:      0.9,
		LowConfidence:       0.5,
		EditTolerance:       2,
		FuzzyTokenWeight:    0.75,
		MissingParamPenalty: 0.7,
		ContinuityBonus:     0.05,
		ContextBonus:        0.1,
		HistoryCapacity:     20,
		CacheCapacity:       256,
		SuggestionLimit:     3,
	}
}

// Load reads a YAML config file and merges it over the defaults.
// A missing file is not an error — defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects out-of-range thresholds.
func (c *Config) Validate() error {
	for name, v := range map[string]float64{
		"discard_floor":         c.DiscardFloor,
		"cache_threshold":       c.CacheThreshold,
		"low_confidence":        c.LowConfidence,
		"fuzzy_token_weight":    c.FuzzyTokenWeight,
		"missing_param_penalty": c.MissingParamPenalty,
		"continuity_bonus":      c.ContinuityBonus,
		"context_bonus":         c.ContextBonus,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be in [0,1], got %v", name, v)
		}
	}
	if c.EditTolerance < 0 {
		return fmt.Errorf("edit_tolerance must be >= 0, got %d", c.EditTolerance)
	}
	if c.HistoryCapacity <= 0 {
		return fmt.Errorf("history_capacity must be > 0, got %d", c.HistoryCapacity)
	}
	if c.CacheCapacity <= 0 {
		return fmt.Errorf("cache_capacity must be > 0, got %d", c.CacheCapacity)
	}
	if c.SuggestionLimit < 0 {
		return fmt.Errorf("suggestion_limit must be >= 0, got %d", c.SuggestionLimit)
	}
	return nil
}
