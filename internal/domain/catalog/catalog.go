// Package catalog defines the static pattern catalog: the table of every
// intent, action, trigger phrase, and parameter slot the interpreter can
// recognize. The catalog is immutable after construction and safely shared
// read-only across concurrent interpretation calls; swapping in a new
// catalog (config reload) requires purging the result cache, which the
// fingerprint makes cheap to detect.
package catalog

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"

	"github.com/corey/hark/internal/domain/normalize"
	"github.com/corey/hark/internal/ports"
)

// Slot declares one named, typed parameter an action expects to extract
// from the utterance.
type Slot struct {
	// Name is the parameter name in the resulting Command ("filename").
	Name string

	// Type selects the extraction strategy.
	Type ports.ParamType

	// Required slots that fail extraction penalize confidence; optional
	// slots simply stay absent.
	Required bool

	// Keywords are slot-indicating words for path/string capture: the
	// token immediately following one of these is the value ("file" in
	// "open file test.py").
	Keywords []string

	// Values enumerates the legal keywords for ParamEnum slots.
	Values []string

	// Min and Max clamp ParamInt values.
	Min, Max int

	// ContextFallback names the SessionContext field ("file" or "dir")
	// that resolves a path slot when the utterance points at the current
	// context ("analyze this file") instead of naming a literal path.
	ContextFallback string
}

// Pattern is one trigger phrase in normalized form.
type Pattern struct {
	// Phrase is the full normalized trigger phrase ("create task").
	Phrase string

	// Tokens is the phrase split into normalized tokens. More tokens
	// means a more specific pattern, which wins score ties.
	Tokens []string
}

// Action is one operation within an intent.
type Action struct {
	Intent ports.Intent

	// Name is unique within the intent ("create", "analyze_file").
	Name string

	// Patterns holds trigger phrases, multi-word first. Declaration
	// order is the final deterministic tie-break during matching.
	Patterns []Pattern

	// Slots lists the parameters to extract, in canonical-form order.
	Slots []Slot
}

// Canonical returns the action's canonical name ("task_management.create").
func (a *Action) Canonical() string {
	return fmt.Sprintf("%s.%s", a.Intent, a.Name)
}

// Catalog is the full immutable pattern table.
type Catalog struct {
	actions  []Action
	synonyms map[string]string
	fp       string
}

// New builds a catalog from actions and a synonym table. Extra synonyms
// and trigger phrases (from config overrides) are merged before the
// fingerprint is computed. Trigger phrases are normalized so matching and
// cache keys agree on token boundaries.
func New(actions []Action, synonyms map[string]string, extraSynonyms map[string]string, extraTriggers map[string][]string) *Catalog {
	merged := make(map[string]string, len(synonyms)+len(extraSynonyms))
	for k, v := range synonyms {
		merged[normalize.Token(k)] = normalize.Token(v)
	}
	for k, v := range extraSynonyms {
		merged[normalize.Token(k)] = normalize.Token(v)
	}

	out := make([]Action, len(actions))
	copy(out, actions)
	for i := range out {
		if extra, ok := extraTriggers[out[i].Canonical()]; ok {
			for _, phrase := range extra {
				if p, ok := makePattern(phrase); ok {
					out[i].Patterns = append(out[i].Patterns, p)
				}
			}
		}
	}

	c := &Catalog{actions: out, synonyms: merged}
	c.fp = c.computeFingerprint()
	return c
}

// makePattern normalizes a raw trigger phrase into a Pattern.
func makePattern(raw string) (Pattern, bool) {
	phrase, tokens := normalize.Normalize(raw)
	if phrase == "" {
		return Pattern{}, false
	}
	return Pattern{Phrase: phrase, Tokens: tokens}, true
}

// Actions returns the action table in declaration order.
// Callers must not mutate it.
func (c *Catalog) Actions() []Action {
	return c.actions
}

// Synonym resolves an input token to the trigger token it counts as.
// Returns ("", false) when the token has no declared synonym.
func (c *Catalog) Synonym(token string) (string, bool) {
	s, ok := c.synonyms[token]
	return s, ok
}

// ActionCount returns the total number of actions across all intents.
func (c *Catalog) ActionCount() int {
	return len(c.actions)
}

// IntentCount returns the number of distinct intents that have actions.
func (c *Catalog) IntentCount() int {
	seen := make(map[ports.Intent]bool, ports.IntentCount)
	for i := range c.actions {
		seen[c.actions[i].Intent] = true
	}
	return len(seen)
}

// Fingerprint is a stable hash of every phrase, slot, and synonym.
// Persistent caches store it and wipe themselves when it changes.
func (c *Catalog) Fingerprint() string {
	return c.fp
}

func (c *Catalog) computeFingerprint() string {
	h := fnv.New64a()
	for i := range c.actions {
		a := &c.actions[i]
		fmt.Fprintf(h, "%s|", a.Canonical())
		for _, p := range a.Patterns {
			fmt.Fprintf(h, "%s;", p.Phrase)
		}
		for _, s := range a.Slots {
			fmt.Fprintf(h, "%s:%d:%t;", s.Name, s.Type, s.Required)
		}
	}
	keys := make([]string, 0, len(c.synonyms))
	for k := range c.synonyms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(h, "%s=%s;", k, c.synonyms[k])
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// Phrases returns every trigger phrase with its owning action index,
// in catalog order. The matcher feeds this to the exact-phrase scanner.
func (c *Catalog) Phrases() (phrases []string, owner []int) {
	for i := range c.actions {
		for _, p := range c.actions[i].Patterns {
			phrases = append(phrases, p.Phrase)
			owner = append(owner, i)
		}
	}
	return phrases, owner
}

// Describe renders a human-readable action summary for the CLI.
func (a *Action) Describe() string {
	triggers := make([]string, len(a.Patterns))
	for i, p := range a.Patterns {
		triggers[i] = p.Phrase
	}
	return fmt.Sprintf("%s — %s", a.Canonical(), strings.Join(triggers, ", "))
}
