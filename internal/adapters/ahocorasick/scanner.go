// Package ahocorasick provides multi-pattern trigger-phrase scanning using
// an Aho-Corasick automaton. It wraps the petar-dambovaliev/aho-corasick
// library so the matcher can test every catalog trigger phrase for exact
// containment in one pass over the normalized utterance.
package ahocorasick

import (
	aho "github.com/petar-dambovaliev/aho-corasick"
)

// PhraseScanner finds which trigger phrases appear verbatim in a
// normalized input string. Matches are only reported on word boundaries:
// the phrase "open" must not fire inside "reopened".
type PhraseScanner struct {
	automaton aho.AhoCorasick
	phrases   []string
}

// NewPhraseScanner compiles an automaton from the given normalized phrases.
// The phrase index in results refers back to this slice.
func NewPhraseScanner(phrases []string) *PhraseScanner {
	builder := aho.NewAhoCorasickBuilder(aho.Opts{
		DFA: true,
	})
	p := make([]string, len(phrases))
	copy(p, phrases)
	return &PhraseScanner{
		automaton: builder.Build(p),
		phrases:   p,
	}
}

// Contained returns the indices of all phrases present in text as
// whole-word substrings, deduplicated, in match order.
func (s *PhraseScanner) Contained(text string) []int {
	if len(s.phrases) == 0 || text == "" {
		return nil
	}

	iter := s.automaton.IterOverlappingByte([]byte(text))
	seen := make(map[int]bool)
	var result []int
	for next := iter.Next(); next != nil; next = iter.Next() {
		m := *next
		if !wordBoundary(text, m.Start(), m.End()) {
			continue
		}
		idx := m.Pattern()
		if !seen[idx] {
			seen[idx] = true
			result = append(result, idx)
		}
	}
	return result
}

// PhraseCount returns the number of phrases in the automaton.
func (s *PhraseScanner) PhraseCount() int {
	return len(s.phrases)
}

// Phrase returns the phrase string at the given index.
func (s *PhraseScanner) Phrase(idx int) string {
	if idx < 0 || idx >= len(s.phrases) {
		return ""
	}
	return s.phrases[idx]
}

// wordBoundary reports whether text[start:end] sits on token boundaries.
// Normalized input is space-separated, so a boundary is the string edge
// or a space.
func wordBoundary(text string, start, end int) bool {
	if start > 0 && text[start-1] != ' ' {
		return false
	}
	if end < len(text) && text[end] != ' ' {
		return false
	}
	return true
}
