// Package normalize prepares raw utterances for matching.
// Normalization is deterministic and pure: lowercase, strip punctuation,
// collapse whitespace. The normalized whole-string form doubles as the
// result-cache key, so two utterances that normalize identically are the
// same request as far as the pipeline is concerned.
package normalize

import (
	"strings"
	"unicode"
)

// Normalize converts raw text into a normalized whole-string form and its
// token sequence.
// Rules:
//  1. Lowercase
//  2. Drop apostrophes ("what's" -> "whats")
//  3. Replace every other non-alphanumeric run with a single space
//  4. Collapse whitespace; tokens are the resulting fields
//
// Empty or whitespace-only input returns ("", nil) — the pipeline treats
// that as degenerate input, never an error.
func Normalize(raw string) (string, []string) {
	if raw == "" {
		return "", nil
	}

	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range strings.ToLower(raw) {
		switch {
		case r == '\'' || r == '’':
			// drop, keeping contractions as one token
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}

	tokens := strings.Fields(b.String())
	if len(tokens) == 0 {
		return "", nil
	}
	return strings.Join(tokens, " "), tokens
}

// Token normalizes a single token from the original (non-normalized) text
// so it can be compared against normalized trigger tokens. Unlike Normalize
// it keeps interior punctuation such as path separators and dots, trimming
// only leading/trailing punctuation ("test.py," -> "test.py").
func Token(raw string) string {
	return strings.TrimFunc(strings.ToLower(raw), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
