// Package match scores normalized utterances against the pattern catalog
// and produces ranked candidates. Matching is deterministic and rule
// driven: exact phrase containment first, then token-set overlap with
// bounded edit distance for typo tolerance. No statistical model — the
// catalog is small and finite, so explainable scoring wins.
package match

import (
	"sort"

	"github.com/agnivade/levenshtein"

	"github.com/corey/hark/internal/config"
	"github.com/corey/hark/internal/domain/catalog"
)

// Scanner reports which trigger phrases are contained verbatim in a
// normalized input string, as indices into the phrase list the scanner
// was built from.
type Scanner interface {
	Contained(text string) []int
}

// ScannerBuilder compiles a Scanner from normalized phrases. The adapter
// implementation wraps an Aho-Corasick automaton; tests may substitute a
// naive one.
type ScannerBuilder func(phrases []string) Scanner

// Candidate is a scored, provisional match between the input and one
// catalog action. Candidates live only for the duration of one
// interpretation call.
type Candidate struct {
	// Action points into the catalog's action table.
	Action *catalog.Action

	// Pattern is the best-scoring trigger pattern for this action.
	Pattern catalog.Pattern

	// Score is the raw match score in [0,1] before extraction penalties
	// and context boosting.
	Score float64

	// Exact is true when the full trigger phrase was contained verbatim.
	Exact bool

	// Matched lists the trigger tokens that matched.
	Matched []string

	// Consumed is the set of normalized input tokens claimed by the
	// trigger match. The extractor excludes these from free-text spans.
	Consumed map[string]bool
}

// Matcher evaluates input against every catalog entry. Immutable after
// construction; safe for concurrent use.
type Matcher struct {
	cat     *catalog.Catalog
	cfg     config.Config
	scanner Scanner

	// phraseAction[i] / phrasePattern[i] locate the owning action and
	// pattern of scanner phrase i.
	phraseAction  []int
	phrasePattern []int
}

// New builds a matcher over the given catalog. The scanner is compiled
// from the catalog's phrases via build, so phrase indices line up.
func New(cat *catalog.Catalog, cfg config.Config, build ScannerBuilder) *Matcher {
	m := &Matcher{cat: cat, cfg: cfg}

	var phrases []string
	actions := cat.Actions()
	for ai := range actions {
		for pi := range actions[ai].Patterns {
			phrases = append(phrases, actions[ai].Patterns[pi].Phrase)
			m.phraseAction = append(m.phraseAction, ai)
			m.phrasePattern = append(m.phrasePattern, pi)
		}
	}
	m.scanner = build(phrases)
	return m
}

// Rank scores the input against every action and returns candidates at or
// above the discard floor, highest score first. Ties break by pattern
// specificity (more trigger tokens wins), then catalog declaration order.
func (m *Matcher) Rank(normalized string, tokens []string) []Candidate {
	return m.rank(normalized, tokens, m.cfg.DiscardFloor)
}

// RankAll is Rank without the discard floor. The suggestion engine uses
// it to surface near-miss alternatives for unrecognized input.
func (m *Matcher) RankAll(normalized string, tokens []string) []Candidate {
	return m.rank(normalized, tokens, 0)
}

func (m *Matcher) rank(normalized string, tokens []string, floor float64) []Candidate {
	if normalized == "" || len(tokens) == 0 {
		return nil
	}

	actions := m.cat.Actions()

	// Step 1: exact phrase containment via one automaton pass.
	exact := make(map[int]int) // action index -> best contained pattern index
	for _, pi := range m.scanner.Contained(normalized) {
		ai := m.phraseAction[pi]
		cur, ok := exact[ai]
		if !ok || morePreferred(&actions[ai], m.phrasePattern[pi], cur) {
			exact[ai] = m.phrasePattern[pi]
		}
	}

	type ranked struct {
		cand  Candidate
		order int
	}
	var out []ranked

	for ai := range actions {
		a := &actions[ai]
		var best Candidate

		if pi, ok := exact[ai]; ok {
			p := a.Patterns[pi]
			best = Candidate{
				Action:   a,
				Pattern:  p,
				Score:    1.0,
				Exact:    true,
				Matched:  p.Tokens,
				Consumed: tokenSet(p.Tokens),
			}
		} else {
			// Step 2: token-set overlap with typo and synonym tolerance.
			for _, p := range a.Patterns {
				c := m.scorePattern(a, p, tokens)
				if c.Score > best.Score ||
					(c.Score == best.Score && len(c.Pattern.Tokens) > len(best.Pattern.Tokens)) {
					best = c
				}
			}
		}

		if best.Score > 0 && best.Score >= floor {
			out = append(out, ranked{cand: best, order: ai})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.cand.Score != b.cand.Score {
			return a.cand.Score > b.cand.Score
		}
		if len(a.cand.Pattern.Tokens) != len(b.cand.Pattern.Tokens) {
			return len(a.cand.Pattern.Tokens) > len(b.cand.Pattern.Tokens)
		}
		return a.order < b.order
	})

	cands := make([]Candidate, len(out))
	for i := range out {
		cands[i] = out[i].cand
	}
	return cands
}

// scorePattern computes the token-overlap score for one pattern:
// matched trigger tokens over total trigger tokens, where an exact or
// synonym match earns full credit and a within-tolerance edit-distance
// match earns the (lower) fuzzy weight.
func (m *Matcher) scorePattern(a *catalog.Action, p catalog.Pattern, tokens []string) Candidate {
	c := Candidate{Action: a, Pattern: p, Consumed: make(map[string]bool)}

	total := len(p.Tokens)
	if total == 0 {
		return c
	}

	var sum float64
	for _, trig := range p.Tokens {
		credit := 0.0
		consumed := ""
		for _, tok := range tokens {
			if c.Consumed[tok] {
				continue
			}
			if tok == trig || m.synonymOf(tok) == trig {
				credit = 1.0
				consumed = tok
				break
			}
			if credit == 0 && m.fuzzyEqual(tok, trig) {
				credit = m.cfg.FuzzyTokenWeight
				consumed = tok
				// keep looking for an exact match
			}
		}
		if credit > 0 {
			sum += credit
			c.Matched = append(c.Matched, trig)
			c.Consumed[consumed] = true
		}
	}

	c.Score = sum / float64(total)
	return c
}

// synonymOf resolves a declared synonym, or "" when none exists.
func (m *Matcher) synonymOf(token string) string {
	s, _ := m.cat.Synonym(token)
	return s
}

// fuzzyEqual reports whether two tokens are within the edit-distance
// tolerance. Short tokens tolerate at most one edit so "to" never
// collides with "do" at tolerance 2; tokens under three characters are
// never fuzzy-matched at all.
func (m *Matcher) fuzzyEqual(tok, trig string) bool {
	if len(tok) < 3 || len(trig) < 3 {
		return false
	}
	tol := m.cfg.EditTolerance
	if len(trig) < 4 && tol > 1 {
		tol = 1
	}
	d := levenshtein.ComputeDistance(tok, trig)
	return d > 0 && d <= tol
}

// morePreferred reports whether pattern index a beats index b within the
// same action: longer phrase first, then declaration order.
func morePreferred(action *catalog.Action, a, b int) bool {
	la, lb := len(action.Patterns[a].Tokens), len(action.Patterns[b].Tokens)
	if la != lb {
		return la > lb
	}
	return a < b
}

func tokenSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}
