package match

// Suggest proposes up to limit alternative canonical action names for
// low-confidence or unrecognized input, ranked by the same scoring
// function as Rank but without the discard floor. Suggestions never raise
// the confidence of the primary result — they exist purely so the caller
// can prompt the user.
//
// The action named by exclude (the provisional winner, if any) is skipped
// so suggestions are genuine alternatives.
func (m *Matcher) Suggest(normalized string, tokens []string, limit int, exclude string) []string {
	if limit <= 0 {
		return nil
	}

	var out []string
	for _, c := range m.RankAll(normalized, tokens) {
		name := c.Action.Canonical()
		if name == exclude {
			continue
		}
		out = append(out, name)
		if len(out) == limit {
			break
		}
	}
	return out
}
