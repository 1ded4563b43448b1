// Package extract resolves an action's parameter slots from the original
// utterance text. Extraction runs on the raw (non-normalized) text so
// filenames and paths keep their casing; trigger tokens claimed by the
// matcher are excluded so they never leak into free-text values.
package extract

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/corey/hark/internal/domain/catalog"
	"github.com/corey/hark/internal/domain/normalize"
	"github.com/corey/hark/internal/ports"
)

// contextWords are tokens that point a path slot at the session context
// instead of a literal path ("analyze this file", "delete it").
var contextWords = map[string]bool{
	"this":    true,
	"current": true,
	"it":      true,
	"here":    true,
}

// leadingFillers are dropped from the front of free-text spans
// ("create task for code review" -> "code review").
var leadingFillers = map[string]bool{
	"for":    true,
	"to":     true,
	"about":  true,
	"that":   true,
	"the":    true,
	"a":      true,
	"an":     true,
	"on":     true,
	"called": true,
	"named":  true,
}

// Resolve extracts every declared slot of the winning action from the
// original text. consumed is the set of normalized input tokens the
// trigger match claimed. Returns resolved parameters in slot declaration
// order plus the names of required slots that could not be resolved —
// the caller penalizes confidence for those instead of discarding the
// candidate.
func Resolve(action *catalog.Action, original string, consumed map[string]bool, ctx ports.SessionContext) (params []ports.ExtractedParameter, missing []string) {
	if len(action.Slots) == 0 {
		return nil, nil
	}

	words := strings.Fields(original)
	norms := make([]string, len(words))
	for i, w := range words {
		norms[i] = normalize.Token(w)
	}
	used := make([]bool, len(words))

	resolved := make(map[string]ports.ExtractedParameter, len(action.Slots))

	// First pass: everything except free text, so slot tokens (priority
	// words, numbers, paths) are claimed before the remainder is taken.
	for i := range action.Slots {
		slot := &action.Slots[i]
		if slot.Type == ports.ParamFreeText {
			continue
		}
		if p, ok := resolveSlot(slot, words, norms, used, ctx); ok {
			resolved[slot.Name] = p
		}
	}

	// Second pass: free-text slots take whatever remains.
	for i := range action.Slots {
		slot := &action.Slots[i]
		if slot.Type != ports.ParamFreeText {
			continue
		}
		if text := remainder(words, norms, used, consumed); text != "" {
			resolved[slot.Name] = ports.ExtractedParameter{
				Name: slot.Name,
				Type: slot.Type,
				Text: text,
			}
		}
	}

	for i := range action.Slots {
		slot := &action.Slots[i]
		if p, ok := resolved[slot.Name]; ok {
			params = append(params, p)
		} else if slot.Required {
			missing = append(missing, slot.Name)
		}
	}
	return params, missing
}

// resolveSlot dispatches on slot type. Marks claimed word indices in used.
func resolveSlot(slot *catalog.Slot, words, norms []string, used []bool, ctx ports.SessionContext) (ports.ExtractedParameter, bool) {
	switch slot.Type {
	case ports.ParamPath:
		return resolvePath(slot, words, norms, used, ctx)
	case ports.ParamEnum:
		return resolveEnum(slot, norms, used)
	case ports.ParamInt:
		return resolveInt(slot, norms, used)
	case ports.ParamString:
		return resolveString(slot, words, norms, used)
	default:
		return ports.ExtractedParameter{}, false
	}
}

// resolvePath captures the token after a slot-indicating keyword, else the
// most path-like token, else the session context when the utterance refers
// to "this"/"current".
func resolvePath(slot *catalog.Slot, words, norms []string, used []bool, ctx ports.SessionContext) (ports.ExtractedParameter, bool) {
	// Keyword-adjacent capture: "open file test.py".
	for i, n := range norms {
		if used[i] || !contains(slot.Keywords, n) {
			continue
		}
		if j := nextValue(slot, norms, used, i); j >= 0 && looksLikeValue(norms[j]) {
			used[i], used[j] = true, true
			return pathParam(slot, trimWord(words[j])), true
		}
	}

	// Fallback: longest token that looks like a path or filename.
	best := -1
	for i, n := range norms {
		if used[i] || !pathLike(n) {
			continue
		}
		if best < 0 || len(n) > len(norms[best]) {
			best = i
		}
	}
	if best >= 0 {
		used[best] = true
		return pathParam(slot, trimWord(words[best])), true
	}

	// Context fallback: "analyze this file" means the file the session
	// is already on.
	if slot.ContextFallback != "" && refersToContext(norms) {
		switch slot.ContextFallback {
		case "file":
			if ctx.CurrentFile != "" {
				return pathParam(slot, ctx.CurrentFile), true
			}
		case "dir":
			if ctx.CurrentDir != "" {
				return pathParam(slot, ctx.CurrentDir), true
			}
		}
	}
	return ports.ExtractedParameter{}, false
}

// resolveEnum finds the first enumerated value present anywhere in the text.
func resolveEnum(slot *catalog.Slot, norms []string, used []bool) (ports.ExtractedParameter, bool) {
	for i, n := range norms {
		if used[i] {
			continue
		}
		if contains(slot.Values, n) {
			used[i] = true
			return ports.ExtractedParameter{Name: slot.Name, Type: slot.Type, Text: n}, true
		}
	}
	return ports.ExtractedParameter{}, false
}

// resolveInt takes the first integer token, clamped to the slot's range.
func resolveInt(slot *catalog.Slot, norms []string, used []bool) (ports.ExtractedParameter, bool) {
	for i, n := range norms {
		if used[i] {
			continue
		}
		v, err := strconv.Atoi(n)
		if err != nil {
			continue
		}
		if v < slot.Min {
			v = slot.Min
		}
		if v > slot.Max {
			v = slot.Max
		}
		used[i] = true
		return ports.ExtractedParameter{Name: slot.Name, Type: slot.Type, Text: n, Number: v}, true
	}
	return ports.ExtractedParameter{}, false
}

// resolveString captures the token after a slot keyword, preserving case.
func resolveString(slot *catalog.Slot, words, norms []string, used []bool) (ports.ExtractedParameter, bool) {
	for i, n := range norms {
		if used[i] || !contains(slot.Keywords, n) {
			continue
		}
		if j := nextValue(slot, norms, used, i); j >= 0 && looksLikeValue(norms[j]) {
			used[i], used[j] = true, true
			return ports.ExtractedParameter{Name: slot.Name, Type: slot.Type, Text: trimWord(words[j])}, true
		}
	}
	return ports.ExtractedParameter{}, false
}

// remainder joins the words not claimed by the trigger match or another
// slot, with leading filler words stripped.
func remainder(words, norms []string, used []bool, consumed map[string]bool) string {
	var out []string
	for i, w := range words {
		if used[i] || consumed[norms[i]] {
			continue
		}
		if len(out) == 0 && leadingFillers[norms[i]] {
			continue
		}
		out = append(out, trimWord(w))
	}
	return strings.TrimSpace(strings.Join(out, " "))
}

// pathParam builds a path parameter value.
func pathParam(slot *catalog.Slot, value string) ports.ExtractedParameter {
	return ports.ExtractedParameter{Name: slot.Name, Type: slot.Type, Text: value}
}

// nextValue returns the index of the first unclaimed word after i that is
// not itself a slot keyword ("change directory to src" must capture "src",
// not "to"), or -1.
func nextValue(slot *catalog.Slot, norms []string, used []bool, i int) int {
	for j := i + 1; j < len(norms); j++ {
		if !used[j] && norms[j] != "" && !contains(slot.Keywords, norms[j]) {
			return j
		}
	}
	return -1
}

// pathLike reports whether a normalized token carries a path separator or
// a short alphabetic extension ("src/main.go", "test.py").
func pathLike(n string) bool {
	if strings.ContainsRune(n, '/') {
		return true
	}
	dot := strings.LastIndexByte(n, '.')
	if dot <= 0 || dot == len(n)-1 {
		return false
	}
	ext := n[dot+1:]
	if len(ext) > 4 {
		return false
	}
	for _, r := range ext {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// looksLikeValue rejects context words as slot values so "open this file"
// falls through to the context fallback rather than capturing "this".
func looksLikeValue(n string) bool {
	return n != "" && !contextWords[n]
}

// refersToContext reports whether the utterance points at session state.
func refersToContext(norms []string) bool {
	for _, n := range norms {
		if contextWords[n] {
			return true
		}
	}
	return false
}

// trimWord strips leading/trailing punctuation while preserving case and
// interior characters ("test.py," -> "test.py").
func trimWord(raw string) string {
	return strings.TrimFunc(raw, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
