package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/hark/internal/ports"
)

func TestBuiltin_Dimensions(t *testing.T) {
	cat := Builtin()
	assert.Equal(t, ports.IntentCount, cat.IntentCount(), "every intent must have at least one action")
	assert.Equal(t, len(cat.Actions()), cat.ActionCount())
	assert.Greater(t, cat.ActionCount(), 15)
}

func TestBuiltin_CanonicalNames(t *testing.T) {
	cat := Builtin()
	seen := make(map[string]bool)
	for i := range cat.Actions() {
		a := &cat.Actions()[i]
		name := a.Canonical()
		assert.False(t, seen[name], "duplicate canonical name %s", name)
		seen[name] = true
	}
	assert.True(t, seen["task_management.create"])
	assert.True(t, seen["system_status.health"])
	assert.True(t, seen["voice_control.volume"])
	assert.True(t, seen["help.general"])
}

func TestBuiltin_PatternsNormalized(t *testing.T) {
	// Every stored phrase must already be in normalized form: matching
	// compares them against normalized input, so a stray capital or comma
	// would make the phrase unreachable.
	cat := Builtin()
	for i := range cat.Actions() {
		for _, p := range cat.Actions()[i].Patterns {
			require.NotEmpty(t, p.Tokens)
			normalized := ""
			for j, tok := range p.Tokens {
				if j > 0 {
					normalized += " "
				}
				normalized += tok
			}
			assert.Equal(t, normalized, p.Phrase)
		}
	}
}

func TestPhrases_OwnerAlignment(t *testing.T) {
	cat := Builtin()
	phrases, owner := cat.Phrases()
	require.Equal(t, len(phrases), len(owner))

	// Each owner index must point at an action that declares the phrase.
	for i, phrase := range phrases {
		a := &cat.Actions()[owner[i]]
		found := false
		for _, p := range a.Patterns {
			if p.Phrase == phrase {
				found = true
				break
			}
		}
		assert.True(t, found, "phrase %q not declared by %s", phrase, a.Canonical())
	}
}

func TestSynonym_NormalizedLookup(t *testing.T) {
	cat := Builtin()

	s, ok := cat.Synonym("display")
	require.True(t, ok)
	assert.Equal(t, "show", s)

	_, ok = cat.Synonym("frobnicate")
	assert.False(t, ok)
}

func TestFingerprint_StableAcrossBuilds(t *testing.T) {
	assert.Equal(t, Builtin().Fingerprint(), Builtin().Fingerprint())
}

func TestFingerprint_ChangesWithOverrides(t *testing.T) {
	base := Builtin()

	withSyn := BuiltinWith(map[string]string{"peek": "show"}, nil)
	assert.NotEqual(t, base.Fingerprint(), withSyn.Fingerprint())

	withTrig := BuiltinWith(nil, map[string][]string{
		"task_management.create": {"note down"},
	})
	assert.NotEqual(t, base.Fingerprint(), withTrig.Fingerprint())
}

func TestBuiltinWith_TriggerNormalizedAndAppended(t *testing.T) {
	cat := BuiltinWith(nil, map[string][]string{
		"task_management.create": {"Note Down!"},
	})

	var create *Action
	for i := range cat.Actions() {
		if cat.Actions()[i].Canonical() == "task_management.create" {
			create = &cat.Actions()[i]
		}
	}
	require.NotNil(t, create)

	found := false
	for _, p := range create.Patterns {
		if p.Phrase == "note down" {
			found = true
		}
	}
	assert.True(t, found, "configured trigger should be normalized and appended")
}

func TestBuiltinWith_DoesNotMutateBuiltin(t *testing.T) {
	before := Builtin().ActionCount()
	BuiltinWith(nil, map[string][]string{"help.general": {"assist me please"}})
	assert.Equal(t, before, Builtin().ActionCount())

	// The builtin table itself must not accumulate configured triggers.
	for i := range Builtin().Actions() {
		for _, p := range Builtin().Actions()[i].Patterns {
			assert.NotEqual(t, "assist me please", p.Phrase)
		}
	}
}
