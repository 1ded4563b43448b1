package ahocorasick

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanner_SinglePhrase(t *testing.T) {
	s := NewPhraseScanner([]string{"create task"})

	got := s.Contained("please create task now")
	assert.Equal(t, []int{0}, got)
}

func TestScanner_MultiplePhrasesOnePass(t *testing.T) {
	s := NewPhraseScanner([]string{"show status", "create task", "set volume"})

	got := s.Contained("show status and set volume")
	require.Len(t, got, 2)
	assert.Contains(t, got, 0)
	assert.Contains(t, got, 2)
}

func TestScanner_WordBoundaries(t *testing.T) {
	s := NewPhraseScanner([]string{"open", "status"})

	assert.Empty(t, s.Contained("reopened the statusbar"),
		"phrases inside larger words must not match")
	assert.Equal(t, []int{0}, s.Contained("open the door"))
	assert.Equal(t, []int{1}, s.Contained("check status"))
}

func TestScanner_PhraseAtStringEdges(t *testing.T) {
	s := NewPhraseScanner([]string{"help"})

	assert.Equal(t, []int{0}, s.Contained("help"))
	assert.Equal(t, []int{0}, s.Contained("help me"))
	assert.Equal(t, []int{0}, s.Contained("i need help"))
}

func TestScanner_OverlappingPhrases(t *testing.T) {
	// Both the short and the long phrase must be reported; the matcher
	// decides which one wins.
	s := NewPhraseScanner([]string{"volume", "set volume"})

	got := s.Contained("set volume to 75")
	require.Len(t, got, 2)
	assert.Contains(t, got, 0)
	assert.Contains(t, got, 1)
}

func TestScanner_DeduplicatesRepeats(t *testing.T) {
	s := NewPhraseScanner([]string{"status"})

	got := s.Contained("status status status")
	assert.Equal(t, []int{0}, got)
}

func TestScanner_NoMatch(t *testing.T) {
	s := NewPhraseScanner([]string{"create task"})
	assert.Empty(t, s.Contained("purple elephant"))
}

func TestScanner_Degenerate(t *testing.T) {
	empty := NewPhraseScanner(nil)
	assert.Nil(t, empty.Contained("anything"))

	s := NewPhraseScanner([]string{"status"})
	assert.Nil(t, s.Contained(""))
}

func TestScanner_PhraseAccessors(t *testing.T) {
	s := NewPhraseScanner([]string{"a b", "c d"})
	assert.Equal(t, 2, s.PhraseCount())
	assert.Equal(t, "a b", s.Phrase(0))
	assert.Equal(t, "", s.Phrase(-1))
	assert.Equal(t, "", s.Phrase(5))
}
