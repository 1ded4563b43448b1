package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/hark/internal/domain/catalog"
	"github.com/corey/hark/internal/ports"
)

func findAction(t *testing.T, canonical string) *catalog.Action {
	t.Helper()
	cat := catalog.Builtin()
	for i := range cat.Actions() {
		if cat.Actions()[i].Canonical() == canonical {
			return &cat.Actions()[i]
		}
	}
	t.Fatalf("action %s not in catalog", canonical)
	return nil
}

func consumed(tokens ...string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		set[tok] = true
	}
	return set
}

func paramByName(params []ports.ExtractedParameter, name string) (ports.ExtractedParameter, bool) {
	for _, p := range params {
		if p.Name == name {
			return p, true
		}
	}
	return ports.ExtractedParameter{}, false
}

func TestResolve_FilenameAfterKeyword(t *testing.T) {
	a := findAction(t, "file_operations.open")

	params, missing := Resolve(a, "open file test.py", consumed("open", "file"), ports.SessionContext{})
	require.Empty(t, missing)

	p, ok := paramByName(params, "filename")
	require.True(t, ok)
	assert.Equal(t, ports.ParamPath, p.Type)
	assert.Equal(t, "test.py", p.Text)
}

func TestResolve_FilenamePreservesCase(t *testing.T) {
	a := findAction(t, "file_operations.open")

	params, _ := Resolve(a, "open file README.md", consumed("open", "file"), ports.SessionContext{})
	p, ok := paramByName(params, "filename")
	require.True(t, ok)
	assert.Equal(t, "README.md", p.Text)
}

func TestResolve_PathLikeFallbackWithoutKeyword(t *testing.T) {
	a := findAction(t, "file_operations.open")

	params, missing := Resolve(a, "open src/main.go", consumed("open"), ports.SessionContext{})
	require.Empty(t, missing)
	p, _ := paramByName(params, "filename")
	assert.Equal(t, "src/main.go", p.Text)
}

func TestResolve_TrailingPunctuationTrimmed(t *testing.T) {
	a := findAction(t, "file_operations.open")

	params, _ := Resolve(a, "open file test.py, please", consumed("open", "file"), ports.SessionContext{})
	p, _ := paramByName(params, "filename")
	assert.Equal(t, "test.py", p.Text)
}

func TestResolve_ContextFallbackForThisFile(t *testing.T) {
	a := findAction(t, "code_analysis.analyze_file")
	ctx := ports.SessionContext{CurrentFile: "main.py"}

	params, missing := Resolve(a, "analyze this file", consumed("analyze", "this", "file"), ctx)
	require.Empty(t, missing)
	p, ok := paramByName(params, "filename")
	require.True(t, ok)
	assert.Equal(t, "main.py", p.Text)
}

func TestResolve_ContextFallbackRequiresContext(t *testing.T) {
	// "analyze this file" with no session context cannot resolve the
	// filename; the slot is reported missing, not silently guessed.
	a := findAction(t, "code_analysis.analyze_file")

	params, missing := Resolve(a, "analyze this file", consumed("analyze", "this", "file"), ports.SessionContext{})
	_, ok := paramByName(params, "filename")
	assert.False(t, ok)
	assert.Equal(t, []string{"filename"}, missing)
}

func TestResolve_DirectoryValueSkipsKeywordChain(t *testing.T) {
	// "to" is itself a directory keyword; the value is the word after
	// the keyword run, never a keyword.
	a := findAction(t, "project_navigation.goto")

	params, missing := Resolve(a, "go to src", consumed("go", "to"), ports.SessionContext{})
	require.Empty(t, missing)
	p, _ := paramByName(params, "directory")
	assert.Equal(t, "src", p.Text)
}

func TestResolve_MissingRequiredSlot(t *testing.T) {
	a := findAction(t, "file_operations.delete")

	params, missing := Resolve(a, "delete file", consumed("delete", "file"), ports.SessionContext{})
	assert.Empty(t, params)
	assert.Equal(t, []string{"filename"}, missing)
}

func TestResolve_OptionalSlotAbsentIsNotMissing(t *testing.T) {
	a := findAction(t, "file_operations.list")

	params, missing := Resolve(a, "list files", consumed("list", "files"), ports.SessionContext{})
	assert.Empty(t, params)
	assert.Empty(t, missing, "optional directory slot must not be reported missing")
}

func TestResolve_FreeTextAndEnum(t *testing.T) {
	a := findAction(t, "task_management.create")

	params, missing := Resolve(a, "create urgent task for code review",
		consumed("create", "task"), ports.SessionContext{})
	require.Empty(t, missing)

	text, ok := paramByName(params, "task_text")
	require.True(t, ok)
	assert.Equal(t, "code review", text.Text)

	prio, ok := paramByName(params, "priority")
	require.True(t, ok)
	assert.Equal(t, "urgent", prio.Text)
}

func TestResolve_FreeTextExcludesFuzzyConsumedTokens(t *testing.T) {
	// The matcher consumed the typo'd trigger tokens; they must not leak
	// into the task text.
	a := findAction(t, "task_management.create")

	params, _ := Resolve(a, "creat urgent tsk for code review",
		consumed("creat", "tsk"), ports.SessionContext{})

	text, ok := paramByName(params, "task_text")
	require.True(t, ok)
	assert.Equal(t, "code review", text.Text)
}

func TestResolve_FreeTextMissingWhenNothingRemains(t *testing.T) {
	a := findAction(t, "task_management.create")

	params, missing := Resolve(a, "create task", consumed("create", "task"), ports.SessionContext{})
	_, ok := paramByName(params, "task_text")
	assert.False(t, ok)
	assert.Equal(t, []string{"task_text"}, missing)
	_ = params
}

func TestResolve_ParamsInSlotDeclarationOrder(t *testing.T) {
	a := findAction(t, "task_management.create")

	params, _ := Resolve(a, "create urgent task for code review",
		consumed("create", "task"), ports.SessionContext{})
	require.Len(t, params, 2)
	assert.Equal(t, "task_text", params[0].Name)
	assert.Equal(t, "priority", params[1].Name)
}

func TestResolve_IntegerParsedAndClamped(t *testing.T) {
	a := findAction(t, "voice_control.volume")

	params, missing := Resolve(a, "set volume to 75", consumed("set", "volume"), ports.SessionContext{})
	require.Empty(t, missing)
	p, _ := paramByName(params, "volume_level")
	assert.Equal(t, ports.ParamInt, p.Type)
	assert.Equal(t, 75, p.Number)

	params, _ = Resolve(a, "set volume to 150", consumed("set", "volume"), ports.SessionContext{})
	p, _ = paramByName(params, "volume_level")
	assert.Equal(t, 100, p.Number, "values above the slot range clamp to max")
}

func TestResolve_NoSlots(t *testing.T) {
	a := findAction(t, "system_status.health")

	params, missing := Resolve(a, "show status", consumed("show", "status"), ports.SessionContext{})
	assert.Nil(t, params)
	assert.Nil(t, missing)
}
