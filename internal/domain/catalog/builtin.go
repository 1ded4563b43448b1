package catalog

import "github.com/corey/hark/internal/ports"

// Builtin returns the built-in pattern catalog with no overrides.
func Builtin() *Catalog {
	return New(builtinActions(), builtinSynonyms(), nil, nil)
}

// BuiltinWith returns the built-in catalog extended with configured
// synonyms and trigger phrases. Overrides change the fingerprint, so
// persistent caches built against a different configuration self-wipe.
func BuiltinWith(extraSynonyms map[string]string, extraTriggers map[string][]string) *Catalog {
	return New(builtinActions(), builtinSynonyms(), extraSynonyms, extraTriggers)
}

// pats normalizes raw trigger phrases into patterns, preserving order.
func pats(phrases ...string) []Pattern {
	out := make([]Pattern, 0, len(phrases))
	for _, raw := range phrases {
		if p, ok := makePattern(raw); ok {
			out = append(out, p)
		}
	}
	return out
}

// fileKeywords are slot-indicating words that precede a filename.
var fileKeywords = []string{"file", "files"}

// dirKeywords are slot-indicating words that precede a directory.
var dirKeywords = []string{"directory", "folder", "dir", "to", "into"}

// priorityValues is the closed set of priority keywords, checked in order
// so "urgent" beats "high" when both appear.
var priorityValues = []string{"urgent", "high", "medium", "low"}

// builtinActions is the full intent/action table. Multi-word trigger
// phrases come before single-word ones within each action; declaration
// order across actions is the final matching tie-break.
func builtinActions() []Action {
	return []Action{
		// --- SystemStatus ---
		{
			Intent: ports.IntentSystemStatus,
			Name:   "health",
			Patterns: pats(
				"show status", "system status", "health check",
				"how are you", "status",
			),
		},
		{
			Intent: ports.IntentSystemStatus,
			Name:   "metrics",
			Patterns: pats(
				"show metrics", "performance report", "show stats",
			),
		},

		// --- FileOperations ---
		{
			Intent: ports.IntentFileOperations,
			Name:   "open",
			Patterns: pats(
				"open file", "open this file", "open",
			),
			Slots: []Slot{
				{Name: "filename", Type: ports.ParamPath, Required: true, Keywords: fileKeywords, ContextFallback: "file"},
			},
		},
		{
			Intent: ports.IntentFileOperations,
			Name:   "create",
			Patterns: pats(
				"create file", "new file", "make a file",
			),
			Slots: []Slot{
				{Name: "filename", Type: ports.ParamPath, Required: true, Keywords: fileKeywords},
			},
		},
		{
			Intent: ports.IntentFileOperations,
			Name:   "delete",
			Patterns: pats(
				"delete file", "remove file", "delete this file",
			),
			Slots: []Slot{
				{Name: "filename", Type: ports.ParamPath, Required: true, Keywords: fileKeywords, ContextFallback: "file"},
			},
		},
		{
			Intent: ports.IntentFileOperations,
			Name:   "list",
			Patterns: pats(
				"list files", "show files", "what files are here",
			),
			Slots: []Slot{
				{Name: "directory", Type: ports.ParamPath, Keywords: dirKeywords, ContextFallback: "dir"},
			},
		},

		// --- ProjectNavigation ---
		{
			Intent: ports.IntentProjectNavigation,
			Name:   "goto",
			Patterns: pats(
				"go to", "change directory", "navigate to", "switch to",
			),
			Slots: []Slot{
				{Name: "directory", Type: ports.ParamPath, Required: true, Keywords: dirKeywords, ContextFallback: "dir"},
			},
		},
		{
			Intent: ports.IntentProjectNavigation,
			Name:   "find_file",
			Patterns: pats(
				"find file", "where is", "search for",
			),
			Slots: []Slot{
				{Name: "query", Type: ports.ParamString, Required: true, Keywords: []string{"file", "for", "is"}},
			},
		},
		{
			Intent: ports.IntentProjectNavigation,
			Name:   "current",
			Patterns: pats(
				"where am i", "current directory", "print working directory",
			),
		},

		// --- CodeAnalysis ---
		{
			Intent: ports.IntentCodeAnalysis,
			Name:   "analyze_file",
			Patterns: pats(
				"analyze this file", "analyze file", "review code",
				"check this code", "analyze",
			),
			Slots: []Slot{
				{Name: "filename", Type: ports.ParamPath, Required: true, Keywords: fileKeywords, ContextFallback: "file"},
			},
		},
		{
			Intent: ports.IntentCodeAnalysis,
			Name:   "run_tests",
			Patterns: pats(
				"run tests", "run the tests", "test this",
			),
		},

		// --- TaskManagement ---
		{
			Intent: ports.IntentTaskManagement,
			Name:   "create",
			Patterns: pats(
				"create task", "add task", "new task", "create a task",
			),
			Slots: []Slot{
				{Name: "task_text", Type: ports.ParamFreeText, Required: true},
				{Name: "priority", Type: ports.ParamEnum, Values: priorityValues},
			},
		},
		{
			Intent: ports.IntentTaskManagement,
			Name:   "list",
			Patterns: pats(
				"list tasks", "show tasks", "my tasks",
			),
		},
		{
			Intent: ports.IntentTaskManagement,
			Name:   "complete",
			Patterns: pats(
				"complete task", "finish task", "mark task done",
			),
			Slots: []Slot{
				{Name: "task_text", Type: ports.ParamFreeText, Required: true},
			},
		},

		// --- VoiceControl ---
		{
			Intent: ports.IntentVoiceControl,
			Name:   "volume",
			Patterns: pats(
				"set volume", "change volume", "volume",
			),
			Slots: []Slot{
				{Name: "volume_level", Type: ports.ParamInt, Required: true, Min: 0, Max: 100},
			},
		},
		{
			Intent: ports.IntentVoiceControl,
			Name:   "mute",
			Patterns: pats(
				"be quiet", "mute",
			),
		},
		{
			Intent: ports.IntentVoiceControl,
			Name:   "stop_listening",
			Patterns: pats(
				"stop listening", "stop voice", "voice off",
			),
		},

		// --- Help ---
		{
			Intent: ports.IntentHelp,
			Name:   "general",
			Patterns: pats(
				"what can you do", "show commands", "help me", "help",
			),
		},
	}
}

// builtinSynonyms maps common lexical variants onto trigger tokens.
// These are deliberate word substitutions, not typo tolerance — edit
// distance handles typos in the matcher.
func builtinSynonyms() map[string]string {
	return map[string]string{
		"display":   "show",
		"view":      "show",
		"remove":    "delete",
		"erase":     "delete",
		"folder":    "directory",
		"dir":       "directory",
		"document":  "file",
		"doc":       "file",
		"make":      "create",
		"build":     "create",
		"todo":      "task",
		"locate":    "find",
		"lookup":    "find",
		"inspect":   "analyze",
		"examine":   "analyze",
		"loudness":  "volume",
		"silence":   "mute",
		"launch":    "open",
		"finish":    "complete",
		"done":      "complete",
		"navigate":  "go",
		"condition": "status",
	}
}
