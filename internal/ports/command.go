package ports

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// Canonical Command Model
//
// These types are the contract between the interpreter pipeline and its
// callers. An utterance comes in as free text; what comes out is a Command:
// an intent category, an action, typed parameters, and a confidence score.
// The caller executes the Command against its own domain handlers — the
// interpreter's responsibility ends here.
// =============================================================================

// Intent is the top-level category of a recognized command.
// The set is closed and known at build time; downstream handling can
// switch exhaustively over it.
type Intent int

const (
	IntentSystemStatus Intent = iota
	IntentFileOperations
	IntentProjectNavigation
	IntentCodeAnalysis
	IntentTaskManagement
	IntentVoiceControl
	IntentHelp
)

// IntentCount is the number of intent categories.
const IntentCount = 7

// String returns the canonical snake_case name used in canonical forms,
// logs, and cache keys.
func (i Intent) String() string {
	switch i {
	case IntentSystemStatus:
		return "system_status"
	case IntentFileOperations:
		return "file_operations"
	case IntentProjectNavigation:
		return "project_navigation"
	case IntentCodeAnalysis:
		return "code_analysis"
	case IntentTaskManagement:
		return "task_management"
	case IntentVoiceControl:
		return "voice_control"
	case IntentHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ParamType describes the semantic type of a parameter slot.
type ParamType int

const (
	// ParamString is a short literal capture (e.g., a search query).
	ParamString ParamType = iota

	// ParamEnum is one of a fixed set of keywords (e.g., priority levels).
	ParamEnum

	// ParamInt is an integer clamped to a declared range (e.g., volume).
	ParamInt

	// ParamPath is a file or directory path.
	ParamPath

	// ParamFreeText is the remaining span of the utterance after trigger
	// and other slot tokens are removed (e.g., a task description).
	ParamFreeText
)

// String returns the parameter type name.
func (t ParamType) String() string {
	switch t {
	case ParamString:
		return "string"
	case ParamEnum:
		return "enum"
	case ParamInt:
		return "int"
	case ParamPath:
		return "path"
	case ParamFreeText:
		return "free_text"
	default:
		return "unknown"
	}
}

// ExtractedParameter is a resolved slot value attached to a Command.
// Text always carries the resolved textual form; Number is additionally
// set when Type == ParamInt.
type ExtractedParameter struct {
	Name   string    `json:"name"`
	Type   ParamType `json:"type"`
	Text   string    `json:"text"`
	Number int       `json:"number,omitempty"`
}

// Value returns the parameter's display value (numeric form for ints).
func (p ExtractedParameter) Value() string {
	if p.Type == ParamInt {
		return strconv.Itoa(p.Number)
	}
	return p.Text
}

// Command is the structured result of one interpretation.
type Command struct {
	// Intent and Action identify the catalog entry that won matching.
	Intent Intent `json:"intent"`
	Action string `json:"action"`

	// Params holds resolved slots in slot declaration order. Required
	// slots that failed extraction are absent here and listed in Missing.
	Params []ExtractedParameter `json:"params,omitempty"`

	// Missing lists required slot names that could not be resolved.
	// A non-empty Missing means confidence was penalized, not that the
	// command is invalid — the caller can prompt for the missing values.
	Missing []string `json:"missing,omitempty"`

	// Confidence is the final [0,1] score after extraction penalties and
	// context boosting.
	Confidence float64 `json:"confidence"`

	// Canonical is the stable textual encoding of intent+action+params,
	// used as a history entry and for logging.
	Canonical string `json:"canonical"`

	// Duration is the wall-clock time the pipeline spent on this call.
	Duration time.Duration `json:"duration"`
}

// CanonicalForm encodes intent, action, and parameters as a stable string:
//
//	task_management.create(task_text=code review, priority=urgent)
//
// Parameters appear in slot declaration order, so two commands with the
// same resolved values always encode identically.
func CanonicalForm(intent Intent, action string, params []ExtractedParameter) string {
	if len(params) == 0 {
		return fmt.Sprintf("%s.%s", intent, action)
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name + "=" + p.Value()
	}
	return fmt.Sprintf("%s.%s(%s)", intent, action, strings.Join(parts, ", "))
}

// SessionContext is caller-supplied, read-only state for one interpretation
// call. The interpreter never mutates it and never fetches it itself.
type SessionContext struct {
	// CurrentFile is the file the user is working on, if any.
	CurrentFile string `json:"current_file,omitempty"`

	// CurrentDir is the user's working directory, if known.
	CurrentDir string `json:"current_dir,omitempty"`

	// Mode carries session flags such as "voice".
	Mode string `json:"mode,omitempty"`
}

// InterpretationResult is the full response of Interpret.
type InterpretationResult struct {
	// Success is false only for unrecognized or empty input. Low-confidence
	// and missing-parameter outcomes still report success=true so the
	// caller can decide whether to execute or re-prompt.
	Success bool `json:"success"`

	// Command is present iff Success.
	Command *Command `json:"command,omitempty"`

	// Confidence mirrors Command.Confidence (0 when unrecognized).
	Confidence float64 `json:"confidence"`

	// Canonical mirrors Command.Canonical ("" when unrecognized).
	Canonical string `json:"canonical,omitempty"`

	// ProcessingMs is the wall-clock pipeline time for this call in
	// milliseconds. Cache hits report the (much smaller) lookup time.
	ProcessingMs float64 `json:"processing_time_ms"`

	// CacheHit reports whether the result was served from the result cache.
	CacheHit bool `json:"cache_hit,omitempty"`

	// Suggestions holds up to N alternative canonical action names,
	// populated when confidence fell below the low-confidence threshold
	// or no candidate survived at all.
	Suggestions []string `json:"suggestions,omitempty"`

	// Error describes why Success is false ("" otherwise).
	Error string `json:"error,omitempty"`
}
