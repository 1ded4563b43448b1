// Package boost adjusts candidate confidence using session context and
// recent command history. Boosting is a pure function: it reads history,
// never writes it — appends happen after the full pipeline completes.
package boost

import (
	"path/filepath"

	"github.com/corey/hark/internal/config"
	"github.com/corey/hark/internal/domain/history"
	"github.com/corey/hark/internal/ports"
)

// Apply returns the boosted confidence for a provisional command:
// a fixed bonus when the intent continues the session's most recent
// command, a fixed bonus when a resolved path parameter matches the
// session's current file or directory, clamped to [0,1].
func Apply(confidence float64, cmd *ports.Command, ctx ports.SessionContext, last *history.Entry, cfg config.Config) float64 {
	if last != nil && last.Intent == cmd.Intent {
		confidence += cfg.ContinuityBonus
	}
	if matchesContext(cmd, ctx) {
		confidence += cfg.ContextBonus
	}
	if confidence > 1 {
		confidence = 1
	}
	if confidence < 0 {
		confidence = 0
	}
	return confidence
}

// matchesContext reports whether any resolved path parameter names the
// session's current file or directory. Base names count: the user saying
// "open main.py" while main.py is the current file means "this file".
func matchesContext(cmd *ports.Command, ctx ports.SessionContext) bool {
	for _, p := range cmd.Params {
		if p.Type != ports.ParamPath || p.Text == "" {
			continue
		}
		if ctx.CurrentFile != "" &&
			(p.Text == ctx.CurrentFile || filepath.Base(p.Text) == filepath.Base(ctx.CurrentFile)) {
			return true
		}
		if ctx.CurrentDir != "" && p.Text == ctx.CurrentDir {
			return true
		}
	}
	return false
}
