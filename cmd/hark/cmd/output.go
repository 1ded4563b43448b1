package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/corey/hark/internal/app"
	"github.com/corey/hark/internal/ports"
)

// ANSI color codes for terminal output.
const (
	colorReset   = "\033[0m"
	colorBold    = "\033[1m"
	colorCyan    = "\033[36m"
	colorMagenta = "\033[35m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorRed     = "\033[31m"
	colorGray    = "\033[90m"
)

// formatResult renders an interpretation result for terminal display:
//
//	⚡ task_management.create(task_text=code review, priority=urgent) │ 0.95 │ 0.4ms
//	  task_text: code review
//	  priority:  urgent
//
// With jsonOut the full result marshals as-is for machine consumers.
func formatResult(res *ports.InterpretationResult, jsonOut bool) (string, error) {
	if jsonOut {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	}

	var sb strings.Builder
	if !res.Success {
		sb.WriteString(fmt.Sprintf("%s✗ %s%s │ %.1fms\n",
			colorRed, res.Error, colorReset, res.ProcessingMs))
		writeSuggestions(&sb, res.Suggestions)
		return sb.String(), nil
	}

	cmd := res.Command
	conf := confidenceColor(res.Confidence)
	hit := ""
	if res.CacheHit {
		hit = fmt.Sprintf(" %s(cached)%s", colorGray, colorReset)
	}
	sb.WriteString(fmt.Sprintf("%s⚡ %s%s │ %s%.2f%s │ %.1fms%s\n",
		colorBold, res.Canonical, colorReset,
		conf, res.Confidence, colorReset,
		res.ProcessingMs, hit))

	// Pad parameter names so values line up.
	width := 0
	for _, p := range cmd.Params {
		if len(p.Name) > width {
			width = len(p.Name)
		}
	}
	for _, p := range cmd.Params {
		sb.WriteString(fmt.Sprintf("  %s%-*s%s  %s\n",
			colorCyan, width+1, p.Name+":", colorReset, p.Value()))
	}
	for _, name := range cmd.Missing {
		sb.WriteString(fmt.Sprintf("  %s%s: missing%s\n", colorYellow, name, colorReset))
	}
	writeSuggestions(&sb, res.Suggestions)
	return sb.String(), nil
}

func writeSuggestions(sb *strings.Builder, suggestions []string) {
	if len(suggestions) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("  %sdid you mean:%s\n", colorGray, colorReset))
	for _, s := range suggestions {
		sb.WriteString(fmt.Sprintf("    %s%s%s\n", colorMagenta, s, colorReset))
	}
}

// confidenceColor maps a confidence band to a color: green for firm,
// yellow for tentative, red for shaky.
func confidenceColor(c float64) string {
	switch {
	case c >= 0.8:
		return colorGreen
	case c >= 0.5:
		return colorYellow
	default:
		return colorRed
	}
}

// formatMetrics renders an interpreter metrics snapshot.
func formatMetrics(m app.Metrics) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s⚡ hark interpreter%s\n", colorBold, colorReset))
	sb.WriteString(fmt.Sprintf("  Intents:    %d\n", m.SupportedIntents))
	sb.WriteString(fmt.Sprintf("  Actions:    %d\n", m.SupportedActions))
	sb.WriteString(fmt.Sprintf("  Processed:  %d (%d recognized)\n", m.TotalProcessed, m.Recognized))
	sb.WriteString(fmt.Sprintf("  Cache hits: %d (%.0f%%)\n", m.CacheHits, m.CacheHitRatio*100))
	sb.WriteString(fmt.Sprintf("  Avg time:   %.2fms\n", m.AverageProcessingMs))
	return sb.String()
}
