package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corey/hark/internal/ports"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List every recognizable intent, action, and trigger phrase",
	Args:  cobra.NoArgs,
	RunE:  runCatalog,
}

func runCatalog(cmd *cobra.Command, args []string) error {
	it, err := newInterpreter()
	if err != nil {
		return err
	}
	defer it.Close() //nolint:errcheck

	cat := it.Catalog()
	actions := cat.Actions()

	if flagJSON {
		type entry struct {
			Canonical string   `json:"canonical"`
			Triggers  []string `json:"triggers"`
			Slots     []string `json:"slots,omitempty"`
		}
		out := make([]entry, 0, len(actions))
		for i := range actions {
			a := &actions[i]
			e := entry{Canonical: a.Canonical()}
			for _, p := range a.Patterns {
				e.Triggers = append(e.Triggers, p.Phrase)
			}
			for _, s := range a.Slots {
				e.Slots = append(e.Slots, fmt.Sprintf("%s:%s", s.Name, s.Type))
			}
			out = append(out, e)
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("%s⚡ %d actions%s │ %d intents │ fingerprint %s\n",
		colorBold, cat.ActionCount(), colorReset, cat.IntentCount(), cat.Fingerprint())

	var current ports.Intent = -1
	for i := range actions {
		a := &actions[i]
		if a.Intent != current {
			current = a.Intent
			fmt.Printf("\n  %s%s%s\n", colorMagenta, current, colorReset)
		}
		fmt.Printf("    %s\n", a.Describe())
		for _, s := range a.Slots {
			req := ""
			if s.Required {
				req = " (required)"
			}
			fmt.Printf("      %s%s%s: %s%s\n", colorCyan, s.Name, colorReset, s.Type, req)
		}
	}
	return nil
}
