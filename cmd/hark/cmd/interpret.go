package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corey/hark/internal/ports"
)

var (
	flagFile string
	flagDir  string
	flagMode string
)

var interpretCmd = &cobra.Command{
	Use:   "interpret <utterance>...",
	Short: "Interpret one utterance and print the structured command",
	Long:  "Runs the full pipeline on the given text. Context flags stand in for the caller's session state.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInterpret,
}

func init() {
	interpretCmd.Flags().StringVar(&flagFile, "file", "", "current file for context resolution")
	interpretCmd.Flags().StringVar(&flagDir, "dir", "", "current directory for context resolution")
	interpretCmd.Flags().StringVar(&flagMode, "mode", "", "session mode flag (e.g. voice)")
}

func runInterpret(cmd *cobra.Command, args []string) error {
	it, err := newInterpreter()
	if err != nil {
		return err
	}
	defer it.Close() //nolint:errcheck

	ctx := ports.SessionContext{
		CurrentFile: flagFile,
		CurrentDir:  flagDir,
		Mode:        flagMode,
	}
	res := it.Interpret(strings.Join(args, " "), ctx, flagSession)

	out, err := formatResult(&res, flagJSON)
	if err != nil {
		return err
	}
	fmt.Print(out)

	if !res.Success {
		return fmt.Errorf("%s", res.Error)
	}
	return nil
}
