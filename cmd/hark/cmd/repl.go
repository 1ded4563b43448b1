package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/corey/hark/internal/app"
	"github.com/corey/hark/internal/ports"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive interpretation loop",
	Long:  "Reads utterances from stdin, one per line, against a single persistent session. The config file is hot-reloaded while the loop runs.",
	Args:  cobra.NoArgs,
	RunE:  runRepl,
}

func runRepl(cmd *cobra.Command, args []string) error {
	it, err := newInterpreter()
	if err != nil {
		return err
	}
	defer it.Close() //nolint:errcheck

	// Edits to the config file take effect on the next line of input.
	if err := it.WatchConfig(flagConfig); err != nil {
		fmt.Fprintf(os.Stderr, "warning: config watch disabled: %v\n", err)
	}

	session := flagSession
	if session == "" {
		session = uuid.NewString()
	}

	var ctx ports.SessionContext
	fmt.Printf("%shark%s session %s — type a command, %s:help%s for meta commands, %sexit%s to quit\n",
		colorBold, colorReset, session, colorCyan, colorReset, colorCyan, colorReset)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("%s>%s ", colorGreen, colorReset)
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case line == "exit" || line == "quit":
			return nil
		case strings.HasPrefix(line, ":"):
			if done := runMeta(it, line, &ctx, session); done {
				return nil
			}
			continue
		}

		res := it.Interpret(line, ctx, session)
		out, err := formatResult(&res, flagJSON)
		if err != nil {
			return err
		}
		fmt.Print(out)
	}
	return scanner.Err()
}

// runMeta handles REPL meta commands. Returns true when the loop should end.
func runMeta(it *app.Interpreter, line string, ctx *ports.SessionContext, session string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":help":
		fmt.Println("  :file <path>   set the current file")
		fmt.Println("  :dir <path>    set the current directory")
		fmt.Println("  :mode <mode>   set the session mode")
		fmt.Println("  :ctx           show the current context")
		fmt.Println("  :history       show this session's command history")
		fmt.Println("  :stats         show interpreter metrics")
		fmt.Println("  exit | quit    leave the loop")
	case ":file":
		ctx.CurrentFile = argOrEmpty(fields)
	case ":dir":
		ctx.CurrentDir = argOrEmpty(fields)
	case ":mode":
		ctx.Mode = argOrEmpty(fields)
	case ":ctx":
		fmt.Printf("  file=%q dir=%q mode=%q\n", ctx.CurrentFile, ctx.CurrentDir, ctx.Mode)
	case ":history":
		for _, e := range it.History(session) {
			fmt.Printf("  %s  %s\n", e.At.Format("15:04:05"), e.Canonical)
		}
	case ":stats":
		fmt.Print(formatMetrics(it.Metrics()))
	default:
		fmt.Printf("  unknown meta command %s (try :help)\n", fields[0])
	}
	return false
}

func argOrEmpty(fields []string) string {
	if len(fields) > 1 {
		return fields[1]
	}
	return ""
}
