// Command altre is the Altre text editor's entry point: it parses the
// minimal --gui/--tui flag surface, wires up debug logging from the
// environment, and hands off to the terminal front end. Grounded on the
// teacher's cmd/editor/main.go single NewUI/ui.Run() shape, with flag
// parsing taken from cogentcore-core/cmd/root.go's minimal cobra.Command
// pattern (§6).
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tekugo/altre/internal/command"
	"github.com/tekugo/altre/internal/debuglog"
	"github.com/tekugo/altre/internal/tui"
)

func main() {
	os.Exit(run())
}

// run implements Altre's own exit-code contract (§6): 0 on clean exit,
// 1 on a fatal runtime error, 2 on an unknown flag; any other command-line
// error (such as a second file argument) exits with 1. cobra's
// own error path is silenced so this contract, not cobra's, decides the
// process exit code. A panic anywhere below is converted to exit code 1
// (§7's "panic-to-fatal conversion") rather than a bare terminal crash.
func run() (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, "altre: fatal:", r)
			code = 1
		}
	}()

	var forceTUI bool

	root := &cobra.Command{
		Use:           "altre [file]",
		Short:         "Altre is an Emacs-style modal-less text editor",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return launch(forceTUI, args)
		},
	}
	root.Flags().Bool("gui", true, "launch the interactive terminal UI (default)")
	root.Flags().BoolVar(&forceTUI, "tui", false, "force the terminal UI even when stdout is not a TTY")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if strings.Contains(err.Error(), "unknown flag") || strings.Contains(err.Error(), "unknown shorthand flag") {
			return 2
		}
		return 1
	}
	return 0
}

func launch(forceTUI bool, args []string) error {
	logger, _, closeFile := debuglog.Setup(os.Getenv)
	defer closeFile()

	attached := term.IsTerminal(int(os.Stdout.Fd()))
	if !attached && !forceTUI {
		logger.Debug("stdout is not a terminal; launching TUI anyway", "attached", attached)
	}

	proc := command.New()
	defer proc.Close()

	if len(args) == 1 {
		if res := proc.OpenFileArg(args[0]); res.Severity == command.SeverityError {
			logger.Debug("failed to open file argument", "path", args[0], "error", res.Message)
		}
	}

	screen, err := tui.NewScreen(proc)
	if err != nil {
		return fmt.Errorf("terminal init failed: %w", err)
	}
	return screen.Run()
}
