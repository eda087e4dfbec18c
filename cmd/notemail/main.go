// Command notemail browses a directory of markdown notes and hands any of
// them to the default mail client as a pre-filled draft.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

const usage = `Usage:
  notemail [flags]                          browse the vault
  notemail send [--html] [flags] FILE       open a compose link for FILE
  notemail draft [--html] [--out FILE] FILE write FILE as an .eml draft
  notemail settings [show|reset] [flags]    edit, print or reset settings
  notemail history [--limit N] [flags]      list recent exports

Flags:
  --vault DIR        directory containing markdown notes (default ".")
  --policy NAME      size policy: rich or simple (default "rich")
  --settings FILE    settings file
  --history FILE     export history database, empty to disable
  --log FILE         log file used while the TUI is running
`

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run dispatches to the subcommand named by the first argument. A missing
// name or a leading flag starts the TUI.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd := ""
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "", "tui":
		return runTUI(ctx, args)
	case "send":
		return runSend(ctx, args, stderr)
	case "draft":
		return runDraft(ctx, args, stdout)
	case "settings":
		return runSettings(ctx, args, stdout)
	case "history":
		return runHistory(ctx, args, stdout)
	case "help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n\n%s", cmd, usage)
	}
}

// parseFlags parses args into fs, treating --help as success.
func parseFlags(fs *pflag.FlagSet, args []string) (help bool, err error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}
