package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	settingsview "github.com/nhle/notemail/internal/ui/settings"
)

func runSettings(ctx context.Context, args []string, stdout io.Writer) error {
	fs := newFlagSet("settings")
	if help, err := parseFlags(fs, args); help || err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return errors.New("usage: notemail settings [show|reset]")
	}
	sub := fs.Arg(0)

	e, err := openEnv(ctx, fs, false)
	if err != nil {
		return err
	}
	defer e.Close()

	switch sub {
	case "", "edit":
		return settingsview.Run(e.settings)
	case "show":
		fmt.Fprintf(stdout, "settings file:     %s\n", e.cfg.SettingsPath)
		fmt.Fprintf(stdout, "default recipient: %s\n", e.settings.Settings().DefaultRecipient)
		return nil
	case "reset":
		if err := e.settings.Reset(ctx); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "Settings reset to defaults")
		return nil
	default:
		return fmt.Errorf("unknown settings command %q (want show or reset)", sub)
	}
}
