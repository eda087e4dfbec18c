package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/notemail/internal/app"
	"github.com/nhle/notemail/internal/markup"
	"github.com/nhle/notemail/internal/notice"
	appsync "github.com/nhle/notemail/internal/sync"
)

func runTUI(ctx context.Context, args []string) error {
	fs := newFlagSet("notemail")
	interval := fs.Duration("interval", appsync.DefaultInterval, "vault rescan interval")
	style := fs.String("style", "dark", "preview style: dark, light, notty, ...")
	if help, err := parseFlags(fs, args); help || err != nil {
		return err
	}

	e, err := openEnv(ctx, fs, true)
	if err != nil {
		return err
	}
	defer e.Close()

	// The TUI owns the terminal, so log output goes to a file.
	if e.cfg.LogPath != "" {
		if err := os.MkdirAll(filepath.Dir(e.cfg.LogPath), 0o755); err != nil {
			return fmt.Errorf("creating log directory: %w", err)
		}
		f, err := tea.LogToFile(e.cfg.LogPath, "notemail")
		if err != nil {
			return fmt.Errorf("opening log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	var changes <-chan string
	w, err := e.vault.Watch()
	if err != nil {
		log.Printf("watching vault, relying on periodic scans: %v", err)
	} else {
		defer w.Close()
		changes = w.Changes()
	}

	notices := notice.NewChannel(16)
	exp, err := e.exporter(notices)
	if err != nil {
		return err
	}

	m := app.New(app.Options{
		Vault:        e.vault,
		Changes:      changes,
		Settings:     e.settings,
		Exporter:     exp,
		History:      e.historyStore(),
		Notices:      notices,
		Previewer:    markup.NewPreviewer(*style),
		PollInterval: *interval,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
