package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/pflag"

	"github.com/nhle/notemail/internal/clipboard"
	"github.com/nhle/notemail/internal/export"
	"github.com/nhle/notemail/internal/history"
	"github.com/nhle/notemail/internal/launcher"
	"github.com/nhle/notemail/internal/markup"
	"github.com/nhle/notemail/internal/model"
	"github.com/nhle/notemail/internal/notice"
	"github.com/nhle/notemail/internal/settings"
	"github.com/nhle/notemail/internal/vault"
)

// System collaborators, replaced in tests.
var (
	systemOpener    launcher.Opener  = launcher.System{}
	systemClipboard clipboard.Writer = clipboard.System{}
)

// env holds the components every subcommand is built from.
type env struct {
	cfg      *model.AppConfig
	vault    *vault.Vault
	settings *settings.Manager

	// history is nil when disabled or not needed.
	history *history.SQLiteStore
}

// newFlagSet returns a flag set carrying the shared configuration flags.
func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	model.RegisterFlags(fs)
	return fs
}

// openEnv resolves configuration from fs, opens the vault and loads the
// settings record. The history database is opened only when withHistory
// is set and a path is configured.
func openEnv(ctx context.Context, fs *pflag.FlagSet, withHistory bool) (*env, error) {
	cfg, err := model.LoadAppConfig(fs)
	if err != nil {
		return nil, err
	}

	v, err := vault.New(cfg.VaultDir)
	if err != nil {
		return nil, err
	}

	mgr := settings.NewFileManager(settings.NewFilePersistence(nil, cfg.SettingsPath))
	mgr.Load(ctx)

	e := &env{cfg: cfg, vault: v, settings: mgr}
	if withHistory && cfg.HistoryPath != "" {
		h, err := history.NewSQLiteStore(cfg.HistoryPath)
		if err != nil {
			return nil, fmt.Errorf("opening history: %w", err)
		}
		e.history = h
	}
	return e, nil
}

// Close releases the history database.
func (e *env) Close() {
	if e.history == nil {
		return
	}
	if err := e.history.Close(); err != nil {
		log.Printf("closing history: %v", err)
	}
}

// historyStore returns the history as an interface value that is nil when
// history is disabled.
func (e *env) historyStore() history.Store {
	if e.history == nil {
		return nil
	}
	return e.history
}

// exporter builds the export orchestrator reporting to n.
func (e *env) exporter(n notice.Notifier) (*export.Exporter, error) {
	policy, err := export.PolicyByName(e.cfg.Policy)
	if err != nil {
		return nil, err
	}

	deps := export.Deps{
		Reader:    e.vault,
		Converter: markup.NewConverter(),
		Clipboard: systemClipboard,
		Opener:    systemOpener,
		Notifier:  n,
	}
	if e.history != nil {
		deps.Recorder = e.history
	}
	return export.New(e.settings.Settings(), deps, policy), nil
}
