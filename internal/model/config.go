package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// appName names the configuration directory and the environment prefix.
const appName = "notemail"

// Policy names accepted by the --policy flag.
const (
	PolicyRich   = "rich"
	PolicySimple = "simple"
)

// AppConfig is the process-level configuration assembled from flags,
// environment variables and defaults. It is not persisted; the user's
// settings record lives in Settings.
type AppConfig struct {
	// VaultDir is the directory whose markdown notes are browsed.
	VaultDir string `mapstructure:"vault"`

	// Policy selects the size policy: "rich" or "simple".
	Policy string `mapstructure:"policy"`

	// SettingsPath is the file holding the persisted Settings record.
	SettingsPath string `mapstructure:"settings"`

	// HistoryPath is the SQLite database recording export outcomes.
	// Empty disables history.
	HistoryPath string `mapstructure:"history"`

	// LogPath receives log output while the TUI owns the terminal.
	LogPath string `mapstructure:"log"`
}

// DefaultConfigDir returns the per-user notemail configuration directory,
// falling back to the working directory when no home can be determined.
func DefaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "."
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appName)
}

// DefaultSettingsPath returns the default location of the settings file.
func DefaultSettingsPath() string {
	return filepath.Join(DefaultConfigDir(), "data.json")
}

// RegisterFlags adds the shared configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("vault", ".", "directory containing markdown notes")
	fs.String("policy", PolicyRich, "size policy: rich or simple")
	fs.String("settings", DefaultSettingsPath(), "settings file")
	fs.String("history", filepath.Join(DefaultConfigDir(), "history.db"),
		"export history database (empty to disable)")
	fs.String("log", filepath.Join(DefaultConfigDir(), "notemail.log"),
		"log file used while the TUI is running")
}

// LoadAppConfig resolves configuration from fs, NOTEMAIL_* environment
// variables and defaults, in that order of precedence.
func LoadAppConfig(fs *pflag.FlagSet) (*AppConfig, error) {
	v := viper.New()
	v.SetEnvPrefix(appName)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("vault", ".")
	v.SetDefault("policy", PolicyRich)
	v.SetDefault("settings", DefaultSettingsPath())
	v.SetDefault("history", filepath.Join(DefaultConfigDir(), "history.db"))
	v.SetDefault("log", filepath.Join(DefaultConfigDir(), "notemail.log"))

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("binding flags: %w", err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	cfg.Policy = strings.ToLower(strings.TrimSpace(cfg.Policy))
	switch cfg.Policy {
	case PolicyRich, PolicySimple:
	default:
		return nil, fmt.Errorf("unknown policy %q (want %q or %q)",
			cfg.Policy, PolicyRich, PolicySimple)
	}

	vault, err := filepath.Abs(cfg.VaultDir)
	if err != nil {
		return nil, fmt.Errorf("resolving vault %s: %w", cfg.VaultDir, err)
	}
	cfg.VaultDir = vault

	return cfg, nil
}
