package settings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/nhle/notemail/internal/model"
)

const (
	keyDefaultRecipient = "default_recipient"

	// legacyKeyDefaultRecipient is the camel-case key written by earlier
	// releases. Viper lower-cases keys on read.
	legacyKeyDefaultRecipient = "defaultrecipient"
)

// FilePersistence stores the settings record as a JSON file through Viper.
// The file system is pluggable so tests can run against memory.
type FilePersistence struct {
	fs   afero.Fs
	path string
}

// NewFilePersistence returns a persistence backend for the file at path.
// A nil fs selects the operating system file system.
func NewFilePersistence(fs afero.Fs, path string) *FilePersistence {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &FilePersistence{fs: fs, path: path}
}

// Path returns the location of the settings file.
func (p *FilePersistence) Path() string {
	return p.path
}

// LoadRaw reads the stored record. It returns (nil, nil) when no file
// exists; fields missing from the file are nil in the result.
func (p *FilePersistence) LoadRaw(_ context.Context) (*model.PartialSettings, error) {
	v := p.newViper()

	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading settings %s: %w", p.path, err)
	}

	partial := &model.PartialSettings{}
	switch {
	case v.IsSet(keyDefaultRecipient):
		s := v.GetString(keyDefaultRecipient)
		partial.DefaultRecipient = &s
	case v.IsSet(legacyKeyDefaultRecipient):
		s := v.GetString(legacyKeyDefaultRecipient)
		partial.DefaultRecipient = &s
	}

	return partial, nil
}

// SaveRaw writes the full record, replacing any previous file and creating
// parent directories as needed.
func (p *FilePersistence) SaveRaw(_ context.Context, s model.Settings) error {
	dir := filepath.Dir(p.path)
	if err := p.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating settings directory %s: %w", dir, err)
	}

	v := p.newViper()
	v.Set(keyDefaultRecipient, s.DefaultRecipient)

	if err := v.WriteConfigAs(p.path); err != nil {
		return fmt.Errorf("writing settings to %s: %w", p.path, err)
	}

	return nil
}

// Exists reports whether a file exists at path.
func (p *FilePersistence) Exists(_ context.Context, path string) (bool, error) {
	ok, err := afero.Exists(p.fs, path)
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
	return ok, nil
}

// Remove deletes the file at path.
func (p *FilePersistence) Remove(_ context.Context, path string) error {
	if err := p.fs.Remove(path); err != nil {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}

func (p *FilePersistence) newViper() *viper.Viper {
	v := viper.New()
	v.SetFs(p.fs)
	v.SetConfigFile(p.path)
	v.SetConfigType("json")
	return v
}
