// Package settings owns the persisted configuration record and the single
// live copy of it shared by the rest of the program.
package settings

import (
	"context"
	"fmt"
	"log"

	"github.com/nhle/notemail/internal/model"
)

// Persistence reads and writes the raw settings record.
type Persistence interface {
	// LoadRaw returns the stored record, or nil when none exists.
	LoadRaw(ctx context.Context) (*model.PartialSettings, error)

	// SaveRaw replaces the stored record.
	SaveRaw(ctx context.Context, s model.Settings) error
}

// Storage is the file access needed to discard the stored record.
type Storage interface {
	Exists(ctx context.Context, path string) (bool, error)
	Remove(ctx context.Context, path string) error
}

// Manager loads, saves and resets the settings record. The pointer returned
// by Settings never changes; Load and Reset rewrite it in place.
type Manager struct {
	persistence Persistence
	storage     Storage
	location    string
	live        *model.Settings
}

// NewManager creates a manager whose live record starts at the defaults.
// location is the file removed by Reset; an empty location makes Reset a
// no-op.
func NewManager(p Persistence, s Storage, location string) *Manager {
	live := model.DefaultSettings()
	return &Manager{
		persistence: p,
		storage:     s,
		location:    location,
		live:        &live,
	}
}

// NewFileManager wires a Manager to a FilePersistence.
func NewFileManager(p *FilePersistence) *Manager {
	return NewManager(p, p, p.Path())
}

// Settings returns the live record.
func (m *Manager) Settings() *model.Settings {
	return m.live
}

// Load merges the stored record over the defaults and installs the result
// into the live record. A missing or unreadable record yields the defaults.
func (m *Manager) Load(ctx context.Context) {
	raw, err := m.persistence.LoadRaw(ctx)
	if err != nil {
		log.Printf("loading settings, falling back to defaults: %v", err)
		raw = nil
	}
	*m.live = model.MergeSettings(raw)
}

// Save persists the full live record.
func (m *Manager) Save(ctx context.Context) error {
	if err := m.persistence.SaveRaw(ctx, *m.live); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}

// Reset deletes the stored record, if any, and reloads the defaults.
func (m *Manager) Reset(ctx context.Context) error {
	if m.location == "" || m.storage == nil {
		return nil
	}

	exists, err := m.storage.Exists(ctx, m.location)
	if err != nil {
		return fmt.Errorf("resetting settings: %w", err)
	}
	if exists {
		if err := m.storage.Remove(ctx, m.location); err != nil {
			return fmt.Errorf("resetting settings: %w", err)
		}
	}

	m.Load(ctx)
	return nil
}
