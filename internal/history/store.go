// Package history keeps a local log of export outcomes.
package history

import (
	"context"

	"github.com/nhle/notemail/internal/model"
)

// Filter controls which records Recent returns.
type Filter struct {
	NotePath *string
	Outcome  *model.ExportOutcome
	Limit    int
}

// Store defines the persistence interface for export records. Records hold
// the note path and outcome only; recipients and bodies never reach it.
type Store interface {
	Record(ctx context.Context, rec model.ExportRecord) error
	Recent(ctx context.Context, filter Filter) ([]model.ExportRecord, error)
	CountByOutcome(ctx context.Context) (map[model.ExportOutcome]int, error)
	Clear(ctx context.Context) error
	Close() error
}
