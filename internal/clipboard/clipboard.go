// Package clipboard writes text to the system clipboard.
package clipboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available.
var ErrUnsupported = errors.New("clipboard is not supported on this system")

// Writer places text on a clipboard.
type Writer interface {
	WriteText(ctx context.Context, text string) error
}

// System is the Writer backed by the operating system clipboard.
type System struct{}

// WriteText copies text to the system clipboard.
func (System) WriteText(_ context.Context, text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}
