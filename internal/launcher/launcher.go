// Package launcher hands URIs to the handler registered with the
// operating system.
package launcher

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/browser"
)

// Opener dispatches a URI to its registered handler. Whether the handler
// actually opened is not observable.
type Opener interface {
	Open(ctx context.Context, uri string) error
}

// System opens URIs with the platform's default handler
// (xdg-open, open, or the Windows shell).
type System struct{}

func init() {
	// Helper processes must not write into the terminal UI.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
}

// Open launches uri.
func (System) Open(_ context.Context, uri string) error {
	if err := browser.OpenURL(uri); err != nil {
		return fmt.Errorf("opening %s: %w", schemeOf(uri), err)
	}
	return nil
}

// schemeOf returns the scheme part of uri so errors never echo a note body.
func schemeOf(uri string) string {
	for i := 0; i < len(uri); i++ {
		if uri[i] == ':' {
			return uri[:i+1] + " link"
		}
	}
	return "link"
}
