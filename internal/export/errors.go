package export

import (
	"errors"
	"fmt"
)

// ReadError reports that a note could not be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading note %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ReadError) Unwrap() error {
	return e.Err
}

// IsReadError reports whether err (or any error in its chain) is a ReadError.
func IsReadError(err error) bool {
	var readErr *ReadError
	return errors.As(err, &readErr)
}

// ErrNotEligible is returned when an export is requested for a note that
// is not a markdown file.
var ErrNotEligible = errors.New("only markdown files can be sent")
