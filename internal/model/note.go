package model

import (
	"path"
	"strings"
	"time"
)

// MarkdownExtension is the extension, without the dot, of exportable notes.
const MarkdownExtension = "md"

// Note is a handle to a single file inside the vault. It is borrowed for
// the duration of one export and never created or removed by the exporter.
type Note struct {
	// Path is the vault-relative, slash-separated path of the file.
	Path string

	// IsFile is false for directories and other non-regular entries.
	IsFile bool

	// Size is the on-disk size in bytes at the time the handle was made.
	Size int64

	// ModTime is the last modification time reported by the file system.
	ModTime time.Time
}

// Name returns the final path element, including the extension.
func (n Note) Name() string {
	return path.Base(n.Path)
}

// Extension returns the file extension without the leading dot.
func (n Note) Extension() string {
	return strings.TrimPrefix(path.Ext(n.Path), ".")
}

// BaseName returns the file name without its extension. It is used as the
// email subject.
func (n Note) BaseName() string {
	name := n.Name()
	return strings.TrimSuffix(name, path.Ext(name))
}

// Eligible reports whether the note can be sent: a regular file with the
// markdown extension.
func (n Note) Eligible() bool {
	return n.IsFile && n.Extension() == MarkdownExtension
}
