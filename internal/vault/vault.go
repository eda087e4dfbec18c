// Package vault gives read access to a directory of notes.
package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/nhle/notemail/internal/model"
)

// ErrOutsideVault is returned when a path does not resolve inside the vault.
var ErrOutsideVault = errors.New("path is outside the vault")

// cacheEntry holds the content of a note as of a given stat result.
type cacheEntry struct {
	content string
	modTime time.Time
	size    int64
}

// Vault reads notes below a root directory. Reads are cached and served
// again while the file's size and modification time are unchanged.
type Vault struct {
	fs   afero.Fs
	root string

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// New opens the vault rooted at the directory root on the OS file system.
func New(root string) (*Vault, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving vault root %s: %w", root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("opening vault %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("opening vault %s: not a directory", abs)
	}

	return NewWithFs(afero.NewBasePathFs(afero.NewOsFs(), abs), abs), nil
}

// NewWithFs builds a vault over fs, whose root directory "/" corresponds
// to the absolute path root.
func NewWithFs(fsys afero.Fs, root string) *Vault {
	return &Vault{
		fs:    fsys,
		root:  filepath.Clean(root),
		cache: make(map[string]cacheEntry),
	}
}

// Root returns the absolute path of the vault directory.
func (v *Vault) Root() string {
	return v.root
}

// List returns every regular file in the vault, sorted by path. Hidden
// files and directories are skipped.
func (v *Vault) List(ctx context.Context) ([]model.Note, error) {
	var notes []model.Note

	err := afero.Walk(v.fs, "/", func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel := relPath(p)
		if rel == "" {
			return nil
		}
		if strings.HasPrefix(info.Name(), ".") {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			return nil
		}

		notes = append(notes, noteFromInfo(rel, info))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing vault %s: %w", v.root, err)
	}

	sort.Slice(notes, func(i, j int) bool {
		return notes[i].Path < notes[j].Path
	})

	return notes, nil
}

// Stat returns a handle for the vault-relative path rel.
func (v *Vault) Stat(_ context.Context, rel string) (model.Note, error) {
	rel = cleanRel(rel)
	info, err := v.fs.Stat(fsPath(rel))
	if err != nil {
		return model.Note{}, fmt.Errorf("stat %s: %w", rel, err)
	}
	return noteFromInfo(rel, info), nil
}

// Resolve returns a handle for a path given on the command line, which
// may be absolute or relative to the working directory.
func (v *Vault) Resolve(ctx context.Context, p string) (model.Note, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return model.Note{}, fmt.Errorf("resolving %s: %w", p, err)
	}

	rel, err := filepath.Rel(v.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return model.Note{}, fmt.Errorf("%s: %w", p, ErrOutsideVault)
	}

	return v.Stat(ctx, filepath.ToSlash(rel))
}

// ReadCached returns the content of note, reusing the previous read when
// the file has not changed since.
func (v *Vault) ReadCached(_ context.Context, note model.Note) (string, error) {
	rel := cleanRel(note.Path)
	name := fsPath(rel)

	info, err := v.fs.Stat(name)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", rel, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("reading %s: is a directory", rel)
	}

	v.mu.Lock()
	entry, ok := v.cache[rel]
	v.mu.Unlock()
	if ok && entry.size == info.Size() && entry.modTime.Equal(info.ModTime()) {
		return entry.content, nil
	}

	data, err := afero.ReadFile(v.fs, name)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", rel, err)
	}

	content := string(data)
	v.mu.Lock()
	v.cache[rel] = cacheEntry{
		content: content,
		modTime: info.ModTime(),
		size:    info.Size(),
	}
	v.mu.Unlock()

	return content, nil
}

// Invalidate drops any cached content for the vault-relative path rel.
func (v *Vault) Invalidate(rel string) {
	v.mu.Lock()
	delete(v.cache, cleanRel(rel))
	v.mu.Unlock()
}

// AbsPath returns the absolute, OS-specific path of note.
func (v *Vault) AbsPath(note model.Note) string {
	return filepath.Join(v.root, filepath.FromSlash(cleanRel(note.Path)))
}

func noteFromInfo(rel string, info fs.FileInfo) model.Note {
	return model.Note{
		Path:    rel,
		IsFile:  info.Mode().IsRegular(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
}

// cleanRel normalizes a vault-relative path to slash form without a
// leading slash.
func cleanRel(rel string) string {
	rel = path.Clean("/" + filepath.ToSlash(rel))
	return strings.TrimPrefix(rel, "/")
}

// fsPath maps a vault-relative path to the name used on v.fs.
func fsPath(rel string) string {
	return "/" + rel
}

// relPath maps a name produced by walking v.fs back to vault-relative form.
func relPath(name string) string {
	return cleanRel(name)
}
