package vault

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher follows file system changes below the vault root, dropping
// stale cache entries and reporting the affected vault-relative paths.
type Watcher struct {
	vault   *Vault
	watcher *fsnotify.Watcher
	changes chan string
	done    chan struct{}
	once    sync.Once
}

// Watch starts watching the vault directory tree. The caller must Close
// the returned watcher.
func (v *Vault) Watch() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		vault:   v,
		watcher: fw,
		changes: make(chan string, 16),
		done:    make(chan struct{}),
	}

	if err := w.addRecursive(v.root); err != nil {
		fw.Close()
		return nil, err
	}

	go w.processEvents()

	return w, nil
}

// Changes delivers the vault-relative path of every changed entry. Events
// are dropped when the consumer falls behind.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}

// addRecursive registers dir and its non-hidden subdirectories.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if p != dir && strings.HasPrefix(info.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(p); err != nil {
			return fmt.Errorf("watching %s: %w", p, err)
		}
		return nil
	})
}

func (w *Watcher) processEvents() {
	defer close(w.changes)

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("vault watcher: %v", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	rel, err := filepath.Rel(w.vault.root, event.Name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return
	}
	rel = filepath.ToSlash(rel)

	w.vault.Invalidate(rel)

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				log.Printf("vault watcher: %v", err)
			}
		}
	}

	select {
	case w.changes <- rel:
	case <-w.done:
	default:
	}
}
