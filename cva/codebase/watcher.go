package codebase

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dhamidi/cvac/compiler"
	"github.com/fsnotify/fsnotify"
)

// Watcher recompiles source files below the codebase root when they change
// on disk. A file is recompiled once no event for it arrived for the
// debounce interval, so a burst of writes compiles the final content once.
type Watcher struct {
	codebase *Codebase
	watcher  *fsnotify.Watcher
	debounce time.Duration
	pending  map[string]time.Time // path -> time of the latest event

	// OnChange is called after a file was recompiled.
	OnChange func(path string, unit *compiler.Unit)
	// OnRemove is called after a file disappeared.
	OnRemove func(path string)
}

func NewWatcher(c *Codebase) *Watcher {
	return &Watcher{
		codebase: c,
		debounce: 100 * time.Millisecond,
		pending:  make(map[string]time.Time),
	}
}

// Run watches the root directory and its subdirectories until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()
	w.watcher = watcher

	if err := w.addTree(w.codebase.RootDir()); err != nil {
		return err
	}
	log.Infof("watching %s", w.codebase.RootDir())

	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			w.flush(now)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event, time.Now())
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warningf("watch: %s", err)
		}
	}
}

// fsnotify does not recurse, so every directory is added on its own.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) handle(event fsnotify.Event, now time.Time) {
	path := event.Name

	switch {
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		delete(w.pending, path)
		if w.codebase.GetFile(path) == nil {
			return
		}
		w.codebase.RemoveFile(path)
		log.Debugf("removed %s", path)
		if w.OnRemove != nil {
			w.OnRemove(path)
		}

	case event.Has(fsnotify.Create) || event.Has(fsnotify.Write):
		if event.Has(fsnotify.Create) && w.watcher != nil {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				if err := w.addTree(path); err != nil {
					log.Warningf("%s", err)
				}
				return
			}
		}
		if !w.codebase.Compiler().Config().HasSourceExt(path) {
			return
		}
		w.pending[path] = now
	}
}

// flush recompiles every pending file whose latest event is at least the
// debounce interval older than now.
func (w *Watcher) flush(now time.Time) {
	var due []string
	for path, last := range w.pending {
		if now.Sub(last) >= w.debounce {
			due = append(due, path)
		}
	}
	sort.Strings(due)

	for _, path := range due {
		delete(w.pending, path)
		unit, err := w.codebase.ScanFile(path)
		if err != nil {
			log.Warningf("rescan %s: %s", path, err)
			continue
		}
		log.Debugf("recompiled %s", path)
		if w.OnChange != nil {
			w.OnChange(path, unit)
		}
	}
}
