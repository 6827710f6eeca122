package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/LegacyCodeHQ/importviz/depgraph"
	"github.com/LegacyCodeHQ/importviz/depgraph/languages/python"
	"github.com/fsnotify/fsnotify"
)

const debounceInterval = 300 * time.Millisecond

// projectWatcher watches every scanned directory of a project.
type projectWatcher struct {
	watcher *fsnotify.Watcher
	scan    depgraph.ScanOptions
	errOut  io.Writer
}

func newProjectWatcher(root string, scan depgraph.ScanOptions, errOut io.Writer) (*projectWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &projectWatcher{watcher: watcher, scan: scan, errOut: errOut}
	if err := w.addWatchDirs(root); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch directories: %w", err)
	}
	return w, nil
}

func (w *projectWatcher) Close() error {
	return w.watcher.Close()
}

// run calls rebuild once events settle for debounceInterval. Rebuilds run on this
// goroutine, so at most one is in flight.
func (w *projectWatcher) run(ctx context.Context, rebuild func(context.Context)) error {
	debounce := time.NewTimer(debounceInterval)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}

			if !isRelevantChange(event) {
				continue
			}
			debounce.Reset(debounceInterval)

			if event.Has(fsnotify.Create) {
				w.addIfDirectory(event.Name)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(w.errOut, "watcher error: %v\n", err)

		case <-debounce.C:
			rebuild(ctx)
		}
	}
}

// isRelevantChange keeps content changes to Python files and structural changes to
// directories.
func isRelevantChange(event fsnotify.Event) bool {
	if event.Has(fsnotify.Write) {
		return filepath.Ext(event.Name) == python.SourceExtension
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	ext := filepath.Ext(event.Name)
	return ext == python.SourceExtension || ext == ""
}

func (w *projectWatcher) addWatchDirs(root string) error {
	return addWatchDirsWithAdder(root, w.scan, w.watcher.Add)
}

func addWatchDirsWithAdder(root string, scan depgraph.ScanOptions, add func(string) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path != root {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && scan.SkipsDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := add(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipDir
			}
			return err
		}
		return nil
	})
}

func (w *projectWatcher) addIfDirectory(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if w.scan.SkipsDir(info.Name()) {
		return
	}
	_ = w.addWatchDirs(path)
}
