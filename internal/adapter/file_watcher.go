package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	m "mender.dev/pkg/mender/internal/model"
)

// DefaultDebounce is the quiet period before a batch of changes is handed
// to the watch handler.
const DefaultDebounce = 200 * time.Millisecond

// ChangeHandler receives the targets that changed during one debounce
// window, in target order.
type ChangeHandler func(ctx context.Context, changed []m.Path)

// FileWatcher reports writes to a fixed set of target files.
type FileWatcher interface {
	// Watch blocks until ctx is done or the watcher fails.
	Watch(ctx context.Context, targets []m.Path, handler ChangeHandler) error
}

type fsnotifyWatcher struct {
	debounce time.Duration
}

// NewFileWatcher returns an fsnotify-backed FileWatcher. A non-positive
// debounce falls back to DefaultDebounce.
func NewFileWatcher(debounce time.Duration) FileWatcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &fsnotifyWatcher{debounce: debounce}
}

// Watch subscribes to the parent directory of every target. Generators and
// editors often replace files by rename, which a watch on the file itself
// would lose.
func (w *fsnotifyWatcher) Watch(ctx context.Context, targets []m.Path, handler ChangeHandler) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	defer func() { _ = watcher.Close() }()

	order, err := w.subscribe(watcher, targets)
	if err != nil {
		return err
	}

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			name := filepath.Clean(event.Name)
			if _, tracked := order[name]; !tracked {
				continue
			}

			slog.Debug("target changed", "path", name, "op", event.Op.String())
			pending[name] = struct{}{}
			timer.Reset(w.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			slog.Warn("watcher error", "error", err)

		case <-timer.C:
			changed := drainPending(pending, order, targets)
			if len(changed) > 0 {
				handler(ctx, changed)
			}
		}
	}
}

func (w *fsnotifyWatcher) subscribe(watcher *fsnotify.Watcher, targets []m.Path) (map[string]int, error) {
	order := make(map[string]int, len(targets))
	dirs := make(map[string]struct{})

	for i, target := range targets {
		abs, err := filepath.Abs(string(target))
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", target, err)
		}

		order[abs] = i
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			// Directories that do not exist yet are skipped like missing targets.
			slog.Warn("cannot watch directory", "dir", dir, "error", err)
			continue
		}

		slog.Debug("watching directory", "dir", dir)
	}

	return order, nil
}

func drainPending(pending map[string]struct{}, order map[string]int, targets []m.Path) []m.Path {
	indexes := make([]bool, len(targets))

	for name := range pending {
		indexes[order[name]] = true
		delete(pending, name)
	}

	var changed []m.Path

	for i, hit := range indexes {
		if hit {
			changed = append(changed, targets[i])
		}
	}

	return changed
}
