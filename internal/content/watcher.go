package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/restatolahdata/go-artikel/internal/logging"
	"github.com/restatolahdata/go-artikel/pkg/interfaces"
)

const (
	defaultWatchDebounce = 250 * time.Millisecond
	defaultRootPoll      = 2 * time.Second
	// root, category and post folder levels
	watchDepth = 2
)

// Watcher calls OnChange once a burst of filesystem events under the content
// root has settled.
type Watcher struct {
	root     string
	debounce time.Duration
	rootPoll time.Duration
	onChange func(context.Context) error
	logger   interfaces.Logger
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the quiet period before OnChange fires.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithRootPollInterval sets how often a missing root is checked for.
func WithRootPollInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.rootPoll = d
		}
	}
}

// WithWatcherLogger sets the watcher logger.
func WithWatcherLogger(logger interfaces.Logger) WatcherOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWatcher watches root. onChange is usually Service.Refresh.
func NewWatcher(root string, onChange func(context.Context) error, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		root:     root,
		debounce: defaultWatchDebounce,
		rootPoll: defaultRootPoll,
		onChange: onChange,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w
}

// Run blocks until ctx is cancelled. A root that does not exist yet is
// polled for; once it appears OnChange fires and watching starts. A root
// that exists but is not a directory returns ErrWatchRootMissing.
func (w *Watcher) Run(ctx context.Context) error {
	ready, err := w.awaitRoot(ctx)
	if err != nil || !ready {
		return err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("content: create watcher: %w", err)
	}
	defer fw.Close()

	if err := w.addTree(fw, w.root); err != nil {
		return err
	}
	w.logger.Info("content.watch.started", "root", w.root)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("content.watch.stopped")
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(fw, event.Name); err != nil {
						w.logger.Warn("content.watch.add_failed", "path", event.Name, "error", err)
					}
				}
			}
			w.logger.Debug("content.watch.event", "path", event.Name, "op", event.Op.String())
			pending = true
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("content.watch.error", "error", err)

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			w.notify(ctx)
		}
	}
}

// awaitRoot reports false when ctx ends before the root shows up.
func (w *Watcher) awaitRoot(ctx context.Context) (bool, error) {
	info, err := os.Stat(w.root)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("%w: %s", ErrWatchRootMissing, w.root)
		}
		return true, nil
	}
	w.logger.Warn("content.watch.root_missing", "root", w.root, "poll", w.rootPoll.String())

	ticker := time.NewTicker(w.rootPoll)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("content.watch.stopped")
			return false, nil
		case <-ticker.C:
			info, err := os.Stat(w.root)
			if err != nil {
				continue
			}
			if !info.IsDir() {
				return false, fmt.Errorf("%w: %s", ErrWatchRootMissing, w.root)
			}
			w.logger.Info("content.watch.root_appeared", "root", w.root)
			w.notify(ctx)
			return true, nil
		}
	}
}

func (w *Watcher) notify(ctx context.Context) {
	if w.onChange == nil {
		return
	}
	if err := w.onChange(ctx); err != nil {
		w.logger.Warn("content.watch.refresh_failed", "error", err)
	}
}

func relevant(event fsnotify.Event) bool {
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

func (w *Watcher) addTree(fw *fsnotify.Watcher, start string) error {
	return filepath.WalkDir(start, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != w.root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := fw.Add(p); err != nil {
			return fmt.Errorf("content: watch %s: %w", p, err)
		}
		if w.depth(p) >= watchDepth {
			return filepath.SkipDir
		}
		return nil
	})
}

func (w *Watcher) depth(p string) int {
	rel, err := filepath.Rel(w.root, p)
	if err != nil || rel == "." {
		return 0
	}
	return len(strings.Split(rel, string(filepath.Separator)))
}
