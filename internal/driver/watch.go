package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

type WatchOptions struct {
	// Debounce is how long the watcher waits for more events before a run.
	Debounce time.Duration
	// Interval is the minimum time between two runs.
	Interval time.Duration
	// Initial runs a full pass over the tree before waiting for changes.
	Initial bool
}

// Watcher re-analyzes changed files below a root. Each run is a fresh pass:
// nothing is carried over between runs.
type Watcher struct {
	d         *Driver
	root      string
	fsw       *fsnotify.Watcher
	limiter   *rate.Limiter
	opts      WatchOptions
	onResults func([]FileResult)
	pending   map[string]struct{}
}

func (d *Driver) NewWatcher(root string, opts WatchOptions, onResults func([]FileResult)) (*Watcher, error) {
	if onResults == nil {
		return nil, fmt.Errorf("watch %s: nil result callback", root)
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 200 * time.Millisecond
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	w := &Watcher{
		d:         d,
		root:      root,
		fsw:       fsw,
		limiter:   rate.NewLimiter(rate.Every(opts.Interval), 1),
		opts:      opts,
		onResults: onResults,
		pending:   make(map[string]struct{}),
	}
	if err := w.addTree(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run blocks until ctx is cancelled or the underlying watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	if w.opts.Initial {
		results, err := w.d.AnalyzeDir(ctx, w.root)
		if err != nil {
			return err
		}
		w.d.opts.Metrics.WatchRun()
		w.onResults(results)
	}

	timer := time.NewTimer(w.opts.Debounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if w.handle(event) {
				timer.Reset(w.opts.Debounce)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.d.log.Error("watcher error", "error", err)
		case <-timer.C:
			if err := w.flush(ctx); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return nil
				}
				return err
			}
		}
	}
}

// handle records event and reports whether a run should be scheduled.
func (w *Watcher) handle(event fsnotify.Event) bool {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.d.log.Warn("failed to watch new directory", "path", event.Name, "error", err)
				return false
			}
			targets, err := w.d.ListFiles(event.Name)
			if err != nil {
				return false
			}
			queued := false
			for _, t := range targets {
				if t.Err != nil {
					w.d.log.Warn("cannot read path", "path", t.Path, "error", t.Err)
					continue
				}
				w.pending[t.Path] = struct{}{}
				queued = true
			}
			return queued
		}
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	if !w.d.opts.Filter.MatchFile(w.rel(event.Name)) {
		return false
	}
	w.pending[event.Name] = struct{}{}
	return true
}

func (w *Watcher) flush(ctx context.Context) error {
	if len(w.pending) == 0 {
		return nil
	}
	if err := w.limiter.Wait(ctx); err != nil {
		return err
	}
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		// Renamed-away and deleted files have nothing left to analyze.
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			paths = append(paths, p)
		}
	}
	clear(w.pending)
	if len(paths) == 0 {
		return nil
	}
	sort.Strings(paths)
	w.d.log.Debug("re-analyzing changed files", "count", len(paths))
	w.d.opts.Metrics.WatchRun()
	w.onResults(w.d.AnalyzeFiles(ctx, paths))
	return nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if w.d.opts.Filter.SkipDir(w.rel(path)) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) rel(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return path
	}
	return rel
}
