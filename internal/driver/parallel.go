package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"pyrint/internal/pipeline"
)

// Target is one input produced by path expansion. Err is set when the
// path could not be stat'ed or walked; such targets are reported as read
// failures and never analyzed.
type Target struct {
	Path string
	Err  error
}

// ListFiles returns the files under dir accepted by the filter, sorted
// lexicographically. Excluded directories are not descended into. An entry
// below dir that cannot be read becomes a failed Target; only a failure on
// dir itself is returned as an error.
func (d *Driver) ListFiles(dir string) ([]Target, error) {
	var targets []Target
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}
		if err != nil {
			if path == dir {
				return err
			}
			isDir := entry == nil || entry.IsDir()
			if !isDir && !d.opts.Filter.MatchFile(rel) {
				return nil
			}
			targets = append(targets, Target{Path: path, Err: fmt.Errorf("failed to read %s: %w", path, err)})
			if isDir {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			if d.opts.Filter.SkipDir(rel) {
				d.log.Debug("skipping excluded directory", "path", path)
				return filepath.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() || !d.opts.Filter.MatchFile(rel) {
			return nil
		}
		targets = append(targets, Target{Path: path})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	slices.SortStableFunc(targets, func(a, b Target) int { return strings.Compare(a.Path, b.Path) })
	return targets, nil
}

// AnalyzeDir analyzes every matching file below dir. The returned slice
// follows enumeration order regardless of completion order; the error is
// non-nil only when dir itself cannot be walked.
func (d *Driver) AnalyzeDir(ctx context.Context, dir string) ([]FileResult, error) {
	targets, err := d.ListFiles(dir)
	if err != nil {
		return nil, err
	}
	return d.AnalyzeTargets(ctx, targets), nil
}

// ExpandPaths expands directories and keeps explicit files as given, in
// argument order. A path that cannot be stat'ed or walked yields a failed
// Target in its place.
func (d *Driver) ExpandPaths(paths []string) []Target {
	var targets []Target
	for _, p := range paths {
		info, err := os.Stat(p)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			targets = append(targets, Target{Path: p, Err: fmt.Errorf("path does not exist: %s: %w", p, fs.ErrNotExist)})
			continue
		case err != nil:
			targets = append(targets, Target{Path: p, Err: fmt.Errorf("failed to stat %s: %w", p, err)})
			continue
		case !info.IsDir():
			targets = append(targets, Target{Path: p})
			continue
		}
		listed, err := d.ListFiles(p)
		if err != nil {
			targets = append(targets, Target{Path: p, Err: err})
			continue
		}
		targets = append(targets, listed...)
	}
	return targets
}

// AnalyzePaths analyzes the expansion of paths, one result per target.
func (d *Driver) AnalyzePaths(ctx context.Context, paths []string) []FileResult {
	return d.AnalyzeTargets(ctx, d.ExpandPaths(paths))
}

// AnalyzeTargets analyzes the readable targets on the worker pool and
// reports the failed ones as read errors, keeping target order.
func (d *Driver) AnalyzeTargets(ctx context.Context, targets []Target) []FileResult {
	results := make([]FileResult, len(targets))
	files := make([]string, 0, len(targets))
	slots := make([]int, 0, len(targets))
	for i, t := range targets {
		if t.Err != nil {
			results[i] = d.expandFailed(t)
			continue
		}
		files = append(files, t.Path)
		slots = append(slots, i)
	}
	for j, res := range d.AnalyzeFiles(ctx, files) {
		results[slots[j]] = res
	}
	return results
}

// Paths lists the path of every target, failed ones included.
func Paths(targets []Target) []string {
	out := make([]string, len(targets))
	for i, t := range targets {
		out[i] = t.Path
	}
	return out
}

// AnalyzeFiles fans files out over the worker pool. Every file gets a
// result: files not started before ctx is cancelled carry ctx's error.
func (d *Driver) AnalyzeFiles(ctx context.Context, files []string) []FileResult {
	results := make([]FileResult, len(files))
	if len(files) == 0 {
		return results
	}
	for _, path := range files {
		d.emit(pipeline.Event{File: path, Stage: pipeline.StageRead, Status: pipeline.StatusQueued})
	}

	// Workers never return errors: a failing file must not cancel its siblings.
	var g errgroup.Group
	g.SetLimit(d.jobs(len(files)))
	for i, path := range files {
		g.Go(func() error {
			// Index i is owned by this goroutine only.
			results[i] = d.runOne(ctx, path)
			return nil
		})
	}
	_ = g.Wait()

	d.emit(pipeline.Event{Stage: pipeline.StageAnalyze, Status: pipeline.StatusDone})
	return results
}

func (d *Driver) runOne(ctx context.Context, path string) (res FileResult) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("internal error analyzing %s: %v", path, r)
			d.log.Error("analysis panicked", "path", path, "panic", r)
			d.emit(pipeline.Event{File: path, Stage: pipeline.StageAnalyze, Status: pipeline.StatusError, Err: err})
			res = FileResult{Path: path, Err: err}
		}
	}()
	return d.AnalyzeFile(ctx, path)
}
