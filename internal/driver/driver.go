// Package driver runs the lexer, parser and analyzer over files and
// directories, one independent unit of work per file.
package driver

import (
	"log/slog"
	"runtime"

	"pyrint/internal/config"
	"pyrint/internal/diag"
	"pyrint/internal/observ"
	"pyrint/internal/pipeline"
	"pyrint/internal/source"
)

// Options configure a Driver. The zero value analyzes .py files with every
// rule enabled on a single worker.
type Options struct {
	// Rules selects the enabled rules; nil enables all of them.
	Rules *diag.RuleSet
	// Filter selects files during directory walks; nil accepts *.py.
	Filter *config.Filter
	// Jobs bounds the worker pool; values below one mean a single worker.
	Jobs int
	// MaxDiagnostics caps each file's diagnostics; zero means no cap.
	MaxDiagnostics int

	Progress pipeline.ProgressSink
	Metrics  *observ.Metrics
	Logger   *slog.Logger
}

// Driver is safe for concurrent use; it holds only read-only configuration.
type Driver struct {
	opts Options
	log  *slog.Logger
}

func New(opts Options) *Driver {
	if opts.Filter == nil {
		opts.Filter, _ = config.NewFilter(nil, nil)
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Driver{opts: opts, log: log}
}

// FromConfig builds driver options from a validated configuration.
func FromConfig(cfg config.Config) (Options, error) {
	rules, err := cfg.RuleSet()
	if err != nil {
		return Options{}, err
	}
	filter, err := cfg.Filter()
	if err != nil {
		return Options{}, err
	}
	jobs := cfg.Jobs
	if jobs == 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return Options{
		Rules:          rules,
		Filter:         filter,
		Jobs:           jobs,
		MaxDiagnostics: cfg.Output.MaxDiagnostics,
	}, nil
}

func (d *Driver) jobs(n int) int {
	return max(1, min(d.opts.Jobs, n))
}

// FileResult is the outcome for one file: either an ordered diagnostic list
// or a fatal error (read failure, cancellation) with no diagnostics.
type FileResult struct {
	Path        string
	Files       *source.FileSet
	Diagnostics []diag.Diagnostic
	// Dropped counts diagnostics beyond MaxDiagnostics.
	Dropped int
	// SyntaxError is set when parsing failed and the analyzer did not run.
	SyntaxError bool
	Err         error
	Timing      observ.Report
}

// Failed reports whether the file could not be analyzed at all.
func (r FileResult) Failed() bool { return r.Err != nil }

// Issues resolves the diagnostics against the file's own FileSet.
func (r FileResult) Issues() []diag.Issue {
	if r.Failed() {
		return nil
	}
	return diag.Issues(r.Diagnostics, r.Files, r.Path)
}

// Codes lists the diagnostic codes in report order.
func (r FileResult) Codes() []diag.Code {
	out := make([]diag.Code, 0, len(r.Diagnostics))
	for i := range r.Diagnostics {
		out = append(out, r.Diagnostics[i].Code)
	}
	return out
}

// Summary aggregates a batch of results.
type Summary struct {
	Files    int
	Issues   int
	Failures int
	Clean    int
}

func Summarize(results []FileResult) Summary {
	s := Summary{Files: len(results)}
	for _, r := range results {
		switch {
		case r.Failed():
			s.Failures++
		case len(r.Diagnostics) == 0:
			s.Clean++
		default:
			s.Issues += len(r.Diagnostics)
		}
	}
	return s
}

// OK reports whether the batch has neither issues nor failures.
func (s Summary) OK() bool { return s.Issues == 0 && s.Failures == 0 }
