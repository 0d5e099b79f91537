package driver

import (
	"context"
	"fmt"
	"time"

	"pyrint/internal/analyzer"
	"pyrint/internal/ast"
	"pyrint/internal/diag"
	"pyrint/internal/lexer"
	"pyrint/internal/observ"
	"pyrint/internal/parser"
	"pyrint/internal/pipeline"
	"pyrint/internal/source"
)

// AnalyzeSource analyzes src as if it were the contents of path.
func (d *Driver) AnalyzeSource(path string, src []byte) FileResult {
	fs := source.NewFileSet()
	id := fs.AddVirtual(path, src)
	timer := observ.NewTimer()
	return d.analyze(path, fs, id, timer)
}

// AnalyzeFile reads and analyzes one file. A read failure is returned in
// FileResult.Err rather than as an error: it concerns this file only.
func (d *Driver) AnalyzeFile(ctx context.Context, path string) FileResult {
	if err := ctx.Err(); err != nil {
		return d.cancelled(path, err)
	}
	d.emit(pipeline.Event{File: path, Stage: pipeline.StageRead, Status: pipeline.StatusWorking})

	timer := observ.NewTimer()
	idx := timer.Begin(observ.PhaseRead)
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	elapsed := timer.End(idx, "")
	d.opts.Metrics.ObservePhase(observ.PhaseRead, elapsed)
	if err != nil {
		return d.readFailed(path, err, timer)
	}
	return d.analyze(path, fs, id, timer)
}

func (d *Driver) analyze(path string, fs *source.FileSet, id source.FileID, timer *observ.Timer) FileResult {
	start := time.Now()
	bag := diag.NewBag(d.opts.MaxDiagnostics)
	reporter := diag.FilterReporter{Next: diag.BagReporter{Bag: bag}, Rules: d.opts.Rules}

	d.emit(pipeline.Event{File: path, Stage: pipeline.StageParse, Status: pipeline.StatusWorking})
	// The lexer is pulled by the parser, so lexing is timed as part of parsing.
	idx := timer.Begin(observ.PhaseParse)
	lx := lexer.New(fs.Get(id), lexer.Options{})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	parsed := parser.ParseFile(fs, lx, builder, parser.Options{Reporter: reporter})
	d.opts.Metrics.ObservePhase(observ.PhaseParse, timer.End(idx, ""))

	res := FileResult{Path: path, Files: fs}
	if parsed.OK() {
		d.emit(pipeline.Event{File: path, Stage: pipeline.StageAnalyze, Status: pipeline.StatusWorking})
		idx = timer.Begin(observ.PhaseAnalyze)
		out := analyzer.Analyze(builder, parsed.File, analyzer.Options{
			Reporter: reporter,
			Rules:    d.opts.Rules,
			Files:    fs,
		})
		note := fmt.Sprintf("%d frames, %d functions", out.Frames, out.Functions)
		d.opts.Metrics.ObservePhase(observ.PhaseAnalyze, timer.End(idx, note))
	} else {
		res.SyntaxError = true
	}

	res.Diagnostics = bag.Items()
	res.Dropped = bag.Dropped()
	res.Timing = timer.Report()
	d.record(res)

	d.log.Debug("analyzed file",
		"path", path,
		"issues", len(res.Diagnostics),
		"syntax_error", res.SyntaxError,
		"total_ms", res.Timing.TotalMS,
	)
	d.emit(pipeline.Event{
		File:    path,
		Stage:   pipeline.StageAnalyze,
		Status:  pipeline.StatusDone,
		Issues:  len(res.Diagnostics),
		Elapsed: time.Since(start),
	})
	return res
}

func (d *Driver) readFailed(path string, err error, timer *observ.Timer) FileResult {
	err = fmt.Errorf("failed to read %s: %w", path, err)
	d.log.Warn("cannot read file", "path", path, "error", err)
	d.opts.Metrics.FileAnalyzed(observ.OutcomeReadError)
	d.emit(pipeline.Event{File: path, Stage: pipeline.StageRead, Status: pipeline.StatusError, Err: err})
	return FileResult{Path: path, Err: err, Timing: timer.Report()}
}

func (d *Driver) expandFailed(t Target) FileResult {
	d.log.Warn("cannot analyze path", "path", t.Path, "error", t.Err)
	d.opts.Metrics.FileAnalyzed(observ.OutcomeReadError)
	d.emit(pipeline.Event{File: t.Path, Stage: pipeline.StageRead, Status: pipeline.StatusError, Err: t.Err})
	return FileResult{Path: t.Path, Err: t.Err}
}

func (d *Driver) cancelled(path string, err error) FileResult {
	d.opts.Metrics.FileAnalyzed(observ.OutcomeCancelled)
	d.emit(pipeline.Event{File: path, Stage: pipeline.StageRead, Status: pipeline.StatusError, Err: err})
	return FileResult{Path: path, Err: err}
}

func (d *Driver) record(res FileResult) {
	m := d.opts.Metrics
	if m == nil {
		return
	}
	switch {
	case res.SyntaxError:
		m.FileAnalyzed(observ.OutcomeSyntaxError)
	case len(res.Diagnostics) > 0:
		m.FileAnalyzed(observ.OutcomeIssues)
	default:
		m.FileAnalyzed(observ.OutcomeClean)
	}
	for i := range res.Diagnostics {
		m.Issue(res.Diagnostics[i].Code.ID())
	}
}

func (d *Driver) emit(evt pipeline.Event) {
	pipeline.Emit(d.opts.Progress, evt)
}
