// Package analyzer walks a parsed file once and reports scope, control-flow
// and definition-shape violations.
package analyzer

import (
	"fmt"

	"pyrint/internal/ast"
	"pyrint/internal/diag"
	"pyrint/internal/source"
)

// Options configure a pass over one file.
type Options struct {
	Reporter diag.Reporter
	// Rules selects the checks to run. Nil enables all of them.
	Rules *diag.RuleSet
	// Files resolves the line numbers quoted in some messages. May be nil.
	Files *source.FileSet
}

// Result summarizes a finished walk.
type Result struct {
	Frames    int
	Functions int
}

// Analyze walks fileID and reports every violation through opts.Reporter.
// It never fails: a nil builder or an invalid file yields an empty Result.
func Analyze(builder *ast.Builder, fileID ast.FileID, opts Options) Result {
	if builder == nil || !fileID.IsValid() {
		return Result{}
	}
	file := builder.Files.Get(fileID)
	if file == nil {
		return Result{}
	}

	c := checker{
		b:        builder,
		reporter: opts.Reporter,
		rules:    opts.Rules,
		files:    opts.Files,
		track:    trackingFor(opts.Rules),
		frames:   NewFrames(32),
	}
	c.walkModule(file)
	return Result{Frames: c.frames.Len(), Functions: c.functions}
}

// tracking lists the bookkeeping the enabled rules need. Disabled rules
// cost nothing: with E0115, E0117 and E0118 off no declaration sets exist.
type tracking struct {
	declarations bool // global and nonlocal sets
	bindings     bool
	uses         bool
	funcNames    bool
	returns      bool
	generators   bool
}

func trackingFor(rules *diag.RuleSet) tracking {
	return tracking{
		declarations: rules.AnyEnabled(diag.NonlocalAndGlobal, diag.NonlocalWithoutBind, diag.UsedPriorGlobalDecl),
		bindings:     rules.AnyEnabled(diag.NonlocalWithoutBind, diag.UsedPriorGlobalDecl),
		uses:         rules.Enabled(diag.UsedPriorGlobalDecl),
		funcNames:    rules.Enabled(diag.FunctionRedefined),
		returns:      rules.AnyEnabled(diag.ReturnInInit, diag.ReturnArgInGenerator),
		generators:   rules.AnyEnabled(diag.InitIsGenerator, diag.ReturnArgInGenerator),
	}
}

type checker struct {
	b        *ast.Builder
	reporter diag.Reporter
	rules    *diag.RuleSet
	files    *source.FileSet
	track    tracking

	frames    *Frames
	stack     []FrameID
	control   []marker
	functions int
}

func (c *checker) enabled(code diag.Code) bool {
	return c.rules.Enabled(code)
}

func (c *checker) report(code diag.Code, sp source.Span, format string, args ...any) {
	if c.reporter == nil || !c.enabled(code) {
		return
	}
	diag.ReportError(c.reporter, code, sp, fmt.Sprintf(format, args...)).Emit()
}

func (c *checker) name(id source.StringID) string {
	return c.b.Name(id)
}

// line is the 1-based line of sp, or 0 without a FileSet.
func (c *checker) line(sp source.Span) uint32 {
	if c.files == nil || !c.files.Contains(sp) {
		return 0
	}
	start, _ := c.files.Resolve(sp)
	return start.Line
}

func (c *checker) walkModule(file *ast.File) {
	c.scoped(FrameModule, ast.NoStmtID, file.Span, marker{}, func() {
		c.walkBody(file.Body)
	})
}
