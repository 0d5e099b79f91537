package diag

import "pyrint/internal/source"

// Reporter receives finished diagnostics from the parser and the analyzer.
type Reporter interface {
	Report(d Diagnostic)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Diagnostic)

func (f ReporterFunc) Report(d Diagnostic) {
	if f != nil {
		f(d)
	}
}

// Pending is a diagnostic under construction. Emit hands it to the
// reporter at most once.
type Pending struct {
	reporter Reporter
	diag     Diagnostic
	sent     bool
}

// ReportError starts an error diagnostic for code at primary.
func ReportError(r Reporter, code Code, primary source.Span, msg string) *Pending {
	return &Pending{
		reporter: r,
		diag:     Diagnostic{Severity: SevError, Code: code, Primary: primary, Message: msg},
	}
}

func (p *Pending) WithNote(sp source.Span, msg string) *Pending {
	p.diag.Notes = append(p.diag.Notes, Note{Span: sp, Msg: msg})
	return p
}

func (p *Pending) Emit() {
	if p.sent || p.reporter == nil {
		return
	}
	p.sent = true
	p.reporter.Report(p.diag)
}

// BagReporter appends to Bag, which may be nil.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag != nil {
		r.Bag.Add(d)
	}
}

// FilterReporter drops diagnostics whose rule is disabled in Rules.
type FilterReporter struct {
	Next  Reporter
	Rules *RuleSet
}

func (r FilterReporter) Report(d Diagnostic) {
	if r.Next != nil && r.Rules.Enabled(d.Code) {
		r.Next.Report(d)
	}
}
