package diag

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"pyrint/internal/source"
)

// Location is a diagnostic span resolved against its FileSet.
type Location struct {
	Path   string
	Line   uint32
	Column uint32
}

type shortLine struct {
	Location
	sev  string
	code string
	msg  string
}

func compareShort(a, b shortLine) int {
	return cmp.Or(
		cmp.Compare(a.Path, b.Path),
		cmp.Compare(a.Line, b.Line),
		cmp.Compare(a.Column, b.Column),
		cmp.Compare(a.sev, b.sev),
		cmp.Compare(a.code, b.code),
		cmp.Compare(a.msg, b.msg),
	)
}

// FormatShortDiagnostics renders "severity CODE path:line:col message" for
// each diagnostic, ordered by position, with no trailing newline. Paths are
// relative to the FileSet base directory. Notes become lines of their own
// with severity "note" when includeNotes is set.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil {
		return ""
	}
	var lines []shortLine
	add := func(sp source.Span, sev string, code Code, msg string) {
		if loc, ok := Locate(fs, sp, true); ok {
			lines = append(lines, shortLine{Location: loc, sev: sev, code: code.ID(), msg: flattenMessage(msg)})
		}
	}
	for _, d := range diags {
		add(d.Primary, d.Severity.String(), d.Code, d.Message)
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			add(n.Span, "note", d.Code, n.Msg)
		}
	}
	slices.SortStableFunc(lines, compareShort)

	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = fmt.Sprintf("%s %s %s:%d:%d %s", l.sev, l.code, l.Path, l.Line, l.Column, l.msg)
	}
	return strings.Join(out, "\n")
}

// Locate resolves the start of span, or reports false when span is not
// part of fs. relative rewrites the path against fs.BaseDir.
func Locate(fs *source.FileSet, span source.Span, relative bool) (Location, bool) {
	if fs == nil || !fs.Contains(span) {
		return Location{}, false
	}
	f := fs.Get(span.File)
	loc := Location{Path: f.Path}
	if relative {
		loc.Path = f.RelPath(fs.BaseDir())
	}
	start, _ := fs.Resolve(span)
	loc.Line, loc.Column = start.Line, start.Col
	return loc, true
}

// flattenMessage keeps a message on one line.
func flattenMessage(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
