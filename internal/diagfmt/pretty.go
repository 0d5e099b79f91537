package diagfmt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"pyrint/internal/diag"
	"pyrint/internal/driver"
	"pyrint/internal/source"
)

const tabWidth = 4

type palette struct {
	path, errorLabel, code, symbol, gutter, caret, note, summaryOK, summaryBad *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		path:       color.New(color.Bold),
		errorLabel: color.New(color.FgRed, color.Bold),
		code:       color.New(color.FgRed),
		symbol:     color.New(color.Faint),
		gutter:     color.New(color.FgBlue, color.Bold),
		caret:      color.New(color.FgRed, color.Bold),
		note:       color.New(color.FgCyan, color.Bold),
		summaryOK:  color.New(color.FgGreen, color.Bold),
		summaryBad: color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.path, p.errorLabel, p.code, p.symbol, p.gutter, p.caret, p.note, p.summaryOK, p.summaryBad} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty prints each issue with a source excerpt and a caret under the span:
//
//	path:line:col: error E0102: message [symbol]
//	  4 | def f():
//	    | ^^^
func Pretty(w io.Writer, results []driver.FileResult, opts Options) error {
	bw := bufio.NewWriter(w)
	pal := newPalette(opts.Color)
	for _, r := range results {
		path := displayPath(r.Path, opts)
		if r.Failed() {
			fmt.Fprintf(bw, "%s: %s %v\n\n", pal.path.Sprint(path), pal.errorLabel.Sprint("fatal:"), r.Err)
			continue
		}
		for i := range r.Diagnostics {
			prettyDiagnostic(bw, pal, &r.Diagnostics[i], r.Files, path, opts.Notes)
		}
	}
	if opts.Summary {
		line := summaryLine(results)
		if driver.Summarize(results).OK() {
			fmt.Fprintln(bw, pal.summaryOK.Sprint(line))
		} else {
			fmt.Fprintln(bw, pal.summaryBad.Sprint(line))
		}
	}
	return bw.Flush()
}

func prettyDiagnostic(w io.Writer, pal palette, d *diag.Diagnostic, fs *source.FileSet, path string, notes bool) {
	is := diag.NewIssue(*d, fs, path)
	fmt.Fprintf(w, "%s: %s %s: %s %s\n",
		pal.path.Sprintf("%s:%d:%d", is.File, is.Line, is.Column),
		pal.errorLabel.Sprint(is.Severity),
		pal.code.Sprint(is.Code),
		is.Message,
		pal.symbol.Sprintf("[%s]", is.Symbol),
	)
	excerpt(w, pal, fs, d.Primary)
	if notes {
		for _, n := range d.Notes {
			loc, ok := diag.Locate(fs, n.Span, false)
			if !ok {
				continue
			}
			fmt.Fprintf(w, "  %s %s (line %d)\n", pal.note.Sprint("note:"), n.Msg, loc.Line)
			excerpt(w, pal, fs, n.Span)
		}
	}
	fmt.Fprintln(w)
}

// excerpt prints the first line of sp with a caret run underneath. Carets
// are aligned by display width, so wide runes and tabs stay in column.
func excerpt(w io.Writer, pal palette, fs *source.FileSet, sp source.Span) {
	if fs == nil || !fs.Contains(sp) {
		return
	}
	file := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	if start.Line == 0 {
		return
	}
	text := file.GetLine(start.Line)
	if text == "" && sp.Empty() {
		return
	}
	runes := []rune(text)
	from := min(int(start.Col)-1, len(runes))
	to := len(runes)
	if end.Line == start.Line {
		to = min(int(end.Col)-1, len(runes))
	}
	to = max(to, from)

	prefix := expandTabs(string(runes[:from]))
	marked := expandTabs(string(runes[from:to]))
	width := max(1, runewidth.StringWidth(marked))

	num := strconv.FormatUint(uint64(start.Line), 10)
	pad := strings.Repeat(" ", len(num))
	fmt.Fprintf(w, "  %s %s\n", pal.gutter.Sprintf("%s |", num), expandTabs(text))
	fmt.Fprintf(w, "  %s %s%s\n",
		pal.gutter.Sprintf("%s |", pad),
		strings.Repeat(" ", runewidth.StringWidth(prefix)),
		pal.caret.Sprint(strings.Repeat("^", width)),
	)
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
