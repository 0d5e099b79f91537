package diagfmt

import (
	"bufio"
	"fmt"
	"io"

	"pyrint/internal/diag"
	"pyrint/internal/driver"
)

// Text prints one "path:line:col: CODE: message (symbol)" line per issue.
// Unreadable files print as "path: error: reason".
func Text(w io.Writer, results []driver.FileResult, opts Options) error {
	bw := bufio.NewWriter(w)
	for _, r := range results {
		path := displayPath(r.Path, opts)
		if r.Failed() {
			fmt.Fprintf(bw, "%s: error: %v\n", path, r.Err)
			continue
		}
		for _, is := range diag.Issues(r.Diagnostics, r.Files, path) {
			fmt.Fprintf(bw, "%s:%d:%d: %s: %s (%s)\n", is.File, is.Line, is.Column, is.Code, is.Message, is.Symbol)
		}
	}
	if opts.Summary {
		fmt.Fprintln(bw, summaryLine(results))
	}
	return bw.Flush()
}

// Short renders the compact sorted form used by golden tests, one block per file.
func Short(w io.Writer, results []driver.FileResult, opts Options) error {
	bw := bufio.NewWriter(w)
	for _, r := range results {
		if r.Failed() {
			fmt.Fprintf(bw, "fatal %s %v\n", displayPath(r.Path, opts), r.Err)
			continue
		}
		if out := diag.FormatShortDiagnostics(r.Diagnostics, r.Files, opts.Notes); out != "" {
			fmt.Fprintln(bw, out)
		}
	}
	return bw.Flush()
}
