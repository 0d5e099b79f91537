// Package diagfmt renders analysis results in the supported output formats.
package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"pyrint/internal/diag"
	"pyrint/internal/driver"
)

// Format names an output format.
type Format string

const (
	FormatText    Format = "text"
	FormatPretty  Format = "pretty"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
	FormatSARIF   Format = "sarif"
	FormatShort   Format = "short"
)

var formats = []Format{FormatText, FormatPretty, FormatJSON, FormatYAML, FormatMsgpack, FormatSARIF, FormatShort}

// Formats lists the accepted format names.
func Formats() []string {
	out := make([]string, len(formats))
	for i, f := range formats {
		out[i] = string(f)
	}
	return out
}

func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format %q (must be one of %s)", s, strings.Join(Formats(), "|"))
}

// Options tune rendering. The zero value prints paths as given, without color.
type Options struct {
	Color bool
	// FullPath prints absolute file paths.
	FullPath bool
	// Notes includes diagnostic notes where the format supports them.
	Notes bool
	// Summary appends a one-line summary to text and pretty output.
	Summary bool

	ToolName    string
	ToolVersion string
}

// FileError is a file that could not be analyzed.
type FileError struct {
	File  string `json:"file" yaml:"file" msgpack:"file"`
	Error string `json:"error" yaml:"error" msgpack:"error"`
}

// Report is the machine-readable shape shared by json, yaml and msgpack.
type Report struct {
	Issues []diag.Issue `json:"issues" yaml:"issues" msgpack:"issues"`
	Errors []FileError  `json:"errors" yaml:"errors" msgpack:"errors"`
}

// BuildReport flattens results in order. Issues keep per-file report order.
func BuildReport(results []driver.FileResult, opts Options) Report {
	rep := Report{Issues: []diag.Issue{}, Errors: []FileError{}}
	for _, r := range results {
		path := displayPath(r.Path, opts)
		if r.Failed() {
			rep.Errors = append(rep.Errors, FileError{File: path, Error: r.Err.Error()})
			continue
		}
		rep.Issues = append(rep.Issues, diag.Issues(r.Diagnostics, r.Files, path)...)
	}
	return rep
}

// Write renders results to w in format.
func Write(w io.Writer, format Format, results []driver.FileResult, opts Options) error {
	switch format {
	case FormatText, "":
		return Text(w, results, opts)
	case FormatPretty:
		return Pretty(w, results, opts)
	case FormatJSON:
		return JSON(w, results, opts)
	case FormatYAML:
		return YAML(w, results, opts)
	case FormatMsgpack:
		return Msgpack(w, results, opts)
	case FormatSARIF:
		return Sarif(w, results, opts)
	case FormatShort:
		return Short(w, results, opts)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func displayPath(path string, opts Options) string {
	if opts.FullPath {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}
	return filepath.ToSlash(path)
}

func summaryLine(results []driver.FileResult) string {
	s := driver.Summarize(results)
	var b strings.Builder
	fmt.Fprintf(&b, "%d %s in %d %s", s.Issues, plural(s.Issues, "issue", "issues"), s.Files, plural(s.Files, "file", "files"))
	if s.Failures > 0 {
		fmt.Fprintf(&b, ", %d %s", s.Failures, plural(s.Failures, "unreadable file", "unreadable files"))
	}
	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
