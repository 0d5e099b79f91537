package diag

import (
	"pyrint/internal/source"
)

// Issue is a diagnostic resolved for reporting: the shape every output
// format serializes.
type Issue struct {
	Code     string `json:"code" yaml:"code" msgpack:"code"`
	Message  string `json:"message" yaml:"message" msgpack:"message"`
	File     string `json:"file" yaml:"file" msgpack:"file"`
	Line     uint32 `json:"line" yaml:"line" msgpack:"line"`
	Column   uint32 `json:"column" yaml:"column" msgpack:"column"`
	Severity string `json:"severity" yaml:"severity" msgpack:"severity"`
	Symbol   string `json:"symbol" yaml:"symbol" msgpack:"symbol"`
}

// NewIssue resolves d against fs. path replaces the file's own path when non-empty.
func NewIssue(d Diagnostic, fs *source.FileSet, path string) Issue {
	is := Issue{
		Code:     d.Code.ID(),
		Message:  d.Message,
		File:     path,
		Severity: d.Severity.String(),
		Symbol:   d.Code.Symbol(),
	}
	if fs == nil || !fs.Contains(d.Primary) {
		return is
	}
	start, _ := fs.Resolve(d.Primary)
	is.Line, is.Column = start.Line, start.Col
	if is.File == "" {
		is.File = fs.Get(d.Primary.File).Path
	}
	return is
}

// Issues resolves diags in order.
func Issues(diags []Diagnostic, fs *source.FileSet, path string) []Issue {
	out := make([]Issue, 0, len(diags))
	for i := range diags {
		out = append(out, NewIssue(diags[i], fs, path))
	}
	return out
}
