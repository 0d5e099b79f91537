package diag

import (
	"testing"

	"pyrint/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	file := fs.AddSource("/workspace/testdata/sample.py", []byte("a\nb\n"))

	diags := []Diagnostic{
		{
			Severity: SevError,
			Code:     FunctionRedefined,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: file, Start: 2, End: 3},
			Notes: []Note{
				{Span: source.Span{File: file, Start: 0, End: 1}, Msg: "previous definition"},
			},
		},
		{
			Severity: SevError,
			Code:     ReturnOutsideFunction,
			Message:  "Return outside function",
			Primary:  source.Span{File: file, Start: 0, End: 1},
		},
	}

	expected := "error E0104 testdata/sample.py:1:1 Return outside function\n" +
		"note E0102 testdata/sample.py:1:1 previous definition\n" +
		"error E0102 testdata/sample.py:2:1 first line second"

	if got := FormatShortDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestFormatShortDiagnosticsEmpty(t *testing.T) {
	if got := FormatShortDiagnostics(nil, source.NewFileSet(), false); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestLocateRejectsForeignSpan(t *testing.T) {
	fs := source.NewFileSet()
	if _, ok := Locate(fs, source.Span{File: 3}, true); ok {
		t.Fatalf("span from an unknown file must not resolve")
	}
}
