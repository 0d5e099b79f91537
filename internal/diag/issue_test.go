package diag

import (
	"testing"

	"pyrint/internal/source"
)

func TestNewIssueResolvesPosition(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("pkg/mod.py", []byte("x = 1\ndef f():\n    return\n"))

	d := Diagnostic{
		Severity: SevError,
		Code:     ReturnOutsideFunction,
		Message:  "Return outside function",
		Primary:  source.Span{File: id, Start: 6, End: 9},
	}
	is := NewIssue(d, fs, "")
	want := Issue{
		Code:     "E0104",
		Message:  "Return outside function",
		File:     "pkg/mod.py",
		Line:     2,
		Column:   1,
		Severity: "error",
		Symbol:   "return-outside-function",
	}
	if is != want {
		t.Fatalf("issue = %+v, want %+v", is, want)
	}

	if got := NewIssue(d, fs, "/abs/pkg/mod.py").File; got != "/abs/pkg/mod.py" {
		t.Fatalf("path override ignored: %q", got)
	}
}

func TestIssuesWithoutFileSet(t *testing.T) {
	diags := []Diagnostic{{Severity: SevError, Code: SyntaxError, Message: "Parsing failed"}}
	got := Issues(diags, nil, "a.py")
	if len(got) != 1 || got[0].Line != 0 || got[0].File != "a.py" || got[0].Symbol != "syntax-error" {
		t.Fatalf("unexpected issues %+v", got)
	}
}
