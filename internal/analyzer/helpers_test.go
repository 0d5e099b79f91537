package analyzer

import (
	"fmt"
	"slices"
	"testing"

	"pyrint/internal/ast"
	"pyrint/internal/diag"
	"pyrint/internal/lexer"
	"pyrint/internal/parser"
	"pyrint/internal/source"
)

type analyzed struct {
	fs     *source.FileSet
	diags  []diag.Diagnostic
	result Result
}

func analyzeSource(t *testing.T, src string, rules *diag.RuleSet) analyzed {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte(src))
	lx := lexer.New(fs.Get(id), lexer.Options{})
	b := ast.NewBuilder(ast.Hints{}, nil)
	bag := diag.NewBag(0)
	res := parser.ParseFile(fs, lx, b, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if !res.OK() {
		t.Fatalf("parse failed: %s", res.Err)
	}
	out := Analyze(b, res.File, Options{
		Reporter: diag.BagReporter{Bag: bag},
		Rules:    rules,
		Files:    fs,
	})
	return analyzed{fs: fs, diags: bag.Items(), result: out}
}

// codesAt renders diagnostics as "E0102:8" in report order.
func (a analyzed) codesAt() []string {
	out := make([]string, 0, len(a.diags))
	for _, d := range a.diags {
		loc, _ := diag.Locate(a.fs, d.Primary, true)
		out = append(out, fmt.Sprintf("%s:%d", d.Code.ID(), loc.Line))
	}
	return out
}

func (a analyzed) messages() []string {
	out := make([]string, 0, len(a.diags))
	for _, d := range a.diags {
		out = append(out, d.Message)
	}
	return out
}

func expectCodes(t *testing.T, src string, want ...string) {
	t.Helper()
	got := analyzeSource(t, src, nil).codesAt()
	if !slices.Equal(got, want) {
		t.Fatalf("diagnostics mismatch\n got  %v\n want %v\nsource:\n%s", got, want, src)
	}
}
