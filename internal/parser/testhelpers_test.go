package parser

import (
	"fmt"
	"strings"
	"testing"

	"pyrint/internal/ast"
	"pyrint/internal/diag"
	"pyrint/internal/lexer"
	"pyrint/internal/source"
)

type parsed struct {
	builder *ast.Builder
	result  Result
	bag     *diag.Bag
}

func parseSource(t *testing.T, src string) parsed {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte(src))
	lx := lexer.New(fs.Get(id), lexer.Options{})
	b := ast.NewBuilder(ast.Hints{}, nil)
	bag := diag.NewBag(0)
	res := ParseFile(fs, lx, b, Options{Reporter: diag.BagReporter{Bag: bag}})
	return parsed{builder: b, result: res, bag: bag}
}

// mustParse parses src and returns its dump, failing on any diagnostic.
func mustParse(t *testing.T, src string) string {
	t.Helper()
	p := parseSource(t, src)
	if !p.result.OK() {
		t.Fatalf("parse %q failed: %s", src, diagnosticsSummary(p.bag))
	}
	return ast.Dump(p.builder, p.result.File)
}

// parseExprDump parses a single expression statement and dumps its value.
func parseExprDump(t *testing.T, src string) string {
	t.Helper()
	p := parseSource(t, src+"\n")
	if !p.result.OK() {
		t.Fatalf("parse %q failed: %s", src, diagnosticsSummary(p.bag))
	}
	file := p.builder.Files.Get(p.result.File)
	if len(file.Body) != 1 {
		t.Fatalf("%q: expected one statement, got %d", src, len(file.Body))
	}
	data, ok := p.builder.Stmts.ExprValue(file.Body[0])
	if !ok || p.builder.Stmts.Get(file.Body[0]).Kind != ast.StmtExpr {
		t.Fatalf("%q: not an expression statement", src)
	}
	return ast.DumpExpr(p.builder, data.Value)
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}
