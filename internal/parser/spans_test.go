package parser

import (
	"testing"

	"pyrint/internal/ast"
	"pyrint/internal/lexer"
	"pyrint/internal/source"
	"pyrint/internal/testkit"
)

func TestSpanInvariants(t *testing.T) {
	sources := []string{
		"x = 1\n",
		"# only a comment\n",
		"import os\n\nclass A(Base):\n    @property\n    def f(self):\n        return [i for i in self.xs if i]\n\nwhile True:\n    break\nelse:\n    pass\n",
		"try:\n    f()\nexcept (A, B) as e:\n    raise\nfinally:\n    g()\n",
		"async def main():\n    async with a as b, c:\n        await b\n",
		"d = {\n    'a': 1,\n    **rest,\n}\n",
	}
	for _, src := range sources {
		fs := source.NewFileSet()
		id := fs.AddVirtual("spans.py", []byte(src))
		b := ast.NewBuilder(ast.Hints{}, nil)
		res := ParseFile(fs, lexer.New(fs.Get(id), lexer.Options{}), b, Options{})
		if !res.OK() {
			t.Fatalf("parse %q: %v", src, res.Err)
		}
		if err := testkit.CheckSpanInvariants(b, res.File, fs.Get(id)); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}
