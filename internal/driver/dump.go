package driver

import (
	"fmt"

	"pyrint/internal/ast"
	"pyrint/internal/diag"
	"pyrint/internal/lexer"
	"pyrint/internal/parser"
	"pyrint/internal/source"
	"pyrint/internal/token"
)

// TokenizeResult holds the raw token stream of one file.
type TokenizeResult struct {
	Files  *source.FileSet
	Tokens []token.Token
	// Err is the first lexical error, if any; Tokens stop right after it.
	Err *lexer.Error
}

// Tokenize lexes path without parsing it.
func Tokenize(path string) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	lx := lexer.New(fs.Get(id), lexer.Options{})

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF || lx.Err() != nil {
			break
		}
	}
	return &TokenizeResult{Files: fs, Tokens: tokens, Err: lx.Err()}, nil
}

// ParseResult holds a file's tree for dumping. Builder is nil when parsing failed.
type ParseResult struct {
	Files   *source.FileSet
	Builder *ast.Builder
	File    ast.FileID
	Bag     *diag.Bag
}

// Parse parses path and stops before analysis.
func Parse(path string) (*ParseResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	bag := diag.NewBag(1)
	builder := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(fs, lexer.New(fs.Get(id), lexer.Options{}), builder, parser.Options{
		Reporter: diag.BagReporter{Bag: bag},
	})
	out := &ParseResult{Files: fs, File: res.File, Bag: bag}
	if res.OK() {
		out.Builder = builder
	}
	return out, nil
}

// Dump renders the parsed tree, or "" when parsing failed.
func (r *ParseResult) Dump() string {
	if r.Builder == nil {
		return ""
	}
	return ast.Dump(r.Builder, r.File)
}
