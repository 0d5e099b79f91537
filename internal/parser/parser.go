package parser

import (
	"fmt"
	"slices"

	"pyrint/internal/ast"
	"pyrint/internal/diag"
	"pyrint/internal/lexer"
	"pyrint/internal/source"
	"pyrint/internal/token"
)

type Options struct {
	// Reporter receives the E0001 diagnostic when parsing fails. May be nil.
	Reporter diag.Reporter
}

type Result struct {
	// File is NoFileID when Err is set; a failed parse exposes no tree.
	File ast.FileID
	Err  *SyntaxError
}

func (r Result) OK() bool { return r.Err == nil }

// SyntaxError is the first unrecoverable token of a file.
type SyntaxError struct {
	Span   source.Span
	Detail string
	Path   string
	Line   uint32
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Parsing failed: '%s (%s, line %d)'", e.Detail, e.Path, e.Line)
}

// Parser holds the state of one file's parse.
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	fs       *source.FileSet
	opts     Options
	lastSpan source.Span // last consumed non-layout token

	failed    bool
	errSpan   source.Span
	errDetail string
}

// ParseFile parses the whole token stream of lx. It stops at the first
// syntax error and reports it once as E0001.
func ParseFile(
	fs *source.FileSet,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	opts Options,
) Result {
	p := Parser{
		lx:     lx,
		arenas: arenas,
		fs:     fs,
		opts:   opts,
	}

	start := lx.Peek().Span
	body, ok := p.parseModule()
	if ok && lx.Err() != nil {
		ok = false
	}
	if !ok {
		serr := p.syntaxError()
		if opts.Reporter != nil {
			diag.ReportError(opts.Reporter, diag.SyntaxError, serr.Span, serr.Error()).Emit()
		}
		return Result{File: ast.NoFileID, Err: serr}
	}

	file := arenas.NewFile(start.Cover(p.lastSpan))
	for _, st := range body {
		arenas.PushStmt(file, st)
	}
	return Result{File: file}
}

// syntaxError picks whichever of the lexer and parser failures comes first.
func (p *Parser) syntaxError() *SyntaxError {
	sp, detail := p.errSpan, p.errDetail
	if lerr := p.lx.Err(); lerr != nil && (!p.failed || lerr.Span.Start <= p.errSpan.Start) {
		sp, detail = lerr.Span, lerr.Msg
	}
	if detail == "" {
		detail = "invalid syntax"
	}
	serr := &SyntaxError{Span: sp, Detail: detail, Path: p.lx.File().Path, Line: 1}
	if p.fs != nil {
		start, _ := p.fs.Resolve(sp)
		serr.Line = start.Line
	}
	return serr
}

func (p *Parser) peek() token.Token {
	return p.lx.Peek()
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// parseModule reads statements until EOF.
func (p *Parser) parseModule() ([]ast.StmtID, bool) {
	var body []ast.StmtID
	for !p.at(token.EOF) {
		if p.at(token.Newline) {
			p.advance()
			continue
		}
		stmts, ok := p.parseStatement()
		if !ok {
			return nil, false
		}
		body = append(body, stmts...)
	}
	return body, true
}

// parseName expects an identifier and interns it in normalized form.
func (p *Parser) parseName() (source.StringID, source.Span, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return p.arenas.StringsInterner.InternName(tok.Text), tok.Span, true
	}
	return source.NoStringID, source.Span{}, p.failHere("invalid syntax")
}
