package parser

import (
	"pyrint/internal/ast"
	"pyrint/internal/source"
	"pyrint/internal/token"
)

// advance consumes the next token and updates lastSpan.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid && !tok.IsLayout() {
		p.lastSpan = tok.Span
	}
	return tok
}

// eat consumes the next token if it has kind k.
func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// diagnosticSpan is the span of the lookahead token. At EOF it points just
// past the last consumed token so the reported line is the last real one.
func (p *Parser) diagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect consumes a token of kind k or fails with detail.
func (p *Parser) expect(k token.Kind, detail string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	return token.Token{Kind: token.Invalid, Span: p.diagnosticSpan()}, p.failHere(detail)
}

// fail records the first syntax error. It always returns false so callers
// can unwind with `return ..., p.fail(...)`.
func (p *Parser) fail(sp source.Span, detail string) bool {
	if !p.failed {
		p.failed = true
		p.errSpan = sp
		p.errDetail = detail
	}
	return false
}

func (p *Parser) failHere(detail string) bool {
	return p.fail(p.diagnosticSpan(), detail)
}

func (p *Parser) exprSpan(id ast.ExprID) source.Span {
	if e := p.arenas.Exprs.Get(id); e != nil {
		return e.Span
	}
	return source.Span{}
}

// atStmtEnd reports whether the lookahead ends a simple statement.
func (p *Parser) atStmtEnd() bool {
	return p.atOr(token.Newline, token.Semicolon, token.EOF)
}

// startsExpr reports whether a token can begin an expression.
func startsExpr(k token.Kind) bool {
	switch k {
	case token.Ident, token.IntLit, token.FloatLit, token.ImagLit,
		token.StringLit, token.BytesLit, token.FStringLit,
		token.KwTrue, token.KwFalse, token.KwNone, token.Ellipsis,
		token.LParen, token.LBracket, token.LBrace,
		token.Plus, token.Minus, token.Tilde, token.Star,
		token.KwNot, token.KwLambda, token.KwAwait:
		return true
	}
	return false
}
