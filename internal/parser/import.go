package parser

import (
	"strings"

	"pyrint/internal/ast"
	"pyrint/internal/source"
	"pyrint/internal/token"
)

// parseImport parses 'import a.b [as c], d'.
func (p *Parser) parseImport() (ast.StmtID, bool) {
	kw := p.advance()
	var names []ast.ImportAlias
	for {
		alias, ok := p.parseImportAlias(true)
		if !ok {
			return ast.NoStmtID, false
		}
		names = append(names, alias)
		if !p.eat(token.Comma) {
			break
		}
	}
	return p.arenas.Stmts.NewImport(kw.Span.Cover(p.lastSpan), names), true
}

// parseImportFrom parses 'from [.]*module import names' including the
// parenthesized and star forms.
func (p *Parser) parseImportFrom() (ast.StmtID, bool) {
	kw := p.advance()
	data := ast.StmtImportFromData{}
	for {
		if p.eat(token.Dot) {
			data.Level++
		} else if p.eat(token.Ellipsis) {
			data.Level += 3
		} else {
			break
		}
	}
	if p.at(token.Ident) {
		module, _, ok := p.parseDottedName()
		if !ok {
			return ast.NoStmtID, false
		}
		data.Module = module
	} else if data.Level == 0 {
		return ast.NoStmtID, p.failHere("invalid syntax")
	}
	if _, ok := p.expect(token.KwImport, "invalid syntax"); !ok {
		return ast.NoStmtID, false
	}

	switch {
	case p.eat(token.Star):
		data.Star = true
	case p.eat(token.LParen):
		for !p.at(token.RParen) {
			alias, ok := p.parseImportAlias(false)
			if !ok {
				return ast.NoStmtID, false
			}
			data.Names = append(data.Names, alias)
			if !p.eat(token.Comma) {
				break
			}
		}
		if _, ok := p.expect(token.RParen, "invalid syntax"); !ok {
			return ast.NoStmtID, false
		}
		if len(data.Names) == 0 {
			return ast.NoStmtID, p.fail(p.lastSpan, "invalid syntax")
		}
	default:
		for {
			alias, ok := p.parseImportAlias(false)
			if !ok {
				return ast.NoStmtID, false
			}
			data.Names = append(data.Names, alias)
			if !p.eat(token.Comma) {
				break
			}
			if p.atStmtEnd() {
				return ast.NoStmtID, p.fail(p.lastSpan, "trailing comma not allowed without surrounding parentheses")
			}
		}
	}
	return p.arenas.Stmts.NewImportFrom(kw.Span.Cover(p.lastSpan), data), true
}

// parseImportAlias parses 'name [as alias]'; dotted names only for 'import'.
func (p *Parser) parseImportAlias(dotted bool) (ast.ImportAlias, bool) {
	var alias ast.ImportAlias
	var ok bool
	if dotted {
		alias.Name, alias.Span, ok = p.parseDottedName()
	} else {
		alias.Name, alias.Span, ok = p.parseName()
	}
	if !ok {
		return alias, false
	}
	if p.eat(token.KwAs) {
		var asSpan source.Span
		if alias.AsName, asSpan, ok = p.parseName(); !ok {
			return alias, false
		}
		alias.Span = alias.Span.Cover(asSpan)
	}
	return alias, true
}

func (p *Parser) parseDottedName() (source.StringID, source.Span, bool) {
	first, ok := p.expect(token.Ident, "invalid syntax")
	if !ok {
		return source.NoStringID, source.Span{}, false
	}
	parts := []string{first.Text}
	span := first.Span
	for p.eat(token.Dot) {
		part, ok := p.expect(token.Ident, "invalid syntax")
		if !ok {
			return source.NoStringID, source.Span{}, false
		}
		parts = append(parts, part.Text)
		span = span.Cover(part.Span)
	}
	return p.arenas.StringsInterner.InternName(strings.Join(parts, ".")), span, true
}
