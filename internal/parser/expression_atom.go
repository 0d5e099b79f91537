package parser

import (
	"strings"

	"pyrint/internal/ast"
	"pyrint/internal/source"
	"pyrint/internal/token"
)

func (p *Parser) parseAtom() (ast.ExprID, bool) {
	tok := p.peek()
	exprs := p.arenas.Exprs
	interner := p.arenas.StringsInterner
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return exprs.NewName(tok.Span, interner.InternName(tok.Text)), true
	case token.IntLit:
		p.advance()
		return exprs.NewLit(tok.Span, ast.LitInt, interner.Intern(tok.Text)), true
	case token.FloatLit:
		p.advance()
		return exprs.NewLit(tok.Span, ast.LitFloat, interner.Intern(tok.Text)), true
	case token.ImagLit:
		p.advance()
		return exprs.NewLit(tok.Span, ast.LitImag, interner.Intern(tok.Text)), true
	case token.StringLit, token.BytesLit, token.FStringLit:
		return p.parseStrings()
	case token.KwTrue:
		p.advance()
		return exprs.NewLit(tok.Span, ast.LitTrue, interner.Intern("True")), true
	case token.KwFalse:
		p.advance()
		return exprs.NewLit(tok.Span, ast.LitFalse, interner.Intern("False")), true
	case token.KwNone:
		p.advance()
		return exprs.NewLit(tok.Span, ast.LitNone, interner.Intern("None")), true
	case token.Ellipsis:
		p.advance()
		return exprs.NewLit(tok.Span, ast.LitEllipsis, interner.Intern("...")), true
	case token.LParen:
		return p.parseParenAtom()
	case token.LBracket:
		return p.parseListAtom()
	case token.LBrace:
		return p.parseBraceAtom()
	default:
		return ast.NoExprID, p.failHere("invalid syntax")
	}
}

// parseStrings concatenates adjacent string literals into one ExprLit.
func (p *Parser) parseStrings() (ast.ExprID, bool) {
	first := p.advance()
	kind := stringLitKind(first.Kind)
	var sb strings.Builder
	sb.WriteString(stringBody(first.Text))
	span := first.Span
	for p.peek().IsString() {
		tok := p.advance()
		k := stringLitKind(tok.Kind)
		if (k == ast.LitBytes) != (kind == ast.LitBytes) {
			return ast.NoExprID, p.fail(tok.Span, "cannot mix bytes and nonbytes literals")
		}
		if k == ast.LitFString {
			kind = ast.LitFString
		}
		sb.WriteString(stringBody(tok.Text))
		span = span.Cover(tok.Span)
	}
	return p.arenas.Exprs.NewLit(span, kind, p.arenas.StringsInterner.Intern(sb.String())), true
}

func stringLitKind(k token.Kind) ast.LitKind {
	switch k {
	case token.BytesLit:
		return ast.LitBytes
	case token.FStringLit:
		return ast.LitFString
	default:
		return ast.LitString
	}
}

// stringBody strips the prefix and the quotes of a string token.
func stringBody(text string) string {
	i := strings.IndexAny(text, `'"`)
	if i < 0 {
		return text
	}
	body := text[i:]
	q := 1
	if len(body) >= 6 && (strings.HasPrefix(body, `"""`) || strings.HasPrefix(body, `'''`)) {
		q = 3
	}
	if len(body) < 2*q {
		return ""
	}
	return body[q : len(body)-q]
}

// parseParenAtom parses '()', '(x)', '(x, y)', '(yield x)' and generator expressions.
func (p *Parser) parseParenAtom() (ast.ExprID, bool) {
	open := p.advance()
	if p.at(token.RParen) {
		closeTok := p.advance()
		return p.arenas.Exprs.NewSeq(ast.ExprTuple, open.Span.Cover(closeTok.Span), nil), true
	}
	if p.at(token.KwYield) {
		y, ok := p.parseYieldExpr()
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.expect(token.RParen, "invalid syntax"); !ok {
			return ast.NoExprID, false
		}
		return y, true
	}

	first, ok := p.parseStarOrNamed()
	if !ok {
		return ast.NoExprID, false
	}
	if p.atOr(token.KwFor, token.KwAsync) {
		return p.finishComp(open.Span, ast.CompGenerator, first, ast.NoExprID, token.RParen)
	}
	if !p.at(token.Comma) {
		if _, ok := p.expect(token.RParen, "invalid syntax"); !ok {
			return ast.NoExprID, false
		}
		return first, true
	}
	elts, closeTok, ok := p.parseDisplayTail(first, token.RParen)
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewSeq(ast.ExprTuple, open.Span.Cover(closeTok.Span), elts), true
}

func (p *Parser) parseListAtom() (ast.ExprID, bool) {
	open := p.advance()
	if p.at(token.RBracket) {
		closeTok := p.advance()
		return p.arenas.Exprs.NewSeq(ast.ExprList, open.Span.Cover(closeTok.Span), nil), true
	}
	first, ok := p.parseStarOrNamed()
	if !ok {
		return ast.NoExprID, false
	}
	if p.atOr(token.KwFor, token.KwAsync) {
		return p.finishComp(open.Span, ast.CompList, first, ast.NoExprID, token.RBracket)
	}
	elts, closeTok, ok := p.parseDisplayTail(first, token.RBracket)
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewSeq(ast.ExprList, open.Span.Cover(closeTok.Span), elts), true
}

// parseBraceAtom parses dict and set displays and their comprehensions.
func (p *Parser) parseBraceAtom() (ast.ExprID, bool) {
	open := p.advance()
	if p.at(token.RBrace) {
		closeTok := p.advance()
		return p.arenas.Exprs.NewDict(open.Span.Cover(closeTok.Span), nil), true
	}

	if p.at(token.StarStar) {
		return p.parseDictTail(open.Span, nil)
	}
	first, ok := p.parseStarOrNamed()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.Colon) {
		if p.atOr(token.KwFor, token.KwAsync) {
			return p.finishComp(open.Span, ast.CompSet, first, ast.NoExprID, token.RBrace)
		}
		elts, closeTok, ok := p.parseDisplayTail(first, token.RBrace)
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewSeq(ast.ExprSet, open.Span.Cover(closeTok.Span), elts), true
	}

	if p.arenas.Exprs.Get(first).Kind == ast.ExprStarred {
		return ast.NoExprID, p.fail(p.exprSpan(first), "cannot use a starred expression in a dictionary value")
	}
	p.advance() // :
	value, ok := p.parseTest()
	if !ok {
		return ast.NoExprID, false
	}
	if p.atOr(token.KwFor, token.KwAsync) {
		return p.finishComp(open.Span, ast.CompDict, first, value, token.RBrace)
	}
	return p.parseDictTail(open.Span, []ast.DictEntry{{Key: first, Value: value}})
}

// parseDictTail continues a dict display after its already parsed entries.
func (p *Parser) parseDictTail(open source.Span, entries []ast.DictEntry) (ast.ExprID, bool) {
	if len(entries) > 0 && !p.eat(token.Comma) {
		closeTok, ok := p.expect(token.RBrace, "invalid syntax")
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewDict(open.Cover(closeTok.Span), entries), true
	}
	for !p.at(token.RBrace) {
		var entry ast.DictEntry
		if p.eat(token.StarStar) {
			value, ok := p.parseBinaryExpr(precBitOr)
			if !ok {
				return ast.NoExprID, false
			}
			entry = ast.DictEntry{Key: ast.NoExprID, Value: value}
		} else {
			key, ok := p.parseTest()
			if !ok {
				return ast.NoExprID, false
			}
			if _, ok := p.expect(token.Colon, "':' expected after dictionary key"); !ok {
				return ast.NoExprID, false
			}
			value, ok := p.parseTest()
			if !ok {
				return ast.NoExprID, false
			}
			entry = ast.DictEntry{Key: key, Value: value}
		}
		entries = append(entries, entry)
		if !p.eat(token.Comma) {
			break
		}
	}
	closeTok, ok := p.expect(token.RBrace, "invalid syntax")
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewDict(open.Cover(closeTok.Span), entries), true
}

// parseDisplayTail parses ', item'* [','] closer after the first item.
func (p *Parser) parseDisplayTail(first ast.ExprID, closer token.Kind) ([]ast.ExprID, token.Token, bool) {
	elts := []ast.ExprID{first}
	for p.eat(token.Comma) {
		if p.at(closer) {
			break
		}
		next, ok := p.parseStarOrNamed()
		if !ok {
			return nil, token.Token{}, false
		}
		elts = append(elts, next)
	}
	closeTok, ok := p.expect(closer, "invalid syntax")
	if !ok {
		return nil, token.Token{}, false
	}
	return elts, closeTok, true
}

// finishComp parses the 'for' clauses of a comprehension and its closer.
func (p *Parser) finishComp(open source.Span, kind ast.CompKind, elt, value ast.ExprID, closer token.Kind) (ast.ExprID, bool) {
	if p.arenas.Exprs.Get(elt).Kind == ast.ExprStarred {
		return ast.NoExprID, p.fail(p.exprSpan(elt), "iterable unpacking cannot be used in comprehension")
	}
	gens, ok := p.parseCompFor()
	if !ok {
		return ast.NoExprID, false
	}
	closeTok, ok := p.expect(closer, "invalid syntax")
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewComp(open.Cover(closeTok.Span), ast.ExprCompData{
		Kind:       kind,
		Elt:        elt,
		Value:      value,
		Generators: gens,
	}), true
}

// parseCompFor parses one or more '[async] for target in iter [if cond]*' clauses.
func (p *Parser) parseCompFor() ([]ast.Comprehension, bool) {
	var gens []ast.Comprehension
	for p.atOr(token.KwFor, token.KwAsync) {
		async := p.eat(token.KwAsync)
		if _, ok := p.expect(token.KwFor, "invalid syntax"); !ok {
			return nil, false
		}
		target, ok := p.parseTargetList()
		if !ok || !p.checkTarget(target, "assign to") {
			return nil, false
		}
		if _, ok := p.expect(token.KwIn, "invalid syntax"); !ok {
			return nil, false
		}
		iter, ok := p.parseOrTest()
		if !ok {
			return nil, false
		}
		gen := ast.Comprehension{Target: target, Iter: iter, Async: async}
		for p.eat(token.KwIf) {
			cond, ok := p.parseOrTest()
			if !ok {
				return nil, false
			}
			gen.Ifs = append(gen.Ifs, cond)
		}
		gens = append(gens, gen)
	}
	return gens, true
}
