package parser

import (
	"pyrint/internal/ast"
	"pyrint/internal/source"
	"pyrint/internal/token"
)

// parseBlock parses ':' and the suite after it: NEWLINE INDENT stmt+ DEDENT,
// or simple statements on the header line.
func (p *Parser) parseBlock() ([]ast.StmtID, bool) {
	if _, ok := p.expect(token.Colon, "expected ':'"); !ok {
		return nil, false
	}
	if !p.at(token.Newline) {
		return p.parseSimpleStatements()
	}
	p.advance()
	if !p.at(token.Indent) {
		return nil, p.failHere("expected an indented block")
	}
	p.advance()
	var body []ast.StmtID
	for !p.atOr(token.Dedent, token.EOF) {
		stmts, ok := p.parseStatement()
		if !ok {
			return nil, false
		}
		body = append(body, stmts...)
	}
	if _, ok := p.expect(token.Dedent, "invalid syntax"); !ok {
		return nil, false
	}
	return body, true
}

// parseIf parses 'if' and, recursively, each 'elif'.
func (p *Parser) parseIf() (ast.StmtID, bool) {
	kw := p.advance() // if / elif
	test, ok := p.parseNamedExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}
	var orElse []ast.StmtID
	switch {
	case p.at(token.KwElif):
		nested, ok := p.parseIf()
		if !ok {
			return ast.NoStmtID, false
		}
		orElse = []ast.StmtID{nested}
	case p.eat(token.KwElse):
		if orElse, ok = p.parseBlock(); !ok {
			return ast.NoStmtID, false
		}
	}
	return p.arenas.Stmts.NewIf(kw.Span.Cover(p.lastSpan), test, body, orElse), true
}

func (p *Parser) parseWhile() (ast.StmtID, bool) {
	kw := p.advance()
	test, ok := p.parseNamedExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}
	orElse, ok := p.parseElse()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewWhile(kw.Span.Cover(p.lastSpan), test, body, orElse), true
}

// parseElse parses an optional 'else' block of a loop or try.
func (p *Parser) parseElse() ([]ast.StmtID, bool) {
	if !p.eat(token.KwElse) {
		return nil, true
	}
	return p.parseBlock()
}

// parseFor parses '[async] for target in iter: body [else: body]'.
// start is the span of 'async' when present.
func (p *Parser) parseFor(start source.Span, async bool) (ast.StmtID, bool) {
	if _, ok := p.expect(token.KwFor, "invalid syntax"); !ok {
		return ast.NoStmtID, false
	}
	target, ok := p.parseTargetList()
	if !ok || !p.checkTarget(target, "assign to") {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.KwIn, "invalid syntax"); !ok {
		return ast.NoStmtID, false
	}
	iter, ok := p.parseTestListStarExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}
	orElse, ok := p.parseElse()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewFor(start.Cover(p.lastSpan), ast.StmtForData{
		Target: target,
		Iter:   iter,
		Body:   body,
		Else:   orElse,
		Async:  async,
	}), true
}

func (p *Parser) parseTry() (ast.StmtID, bool) {
	kw := p.advance()
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}
	data := ast.StmtTryData{Body: body}
	bareSeen := false
	for p.at(token.KwExcept) {
		exceptTok := p.advance()
		if bareSeen {
			return ast.NoStmtID, p.fail(exceptTok.Span, "default 'except:' must be last")
		}
		handler := ast.ExceptHandler{Type: ast.NoExprID}
		if !p.at(token.Colon) {
			if handler.Type, ok = p.parseTest(); !ok {
				return ast.NoStmtID, false
			}
			if p.at(token.Comma) {
				return ast.NoStmtID, p.failHere("multiple exception types must be parenthesized")
			}
			if p.eat(token.KwAs) {
				if handler.Name, handler.NameSpan, ok = p.parseName(); !ok {
					return ast.NoStmtID, false
				}
			}
		} else {
			bareSeen = true
		}
		if handler.Body, ok = p.parseBlock(); !ok {
			return ast.NoStmtID, false
		}
		handler.Span = exceptTok.Span.Cover(p.lastSpan)
		data.Handlers = append(data.Handlers, handler)
	}
	if len(data.Handlers) > 0 {
		if data.Else, ok = p.parseElse(); !ok {
			return ast.NoStmtID, false
		}
	}
	hasFinally := false
	if p.eat(token.KwFinally) {
		hasFinally = true
		if data.Finally, ok = p.parseBlock(); !ok {
			return ast.NoStmtID, false
		}
	}
	if len(data.Handlers) == 0 && !hasFinally {
		return ast.NoStmtID, p.failHere("expected 'except' or 'finally' block")
	}
	return p.arenas.Stmts.NewTry(kw.Span.Cover(p.lastSpan), data), true
}

// parseWith parses '[async] with item [as target], ...: body', including the
// parenthesized item list form.
func (p *Parser) parseWith(start source.Span, async bool) (ast.StmtID, bool) {
	if _, ok := p.expect(token.KwWith, "invalid syntax"); !ok {
		return ast.NoStmtID, false
	}
	var items []ast.WithItem
	var ok bool
	if p.at(token.LParen) {
		items, ok = p.parseParenWithItems()
	} else {
		items, ok = p.parseWithItems()
	}
	if !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewWith(start.Cover(p.lastSpan), ast.StmtWithData{
		Items: items,
		Body:  body,
		Async: async,
	}), true
}

func (p *Parser) parseWithItems() ([]ast.WithItem, bool) {
	var items []ast.WithItem
	for {
		ctx, ok := p.parseTest()
		if !ok {
			return nil, false
		}
		item, ok := p.parseWithTarget(ctx)
		if !ok {
			return nil, false
		}
		items = append(items, item)
		if !p.eat(token.Comma) {
			return items, true
		}
	}
}

func (p *Parser) parseWithTarget(ctx ast.ExprID) (ast.WithItem, bool) {
	item := ast.WithItem{Context: ctx, Target: ast.NoExprID}
	if !p.eat(token.KwAs) {
		return item, true
	}
	target, ok := p.parseBinaryExpr(precBitOr)
	if !ok || !p.checkTarget(target, "assign to") {
		return item, false
	}
	item.Target = target
	return item, true
}

// parseParenWithItems handles 'with (a as b, c):'. When the parentheses
// turn out to wrap a plain expression, as in 'with (a).b() as c:', parsing
// continues from that expression.
func (p *Parser) parseParenWithItems() ([]ast.WithItem, bool) {
	open := p.advance()
	var items []ast.WithItem
	sawAs, trailingComma := false, false
	for !p.at(token.RParen) {
		ctx, ok := p.parseNamedExpr()
		if !ok {
			return nil, false
		}
		item, ok := p.parseWithTarget(ctx)
		if !ok {
			return nil, false
		}
		sawAs = sawAs || item.Target.IsValid()
		items = append(items, item)
		trailingComma = false
		if !p.eat(token.Comma) {
			break
		}
		trailingComma = true
	}
	closeTok, ok := p.expect(token.RParen, "invalid syntax")
	if !ok {
		return nil, false
	}
	if p.at(token.Colon) && (sawAs || len(items) != 1 || trailingComma) {
		return items, true
	}
	if sawAs {
		return nil, p.failHere("invalid syntax")
	}

	var ctx ast.ExprID
	switch {
	case len(items) == 0:
		ctx = p.arenas.Exprs.NewSeq(ast.ExprTuple, open.Span.Cover(closeTok.Span), nil)
	case len(items) == 1 && !trailingComma:
		ctx = items[0].Context
	default:
		elts := make([]ast.ExprID, len(items))
		for i, it := range items {
			elts[i] = it.Context
		}
		ctx = p.arenas.Exprs.NewSeq(ast.ExprTuple, open.Span.Cover(closeTok.Span), elts)
	}
	if ctx, ok = p.parsePostfixTail(ctx); !ok {
		return nil, false
	}
	first, ok := p.parseWithTarget(ctx)
	if !ok {
		return nil, false
	}
	items = []ast.WithItem{first}
	if p.eat(token.Comma) {
		rest, ok := p.parseWithItems()
		if !ok {
			return nil, false
		}
		items = append(items, rest...)
	}
	return items, true
}

// parseAsync dispatches 'async def', 'async for' and 'async with'.
func (p *Parser) parseAsync() (ast.StmtID, bool) {
	kw := p.advance()
	switch p.peek().Kind {
	case token.KwDef:
		return p.parseFuncDef(nil, kw.Span, true)
	case token.KwFor:
		return p.parseFor(kw.Span, true)
	case token.KwWith:
		return p.parseWith(kw.Span, true)
	default:
		return ast.NoStmtID, p.failHere("invalid syntax")
	}
}
