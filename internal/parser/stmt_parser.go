package parser

import (
	"pyrint/internal/ast"
	"pyrint/internal/token"
)

// parseStatement parses one compound statement or one line of simple
// statements, which may yield several statements separated by ';'.
func (p *Parser) parseStatement() ([]ast.StmtID, bool) {
	switch p.peek().Kind {
	case token.KwIf:
		return one(p.parseIf())
	case token.KwWhile:
		return one(p.parseWhile())
	case token.KwFor:
		return one(p.parseFor(p.peek().Span, false))
	case token.KwTry:
		return one(p.parseTry())
	case token.KwWith:
		return one(p.parseWith(p.peek().Span, false))
	case token.KwDef:
		return one(p.parseFuncDef(nil, p.peek().Span, false))
	case token.KwClass:
		return one(p.parseClassDef(nil, p.peek().Span))
	case token.At:
		return one(p.parseDecorated())
	case token.KwAsync:
		return one(p.parseAsync())
	case token.Indent:
		return nil, p.failHere("unexpected indent")
	default:
		return p.parseSimpleStatements()
	}
}

func one(id ast.StmtID, ok bool) ([]ast.StmtID, bool) {
	if !ok {
		return nil, false
	}
	return []ast.StmtID{id}, true
}

// parseSimpleStatements parses 'small (; small)* [;] NEWLINE'.
func (p *Parser) parseSimpleStatements() ([]ast.StmtID, bool) {
	var out []ast.StmtID
	for {
		id, ok := p.parseSmallStatement()
		if !ok {
			return nil, false
		}
		out = append(out, id)
		if !p.eat(token.Semicolon) || p.atOr(token.Newline, token.EOF) {
			break
		}
	}
	if p.at(token.EOF) {
		return out, true
	}
	if _, ok := p.expect(token.Newline, "invalid syntax"); !ok {
		return nil, false
	}
	return out, true
}

func (p *Parser) parseSmallStatement() (ast.StmtID, bool) {
	tok := p.peek()
	stmts := p.arenas.Stmts
	switch tok.Kind {
	case token.KwPass:
		p.advance()
		return stmts.NewSimple(ast.StmtPass, tok.Span), true
	case token.KwBreak:
		p.advance()
		return stmts.NewSimple(ast.StmtBreak, tok.Span), true
	case token.KwContinue:
		p.advance()
		return stmts.NewSimple(ast.StmtContinue, tok.Span), true
	case token.KwReturn:
		return p.parseReturn()
	case token.KwRaise:
		return p.parseRaise()
	case token.KwGlobal, token.KwNonlocal:
		return p.parseNameList()
	case token.KwDel:
		return p.parseDel()
	case token.KwAssert:
		return p.parseAssert()
	case token.KwImport:
		return p.parseImport()
	case token.KwFrom:
		return p.parseImportFrom()
	default:
		return p.parseExprStatement()
	}
}

func (p *Parser) parseReturn() (ast.StmtID, bool) {
	kw := p.advance()
	if p.atStmtEnd() {
		return p.arenas.Stmts.NewReturn(kw.Span, ast.NoExprID), true
	}
	value, ok := p.parseTestListStarExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewReturn(kw.Span.Cover(p.exprSpan(value)), value), true
}

// parseRaise parses 'raise [exc [from cause]]'.
func (p *Parser) parseRaise() (ast.StmtID, bool) {
	kw := p.advance()
	if p.atStmtEnd() {
		return p.arenas.Stmts.NewRaise(kw.Span, ast.NoExprID, ast.NoExprID), true
	}
	exc, ok := p.parseTest()
	if !ok {
		return ast.NoStmtID, false
	}
	cause := ast.NoExprID
	if p.eat(token.KwFrom) {
		if cause, ok = p.parseTest(); !ok {
			return ast.NoStmtID, false
		}
	}
	return p.arenas.Stmts.NewRaise(kw.Span.Cover(p.lastSpan), exc, cause), true
}

// parseNameList parses 'global a, b' and 'nonlocal a, b'.
func (p *Parser) parseNameList() (ast.StmtID, bool) {
	kw := p.advance()
	kind := ast.StmtGlobal
	if kw.Kind == token.KwNonlocal {
		kind = ast.StmtNonlocal
	}
	var names []ast.NameRef
	for {
		name, span, ok := p.parseName()
		if !ok {
			return ast.NoStmtID, false
		}
		names = append(names, ast.NameRef{Name: name, Span: span})
		if !p.eat(token.Comma) {
			break
		}
	}
	return p.arenas.Stmts.NewNames(kind, kw.Span.Cover(p.lastSpan), names), true
}

func (p *Parser) parseDel() (ast.StmtID, bool) {
	kw := p.advance()
	list, ok := p.parseTargetList()
	if !ok {
		return ast.NoStmtID, false
	}
	targets := []ast.ExprID{list}
	// 'del a, b' lists targets; 'del (a, b)' is a single tuple target.
	if seq, isSeq := p.arenas.Exprs.Seq(list); isSeq && p.arenas.Exprs.Get(list).Kind == ast.ExprTuple &&
		len(seq.Elts) > 0 && p.exprSpan(seq.Elts[0]).Start == p.exprSpan(list).Start {
		targets = seq.Elts
	}
	for _, t := range targets {
		if !p.checkTarget(t, "delete") {
			return ast.NoStmtID, false
		}
	}
	return p.arenas.Stmts.NewDel(kw.Span.Cover(p.lastSpan), targets), true
}

func (p *Parser) parseAssert() (ast.StmtID, bool) {
	kw := p.advance()
	test, ok := p.parseTest()
	if !ok {
		return ast.NoStmtID, false
	}
	msg := ast.NoExprID
	if p.eat(token.Comma) {
		if msg, ok = p.parseTest(); !ok {
			return ast.NoStmtID, false
		}
	}
	return p.arenas.Stmts.NewAssert(kw.Span.Cover(p.lastSpan), test, msg), true
}

// parseExprStatement parses expression statements and the three
// assignment forms: chained '=', augmented and annotated.
func (p *Parser) parseExprStatement() (ast.StmtID, bool) {
	first, ok := p.parseTestListOrYield()
	if !ok {
		return ast.NoStmtID, false
	}
	stmts := p.arenas.Stmts
	start := p.exprSpan(first)
	tok := p.peek()

	switch {
	case tok.Kind == token.Assign:
		targets := []ast.ExprID{first}
		value := first
		for p.eat(token.Assign) {
			if value, ok = p.parseTestListOrYield(); !ok {
				return ast.NoStmtID, false
			}
			targets = append(targets, value)
		}
		targets = targets[:len(targets)-1]
		for _, t := range targets {
			if !p.checkTarget(t, "assign to") {
				return ast.NoStmtID, false
			}
		}
		return stmts.NewAssign(start.Cover(p.lastSpan), targets, value), true

	case tok.IsAugAssign():
		if !p.checkAugTarget(first) {
			return ast.NoStmtID, false
		}
		op, _ := augmentedOperator(tok.Kind)
		p.advance()
		value, ok := p.parseTestListOrYield()
		if !ok {
			return ast.NoStmtID, false
		}
		return stmts.NewAugAssign(start.Cover(p.lastSpan), first, op, value), true

	case tok.Kind == token.Colon:
		if !p.checkAnnTarget(first) {
			return ast.NoStmtID, false
		}
		p.advance()
		annotation, ok := p.parseTest()
		if !ok {
			return ast.NoStmtID, false
		}
		value := ast.NoExprID
		if p.eat(token.Assign) {
			if value, ok = p.parseTestListOrYield(); !ok {
				return ast.NoStmtID, false
			}
		}
		return stmts.NewAnnAssign(start.Cover(p.lastSpan), first, annotation, value), true
	}

	return stmts.NewExpr(start, first), true
}
