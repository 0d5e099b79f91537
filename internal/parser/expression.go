package parser

import (
	"fmt"

	"pyrint/internal/ast"
	"pyrint/internal/token"
)

// parseTest parses a full expression: lambda, conditional or or-test.
func (p *Parser) parseTest() (ast.ExprID, bool) {
	if p.at(token.KwLambda) {
		return p.parseLambda()
	}
	body, ok := p.parseOrTest()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.KwIf) {
		return body, true
	}
	p.advance()
	test, ok := p.parseOrTest()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.KwElse, "expected 'else' after 'if' expression"); !ok {
		return ast.NoExprID, false
	}
	orElse, ok := p.parseTest()
	if !ok {
		return ast.NoExprID, false
	}
	span := p.exprSpan(body).Cover(p.exprSpan(orElse))
	return p.arenas.Exprs.NewTernary(span, test, body, orElse), true
}

// parseNamedExpr is parseTest that also accepts 'name := value'.
func (p *Parser) parseNamedExpr() (ast.ExprID, bool) {
	left, ok := p.parseTest()
	if !ok || !p.at(token.ColonAssign) {
		return left, ok
	}
	if p.arenas.Exprs.Get(left).Kind != ast.ExprName {
		return ast.NoExprID, p.fail(p.exprSpan(left),
			fmt.Sprintf("cannot use assignment expressions with %s", p.describe(left)))
	}
	p.advance()
	value, ok := p.parseTest()
	if !ok {
		return ast.NoExprID, false
	}
	span := p.exprSpan(left).Cover(p.exprSpan(value))
	return p.arenas.Exprs.NewNamed(span, left, value), true
}

func (p *Parser) parseOrTest() (ast.ExprID, bool) {
	return p.parseBoolOp(token.KwOr, ast.BinaryOr, p.parseAndTest)
}

func (p *Parser) parseAndTest() (ast.ExprID, bool) {
	return p.parseBoolOp(token.KwAnd, ast.BinaryAnd, p.parseNotTest)
}

func (p *Parser) parseBoolOp(kw token.Kind, op ast.BinaryOp, operand func() (ast.ExprID, bool)) (ast.ExprID, bool) {
	left, ok := operand()
	if !ok {
		return ast.NoExprID, false
	}
	for p.at(kw) {
		p.advance()
		right, ok := operand()
		if !ok {
			return ast.NoExprID, false
		}
		span := p.exprSpan(left).Cover(p.exprSpan(right))
		left = p.arenas.Exprs.NewBinary(span, op, left, right)
	}
	return left, true
}

func (p *Parser) parseNotTest() (ast.ExprID, bool) {
	if !p.at(token.KwNot) {
		return p.parseComparison()
	}
	kw := p.advance()
	operand, ok := p.parseNotTest()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewUnary(kw.Span.Cover(p.exprSpan(operand)), ast.UnaryNot, operand), true
}

// parseComparison parses a possibly chained comparison.
func (p *Parser) parseComparison() (ast.ExprID, bool) {
	left, ok := p.parseBinaryExpr(precBitOr)
	if !ok {
		return ast.NoExprID, false
	}
	data := ast.ExprCompareData{Left: left}
	for {
		tok := p.peek()
		op, isCmp := compareOperator(tok.Kind)
		opSpan := tok.Span
		switch {
		case isCmp:
			p.advance()
		case tok.Kind == token.KwNot:
			p.advance()
			in, ok := p.expect(token.KwIn, "invalid syntax")
			if !ok {
				return ast.NoExprID, false
			}
			op, opSpan = ast.CmpNotIn, opSpan.Cover(in.Span)
		case tok.Kind == token.KwIs:
			p.advance()
			op = ast.CmpIs
			if p.at(token.KwNot) {
				op, opSpan = ast.CmpIsNot, opSpan.Cover(p.advance().Span)
			}
		default:
			if len(data.Ops) == 0 {
				return left, true
			}
			last := data.Comparators[len(data.Comparators)-1]
			span := p.exprSpan(left).Cover(p.exprSpan(last))
			return p.arenas.Exprs.NewCompare(span, data), true
		}
		right, ok := p.parseBinaryExpr(precBitOr)
		if !ok {
			return ast.NoExprID, false
		}
		data.Ops = append(data.Ops, op)
		data.OpSpans = append(data.OpSpans, opSpan)
		data.Comparators = append(data.Comparators, right)
	}
}

// parseBinaryExpr is precedence climbing over the operator table.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		prec, op, isBinary := binaryOperator(p.peek().Kind)
		if !isBinary || prec < minPrec {
			return left, true
		}
		p.advance()
		right, ok := p.parseBinaryExpr(prec + 1)
		if !ok {
			return ast.NoExprID, false
		}
		span := p.exprSpan(left).Cover(p.exprSpan(right))
		left = p.arenas.Exprs.NewBinary(span, op, left, right)
	}
}

func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	op, isUnary := unaryOperator(p.peek().Kind)
	if !isUnary {
		return p.parsePower()
	}
	opTok := p.advance()
	operand, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewUnary(opTok.Span.Cover(p.exprSpan(operand)), op, operand), true
}

// parsePower handles 'await' and the right-associative '**'. The right
// operand of '**' may carry its own unary operator: 2 ** -1.
func (p *Parser) parsePower() (ast.ExprID, bool) {
	var base ast.ExprID
	if p.at(token.KwAwait) {
		kw := p.advance()
		operand, ok := p.parsePostfixExpr()
		if !ok {
			return ast.NoExprID, false
		}
		base = p.arenas.Exprs.NewWrap(ast.ExprAwait, kw.Span.Cover(p.exprSpan(operand)), operand)
	} else {
		var ok bool
		if base, ok = p.parsePostfixExpr(); !ok {
			return ast.NoExprID, false
		}
	}
	if !p.at(token.StarStar) {
		return base, true
	}
	p.advance()
	exp, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	span := p.exprSpan(base).Cover(p.exprSpan(exp))
	return p.arenas.Exprs.NewBinary(span, ast.BinaryPow, base, exp), true
}

// parseStarOrNamed parses '*expr' or a named expression; used in displays.
func (p *Parser) parseStarOrNamed() (ast.ExprID, bool) {
	if p.at(token.Star) {
		return p.parseStarExpr()
	}
	return p.parseNamedExpr()
}

func (p *Parser) parseStarExpr() (ast.ExprID, bool) {
	star := p.advance()
	operand, ok := p.parseBinaryExpr(precBitOr)
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewWrap(ast.ExprStarred, star.Span.Cover(p.exprSpan(operand)), operand), true
}

// parseTestListStarExpr parses comma separated 'test' or '*expr' items.
// A single item without a trailing comma is returned as is; otherwise the
// items form a tuple.
func (p *Parser) parseTestListStarExpr() (ast.ExprID, bool) {
	return p.parseExprList(func() (ast.ExprID, bool) {
		if p.at(token.Star) {
			return p.parseStarExpr()
		}
		return p.parseTest()
	})
}

// parseTargetList parses the target of 'for' and comprehensions. Items stop
// below comparisons so that 'in' is left for the caller.
func (p *Parser) parseTargetList() (ast.ExprID, bool) {
	return p.parseExprList(func() (ast.ExprID, bool) {
		if p.at(token.Star) {
			return p.parseStarExpr()
		}
		return p.parseBinaryExpr(precBitOr)
	})
}

func (p *Parser) parseExprList(item func() (ast.ExprID, bool)) (ast.ExprID, bool) {
	first, ok := item()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.Comma) {
		return first, true
	}
	elts := []ast.ExprID{first}
	for p.eat(token.Comma) {
		if !startsExpr(p.peek().Kind) {
			break
		}
		next, ok := item()
		if !ok {
			return ast.NoExprID, false
		}
		elts = append(elts, next)
	}
	span := p.exprSpan(first).Cover(p.lastSpan)
	return p.arenas.Exprs.NewSeq(ast.ExprTuple, span, elts), true
}

// parseTestListOrYield is the right-hand side of an assignment.
func (p *Parser) parseTestListOrYield() (ast.ExprID, bool) {
	if p.at(token.KwYield) {
		return p.parseYieldExpr()
	}
	return p.parseTestListStarExpr()
}

// parseYieldExpr parses 'yield', 'yield value' and 'yield from value'.
func (p *Parser) parseYieldExpr() (ast.ExprID, bool) {
	kw := p.advance()
	if p.eat(token.KwFrom) {
		value, ok := p.parseTest()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewWrap(ast.ExprYieldFrom, kw.Span.Cover(p.exprSpan(value)), value), true
	}
	if !startsExpr(p.peek().Kind) {
		return p.arenas.Exprs.NewWrap(ast.ExprYield, kw.Span, ast.NoExprID), true
	}
	value, ok := p.parseTestListStarExpr()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewWrap(ast.ExprYield, kw.Span.Cover(p.exprSpan(value)), value), true
}

func (p *Parser) parseLambda() (ast.ExprID, bool) {
	kw := p.advance()
	params, ok := p.parseParamList(token.Colon, false)
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.Colon, "invalid syntax"); !ok {
		return ast.NoExprID, false
	}
	body, ok := p.parseTest()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewLambda(kw.Span.Cover(p.exprSpan(body)), params, body), true
}
