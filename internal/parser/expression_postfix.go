package parser

import (
	"pyrint/internal/ast"
	"pyrint/internal/token"
)

// parsePostfixExpr parses an atom followed by calls, subscripts and attributes.
func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	expr, ok := p.parseAtom()
	if !ok {
		return ast.NoExprID, false
	}
	return p.parsePostfixTail(expr)
}

func (p *Parser) parsePostfixTail(expr ast.ExprID) (ast.ExprID, bool) {
	var ok bool
	for {
		switch p.peek().Kind {
		case token.LParen:
			expr, ok = p.parseCallExpr(expr)
		case token.LBracket:
			expr, ok = p.parseSubscriptExpr(expr)
		case token.Dot:
			expr, ok = p.parseAttributeExpr(expr)
		default:
			return expr, true
		}
		if !ok {
			return ast.NoExprID, false
		}
	}
}

func (p *Parser) parseCallExpr(fn ast.ExprID) (ast.ExprID, bool) {
	p.advance() // (
	args, ok := p.parseArgList()
	if !ok {
		return ast.NoExprID, false
	}
	closeTok, ok := p.expect(token.RParen, "invalid syntax")
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewCall(p.exprSpan(fn).Cover(closeTok.Span), fn, args), true
}

// parseArgList parses call arguments or class bases up to, not including, ')'.
func (p *Parser) parseArgList() ([]ast.CallArg, bool) {
	var args []ast.CallArg
	for !p.at(token.RParen) {
		var arg ast.CallArg
		switch {
		case p.eat(token.Star):
			value, ok := p.parseTest()
			if !ok {
				return nil, false
			}
			arg = ast.CallArg{Kind: ast.ArgStar, Value: value}
		case p.eat(token.StarStar):
			value, ok := p.parseTest()
			if !ok {
				return nil, false
			}
			arg = ast.CallArg{Kind: ast.ArgDoubleStar, Value: value}
		default:
			value, ok := p.parseNamedExpr()
			if !ok {
				return nil, false
			}
			switch {
			case p.at(token.Assign):
				name, isName := p.arenas.Exprs.Name(value)
				if !isName {
					return nil, p.fail(p.exprSpan(value), `expression cannot contain assignment, perhaps you meant "=="?`)
				}
				p.advance()
				kwValue, ok := p.parseTest()
				if !ok {
					return nil, false
				}
				arg = ast.CallArg{Kind: ast.ArgKeyword, Name: name.Name, Value: kwValue}
			case p.atOr(token.KwFor, token.KwAsync):
				gens, ok := p.parseCompFor()
				if !ok {
					return nil, false
				}
				span := p.exprSpan(value).Cover(p.lastSpan)
				genexp := p.arenas.Exprs.NewComp(span, ast.ExprCompData{
					Kind:       ast.CompGenerator,
					Elt:        value,
					Generators: gens,
				})
				arg = ast.CallArg{Kind: ast.ArgPositional, Value: genexp}
			default:
				arg = ast.CallArg{Kind: ast.ArgPositional, Value: value}
			}
		}
		args = append(args, arg)
		if !p.eat(token.Comma) {
			break
		}
	}
	return args, true
}

func (p *Parser) parseSubscriptExpr(value ast.ExprID) (ast.ExprID, bool) {
	open := p.advance() // [
	var items []ast.ExprID
	trailingComma := false
	for {
		item, ok := p.parseSliceItem()
		if !ok {
			return ast.NoExprID, false
		}
		items = append(items, item)
		if !p.eat(token.Comma) {
			break
		}
		if p.at(token.RBracket) {
			trailingComma = true
			break
		}
	}
	closeTok, ok := p.expect(token.RBracket, "invalid syntax")
	if !ok {
		return ast.NoExprID, false
	}
	index := items[0]
	if len(items) > 1 || trailingComma {
		index = p.arenas.Exprs.NewSeq(ast.ExprTuple, open.Span.Cover(closeTok.Span), items)
	}
	return p.arenas.Exprs.NewSubscript(p.exprSpan(value).Cover(closeTok.Span), value, index), true
}

// parseSliceItem parses 'x', 'lo:hi' or 'lo:hi:step' with every part optional.
func (p *Parser) parseSliceItem() (ast.ExprID, bool) {
	start := p.peek().Span
	lower := ast.NoExprID
	if !p.at(token.Colon) {
		var ok bool
		if lower, ok = p.parseStarOrNamed(); !ok {
			return ast.NoExprID, false
		}
		if !p.at(token.Colon) {
			return lower, true
		}
	}
	p.advance() // :
	upper, ok := p.parseOptionalTest(token.Colon, token.Comma, token.RBracket)
	if !ok {
		return ast.NoExprID, false
	}
	step := ast.NoExprID
	if p.eat(token.Colon) {
		if step, ok = p.parseOptionalTest(token.Comma, token.RBracket); !ok {
			return ast.NoExprID, false
		}
	}
	return p.arenas.Exprs.NewSlice(start.Cover(p.lastSpan), lower, upper, step), true
}

// parseOptionalTest returns NoExprID when the lookahead is one of stops.
func (p *Parser) parseOptionalTest(stops ...token.Kind) (ast.ExprID, bool) {
	if p.atOr(stops...) {
		return ast.NoExprID, true
	}
	return p.parseTest()
}

func (p *Parser) parseAttributeExpr(value ast.ExprID) (ast.ExprID, bool) {
	p.advance() // .
	attr, attrSpan, ok := p.parseName()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewAttribute(p.exprSpan(value).Cover(attrSpan), value, attr), true
}
