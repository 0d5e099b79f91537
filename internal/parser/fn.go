package parser

import (
	"pyrint/internal/ast"
	"pyrint/internal/source"
	"pyrint/internal/token"
)

// parseDecorated parses '@expr NEWLINE'+ followed by a def or class.
func (p *Parser) parseDecorated() (ast.StmtID, bool) {
	var decorators []ast.ExprID
	for p.eat(token.At) {
		dec, ok := p.parseNamedExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		if _, ok := p.expect(token.Newline, "invalid syntax"); !ok {
			return ast.NoStmtID, false
		}
		decorators = append(decorators, dec)
	}
	switch p.peek().Kind {
	case token.KwDef:
		return p.parseFuncDef(decorators, p.peek().Span, false)
	case token.KwClass:
		return p.parseClassDef(decorators, p.peek().Span)
	case token.KwAsync:
		kw := p.advance()
		if !p.at(token.KwDef) {
			return ast.NoStmtID, p.failHere("invalid syntax")
		}
		return p.parseFuncDef(decorators, kw.Span, true)
	default:
		return ast.NoStmtID, p.failHere("invalid syntax")
	}
}

// parseFuncDef parses 'def name(params) [-> ann]: body'. The statement span
// starts at start ('def' or 'async'), not at the decorators.
func (p *Parser) parseFuncDef(decorators []ast.ExprID, start source.Span, async bool) (ast.StmtID, bool) {
	if _, ok := p.expect(token.KwDef, "invalid syntax"); !ok {
		return ast.NoStmtID, false
	}
	name, nameSpan, ok := p.parseName()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.LParen, "expected '('"); !ok {
		return ast.NoStmtID, false
	}
	params, ok := p.parseParamList(token.RParen, true)
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.RParen, "invalid syntax"); !ok {
		return ast.NoStmtID, false
	}
	returns := ast.NoExprID
	if p.eat(token.Arrow) {
		if returns, ok = p.parseTest(); !ok {
			return ast.NoStmtID, false
		}
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewFuncDef(start.Cover(p.lastSpan), ast.StmtFuncDefData{
		Name:       name,
		NameSpan:   nameSpan,
		Decorators: decorators,
		Params:     params,
		Returns:    returns,
		Body:       body,
		Async:      async,
	}), true
}

func (p *Parser) parseClassDef(decorators []ast.ExprID, start source.Span) (ast.StmtID, bool) {
	p.advance() // class
	name, nameSpan, ok := p.parseName()
	if !ok {
		return ast.NoStmtID, false
	}
	var bases []ast.CallArg
	if p.eat(token.LParen) {
		if bases, ok = p.parseArgList(); !ok {
			return ast.NoStmtID, false
		}
		if _, ok := p.expect(token.RParen, "invalid syntax"); !ok {
			return ast.NoStmtID, false
		}
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewClassDef(start.Cover(p.lastSpan), ast.StmtClassDefData{
		Name:       name,
		NameSpan:   nameSpan,
		Decorators: decorators,
		Bases:      bases,
		Body:       body,
	}), true
}

// parseParamList parses parameters up to, not including, closer. Lambdas
// pass annotations=false since ':' ends their parameter list. Repeated
// names are accepted here and reported by the analyzer.
func (p *Parser) parseParamList(closer token.Kind, annotations bool) ([]ast.Param, bool) {
	var params []ast.Param
	seenSlash, seenStar, bareStar, seenDefault := false, false, false, false
	for !p.at(closer) {
		tok := p.peek()
		switch tok.Kind {
		case token.Slash:
			p.advance()
			if seenSlash {
				return nil, p.fail(tok.Span, "/ may appear only once")
			}
			if seenStar {
				return nil, p.fail(tok.Span, "/ must be ahead of *")
			}
			if len(params) == 0 {
				return nil, p.fail(tok.Span, "at least one argument must precede /")
			}
			for i := range params {
				params[i].Kind = ast.ParamPosOnly
			}
			seenSlash = true

		case token.Star:
			p.advance()
			if seenStar {
				return nil, p.fail(tok.Span, "* argument may appear only once")
			}
			seenStar = true
			if p.atOr(token.Comma, closer) {
				bareStar = true
				break
			}
			param, ok := p.parseParam(ast.ParamVarArgs, annotations, false)
			if !ok {
				return nil, false
			}
			params = append(params, param)

		case token.StarStar:
			p.advance()
			param, ok := p.parseParam(ast.ParamKwArgs, annotations, false)
			if !ok {
				return nil, false
			}
			params = append(params, param)
			p.eat(token.Comma)
			if !p.at(closer) {
				return nil, p.failHere("arguments cannot follow var-keyword argument")
			}
			return params, true

		default:
			kind := ast.ParamPositional
			if seenStar {
				kind = ast.ParamKwOnly
			}
			param, ok := p.parseParam(kind, annotations, true)
			if !ok {
				return nil, false
			}
			if param.Default.IsValid() {
				seenDefault = true
			} else if seenDefault && kind == ast.ParamPositional {
				return nil, p.fail(param.Span, "parameter without a default follows parameter with a default")
			}
			if kind == ast.ParamKwOnly {
				bareStar = false
			}
			params = append(params, param)
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	if bareStar {
		return nil, p.failHere("named arguments must follow bare *")
	}
	return params, true
}

func (p *Parser) parseParam(kind ast.ParamKind, annotations, defaults bool) (ast.Param, bool) {
	name, span, ok := p.parseName()
	if !ok {
		return ast.Param{}, false
	}
	param := ast.Param{Kind: kind, Name: name, Span: span, Annotation: ast.NoExprID, Default: ast.NoExprID}
	if annotations && p.eat(token.Colon) {
		if param.Annotation, ok = p.parseTest(); !ok {
			return ast.Param{}, false
		}
	}
	if defaults && p.eat(token.Assign) {
		if param.Default, ok = p.parseTest(); !ok {
			return ast.Param{}, false
		}
	}
	return param, true
}
