package parser

import (
	"fmt"

	"pyrint/internal/ast"
)

// checkTarget verifies that id may be assigned to (action "assign to") or
// deleted (action "delete").
func (p *Parser) checkTarget(id ast.ExprID, action string) bool {
	e := p.arenas.Exprs.Get(id)
	switch e.Kind {
	case ast.ExprName, ast.ExprAttribute, ast.ExprSubscript:
		return true
	case ast.ExprTuple, ast.ExprList:
		seq, _ := p.arenas.Exprs.Seq(id)
		for _, elt := range seq.Elts {
			if p.arenas.Exprs.Get(elt).Kind != ast.ExprStarred {
				if !p.checkTarget(elt, action) {
					return false
				}
				continue
			}
			if action == "delete" {
				return p.fail(p.exprSpan(elt), "cannot delete starred")
			}
			inner, _ := p.arenas.Exprs.Wrap(elt)
			if !p.checkTarget(inner.Value, action) {
				return false
			}
		}
		return true
	case ast.ExprStarred:
		if action == "delete" {
			return p.fail(e.Span, "cannot delete starred")
		}
		return p.fail(e.Span, "starred assignment target must be in a list or tuple")
	}
	return p.fail(e.Span, fmt.Sprintf("cannot %s %s", action, p.describe(id)))
}

// checkAugTarget accepts only single names, attributes and subscripts.
func (p *Parser) checkAugTarget(id ast.ExprID) bool {
	switch p.arenas.Exprs.Get(id).Kind {
	case ast.ExprName, ast.ExprAttribute, ast.ExprSubscript:
		return true
	}
	return p.fail(p.exprSpan(id), fmt.Sprintf("'%s' is an illegal expression for augmented assignment", p.describe(id)))
}

func (p *Parser) checkAnnTarget(id ast.ExprID) bool {
	switch p.arenas.Exprs.Get(id).Kind {
	case ast.ExprName, ast.ExprAttribute, ast.ExprSubscript:
		return true
	case ast.ExprTuple:
		return p.fail(p.exprSpan(id), "only single target (not tuple) can be annotated")
	case ast.ExprList:
		return p.fail(p.exprSpan(id), "only single target (not list) can be annotated")
	}
	return p.fail(p.exprSpan(id), "illegal target for annotation")
}

// describe names an expression the way syntax errors refer to it.
func (p *Parser) describe(id ast.ExprID) string {
	exprs := p.arenas.Exprs
	e := exprs.Get(id)
	switch e.Kind {
	case ast.ExprLit:
		lit, _ := exprs.Lit(id)
		switch lit.Kind {
		case ast.LitTrue:
			return "True"
		case ast.LitFalse:
			return "False"
		case ast.LitNone:
			return "None"
		case ast.LitEllipsis:
			return "ellipsis"
		case ast.LitFString:
			return "f-string expression"
		}
		return "literal"
	case ast.ExprName:
		return "name"
	case ast.ExprAttribute:
		return "attribute"
	case ast.ExprSubscript:
		return "subscript"
	case ast.ExprTuple:
		return "tuple"
	case ast.ExprList:
		return "list"
	case ast.ExprSet:
		return "set display"
	case ast.ExprDict:
		return "dict literal"
	case ast.ExprCall:
		return "function call"
	case ast.ExprCompare:
		return "comparison"
	case ast.ExprLambda:
		return "lambda"
	case ast.ExprTernary:
		return "conditional expression"
	case ast.ExprNamed:
		return "named expression"
	case ast.ExprYield, ast.ExprYieldFrom:
		return "yield expression"
	case ast.ExprAwait:
		return "await expression"
	case ast.ExprStarred:
		return "starred"
	case ast.ExprComp:
		comp, _ := exprs.Comp(id)
		switch comp.Kind {
		case ast.CompList:
			return "list comprehension"
		case ast.CompSet:
			return "set comprehension"
		case ast.CompDict:
			return "dict comprehension"
		}
		return "generator expression"
	}
	return "expression"
}
