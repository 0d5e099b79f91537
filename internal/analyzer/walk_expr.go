package analyzer

import (
	"pyrint/internal/ast"
	"pyrint/internal/diag"
)

func (c *checker) walkExprs(ids []ast.ExprID) {
	for _, id := range ids {
		c.walkExpr(id)
	}
}

func (c *checker) walkExpr(id ast.ExprID) {
	exprs := c.b.Exprs
	ex := exprs.Get(id)
	if ex == nil {
		return
	}
	switch ex.Kind {
	case ast.ExprName:
		data, _ := exprs.Name(id)
		c.use(data.Name, ex.Span)

	case ast.ExprLit:

	case ast.ExprUnary:
		data, _ := exprs.Unary(id)
		c.walkExpr(data.Operand)

	case ast.ExprBinary, ast.ExprBoolOp:
		data, _ := exprs.Binary(id)
		c.walkExpr(data.Left)
		c.walkExpr(data.Right)

	case ast.ExprCompare:
		data, _ := exprs.Compare(id)
		c.walkExpr(data.Left)
		for i, op := range data.Ops {
			if op == ast.CmpLtGt && i < len(data.OpSpans) {
				c.report(diag.NonexistentOperator, data.OpSpans[i], "Use of the non-existent <> operator")
			}
			c.walkExpr(data.Comparators[i])
		}

	case ast.ExprCall:
		data, _ := exprs.Call(id)
		c.walkExpr(data.Func)
		for _, arg := range data.Args {
			c.walkExpr(arg.Value)
		}

	case ast.ExprAttribute:
		data, _ := exprs.Attribute(id)
		c.walkExpr(data.Value)

	case ast.ExprSubscript:
		data, _ := exprs.Subscript(id)
		c.walkExpr(data.Value)
		c.walkExpr(data.Index)

	case ast.ExprSlice:
		data, _ := exprs.Slice(id)
		c.walkExpr(data.Lower)
		c.walkExpr(data.Upper)
		c.walkExpr(data.Step)

	case ast.ExprTuple, ast.ExprList, ast.ExprSet:
		data, _ := exprs.Seq(id)
		c.walkElements(data.Elts)

	case ast.ExprDict:
		data, _ := exprs.Dict(id)
		c.checkDictKeys(data)
		for _, en := range data.Entries {
			c.walkExpr(en.Key)
			c.walkExpr(en.Value)
		}

	case ast.ExprStarred:
		// Display elements are unwrapped by walkElements, so a starred
		// expression reaching this point stands alone.
		c.report(diag.StarNeedsTarget, ex.Span, "Can use starred expression only in assignment target")
		data, _ := exprs.Wrap(id)
		c.walkExpr(data.Value)

	case ast.ExprLambda:
		c.visitLambda(id, ex)

	case ast.ExprTernary:
		data, _ := exprs.Ternary(id)
		c.walkExpr(data.Test)
		c.walkExpr(data.Body)
		c.walkExpr(data.OrElse)

	case ast.ExprNamed:
		data, _ := exprs.NamedExpr(id)
		c.walkExpr(data.Value)
		if name, ok := exprs.Name(data.Target); ok {
			c.bind(name.Name, exprs.Get(data.Target).Span)
		}

	case ast.ExprYield, ast.ExprYieldFrom:
		data, _ := exprs.Wrap(id)
		c.walkExpr(data.Value)
		c.visitYield(ex)

	case ast.ExprAwait:
		data, _ := exprs.Wrap(id)
		if fn := c.enclosingFunction(); fn == nil || !fn.async {
			c.report(diag.AwaitOutsideAsync, ex.Span, "'await' should be used within an async function")
		}
		c.walkExpr(data.Value)

	case ast.ExprComp:
		data, _ := exprs.Comp(id)
		c.walkComprehension(data)
	}
}

// walkElements walks display elements; '*x' is legal here.
func (c *checker) walkElements(elts []ast.ExprID) {
	for _, elt := range elts {
		if inner, ok := c.b.Exprs.Wrap(elt); ok && c.b.Exprs.Get(elt).Kind == ast.ExprStarred {
			c.walkExpr(inner.Value)
			continue
		}
		c.walkExpr(elt)
	}
}

func (c *checker) visitYield(ex *ast.Expr) {
	fn := c.enclosingFunction()
	if fn == nil {
		c.report(diag.YieldOutsideFunction, ex.Span, "Yield outside function")
		return
	}
	if c.track.generators {
		fn.generator = true
	}
}

// walkComprehension visits generators in evaluation order. Loop targets
// bind inside the comprehension, not in the enclosing frame.
func (c *checker) walkComprehension(data *ast.ExprCompData) {
	for _, g := range data.Generators {
		c.walkExpr(g.Iter)
		c.walkCompTarget(g.Target)
		c.walkExprs(g.Ifs)
	}
	c.walkExpr(data.Elt)
	c.walkExpr(data.Value)
}

func (c *checker) walkCompTarget(id ast.ExprID) {
	exprs := c.b.Exprs
	ex := exprs.Get(id)
	if ex == nil {
		return
	}
	switch ex.Kind {
	case ast.ExprName:
	case ast.ExprTuple, ast.ExprList:
		data, _ := exprs.Seq(id)
		c.checkStarCount(id, data.Elts)
		for _, elt := range data.Elts {
			c.walkCompTarget(elt)
		}
	case ast.ExprStarred:
		data, _ := exprs.Wrap(id)
		c.walkCompTarget(data.Value)
	default:
		c.walkTarget(id)
	}
}

// walkTarget walks an assignment, for, with, del or augmented target and
// binds the names it introduces.
func (c *checker) walkTarget(id ast.ExprID) {
	exprs := c.b.Exprs
	ex := exprs.Get(id)
	if ex == nil {
		return
	}
	switch ex.Kind {
	case ast.ExprName:
		data, _ := exprs.Name(id)
		c.bind(data.Name, ex.Span)
	case ast.ExprTuple, ast.ExprList:
		data, _ := exprs.Seq(id)
		c.checkStarCount(id, data.Elts)
		for _, elt := range data.Elts {
			c.walkTarget(elt)
		}
	case ast.ExprStarred:
		data, _ := exprs.Wrap(id)
		c.walkTarget(data.Value)
	case ast.ExprAttribute:
		data, _ := exprs.Attribute(id)
		c.walkExpr(data.Value)
	case ast.ExprSubscript:
		data, _ := exprs.Subscript(id)
		c.walkExpr(data.Value)
		c.walkExpr(data.Index)
	default:
		c.walkExpr(id)
	}
}

// checkStarCount reports more than one starred element at a single
// level of a target. Nested levels are checked on their own.
func (c *checker) checkStarCount(id ast.ExprID, elts []ast.ExprID) {
	if !c.enabled(diag.TooManyStarExprs) {
		return
	}
	stars := 0
	for _, elt := range elts {
		if e := c.b.Exprs.Get(elt); e != nil && e.Kind == ast.ExprStarred {
			stars++
		}
	}
	if stars > 1 {
		c.report(diag.TooManyStarExprs, c.b.Exprs.Get(id).Span, "More than one starred expression in assignment")
	}
}
