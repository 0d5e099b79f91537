package analyzer

import (
	"strings"

	"pyrint/internal/ast"
	"pyrint/internal/diag"
	"pyrint/internal/source"
)

func (c *checker) walkBody(body []ast.StmtID) {
	for _, id := range body {
		c.walkStmt(id)
	}
}

func (c *checker) walkStmt(id ast.StmtID) {
	stmts := c.b.Stmts
	st := stmts.Get(id)
	if st == nil {
		return
	}
	switch st.Kind {
	case ast.StmtExpr:
		data, _ := stmts.ExprValue(id)
		c.walkExpr(data.Value)

	case ast.StmtAssign:
		data, _ := stmts.Assign(id)
		c.walkExpr(data.Value)
		for _, t := range data.Targets {
			c.walkTarget(t)
		}

	case ast.StmtAugAssign:
		data, _ := stmts.AugAssign(id)
		c.walkExpr(data.Value)
		c.walkTarget(data.Target)

	case ast.StmtAnnAssign:
		data, _ := stmts.AnnAssign(id)
		c.walkExpr(data.Annotation)
		c.walkExpr(data.Value)
		c.walkTarget(data.Target)

	case ast.StmtPass:

	case ast.StmtBreak, ast.StmtContinue:
		if !c.inLoop() {
			c.report(diag.NotInLoop, st.Span, "'%s' not properly in loop", strings.ToLower(st.Kind.String()))
		}

	case ast.StmtReturn:
		data, _ := stmts.ExprValue(id)
		c.visitReturn(st.Span, data.Value)

	case ast.StmtRaise:
		data, _ := stmts.Raise(id)
		c.visitRaise(st.Span, data)

	case ast.StmtGlobal:
		data, _ := stmts.NameList(id)
		c.declareGlobals(data.Names)

	case ast.StmtNonlocal:
		data, _ := stmts.NameList(id)
		c.declareNonlocals(data.Names)

	case ast.StmtDel:
		data, _ := stmts.Del(id)
		for _, t := range data.Targets {
			c.walkTarget(t)
		}

	case ast.StmtAssert:
		data, _ := stmts.Assert(id)
		c.walkExpr(data.Test)
		c.walkExpr(data.Msg)

	case ast.StmtImport:
		data, _ := stmts.Import(id)
		for _, alias := range data.Names {
			if alias.AsName != 0 {
				c.bind(alias.AsName, alias.Span)
				continue
			}
			// 'import a.b' binds 'a'.
			head, _, _ := strings.Cut(c.name(alias.Name), ".")
			c.bind(c.b.StringsInterner.InternName(head), alias.Span)
		}

	case ast.StmtImportFrom:
		data, _ := stmts.ImportFrom(id)
		for _, alias := range data.Names {
			if alias.AsName != 0 {
				c.bind(alias.AsName, alias.Span)
			} else {
				c.bind(alias.Name, alias.Span)
			}
		}

	case ast.StmtIf:
		data, _ := stmts.If(id)
		c.walkExpr(data.Test)
		c.walkBody(data.Body)
		c.walkBody(data.Else)

	case ast.StmtWhile:
		data, _ := stmts.While(id)
		c.walkExpr(data.Test)
		c.withControl(marker{kind: markLoop}, func() { c.walkBody(data.Body) })
		c.walkBody(data.Else)

	case ast.StmtFor:
		data, _ := stmts.For(id)
		c.walkExpr(data.Iter)
		c.walkTarget(data.Target)
		c.withControl(marker{kind: markLoop}, func() { c.walkBody(data.Body) })
		c.walkBody(data.Else)

	case ast.StmtTry:
		data, _ := stmts.Try(id)
		c.walkBody(data.Body)
		for _, h := range data.Handlers {
			c.walkExpr(h.Type)
			if h.Name != 0 {
				c.bind(h.Name, h.NameSpan)
			}
			c.withControl(marker{kind: markExcept}, func() { c.walkBody(h.Body) })
		}
		c.walkBody(data.Else)
		c.walkBody(data.Finally)

	case ast.StmtWith:
		data, _ := stmts.With(id)
		for _, it := range data.Items {
			c.walkExpr(it.Context)
			if it.Target.IsValid() {
				c.walkTarget(it.Target)
			}
		}
		c.walkBody(data.Body)

	case ast.StmtFuncDef:
		c.visitFuncDef(id, st)

	case ast.StmtClassDef:
		c.visitClassDef(id, st)
	}
}

func (c *checker) visitReturn(sp source.Span, value ast.ExprID) {
	c.walkExpr(value)
	fn := c.enclosingFunction()
	if fn == nil {
		c.report(diag.ReturnOutsideFunction, sp, "Return outside function")
		return
	}
	if c.track.returns && value.IsValid() && !c.isNone(value) {
		fn.returns = append(fn.returns, sp)
	}
}

func (c *checker) visitRaise(sp source.Span, data *ast.StmtRaiseData) {
	if !data.Exc.IsValid() {
		if !c.inExcept() {
			c.report(diag.MisplacedBareRaise, sp, "The raise statement is not inside an except clause")
		}
		return
	}
	if c.raisesNotImplemented(data.Exc) {
		c.report(diag.NotImplementedRaised, sp, "NotImplemented raised - should raise NotImplementedError")
	}
	c.walkExpr(data.Exc)
	c.walkExpr(data.Cause)
}

// raisesNotImplemented matches 'NotImplemented' and 'NotImplemented(...)'.
func (c *checker) raisesNotImplemented(exc ast.ExprID) bool {
	exprs := c.b.Exprs
	if call, ok := exprs.Call(exc); ok {
		exc = call.Func
	}
	name, ok := exprs.Name(exc)
	return ok && c.name(name.Name) == "NotImplemented"
}

func (c *checker) isNone(id ast.ExprID) bool {
	lit, ok := c.b.Exprs.Lit(id)
	return ok && lit.Kind == ast.LitNone
}
