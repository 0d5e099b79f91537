package analyzer

import (
	"fmt"
	"strings"

	"pyrint/internal/ast"
	"pyrint/internal/diag"
	"pyrint/internal/source"
)

func (c *checker) visitFuncDef(id ast.StmtID, st *ast.Stmt) {
	data, ok := c.b.Stmts.FuncDef(id)
	if !ok {
		return
	}
	// Decorators, defaults and annotations evaluate in the enclosing scope.
	c.walkExprs(data.Decorators)
	c.walkParamExprs(data.Params)
	c.walkExpr(data.Returns)

	decorators := c.decoratorNames(data.Decorators)
	inClass := c.frame().Kind == FrameClass
	c.checkRedefinition(data, st.Span, decorators, inClass)
	c.bind(data.Name, data.NameSpan)
	if inClass {
		c.checkMethodSignature(data, st.Span, decorators)
	}
	c.checkDuplicateParams(data.Params, st.Span)

	fn := &funcContext{
		name:        data.Name,
		span:        st.Span,
		async:       data.Async,
		constructor: inClass && c.name(data.Name) == "__init__",
	}
	c.functions++
	c.scoped(FrameFunction, id, st.Span, marker{kind: markFunction, fn: fn}, func() {
		for _, p := range data.Params {
			c.bindParam(p.Name)
		}
		c.walkBody(data.Body)
	})
	c.finishFunction(fn)
}

// finishFunction applies the rules that need the whole body.
func (c *checker) finishFunction(fn *funcContext) {
	switch {
	case fn.constructor:
		if fn.generator {
			c.report(diag.InitIsGenerator, fn.span, "__init__ method is a generator")
		}
		for _, sp := range fn.returns {
			c.report(diag.ReturnInInit, sp, "Explicit return in __init__")
		}
	case fn.generator:
		for _, sp := range fn.returns {
			c.report(diag.ReturnArgInGenerator, sp, "Return with argument inside generator")
		}
	}
}

func (c *checker) visitClassDef(id ast.StmtID, st *ast.Stmt) {
	data, ok := c.b.Stmts.ClassDef(id)
	if !ok {
		return
	}
	c.walkExprs(data.Decorators)
	for _, base := range data.Bases {
		c.walkExpr(base.Value)
	}
	c.bind(data.Name, data.NameSpan)
	c.scoped(FrameClass, id, st.Span, marker{kind: markClass}, func() {
		c.walkBody(data.Body)
	})
}

func (c *checker) visitLambda(id ast.ExprID, ex *ast.Expr) {
	data, ok := c.b.Exprs.Lambda(id)
	if !ok {
		return
	}
	c.walkParamExprs(data.Params)
	c.checkDuplicateParams(data.Params, ex.Span)
	fn := &funcContext{span: ex.Span, lambda: true}
	c.functions++
	c.scoped(FrameLambda, ast.NoStmtID, ex.Span, marker{kind: markFunction, fn: fn}, func() {
		for _, p := range data.Params {
			c.bindParam(p.Name)
		}
		c.walkExpr(data.Body)
	})
}

func (c *checker) walkParamExprs(params []ast.Param) {
	for _, p := range params {
		c.walkExpr(p.Annotation)
		c.walkExpr(p.Default)
	}
}

// checkDuplicateParams reports a definition once, naming the first
// repeated parameter.
func (c *checker) checkDuplicateParams(params []ast.Param, sp source.Span) {
	if !c.enabled(diag.DuplicateArgumentName) || len(params) < 2 {
		return
	}
	seen := make(map[source.StringID]struct{}, len(params))
	for _, p := range params {
		if _, dup := seen[p.Name]; dup {
			c.report(diag.DuplicateArgumentName, sp, "Duplicate argument name %s in function definition", c.name(p.Name))
			return
		}
		seen[p.Name] = struct{}{}
	}
}

// checkRedefinition compares a def against the function names already
// defined in the current frame. Property accessors and overload stubs
// share their name legitimately and are not recorded.
func (c *checker) checkRedefinition(data *ast.StmtFuncDefData, sp source.Span, decorators []string, inClass bool) {
	if !c.track.funcNames {
		return
	}
	for _, d := range decorators {
		if isOverload(d) || isAccessor(d) {
			return
		}
	}
	f := c.frame()
	prev, seen := f.Funcs[data.Name]
	if !seen {
		if f.Funcs == nil {
			f.Funcs = make(map[source.StringID]source.Span)
		}
		f.Funcs[data.Name] = sp
		return
	}
	if c.reporter == nil {
		return
	}
	kind := "function"
	if inClass {
		kind = "method"
	}
	msg := kind + " already defined"
	if line := c.line(prev); line > 0 {
		msg = fmt.Sprintf("%s line %d", msg, line)
	}
	diag.ReportError(c.reporter, diag.FunctionRedefined, sp, msg).
		WithNote(prev, "first defined here").
		Emit()
}

func isOverload(decorator string) bool {
	switch decorator {
	case "overload", "typing.overload", "typing_extensions.overload":
		return true
	}
	return false
}

func isAccessor(decorator string) bool {
	return strings.HasSuffix(decorator, ".setter") ||
		strings.HasSuffix(decorator, ".getter") ||
		strings.HasSuffix(decorator, ".deleter")
}

// firstArgExempt lists methods whose first parameter is not an instance.
var firstArgExempt = map[string]bool{
	"__new__":           true,
	"__init_subclass__": true,
	"__class_getitem__": true,
}

// checkMethodSignature reports methods that cannot receive self.
func (c *checker) checkMethodSignature(data *ast.StmtFuncDefData, sp source.Span, decorators []string) {
	if !c.rules.AnyEnabled(diag.NoMethodArgument, diag.NoSelfArgument) {
		return
	}
	static, classmethod := false, false
	for _, d := range decorators {
		switch d {
		case "staticmethod", "builtins.staticmethod":
			static = true
		case "classmethod", "builtins.classmethod":
			classmethod = true
		}
	}
	if static {
		return
	}
	var first *ast.Param
	variadic := false
	for i := range data.Params {
		switch data.Params[i].Kind {
		case ast.ParamPositional, ast.ParamPosOnly:
			if first == nil {
				first = &data.Params[i]
			}
		case ast.ParamVarArgs:
			variadic = true
		}
	}
	name := c.name(data.Name)
	switch {
	case first != nil:
		if classmethod || firstArgExempt[name] {
			return
		}
		if c.name(first.Name) != "self" {
			c.report(diag.NoSelfArgument, sp, "Method '%s' should have \"self\" as first argument", name)
		}
	case !variadic:
		c.report(diag.NoMethodArgument, sp, "Method '%s' has no argument", name)
	}
}

// decoratorNames renders each decorator as a dotted name, looking through
// calls: '@a.b(x)' gives "a.b". Other shapes give "".
func (c *checker) decoratorNames(decorators []ast.ExprID) []string {
	if len(decorators) == 0 {
		return nil
	}
	out := make([]string, len(decorators))
	for i, d := range decorators {
		if call, ok := c.b.Exprs.Call(d); ok {
			d = call.Func
		}
		out[i] = c.dottedName(d)
	}
	return out
}

func (c *checker) dottedName(id ast.ExprID) string {
	exprs := c.b.Exprs
	if name, ok := exprs.Name(id); ok {
		return c.name(name.Name)
	}
	if attr, ok := exprs.Attribute(id); ok {
		base := c.dottedName(attr.Value)
		if base == "" {
			return ""
		}
		return base + "." + c.name(attr.Attr)
	}
	return ""
}
