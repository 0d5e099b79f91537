package ast

import (
	"fmt"
	"strings"
)

// Dump renders a file as an indented S-expression. It is used by tests and
// by 'pyrint check --dump-ast'.
func Dump(b *Builder, file FileID) string {
	d := dumper{b: b}
	f := b.Files.Get(file)
	if f == nil {
		return "(Module)"
	}
	d.sb.WriteString("(Module")
	d.stmts(f.Body, 1)
	d.sb.WriteString(")")
	return d.sb.String()
}

// DumpExpr renders a single expression on one line.
func DumpExpr(b *Builder, id ExprID) string {
	d := dumper{b: b}
	d.expr(id)
	return d.sb.String()
}

type dumper struct {
	b  *Builder
	sb strings.Builder
}

func (d *dumper) w(format string, args ...any) {
	fmt.Fprintf(&d.sb, format, args...)
}

func (d *dumper) nl(depth int) {
	d.sb.WriteByte('\n')
	d.sb.WriteString(strings.Repeat("  ", depth))
}

func (d *dumper) stmts(ids []StmtID, depth int) {
	for _, id := range ids {
		d.nl(depth)
		d.stmt(id, depth)
	}
}

func (d *dumper) block(label string, ids []StmtID, depth int) {
	if len(ids) == 0 {
		return
	}
	d.nl(depth)
	d.w("(%s", label)
	d.stmts(ids, depth+1)
	d.w(")")
}

func (d *dumper) exprs(ids []ExprID) {
	for _, id := range ids {
		d.w(" ")
		d.expr(id)
	}
}

func (d *dumper) opt(id ExprID) {
	if id.IsValid() {
		d.w(" ")
		d.expr(id)
	}
}

func (d *dumper) stmt(id StmtID, depth int) {
	st := d.b.Stmts.Get(id)
	s := d.b.Stmts
	d.w("(%s", st.Kind)
	switch st.Kind {
	case StmtExpr, StmtReturn:
		data, _ := s.ExprValue(id)
		d.opt(data.Value)
	case StmtAssign:
		data, _ := s.Assign(id)
		d.exprs(data.Targets)
		d.w(" =")
		d.opt(data.Value)
	case StmtAugAssign:
		data, _ := s.AugAssign(id)
		d.opt(data.Target)
		d.w(" %s=", data.Op)
		d.opt(data.Value)
	case StmtAnnAssign:
		data, _ := s.AnnAssign(id)
		d.opt(data.Target)
		d.w(" :")
		d.opt(data.Annotation)
		if data.Value.IsValid() {
			d.w(" =")
			d.opt(data.Value)
		}
	case StmtRaise:
		data, _ := s.Raise(id)
		d.opt(data.Exc)
		if data.Cause.IsValid() {
			d.w(" from")
			d.opt(data.Cause)
		}
	case StmtGlobal, StmtNonlocal:
		data, _ := s.NameList(id)
		for _, n := range data.Names {
			d.w(" %s", d.b.Name(n.Name))
		}
	case StmtDel:
		data, _ := s.Del(id)
		d.exprs(data.Targets)
	case StmtAssert:
		data, _ := s.Assert(id)
		d.opt(data.Test)
		d.opt(data.Msg)
	case StmtImport:
		data, _ := s.Import(id)
		d.aliases(data.Names)
	case StmtImportFrom:
		data, _ := s.ImportFrom(id)
		d.w(" %s%s", strings.Repeat(".", data.Level), d.b.Name(data.Module))
		if data.Star {
			d.w(" *")
		}
		d.aliases(data.Names)
	case StmtIf:
		data, _ := s.If(id)
		d.opt(data.Test)
		d.block("then", data.Body, depth+1)
		d.block("else", data.Else, depth+1)
	case StmtWhile:
		data, _ := s.While(id)
		d.opt(data.Test)
		d.block("do", data.Body, depth+1)
		d.block("else", data.Else, depth+1)
	case StmtFor:
		data, _ := s.For(id)
		if data.Async {
			d.w(" async")
		}
		d.opt(data.Target)
		d.w(" in")
		d.opt(data.Iter)
		d.block("do", data.Body, depth+1)
		d.block("else", data.Else, depth+1)
	case StmtTry:
		data, _ := s.Try(id)
		d.block("body", data.Body, depth+1)
		for _, h := range data.Handlers {
			d.nl(depth + 1)
			d.w("(except")
			d.opt(h.Type)
			if h.Name != 0 {
				d.w(" as %s", d.b.Name(h.Name))
			}
			d.stmts(h.Body, depth+2)
			d.w(")")
		}
		d.block("else", data.Else, depth+1)
		d.block("finally", data.Finally, depth+1)
	case StmtWith:
		data, _ := s.With(id)
		if data.Async {
			d.w(" async")
		}
		for _, it := range data.Items {
			d.w(" ")
			d.expr(it.Context)
			if it.Target.IsValid() {
				d.w(" as ")
				d.expr(it.Target)
			}
		}
		d.stmts(data.Body, depth+1)
	case StmtFuncDef:
		data, _ := s.FuncDef(id)
		if data.Async {
			d.w(" async")
		}
		d.w(" %s", d.b.Name(data.Name))
		d.decorators(data.Decorators)
		d.params(data.Params)
		if data.Returns.IsValid() {
			d.w(" ->")
			d.opt(data.Returns)
		}
		d.stmts(data.Body, depth+1)
	case StmtClassDef:
		data, _ := s.ClassDef(id)
		d.w(" %s", d.b.Name(data.Name))
		d.decorators(data.Decorators)
		if len(data.Bases) > 0 {
			d.w(" (bases")
			d.args(data.Bases)
			d.w(")")
		}
		d.stmts(data.Body, depth+1)
	}
	d.w(")")
}

func (d *dumper) aliases(names []ImportAlias) {
	for _, a := range names {
		d.w(" %s", d.b.Name(a.Name))
		if a.AsName != 0 {
			d.w(" as %s", d.b.Name(a.AsName))
		}
	}
}

func (d *dumper) decorators(decs []ExprID) {
	if len(decs) == 0 {
		return
	}
	d.w(" (@")
	d.exprs(decs)
	d.w(")")
}

func (d *dumper) params(ps []Param) {
	d.w(" (params")
	for _, p := range ps {
		d.w(" ")
		switch p.Kind {
		case ParamVarArgs:
			d.w("*")
		case ParamKwArgs:
			d.w("**")
		case ParamPosOnly:
			d.w("/")
		case ParamKwOnly:
			d.w("kw:")
		}
		d.w("%s", d.b.Name(p.Name))
		if p.Default.IsValid() {
			d.w("=")
			d.expr(p.Default)
		}
	}
	d.w(")")
}

func (d *dumper) args(args []CallArg) {
	for _, a := range args {
		d.w(" ")
		switch a.Kind {
		case ArgKeyword:
			d.w("%s=", d.b.Name(a.Name))
		case ArgStar:
			d.w("*")
		case ArgDoubleStar:
			d.w("**")
		}
		d.expr(a.Value)
	}
}

func (d *dumper) expr(id ExprID) {
	e := d.b.Exprs
	ex := e.Get(id)
	if ex == nil {
		d.w("<nil>")
		return
	}
	switch ex.Kind {
	case ExprName:
		data, _ := e.Name(id)
		d.w("%s", d.b.Name(data.Name))
	case ExprLit:
		data, _ := e.Lit(id)
		switch data.Kind {
		case LitString, LitBytes, LitFString:
			d.w("%q", d.b.Name(data.Value))
		default:
			d.w("%s", d.b.Name(data.Value))
		}
	case ExprUnary:
		data, _ := e.Unary(id)
		d.w("(%s ", data.Op)
		d.expr(data.Operand)
		d.w(")")
	case ExprBinary, ExprBoolOp:
		data, _ := e.Binary(id)
		d.w("(%s ", data.Op)
		d.expr(data.Left)
		d.w(" ")
		d.expr(data.Right)
		d.w(")")
	case ExprCompare:
		data, _ := e.Compare(id)
		d.w("(cmp ")
		d.expr(data.Left)
		for i, op := range data.Ops {
			d.w(" %s ", op)
			d.expr(data.Comparators[i])
		}
		d.w(")")
	case ExprCall:
		data, _ := e.Call(id)
		d.w("(call ")
		d.expr(data.Func)
		d.args(data.Args)
		d.w(")")
	case ExprAttribute:
		data, _ := e.Attribute(id)
		d.w("(. ")
		d.expr(data.Value)
		d.w(" %s)", d.b.Name(data.Attr))
	case ExprSubscript:
		data, _ := e.Subscript(id)
		d.w("(index ")
		d.expr(data.Value)
		d.w(" ")
		d.expr(data.Index)
		d.w(")")
	case ExprSlice:
		data, _ := e.Slice(id)
		d.w("(slice")
		for _, part := range []ExprID{data.Lower, data.Upper, data.Step} {
			d.w(" ")
			if part.IsValid() {
				d.expr(part)
			} else {
				d.w("_")
			}
		}
		d.w(")")
	case ExprTuple, ExprList, ExprSet:
		data, _ := e.Seq(id)
		d.w("(%s", strings.ToLower(ex.Kind.String()))
		d.exprs(data.Elts)
		d.w(")")
	case ExprDict:
		data, _ := e.Dict(id)
		d.w("(dict")
		for _, en := range data.Entries {
			d.w(" ")
			if en.Key.IsValid() {
				d.expr(en.Key)
				d.w(":")
			} else {
				d.w("**")
			}
			d.expr(en.Value)
		}
		d.w(")")
	case ExprStarred, ExprAwait, ExprYield, ExprYieldFrom:
		data, _ := e.Wrap(id)
		d.w("(%s", strings.ToLower(ex.Kind.String()))
		d.opt(data.Value)
		d.w(")")
	case ExprLambda:
		data, _ := e.Lambda(id)
		d.w("(lambda")
		d.params(data.Params)
		d.w(" ")
		d.expr(data.Body)
		d.w(")")
	case ExprTernary:
		data, _ := e.Ternary(id)
		d.w("(if ")
		d.expr(data.Test)
		d.w(" ")
		d.expr(data.Body)
		d.w(" ")
		d.expr(data.OrElse)
		d.w(")")
	case ExprNamed:
		data, _ := e.NamedExpr(id)
		d.w("(:= ")
		d.expr(data.Target)
		d.w(" ")
		d.expr(data.Value)
		d.w(")")
	case ExprComp:
		data, _ := e.Comp(id)
		kinds := [...]string{CompList: "listcomp", CompSet: "setcomp", CompDict: "dictcomp", CompGenerator: "genexp"}
		d.w("(%s ", kinds[data.Kind])
		d.expr(data.Elt)
		if data.Value.IsValid() {
			d.w(":")
			d.expr(data.Value)
		}
		for _, g := range data.Generators {
			d.w(" (for ")
			d.expr(g.Target)
			d.w(" in ")
			d.expr(g.Iter)
			for _, c := range g.Ifs {
				d.w(" if ")
				d.expr(c)
			}
			d.w(")")
		}
		d.w(")")
	}
}
