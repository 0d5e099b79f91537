package ast

import (
	"testing"

	"pyrint/internal/source"
)

func TestArenaOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil || a.Get(1) != nil {
		t.Fatal("empty arena must return nil")
	}
	id := a.Allocate(42)
	if id != 1 || *a.Get(id) != 42 || a.Len() != 1 {
		t.Fatalf("id=%d value=%v len=%d", id, a.Get(id), a.Len())
	}
}

func TestAccessorsCheckKind(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	x := b.Exprs.NewName(source.Span{}, b.StringsInterner.Intern("x"))
	star := b.Exprs.NewWrap(ExprStarred, source.Span{}, x)
	tuple := b.Exprs.NewSeq(ExprTuple, source.Span{}, []ExprID{x, star})

	if _, ok := b.Exprs.Call(x); ok {
		t.Fatal("Call accessor accepted a name")
	}
	if w, ok := b.Exprs.Wrap(star); !ok || w.Value != x {
		t.Fatalf("Wrap = %+v, %v", w, ok)
	}
	if s, ok := b.Exprs.Seq(tuple); !ok || len(s.Elts) != 2 {
		t.Fatalf("Seq = %+v, %v", s, ok)
	}
	and := b.Exprs.NewBinary(source.Span{}, BinaryAnd, x, x)
	if b.Exprs.Get(and).Kind != ExprBoolOp {
		t.Fatalf("'and' must build an ExprBoolOp, got %v", b.Exprs.Get(and).Kind)
	}

	ret := b.Stmts.NewReturn(source.Span{}, NoExprID)
	if v, ok := b.Stmts.ExprValue(ret); !ok || v.Value.IsValid() {
		t.Fatalf("bare return payload = %+v, %v", v, ok)
	}
	if _, ok := b.Stmts.FuncDef(ret); ok {
		t.Fatal("FuncDef accessor accepted a return")
	}
}

func TestDump(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	in := b.StringsInterner
	file := b.NewFile(source.Span{})
	x := b.Exprs.NewName(source.Span{}, in.Intern("x"))
	one := b.Exprs.NewLit(source.Span{}, LitInt, in.Intern("1"))
	sum := b.Exprs.NewBinary(source.Span{}, BinaryAdd, x, one)
	ret := b.Stmts.NewReturn(source.Span{}, sum)
	fn := b.Stmts.NewFuncDef(source.Span{}, StmtFuncDefData{
		Name:   in.Intern("f"),
		Params: []Param{{Name: in.Intern("x")}, {Kind: ParamVarArgs, Name: in.Intern("rest")}},
		Body:   []StmtID{ret},
	})
	b.PushStmt(file, fn)

	want := "(Module\n  (FuncDef f (params x *rest)\n    (Return (+ x 1))))"
	if got := Dump(b, file); got != want {
		t.Fatalf("Dump:\n%s\nwant:\n%s", got, want)
	}
}
