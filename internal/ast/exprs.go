package ast

import (
	"pyrint/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena      *Arena[Expr]
	Names      *Arena[ExprNameData]
	Lits       *Arena[ExprLitData]
	Unaries    *Arena[ExprUnaryData]
	Binaries   *Arena[ExprBinaryData]
	Compares   *Arena[ExprCompareData]
	Calls      *Arena[ExprCallData]
	Attributes *Arena[ExprAttributeData]
	Subscripts *Arena[ExprSubscriptData]
	Slices     *Arena[ExprSliceData]
	Seqs       *Arena[ExprSeqData]
	Dicts      *Arena[ExprDictData]
	Wraps      *Arena[ExprWrapData]
	Lambdas    *Arena[ExprLambdaData]
	Ternaries  *Arena[ExprTernaryData]
	Named      *Arena[ExprNamedData]
	Comps      *Arena[ExprCompData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/8 + 1
	return &Exprs{
		Arena:      NewArena[Expr](capHint),
		Names:      NewArena[ExprNameData](capHint / 2),
		Lits:       NewArena[ExprLitData](capHint / 4),
		Unaries:    NewArena[ExprUnaryData](small),
		Binaries:   NewArena[ExprBinaryData](small),
		Compares:   NewArena[ExprCompareData](small),
		Calls:      NewArena[ExprCallData](capHint / 4),
		Attributes: NewArena[ExprAttributeData](capHint / 4),
		Subscripts: NewArena[ExprSubscriptData](small),
		Slices:     NewArena[ExprSliceData](small),
		Seqs:       NewArena[ExprSeqData](small),
		Dicts:      NewArena[ExprDictData](small),
		Wraps:      NewArena[ExprWrapData](small),
		Lambdas:    NewArena[ExprLambdaData](small),
		Ternaries:  NewArena[ExprTernaryData](small),
		Named:      NewArena[ExprNamedData](small),
		Comps:      NewArena[ExprCompData](small),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) payload(id ExprID, kinds ...ExprKind) (uint32, bool) {
	expr := e.Get(id)
	if expr == nil {
		return 0, false
	}
	for _, k := range kinds {
		if expr.Kind == k {
			return uint32(expr.Payload), true
		}
	}
	return 0, false
}

func (e *Exprs) NewName(span source.Span, name source.StringID) ExprID {
	return e.new(ExprName, span, e.Names.Allocate(ExprNameData{Name: name}))
}

func (e *Exprs) Name(id ExprID) (*ExprNameData, bool) {
	p, ok := e.payload(id, ExprName)
	if !ok {
		return nil, false
	}
	return e.Names.Get(p), true
}

func (e *Exprs) NewLit(span source.Span, kind LitKind, value source.StringID) ExprID {
	return e.new(ExprLit, span, e.Lits.Allocate(ExprLitData{Kind: kind, Value: value}))
}

func (e *Exprs) Lit(id ExprID) (*ExprLitData, bool) {
	p, ok := e.payload(id, ExprLit)
	if !ok {
		return nil, false
	}
	return e.Lits.Get(p), true
}

func (e *Exprs) NewUnary(span source.Span, op UnaryOp, operand ExprID) ExprID {
	return e.new(ExprUnary, span, e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand}))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	p, ok := e.payload(id, ExprUnary)
	if !ok {
		return nil, false
	}
	return e.Unaries.Get(p), true
}

// NewBinary creates an arithmetic/bitwise expression, or an ExprBoolOp for 'and'/'or'.
func (e *Exprs) NewBinary(span source.Span, op BinaryOp, left, right ExprID) ExprID {
	kind := ExprBinary
	if op == BinaryAnd || op == BinaryOr {
		kind = ExprBoolOp
	}
	return e.new(kind, span, e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right}))
}

// Binary returns the payload of an ExprBinary or ExprBoolOp.
func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	p, ok := e.payload(id, ExprBinary, ExprBoolOp)
	if !ok {
		return nil, false
	}
	return e.Binaries.Get(p), true
}

func (e *Exprs) NewCompare(span source.Span, data ExprCompareData) ExprID {
	return e.new(ExprCompare, span, e.Compares.Allocate(data))
}

func (e *Exprs) Compare(id ExprID) (*ExprCompareData, bool) {
	p, ok := e.payload(id, ExprCompare)
	if !ok {
		return nil, false
	}
	return e.Compares.Get(p), true
}

func (e *Exprs) NewCall(span source.Span, fn ExprID, args []CallArg) ExprID {
	return e.new(ExprCall, span, e.Calls.Allocate(ExprCallData{Func: fn, Args: args}))
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	p, ok := e.payload(id, ExprCall)
	if !ok {
		return nil, false
	}
	return e.Calls.Get(p), true
}

func (e *Exprs) NewAttribute(span source.Span, value ExprID, attr source.StringID) ExprID {
	return e.new(ExprAttribute, span, e.Attributes.Allocate(ExprAttributeData{Value: value, Attr: attr}))
}

func (e *Exprs) Attribute(id ExprID) (*ExprAttributeData, bool) {
	p, ok := e.payload(id, ExprAttribute)
	if !ok {
		return nil, false
	}
	return e.Attributes.Get(p), true
}

func (e *Exprs) NewSubscript(span source.Span, value, index ExprID) ExprID {
	return e.new(ExprSubscript, span, e.Subscripts.Allocate(ExprSubscriptData{Value: value, Index: index}))
}

func (e *Exprs) Subscript(id ExprID) (*ExprSubscriptData, bool) {
	p, ok := e.payload(id, ExprSubscript)
	if !ok {
		return nil, false
	}
	return e.Subscripts.Get(p), true
}

func (e *Exprs) NewSlice(span source.Span, lower, upper, step ExprID) ExprID {
	return e.new(ExprSlice, span, e.Slices.Allocate(ExprSliceData{Lower: lower, Upper: upper, Step: step}))
}

func (e *Exprs) Slice(id ExprID) (*ExprSliceData, bool) {
	p, ok := e.payload(id, ExprSlice)
	if !ok {
		return nil, false
	}
	return e.Slices.Get(p), true
}

// NewSeq creates a tuple, list or set display.
func (e *Exprs) NewSeq(kind ExprKind, span source.Span, elts []ExprID) ExprID {
	switch kind {
	case ExprTuple, ExprList, ExprSet:
	default:
		panic("ast: NewSeq with kind " + kind.String())
	}
	return e.new(kind, span, e.Seqs.Allocate(ExprSeqData{Elts: elts}))
}

// Seq returns the elements of a tuple, list or set.
func (e *Exprs) Seq(id ExprID) (*ExprSeqData, bool) {
	p, ok := e.payload(id, ExprTuple, ExprList, ExprSet)
	if !ok {
		return nil, false
	}
	return e.Seqs.Get(p), true
}

func (e *Exprs) NewDict(span source.Span, entries []DictEntry) ExprID {
	return e.new(ExprDict, span, e.Dicts.Allocate(ExprDictData{Entries: entries}))
}

func (e *Exprs) Dict(id ExprID) (*ExprDictData, bool) {
	p, ok := e.payload(id, ExprDict)
	if !ok {
		return nil, false
	}
	return e.Dicts.Get(p), true
}

// NewWrap creates a starred, await, yield or yield-from expression.
func (e *Exprs) NewWrap(kind ExprKind, span source.Span, value ExprID) ExprID {
	switch kind {
	case ExprStarred, ExprAwait, ExprYield, ExprYieldFrom:
	default:
		panic("ast: NewWrap with kind " + kind.String())
	}
	return e.new(kind, span, e.Wraps.Allocate(ExprWrapData{Value: value}))
}

// Wrap returns the operand of a starred, await, yield or yield-from expression.
func (e *Exprs) Wrap(id ExprID) (*ExprWrapData, bool) {
	p, ok := e.payload(id, ExprStarred, ExprAwait, ExprYield, ExprYieldFrom)
	if !ok {
		return nil, false
	}
	return e.Wraps.Get(p), true
}

func (e *Exprs) NewLambda(span source.Span, params []Param, body ExprID) ExprID {
	return e.new(ExprLambda, span, e.Lambdas.Allocate(ExprLambdaData{Params: params, Body: body}))
}

func (e *Exprs) Lambda(id ExprID) (*ExprLambdaData, bool) {
	p, ok := e.payload(id, ExprLambda)
	if !ok {
		return nil, false
	}
	return e.Lambdas.Get(p), true
}

func (e *Exprs) NewTernary(span source.Span, test, body, orElse ExprID) ExprID {
	return e.new(ExprTernary, span, e.Ternaries.Allocate(ExprTernaryData{Test: test, Body: body, OrElse: orElse}))
}

func (e *Exprs) Ternary(id ExprID) (*ExprTernaryData, bool) {
	p, ok := e.payload(id, ExprTernary)
	if !ok {
		return nil, false
	}
	return e.Ternaries.Get(p), true
}

func (e *Exprs) NewNamed(span source.Span, target, value ExprID) ExprID {
	return e.new(ExprNamed, span, e.Named.Allocate(ExprNamedData{Target: target, Value: value}))
}

func (e *Exprs) NamedExpr(id ExprID) (*ExprNamedData, bool) {
	p, ok := e.payload(id, ExprNamed)
	if !ok {
		return nil, false
	}
	return e.Named.Get(p), true
}

func (e *Exprs) NewComp(span source.Span, data ExprCompData) ExprID {
	return e.new(ExprComp, span, e.Comps.Allocate(data))
}

func (e *Exprs) Comp(id ExprID) (*ExprCompData, bool) {
	p, ok := e.payload(id, ExprComp)
	if !ok {
		return nil, false
	}
	return e.Comps.Get(p), true
}
