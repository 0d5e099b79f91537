package ast

import (
	"pyrint/internal/source"
)

type StmtKind uint8

const (
	StmtExpr StmtKind = iota
	StmtAssign
	StmtAugAssign
	StmtAnnAssign
	StmtPass
	StmtBreak
	StmtContinue
	StmtReturn
	StmtRaise
	StmtGlobal
	StmtNonlocal
	StmtDel
	StmtAssert
	StmtImport
	StmtImportFrom
	StmtIf
	StmtWhile
	StmtFor
	StmtTry
	StmtWith
	StmtFuncDef
	StmtClassDef
)

var stmtKindNames = [...]string{
	StmtExpr:       "Expr",
	StmtAssign:     "Assign",
	StmtAugAssign:  "AugAssign",
	StmtAnnAssign:  "AnnAssign",
	StmtPass:       "Pass",
	StmtBreak:      "Break",
	StmtContinue:   "Continue",
	StmtReturn:     "Return",
	StmtRaise:      "Raise",
	StmtGlobal:     "Global",
	StmtNonlocal:   "Nonlocal",
	StmtDel:        "Del",
	StmtAssert:     "Assert",
	StmtImport:     "Import",
	StmtImportFrom: "ImportFrom",
	StmtIf:         "If",
	StmtWhile:      "While",
	StmtFor:        "For",
	StmtTry:        "Try",
	StmtWith:       "With",
	StmtFuncDef:    "FuncDef",
	StmtClassDef:   "ClassDef",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "Stmt(?)"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

// StmtExprData also backs 'return' (Value may be NoExprID).
type StmtExprData struct {
	Value ExprID
}

// StmtAssignData is 't1 = t2 = value'.
type StmtAssignData struct {
	Targets []ExprID
	Value   ExprID
}

type StmtAugAssignData struct {
	Target ExprID
	Op     BinaryOp
	Value  ExprID
}

type StmtAnnAssignData struct {
	Target     ExprID
	Annotation ExprID
	Value      ExprID
}

type StmtRaiseData struct {
	Exc   ExprID
	Cause ExprID
}

// NameRef is a name with its own span, as listed by global/nonlocal.
type NameRef struct {
	Name source.StringID
	Span source.Span
}

type StmtNamesData struct {
	Names []NameRef
}

type StmtDelData struct {
	Targets []ExprID
}

type StmtAssertData struct {
	Test ExprID
	Msg  ExprID
}

// ImportAlias is 'a.b.c as d'. AsName is NoStringID without 'as'.
type ImportAlias struct {
	Name   source.StringID
	AsName source.StringID
	Span   source.Span
}

type StmtImportData struct {
	Names []ImportAlias
}

type StmtImportFromData struct {
	Module source.StringID
	// Level counts leading dots.
	Level int
	Names []ImportAlias
	Star  bool
}

// StmtIfData models 'elif' as a nested If in Else.
type StmtIfData struct {
	Test ExprID
	Body []StmtID
	Else []StmtID
}

type StmtWhileData struct {
	Test ExprID
	Body []StmtID
	Else []StmtID
}

type StmtForData struct {
	Target ExprID
	Iter   ExprID
	Body   []StmtID
	Else   []StmtID
	Async  bool
}

type ExceptHandler struct {
	Type     ExprID
	Name     source.StringID
	NameSpan source.Span
	Body     []StmtID
	Span     source.Span
}

type StmtTryData struct {
	Body     []StmtID
	Handlers []ExceptHandler
	Else     []StmtID
	Finally  []StmtID
}

type WithItem struct {
	Context ExprID
	Target  ExprID
}

type StmtWithData struct {
	Items []WithItem
	Body  []StmtID
	Async bool
}

type StmtFuncDefData struct {
	Name       source.StringID
	NameSpan   source.Span
	Decorators []ExprID
	Params     []Param
	Returns    ExprID
	Body       []StmtID
	Async      bool
}

type StmtClassDefData struct {
	Name       source.StringID
	NameSpan   source.Span
	Decorators []ExprID
	Bases      []CallArg
	Body       []StmtID
}

type Stmts struct {
	Arena      *Arena[Stmt]
	Exprs      *Arena[StmtExprData]
	Assigns    *Arena[StmtAssignData]
	AugAssigns *Arena[StmtAugAssignData]
	AnnAssigns *Arena[StmtAnnAssignData]
	Raises     *Arena[StmtRaiseData]
	NameLists  *Arena[StmtNamesData]
	Dels       *Arena[StmtDelData]
	Asserts    *Arena[StmtAssertData]
	Imports    *Arena[StmtImportData]
	FromImps   *Arena[StmtImportFromData]
	Ifs        *Arena[StmtIfData]
	Whiles     *Arena[StmtWhileData]
	Fors       *Arena[StmtForData]
	Tries      *Arena[StmtTryData]
	Withs      *Arena[StmtWithData]
	Funcs      *Arena[StmtFuncDefData]
	Classes    *Arena[StmtClassDefData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/8 + 1
	return &Stmts{
		Arena:      NewArena[Stmt](capHint),
		Exprs:      NewArena[StmtExprData](capHint / 2),
		Assigns:    NewArena[StmtAssignData](capHint / 2),
		AugAssigns: NewArena[StmtAugAssignData](small),
		AnnAssigns: NewArena[StmtAnnAssignData](small),
		Raises:     NewArena[StmtRaiseData](small),
		NameLists:  NewArena[StmtNamesData](small),
		Dels:       NewArena[StmtDelData](small),
		Asserts:    NewArena[StmtAssertData](small),
		Imports:    NewArena[StmtImportData](small),
		FromImps:   NewArena[StmtImportFromData](small),
		Ifs:        NewArena[StmtIfData](small),
		Whiles:     NewArena[StmtWhileData](small),
		Fors:       NewArena[StmtForData](small),
		Tries:      NewArena[StmtTryData](small),
		Withs:      NewArena[StmtWithData](small),
		Funcs:      NewArena[StmtFuncDefData](small),
		Classes:    NewArena[StmtClassDefData](small),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) payload(id StmtID, kinds ...StmtKind) (uint32, bool) {
	st := s.Get(id)
	if st == nil {
		return 0, false
	}
	for _, k := range kinds {
		if st.Kind == k {
			return uint32(st.Payload), true
		}
	}
	return 0, false
}

// NewSimple creates a payload-free statement: pass, break or continue.
func (s *Stmts) NewSimple(kind StmtKind, span source.Span) StmtID {
	return s.new(kind, span, 0)
}

func (s *Stmts) NewExpr(span source.Span, value ExprID) StmtID {
	return s.new(StmtExpr, span, s.Exprs.Allocate(StmtExprData{Value: value}))
}

func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	return s.new(StmtReturn, span, s.Exprs.Allocate(StmtExprData{Value: value}))
}

// ExprValue returns the payload of an expression statement or a return.
func (s *Stmts) ExprValue(id StmtID) (*StmtExprData, bool) {
	p, ok := s.payload(id, StmtExpr, StmtReturn)
	if !ok {
		return nil, false
	}
	return s.Exprs.Get(p), true
}

func (s *Stmts) NewAssign(span source.Span, targets []ExprID, value ExprID) StmtID {
	return s.new(StmtAssign, span, s.Assigns.Allocate(StmtAssignData{Targets: targets, Value: value}))
}

func (s *Stmts) Assign(id StmtID) (*StmtAssignData, bool) {
	p, ok := s.payload(id, StmtAssign)
	if !ok {
		return nil, false
	}
	return s.Assigns.Get(p), true
}

func (s *Stmts) NewAugAssign(span source.Span, target ExprID, op BinaryOp, value ExprID) StmtID {
	return s.new(StmtAugAssign, span, s.AugAssigns.Allocate(StmtAugAssignData{Target: target, Op: op, Value: value}))
}

func (s *Stmts) AugAssign(id StmtID) (*StmtAugAssignData, bool) {
	p, ok := s.payload(id, StmtAugAssign)
	if !ok {
		return nil, false
	}
	return s.AugAssigns.Get(p), true
}

func (s *Stmts) NewAnnAssign(span source.Span, target, annotation, value ExprID) StmtID {
	return s.new(StmtAnnAssign, span, s.AnnAssigns.Allocate(StmtAnnAssignData{Target: target, Annotation: annotation, Value: value}))
}

func (s *Stmts) AnnAssign(id StmtID) (*StmtAnnAssignData, bool) {
	p, ok := s.payload(id, StmtAnnAssign)
	if !ok {
		return nil, false
	}
	return s.AnnAssigns.Get(p), true
}

func (s *Stmts) NewRaise(span source.Span, exc, cause ExprID) StmtID {
	return s.new(StmtRaise, span, s.Raises.Allocate(StmtRaiseData{Exc: exc, Cause: cause}))
}

func (s *Stmts) Raise(id StmtID) (*StmtRaiseData, bool) {
	p, ok := s.payload(id, StmtRaise)
	if !ok {
		return nil, false
	}
	return s.Raises.Get(p), true
}

// NewNames creates a global or nonlocal statement.
func (s *Stmts) NewNames(kind StmtKind, span source.Span, names []NameRef) StmtID {
	if kind != StmtGlobal && kind != StmtNonlocal {
		panic("ast: NewNames with kind " + kind.String())
	}
	return s.new(kind, span, s.NameLists.Allocate(StmtNamesData{Names: names}))
}

func (s *Stmts) NameList(id StmtID) (*StmtNamesData, bool) {
	p, ok := s.payload(id, StmtGlobal, StmtNonlocal)
	if !ok {
		return nil, false
	}
	return s.NameLists.Get(p), true
}

func (s *Stmts) NewDel(span source.Span, targets []ExprID) StmtID {
	return s.new(StmtDel, span, s.Dels.Allocate(StmtDelData{Targets: targets}))
}

func (s *Stmts) Del(id StmtID) (*StmtDelData, bool) {
	p, ok := s.payload(id, StmtDel)
	if !ok {
		return nil, false
	}
	return s.Dels.Get(p), true
}

func (s *Stmts) NewAssert(span source.Span, test, msg ExprID) StmtID {
	return s.new(StmtAssert, span, s.Asserts.Allocate(StmtAssertData{Test: test, Msg: msg}))
}

func (s *Stmts) Assert(id StmtID) (*StmtAssertData, bool) {
	p, ok := s.payload(id, StmtAssert)
	if !ok {
		return nil, false
	}
	return s.Asserts.Get(p), true
}

func (s *Stmts) NewImport(span source.Span, names []ImportAlias) StmtID {
	return s.new(StmtImport, span, s.Imports.Allocate(StmtImportData{Names: names}))
}

func (s *Stmts) Import(id StmtID) (*StmtImportData, bool) {
	p, ok := s.payload(id, StmtImport)
	if !ok {
		return nil, false
	}
	return s.Imports.Get(p), true
}

func (s *Stmts) NewImportFrom(span source.Span, data StmtImportFromData) StmtID {
	return s.new(StmtImportFrom, span, s.FromImps.Allocate(data))
}

func (s *Stmts) ImportFrom(id StmtID) (*StmtImportFromData, bool) {
	p, ok := s.payload(id, StmtImportFrom)
	if !ok {
		return nil, false
	}
	return s.FromImps.Get(p), true
}

func (s *Stmts) NewIf(span source.Span, test ExprID, body, orElse []StmtID) StmtID {
	return s.new(StmtIf, span, s.Ifs.Allocate(StmtIfData{Test: test, Body: body, Else: orElse}))
}

func (s *Stmts) If(id StmtID) (*StmtIfData, bool) {
	p, ok := s.payload(id, StmtIf)
	if !ok {
		return nil, false
	}
	return s.Ifs.Get(p), true
}

func (s *Stmts) NewWhile(span source.Span, test ExprID, body, orElse []StmtID) StmtID {
	return s.new(StmtWhile, span, s.Whiles.Allocate(StmtWhileData{Test: test, Body: body, Else: orElse}))
}

func (s *Stmts) While(id StmtID) (*StmtWhileData, bool) {
	p, ok := s.payload(id, StmtWhile)
	if !ok {
		return nil, false
	}
	return s.Whiles.Get(p), true
}

func (s *Stmts) NewFor(span source.Span, data StmtForData) StmtID {
	return s.new(StmtFor, span, s.Fors.Allocate(data))
}

func (s *Stmts) For(id StmtID) (*StmtForData, bool) {
	p, ok := s.payload(id, StmtFor)
	if !ok {
		return nil, false
	}
	return s.Fors.Get(p), true
}

func (s *Stmts) NewTry(span source.Span, data StmtTryData) StmtID {
	return s.new(StmtTry, span, s.Tries.Allocate(data))
}

func (s *Stmts) Try(id StmtID) (*StmtTryData, bool) {
	p, ok := s.payload(id, StmtTry)
	if !ok {
		return nil, false
	}
	return s.Tries.Get(p), true
}

func (s *Stmts) NewWith(span source.Span, data StmtWithData) StmtID {
	return s.new(StmtWith, span, s.Withs.Allocate(data))
}

func (s *Stmts) With(id StmtID) (*StmtWithData, bool) {
	p, ok := s.payload(id, StmtWith)
	if !ok {
		return nil, false
	}
	return s.Withs.Get(p), true
}

func (s *Stmts) NewFuncDef(span source.Span, data StmtFuncDefData) StmtID {
	return s.new(StmtFuncDef, span, s.Funcs.Allocate(data))
}

func (s *Stmts) FuncDef(id StmtID) (*StmtFuncDefData, bool) {
	p, ok := s.payload(id, StmtFuncDef)
	if !ok {
		return nil, false
	}
	return s.Funcs.Get(p), true
}

func (s *Stmts) NewClassDef(span source.Span, data StmtClassDefData) StmtID {
	return s.new(StmtClassDef, span, s.Classes.Allocate(data))
}

func (s *Stmts) ClassDef(id StmtID) (*StmtClassDefData, bool) {
	p, ok := s.payload(id, StmtClassDef)
	if !ok {
		return nil, false
	}
	return s.Classes.Get(p), true
}
