package ast

import (
	"pyrint/internal/source"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	// ExprName is a bare identifier.
	ExprName ExprKind = iota
	// ExprLit is a number, string, True/False/None or '...'.
	ExprLit
	ExprUnary
	ExprBinary
	// ExprBoolOp is 'and' / 'or'.
	ExprBoolOp
	// ExprCompare is a possibly chained comparison.
	ExprCompare
	ExprCall
	ExprAttribute
	ExprSubscript
	ExprSlice
	ExprTuple
	ExprList
	ExprSet
	ExprDict
	ExprStarred
	ExprLambda
	// ExprTernary is 'a if cond else b'.
	ExprTernary
	// ExprNamed is the walrus 'name := value'.
	ExprNamed
	ExprYield
	ExprYieldFrom
	ExprAwait
	// ExprComp is a list/set/dict comprehension or a generator expression.
	ExprComp
)

var exprKindNames = [...]string{
	ExprName:      "Name",
	ExprLit:       "Lit",
	ExprUnary:     "Unary",
	ExprBinary:    "Binary",
	ExprBoolOp:    "BoolOp",
	ExprCompare:   "Compare",
	ExprCall:      "Call",
	ExprAttribute: "Attribute",
	ExprSubscript: "Subscript",
	ExprSlice:     "Slice",
	ExprTuple:     "Tuple",
	ExprList:      "List",
	ExprSet:       "Set",
	ExprDict:      "Dict",
	ExprStarred:   "Starred",
	ExprLambda:    "Lambda",
	ExprTernary:   "Ternary",
	ExprNamed:     "Named",
	ExprYield:     "Yield",
	ExprYieldFrom: "YieldFrom",
	ExprAwait:     "Await",
	ExprComp:      "Comp",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "Expr(?)"
}

// Expr represents an expression node in the AST.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// LitKind distinguishes literal expressions.
type LitKind uint8

const (
	LitInt LitKind = iota
	LitFloat
	LitImag
	LitString
	LitBytes
	LitFString
	LitTrue
	LitFalse
	LitNone
	LitEllipsis
)

// BinaryOp enumerates arithmetic and bitwise operators.
type BinaryOp uint8

const (
	BinaryAdd BinaryOp = iota
	BinarySub
	BinaryMul
	BinaryMatMul
	BinaryDiv
	BinaryFloorDiv
	BinaryMod
	BinaryPow
	BinaryShl
	BinaryShr
	BinaryBitAnd
	BinaryBitOr
	BinaryBitXor
	// BinaryAnd and BinaryOr are only used by ExprBoolOp.
	BinaryAnd
	BinaryOr
)

var binaryOpNames = [...]string{
	BinaryAdd: "+", BinarySub: "-", BinaryMul: "*", BinaryMatMul: "@",
	BinaryDiv: "/", BinaryFloorDiv: "//", BinaryMod: "%", BinaryPow: "**",
	BinaryShl: "<<", BinaryShr: ">>", BinaryBitAnd: "&", BinaryBitOr: "|",
	BinaryBitXor: "^", BinaryAnd: "and", BinaryOr: "or",
}

// String returns the symbol representation of a binary operator.
func (op BinaryOp) String() string {
	if int(op) < len(binaryOpNames) {
		return binaryOpNames[op]
	}
	return "?"
}

type UnaryOp uint8

const (
	UnaryPos UnaryOp = iota
	UnaryNeg
	UnaryInvert
	UnaryNot
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryPos:
		return "+"
	case UnaryNeg:
		return "-"
	case UnaryInvert:
		return "~"
	case UnaryNot:
		return "not"
	default:
		return "?"
	}
}

type CompareOp uint8

const (
	CmpEq CompareOp = iota
	CmpNotEq
	// CmpLtGt is the legacy '<>' spelling; it parses but is reported.
	CmpLtGt
	CmpLt
	CmpLtEq
	CmpGt
	CmpGtEq
	CmpIn
	CmpNotIn
	CmpIs
	CmpIsNot
)

var compareOpNames = [...]string{
	CmpEq: "==", CmpNotEq: "!=", CmpLtGt: "<>", CmpLt: "<", CmpLtEq: "<=",
	CmpGt: ">", CmpGtEq: ">=", CmpIn: "in", CmpNotIn: "not in", CmpIs: "is", CmpIsNot: "is not",
}

func (op CompareOp) String() string {
	if int(op) < len(compareOpNames) {
		return compareOpNames[op]
	}
	return "?"
}

// ExprNameData holds identifier expression details.
type ExprNameData struct {
	Name source.StringID
}

// ExprLitData holds literal expression details.
type ExprLitData struct {
	Kind LitKind
	// Value is the literal text. For strings the prefix and quotes are stripped
	// and adjacent pieces are concatenated; escapes are kept as written.
	Value source.StringID
}

type ExprUnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

type ExprBinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

type ExprCompareData struct {
	Left        ExprID
	Ops         []CompareOp
	OpSpans     []source.Span
	Comparators []ExprID
}

// ArgKind classifies call arguments.
type ArgKind uint8

const (
	ArgPositional ArgKind = iota
	ArgKeyword
	// ArgStar is '*iterable'.
	ArgStar
	// ArgDoubleStar is '**mapping'.
	ArgDoubleStar
)

// CallArg is one call argument; Name is set for keyword arguments.
type CallArg struct {
	Kind  ArgKind
	Name  source.StringID
	Value ExprID
}

type ExprCallData struct {
	Func ExprID
	Args []CallArg
}

type ExprAttributeData struct {
	Value ExprID
	Attr  source.StringID
}

type ExprSubscriptData struct {
	Value ExprID
	Index ExprID
}

type ExprSliceData struct {
	Lower ExprID
	Upper ExprID
	Step  ExprID
}

// ExprSeqData backs tuples, lists and sets.
type ExprSeqData struct {
	Elts []ExprID
}

// DictEntry has Key == NoExprID for a '**mapping' unpacking.
type DictEntry struct {
	Key   ExprID
	Value ExprID
}

type ExprDictData struct {
	Entries []DictEntry
}

// ExprWrapData backs expressions with one operand: starred, await, yield, yield from.
// Value may be NoExprID for a bare 'yield'.
type ExprWrapData struct {
	Value ExprID
}

type ExprLambdaData struct {
	Params []Param
	Body   ExprID
}

type ExprTernaryData struct {
	Test   ExprID
	Body   ExprID
	OrElse ExprID
}

type ExprNamedData struct {
	Target ExprID
	Value  ExprID
}

type CompKind uint8

const (
	CompList CompKind = iota
	CompSet
	CompDict
	CompGenerator
)

// Comprehension is one 'for target in iter if cond...' clause.
type Comprehension struct {
	Target ExprID
	Iter   ExprID
	Ifs    []ExprID
	Async  bool
}

type ExprCompData struct {
	Kind CompKind
	// Elt is the element, or the key for a dict comprehension.
	Elt        ExprID
	Value      ExprID
	Generators []Comprehension
}

// ParamKind classifies function parameters.
type ParamKind uint8

const (
	ParamPositional ParamKind = iota
	// ParamPosOnly precedes a '/' marker.
	ParamPosOnly
	// ParamVarArgs is '*args'.
	ParamVarArgs
	// ParamKwOnly follows '*' or '*args'.
	ParamKwOnly
	// ParamKwArgs is '**kwargs'.
	ParamKwArgs
)

type Param struct {
	Kind       ParamKind
	Name       source.StringID
	Span       source.Span
	Annotation ExprID
	Default    ExprID
}
