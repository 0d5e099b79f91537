package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Newline terminates a logical line.
	Newline
	// Indent opens a block one level deeper than the enclosing one.
	Indent
	// Dedent closes one indentation level.
	Dedent

	// Ident represents an identifier token.
	Ident

	// KwFalse represents the 'False' keyword.
	KwFalse
	// KwNone represents the 'None' keyword.
	KwNone
	// KwTrue represents the 'True' keyword.
	KwTrue
	KwAnd      // and
	KwAs       // as
	KwAssert   // assert
	KwAsync    // async
	KwAwait    // await
	KwBreak    // break
	KwClass    // class
	KwContinue // continue
	KwDef      // def
	KwDel      // del
	KwElif     // elif
	KwElse     // else
	KwExcept   // except
	KwFinally  // finally
	KwFor      // for
	KwFrom     // from
	KwGlobal   // global
	KwIf       // if
	KwImport   // import
	KwIn       // in
	KwIs       // is
	KwLambda   // lambda
	KwNonlocal // nonlocal
	KwNot      // not
	KwOr       // or
	KwPass     // pass
	KwRaise    // raise
	KwReturn   // return
	KwTry      // try
	KwWhile    // while
	KwWith     // with
	KwYield    // yield

	// IntLit is a decimal, hex, octal or binary integer literal.
	IntLit
	// FloatLit is a floating point literal.
	FloatLit
	// ImagLit is a number with the 'j' suffix.
	ImagLit
	// StringLit is a string literal, optionally prefixed with r or u.
	StringLit
	// BytesLit is a string literal with a b prefix.
	BytesLit
	// FStringLit is an f-string; its replacement fields are not parsed.
	FStringLit

	Plus             // +
	Minus            // -
	Star             // *
	StarStar         // **
	Slash            // /
	SlashSlash       // //
	Percent          // %
	At               // @
	Shl              // <<
	Shr              // >>
	Amp              // &
	Pipe             // |
	Caret            // ^
	Tilde            // ~
	ColonAssign      // :=
	Lt               // <
	Gt               // >
	LtEq             // <=
	GtEq             // >=
	EqEq             // ==
	BangEq           // !=
	LtGt             // <>
	LParen           // (
	RParen           // )
	LBracket         // [
	RBracket         // ]
	LBrace           // {
	RBrace           // }
	Comma            // ,
	Colon            // :
	Dot              // .
	Ellipsis         // ...
	Semicolon        // ;
	Assign           // =
	Arrow            // ->
	PlusAssign       // +=
	MinusAssign      // -=
	StarAssign       // *=
	SlashAssign      // /=
	SlashSlashAssign // //=
	PercentAssign    // %=
	AtAssign         // @=
	AmpAssign        // &=
	PipeAssign       // |=
	CaretAssign      // ^=
	ShrAssign        // >>=
	ShlAssign        // <<=
	StarStarAssign   // **=

	kindCount
)

var kindNames = [...]string{
	Invalid:          "INVALID",
	EOF:              "EOF",
	Newline:          "NEWLINE",
	Indent:           "INDENT",
	Dedent:           "DEDENT",
	Ident:            "IDENT",
	KwFalse:          "False",
	KwNone:           "None",
	KwTrue:           "True",
	KwAnd:            "and",
	KwAs:             "as",
	KwAssert:         "assert",
	KwAsync:          "async",
	KwAwait:          "await",
	KwBreak:          "break",
	KwClass:          "class",
	KwContinue:       "continue",
	KwDef:            "def",
	KwDel:            "del",
	KwElif:           "elif",
	KwElse:           "else",
	KwExcept:         "except",
	KwFinally:        "finally",
	KwFor:            "for",
	KwFrom:           "from",
	KwGlobal:         "global",
	KwIf:             "if",
	KwImport:         "import",
	KwIn:             "in",
	KwIs:             "is",
	KwLambda:         "lambda",
	KwNonlocal:       "nonlocal",
	KwNot:            "not",
	KwOr:             "or",
	KwPass:           "pass",
	KwRaise:          "raise",
	KwReturn:         "return",
	KwTry:            "try",
	KwWhile:          "while",
	KwWith:           "with",
	KwYield:          "yield",
	IntLit:           "INT",
	FloatLit:         "FLOAT",
	ImagLit:          "IMAG",
	StringLit:        "STRING",
	BytesLit:         "BYTES",
	FStringLit:       "FSTRING",
	Plus:             "+",
	Minus:            "-",
	Star:             "*",
	StarStar:         "**",
	Slash:            "/",
	SlashSlash:       "//",
	Percent:          "%",
	At:               "@",
	Shl:              "<<",
	Shr:              ">>",
	Amp:              "&",
	Pipe:             "|",
	Caret:            "^",
	Tilde:            "~",
	ColonAssign:      ":=",
	Lt:               "<",
	Gt:               ">",
	LtEq:             "<=",
	GtEq:             ">=",
	EqEq:             "==",
	BangEq:           "!=",
	LtGt:             "<>",
	LParen:           "(",
	RParen:           ")",
	LBracket:         "[",
	RBracket:         "]",
	LBrace:           "{",
	RBrace:           "}",
	Comma:            ",",
	Colon:            ":",
	Dot:              ".",
	Ellipsis:         "...",
	Semicolon:        ";",
	Assign:           "=",
	Arrow:            "->",
	PlusAssign:       "+=",
	MinusAssign:      "-=",
	StarAssign:       "*=",
	SlashAssign:      "/=",
	SlashSlashAssign: "//=",
	PercentAssign:    "%=",
	AtAssign:         "@=",
	AmpAssign:        "&=",
	PipeAssign:       "|=",
	CaretAssign:      "^=",
	ShrAssign:        ">>=",
	ShlAssign:        "<<=",
	StarStarAssign:   "**=",
}

// String returns the keyword or operator spelling, or an upper-case class name.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}
