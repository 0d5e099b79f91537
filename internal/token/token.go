package token

import (
	"pyrint/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a numeric or string literal.
// True, False and None are keywords, not literals.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, ImagLit, StringLit, BytesLit, FStringLit:
		return true
	default:
		return false
	}
}

// IsString reports whether the token is any kind of string literal.
func (t Token) IsString() bool {
	return t.Kind == StringLit || t.Kind == BytesLit || t.Kind == FStringLit
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= Plus && t.Kind < kindCount
}

// IsAugAssign reports whether the token is an augmented assignment operator.
func (t Token) IsAugAssign() bool {
	return t.Kind >= PlusAssign && t.Kind <= StarStarAssign
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwFalse && t.Kind <= KwYield
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsLayout reports whether the token is one of the synthetic layout tokens.
func (t Token) IsLayout() bool {
	return t.Kind == Newline || t.Kind == Indent || t.Kind == Dedent
}
