package lexer

import (
	"pyrint/internal/source"
	"pyrint/internal/token"
)

// Reporter is a thin sink so the lexer does not depend on diag.
// The lexer only calls it; formatting is up to the caller.
type Reporter interface {
	Report(kind string, span source.Span, msg string)
}

type Options struct {
	Reporter Reporter // may be nil
	// TabSize is the column multiple a tab advances to. Zero means 8.
	TabSize int
}

// Error is the first lexical error met in a file.
type Error struct {
	Kind string
	Span source.Span
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// Error kinds passed to Reporter.
const (
	KindUnterminatedString = "UnterminatedString"
	KindUnknownChar        = "UnknownChar"
	KindBadDedent          = "BadDedent"
	KindBadContinuation    = "BadContinuation"
	KindBadBracket         = "BadBracket"
	KindBadNumber          = "BadNumber"
	KindUnexpectedEOF      = "UnexpectedEOF"
)

func (lx *Lexer) report(kind string, sp source.Span, msg string) {
	if lx.err == nil {
		lx.err = &Error{Kind: kind, Span: sp, Msg: msg}
	}
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(kind, sp, msg)
	}
}

// fail reports and returns the Invalid token covering sp.
func (lx *Lexer) fail(kind string, sp source.Span, msg string) token.Token {
	lx.report(kind, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
