package lexer

import (
	"strings"

	"pyrint/internal/token"
)

// scanString scans a quoted literal starting at the quote under the cursor.
// start marks the beginning of the prefix, if any. Escapes are skipped, not decoded;
// a backslash also protects the following quote inside raw strings.
func (lx *Lexer) scanString(start Mark, prefix string) token.Token {
	kind := token.StringLit
	lower := strings.ToLower(prefix)
	switch {
	case strings.Contains(lower, "b"):
		kind = token.BytesLit
	case strings.Contains(lower, "f"):
		kind = token.FStringLit
	}

	q := lx.cursor.Bump()
	triple := false
	if lx.cursor.At(0) == q && lx.cursor.At(1) == q {
		lx.cursor.Skip(2)
		triple = true
	}

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '\\':
			lx.cursor.Bump()
			lx.cursor.Bump()
			continue
		case b == q && !triple:
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
		case b == q && lx.accept(string([]byte{q, q, q})):
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
		case b == '\n' && !triple:
			sp := lx.cursor.SpanFrom(start)
			return lx.fail(KindUnterminatedString, sp, "unterminated string literal")
		}
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	if triple {
		return lx.fail(KindUnterminatedString, sp, "unterminated triple-quoted string literal")
	}
	return lx.fail(KindUnterminatedString, sp, "unterminated string literal")
}
