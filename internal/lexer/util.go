package lexer

import (
	"unicode"
	"unicode/utf8"

	"pyrint/internal/source"
)

// peekRune decodes the rune at the cursor; size is 0 at EOF.
func (lx *Lexer) peekRune() (r rune, size int) {
	rest := lx.cursor.Rest()
	switch {
	case len(rest) == 0:
		return utf8.RuneError, 0
	case rest[0] < utf8.RuneSelf:
		return rune(rest[0]), 1
	}
	return utf8.DecodeRune(rest)
}

func (lx *Lexer) bumpRune() {
	_, size := lx.peekRune()
	lx.cursor.Skip(size)
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

// accept consumes op when the input starts with it.
func (lx *Lexer) accept(op string) bool {
	if !lx.cursor.HasPrefix(op) {
		return false
	}
	lx.cursor.Skip(len(op))
	return true
}

func isIdentStartByte(b byte) bool {
	return b == '_' || 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

// Identifier classes for non-ASCII runes, after PEP 3131.
var (
	identStart    = []*unicode.RangeTable{unicode.L, unicode.Nl, unicode.Other_ID_Start}
	identContinue = []*unicode.RangeTable{unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Other_ID_Continue}
)

func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsOneOf(identStart, r)
}

func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.IsOneOf(identContinue, r)
}

func isDec(b byte) bool { return '0' <= b && b <= '9' }

func isHex(b byte) bool {
	return isDec(b) || 'a' <= b && b <= 'f' || 'A' <= b && b <= 'F'
}

func isOct(b byte) bool { return '0' <= b && b <= '7' }

func isBin(b byte) bool { return b == '0' || b == '1' }
