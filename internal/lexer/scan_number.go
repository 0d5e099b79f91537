package lexer

import (
	"pyrint/internal/token"
)

// scanNumber accepts 0b/0o/0x integers, decimal integers, floats with optional
// exponent, and the imaginary suffix j. Underscores are allowed between digits.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	digits := func(ok func(byte) bool) int {
		n := 0
		for {
			b := lx.cursor.Peek()
			if ok(b) {
				n++
				lx.cursor.Bump()
				continue
			}
			if b == '_' {
				if ok(lx.cursor.At(1)) {
					lx.cursor.Bump()
					continue
				}
			}
			return n
		}
	}
	bad := func(msg string) token.Token {
		return lx.fail(KindBadNumber, lx.cursor.SpanFrom(start), msg)
	}

	if lx.cursor.Peek() == '0' {
		if base, ok := radixes[lx.cursor.At(1)|0x20]; ok {
			lx.cursor.Skip(2)
			lx.cursor.Eat('_')
			if digits(base.digit) == 0 {
				return bad("invalid " + base.name + " literal")
			}
			if b := lx.cursor.Peek(); isDec(b) {
				return bad("invalid digit '" + string(b) + "' in " + base.name + " literal")
			}
			return lx.emitNumber(start, kind)
		}
	}

	intDigits := digits(isDec)
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		kind = token.FloatLit
		digits(isDec)
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		save := lx.cursor.Mark()
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if digits(isDec) == 0 {
			// "1else": the 'e' starts the next token
			lx.cursor.Reset(save)
		} else {
			kind = token.FloatLit
		}
	}
	if b := lx.cursor.Peek(); b == 'j' || b == 'J' {
		lx.cursor.Bump()
		return lx.emitNumber(start, token.ImagLit)
	}
	if kind == token.IntLit && intDigits > 1 {
		text := lx.file.Content[uint32(start):lx.cursor.Off]
		if text[0] == '0' && !allZeros(text) {
			return bad("leading zeros in decimal integer literals are not permitted")
		}
	}
	return lx.emitNumber(start, kind)
}

// radixes is keyed by the lowercased letter after a leading 0.
var radixes = map[byte]struct {
	name  string
	digit func(byte) bool
}{
	'x': {"hexadecimal", isHex},
	'o': {"octal", isOct},
	'b': {"binary", isBin},
}

func (lx *Lexer) emitNumber(start Mark, kind token.Kind) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func allZeros(b []byte) bool {
	for _, c := range b {
		if c != '0' && c != '_' {
			return false
		}
	}
	return true
}
