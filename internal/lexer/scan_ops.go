package lexer

import (
	"fmt"

	"pyrint/internal/token"
)

// compoundOps is ordered longest first so matching is greedy.
var compoundOps = []struct {
	text string
	kind token.Kind
}{
	{"**=", token.StarStarAssign},
	{"//=", token.SlashSlashAssign},
	{">>=", token.ShrAssign},
	{"<<=", token.ShlAssign},
	{"...", token.Ellipsis},
	{"**", token.StarStar},
	{"//", token.SlashSlash},
	{"<<", token.Shl},
	{">>", token.Shr},
	{"<=", token.LtEq},
	{">=", token.GtEq},
	{"==", token.EqEq},
	{"!=", token.BangEq},
	{"<>", token.LtGt},
	{"->", token.Arrow},
	{":=", token.ColonAssign},
	{"+=", token.PlusAssign},
	{"-=", token.MinusAssign},
	{"*=", token.StarAssign},
	{"/=", token.SlashAssign},
	{"%=", token.PercentAssign},
	{"@=", token.AtAssign},
	{"&=", token.AmpAssign},
	{"|=", token.PipeAssign},
	{"^=", token.CaretAssign},
}

var singleOps = map[byte]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'@': token.At,
	'&': token.Amp,
	'|': token.Pipe,
	'^': token.Caret,
	'~': token.Tilde,
	'<': token.Lt,
	'>': token.Gt,
	'=': token.Assign,
	':': token.Colon,
	';': token.Semicolon,
	',': token.Comma,
	'.': token.Dot,
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
	}

	for _, op := range compoundOps {
		if lx.accept(op.text) {
			return emit(op.kind)
		}
	}

	ch := lx.cursor.Bump()
	if k, ok := singleOps[ch]; ok {
		return emit(k)
	}
	switch ch {
	case '(', '[', '{':
		lx.brackets = append(lx.brackets, openBracket{ch: ch, off: uint32(start)})
		return emit(openKind(ch))
	case ')', ']', '}':
		return lx.closeBracket(start, ch, emit)
	default:
		lx.cursor.Reset(start)
		r, _ := lx.peekRune()
		lx.bumpRune()
		sp := lx.cursor.SpanFrom(start)
		return lx.fail(KindUnknownChar, sp, fmt.Sprintf("invalid character '%c' (U+%04X)", r, r))
	}
}

func (lx *Lexer) closeBracket(start Mark, ch byte, emit func(token.Kind) token.Token) token.Token {
	if len(lx.brackets) == 0 {
		return lx.fail(KindBadBracket, lx.cursor.SpanFrom(start), fmt.Sprintf("unmatched '%c'", ch))
	}
	open := lx.brackets[len(lx.brackets)-1].ch
	if matching(open) != ch {
		return lx.fail(KindBadBracket, lx.cursor.SpanFrom(start),
			fmt.Sprintf("closing parenthesis '%c' does not match opening parenthesis '%c'", ch, open))
	}
	lx.brackets = lx.brackets[:len(lx.brackets)-1]
	switch ch {
	case ')':
		return emit(token.RParen)
	case ']':
		return emit(token.RBracket)
	default:
		return emit(token.RBrace)
	}
}

func openKind(ch byte) token.Kind {
	switch ch {
	case '(':
		return token.LParen
	case '[':
		return token.LBracket
	default:
		return token.LBrace
	}
}

func matching(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	default:
		return '}'
	}
}
