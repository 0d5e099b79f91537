package lexer_test

import (
	"slices"
	"testing"

	"pyrint/internal/lexer"
	"pyrint/internal/source"
	"pyrint/internal/token"
)

type reported struct {
	kind string
	span source.Span
	msg  string
}

// testReporter collects everything the lexer reports.
type testReporter struct {
	items []reported
}

func (r *testReporter) Report(kind string, span source.Span, msg string) {
	r.items = append(r.items, reported{kind, span, msg})
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.py", []byte(input))
	rep := &testReporter{}
	return lexer.New(fs.Get(fileID), lexer.Options{Reporter: rep}), rep
}

func collectAllTokens(lx *lexer.Lexer) []token.Token {
	var tokens []token.Token
	for range 10000 {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF || tok.Kind == token.Invalid {
			break
		}
	}
	return tokens
}

func kindsOf(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func expectKinds(t *testing.T, src string, want ...token.Kind) []token.Token {
	t.Helper()
	lx, rep := makeTestLexer(src)
	toks := collectAllTokens(lx)
	if len(rep.items) != 0 {
		t.Fatalf("unexpected lexer errors for %q: %+v", src, rep.items)
	}
	if got := kindsOf(toks); !slices.Equal(got, want) {
		t.Fatalf("kinds for %q:\n got %v\nwant %v", src, got, want)
	}
	return toks
}

const (
	NL  = token.Newline
	IN  = token.Indent
	DE  = token.Dedent
	ID  = token.Ident
	EOF = token.EOF
)

func TestIndentDedent(t *testing.T) {
	expectKinds(t, "def f():\n    return 1\n",
		token.KwDef, ID, token.LParen, token.RParen, token.Colon, NL,
		IN, token.KwReturn, token.IntLit, NL,
		DE, EOF)
}

func TestMultipleDedents(t *testing.T) {
	expectKinds(t, "if a:\n  if b:\n    x\ny\n",
		token.KwIf, ID, token.Colon, NL,
		IN, token.KwIf, ID, token.Colon, NL,
		IN, ID, NL,
		DE, DE, ID, NL, EOF)
}

func TestBlankLinesAndComments(t *testing.T) {
	expectKinds(t, "x = 1  # trailing\n\n      # indented comment\n\ny\n",
		ID, token.Assign, token.IntLit, NL, ID, NL, EOF)
}

func TestCommentOnlyFile(t *testing.T) {
	expectKinds(t, "# nothing here\n\n", EOF)
	expectKinds(t, "", EOF)
}

func TestBracketsJoinLines(t *testing.T) {
	expectKinds(t, "f(a,\n      b)\nz\n",
		ID, token.LParen, ID, token.Comma, ID, token.RParen, NL, ID, NL, EOF)
}

func TestBackslashContinuation(t *testing.T) {
	expectKinds(t, "x = 1 + \\\n        2\n",
		ID, token.Assign, token.IntLit, token.Plus, token.IntLit, NL, EOF)
}

func TestMissingFinalNewline(t *testing.T) {
	expectKinds(t, "x", ID, NL, EOF)
	expectKinds(t, "if x:\n  y", token.KwIf, ID, token.Colon, NL, IN, ID, NL, DE, EOF)
}

func TestTabsAdvanceToMultipleOfEight(t *testing.T) {
	expectKinds(t, "if x:\n\ty\n        z\n",
		token.KwIf, ID, token.Colon, NL, IN, ID, NL, ID, NL, DE, EOF)
}

func TestInconsistentDedent(t *testing.T) {
	lx, rep := makeTestLexer("if x:\n    y\n  z\n")
	toks := collectAllTokens(lx)
	last := toks[len(toks)-1]
	if last.Kind != token.Invalid {
		t.Fatalf("expected Invalid token, got %v", kindsOf(toks))
	}
	if len(rep.items) != 1 || rep.items[0].kind != lexer.KindBadDedent {
		t.Fatalf("reports = %+v", rep.items)
	}
	if err := lx.Err(); err == nil || err.Msg != "unindent does not match any outer indentation level" {
		t.Fatalf("Err() = %v", err)
	}
	if next := lx.Next(); next.Kind != token.EOF {
		t.Fatalf("after an error the lexer must return EOF, got %v", next.Kind)
	}
}

func TestStrings(t *testing.T) {
	toks := expectKinds(t, "s = \"\"\"a\n'b'\"\"\"\nt = rb'x\\''\nu = f\"{x}\"\nv = 'it\\'s'\nw = Rb\"\" + U'x'\n",
		ID, token.Assign, token.StringLit, NL,
		ID, token.Assign, token.BytesLit, NL,
		ID, token.Assign, token.FStringLit, NL,
		ID, token.Assign, token.StringLit, NL,
		ID, token.Assign, token.BytesLit, token.Plus, token.StringLit, NL,
		EOF)
	if toks[2].Text != "\"\"\"a\n'b'\"\"\"" {
		t.Fatalf("triple-quoted text = %q", toks[2].Text)
	}
	if toks[6].Text != "rb'x\\''" {
		t.Fatalf("prefixed text = %q", toks[6].Text)
	}
}

func TestUnterminatedStrings(t *testing.T) {
	for src, msg := range map[string]string{
		"x = 'abc\n":       "unterminated string literal",
		"x = \"abc":        "unterminated string literal",
		"x = '''abc\n\n":   "unterminated triple-quoted string literal",
		"def f(:\n  '''\n": "unterminated triple-quoted string literal",
	} {
		lx, rep := makeTestLexer(src)
		collectAllTokens(lx)
		if len(rep.items) != 1 || rep.items[0].kind != lexer.KindUnterminatedString || rep.items[0].msg != msg {
			t.Errorf("%q: reports = %+v", src, rep.items)
		}
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		src  string
		want token.Kind
	}{
		{"0", token.IntLit},
		{"00", token.IntLit},
		{"1_000", token.IntLit},
		{"0x_1F", token.IntLit},
		{"0o17", token.IntLit},
		{"0b1010", token.IntLit},
		{"3.14", token.FloatLit},
		{"1.", token.FloatLit},
		{".5", token.FloatLit},
		{"1e-3", token.FloatLit},
		{"2E10", token.FloatLit},
		{"10j", token.ImagLit},
		{"1.5J", token.ImagLit},
	}
	for _, tt := range tests {
		toks := expectKinds(t, tt.src, tt.want, NL, EOF)
		if toks[0].Text != tt.src {
			t.Errorf("text = %q, want %q", toks[0].Text, tt.src)
		}
	}
}

func TestNumberFollowedByKeyword(t *testing.T) {
	expectKinds(t, "1if x else 2\n",
		token.IntLit, token.KwIf, ID, token.KwElse, token.IntLit, NL, EOF)
	expectKinds(t, "0else\n", token.IntLit, token.KwElse, NL, EOF)
}

func TestBadNumbers(t *testing.T) {
	for _, src := range []string{"012", "0x", "0b102", "0o8"} {
		lx, rep := makeTestLexer(src)
		collectAllTokens(lx)
		if len(rep.items) != 1 || rep.items[0].kind != lexer.KindBadNumber {
			t.Errorf("%q: reports = %+v", src, rep.items)
		}
	}
}

func TestOperators(t *testing.T) {
	expectKinds(t, "a **= b //= c <> d := e -> ... @ ~ != >>= <<= ** //\n",
		ID, token.StarStarAssign, ID, token.SlashSlashAssign, ID, token.LtGt, ID,
		token.ColonAssign, ID, token.Arrow, token.Ellipsis, token.At, token.Tilde,
		token.BangEq, token.ShrAssign, token.ShlAssign, token.StarStar, token.SlashSlash,
		NL, EOF)
}

func TestBracketErrors(t *testing.T) {
	cases := map[string]string{
		"x)\n":        "unmatched ')'",
		"(x]\n":       "closing parenthesis ']' does not match opening parenthesis '('",
		"f(a,\n  b\n": "'(' was never closed",
	}
	for src, msg := range cases {
		lx, rep := makeTestLexer(src)
		collectAllTokens(lx)
		if len(rep.items) != 1 || rep.items[0].msg != msg {
			t.Errorf("%q: reports = %+v", src, rep.items)
		}
	}
}

func TestUnknownCharacter(t *testing.T) {
	lx, rep := makeTestLexer("x = $y\n")
	toks := collectAllTokens(lx)
	if toks[len(toks)-1].Kind != token.Invalid {
		t.Fatalf("kinds = %v", kindsOf(toks))
	}
	if len(rep.items) != 1 || rep.items[0].msg != "invalid character '$' (U+0024)" {
		t.Fatalf("reports = %+v", rep.items)
	}
	if sp := rep.items[0].span; sp.Start != 4 || sp.End != 5 {
		t.Fatalf("span = %v", sp)
	}
}

func TestBackslashNotAtEndOfLine(t *testing.T) {
	lx, rep := makeTestLexer("x = 1 \\ 2\n")
	collectAllTokens(lx)
	if len(rep.items) != 1 || rep.items[0].kind != lexer.KindBadContinuation {
		t.Fatalf("reports = %+v", rep.items)
	}
}

func TestUnicodeIdentifiers(t *testing.T) {
	toks := expectKinds(t, "π = 1\nnaïve_x2 = π\n",
		ID, token.Assign, token.IntLit, NL, ID, token.Assign, ID, NL, EOF)
	if toks[4].Text != "naïve_x2" {
		t.Fatalf("text = %q", toks[4].Text)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("pass\n")
	if p := lx.Peek(); p.Kind != token.KwPass {
		t.Fatalf("Peek = %v", p.Kind)
	}
	if p := lx.Peek(); p.Kind != token.KwPass {
		t.Fatalf("second Peek = %v", p.Kind)
	}
	if n := lx.Next(); n.Kind != token.KwPass {
		t.Fatalf("Next = %v", n.Kind)
	}
	if n := lx.Next(); n.Kind != token.Newline {
		t.Fatalf("Next after pass = %v", n.Kind)
	}
}

func TestEOFIsSticky(t *testing.T) {
	lx, _ := makeTestLexer("x\n")
	collectAllTokens(lx)
	for range 3 {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("got %v after EOF", tok.Kind)
		}
	}
}

func TestTokenSpansMatchText(t *testing.T) {
	src := "async def g(x, *a, **k) -> int:\n    await x\n"
	lx, _ := makeTestLexer(src)
	for _, tok := range collectAllTokens(lx) {
		if tok.IsLayout() || tok.Kind == token.EOF {
			if tok.Text != "" || !tok.Span.Empty() {
				t.Errorf("synthetic %v has text %q span %v", tok.Kind, tok.Text, tok.Span)
			}
			continue
		}
		if got := src[tok.Span.Start:tok.Span.End]; got != tok.Text {
			t.Errorf("%v: span text %q != %q", tok.Kind, got, tok.Text)
		}
	}
}
