package diag

import "testing"

func TestCodeIdentity(t *testing.T) {
	cases := []struct {
		code   Code
		id     string
		symbol string
	}{
		{SyntaxError, "E0001", "syntax-error"},
		{FunctionRedefined, "E0102", "function-redefined"},
		{NotInLoop, "E0116", "not-in-loop"},
		{NoSelfArgument, "E0213", "no-self-argument"},
		{AwaitOutsideAsync, "E1142", "await-outside-async"},
	}
	for _, tc := range cases {
		if got := tc.code.ID(); got != tc.id {
			t.Errorf("%d.ID() = %q, want %q", tc.code, got, tc.id)
		}
		if got := tc.code.Symbol(); got != tc.symbol {
			t.Errorf("%s.Symbol() = %q, want %q", tc.id, got, tc.symbol)
		}
	}
}

func TestParseCode(t *testing.T) {
	for _, in := range []string{"E0108", "e108", "duplicate-argument-name", " E0108 "} {
		c, err := ParseCode(in)
		if err != nil {
			t.Fatalf("ParseCode(%q): %v", in, err)
		}
		if c != DuplicateArgumentName {
			t.Fatalf("ParseCode(%q) = %s", in, c.ID())
		}
	}
	for _, in := range []string{"", "E9999", "E0103", "no-such-rule"} {
		if _, err := ParseCode(in); err == nil {
			t.Fatalf("ParseCode(%q) should fail", in)
		}
	}
}

func TestAllCodesSorted(t *testing.T) {
	codes := AllCodes()
	if len(codes) != len(codeTable)-1 {
		t.Fatalf("AllCodes has %d entries, table has %d", len(codes), len(codeTable)-1)
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Fatalf("codes not ascending at %d: %s then %s", i, codes[i-1].ID(), codes[i].ID())
		}
	}
	if codes[0] != SyntaxError {
		t.Fatalf("first code = %s", codes[0].ID())
	}
}
