package token_test

import (
	"testing"

	"pyrint/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	for _, kw := range []string{"def", "class", "nonlocal", "global", "yield", "await", "None", "lambda"} {
		k, ok := token.LookupKeyword(kw)
		if !ok {
			t.Fatalf("%q should be a keyword", kw)
		}
		if !tok(k).IsKeyword() {
			t.Fatalf("%q maps to %v which is not a keyword kind", kw, k)
		}
		if k.String() != kw {
			t.Fatalf("round trip %q -> %v", kw, k)
		}
	}
	for _, id := range []string{"none", "self", "match", "print", "Def"} {
		if _, ok := token.LookupKeyword(id); ok {
			t.Fatalf("%q must be an identifier", id)
		}
	}
}
