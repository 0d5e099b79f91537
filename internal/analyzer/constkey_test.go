package analyzer

import "testing"

func TestFloatKey(t *testing.T) {
	cases := map[string]string{
		"1.0":    "n:1",
		"1e3":    "n:1000",
		"1_0.0":  "n:10",
		"0.5":    "f:0.5",
		"2.50":   "f:2.5",
		"1e400":  "f:1e400",
		".25e-1": "f:0.025",
	}
	for text, want := range cases {
		if got := floatKey(text); got != want {
			t.Errorf("floatKey(%q) = %q, want %q", text, got, want)
		}
	}
}

func TestParseIntLiteral(t *testing.T) {
	cases := map[string]string{
		"10":                        "10",
		"0x_1f":                     "31",
		"0o17":                      "15",
		"0b1010":                    "10",
		"1_000":                     "1000",
		"00":                        "0",
		"1234567890123456789012345": "1234567890123456789012345",
	}
	for text, want := range cases {
		n, ok := parseIntLiteral(text)
		if !ok || n.String() != want {
			t.Errorf("parseIntLiteral(%q) = %v, %v; want %s", text, n, ok, want)
		}
	}
}

func TestNegateNumericKey(t *testing.T) {
	for in, want := range map[string]string{"n:0": "n:0", "n:5": "n:-5", "n:-5": "n:5"} {
		if got := negateNumericKey(in); got != want {
			t.Errorf("negate(%q) = %q, want %q", in, got, want)
		}
	}
}
