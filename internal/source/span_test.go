package source

import "testing"

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"disjoint", Span{1, 10, 20}, Span{1, 30, 40}, Span{1, 10, 40}},
		{"nested", Span{1, 10, 40}, Span{1, 15, 20}, Span{1, 10, 40}},
		{"before", Span{1, 10, 20}, Span{1, 0, 5}, Span{1, 0, 20}},
		{"other file", Span{1, 10, 20}, Span{2, 0, 50}, Span{1, 10, 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Errorf("Cover = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanBasics(t *testing.T) {
	s := Span{File: 3, Start: 4, End: 9}
	if s.Empty() || s.Len() != 5 {
		t.Fatalf("Empty=%v Len=%d", s.Empty(), s.Len())
	}
	if s.String() != "3:4-9" {
		t.Fatalf("String = %q", s.String())
	}
}
