package testkit

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
)

var update = flag.Bool("update", false, "rewrite golden files with the current output")

// Diff renders a character-level diff of want against got.
func Diff(want, got string) string {
	dmp := diffmatchpatch.New()
	return dmp.DiffPrettyText(dmp.DiffMain(want, got, false))
}

// AssertText fails t with a diff when got differs from want.
func AssertText(t testing.TB, got, want string) {
	t.Helper()
	if got != want {
		t.Fatalf("output mismatch (-want +got):\n%s\n--- got ---\n%s", Diff(want, got), got)
	}
}

// AssertGolden compares got with the golden file at path. With -update the
// file is rewritten instead.
func AssertGolden(t testing.TB, path string, got []byte) {
	t.Helper()
	if *update {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("create golden dir: %v", err)
		}
		if err := os.WriteFile(path, got, 0o644); err != nil {
			t.Fatalf("update golden %s: %v", path, err)
		}
		return
	}
	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden %s: %v (run with -update to create it)", path, err)
	}
	if !bytes.Equal(want, got) {
		t.Fatalf("%s mismatch:\n%s", path, Diff(string(want), string(got)))
	}
}
