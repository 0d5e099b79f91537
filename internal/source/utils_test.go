package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()
	baseDir := filepath.Join(tmp, "base")
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		t.Fatalf("failed to create base dir: %v", err)
	}
	target := filepath.Join(tmp, "other", "file.py")

	got := relativeTo(target, baseDir)
	if want := cleanPath(target); got != want {
		t.Fatalf("expected absolute fallback %q, got %q", want, got)
	}
}

func TestRelativePathInsideBaseStaysRelative(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "nested", "file.py")

	got := relativeTo(target, tmp)
	if want := "nested/file.py"; got != want {
		t.Fatalf("expected relative path %q, got %q", want, got)
	}
}

func TestRemoveBOM(t *testing.T) {
	out, had := removeBOM([]byte("\xEF\xBB\xBFx"))
	if !had || string(out) != "x" {
		t.Fatalf("removeBOM = %q,%v", out, had)
	}
	if _, had := removeBOM([]byte("\xEF\xBB")); had {
		t.Fatalf("partial BOM must be kept")
	}
}

func TestNormalizeCRLFKeepsLoneCR(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\r\nb\rc"))
	if !changed || string(out) != "a\nb\rc" {
		t.Fatalf("normalizeCRLF = %q,%v", out, changed)
	}
	out, changed = normalizeCRLF([]byte("plain"))
	if changed || string(out) != "plain" {
		t.Fatalf("unexpected rewrite %q", out)
	}
}
