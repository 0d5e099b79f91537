package version

import (
	"strings"
	"testing"
)

func TestBannerPlain(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "1.2.3-rc.1"
	if got := Banner(false); got != "1.2.3-rc.1" {
		t.Fatalf("Banner(false) = %q", got)
	}
}

func TestBannerColor(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "0.1.0-dev"
	got := Banner(true)
	if !strings.Contains(got, "\x1b[") {
		t.Fatalf("colored banner has no escape codes: %q", got)
	}
	if !strings.HasSuffix(got, "-dev") {
		t.Fatalf("suffix lost: %q", got)
	}
	plain := stripANSI(got)
	if plain != "0.1.0-dev" {
		t.Fatalf("stripped banner = %q", plain)
	}
}

func TestOverrides(t *testing.T) {
	origCommit, origDate := GitCommit, BuildDate
	defer func() { GitCommit, BuildDate = origCommit, origDate }()

	GitCommit = "abc123def456"
	BuildDate = "2024-01-15T10:30:00Z"
	if GitCommit != "abc123def456" || BuildDate != "2024-01-15T10:30:00Z" {
		t.Fatalf("overrides not applied")
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
