package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"pyrint/internal/diagfmt"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

// newTestRoot builds a fresh command tree so flag state does not leak
// between tests.
func newTestRoot() *cobra.Command {
	root := &cobra.Command{Use: "pyrint", SilenceUsage: true, SilenceErrors: true}
	addRootFlags(root)
	check := &cobra.Command{Use: "check", Args: cobra.MinimumNArgs(1), RunE: runCheck}
	addCheckFlags(check)
	root.AddCommand(check)
	return root
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := newTestRoot()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"":      slog.LevelWarn,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := parseLogLevel(in)
		if err != nil || got != want {
			t.Fatalf("parseLogLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := parseLogLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestReadMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff} {
		got, err := readMode("ui", in)
		if err != nil || got != want {
			t.Fatalf("readMode(%q) = %q, %v", in, got, err)
		}
	}
	_, err := readMode("color", "sometimes")
	if err == nil || !strings.Contains(err.Error(), "--color") {
		t.Fatalf("unexpected error %v", err)
	}
	if !enabledFor(uiModeOn, nil) || enabledFor(uiModeOff, nil) {
		t.Fatalf("explicit modes must not consult the terminal")
	}
}

func TestLoadConfigAppliesOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "pyrint.toml"), "jobs = 2\n[files]\nexclude = [\"a/**\"]\n[output]\nformat = \"json\"\n")

	cmd := &cobra.Command{Use: "check"}
	addCheckFlags(cmd)
	for name, value := range map[string]string{"jobs": "3", "disable": "E0102,yield-outside-function", "exclude": "build/**"} {
		if err := cmd.Flags().Set(name, value); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}

	cfg, err := loadConfig(cmd, dir)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Jobs != 3 {
		t.Errorf("jobs = %d, want 3", cfg.Jobs)
	}
	if got := strings.Join(cfg.Rules.Disable, ","); got != "E0102,yield-outside-function" {
		t.Errorf("disable = %q", got)
	}
	if got := strings.Join(cfg.Files.Exclude, ","); got != "a/**,build/**" {
		t.Errorf("exclude = %q", got)
	}

	format, err := reportFormat(cmd, cfg)
	if err != nil || format != diagfmt.FormatJSON {
		t.Fatalf("format from file = %q, %v", format, err)
	}
	if err := cmd.Flags().Set("format", "short"); err != nil {
		t.Fatal(err)
	}
	format, err = reportFormat(cmd, cfg)
	if err != nil || format != diagfmt.FormatShort {
		t.Fatalf("format from flag = %q, %v", format, err)
	}
}

func TestLoadConfigRejectsUnknownRule(t *testing.T) {
	cmd := &cobra.Command{Use: "check"}
	addCheckFlags(cmd)
	if err := cmd.Flags().Set("enable", "E9999"); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(cmd, t.TempDir()); err == nil {
		t.Fatalf("expected unknown rule to be rejected")
	}
}

func TestCheckReportsIssues(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.py"), "def f():\n    pass\n\ndef f():\n    pass\n")
	writeFile(t, filepath.Join(dir, "b.py"), "x = 1\n")

	out, _, err := execute(t, "check", "--ui", "off", "--color", "off", dir)
	if !errors.Is(err, errIssuesFound) {
		t.Fatalf("err = %v, want errIssuesFound", err)
	}
	if !strings.Contains(out, "a.py:4:1: E0102: function already defined line 1 (function-redefined)") {
		t.Fatalf("missing issue line:\n%s", out)
	}
	if !strings.HasSuffix(out, "1 issue in 2 files\n") {
		t.Fatalf("missing summary:\n%s", out)
	}
}

func TestCheckCleanAndDisabled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.py"), "def f():\n    pass\n\ndef f():\n    pass\n")

	out, _, err := execute(t, "check", "--quiet", "--disable", "E0102", dir)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	if out != "" {
		t.Fatalf("quiet clean run printed %q", out)
	}
}

func TestCheckJSONAndMetrics(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "outside.py"), "return 1\n")

	out, errOut, err := execute(t, "check", "--format", "json", "--metrics", "--ui", "off", dir)
	if !errors.Is(err, errIssuesFound) {
		t.Fatalf("err = %v", err)
	}
	var rep diagfmt.Report
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(rep.Issues) != 1 || rep.Issues[0].Code != "E0104" {
		t.Fatalf("unexpected report %+v", rep)
	}
	if !strings.Contains(errOut, `pyrint_issues_total{code="E0104"} 1`) {
		t.Fatalf("metrics missing from stderr:\n%s", errOut)
	}
}

func TestCheckMissingPath(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.py")
	writeFile(t, good, "def f():\n    pass\n\ndef f():\n    pass\n")
	out, _, err := execute(t, "check", "--format", "text", good, filepath.Join(dir, "nope.py"))
	if !errors.Is(err, errIssuesFound) {
		t.Fatalf("expected issues exit, got %v", err)
	}
	if !strings.Contains(out, "E0102") {
		t.Fatalf("good file not reported:\n%s", out)
	}
	if !strings.Contains(out, "nope.py: error: path does not exist") {
		t.Fatalf("missing path not reported:\n%s", out)
	}
}

func TestVersionJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := renderVersionJSON(&buf, versionOptions{format: "json", showHash: true}); err != nil {
		t.Fatal(err)
	}
	var payload versionPayload
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Tool != "pyrint" || payload.GitCommit == "" || payload.BuildDate != "" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestRenderRules(t *testing.T) {
	var buf bytes.Buffer
	renderRules(&buf, []ruleInfo{
		{Code: "E0102", Symbol: "function-redefined", Title: "function redefined in the same scope", Enabled: true},
		{Code: "E0104", Symbol: "return-outside-function", Title: "return outside function"},
	}, false)
	want := "E0102 on  function-redefined      function redefined in the same scope\n" +
		"E0104 off return-outside-function return outside function\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}
