package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pyrint/internal/diag"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoadFullConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	writeFile(t, path, `
jobs = 4

[rules]
disable = ["E0118", "no-self-argument"]

[files]
extensions = [".py", ".pyi"]
exclude = ["**/.venv/**", "build/**"]

[output]
format = "json"
max_diagnostics = 50
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, 4, cfg.Jobs)
	assert.Equal(t, []string{".py", ".pyi"}, cfg.Files.Extensions)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, 50, cfg.Output.MaxDiagnostics)
	assert.Empty(t, cfg.Unknown)

	rules, err := cfg.RuleSet()
	require.NoError(t, err)
	assert.False(t, rules.Enabled(diag.UsedPriorGlobalDecl))
	assert.False(t, rules.Enabled(diag.NoSelfArgument))
	assert.True(t, rules.Enabled(diag.FunctionRedefined))
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	writeFile(t, path, "[rules]\nenable = [\"E0102\"]\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Jobs)
	assert.Equal(t, []string{".py"}, cfg.Files.Extensions)
	assert.Equal(t, "text", cfg.Output.Format)

	rules, err := cfg.RuleSet()
	require.NoError(t, err)
	assert.Equal(t, []diag.Code{diag.FunctionRedefined}, rules.Codes())
}

func TestLoadRecordsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	writeFile(t, path, "jobs = 2\ncolour = true\n[output]\nwidth = 80\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"colour", "output.width"}, cfg.Unknown)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
		errPart string
	}{
		{"negative jobs", "jobs = -1\n", "jobs must be >= 0"},
		{"unknown rule", "[rules]\ndisable = [\"E9999\"]\n", "unknown rule code"},
		{"bad glob", "[files]\nexclude = [\"[abc\"]\n", "invalid pattern"},
		{"bad extension", "[files]\nextensions = [\"py\"]\n", "must start with a dot"},
		{"negative max", "[output]\nmax_diagnostics = -3\n", "max_diagnostics"},
		{"empty format", "[output]\nformat = \"\"\n", "format must not be empty"},
		{"malformed", "jobs = = 3\n", "failed to parse TOML"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, FileName)
			writeFile(t, path, tc.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errPart)
			assert.Contains(t, err.Error(), path)
		})
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, FileName)
	writeFile(t, path, "jobs = 3\n")
	nested := filepath.Join(root, "pkg", "sub")
	writeFile(t, filepath.Join(nested, "mod.py"), "x = 1\n")

	found, err := Find(nested)
	require.NoError(t, err)
	assert.Equal(t, path, found)

	found, err = Find(filepath.Join(nested, "mod.py"))
	require.NoError(t, err)
	assert.Equal(t, path, found)

	cfg, ok, err := Discover(nested)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, cfg.Jobs)
}

func TestDiscoverWithoutFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := Find(dir); err != nil {
		// Another pyrint.toml above the temp dir would make this test meaningless.
		require.ErrorIs(t, err, ErrNotFound)
	} else {
		t.Skip("a pyrint.toml exists above the temporary directory")
	}

	cfg, ok, err := Discover(dir)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, Default(), cfg)
}
