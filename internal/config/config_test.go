package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load_defaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "minilangc.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func Test_Load_parsesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minilangc.toml")
	content := "output_root = \"build\"\noptimizer_on = false\nmax_rounds = 1\ntrace_col_width = 30\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Config{OutputRoot: "build", OptimizerOn: false, MaxRounds: 1, TraceColWidth: 30}, cfg)
}

func Test_Load_rejectsMalformedToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minilangc.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid toml"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func Test_Load_rejectsNonPositiveMaxRounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minilangc.toml")
	require.NoError(t, os.WriteFile(path, []byte("max_rounds = 0\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
