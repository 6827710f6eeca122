package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyCodeHQ/importviz/internal/config"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_EmptyFileUsesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "empty.yaml", "")

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, config.DefaultFormat, cfg.Format)
	assert.Equal(t, config.DefaultDotOut, cfg.DotOut)
	assert.False(t, cfg.IncludeStdlib)
	assert.Empty(t, cfg.ExcludeDirs)
	assert.Equal(t, config.DefaultWorkers, cfg.Workers)
	assert.Equal(t, config.DefaultGraphName, cfg.GraphName)
	assert.False(t, cfg.NoColor)
}

func TestLoadConfig_ReadsYAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "importviz.yaml", `format: DOT
dot_out: graph.dot
include_stdlib: true
exclude_dirs:
  - generated
  - migrations
workers: 4
graph_name: my_project
no_color: true
`)

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "dot", cfg.Format)
	assert.Equal(t, "graph.dot", cfg.DotOut)
	assert.True(t, cfg.IncludeStdlib)
	assert.Equal(t, []string{"generated", "migrations"}, cfg.ExcludeDirs)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "my_project", cfg.GraphName)
	assert.True(t, cfg.NoColor)
}

func TestLoadConfig_ImplicitFileInWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".importviz.yaml", "format: json\n")
	t.Chdir(dir)

	cfg, err := config.LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
}

func TestLoadConfig_MissingImplicitFileIsNotAnError(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := config.LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, config.DefaultFormat, cfg.Format)
}

func TestLoadConfig_MissingExplicitFileIsAnError(t *testing.T) {
	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Error(t, err)
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "importviz.yaml", "format: dot\nworkers: 2\n")
	t.Setenv("IMPORTVIZ_FORMAT", "json")
	t.Setenv("IMPORTVIZ_WORKERS", "6")

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 6, cfg.Workers)
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"unknown format", "format: svg\n", "Format"},
		{"negative workers", "workers: -1\n", "Workers"},
		{"empty excluded directory", "exclude_dirs: [\"\"]\n", "ExcludeDirs"},
		{"excluded path instead of name", "exclude_dirs: [a/b]\n", "ExcludeDirs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), "importviz.yaml", tt.content)

			_, err := config.LoadConfig(path)

			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, config.Default().Validate())
}
