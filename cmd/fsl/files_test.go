package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpandInputs_LiteralFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.fsl")
	require.NoError(t, os.WriteFile(path, []byte("function f() { 1 }"), 0o644))

	got, err := expandInputs([]string{path}, nil)
	require.NoError(t, err)
	require.Equal(t, []string{path}, got)
}

func TestExpandInputs_GlobFallsBackToConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.fsl"), []byte("function f() { 1 }"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.fsl"), []byte("function g() { 1 }"), 0o644))

	got, err := expandInputs(nil, []string{filepath.Join(dir, "*.fsl")})
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestExpandInputs_NoMatchesIsError(t *testing.T) {
	_, err := expandInputs([]string{"/does/not/exist/*.fsl"}, nil)
	require.Error(t, err)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), ".fsltool.yaml"))
	require.NoError(t, err)
	require.Equal(t, ".fsltool-cache.json.gz", cfg.CacheFile)
}

func TestLoadConfig_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".fsltool.yaml")
	require.NoError(t, os.WriteFile(path, []byte("inputs:\n  - \"schema/**/*.fsl\"\nsort: true\n"), 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, []string{"schema/**/*.fsl"}, cfg.Inputs)
	require.True(t, cfg.Sort)
}
