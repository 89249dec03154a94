package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644))
	return dir
}

func TestLoad_MissingFileReturnsNil(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_Basic(t *testing.T) {
	dir := writeConfig(t, "base_dir: Resources\nsolution: /srv/app\n")

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "Resources", cfg.BaseDir)
	assert.Equal(t, "/srv/app", cfg.Solution)
}

func TestLoad_SolutionDefaultsToRoot(t *testing.T) {
	dir := writeConfig(t, "base_dir: Resources\n")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.Solution)
}

func TestLoad_BaseDirRequired(t *testing.T) {
	dir := writeConfig(t, "solution: /srv/app\n")

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_dir")
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := writeConfig(t, "base_dir: [unclosed\n")

	_, err := Load(dir)
	require.Error(t, err)
}
