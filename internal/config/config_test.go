package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nbup/nbup/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, 8888, cfg.Port)
	assert.Equal(t, "0.0.0.0", cfg.IP)
	assert.Equal(t, 90, cfg.PollAttempts)
	assert.Equal(t, time.Second, cfg.Interval())
	assert.Equal(t, 80, cfg.CaptureLines)
	assert.NotEmpty(t, cfg.EnvsRoot)
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.FileName)
	require.NoError(t, os.WriteFile(path, []byte("port = 5000\npoll_attempts = 30\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, 30, cfg.PollAttempts)
	// Untouched keys keep defaults.
	assert.Equal(t, "0.0.0.0", cfg.IP)
	assert.Equal(t, 80, cfg.CaptureLines)
}

func TestLoad_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.FileName)
	require.NoError(t, os.WriteFile(path, []byte("port = \"not a number"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoadDefault_ProjectFileWins(t *testing.T) {
	workDir := t.TempDir()
	path := filepath.Join(workDir, config.FileName)
	require.NoError(t, os.WriteFile(path, []byte("port = 5000\n"), 0o644))

	cfg, err := config.LoadDefault(workDir)
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Port)
}

func TestLoadDefault_MissingFilesUseBuiltins(t *testing.T) {
	// Point HOME at an empty dir so no user config is found.
	t.Setenv("HOME", t.TempDir())

	cfg, err := config.LoadDefault(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, config.Default().Port, cfg.Port)
}
