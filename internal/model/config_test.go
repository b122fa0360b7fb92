package model_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learntrack/internal/model"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := model.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.ServerURL)
	assert.Equal(t, 30, cfg.RequestTimeoutSec)
	assert.Equal(t, 30, cfg.ProgressDays)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigReadsOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "server_url: https://learn.example.com\nprogress_days: 90\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := model.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "https://learn.example.com", cfg.ServerURL)
	assert.Equal(t, 90, cfg.ProgressDays)
	// Unset keys keep their defaults.
	assert.Equal(t, 30, cfg.RequestTimeoutSec)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	in := &model.AppConfig{
		ServerURL:         "http://localhost:9000",
		RequestTimeoutSec: 10,
		ProgressDays:      7,
		LogLevel:          "debug",
		LogFile:           "/tmp/learntrack.log",
	}
	require.NoError(t, model.SaveConfig(path, in))

	out, err := model.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
