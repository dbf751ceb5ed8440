package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/princessjainn/Rodgers-PS1/internal/config"
)

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, config.Default().Validate())
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"max file size too small", func(c *config.Config) { c.Scan.MaxFileSize = 10 }},
		{"empty addr", func(c *config.Config) { c.Server.Addr = "" }},
		{"debounce too short", func(c *config.Config) { c.Watch.Debounce = time.Millisecond }},
		{"min interval below debounce", func(c *config.Config) { c.Watch.MinInterval = 100 * time.Millisecond }},
		{"zero ai concurrency", func(c *config.Config) { c.AI.MaxConcurrent = 0 }},
		{"negative retries", func(c *config.Config) { c.AI.MaxRetries = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := config.Default()
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PREFLIGHT_ADDR", ":9999")
	t.Setenv("PREFLIGHT_WATCH_DEBOUNCE", "500ms")
	t.Setenv("PREFLIGHT_AI_MAX_CONCURRENT", "5")
	t.Setenv("PREFLIGHT_FAIL_ON_NOGO", "true")
	t.Setenv("PREFLIGHT_MAX_FILE_SIZE", "not-a-number")

	c := config.FromEnv()
	assert.Equal(t, ":9999", c.Server.Addr)
	assert.Equal(t, 500*time.Millisecond, c.Watch.Debounce)
	assert.Equal(t, 5, c.AI.MaxConcurrent)
	assert.True(t, c.Scan.FailOnNoGo)
	// Unparseable values keep the default instead of failing startup.
	assert.Equal(t, config.Default().Scan.MaxFileSize, c.Scan.MaxFileSize)
}

func TestLoadFileMergesOverBase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(
		"server:\n  addr: \":7000\"\nwatch:\n  debounce: 150ms\n"), 0o644))

	c, err := config.LoadFile(config.Default(), path, true)
	require.NoError(t, err)
	assert.Equal(t, ":7000", c.Server.Addr)
	assert.Equal(t, 150*time.Millisecond, c.Watch.Debounce)
	// Untouched sections keep their defaults.
	assert.Equal(t, config.Default().AI.Model, c.AI.Model)
}

func TestLoadFileMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), config.DefaultConfigFile)

	c, err := config.LoadFile(config.Default(), missing, false)
	require.NoError(t, err, "a missing default config file is fine")
	assert.Equal(t, config.Default(), c)

	_, err = config.LoadFile(config.Default(), missing, true)
	assert.Error(t, err, "an explicit --config path must exist")
}
