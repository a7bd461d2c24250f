package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.SyncInterval())
	assert.Equal(t, 15*time.Minute, cfg.ArchiveInterval())
	assert.Equal(t, 12*time.Second, cfg.DiscoverTimeout())
	assert.Equal(t, 8*time.Second, cfg.ArticleTimeout())
	assert.NotEmpty(t, cfg.HTTP.UserAgent)
	assert.True(t, cfg.History.Enabled)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: 9100
sync:
  interval_minutes: 10
archive:
  interval_minutes: 30
  dir: /var/archives
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 10*time.Minute, cfg.SyncInterval())
	assert.Equal(t, 30*time.Minute, cfg.ArchiveInterval())
	assert.Equal(t, "/var/archives", cfg.Archive.Dir)
}

func TestValidateClampsIntervals(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Sync.IntervalMinutes = 0
	cfg.Archive.IntervalMinutes = -3
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1, cfg.Sync.IntervalMinutes)
	assert.Equal(t, 1, cfg.Archive.IntervalMinutes)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "zero port", mutate: func(c *Config) { c.Server.Port = 0 }},
		{name: "zero discover timeout", mutate: func(c *Config) { c.HTTP.DiscoverTimeoutSeconds = 0 }},
		{name: "zero article timeout", mutate: func(c *Config) { c.HTTP.ArticleTimeoutSeconds = 0 }},
		{name: "empty model url", mutate: func(c *Config) { c.Summarizer.BaseURL = "" }},
		{name: "history enabled without path", mutate: func(c *Config) { c.History.Path = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
