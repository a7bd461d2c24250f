// Package config loads and validates service configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	HTTP       HTTPConfig       `mapstructure:"http"`
	Sync       SyncConfig       `mapstructure:"sync"`
	Archive    ArchiveConfig    `mapstructure:"archive"`
	Summarizer SummarizerConfig `mapstructure:"summarizer"`
	History    HistoryConfig    `mapstructure:"history"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// HTTPConfig configures outbound fetch behavior.
type HTTPConfig struct {
	UserAgent              string `mapstructure:"user_agent"`
	DiscoverTimeoutSeconds int    `mapstructure:"discover_timeout_seconds"`
	ArticleTimeoutSeconds  int    `mapstructure:"article_timeout_seconds"`
}

// SyncConfig governs the sync engine cycle.
type SyncConfig struct {
	IntervalMinutes int `mapstructure:"interval_minutes"`
}

// ArchiveConfig governs the periodic dossier export.
type ArchiveConfig struct {
	IntervalMinutes int    `mapstructure:"interval_minutes"`
	Dir             string `mapstructure:"dir"`
}

// SummarizerConfig points at the local summarization model endpoint.
type SummarizerConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// HistoryConfig controls the sqlite cycle history store.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INTELGRID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("http.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	v.SetDefault("http.discover_timeout_seconds", 12)
	v.SetDefault("http.article_timeout_seconds", 8)
	v.SetDefault("sync.interval_minutes", 5)
	v.SetDefault("archive.interval_minutes", 15)
	v.SetDefault("archive.dir", ".")
	v.SetDefault("summarizer.base_url", "http://localhost:11434")
	v.SetDefault("summarizer.model", "llama3.2")
	v.SetDefault("summarizer.timeout_seconds", 60)
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", "intelgrid.db")
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits. Intervals below
// the one-minute floor are clamped rather than rejected.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.HTTP.DiscoverTimeoutSeconds <= 0 {
		return fmt.Errorf("http.discover_timeout_seconds must be > 0")
	}
	if c.HTTP.ArticleTimeoutSeconds <= 0 {
		return fmt.Errorf("http.article_timeout_seconds must be > 0")
	}
	if c.Summarizer.BaseURL == "" {
		return fmt.Errorf("summarizer.base_url must be set")
	}
	if c.History.Enabled && c.History.Path == "" {
		return fmt.Errorf("history.path must be set when history is enabled")
	}
	if c.Sync.IntervalMinutes < 1 {
		c.Sync.IntervalMinutes = 1
	}
	if c.Archive.IntervalMinutes < 1 {
		c.Archive.IntervalMinutes = 1
	}
	return nil
}

// SyncInterval returns the configured sync cycle interval.
func (c Config) SyncInterval() time.Duration {
	return time.Duration(c.Sync.IntervalMinutes) * time.Minute
}

// ArchiveInterval returns the configured archive export interval.
func (c Config) ArchiveInterval() time.Duration {
	return time.Duration(c.Archive.IntervalMinutes) * time.Minute
}

// DiscoverTimeout returns the per-fetch timeout for section pages.
func (c Config) DiscoverTimeout() time.Duration {
	return time.Duration(c.HTTP.DiscoverTimeoutSeconds) * time.Second
}

// ArticleTimeout returns the per-fetch timeout for article pages.
func (c Config) ArticleTimeout() time.Duration {
	return time.Duration(c.HTTP.ArticleTimeoutSeconds) * time.Second
}
