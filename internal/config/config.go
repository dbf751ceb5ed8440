// Package config holds preflight's runtime configuration: defaults,
// validation, PREFLIGHT_* environment overrides, and an optional
// .preflight.yaml file. Precedence is file < environment < explicit
// flags, applied by the CLI layer.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// DefaultConfigFile is looked up in the workspace root when --config is
// not given.
const DefaultConfigFile = ".preflight.yaml"

// Config is the full runtime configuration.
type Config struct {
	Scan   ScanConfig   `mapstructure:"scan"`
	Server ServerConfig `mapstructure:"server"`
	Watch  WatchConfig  `mapstructure:"watch"`
	AI     AIConfig     `mapstructure:"ai"`
}

// ScanConfig controls workspace discovery and scan behavior.
type ScanConfig struct {
	// MaxFileSize is the largest file the loader will read, in bytes.
	// Default: 2 MiB. Range: 1 KiB - 64 MiB.
	MaxFileSize int64 `mapstructure:"max_file_size"`

	// RuleFile is an optional YAML file of custom rules registered on top
	// of the built-in catalog.
	RuleFile string `mapstructure:"rule_file"`

	// FailOnNoGo makes the audit command exit non-zero on a NO-GO decision.
	FailOnNoGo bool `mapstructure:"fail_on_nogo"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	// Addr is the listen address. Default: ":8787".
	Addr string `mapstructure:"addr"`

	// ShutdownTimeout bounds graceful shutdown. Default: 10s. Range: 1s-5m.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// MaxRequestBytes caps an audit request body. Default: 16 MiB.
	MaxRequestBytes int64 `mapstructure:"max_request_bytes"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	// Debounce is the quiet period after a filesystem event before a
	// re-audit triggers. Default: 300ms. Range: 50ms-10s.
	Debounce time.Duration `mapstructure:"debounce"`

	// MinInterval is the rate limit between consecutive re-audits.
	// Default: 2s. Range: Debounce-10m.
	MinInterval time.Duration `mapstructure:"min_interval"`
}

// AIConfig controls the optional triage assistant.
type AIConfig struct {
	// Model names the Anthropic model used for triage.
	Model string `mapstructure:"model"`

	// MaxConcurrent bounds parallel explanation calls. Default: 3.
	// Range: 1-16.
	MaxConcurrent int `mapstructure:"max_concurrent"`

	// MaxRetries bounds API retry attempts. Default: 3. Range: 0-10.
	MaxRetries int `mapstructure:"max_retries"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Scan: ScanConfig{
			MaxFileSize: 2 << 20,
		},
		Server: ServerConfig{
			Addr:            ":8787",
			ShutdownTimeout: 10 * time.Second,
			MaxRequestBytes: 16 << 20,
		},
		Watch: WatchConfig{
			Debounce:    300 * time.Millisecond,
			MinInterval: 2 * time.Second,
		},
		AI: AIConfig{
			Model:         "claude-3-5-haiku-20241022",
			MaxConcurrent: 3,
			MaxRetries:    3,
		},
	}
}

// Validate checks if the configuration has valid values.
func (c Config) Validate() error {
	if c.Scan.MaxFileSize < 1<<10 || c.Scan.MaxFileSize > 64<<20 {
		return fmt.Errorf("scan.max_file_size must be between 1 KiB and 64 MiB (got %d)", c.Scan.MaxFileSize)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.ShutdownTimeout < time.Second || c.Server.ShutdownTimeout > 5*time.Minute {
		return fmt.Errorf("server.shutdown_timeout must be between 1s and 5m (got %v)", c.Server.ShutdownTimeout)
	}
	if c.Server.MaxRequestBytes < 1<<10 {
		return fmt.Errorf("server.max_request_bytes must be at least 1 KiB (got %d)", c.Server.MaxRequestBytes)
	}
	if c.Watch.Debounce < 50*time.Millisecond || c.Watch.Debounce > 10*time.Second {
		return fmt.Errorf("watch.debounce must be between 50ms and 10s (got %v)", c.Watch.Debounce)
	}
	if c.Watch.MinInterval < c.Watch.Debounce || c.Watch.MinInterval > 10*time.Minute {
		return fmt.Errorf("watch.min_interval must be between watch.debounce and 10m (got %v)", c.Watch.MinInterval)
	}
	if c.AI.Model == "" {
		return fmt.Errorf("ai.model is required")
	}
	if c.AI.MaxConcurrent < 1 || c.AI.MaxConcurrent > 16 {
		return fmt.Errorf("ai.max_concurrent must be between 1 and 16 (got %d)", c.AI.MaxConcurrent)
	}
	if c.AI.MaxRetries < 0 || c.AI.MaxRetries > 10 {
		return fmt.Errorf("ai.max_retries must be between 0 and 10 (got %d)", c.AI.MaxRetries)
	}
	return nil
}

// FromEnv returns the default configuration with PREFLIGHT_* environment
// overrides applied. Invalid values fall back to defaults rather than
// failing startup.
func FromEnv() Config {
	c := Default()

	c.Scan.MaxFileSize = parseEnvInt64("PREFLIGHT_MAX_FILE_SIZE", c.Scan.MaxFileSize)
	if v := os.Getenv("PREFLIGHT_RULE_FILE"); v != "" {
		c.Scan.RuleFile = v
	}
	c.Scan.FailOnNoGo = parseEnvBool("PREFLIGHT_FAIL_ON_NOGO", c.Scan.FailOnNoGo)

	if v := os.Getenv("PREFLIGHT_ADDR"); v != "" {
		c.Server.Addr = v
	}
	c.Server.ShutdownTimeout = parseEnvDuration("PREFLIGHT_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)

	c.Watch.Debounce = parseEnvDuration("PREFLIGHT_WATCH_DEBOUNCE", c.Watch.Debounce)
	c.Watch.MinInterval = parseEnvDuration("PREFLIGHT_WATCH_MIN_INTERVAL", c.Watch.MinInterval)

	if v := os.Getenv("PREFLIGHT_AI_MODEL"); v != "" {
		c.AI.Model = v
	}
	c.AI.MaxConcurrent = parseEnvInt("PREFLIGHT_AI_MAX_CONCURRENT", c.AI.MaxConcurrent)
	c.AI.MaxRetries = parseEnvInt("PREFLIGHT_AI_MAX_RETRIES", c.AI.MaxRetries)

	return c
}

// LoadFile merges a YAML config file over the given configuration. A
// missing file at the default path is not an error; an explicit path must
// exist.
func LoadFile(base Config, path string, explicit bool) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return base, nil
		}
		return base, fmt.Errorf("config file %s: %w", path, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return base, fmt.Errorf("reading config file %s: %w", path, err)
	}

	merged := base
	if err := v.Unmarshal(&merged); err != nil {
		return base, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return merged, nil
}

func parseEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func parseEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func parseEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func parseEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
