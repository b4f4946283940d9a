package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogDir          string        `yaml:"log_dir"`          // logs directory; empty disables file logging
	LogLevel        string        `yaml:"log_level"`        // debug, info, warn, error
	Timeout         time.Duration `yaml:"timeout"`          // per-attempt network timeout
	UserAgent       string        `yaml:"user_agent"`       // HTTP User-Agent; empty sends Go's default
	RedirectLimit   int           `yaml:"redirect_limit"`   // HTTP redirect hops per ping
	FollowRedirect  bool          `yaml:"follow_redirect"`  // follow HTTP redirects at all
	MetricsTextfile string        `yaml:"metrics_textfile"` // node-exporter textfile path; empty disables
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:       "info",
		Timeout:        5 * time.Second,
		RedirectLimit:  5,
		FollowRedirect: true,
	}
}

// FromEnv returns Default overridden by environment variables.
func FromEnv() Config {
	cfg := Default()
	applyEnv(&cfg)
	return cfg
}

// Load reads a YAML file on top of Default, then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings no probe can run with.
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.RedirectLimit < 0 {
		return fmt.Errorf("redirect_limit must not be negative, got %d", c.RedirectLimit)
	}
	return nil
}

func applyEnv(cfg *Config) {
	// Logs
	if v := os.Getenv("LOG_DIR"); v != "" {
		cfg.LogDir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	// Probe tuning
	if v := os.Getenv("PING_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.Timeout = time.Duration(ms) * time.Millisecond
		}
	}
	if v := os.Getenv("PING_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("PING_REDIRECT_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.RedirectLimit = n
		}
	}
	if v := os.Getenv("PING_FOLLOW_REDIRECT"); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			cfg.FollowRedirect = b
		}
	}

	// Metrics
	if v := os.Getenv("PING_METRICS_TEXTFILE"); v != "" {
		cfg.MetricsTextfile = v
	}
}
