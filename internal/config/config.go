// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Donut    DonutConfig    `yaml:"donut"`
	Telegram TelegramConfig `yaml:"telegram"`
	Search   SearchConfig   `yaml:"search"`
	Server   ServerConfig   `yaml:"server"`
	Tracing  TracingConfig  `yaml:"tracing"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DonutConfig defines the DonutSMP REST API settings.
type DonutConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

// TelegramConfig defines the Telegram bot settings.
type TelegramConfig struct {
	Token       string        `yaml:"token"`
	PollTimeout time.Duration `yaml:"poll_timeout"`
	Debug       bool          `yaml:"debug"`
}

// SearchConfig defines auction search and result cache settings.
type SearchConfig struct {
	MaxPages      int           `yaml:"max_pages"`
	PageSize      int           `yaml:"page_size"`
	CacheTTL      time.Duration `yaml:"cache_ttl"`
	CachePerChat  int           `yaml:"cache_per_chat"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Enabled      *bool         `yaml:"enabled"` // default: true
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// IsEnabled reports whether the ops HTTP server should run.
func (s *ServerConfig) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// Addr returns the host:port the server listens on.
func (s *ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// TracingConfig defines OpenTelemetry trace export settings.
type TracingConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"`
	Insecure    bool   `yaml:"insecure"`
	ServiceName string `yaml:"service_name"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json, pretty
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// RequireTelegram checks the settings only the chat bot needs.
func (c *Config) RequireTelegram() error {
	if c.Telegram.Token == "" {
		return errors.New("telegram.token is required")
	}
	return nil
}

func applyDefaults(cfg *Config) {
	applyDonutDefaults(&cfg.Donut)
	applyTelegramDefaults(&cfg.Telegram)
	applySearchDefaults(&cfg.Search)
	applyServerDefaults(&cfg.Server)
	applyTracingDefaults(&cfg.Tracing)
	applyLoggingDefaults(&cfg.Logging)
}

func applyDonutDefaults(d *DonutConfig) {
	if d.BaseURL == "" {
		d.BaseURL = "https://api.donutsmp.net/v1"
	}
	if d.Timeout == 0 {
		d.Timeout = 30 * time.Second
	}
}

func applyTelegramDefaults(t *TelegramConfig) {
	if t.PollTimeout == 0 {
		t.PollTimeout = 60 * time.Second
	}
}

func applySearchDefaults(s *SearchConfig) {
	if s.MaxPages == 0 {
		s.MaxPages = 100
	}
	if s.PageSize == 0 {
		s.PageSize = 10
	}
	if s.CacheTTL == 0 {
		s.CacheTTL = 30 * time.Minute
	}
	if s.CachePerChat == 0 {
		s.CachePerChat = 20
	}
	if s.SweepInterval == 0 {
		s.SweepInterval = 5 * time.Minute
	}
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		// An exhaustive search can walk many remote pages.
		s.WriteTimeout = 5 * time.Minute
	}
}

func applyTracingDefaults(t *TracingConfig) {
	if t.Endpoint == "" {
		t.Endpoint = "localhost:4317"
	}
	if t.ServiceName == "" {
		t.ServiceName = "donutsmp-bot"
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Donut.APIKey == "" {
		errs = append(errs, fmt.Errorf("donut.api_key is required"))
	}
	if cfg.Donut.Timeout < 0 {
		errs = append(errs, fmt.Errorf("donut.timeout must not be negative"))
	}

	if cfg.Search.MaxPages < 0 {
		errs = append(errs, fmt.Errorf("search.max_pages must not be negative (got %d)", cfg.Search.MaxPages))
	}
	if cfg.Search.PageSize < 0 {
		errs = append(errs, fmt.Errorf("search.page_size must not be negative (got %d)", cfg.Search.PageSize))
	}
	if cfg.Search.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("search.cache_ttl must not be negative"))
	}
	if cfg.Search.CachePerChat < 0 {
		errs = append(errs, fmt.Errorf("search.cache_per_chat must not be negative (got %d)", cfg.Search.CachePerChat))
	}

	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 0 and 65535 (got %d)", cfg.Server.Port))
	}

	switch cfg.Logging.Format {
	case "text", "json", "pretty":
	default:
		errs = append(
			errs,
			fmt.Errorf("logging.format must be one of: text, json, pretty (got %q)", cfg.Logging.Format),
		)
	}

	return errors.Join(errs...)
}
