package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid minimal config",
			yaml: `
donut:
  api_key: abc123
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "abc123", cfg.Donut.APIKey)
			},
		},
		{
			name: "defaults applied for optional fields",
			yaml: `
donut:
  api_key: abc123
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "https://api.donutsmp.net/v1", cfg.Donut.BaseURL)
				assert.Equal(t, 30*time.Second, cfg.Donut.Timeout)
				assert.Equal(t, 60*time.Second, cfg.Telegram.PollTimeout)
				assert.Equal(t, 100, cfg.Search.MaxPages)
				assert.Equal(t, 10, cfg.Search.PageSize)
				assert.Equal(t, 30*time.Minute, cfg.Search.CacheTTL)
				assert.Equal(t, 20, cfg.Search.CachePerChat)
				assert.Equal(t, 5*time.Minute, cfg.Search.SweepInterval)
				assert.True(t, cfg.Server.IsEnabled())
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 5*time.Minute, cfg.Server.WriteTimeout)
				assert.False(t, cfg.Tracing.Enabled)
				assert.Equal(t, "localhost:4317", cfg.Tracing.Endpoint)
				assert.Equal(t, "donutsmp-bot", cfg.Tracing.ServiceName)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
			},
		},
		{
			name: "env var substitution",
			yaml: `
donut:
  api_key: "${TEST_DONUT_KEY}"
telegram:
  token: "${TEST_TELEGRAM_TOKEN}"
`,
			envVars: map[string]string{
				"TEST_DONUT_KEY":      "secret123",
				"TEST_TELEGRAM_TOKEN": "123:abc",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "secret123", cfg.Donut.APIKey)
				assert.Equal(t, "123:abc", cfg.Telegram.Token)
			},
		},
		{
			name:    "missing required donut.api_key",
			yaml:    `telegram: {token: "123:abc"}`,
			wantErr: "donut.api_key is required",
		},
		{
			name: "unset env var leaves api key empty",
			yaml: `
donut:
  api_key: "${TEST_DONUT_KEY_UNSET}"
`,
			wantErr: "donut.api_key is required",
		},
		{
			name: "negative search bounds",
			yaml: `
donut:
  api_key: abc123
search:
  max_pages: -1
  cache_per_chat: -5
`,
			wantErr: "search.max_pages must not be negative (got -1)",
		},
		{
			name: "invalid log format",
			yaml: `
donut:
  api_key: abc123
logging:
  format: xml
`,
			wantErr: `logging.format must be one of: text, json, pretty (got "xml")`,
		},
		{
			name: "port out of range",
			yaml: `
donut:
  api_key: abc123
server:
  port: 70000
`,
			wantErr: "server.port must be between 0 and 65535 (got 70000)",
		},
		{
			name:    "invalid YAML",
			yaml:    `{{{not valid yaml`,
			wantErr: "parsing config YAML",
		},
		{
			name: "full config with overrides",
			yaml: `
donut:
  base_url: http://localhost:9999/v1
  api_key: abc123
  timeout: 5s
telegram:
  token: "123:abc"
  poll_timeout: 30s
  debug: true
search:
  max_pages: 25
  page_size: 5
  cache_ttl: 1h
  cache_per_chat: 3
  sweep_interval: 1m
server:
  enabled: false
  host: "127.0.0.1"
  port: 9090
  read_timeout: 60s
  write_timeout: 60s
tracing:
  enabled: true
  endpoint: otel-collector:4317
  insecure: true
  service_name: donut-staging
logging:
  level: debug
  format: pretty
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "http://localhost:9999/v1", cfg.Donut.BaseURL)
				assert.Equal(t, 5*time.Second, cfg.Donut.Timeout)
				assert.Equal(t, 30*time.Second, cfg.Telegram.PollTimeout)
				assert.True(t, cfg.Telegram.Debug)
				assert.Equal(t, 25, cfg.Search.MaxPages)
				assert.Equal(t, 5, cfg.Search.PageSize)
				assert.Equal(t, time.Hour, cfg.Search.CacheTTL)
				assert.Equal(t, 3, cfg.Search.CachePerChat)
				assert.Equal(t, time.Minute, cfg.Search.SweepInterval)
				assert.False(t, cfg.Server.IsEnabled())
				assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr())
				assert.Equal(t, 60*time.Second, cfg.Server.WriteTimeout)
				assert.True(t, cfg.Tracing.Enabled)
				assert.True(t, cfg.Tracing.Insecure)
				assert.Equal(t, "otel-collector:4317", cfg.Tracing.Endpoint)
				assert.Equal(t, "donut-staging", cfg.Tracing.ServiceName)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "pretty", cfg.Logging.Format)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Only parallelize tests that don't modify env vars.
			if len(tt.envVars) == 0 {
				t.Parallel()
			}

			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			cfg, err := Load(path)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestConfig_RequireTelegram(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	assert.EqualError(t, cfg.RequireTelegram(), "telegram.token is required")

	cfg.Telegram.Token = "123:abc"
	assert.NoError(t, cfg.RequireTelegram())
}
