package main

import "errors"

// KnownMetrics is the set of metric names exported by donutsmp-bot plus
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"donutbot_http_request_duration_seconds": true,
	"donutbot_http_requests_total":           true,

	// Health metrics.
	"donutbot_healthz_up": true,
	"donutbot_readyz_up":  true,

	// DonutSMP API metrics.
	"donutbot_remote_requests_total":           true,
	"donutbot_remote_request_duration_seconds": true,

	// Auction search metrics.
	"donutbot_searches_total":          true,
	"donutbot_search_pages_scanned":    true,
	"donutbot_search_matches":          true,
	"donutbot_search_duration_seconds": true,

	// Cache metrics.
	"donutbot_cache_entries":         true,
	"donutbot_cache_lookups_total":   true,
	"donutbot_cache_evictions_total": true,

	// Chat metrics.
	"donutbot_commands_total":      true,
	"donutbot_callbacks_total":     true,
	"donutbot_send_failures_total": true,

	// Recording rules.
	"donutbot:http_requests:rate5m":       true,
	"donutbot:http_errors:rate5m":         true,
	"donutbot:remote_requests:rate5m":     true,
	"donutbot:remote_errors:rate5m":       true,
	"donutbot:search_fetch_errors:rate5m": true,
	"donutbot:cache_hit_ratio:rate5m":     true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
