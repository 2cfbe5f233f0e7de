// Package metrics defines Prometheus metrics for donutsmp-bot.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "donutbot"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "1 if the last /healthz probe succeeded, 0 otherwise.",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "1 if the last /readyz probe succeeded, 0 otherwise.",
	})
)

// DonutSMP API metrics.
var (
	RemoteRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "remote_requests_total",
		Help:      "Total DonutSMP API calls by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	RemoteRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "remote_request_duration_seconds",
		Help:      "Duration of DonutSMP API calls in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})
)

// Auction search metrics.
var (
	SearchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Total auction scans by kind and stop reason.",
	}, []string{"kind", "stopped_at"})

	SearchPagesScanned = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "search_pages_scanned",
		Help:      "Number of remote pages fetched per auction scan.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 9), // 1 .. 256
	})

	SearchMatches = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "search_matches",
		Help:      "Number of matching listings per auction scan.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 6), // 1 .. 1024
	})

	SearchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "search_duration_seconds",
		Help:      "Wall-clock duration of auction scans in seconds.",
		Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
	})
)

// Result cache metrics.
var (
	CacheEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cache_entries",
		Help:      "Number of search results currently held in the cache.",
	})

	CacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total cache lookups by result (hit, miss).",
	}, []string{"result"})

	CacheEvictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_evictions_total",
		Help:      "Total cache evictions by reason (expired, capacity).",
	}, []string{"reason"})
)

// Chat metrics.
var (
	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "commands_total",
		Help:      "Total chat commands handled by command name.",
	}, []string{"command"})

	CallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "callbacks_total",
		Help:      "Total button callbacks by outcome (page, expired, ignored).",
	}, []string{"outcome"})

	SendFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "send_failures_total",
		Help:      "Total number of failed Telegram send or edit calls.",
	})
)
