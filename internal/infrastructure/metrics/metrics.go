package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP front end
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_quote_proxy_http_requests_total",
			Help: "The total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stock_quote_proxy_http_request_duration_seconds",
			Help:    "The HTTP request latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Quote cache
	CacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_quote_proxy_cache_hits_total",
			Help: "The total number of cache lookups that found an entry",
		},
		[]string{"cache_backend"},
	)

	CacheMissesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_quote_proxy_cache_misses_total",
			Help: "The total number of cache lookups that found nothing",
		},
		[]string{"cache_backend"},
	)

	// Upstream quote API
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_quote_proxy_upstream_requests_total",
			Help: "The total number of upstream quote API requests",
		},
		[]string{"outcome"},
	)

	UpstreamRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stock_quote_proxy_upstream_request_duration_seconds",
			Help:    "The upstream quote API request latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Bulk refresh
	RefreshPassesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stock_quote_proxy_refresh_passes_total",
			Help: "The total number of completed bulk refresh passes",
		},
	)

	RefreshPassDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stock_quote_proxy_refresh_pass_duration_seconds",
			Help:    "The bulk refresh pass durations in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300},
		},
	)

	RefreshSymbolsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_quote_proxy_refresh_symbols_total",
			Help: "The total number of per-symbol refresh attempts by outcome",
		},
		[]string{"outcome"},
	)

	// Rate limiting
	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stock_quote_proxy_rate_limited_total",
			Help: "The total number of requests rejected by the rate limiter",
		},
	)

	// Current state
	CurrentPrices = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "stock_quote_proxy_current_price",
			Help: "The last fetched price per symbol",
		},
		[]string{"symbol"},
	)

	TrackedSymbols = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stock_quote_proxy_tracked_symbols",
			Help: "The number of symbols the bulk refresher keeps warm",
		},
	)
)

// RecordHTTPRequest records one served HTTP request.
func RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordCacheHit records a cache lookup that found an entry.
func RecordCacheHit(backend string) {
	CacheHitsTotal.WithLabelValues(backend).Inc()
}

// RecordCacheMiss records a cache lookup that found nothing.
func RecordCacheMiss(backend string) {
	CacheMissesTotal.WithLabelValues(backend).Inc()
}

// RecordUpstreamRequest records one upstream API call with its outcome.
func RecordUpstreamRequest(outcome string, duration time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(outcome).Inc()
	UpstreamRequestDuration.Observe(duration.Seconds())
}

// RecordRefreshPass records a completed bulk refresh pass.
func RecordRefreshPass(updated, failed int, duration time.Duration) {
	RefreshPassesTotal.Inc()
	RefreshPassDuration.Observe(duration.Seconds())
	RefreshSymbolsTotal.WithLabelValues("updated").Add(float64(updated))
	RefreshSymbolsTotal.WithLabelValues("failed").Add(float64(failed))
}

// RecordRateLimited records a request rejected by the rate limiter.
func RecordRateLimited() {
	RateLimitedTotal.Inc()
}

// UpdateCurrentPrice updates the per-symbol price gauge.
func UpdateCurrentPrice(symbol string, price float64) {
	CurrentPrices.WithLabelValues(symbol).Set(price)
}

// SetTrackedSymbols sets the watchlist size gauge.
func SetTrackedSymbols(n int) {
	TrackedSymbols.Set(float64(n))
}
