package bootstrap

import (
	"fmt"
	"net/http"

	"stock-quote-proxy/internal/application"
	"stock-quote-proxy/internal/config"
	"stock-quote-proxy/internal/domain"
	"stock-quote-proxy/internal/infrastructure/httpx"
	"stock-quote-proxy/internal/infrastructure/logx"
	"stock-quote-proxy/internal/infrastructure/provider"
	"stock-quote-proxy/internal/infrastructure/ratelimit"
	"stock-quote-proxy/internal/infrastructure/worker"

	"github.com/redis/go-redis/v9"
)

const userAgent = "stock-quote-proxy/1.0"

// BuildProvider returns the upstream quote source named by QUOTE_PROVIDER.
// The returned provider is unpaced; the refresher adds its own spacing.
func BuildProvider(cfg config.Config) (application.QuoteProvider, error) {
	switch cfg.Provider {
	case "finnhub":
		if cfg.FinnhubAPIKey == "" {
			logx.L().Warn("FINNHUB_API_KEY is empty; upstream calls will fail")
		}
		return &provider.Finnhub{
			BaseURL: cfg.FinnhubBaseURL,
			APIKey:  cfg.FinnhubAPIKey,
			Client: &httpx.Client{
				HTTP:      &http.Client{Timeout: cfg.FinnhubTimeout},
				UserAgent: userAgent,
			},
		}, nil
	case "fake":
		return provider.NewFake(0), nil
	default:
		return nil, fmt.Errorf("unsupported QUOTE_PROVIDER=%q", cfg.Provider)
	}
}

// BuildLimiter returns the per-IP limiter, or nil when disabled. The cleanup
// closes the redis client when that backend is selected.
func BuildLimiter(cfg config.Config) (*ratelimit.Limiter, func(), error) {
	if !cfg.RateLimitEnabled {
		return nil, func() {}, nil
	}
	limiter := &ratelimit.Limiter{Max: cfg.RateLimitMax, Window: cfg.RateLimitWindow}
	switch cfg.RateLimitBackend {
	case "", "memory":
		limiter.Store = ratelimit.NewMemoryStore()
		return limiter, func() {}, nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		limiter.Store = ratelimit.NewRedisStore(rdb)
		cleanup := func() { _ = rdb.Close() }
		return limiter, cleanup, nil
	default:
		return nil, func() {}, fmt.Errorf("unsupported RATE_LIMIT_BACKEND=%q", cfg.RateLimitBackend)
	}
}

// BuildRefresher wires the bulk refresher over a paced copy of the provider,
// so warmup calls stay REFRESH_DELAY apart while on-demand lookups go
// straight through.
func BuildRefresher(c application.QuoteCache, p application.QuoteProvider, cfg config.Config) *worker.Refresher {
	return &worker.Refresher{
		Cache:    c,
		Provider: &provider.Paced{P: p, Interval: cfg.RefreshDelay},
		Symbols:  domain.WatchedSymbols,
		Interval: cfg.RefreshInterval,
		Log:      logx.L(),
	}
}
