package application

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"stock-quote-proxy/internal/domain"
)

type QuoteService struct {
	cache    QuoteCache
	provider QuoteProvider
	ttl      time.Duration
	clock    Clock
	started  time.Time
}

type Option func(*QuoteService)

func WithClock(c Clock) Option { return func(s *QuoteService) { s.clock = c } }

func NewQuoteService(cache QuoteCache, provider QuoteProvider, ttl time.Duration, opts ...Option) *QuoteService {
	s := &QuoteService{cache: cache, provider: provider, ttl: ttl}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = realClock{}
	}
	if s.ttl <= 0 {
		s.ttl = 3 * time.Minute
	}
	s.started = s.clock.Now()
	return s
}

// GetQuote returns the upstream payload for symbol, serving the cached entry
// while it is inside the freshness window and refetching synchronously
// otherwise. A failed refetch maps to ErrNotFound; stale entries are never
// served from this path.
func (s *QuoteService) GetQuote(ctx context.Context, symbol string) (json.RawMessage, error) {
	symbol = domain.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("%w: symbol is required", ErrBadRequest)
	}
	if q, ok := s.cache.Get(symbol); ok && q.FreshAt(s.clock.Now(), s.ttl) {
		return q.Payload, nil
	}
	payload, err := s.provider.Get(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, symbol, err)
	}
	s.cache.Put(domain.Quote{Symbol: symbol, Payload: payload, FetchedAt: s.clock.Now().UnixMilli()})
	return payload, nil
}

// Overview returns every cached entry keyed by symbol, fresh or stale, plus
// the timestamp of the last completed refresh pass (0 before the first one).
func (s *QuoteService) Overview() (map[string]json.RawMessage, int64) {
	return s.cache.Snapshot(), s.cache.LastUpdated()
}

type Stats struct {
	LastUpdated   int64
	StocksTracked int
	UptimeSeconds float64
}

// Stats reports the cache entry count rather than the watchlist size, so the
// figure grows as the warmup pass and on-demand fetches fill the cache.
func (s *QuoteService) Stats() Stats {
	return Stats{
		LastUpdated:   s.cache.LastUpdated(),
		StocksTracked: s.cache.Len(),
		UptimeSeconds: s.clock.Now().Sub(s.started).Seconds(),
	}
}
