package worker

import (
	"context"
	"time"

	"stock-quote-proxy/internal/application"
	"stock-quote-proxy/internal/domain"
	"stock-quote-proxy/internal/infrastructure/metrics"

	"go.uber.org/zap"
)

var _ application.Worker = (*Refresher)(nil)

// Refresher keeps the quote cache warm. A pass walks every watched symbol
// through the provider and passes repeat on a fixed interval. Passes run on
// the Start goroutine, so a slow pass delays the next one instead of
// overlapping it.
type Refresher struct {
	Cache    application.QuoteCache
	Provider application.QuoteProvider
	Symbols  []string

	Interval time.Duration
	Log      *zap.Logger
}

func (w *Refresher) Start(ctx context.Context) {
	log := w.Log
	if log == nil {
		log = zap.NewNop()
	}
	if w.Interval <= 0 {
		w.Interval = 3 * time.Minute
	}
	if len(w.Symbols) == 0 {
		w.Symbols = domain.WatchedSymbols
	}

	t := time.NewTicker(w.Interval)
	defer t.Stop()

	log.Info("refresher_started",
		zap.Duration("interval", w.Interval),
		zap.Int("symbols", len(w.Symbols)),
	)
	w.pass(ctx, log)
	for {
		select {
		case <-ctx.Done():
			log.Info("refresher_stopped")
			return
		case <-t.C:
			w.pass(ctx, log)
		}
	}
}

// pass fetches every symbol once, caching what succeeds. An abandoned pass
// (context canceled mid-walk) does not advance the cache's last-updated
// stamp; only a completed walk does.
func (w *Refresher) pass(ctx context.Context, log *zap.Logger) {
	start := time.Now()
	updated, failed := 0, 0
	for _, sym := range w.Symbols {
		if ctx.Err() != nil {
			return
		}
		payload, err := w.Provider.Get(ctx, sym)
		if err != nil {
			failed++
			log.Warn("refresh_failed", zap.String("symbol", sym), zap.Error(err))
			continue
		}
		w.Cache.Put(domain.Quote{Symbol: sym, Payload: payload, FetchedAt: time.Now().UnixMilli()})
		if price, ok := domain.CurrentPrice(payload); ok {
			metrics.UpdateCurrentPrice(sym, price)
			log.Debug("refresh_updated", zap.String("symbol", sym), zap.Float64("price", price))
		}
		updated++
	}
	w.Cache.TouchLastUpdated(time.Now())
	metrics.RecordRefreshPass(updated, failed, time.Since(start))
	log.Info("refresh_pass_done",
		zap.Int("updated", updated),
		zap.Int("failed", failed),
		zap.Duration("duration", time.Since(start)),
	)
}
