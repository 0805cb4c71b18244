package provider

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"stock-quote-proxy/internal/application"
)

var _ application.QuoteProvider = (*Paced)(nil)

// Paced wraps a provider and enforces a minimum time between calls, keeping
// bulk refreshes inside the upstream per-key budget. Callers wait until the
// interval has elapsed since the previous call, or return early if the
// context is canceled. The interval elapses from the previous call regardless
// of its outcome.
type Paced struct {
	P        application.QuoteProvider
	Interval time.Duration

	mu   sync.Mutex
	last time.Time
}

func (m *Paced) Get(ctx context.Context, symbol string) (json.RawMessage, error) {
	if m.Interval > 0 {
		m.mu.Lock()
		wait := time.Until(m.last.Add(m.Interval))
		m.mu.Unlock()
		if wait > 0 {
			t := time.NewTimer(wait)
			defer t.Stop()
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-t.C:
			}
		}
	}
	payload, err := m.P.Get(ctx, symbol)
	if m.Interval > 0 {
		m.mu.Lock()
		m.last = time.Now()
		m.mu.Unlock()
	}
	return payload, err
}
