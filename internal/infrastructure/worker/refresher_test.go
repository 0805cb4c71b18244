package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"stock-quote-proxy/internal/application"
	"stock-quote-proxy/internal/domain"

	"github.com/stretchr/testify/require"
)

type memCache struct {
	mu          sync.RWMutex
	store       map[string]domain.Quote
	lastUpdated int64
}

func (m *memCache) Put(q domain.Quote) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.store == nil {
		m.store = map[string]domain.Quote{}
	}
	m.store[q.Symbol] = q
}

func (m *memCache) Get(symbol string) (domain.Quote, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.store[symbol]
	return q, ok
}

func (m *memCache) Snapshot() map[string]json.RawMessage {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]json.RawMessage, len(m.store))
	for sym, q := range m.store {
		out[sym] = q.Payload
	}
	return out
}

func (m *memCache) TouchLastUpdated(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastUpdated = t.UnixMilli()
}

func (m *memCache) LastUpdated() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastUpdated
}

func (m *memCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store)
}

func (m *memCache) has(symbol string) bool {
	_, ok := m.Get(symbol)
	return ok
}

type seqProvider struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]bool
}

func (p *seqProvider) Get(_ context.Context, symbol string) (json.RawMessage, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, symbol)
	if p.fail[symbol] {
		return nil, errors.New("upstream down")
	}
	return json.RawMessage(`{"c":101.5,"t":1}`), nil
}

func (p *seqProvider) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

func TestRefresher_ImmediatePass(t *testing.T) {
	c := &memCache{}
	p := &seqProvider{}

	var _ application.QuoteCache = c

	w := &Refresher{Cache: c, Provider: p, Symbols: []string{"AAPL", "MSFT", "NVDA"}, Interval: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go w.Start(ctx)
	time.Sleep(50 * time.Millisecond)

	require.Equal(t, 3, p.count())
	require.True(t, c.has("AAPL"))
	require.True(t, c.has("MSFT"))
	require.True(t, c.has("NVDA"))
	require.NotZero(t, c.LastUpdated())
}

func TestRefresher_SkipsFailedSymbols(t *testing.T) {
	c := &memCache{}
	prior := json.RawMessage(`{"c":99.0,"t":1}`)
	c.Put(domain.Quote{Symbol: "MSFT", Payload: prior, FetchedAt: 1})
	p := &seqProvider{fail: map[string]bool{"MSFT": true}}

	w := &Refresher{Cache: c, Provider: p, Symbols: []string{"AAPL", "MSFT", "NVDA"}, Interval: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go w.Start(ctx)
	time.Sleep(50 * time.Millisecond)

	require.True(t, c.has("AAPL"))
	require.True(t, c.has("NVDA"))
	// a failed symbol keeps whatever entry it had
	got, ok := c.Get("MSFT")
	require.True(t, ok)
	require.JSONEq(t, string(prior), string(got.Payload))
	// a pass with failures still counts as completed
	require.NotZero(t, c.LastUpdated())
}

func TestRefresher_RepeatsOnInterval(t *testing.T) {
	c := &memCache{}
	p := &seqProvider{}

	w := &Refresher{Cache: c, Provider: p, Symbols: []string{"AAPL", "MSFT"}, Interval: 20 * time.Millisecond}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go w.Start(ctx)
	time.Sleep(70 * time.Millisecond)
	cancel()

	require.GreaterOrEqual(t, p.count(), 4)
}

func TestRefresher_StopsOnCancel(t *testing.T) {
	c := &memCache{}
	p := &seqProvider{}

	w := &Refresher{Cache: c, Provider: p, Symbols: []string{"AAPL"}, Interval: 10 * time.Millisecond}
	ctx, cancel := context.WithCancel(context.Background())

	go w.Start(ctx)
	time.Sleep(35 * time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)

	n := p.count()
	time.Sleep(40 * time.Millisecond)
	require.Equal(t, n, p.count())
}
