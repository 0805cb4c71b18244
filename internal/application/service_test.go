package application

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"stock-quote-proxy/internal/domain"

	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func Test_GetQuote_MissingSymbol(t *testing.T) {
	t.Parallel()
	svc := NewQuoteService(&fakeCache{}, &fakeProvider{}, 3*time.Minute)

	_, err := svc.GetQuote(context.Background(), "   ")
	require.ErrorIs(t, err, ErrBadRequest)
}

func Test_GetQuote_FreshCacheHit(t *testing.T) {
	t.Parallel()
	payload := json.RawMessage(`{"c":150.25,"h":151,"l":149,"o":150,"pc":149.8}`)
	cache := &fakeCache{store: map[string]domain.Quote{
		"AAPL": {Symbol: "AAPL", Payload: payload, FetchedAt: base.UnixMilli()},
	}}
	prov := &fakeProvider{err: ErrUpstream}
	clk := &fakeClock{t: base.Add(179 * time.Second)}
	svc := NewQuoteService(cache, prov, 3*time.Minute, WithClock(clk))

	got, err := svc.GetQuote(context.Background(), "AAPL")
	require.NoError(t, err)
	require.JSONEq(t, string(payload), string(got))
	require.Zero(t, prov.calls)
}

func Test_GetQuote_StaleEntryRefetches(t *testing.T) {
	t.Parallel()
	stale := json.RawMessage(`{"c":150.25}`)
	fresh := json.RawMessage(`{"c":151.10}`)
	cache := &fakeCache{store: map[string]domain.Quote{
		"AAPL": {Symbol: "AAPL", Payload: stale, FetchedAt: base.UnixMilli()},
	}}
	prov := &fakeProvider{out: fresh}
	clk := &fakeClock{t: base.Add(181 * time.Second)}
	svc := NewQuoteService(cache, prov, 3*time.Minute, WithClock(clk))

	got, err := svc.GetQuote(context.Background(), "AAPL")
	require.NoError(t, err)
	require.JSONEq(t, string(fresh), string(got))
	require.Equal(t, 1, prov.calls)
	require.Equal(t, clk.t.UnixMilli(), cache.store["AAPL"].FetchedAt)
}

func Test_GetQuote_MissFetchesAndCaches(t *testing.T) {
	t.Parallel()
	payload := json.RawMessage(`{"c":412.5}`)
	cache := &fakeCache{}
	prov := &fakeProvider{out: payload}
	clk := &fakeClock{t: base}
	svc := NewQuoteService(cache, prov, 3*time.Minute, WithClock(clk))

	got, err := svc.GetQuote(context.Background(), "msft")
	require.NoError(t, err)
	require.JSONEq(t, string(payload), string(got))
	require.Equal(t, "MSFT", prov.last)
	require.Contains(t, cache.store, "MSFT")
	require.Equal(t, base.UnixMilli(), cache.store["MSFT"].FetchedAt)
}

func Test_GetQuote_UpstreamFailure(t *testing.T) {
	t.Parallel()
	stale := json.RawMessage(`{"c":150.25}`)
	cache := &fakeCache{store: map[string]domain.Quote{
		"AAPL": {Symbol: "AAPL", Payload: stale, FetchedAt: base.UnixMilli()},
	}}
	prov := &fakeProvider{err: ErrUpstream}
	clk := &fakeClock{t: base.Add(10 * time.Minute)}
	svc := NewQuoteService(cache, prov, 3*time.Minute, WithClock(clk))

	// The stale entry must not be served once the window has passed.
	_, err := svc.GetQuote(context.Background(), "AAPL")
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, 1, prov.calls)
	require.Equal(t, base.UnixMilli(), cache.store["AAPL"].FetchedAt)
}

func Test_Overview(t *testing.T) {
	t.Parallel()
	cache := &fakeCache{store: map[string]domain.Quote{
		"AAPL": {Symbol: "AAPL", Payload: json.RawMessage(`{"c":1}`)},
		"MSFT": {Symbol: "MSFT", Payload: json.RawMessage(`{"c":2}`)},
	}}
	cache.TouchLastUpdated(base)
	svc := NewQuoteService(cache, &fakeProvider{}, 3*time.Minute)

	data, last := svc.Overview()
	require.Len(t, data, 2)
	require.Contains(t, data, "AAPL")
	require.Contains(t, data, "MSFT")
	require.Equal(t, base.UnixMilli(), last)
}

func Test_Stats(t *testing.T) {
	t.Parallel()
	payload := json.RawMessage(`{"c":150.25,"t":1735689600}`)
	cache := &fakeCache{}
	cache.TouchLastUpdated(base)
	cache.Put(domain.Quote{Symbol: "AAPL", Payload: payload, FetchedAt: base.UnixMilli()})
	cache.Put(domain.Quote{Symbol: "MSFT", Payload: payload, FetchedAt: base.UnixMilli()})
	clk := &fakeClock{t: base}
	svc := NewQuoteService(cache, &fakeProvider{}, 3*time.Minute, WithClock(clk))

	clk.t = base.Add(90 * time.Second)
	st := svc.Stats()
	require.Equal(t, base.UnixMilli(), st.LastUpdated)
	require.Equal(t, 2, st.StocksTracked)
	require.InDelta(t, 90.0, st.UptimeSeconds, 1e-9)
}
