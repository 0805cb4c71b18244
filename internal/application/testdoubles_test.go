package application

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"stock-quote-proxy/internal/domain"
)

var ErrUpstream = errors.New("upstream error")

type fakeCache struct {
	store       map[string]domain.Quote
	lastUpdated int64
}

func (f *fakeCache) Put(q domain.Quote) {
	if f.store == nil {
		f.store = map[string]domain.Quote{}
	}
	f.store[q.Symbol] = q
}

func (f *fakeCache) Get(symbol string) (domain.Quote, bool) {
	q, ok := f.store[symbol]
	return q, ok
}

func (f *fakeCache) Snapshot() map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(f.store))
	for sym, q := range f.store {
		out[sym] = q.Payload
	}
	return out
}

func (f *fakeCache) TouchLastUpdated(t time.Time) { f.lastUpdated = t.UnixMilli() }

func (f *fakeCache) LastUpdated() int64 { return f.lastUpdated }

func (f *fakeCache) Len() int { return len(f.store) }

type fakeProvider struct {
	out   json.RawMessage
	err   error
	calls int
	last  string
}

func (f *fakeProvider) Get(_ context.Context, symbol string) (json.RawMessage, error) {
	f.calls++
	f.last = symbol
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

type fakeClock struct{ t time.Time }

func (f *fakeClock) Now() time.Time { return f.t }
