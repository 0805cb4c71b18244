package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"time"

	"stock-quote-proxy/internal/application"
)

// Ensure Fake implements application.QuoteProvider.
var _ application.QuoteProvider = (*Fake)(nil)

// Fake serves Finnhub-shaped payloads without network access, for local runs
// without an API key. A zero Price derives a stable per-symbol value so a
// whole watchlist renders with distinct numbers.
type Fake struct {
	Price float64
}

func NewFake(price float64) *Fake { return &Fake{Price: price} }

func (f *Fake) Get(_ context.Context, symbol string) (json.RawMessage, error) {
	price := f.Price
	if price == 0 {
		h := fnv.New32a()
		_, _ = h.Write([]byte(symbol))
		price = 20 + float64(h.Sum32()%98000)/100.0
	}
	payload := fmt.Sprintf(
		`{"c":%.2f,"d":0,"dp":0,"h":%.2f,"l":%.2f,"o":%.2f,"pc":%.2f,"t":%d}`,
		price, price*1.01, price*0.99, price, price, time.Now().UTC().Unix(),
	)
	return json.RawMessage(payload), nil
}
