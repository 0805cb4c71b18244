package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"stock-quote-proxy/internal/application"
	"stock-quote-proxy/internal/infrastructure/httpx"
	"stock-quote-proxy/internal/infrastructure/metrics"
)

const finnhubQuotePath = "/api/v1/quote"

type Finnhub struct {
	BaseURL string
	APIKey  string
	Client  *httpx.Client
}

var _ application.QuoteProvider = (*Finnhub)(nil)

// Get fetches the current quote for symbol and returns the response body
// verbatim. A syntactically valid response that carries no data (Finnhub
// answers unknown symbols with zeroed fields) is reported as an error.
func (p *Finnhub) Get(ctx context.Context, symbol string) (json.RawMessage, error) {
	if p.BaseURL == "" {
		return nil, errors.New("finnhub: missing base url")
	}
	if p.APIKey == "" {
		return nil, errors.New("finnhub: missing api key")
	}

	u, err := url.Parse(p.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("finnhub: invalid base url: %w", err)
	}
	u.Path = finnhubQuotePath
	q := u.Query()
	q.Set("symbol", symbol)
	q.Set("token", p.APIKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("finnhub: create request: %w", err)
	}

	client := p.Client
	if client == nil {
		client = &httpx.Client{}
	}

	start := time.Now()
	var payload json.RawMessage
	if err := client.DoJSON(ctx, req, &payload); err != nil {
		metrics.RecordUpstreamRequest("error", time.Since(start))
		return nil, fmt.Errorf("finnhub: get quote %s: %w", symbol, err)
	}
	metrics.RecordUpstreamRequest("ok", time.Since(start))

	var probe struct {
		C *float64 `json:"c"`
		T int64    `json:"t"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil || probe.C == nil {
		return nil, fmt.Errorf("finnhub: malformed quote for %s", symbol)
	}
	if *probe.C == 0 && probe.T == 0 {
		return nil, fmt.Errorf("finnhub: no data for %s", symbol)
	}
	return payload, nil
}
