package application

import (
	"context"
	"encoding/json"
	"time"

	"stock-quote-proxy/internal/domain"
)

// QuoteProvider fetches one symbol from the upstream quote API.
type QuoteProvider interface {
	Get(ctx context.Context, symbol string) (json.RawMessage, error)
}

// QuoteCache holds the latest payload per symbol plus the timestamp of the
// last completed bulk refresh. Implementations must be safe for concurrent
// use; Snapshot never returns nil.
type QuoteCache interface {
	Put(q domain.Quote)
	Get(symbol string) (domain.Quote, bool)
	Snapshot() map[string]json.RawMessage
	TouchLastUpdated(t time.Time)
	LastUpdated() int64
	Len() int
}
