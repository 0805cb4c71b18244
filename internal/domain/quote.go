package domain

import (
	"encoding/json"
	"time"
)

// Quote is one cached upstream response. Payload is the provider body kept
// verbatim; FetchedAt is unix milliseconds at store time.
type Quote struct {
	Symbol    string
	Payload   json.RawMessage
	FetchedAt int64
}

func (q Quote) FreshAt(now time.Time, ttl time.Duration) bool {
	return now.UnixMilli()-q.FetchedAt < ttl.Milliseconds()
}

// CurrentPrice peeks the "c" field of a quote payload. Used for logs and
// metrics only; the payload itself is never reshaped.
func CurrentPrice(payload json.RawMessage) (float64, bool) {
	var probe struct {
		C *float64 `json:"c"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil || probe.C == nil {
		return 0, false
	}
	return *probe.C, true
}
