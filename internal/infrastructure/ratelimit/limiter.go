package ratelimit

import (
	"context"
	"time"
)

// Store counts requests per key within a fixed window. Incr returns the
// count after incrementing and the time the window expires; the first hit
// of a window starts it.
type Store interface {
	Incr(ctx context.Context, key string, window time.Duration) (count int64, resetAt time.Time, err error)
}

// Limiter is a fixed-window request counter: the window opens on a key's
// first request and the count resets when it expires.
type Limiter struct {
	Store  Store
	Max    int
	Window time.Duration
}

type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

func (l *Limiter) Allow(ctx context.Context, key string) (Decision, error) {
	count, resetAt, err := l.Store.Incr(ctx, key, l.Window)
	if err != nil {
		return Decision{}, err
	}
	remaining := l.Max - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   count <= int64(l.Max),
		Limit:     l.Max,
		Remaining: remaining,
		ResetAt:   resetAt,
	}, nil
}
