package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

var _ Store = (*RedisStore)(nil)

// RedisStore keeps window counters in Redis so a restart does not hand every
// client a fresh budget. INCR opens the window on the first hit; PEXPIRE
// bounds it.
type RedisStore struct {
	Client *redis.Client
	Prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{Client: client, Prefix: "ratelimit:"}
}

func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	k := s.Prefix + key
	count, err := s.Client.Incr(ctx, k).Result()
	if err != nil {
		return 0, time.Time{}, err
	}
	if count == 1 {
		if err := s.Client.PExpire(ctx, k, window).Err(); err != nil {
			return 0, time.Time{}, err
		}
		return count, time.Now().Add(window), nil
	}
	ttl, err := s.Client.PTTL(ctx, k).Result()
	if err != nil {
		return 0, time.Time{}, err
	}
	if ttl < 0 {
		// counter lost its expiry (PEXPIRE never landed); rebound it
		if err := s.Client.PExpire(ctx, k, window).Err(); err != nil {
			return 0, time.Time{}, err
		}
		ttl = window
	}
	return count, time.Now().Add(ttl), nil
}
