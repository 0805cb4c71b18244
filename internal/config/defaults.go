package config

import "time"

const (
	DefaultPort            = "3000"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultFinnhubBaseURL  = "https://finnhub.io"
	DefaultFinnhubTimeout  = 10 * time.Second
	DefaultRefreshInterval = 3 * time.Minute
	DefaultRefreshDelay    = 1500 * time.Millisecond
	DefaultCacheTTL        = 3 * time.Minute
	DefaultRateLimitMax    = 100
	DefaultRateLimitWindow = 15 * time.Minute
)
