package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Common
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
	// HTTP
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// Upstream provider
	Provider       string        `mapstructure:"provider"`
	FinnhubBaseURL string        `mapstructure:"finnhub_base_url"`
	FinnhubAPIKey  string        `mapstructure:"finnhub_api_key"`
	FinnhubTimeout time.Duration `mapstructure:"finnhub_timeout"`
	// Refresher
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	RefreshDelay    time.Duration `mapstructure:"refresh_delay"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
	// Rate limit
	RateLimitEnabled bool          `mapstructure:"rate_limit_enabled"`
	RateLimitMax     int           `mapstructure:"rate_limit_max"`
	RateLimitWindow  time.Duration `mapstructure:"rate_limit_window"`
	RateLimitBackend string        `mapstructure:"rate_limit_backend"`
	// Redis (rate-limit store)
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
}

// envMappings binds flat config keys to the environment variable names the
// service is deployed with.
var envMappings = map[string]string{
	"env":                "ENV",
	"log_level":          "LOG_LEVEL",
	"port":               "PORT",
	"shutdown_timeout":   "SHUTDOWN_TIMEOUT",
	"provider":           "QUOTE_PROVIDER",
	"finnhub_base_url":   "FINNHUB_BASE_URL",
	"finnhub_api_key":    "FINNHUB_API_KEY",
	"finnhub_timeout":    "FINNHUB_TIMEOUT",
	"refresh_interval":   "REFRESH_INTERVAL",
	"refresh_delay":      "REFRESH_DELAY",
	"cache_ttl":          "CACHE_TTL",
	"rate_limit_enabled": "RATE_LIMIT_ENABLED",
	"rate_limit_max":     "RATE_LIMIT_MAX",
	"rate_limit_window":  "RATE_LIMIT_WINDOW",
	"rate_limit_backend": "RATE_LIMIT_BACKEND",
	"redis_addr":         "REDIS_ADDR",
	"redis_password":     "REDIS_PASSWORD",
	"redis_db":           "REDIS_DB",
}

// Load reads environment variables and applies defaults. The binaries load
// .env into the process environment before the first call.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("env", "local")
	v.SetDefault("log_level", "info")
	v.SetDefault("port", DefaultPort)
	v.SetDefault("shutdown_timeout", DefaultShutdownTimeout)
	v.SetDefault("provider", "finnhub")
	v.SetDefault("finnhub_base_url", DefaultFinnhubBaseURL)
	v.SetDefault("finnhub_api_key", "")
	v.SetDefault("finnhub_timeout", DefaultFinnhubTimeout)
	v.SetDefault("refresh_interval", DefaultRefreshInterval)
	v.SetDefault("refresh_delay", DefaultRefreshDelay)
	v.SetDefault("cache_ttl", DefaultCacheTTL)
	v.SetDefault("rate_limit_enabled", true)
	v.SetDefault("rate_limit_max", DefaultRateLimitMax)
	v.SetDefault("rate_limit_window", DefaultRateLimitWindow)
	v.SetDefault("rate_limit_backend", "memory")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)

	for key, envVar := range envMappings {
		if err := v.BindEnv(key, envVar); err != nil {
			return Config{}, fmt.Errorf("config: bind %s: %w", envVar, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}
