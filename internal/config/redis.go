package config

// Redis backs the rate limiter and the public-endpoint response cache.  Both
// are optional: when the connection cannot be established at startup the
// client is nil and the middleware degrades to a pass-through.

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a Redis client from REDIS_ADDR (host:port,
// default localhost:6379), REDIS_PASSWORD and REDIS_DB.  It pings the server
// with a short timeout and returns nil when unreachable so callers can
// disable Redis-backed features gracefully.
func NewRedisClient() *redis.Client {
	addr := strOr("REDIS_ADDR", "localhost:6379")
	dbNum := 0
	if s := strOr("REDIS_DB", ""); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			dbNum = n
		}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strOr("REDIS_PASSWORD", ""),
		DB:       dbNum,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}

// RateLimitConfig tunes the fixed-window request limiter.
type RateLimitConfig struct {
	Enabled bool
	Limit   int           // requests allowed per window
	Window  time.Duration // window length
	Prefix  string        // redis key namespace
}

// LoadRateLimitConfig reads rate limiter settings with sane defaults.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled: strOr("RATE_LIMIT_ENABLED", "true") == "true",
		Limit:   intOr("RATE_LIMIT_REQUESTS", 60),
		Window:  durOr("RATE_LIMIT_WINDOW", time.Minute),
		Prefix:  strOr("RATE_LIMIT_PREFIX", "rl"),
	}
	if cfg.Limit < 1 {
		cfg.Limit = 1
	}
	return cfg
}

// CacheConfig tunes the GET response cache for public browse endpoints.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadCacheConfig reads response cache settings with sane defaults.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: strOr("CACHE_ENABLED", "true") == "true",
		TTL:     durOr("CACHE_TTL", 30*time.Second),
		Prefix:  strOr("CACHE_PREFIX", "cache"),
	}
}

// durOr returns the variable parsed as a duration, or a default when unset
// or malformed.
func durOr(key string, def time.Duration) time.Duration {
	v := strOr(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
