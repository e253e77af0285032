package config

import (
	"os"
	"strconv"
	"time"
)

// RateLimitConfig controls the Redis token-bucket limiter applied to the
// API. Capacity is the burst size, RefillTokens are added every
// RefillInterval, TTL bounds how long idle buckets live in Redis.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	KeyStrategy    string
	Prefix         string
	Debug          bool
}

// LoadRateLimitConfig builds a RateLimitConfig from environment variables
// with conservative defaults suitable for development.
func LoadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled:        envBool("RATE_LIMIT_ENABLED", true),
		Capacity:       atoi(getenv("RATE_LIMIT_CAPACITY", "60")),
		RefillTokens:   atoi(getenv("RATE_LIMIT_REFILL_TOKENS", "1")),
		RefillInterval: parseDur(getenv("RATE_LIMIT_REFILL_INTERVAL", "1s")),
		TTL:            parseDur(getenv("RATE_LIMIT_TTL", "10m")),
		KeyStrategy:    getenv("RATE_LIMIT_KEY_STRATEGY", "ip_user_route"),
		Prefix:         getenv("RATE_LIMIT_PREFIX", "rl"),
		Debug:          envBool("RATE_LIMIT_DEBUG", false),
	}
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
