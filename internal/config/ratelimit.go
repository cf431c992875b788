package config

import "time"

// RateLimitConfig defines settings for the fixed-window limiter that guards
// the authentication endpoints (login, register, code issuance). When
// Enabled is false or no Redis client is available the limiter is a no-op.
type RateLimitConfig struct {
	Enabled  bool
	Capacity int           // requests allowed per window
	Window   time.Duration // window length
	Prefix   string        // Redis key namespace
}

// LoadRateLimitConfig reads environment variables to build a RateLimitConfig.
// Defaults allow 30 requests per minute per client IP and route.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled:  envBool("RATE_LIMIT_ENABLED", true),
		Capacity: envInt("RATE_LIMIT_CAPACITY", 30),
		Window:   envDur("RATE_LIMIT_WINDOW", time.Minute),
		Prefix:   envStr("RATE_LIMIT_PREFIX", "rl"),
	}
	if cfg.Capacity < 1 {
		cfg.Capacity = 1
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	return cfg
}
