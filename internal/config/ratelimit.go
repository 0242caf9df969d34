package config

// RateLimitConfig tunes the Redis token-bucket middleware.  Capacity
// is the burst size; RefillPerSec the sustained rate.
type RateLimitConfig struct {
	Enabled      bool
	Capacity     int
	RefillPerSec float64
	Prefix       string
}

// LoadRateLimitConfig builds a RateLimitConfig from environment
// variables.  The defaults allow a burst of 60 requests refilled at
// one per second.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled:      envBool("RATE_LIMIT_ENABLED", true),
		Capacity:     envInt("RATE_LIMIT_CAPACITY", 60),
		RefillPerSec: envFloat("RATE_LIMIT_REFILL_PER_SEC", 1),
		Prefix:       envStr("RATE_LIMIT_PREFIX", "rl"),
	}
	if cfg.Capacity < 1 {
		cfg.Capacity = 1
	}
	if cfg.RefillPerSec <= 0 {
		cfg.RefillPerSec = 1
	}
	return cfg
}
