package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/nmalhotra/cinebook/internal/config"
)

// tokenBucketScript refills and consumes atomically.
// KEYS[1] = bucket key
// ARGV[1] = capacity, ARGV[2] = refill per second, ARGV[3] = now (unix ms)
// Returns {allowed, remaining, retry_after_ms}.
const tokenBucketScript = `
local key      = KEYS[1]
local capacity = tonumber(ARGV[1])
local rate     = tonumber(ARGV[2])
local now_ms   = tonumber(ARGV[3])

local data   = redis.call('HMGET', key, 'tokens', 'ts')
local tokens = tonumber(data[1])
local ts     = tonumber(data[2])

if tokens == nil then
  tokens = capacity
  ts = now_ms
end

local elapsed = math.max(0, now_ms - ts) / 1000.0
tokens = math.min(capacity, tokens + elapsed * rate)

local allowed = 0
local retry_ms = 0
if tokens >= 1 then
  allowed = 1
  tokens = tokens - 1
else
  retry_ms = math.ceil(((1 - tokens) / rate) * 1000)
end

redis.call('HSET', key, 'tokens', tokens, 'ts', now_ms)
redis.call('PEXPIRE', key, math.ceil((capacity / rate) * 1000) + 60000)

return {allowed, math.floor(tokens), retry_ms}
`

// currentUserID reads the authenticated ID set by JWTAuth, 0 when
// anonymous.
func currentUserID(c echo.Context) uint64 {
	if v, ok := c.Get("user_id").(uint64); ok {
		return v
	}
	return 0
}

// buildRateKey keys the bucket per user when authenticated, per
// client IP otherwise.
func buildRateKey(cfg config.RateLimitConfig, c echo.Context) string {
	if uid := currentUserID(c); uid != 0 {
		return fmt.Sprintf("%s:user:%d", cfg.Prefix, uid)
	}
	ip := c.RealIP()
	if ip == "" {
		ip = "unknown"
	}
	return fmt.Sprintf("%s:ip:%s", cfg.Prefix, strings.ReplaceAll(ip, ":", "_"))
}

func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case string:
		var out int64
		fmt.Sscanf(n, "%d", &out)
		return out
	default:
		return 0
	}
}

// NewTokenBucket limits request rates with a Redis token bucket.
// Fails open when Redis is unreachable so a cache outage never takes
// the API down with it.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	script := redis.NewScript(tokenBucketScript)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := buildRateKey(cfg, c)
			nowMs := time.Now().UnixMilli()

			res, err := script.Run(ctx, rdb, []string{key},
				cfg.Capacity, cfg.RefillPerSec, nowMs).Result()
			if err != nil {
				return next(c)
			}

			vals, ok := res.([]interface{})
			if !ok || len(vals) != 3 {
				return next(c)
			}
			allowed := asInt64(vals[0]) == 1
			remaining := asInt64(vals[1])
			retryMs := asInt64(vals[2])

			c.Response().Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", cfg.Capacity))
			c.Response().Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

			if !allowed {
				retrySec := (retryMs + 999) / 1000
				c.Response().Header().Set("Retry-After", fmt.Sprintf("%d", retrySec))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error": "rate limit exceeded, slow down",
				})
			}
			return next(c)
		}
	}
}
