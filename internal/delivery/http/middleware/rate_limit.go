package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"tracefield-site/internal/delivery/http/response"
	"tracefield-site/pkg/security"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: IP-based)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis
	KeyPrefix string
	// Whether to fail closed (reject) when Redis is unavailable
	FailClosed bool
	// OnLimited writes the refusal. Default: JSON 429 envelope.
	OnLimited gin.HandlerFunc
}

// Counter increments the hit count of key within window and returns the
// new count and when the window resets.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int, time.Time, error)
}

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
var rateLimitScript = goredis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`)

// RedisCounter counts in Redis so limits hold across instances.
type RedisCounter struct {
	client goredis.Scripter
}

func NewRedisCounter(client goredis.Scripter) *RedisCounter {
	return &RedisCounter{client: client}
}

func (r *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	ttlSeconds := int(window.Seconds())
	if ttlSeconds < 1 {
		ttlSeconds = 1
	}

	result, err := rateLimitScript.Run(ctx, r.client, []string{key}, ttlSeconds).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}
	if len(result) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}

	return int(result[0]), time.Now().Add(time.Duration(result[1]) * time.Second), nil
}

// rateLimitEntry tracks request count for a key (in-memory fallback)
type rateLimitEntry struct {
	count   int
	resetAt time.Time
}

// MemoryCounter is the single-instance fallback used without Redis.
type MemoryCounter struct {
	mu      sync.Mutex
	entries map[string]*rateLimitEntry
	now     func() time.Time
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{
		entries: make(map[string]*rateLimitEntry),
		now:     time.Now,
	}
}

func (m *MemoryCounter) Incr(_ context.Context, key string, window time.Duration) (int, time.Time, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	// Reset if window expired
	if !ok || now.After(entry.resetAt) {
		entry = &rateLimitEntry{resetAt: now.Add(window)}
		m.entries[key] = entry
	}
	entry.count++

	return entry.count, entry.resetAt, nil
}

// Sweep drops expired entries and returns how many were removed.
func (m *MemoryCounter) Sweep() int {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, entry := range m.entries {
		if now.After(entry.resetAt) {
			delete(m.entries, key)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (m *MemoryCounter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

// ContactRateLimitConfig limits contact submissions per client IP.
func ContactRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:contact:",
		FailClosed: false, // Fail open: the relay has its own spam protection
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// GlobalRateLimitConfig is the coarse per-IP limit for every route.
func GlobalRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:ip:",
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// RateLimitMiddleware enforces config. primary may be nil, in which case
// only the in-memory fallback counts.
func RateLimitMiddleware(config RateLimitConfig, primary Counter, fallback *MemoryCounter) gin.HandlerFunc {
	if config.KeyFunc == nil {
		config.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	if fallback == nil {
		fallback = NewMemoryCounter()
	}

	return func(c *gin.Context) {
		fullKey := config.KeyPrefix + config.KeyFunc(c)
		ctx := c.Request.Context()

		var count int
		var resetAt time.Time
		var err error

		if primary != nil {
			count, resetAt, err = primary.Incr(ctx, fullKey, config.Window)
			if err != nil {
				logRateLimitError(c, "redis_error", err)
				if config.FailClosed {
					response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", nil)
					c.Abort()
					return
				}
				count, resetAt, _ = fallback.Incr(ctx, fullKey, config.Window)
			}
		} else {
			count, resetAt, _ = fallback.Incr(ctx, fullKey, config.Window)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		// Check if limit exceeded
		if count > config.Limit {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			security.DefaultLogger().LogRateLimitTriggered(
				ctx,
				c.ClientIP(),
				c.GetHeader("User-Agent"),
				c.GetString(requestIDKey),
				c.FullPath(),
			)

			c.Abort()
			if config.OnLimited != nil {
				config.OnLimited(c)
				return
			}
			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(config.Limit-count))
		c.Next()
	}
}

// logRateLimitError logs Redis errors
func logRateLimitError(c *gin.Context, errorType string, err error) {
	security.DefaultLogger().Log(c.Request.Context(), security.SecurityEvent{
		Event:       security.EventRateLimitTriggered,
		SubjectType: "system",
		IP:          c.ClientIP(),
		Details: map[string]interface{}{
			"error_type": errorType,
			"error":      err.Error(),
		},
	})
}
