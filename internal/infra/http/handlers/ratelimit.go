package handlers

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/xavierca1/quotedesk/internal/infra/metrics"
)

type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit answers 429 once a client IP exceeds the limiter's budget.
// Limiter errors let the request through.
func RateLimit(l Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := l.Allow(r.Context(), getClientIP(r))
			if err != nil {
				metrics.RecordIntegrationError("redis")
				log.Warn().Err(err).Msg("rate limiter unavailable")
				allowed = true
			}
			if !allowed {
				writeErrorResponse(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests, please try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP keys on the connection address only. Forwarding headers are
// honoured solely through chi's RealIP, which the router installs when the
// deployment sits behind a trusted proxy.
func getClientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// RateLimiter is a fixed window counter kept in process memory.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
	done     chan struct{}
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
		done:     make(chan struct{}),
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(_ context.Context, ip string) (bool, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true, nil
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true, nil
	}

	v.count++
	return v.count <= rl.limit, nil
}

func (rl *RateLimiter) Stop() {
	close(rl.done)
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.mu.Lock()
			now := time.Now()
			for ip, v := range rl.visitors {
				if now.Sub(v.lastReset) > rl.window*2 {
					delete(rl.visitors, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// RedisClient is the part of *redis.Client the shared limiter needs.
type RedisClient interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

// RedisRateLimiter shares the fixed window across API replicas.
type RedisRateLimiter struct {
	client RedisClient
	prefix string
	limit  int
	window time.Duration
}

func NewRedisRateLimiter(client RedisClient, prefix string, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{client: client, prefix: prefix, limit: limit, window: window}
}

func (rl *RedisRateLimiter) Allow(ctx context.Context, ip string) (bool, error) {
	key := fmt.Sprintf("%s:%s", rl.prefix, ip)

	count, err := rl.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("incr %s: %w", key, err)
	}
	if count == 1 {
		if err := rl.client.Expire(ctx, key, rl.window).Err(); err != nil {
			return false, fmt.Errorf("expire %s: %w", key, err)
		}
		return true, nil
	}
	if count <= int64(rl.limit) {
		return true, nil
	}

	// A failed first EXPIRE leaves the counter without a TTL; repair it before
	// denying so the client is not locked out for good.
	ttl, err := rl.client.TTL(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("ttl %s: %w", key, err)
	}
	if ttl == -1 {
		if err := rl.client.Expire(ctx, key, rl.window).Err(); err != nil {
			return false, fmt.Errorf("expire %s: %w", key, err)
		}
	}
	return false, nil
}
