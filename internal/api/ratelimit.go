package api

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

type clientInfo struct {
	start time.Time
	count int
}

// MemoryLimiter is a per-IP fixed-window limiter held in process memory.
type MemoryLimiter struct {
	max    int
	window time.Duration
	now    func() time.Time

	mu        sync.Mutex
	clients   map[string]*clientInfo
	lastSweep time.Time
}

func NewMemoryLimiter(maxRequests int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		max:     maxRequests,
		window:  window,
		now:     time.Now,
		clients: make(map[string]*clientInfo),
	}
}

// Allow counts one request from ip and reports whether it is within the limit.
func (l *MemoryLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)
	ci, ok := l.clients[ip]
	if !ok || now.Sub(ci.start) > l.window {
		l.clients[ip] = &clientInfo{start: now, count: 1}
		return true
	}
	ci.count++
	return ci.count <= l.max
}

// sweep drops clients whose window has expired, at most once per window.
// Must be called with mu held.
func (l *MemoryLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) <= l.window {
		return
	}
	l.lastSweep = now
	for ip, ci := range l.clients {
		if now.Sub(ci.start) > l.window {
			delete(l.clients, ip)
		}
	}
}

func (l *MemoryLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rlRequests.WithLabelValues(c.FullPath()).Inc()
		if !l.Allow(c.ClientIP()) {
			rlBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

// RedisLimiter is a fixed-window limiter shared between processes through
// Redis INCR/EXPIRE. It fails open when Redis is unreachable.
type RedisLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
}

func NewRedisLimiter(client *redis.Client, maxRequests int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, max: maxRequests, window: window}
}

// key format: rl:<window_seconds>:<identifier>
func (l *RedisLimiter) key(ident string) string {
	return "rl:" + strconv.FormatInt(int64(l.window.Seconds()), 10) + ":" + ident
}

// Allow counts one request from ident. err is set when Redis failed; the
// request is then allowed.
func (l *RedisLimiter) Allow(ctx context.Context, ident string) (bool, error) {
	key := l.key(ident)
	val, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return true, err
	}
	if val == 1 {
		l.client.Expire(ctx, key, l.window)
	}
	return val <= int64(l.max), nil
}

func (l *RedisLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rlRequests.WithLabelValues(c.FullPath()).Inc()
		ok, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			c.Header("X-RateLimit-Error", "redis-error")
		}
		if !ok {
			rlBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

// RateLimitOptions selects and sizes the limiter.
type RateLimitOptions struct {
	Max           int
	Window        time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// NewRateLimit returns nil when limiting is disabled (Max <= 0). With a Redis
// address that answers PING the limit is shared through Redis; otherwise it
// is kept in memory.
func NewRateLimit(opt RateLimitOptions, logger *log.Logger) gin.HandlerFunc {
	if opt.Max <= 0 {
		return nil
	}
	if opt.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: opt.RedisAddr, Password: opt.RedisPassword, DB: opt.RedisDB})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		err := client.Ping(ctx).Err()
		if err == nil {
			logger.Info("rate limiting through redis", "addr", opt.RedisAddr, "max", opt.Max, "window", opt.Window)
			return NewRedisLimiter(client, opt.Max, opt.Window).Middleware()
		}
		logger.Warn("redis unavailable, rate limiting in memory", "addr", opt.RedisAddr, "err", err)
		_ = client.Close()
	}
	logger.Info("rate limiting in memory", "max", opt.Max, "window", opt.Window)
	return NewMemoryLimiter(opt.Max, opt.Window).Middleware()
}
