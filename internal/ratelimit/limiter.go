package ratelimit

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const defaultIdleTimeout = 10 * time.Minute

// ClientLimiter keeps one token bucket per client key. Buckets unused for
// IdleTimeout are dropped, so the map only holds recently active clients.
type ClientLimiter struct {
	limiters  map[string]*clientEntry
	mu        sync.Mutex
	defaults  RateLimitConfig
	now       func() time.Time
	lastSweep time.Time
}

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
	IdleTimeout       time.Duration
}

func DefaultConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 10,
		BurstSize:         20,
		IdleTimeout:       defaultIdleTimeout,
	}
}

func NewClientLimiter(config RateLimitConfig) *ClientLimiter {
	if config.RequestsPerSecond <= 0 || config.BurstSize <= 0 {
		config = DefaultConfig()
	}
	if config.IdleTimeout <= 0 {
		config.IdleTimeout = defaultIdleTimeout
	}
	return &ClientLimiter{
		limiters: make(map[string]*clientEntry),
		defaults: config,
		now:      time.Now,
	}
}

func (p *ClientLimiter) GetLimiter(client string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	p.evictIdle(now)

	entry, exists := p.limiters[client]
	if !exists {
		entry = &clientEntry{
			limiter: rate.NewLimiter(rate.Limit(p.defaults.RequestsPerSecond), p.defaults.BurstSize),
		}
		p.limiters[client] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// evictIdle sweeps at most once per IdleTimeout. Caller holds p.mu.
func (p *ClientLimiter) evictIdle(now time.Time) {
	if now.Sub(p.lastSweep) < p.defaults.IdleTimeout {
		return
	}
	p.lastSweep = now
	for client, entry := range p.limiters {
		if now.Sub(entry.lastSeen) >= p.defaults.IdleTimeout {
			delete(p.limiters, client)
		}
	}
}

// Len reports how many clients currently hold a bucket.
func (p *ClientLimiter) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.limiters)
}

func (p *ClientLimiter) Allow(client string) bool {
	return p.GetLimiter(client).Allow()
}

// Middleware rejects requests over the per-IP budget with 429.
func (p *ClientLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !p.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
