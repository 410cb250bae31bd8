package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// maxTrackedClients bounds the limiter map. When it is full the client
// seen least recently is dropped to make room.
const maxTrackedClients = 10000

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterCache struct {
	limiters map[string]*clientLimiter
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	max      int
}

func newLimiterCache(perMinute float64, burst int) *limiterCache {
	if perMinute <= 0 {
		perMinute = 5
	}
	if burst <= 0 {
		burst = 1
	}
	return &limiterCache{
		limiters: make(map[string]*clientLimiter),
		rate:     rate.Limit(perMinute / 60),
		burst:    burst,
		max:      maxTrackedClients,
	}
}

func (lc *limiterCache) get(key string) *rate.Limiter {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	now := time.Now()
	if entry, exists := lc.limiters[key]; exists {
		entry.lastSeen = now
		return entry.limiter
	}
	if len(lc.limiters) >= lc.max {
		lc.evictOldest()
	}

	entry := &clientLimiter{limiter: rate.NewLimiter(lc.rate, lc.burst), lastSeen: now}
	lc.limiters[key] = entry
	return entry.limiter
}

// evictOldest must be called with mu held.
func (lc *limiterCache) evictOldest() {
	var (
		oldestKey string
		oldest    time.Time
	)
	for key, entry := range lc.limiters {
		if oldestKey == "" || entry.lastSeen.Before(oldest) {
			oldestKey, oldest = key, entry.lastSeen
		}
	}
	delete(lc.limiters, oldestKey)
}

// LoginRateLimit throttles login submissions per client IP. Throttled
// requests are sent back to the login page with error=rate_limited.
func LoginRateLimit(perMinute float64, burst int) Middleware {
	cache := newLimiterCache(perMinute, burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			ip := clientIP(r)
			if !cache.get(ip).Allow() {
				slog.Warn("login rate limited", "ip", ip)
				http.Redirect(w, r, LoginPath+"?error=rate_limited", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
