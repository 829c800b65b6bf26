package http

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/internal/utils"
	"github.com/Comraich/sortr-sub001/models"
)

// RateLimiter keeps a sliding log of attempt times per client. At most
// attempts fit inside any window; rejected attempts are not logged.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string][]time.Time

	attempts int
	window   time.Duration
	now      func() time.Time
}

func NewRateLimiter(attempts int, window time.Duration, now func() time.Time) *RateLimiter {
	if attempts <= 0 {
		attempts = 1
	}
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{
		clients:  make(map[string][]time.Time),
		attempts: attempts,
		window:   window,
		now:      now,
	}
}

// Allow takes one attempt for key. When the window is full it returns
// false and how long until the oldest attempt leaves the window.
func (l *RateLimiter) Allow(key string) (bool, time.Duration) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	log := l.live(l.clients[key], now)
	if len(log) >= l.attempts {
		l.clients[key] = log
		return false, log[0].Add(l.window).Sub(now)
	}

	l.clients[key] = append(log, now)
	return true, 0
}

// live drops the leading attempts that are a whole window old.
func (l *RateLimiter) live(log []time.Time, now time.Time) []time.Time {
	i := 0
	for i < len(log) && now.Sub(log[i]) >= l.window {
		i++
	}
	return log[i:]
}

// Sweep drops clients whose attempts all left the window. It returns how
// many were dropped.
func (l *RateLimiter) Sweep() int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, log := range l.clients {
		if len(l.live(log, now)) == 0 {
			delete(l.clients, key)
			removed++
		}
	}
	return removed
}

func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// withAuthRateLimit answers 429 once a client address has used up its auth
// attempts. It is a no-op when the limiter is disabled.
func (h *Handler) withAuthRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		ip := utils.ClientIP(r)
		allowed, wait := h.limiter.Allow(ip)
		if allowed {
			next.ServeHTTP(w, r)
			return
		}

		retryAfter := int(math.Ceil(wait.Seconds()))
		h.limitLog.Do(func() {
			logger.FromRequest(r).Warn().
				Str("ip", ip).
				Str("path", r.URL.Path).
				Int("retry_after", retryAfter).
				Msg("auth rate limit exceeded")
		})

		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		writeErrorResponse(w, http.StatusTooManyRequests, models.ErrorResponse{
			Error:      ErrTooManyRequests.Error(),
			Code:       models.CodeTooManyRequests,
			RetryAfter: retryAfter,
		})
	})
}
