package middleware

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/JonMunkholm/SponsorDesk/internal/core"
)

// ErrRateLimited is reported to clients that exceed their request budget.
var ErrRateLimited = errors.New("rate limit exceeded")

// RateLimiter is a per-client-IP token bucket. Each client may burst up to
// perMinute requests and is refilled at perMinute per minute.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a limiter allowing perMinute requests per client.
// A non-positive perMinute disables limiting.
func NewRateLimiter(perMinute int) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
	if perMinute <= 0 {
		rl.limit = rate.Inf
		return rl
	}
	rl.limit = rate.Every(time.Minute / time.Duration(perMinute))
	rl.burst = perMinute
	return rl
}

// Allow consumes one token for ip, reporting whether the request may proceed
// and, when it may not, how long until the next token.
func (rl *RateLimiter) Allow(ip string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now

	r := v.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, time.Minute
	}
	delay := r.DelayFrom(now)
	if delay == 0 {
		return true, 0
	}
	r.CancelAt(now)
	return false, delay
}

// Sweep forgets clients idle for longer than maxIdle.
func (rl *RateLimiter) Sweep(maxIdle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-maxIdle)
	removed := 0
	for ip, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, ip)
			removed++
		}
	}
	return removed
}

// Run sweeps idle clients every minute until ctx is cancelled.
func (rl *RateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Sweep(2 * time.Minute)
		}
	}
}

// Middleware rejects requests over budget with 429 and a Retry-After header.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, wait := rl.Allow(clientIP(r))
		if !ok {
			seconds := int(math.Ceil(wait.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(seconds))

			msg := core.MapError(ErrRateLimited)
			writeJSONError(w, http.StatusTooManyRequests, errorBody{
				Error:   ErrRateLimited.Error(),
				Message: msg.Message,
				Action:  msg.Action,
				Code:    msg.Code,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
