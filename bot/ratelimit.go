/* ratelimit.go
 * Contains the per user command rate limiter
 */

package bot

import (
	"sync"

	"golang.org/x/time/rate"
)

const (
	// defaultCommandRate is one command every two seconds once the burst is used
	defaultCommandRate  = rate.Limit(0.5)
	defaultCommandBurst = 3
)

// userLimiter keeps one token bucket per discord user
type userLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

func newUserLimiter(limit rate.Limit, burst int) *userLimiter {
	return &userLimiter{
		limit:    limit,
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Allow reports whether userID may run a command now
func (l *userLimiter) Allow(userID string) bool {
	l.mu.Lock()
	limiter, ok := l.limiters[userID]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[userID] = limiter
	}
	l.mu.Unlock()
	return limiter.Allow()
}
