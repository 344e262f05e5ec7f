package signal

import (
	"sync"

	"golang.org/x/time/rate"

	"github.com/dkeye/Huddle/internal/domain"
)

// ConnRateLimiter keeps one token bucket per connection.
type ConnRateLimiter struct {
	mu       sync.Mutex
	limiters map[domain.ConnectionID]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewConnRateLimiter returns nil when perSecond <= 0; a nil limiter allows
// everything.
func NewConnRateLimiter(perSecond float64, burst int) *ConnRateLimiter {
	if perSecond <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return &ConnRateLimiter{
		limiters: make(map[domain.ConnectionID]*rate.Limiter),
		limit:    rate.Limit(perSecond),
		burst:    burst,
	}
}

func (rl *ConnRateLimiter) Allow(cid domain.ConnectionID) bool {
	if rl == nil {
		return true
	}
	rl.mu.Lock()
	l, ok := rl.limiters[cid]
	if !ok {
		l = rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters[cid] = l
	}
	rl.mu.Unlock()
	return l.Allow()
}

func (rl *ConnRateLimiter) Forget(cid domain.ConnectionID) {
	if rl == nil {
		return
	}
	rl.mu.Lock()
	delete(rl.limiters, cid)
	rl.mu.Unlock()
}
