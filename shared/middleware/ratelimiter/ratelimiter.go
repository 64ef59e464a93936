// Package ratelimiter keeps one token bucket per identity and forgets idle identities.
package ratelimiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// UserRateLimiter manages rate limiting for multiple identities
type UserRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*entry
	limit    rate.Limit
	burst    int
	ttl      time.Duration
	now      func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// New starts a limiter allowing ratePerSecond events with the given burst per identity.
// Identities idle for longer than ttl are dropped. Call Stop to release the janitor.
func New(ratePerSecond float64, burst int, ttl time.Duration) *UserRateLimiter {
	url := &UserRateLimiter{
		limiters: make(map[string]*entry),
		limit:    rate.Limit(ratePerSecond),
		burst:    burst,
		ttl:      ttl,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	go url.janitor()
	return url
}

// PerMinute is a convenience for config values expressed as events per minute.
func PerMinute(n float64, ttl time.Duration) *UserRateLimiter {
	return New(n/60, max(1, int(n)), ttl)
}

// Allow checks if a request should be allowed for a given identity
func (url *UserRateLimiter) Allow(identity string) bool {
	url.mu.Lock()
	e, ok := url.limiters[identity]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(url.limit, url.burst)}
		url.limiters[identity] = e
	}
	e.lastSeen = url.now()
	url.mu.Unlock()

	return e.limiter.Allow()
}

// Len returns the number of tracked identities.
func (url *UserRateLimiter) Len() int {
	url.mu.Lock()
	defer url.mu.Unlock()
	return len(url.limiters)
}

func (url *UserRateLimiter) cleanup() {
	cutoff := url.now().Add(-url.ttl)
	url.mu.Lock()
	defer url.mu.Unlock()
	for id, e := range url.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(url.limiters, id)
		}
	}
}

func (url *UserRateLimiter) janitor() {
	interval := url.ttl / 2
	if interval <= 0 {
		interval = time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			url.cleanup()
		case <-url.stop:
			return
		}
	}
}

func (url *UserRateLimiter) Stop() {
	url.stopOnce.Do(func() { close(url.stop) })
}
