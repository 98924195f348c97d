package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultIdle is how long a key may go unseen before its bucket is dropped.
const DefaultIdle = 10 * time.Minute

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// Limiter keeps one token bucket per key (client address, route, ...).
// Buckets idle longer than the idle window are swept on a later access.
type Limiter struct {
	mu        sync.Mutex
	m         map[string]*bucket
	rps       rate.Limit
	burst     int
	idle      time.Duration
	now       func() time.Time
	lastSweep time.Time
}

func New(rps float64, burst int) *Limiter {
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		m:     make(map[string]*bucket),
		rps:   rate.Limit(rps),
		burst: burst,
		idle:  DefaultIdle,
		now:   time.Now,
	}
}

// WithIdle overrides DefaultIdle.
func (l *Limiter) WithIdle(idle time.Duration) *Limiter {
	if idle > 0 {
		l.idle = idle
	}
	return l
}

// WithClock replaces time.Now.
func (l *Limiter) WithClock(now func() time.Time) *Limiter {
	l.now = now
	return l
}

// Allow reports whether one request for key may proceed now.
func (l *Limiter) Allow(key string) bool {
	now, lim := l.get(key)
	return lim.AllowN(now, 1)
}

// Len reports how many keys currently hold a bucket.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.m)
}

func (l *Limiter) get(key string) (time.Time, *rate.Limiter) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idle {
		l.sweep(now)
	}

	b, ok := l.m[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(l.rps, l.burst)}
		l.m[key] = b
	}
	b.seen = now
	return now, b.lim
}

// sweep runs at most once per idle window, so the map stays bounded by the
// keys active in roughly the last two windows.
func (l *Limiter) sweep(now time.Time) {
	for k, b := range l.m {
		if now.Sub(b.seen) >= l.idle {
			delete(l.m, k)
		}
	}
	l.lastSweep = now
}
