package service

import (
	"sync"
	"time"
)

// AttemptLimiter caps how often a key (typically a client IP) may hit the
// credential endpoints. Each key gets a bucket of burst tokens that refills
// at refillPerSec. Safe for concurrent use.
type AttemptLimiter struct {
	mu           sync.Mutex
	buckets      map[string]*attemptBucket
	refillPerSec float64
	burst        float64
	now          func() time.Time
}

type attemptBucket struct {
	tokens float64
	seen   time.Time
}

// NewAttemptLimiter creates a limiter allowing burst attempts per key,
// refilling at refillPerSec tokens per second.
func NewAttemptLimiter(refillPerSec, burst float64) *AttemptLimiter {
	return &AttemptLimiter{
		buckets:      make(map[string]*attemptBucket),
		refillPerSec: refillPerSec,
		burst:        burst,
		now:          time.Now,
	}
}

// Allow consumes one token for key and reports whether the attempt may
// proceed. Stale buckets are pruned opportunistically on the way through,
// so no background goroutine is needed.
func (l *AttemptLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.pruneLocked(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &attemptBucket{tokens: l.burst, seen: now}
		l.buckets[key] = b
	}

	b.tokens += now.Sub(b.seen).Seconds() * l.refillPerSec
	if b.tokens > l.burst {
		b.tokens = l.burst
	}
	b.seen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// pruneLocked drops buckets idle long enough to have fully refilled; they
// are indistinguishable from fresh ones.
func (l *AttemptLimiter) pruneLocked(now time.Time) {
	idle := time.Duration(l.burst/l.refillPerSec) * time.Second
	if idle < time.Minute {
		idle = time.Minute
	}
	for key, b := range l.buckets {
		if now.Sub(b.seen) > idle {
			delete(l.buckets, key)
		}
	}
}
