package ratelimit

import (
	"sync"
	"time"
)

// UnknownIdentity buckets requests whose client address cannot be resolved.
// All such requests share one budget.
const UnknownIdentity = "unknown"

// record tracks requests for one client identity within its current window.
type record struct {
	count         int
	windowResetAt time.Time
}

// Limiter is a per-identity fixed-window rate limiter. Window expiry is
// evaluated lazily on the next request for that identity; no background
// sweeps run. Records are never removed, so memory grows with the number
// of distinct identities ever seen (see Identities).
type Limiter struct {
	maxRequests int
	window      time.Duration

	mu      sync.Mutex
	records map[string]*record
}

// Decision is the outcome of an admission check. Rejection is a retryable
// condition, not an error: RetryAfterSeconds tells the caller when the
// window opens again.
type Decision struct {
	Allowed           bool
	RetryAfterSeconds int
}

// New creates a limiter admitting at most maxRequests per identity within
// each window.
func New(maxRequests int, window time.Duration) *Limiter {
	if maxRequests <= 0 {
		maxRequests = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Limiter{
		maxRequests: maxRequests,
		window:      window,
		records:     make(map[string]*record),
	}
}

// Allow records a request for identity and decides admission.
func (l *Limiter) Allow(identity string) Decision {
	return l.allowAt(identity, time.Now())
}

func (l *Limiter) allowAt(identity string, now time.Time) Decision {
	if identity == "" {
		identity = UnknownIdentity
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[identity]
	if !ok || now.After(rec.windowResetAt) {
		l.records[identity] = &record{count: 1, windowResetAt: now.Add(l.window)}
		return Decision{Allowed: true}
	}

	if rec.count < l.maxRequests {
		rec.count++
		return Decision{Allowed: true}
	}

	// Ceiling division so any partial second still counts.
	remaining := rec.windowResetAt.Sub(now)
	retryAfter := int((remaining + time.Second - 1) / time.Second)
	return Decision{Allowed: false, RetryAfterSeconds: retryAfter}
}

// Identities returns the number of tracked client identities.
func (l *Limiter) Identities() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}
