// Package ratelimit implements a process-local, fixed-window request counter.
//
// The window is fixed, not sliding: a burst straddling a window boundary can
// achieve up to twice the configured limit. That imprecision is accepted; the
// limiter exists to blunt brute-force attempts, not to meter traffic precisely.
// State lives in process memory only — it does not survive restarts and is not
// shared across instances.
package ratelimit

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"
)

// sweepChance is the per-attempt probability of evicting expired entries.
// Keeps memory bounded without a dedicated background goroutine.
const sweepChance = 0.01

// Result reports an accepted attempt.
type Result struct {
	// Remaining attempts left in the current window.
	Remaining int
	// ResetAt is when the current window ends.
	ResetAt time.Time
}

// LimitExceededError signals that the identifier is over its limit for the
// current window. It is recoverable: callers surface RetryAfter to the client.
type LimitExceededError struct {
	RetryAfter time.Duration
}

func (e *LimitExceededError) Error() string {
	secs := int(math.Ceil(e.RetryAfter.Seconds()))
	return fmt.Sprintf("Rate limit exceeded. Try again in %d seconds.", secs)
}

type entry struct {
	count   int
	resetAt time.Time
}

// Limiter counts attempts per identifier in fixed windows. Safe for
// concurrent use; increment-and-check is atomic per identifier, so N
// concurrent attempts never accept more than the limit within one window.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

// New creates a Limiter using the wall clock.
func New() *Limiter {
	return NewWithClock(time.Now)
}

// NewWithClock creates a Limiter with an injected clock, letting tests
// control window expiry deterministically.
func NewWithClock(now func() time.Time) *Limiter {
	return &Limiter{
		entries: make(map[string]*entry),
		now:     now,
	}
}

// Attempt records one attempt for identifier. It accepts and returns the
// remaining budget, or rejects with *LimitExceededError once the window's
// limit is reached. A fresh window starts on the first attempt and whenever
// the previous window has elapsed.
func (l *Limiter) Attempt(identifier string, limit int, window time.Duration) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	e, ok := l.entries[identifier]
	if !ok || now.After(e.resetAt) {
		e = &entry{resetAt: now.Add(window)}
		l.entries[identifier] = e
	}

	if e.count >= limit {
		return Result{}, &LimitExceededError{RetryAfter: e.resetAt.Sub(now)}
	}

	e.count++

	if rand.Float64() < sweepChance {
		l.sweep(now)
	}

	return Result{Remaining: limit - e.count, ResetAt: e.resetAt}, nil
}

// sweep evicts entries whose window has elapsed. Caller must hold l.mu.
func (l *Limiter) sweep(now time.Time) {
	for id, e := range l.entries {
		if now.After(e.resetAt) {
			delete(l.entries, id)
		}
	}
}

// Len reports the number of tracked identifiers, expired or not.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
