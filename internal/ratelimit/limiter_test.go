package ratelimit

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_SequentialAttempts(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := NewWithClock(func() time.Time { return now })

	// First five attempts succeed with strictly decreasing remaining budget.
	for i, want := range []int{4, 3, 2, 1, 0} {
		res, err := l.Attempt("login:1.2.3.4", 5, time.Minute)
		require.NoError(t, err, "attempt %d", i+1)
		assert.Equal(t, want, res.Remaining)
		assert.Equal(t, now.Add(time.Minute), res.ResetAt)
	}

	// Sixth attempt is rejected with a retry-after within the window.
	_, err := l.Attempt("login:1.2.3.4", 5, time.Minute)
	var lee *LimitExceededError
	require.ErrorAs(t, err, &lee)
	assert.Greater(t, lee.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, lee.RetryAfter, time.Minute)
	assert.Contains(t, lee.Error(), "Try again in 60 seconds")
}

func TestLimiter_WindowReset(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := NewWithClock(func() time.Time { return now })

	for i := 0; i < 5; i++ {
		_, err := l.Attempt("id", 5, time.Minute)
		require.NoError(t, err)
	}
	_, err := l.Attempt("id", 5, time.Minute)
	require.Error(t, err)

	// Advance past the window; the first attempt of the fresh window succeeds
	// with a full budget again.
	now = now.Add(time.Minute + time.Second)
	res, err := l.Attempt("id", 5, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Remaining)
	assert.Equal(t, now.Add(time.Minute), res.ResetAt)
}

func TestLimiter_IdentifiersAreIndependent(t *testing.T) {
	l := New()

	for i := 0; i < 3; i++ {
		_, err := l.Attempt("login:10.0.0.1", 3, time.Minute)
		require.NoError(t, err)
	}
	_, err := l.Attempt("login:10.0.0.1", 3, time.Minute)
	require.Error(t, err)

	// A different identifier still has its full budget.
	res, err := l.Attempt("login:10.0.0.2", 3, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Remaining)
}

func TestLimiter_ConcurrentAttempts(t *testing.T) {
	const limit = 5
	const attempts = 50

	l := New()

	var wg sync.WaitGroup
	accepted := make(chan struct{}, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Attempt("concurrent", limit, time.Minute); err == nil {
				accepted <- struct{}{}
			} else {
				var lee *LimitExceededError
				assert.True(t, errors.As(err, &lee))
			}
		}()
	}
	wg.Wait()
	close(accepted)

	assert.Equal(t, limit, len(accepted), "exactly limit attempts must be accepted")
}

func TestLimiter_SweepEvictsExpiredEntries(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := NewWithClock(func() time.Time { return now })

	_, err := l.Attempt("a", 5, time.Minute)
	require.NoError(t, err)
	_, err = l.Attempt("b", 5, time.Minute)
	require.NoError(t, err)
	require.Equal(t, 2, l.Len())

	now = now.Add(2 * time.Minute)

	l.mu.Lock()
	l.sweep(now)
	l.mu.Unlock()

	assert.Equal(t, 0, l.Len())
}
