package upstream

import (
	"context"
	"time"
)

// RetryPolicy is an explicit, parameterized retry policy for the upstream
// call. It is a value type so callers cannot share hidden state, and the
// sleep function is injectable so unit tests can run with a fake clock.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// BaseDelay is the delay before the first retry. Subsequent retries
	// double it: BaseDelay * 2^attemptIndex, attemptIndex zero-based.
	// No jitter is applied.
	BaseDelay time.Duration

	// Sleep waits for the given duration or until the context is done.
	// When nil, a real clock is used.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultRetryPolicy returns the retry policy used when none is configured:
// 3 total attempts with a 1 second base delay.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
	}
}

// Delay returns the backoff delay after the given zero-based attempt index.
func (p RetryPolicy) Delay(attemptIndex int) time.Duration {
	return p.BaseDelay << uint(attemptIndex)
}

// Wait sleeps for the backoff delay after the given attempt, respecting
// context cancellation.
func (p RetryPolicy) Wait(ctx context.Context, attemptIndex int) error {
	d := p.Delay(attemptIndex)
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// normalized returns a copy with zero values replaced by defaults.
func (p RetryPolicy) normalized() RetryPolicy {
	def := DefaultRetryPolicy()
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = def.MaxAttempts
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = def.BaseDelay
	}
	return p
}
