package coda

import (
	"context"
	"time"
)

// RetryPolicy bounds how often a failed remote call is repeated.
// Only errors for which IsRetryable reports true are retried.
type RetryPolicy struct {
	MaxRetries int           // extra attempts after the first; 0 disables retries
	BaseDelay  time.Duration // delay before the first retry, doubled each time
	MaxDelay   time.Duration // cap on a single delay
}

// DefaultRetryPolicy waits 500ms, 1s, ... up to 10s between attempts.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: DefaultMaxRetries,
		BaseDelay:  500 * time.Millisecond,
		MaxDelay:   10 * time.Second,
	}
}

// Delay returns the wait before retry number attempt (0-based).
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if attempt > 30 {
		attempt = 30
	}
	delay := p.BaseDelay * time.Duration(1<<uint(attempt))
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	return delay
}

// Do calls fn until it succeeds, fails with a non-retryable error, or the
// retry budget is spent. onRetry, if non-nil, is called before each wait.
// Cancelling ctx during a wait returns ctx.Err().
func (p RetryPolicy) Do(ctx context.Context, fn func() error, onRetry func(attempt int, delay time.Duration, err error)) error {
	for attempt := 0; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) || attempt >= p.MaxRetries {
			return err
		}
		delay := p.Delay(attempt)
		if onRetry != nil {
			onRetry(attempt+1, delay, err)
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
