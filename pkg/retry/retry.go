package retry

import (
	"context"
	"time"
)

// Policy is a bounded-retry policy: a maximum number of total attempts, a
// fixed delay between them, and a predicate deciding which errors are worth
// retrying. A nil Retryable retries every error.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
	Retryable   func(error) bool
}

// Do runs fn up to MaxAttempts times, sleeping Delay between attempts.
// It stops early on success, on a non-retryable error, or when ctx is done,
// and returns the last error observed.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if p.Retryable != nil && !p.Retryable(lastErr) {
			return lastErr
		}

		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.Delay):
		}
	}

	return lastErr
}
