package cache

import (
	"context"
	"errors"
	"time"
)

// ErrTransient marks a failure worth retrying, such as a dropped connection
// or a 5xx response while downloading the puzzle database.
var ErrTransient = errors.New("transient failure")

// RetryableError marks err as retryable for [Retry].
type RetryableError struct{ Err error }

// Retryable wraps err so that [Retry] tries again. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err was wrapped by [Retryable].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff configures [Retry].
type Backoff struct {
	Attempts int
	Delay    time.Duration // doubled after every failed attempt
}

// DefaultBackoff makes three attempts starting with a one second delay.
var DefaultBackoff = Backoff{Attempts: 3, Delay: time.Second}

// Retry calls fn until it succeeds, returns a non-retryable error, the
// attempts run out or ctx is done.
func Retry(ctx context.Context, b Backoff, fn func() error) error {
	if b.Attempts < 1 {
		b.Attempts = 1
	}
	delay := b.Delay
	var lastErr error

	for i := 0; i < b.Attempts; i++ {
		if lastErr = fn(); lastErr == nil {
			return nil
		} else if !IsRetryable(lastErr) {
			return lastErr
		}

		if i < b.Attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}
