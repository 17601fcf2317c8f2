package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by backends for a key with no live entry.
	ErrNotFound = errors.New("not found")

	// ErrNetwork marks transport failures of remote collaborators: redis,
	// object storage and the LLM prompt parser.
	ErrNetwork = errors.New("network error")
)

// RetryableError marks a transient failure that [RetryWithBackoff] should
// try again.
type RetryableError struct{ Err error }

// Retryable marks err as transient. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether any error in err's chain is a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// MaxAttempts bounds the calls made by [RetryWithBackoff].
const MaxAttempts = 3

// BaseDelay is the wait before the second attempt; each further wait
// doubles. Tests shorten it.
var BaseDelay = time.Second

// RetryWithBackoff calls fn until it succeeds, returns an error not marked
// [Retryable], or [MaxAttempts] calls have been made. The last error is
// returned. A cancelled ctx stops the wait between attempts.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	var err error
	for attempt := range MaxAttempts {
		if attempt > 0 {
			wait := BaseDelay << (attempt - 1)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
	}
	return err
}
