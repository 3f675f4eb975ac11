// Package retry implements the per-chunk retry policy.
//
// The policy is an explicit attempt loop rather than nested control flow so
// it can be tested independently of any network code: an attempt counter, the
// last error, and a linearly growing delay between attempts.
package retry

import (
	"context"
	"time"

	"github.com/blobkit/shuttle/errors"
)

// Policy describes the retry budget for one chunk.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// BaseDelay scales the backoff: the wait before attempt n+1 is n*BaseDelay,
	// so delays never decrease across attempts.
	BaseDelay time.Duration
}

// Do runs fn until it succeeds, returns a permanent error, or the attempt
// budget is exhausted. It returns the number of attempts made and the last
// error. Transient classification is delegated to errors.IsTransient.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) (int, error) {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := sleep(ctx, time.Duration(attempt-1)*p.BaseDelay); err != nil {
				return attempt - 1, err
			}
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return attempt, nil
		}
		if !errors.IsTransient(lastErr) {
			return attempt, lastErr
		}
	}
	return attempts, lastErr
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
