package ai

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	initialBackoff    = 1 * time.Second
	maxBackoff        = 30 * time.Second
	backoffMultiplier = 2.0
	attemptTimeout    = 60 * time.Second
)

// retryWithBackoff executes an API operation with exponential backoff.
// Non-retriable errors (auth, bad request) return immediately.
func (t *Triage) retryWithBackoff(ctx context.Context, operation string, fn func(context.Context) error) error {
	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt <= t.maxRetries; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
		err := fn(attemptCtx)
		cancel()

		if err == nil {
			if attempt > 0 {
				t.logger.Debug().Str("operation", operation).Int("attempt", attempt).Msg("api call recovered")
			}
			return nil
		}
		lastErr = err

		if !isRetriable(err) {
			return err
		}
		if attempt == t.maxRetries {
			break
		}
		if ctx.Err() != nil {
			return fmt.Errorf("%s: %w", operation, ctx.Err())
		}

		t.logger.Debug().
			Str("operation", operation).
			Int("attempt", attempt+1).
			Dur("backoff", backoff).
			Err(err).
			Msg("api call failed, retrying")

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return fmt.Errorf("%s: %w", operation, ctx.Err())
		}

		backoff = time.Duration(float64(backoff) * backoffMultiplier)
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operation, t.maxRetries+1, lastErr)
}

// isRetriable reports whether an API error is worth retrying: rate
// limits, overload, timeouts, and server-side failures are; everything
// else (auth, malformed request) is not.
func isRetriable(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"429", "529", "500", "502", "503", "504",
		"rate limit", "overloaded", "timeout", "deadline exceeded",
		"connection reset", "connection refused", "eof",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
