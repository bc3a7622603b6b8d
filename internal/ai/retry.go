package ai

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"time"

	"resumeforge/internal/errors"
)

// retryPolicy drives executeWithRetry. isRetryable is provider-specific
// since each SDK surfaces transport errors differently.
type retryPolicy struct {
	maxRetries  int
	logger      *errors.Logger
	isRetryable func(error) bool
}

// executeWithRetry runs an AI call with exponential backoff and jitter.
// Backoff is capped at 30 seconds; non-retryable errors stop immediately.
func executeWithRetry[T any](ctx context.Context, operation string, policy retryPolicy, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= policy.maxRetries; attempt++ {
		if attempt > 0 {
			policy.logger.Warn("Retrying AI operation",
				"operation", operation,
				"attempt", attempt,
				"max_retries", policy.maxRetries,
				"error", lastErr.Error())

			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			// Jitter prevents synchronized retries across concurrent requests
			jitterMax := big.NewInt(int64(float64(baseDelay) * 0.1))
			jitterBig, _ := rand.Int(rand.Reader, jitterMax)
			backoff := min(baseDelay+time.Duration(jitterBig.Int64()), 30*time.Second)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return zero, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			if attempt > 0 {
				policy.logger.Info("AI operation succeeded after retry",
					"operation", operation,
					"successful_attempt", attempt+1)
			}
			return result, nil
		}

		lastErr = err

		if !policy.isRetryable(err) {
			policy.logger.Debug("Error is not retryable, stopping retry attempts",
				"operation", operation,
				"error", err.Error())
			break
		}
	}

	policy.logger.LogError(lastErr, "AI operation failed after all retry attempts",
		"operation", operation,
		"total_attempts", policy.maxRetries+1)

	return zero, fmt.Errorf("operation '%s' failed after %d retries: %w", operation, policy.maxRetries, lastErr)
}
