package ai

import (
	"fmt"

	"github.com/sony/gobreaker/v2"

	"resumeforge/internal/config"
	"resumeforge/internal/errors"
)

// AICircuitBreaker wraps AI calls with circuit breaker protection. It is
// generic over the provider's response type so Gemini and Anthropic calls can
// share one implementation. A nil breaker means protection is disabled.
type AICircuitBreaker[T any] struct {
	cb *gobreaker.CircuitBreaker[T]
}

// NewAICircuitBreaker creates a circuit breaker configured for a specific operation type
func NewAICircuitBreaker[T any](operationType string, cfg *config.OperationAIConfig, logger *errors.Logger) *AICircuitBreaker[T] {
	if !cfg.CircuitBreaker.Enabled {
		return nil
	}

	settings := gobreaker.Settings{
		Name:        fmt.Sprintf("AI-%s", operationType),
		MaxRequests: cfg.CircuitBreaker.MaxRequests,
		Interval:    cfg.CircuitBreaker.Interval,
		Timeout:     cfg.CircuitBreaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.CircuitBreaker.MinRequests &&
				failureRatio >= cfg.CircuitBreaker.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("Circuit breaker state changed",
				"name", name,
				"operation_type", operationType,
				"from", from.String(),
				"to", to.String())
		},
	}

	return &AICircuitBreaker[T]{cb: gobreaker.NewCircuitBreaker[T](settings)}
}

// NewModelCircuitBreaker creates a breaker for model availability checks.
// Model info is less critical, so it trips on a more lenient threshold.
func NewModelCircuitBreaker[T any](operationType string, cfg *config.OperationAIConfig, logger *errors.Logger) *AICircuitBreaker[T] {
	if !cfg.CircuitBreaker.Enabled {
		return nil
	}

	settings := gobreaker.Settings{
		Name:        fmt.Sprintf("AI-Model-%s", operationType),
		MaxRequests: cfg.CircuitBreaker.MaxRequests,
		Interval:    cfg.CircuitBreaker.Interval,
		Timeout:     cfg.CircuitBreaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.8
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("Circuit breaker state changed",
				"name", name,
				"operation_type", operationType,
				"from", from.String(),
				"to", to.String())
		},
	}

	return &AICircuitBreaker[T]{cb: gobreaker.NewCircuitBreaker[T](settings)}
}

// Execute runs the provided function with circuit breaker protection.
// A nil receiver executes the function directly.
func (cb *AICircuitBreaker[T]) Execute(fn func() (T, error)) (T, error) {
	if cb == nil || cb.cb == nil {
		return fn()
	}
	return cb.cb.Execute(fn)
}

// GetStats returns circuit breaker statistics
func (cb *AICircuitBreaker[T]) GetStats() map[string]any {
	if cb == nil || cb.cb == nil {
		return map[string]any{"enabled": false}
	}
	return map[string]any{
		"name":    cb.cb.Name(),
		"state":   cb.cb.State().String(),
		"counts":  cb.cb.Counts(),
		"enabled": true,
	}
}

// IsHealthy returns true if the circuit breaker is in closed state
func (cb *AICircuitBreaker[T]) IsHealthy() bool {
	if cb == nil || cb.cb == nil {
		return true
	}
	return cb.cb.State() == gobreaker.StateClosed
}
