package ai

import (
	"fmt"
	"log/slog"
	"testing"
	"time"

	"resumeforge/internal/config"
	"resumeforge/internal/errors"
)

var breakerTestLogger = errors.NewLogger(slog.LevelError)

func breakerConfig(minRequests uint32, threshold float64) *config.OperationAIConfig {
	return &config.OperationAIConfig{
		Provider: "gemini",
		Model:    "gemini-2.0-flash",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      3,
			Interval:         60 * time.Second,
			Timeout:          60 * time.Second,
			MinRequests:      minRequests,
			FailureThreshold: threshold,
		},
	}
}

func TestIndependentCircuitBreakerConfigurations(t *testing.T) {
	// Each operation gets its own breaker; names must not collide so state
	// from one operation cannot trip another.
	operations := []string{"Parse", "Rewrite", "CoverLetter", "Interview"}

	for _, op := range operations {
		t.Run(op, func(t *testing.T) {
			cb := NewAICircuitBreaker[string](op, breakerConfig(3, 0.6), breakerTestLogger)
			stats := cb.GetStats()

			name, ok := stats["name"].(string)
			if !ok {
				t.Fatal("circuit breaker name not found")
			}
			if expected := "AI-" + op; name != expected {
				t.Errorf("expected circuit breaker name %q, got %q", expected, name)
			}

			state, ok := stats["state"].(string)
			if !ok {
				t.Fatal("circuit breaker state not found")
			}
			if state != "closed" {
				t.Errorf("expected initial state 'closed', got %q", state)
			}
		})
	}
}

func TestCircuitBreakerDisabled(t *testing.T) {
	cfg := breakerConfig(3, 0.6)
	cfg.CircuitBreaker.Enabled = false

	cb := NewAICircuitBreaker[int]("Parse", cfg, breakerTestLogger)
	if cb != nil {
		t.Fatal("expected nil breaker when disabled")
	}

	// A nil breaker still executes the function directly
	result, err := cb.Execute(func() (int, error) { return 42, nil })
	if err != nil {
		t.Fatalf("Execute on nil breaker: %v", err)
	}
	if result != 42 {
		t.Errorf("Execute = %d, want 42", result)
	}

	if !cb.IsHealthy() {
		t.Error("nil breaker should report healthy")
	}
	if enabled, _ := cb.GetStats()["enabled"].(bool); enabled {
		t.Error("nil breaker stats should report enabled=false")
	}
}

func TestCircuitBreakerTripsAfterFailures(t *testing.T) {
	cb := NewAICircuitBreaker[string]("Parse", breakerConfig(3, 0.6), breakerTestLogger)

	boom := fmt.Errorf("upstream unavailable")
	for range 5 {
		_, _ = cb.Execute(func() (string, error) { return "", boom })
	}

	if cb.IsHealthy() {
		t.Error("breaker should be open after repeated failures")
	}

	// Calls are now rejected without invoking the function
	invoked := false
	_, err := cb.Execute(func() (string, error) {
		invoked = true
		return "ok", nil
	})
	if err == nil {
		t.Error("expected rejection from open breaker")
	}
	if invoked {
		t.Error("open breaker should not invoke the wrapped function")
	}
}

func TestCircuitBreakerStaysClosedBelowThreshold(t *testing.T) {
	cb := NewAICircuitBreaker[string]("Rewrite", breakerConfig(10, 0.9), breakerTestLogger)

	// A couple of failures below minRequests must not trip the breaker
	boom := fmt.Errorf("transient")
	for range 3 {
		_, _ = cb.Execute(func() (string, error) { return "", boom })
	}

	if !cb.IsHealthy() {
		t.Error("breaker tripped below the minimum request count")
	}
}
