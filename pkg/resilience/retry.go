package resilience

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"net/http"
	"time"
)

// Operation is a unit of work executed under retry or breaker protection
type Operation func(ctx context.Context) (interface{}, error)

// RetryConfig controls retry behavior for an operation
type RetryConfig struct {
	MaxAttempts       int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64
	EnableJitter      bool

	// RetryableErrors restricts retries to errors matching this list.
	// Empty means every error is retryable.
	RetryableErrors []error

	// RetryableChecker overrides RetryableErrors when set.
	RetryableChecker func(err error) bool
}

// DefaultRetryConfig returns the standard retry policy
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:       3,
		InitialBackoff:    1 * time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 2.0,
		EnableJitter:      true,
	}
}

// ConservativeRetryConfig returns a policy for expensive or rate-limited operations
func ConservativeRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:       2,
		InitialBackoff:    2 * time.Second,
		MaxBackoff:        10 * time.Second,
		BackoffMultiplier: 2.0,
		EnableJitter:      true,
	}
}

// Retry executes the operation with exponential backoff until it succeeds,
// exhausts MaxAttempts, or hits a non-retryable error. The last error is
// returned unwrapped.
func Retry(ctx context.Context, config RetryConfig, operation Operation) (interface{}, error) {
	maxAttempts := config.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := operation(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !shouldRetry(err, config) || attempt == maxAttempts {
			return nil, lastErr
		}

		backoff := calculateBackoff(attempt, config)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return nil, lastErr
}

// RetryWithBreaker executes the operation through the circuit breaker,
// retrying failures according to the retry policy. Breaker-open errors are
// never retried.
func RetryWithBreaker(ctx context.Context, config RetryConfig, breaker *CircuitBreaker, operation Operation) (interface{}, error) {
	return Retry(ctx, config, func(ctx context.Context) (interface{}, error) {
		return breaker.Execute(ctx, operation)
	})
}

// shouldRetry decides whether err warrants another attempt
func shouldRetry(err error, config RetryConfig) bool {
	if err == nil {
		return false
	}

	// Breaker-open and cancellation errors never benefit from retrying
	if errors.Is(err, ErrCircuitOpen) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	if config.RetryableChecker != nil {
		return config.RetryableChecker(err)
	}

	if len(config.RetryableErrors) > 0 {
		for _, retryable := range config.RetryableErrors {
			if errors.Is(err, retryable) {
				return true
			}
		}
		return false
	}

	return true
}

// calculateBackoff returns the wait before the given (1-based) attempt's retry
func calculateBackoff(attempt int, config RetryConfig) time.Duration {
	backoff := float64(config.InitialBackoff) * math.Pow(config.BackoffMultiplier, float64(attempt-1))
	if backoff > float64(config.MaxBackoff) {
		backoff = float64(config.MaxBackoff)
	}

	duration := time.Duration(backoff)
	if config.EnableJitter {
		duration = addJitter(duration)
	}
	return duration
}

// addJitter randomizes a duration into [d/2, d] to avoid thundering herds
func addJitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	return half + time.Duration(rand.Int63n(int64(half)+1))
}

// IsRetryableHTTPStatus reports whether an HTTP status is worth retrying
func IsRetryableHTTPStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return true
	default:
		return statusCode >= 500
	}
}
