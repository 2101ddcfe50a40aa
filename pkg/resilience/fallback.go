package resilience

import (
	"context"

	"go.uber.org/zap"

	"github.com/ayodelep/weathercat/pkg/logger"
)

// FallbackFunc is executed when the breaker is open or overloaded.
type FallbackFunc func(ctx context.Context, err error) (interface{}, error)

// NoopFallback returns the breaker open error without additional handling.
func NoopFallback(ctx context.Context, err error) (interface{}, error) {
	return nil, ErrCircuitOpen
}

// GracefulDegradation returns ErrCircuitOpen but logs a structured warning.
// Use this when the caller handles the error with its own fallback logic.
func GracefulDegradation(serviceName string) FallbackFunc {
	return func(ctx context.Context, err error) (interface{}, error) {
		logger.Warn("circuit breaker open, service degraded",
			zap.String("service", serviceName),
			zap.Error(err),
		)
		return nil, ErrCircuitOpen
	}
}
