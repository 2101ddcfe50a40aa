package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/ayodelep/weathercat/pkg/logger"
)

// ErrCircuitOpen is returned when the breaker rejects an operation
var ErrCircuitOpen = errors.New("circuit breaker is open")

// Settings tunes a circuit breaker
type Settings struct {
	Name             string
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
	SuccessThreshold uint32
}

// CircuitBreaker wraps gobreaker with fallback handling and metrics
type CircuitBreaker struct {
	name     string
	cb       *gobreaker.CircuitBreaker
	fallback FallbackFunc
}

// NewCircuitBreaker creates a circuit breaker with the given settings.
// A nil fallback behaves like NoopFallback.
func NewCircuitBreaker(settings Settings, fallback FallbackFunc) *CircuitBreaker {
	name := nextBreakerName(settings.Name)
	if fallback == nil {
		fallback = NoopFallback
	}

	maxRequests := settings.SuccessThreshold
	if maxRequests == 0 {
		maxRequests = 1
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		MaxRequests: maxRequests,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			recordBreakerStateChange(name, from, to)
		},
	})

	recordBreakerState(name, cb.State())

	return &CircuitBreaker{name: name, cb: cb, fallback: fallback}
}

// Execute runs the operation through the breaker. When the breaker is open the
// fallback decides the result.
func (b *CircuitBreaker) Execute(ctx context.Context, operation Operation) (interface{}, error) {
	recordBreakerRequest(b.name)

	result, err := b.cb.Execute(func() (interface{}, error) {
		return operation(ctx)
	})
	if err == nil {
		return result, nil
	}

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		recordBreakerFallback(b.name)
		return b.fallback(ctx, ErrCircuitOpen)
	}

	recordBreakerFailure(b.name)
	return nil, err
}

// State returns the current breaker state
func (b *CircuitBreaker) State() gobreaker.State {
	return b.cb.State()
}
