package random

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ayodelep/weathercat/pkg/common"
	"github.com/ayodelep/weathercat/pkg/config"
	"github.com/ayodelep/weathercat/pkg/httpclient"
	"github.com/ayodelep/weathercat/pkg/logger"
	"github.com/ayodelep/weathercat/pkg/resilience"
)

// Provider supplies uniformly random integers in [1, n]. Abstracted so tests
// can substitute a deterministic source.
type Provider interface {
	Intn(ctx context.Context, n int) (int, error)
}

// random.org rejects requests without a browser-looking User-Agent
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/129.0.0.0 Safari/537.36"

// Client fetches random integers from random.org
type Client struct {
	http        *httpclient.Client
	breaker     *resilience.CircuitBreaker
	retryConfig resilience.RetryConfig
}

// NewClient creates a random.org client with a short request timeout and a
// circuit breaker around the upstream
func NewClient(cfg *config.RandomConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	retryConfig := resilience.ConservativeRetryConfig()
	retryConfig.InitialBackoff = 200 * time.Millisecond

	return &Client{
		http: httpclient.NewClient(cfg.BaseURL, timeout),
		breaker: resilience.NewCircuitBreaker(
			resilience.BuildSettings("random-org", 60, 30, 5, 1),
			resilience.GracefulDegradation("random-org"),
		),
		retryConfig: retryConfig,
	}
}

// Intn returns a random integer in [1, n] from random.org
func (c *Client) Intn(ctx context.Context, n int) (int, error) {
	if n < 1 {
		return 0, common.NewValidationError("random upper bound must be positive, got %d", n)
	}

	path := fmt.Sprintf("/integers/?num=1&min=1&max=%d&col=1&base=10&format=plain&rnd=new", n)
	headers := map[string]string{"User-Agent": userAgent}

	result, err := resilience.RetryWithBreaker(ctx, c.retryConfig, c.breaker, func(ctx context.Context) (interface{}, error) {
		return c.http.Get(ctx, path, headers)
	})
	if err != nil {
		logger.WithContext(ctx).Error("random.org request failed", zap.Error(err))
		return 0, common.NewUpstreamError("request to random.org failed: "+err.Error(), err)
	}

	raw := strings.TrimSpace(string(result.([]byte)))
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, common.NewUpstreamError(fmt.Sprintf("invalid response from random.org: %s", raw), err)
	}

	logger.WithContext(ctx).Debug("received random number", zap.Int("value", value), zap.Int("max", n))
	return value, nil
}
