package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ayodelep/weathercat/pkg/resilience"
)

const defaultTimeout = 30 * time.Second

// Client is a base-URL HTTP client with optional bounded retry. The weather
// and random providers it fronts are read-only, so only GET is exposed.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	retryConfig *resilience.RetryConfig
}

// Option configures a Client
type Option func(*Client)

// NewClient creates a client for the given base URL. An optional timeout
// overrides the default; zero falls back to the default.
func NewClient(baseURL string, timeout ...time.Duration) *Client {
	t := defaultTimeout
	if len(timeout) > 0 && timeout[0] > 0 {
		t = timeout[0]
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: t,
		},
	}
}

// WithOptions applies options and returns the client for chaining
func (c *Client) WithOptions(opts ...Option) *Client {
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithRetry enables retries with the given policy
func WithRetry(config resilience.RetryConfig) Option {
	return func(c *Client) {
		c.retryConfig = &config
	}
}

// WithDefaultRetry enables retries with the default policy and HTTP-aware
// retryable classification
func WithDefaultRetry() Option {
	config := resilience.DefaultRetryConfig()
	config.RetryableChecker = isHTTPRetryable
	return WithRetry(config)
}

// HTTPError is returned for responses with a 4xx or 5xx status
type HTTPError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// isHTTPRetryable reports whether an error from this client is worth retrying.
// HTTP errors follow status-based classification; transport errors are always
// retryable.
func isHTTPRetryable(err error) bool {
	if err == nil {
		return false
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return resilience.IsRetryableHTTPStatus(httpErr.StatusCode)
	}
	return true
}

// Get performs a GET request against baseURL+path and returns the response body
func (c *Client) Get(ctx context.Context, path string, headers map[string]string) ([]byte, error) {
	if c.retryConfig == nil {
		return c.do(ctx, path, headers)
	}

	result, err := resilience.Retry(ctx, *c.retryConfig, func(ctx context.Context) (interface{}, error) {
		return c.do(ctx, path, headers)
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

func (c *Client) do(ctx context.Context, path string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}
