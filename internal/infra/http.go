package infra

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

const (
	userAgent       = "folyo/1.0 (+https://github.com/folyo/folyo)"
	maxResponseBody = 16 << 20
)

// HTTPStatusError is returned for non-2xx upstream responses.
type HTTPStatusError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("upstream returned HTTP %d", e.StatusCode)
}

// HTTPClient issues upstream GET requests and records latency metrics.
type HTTPClient struct {
	client  *http.Client
	metrics *Metrics
}

// NewHTTPClient creates a client with the given timeout.
func NewHTTPClient(timeout time.Duration, metrics *Metrics) *HTTPClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		metrics: metrics,
	}
}

// WithClient replaces the underlying *http.Client.
func (c *HTTPClient) WithClient(hc *http.Client) *HTTPClient {
	cp := *c
	cp.client = hc
	return &cp
}

// Get performs a GET to url with the given headers and returns the body.
// Non-2xx responses yield *HTTPStatusError carrying the body.
// provider and endpoint only label metrics.
func (c *HTTPClient) Get(ctx context.Context, provider, endpoint, url string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.ObserveUpstream(provider, endpoint, "error", time.Since(start))
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	c.metrics.ObserveUpstream(provider, endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode, Body: body}
	}
	return body, nil
}
