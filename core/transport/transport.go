package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// StatusError is returned for any non-2xx HTTP status that was not retried
// away. Callers use ClientError to distinguish a legitimate "no data" 4xx on
// an optional lookup from a real failure.
type StatusError struct {
	// StatusCode is the HTTP status of the final response.
	StatusCode int
	// Body is the (possibly truncated) response body, kept for diagnostics.
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http status %d: %s", e.StatusCode, e.Body)
}

// ClientError reports whether the status is in the 4xx range.
func (e *StatusError) ClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// retryable reports whether the status should be retried (server-side only).
func (e *StatusError) retryable() bool {
	return e.StatusCode >= 500
}

// Client executes HTTP requests with bounded exponential-backoff retry.
// It is stateless and safe to share across callers.
type Client struct {
	http  *http.Client
	cfg   Config
	log   *zap.Logger
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient creates a transport client with strict connection timeouts,
// mirroring how the rest of the application treats slow upstreams.
func NewClient(cfg Config, log *zap.Logger) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 15
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	inner := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	return &Client{
		http: &http.Client{
			Transport: inner,
			Timeout:   timeoutDuration,
		},
		cfg:   cfg,
		log:   log,
		sleep: sleepContext,
	}
}

// Do executes a request and returns the response body. Network errors and
// 5xx responses are retried with exponential backoff up to cfg.MaxRetries
// attempts; 4xx responses are returned immediately as a *StatusError without
// retry. A non-nil body is JSON-encoded.
func (c *Client) Do(ctx context.Context, method, url string, headers map[string]string, body any) ([]byte, error) {
	var encoded []byte
	if body != nil {
		var err error
		encoded, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	retries := c.cfg.MaxRetries
	if retries <= 0 {
		retries = 1
	}
	base := time.Duration(c.cfg.RetryBaseMillis) * time.Millisecond
	if base <= 0 {
		base = time.Second
	}

	var lastErr error
	for attempt := 0; attempt < retries; attempt++ {
		if attempt > 0 {
			if err := c.sleep(ctx, base*(1<<(attempt-1))); err != nil {
				return nil, err
			}
		}

		data, err := c.doOnce(ctx, method, url, headers, encoded)
		if err == nil {
			return data, nil
		}

		// 4xx is a caller-level outcome, never retried.
		if se, ok := err.(*StatusError); ok && !se.retryable() {
			return nil, se
		}

		lastErr = err
		c.log.Warn("request failed",
			zap.String("method", method),
			zap.String("url", url),
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", retries),
			zap.Error(err))
	}

	return nil, fmt.Errorf("max retries exceeded for %s %s: %w", method, url, lastErr)
}

// doOnce performs a single request attempt.
func (c *Client) doOnce(ctx context.Context, method, url string, headers map[string]string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(data), 512)}
	}

	return data, nil
}

// sleepContext waits for d or until the context is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
