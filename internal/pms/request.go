package pms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

var (
	// ErrUnexpectedStatus is returned when the server responds with a
	// non-2xx status code.
	ErrUnexpectedStatus = errors.New("unexpected status code")

	// ErrAttemptsExhausted is returned when every attempt of a request
	// failed. It wraps the last attempt's error.
	ErrAttemptsExhausted = errors.New("all attempts exhausted")
)

// do performs one logical request with bounded retry. The full URL is the
// exact concatenation of the base URL and path, with no normalization. Every
// failure is caught and logged; after the final attempt the last error is
// returned wrapped in ErrAttemptsExhausted.
func (c *Client) do(ctx context.Context, method, path string, body map[string]any) (map[string]any, error) {
	url := c.baseURL + path
	c.metrics.IncRequests()

	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		if attempt > 1 && c.delay > 0 {
			select {
			case <-time.After(c.delay):
			case <-ctx.Done():
				c.metrics.IncExhausted()
				return nil, fmt.Errorf("%w after %d attempts: %w", ErrAttemptsExhausted, attempt-1, context.Cause(ctx))
			}
		}

		c.logger.Debug("issuing request", "attempt", attempt, "method", method, "url", url)
		c.metrics.IncAttempts()

		result, err := c.attempt(ctx, method, url, body)
		if err == nil {
			c.logger.Debug("response received", "attempt", attempt, "url", url)
			return result, nil
		}

		lastErr = err
		c.metrics.IncFailures()
		if errors.Is(err, ErrUnexpectedStatus) {
			c.logger.Error("http status error", "attempt", attempt, "url", url, "error", err)
		} else {
			c.logger.Error("request error", "attempt", attempt, "url", url, "error", err)
		}
	}

	c.metrics.IncExhausted()
	c.logger.Error("request failed on every attempt", "attempts", c.attempts, "url", url, "error", lastErr)

	return nil, fmt.Errorf("%w after %d attempts: %w", ErrAttemptsExhausted, c.attempts, lastErr)
}

// attempt performs a single request/response cycle over a fresh transport.
// Keep-alives are disabled and idle connections closed on exit, so no
// connection survives the attempt.
func (c *Client) attempt(ctx context.Context, method, url string, body map[string]any) (map[string]any, error) {
	transport := &http.Transport{DisableKeepAlives: true}
	defer transport.CloseIdleConnections()

	conn := resty.New().
		SetTransport(transport).
		SetAuthToken(c.apiKey)
	if c.timeout > 0 {
		conn.SetTimeout(c.timeout)
	}

	req := conn.R().SetContext(ctx)

	var (
		resp *resty.Response
		err  error
	)
	switch method {
	case http.MethodPost:
		resp, err = req.
			SetHeader("Content-Type", "application/json").
			SetBody(body).
			Post(url)
	default:
		resp, err = req.Get(url)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to execute http request: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%d: %w", resp.StatusCode(), ErrUnexpectedStatus)
	}

	var result map[string]any
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return result, nil
}
