package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// RetryConfig controls retry behavior.
type RetryConfig struct {
	MaxTries        uint
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsed      time.Duration
}

// DefaultRetryConfig suits the public REST API.
var DefaultRetryConfig = RetryConfig{
	MaxTries:        3,
	InitialInterval: 300 * time.Millisecond,
	MaxInterval:     5 * time.Second,
	MaxElapsed:      30 * time.Second,
}

func (rc RetryConfig) options() []backoff.RetryOption {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = rc.InitialInterval
	bo.MaxInterval = rc.MaxInterval
	return []backoff.RetryOption{
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(rc.MaxTries),
		backoff.WithMaxElapsedTime(rc.MaxElapsed),
	}
}

// statusError - ответ, который имеет смысл повторить (429, 5xx).
type statusError struct {
	StatusCode int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("github: status %d", e.StatusCode)
}

func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// getJSON performs a GET with exponential backoff and decodes a 200 body into out.
// 429 and 5xx are retried; everything else fails on the first attempt.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	operation := func() (struct{}, error) {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return struct{}{}, backoff.Permanent(err)
			}
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return struct{}{}, backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/vnd.github.v3+json")
		req.Header.Set("User-Agent", defaultUserAgent)
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return struct{}{}, backoff.Permanent(err)
			}
			return struct{}{}, err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
		case isRetryableStatus(resp.StatusCode):
			return struct{}{}, &statusError{StatusCode: resp.StatusCode}
		case resp.StatusCode == http.StatusNotFound:
			return struct{}{}, backoff.Permanent(ErrNotFound)
		case resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0":
			return struct{}{}, backoff.Permanent(ErrRateLimited)
		default:
			return struct{}{}, backoff.Permanent(fmt.Errorf("github: %s returned status %d", path, resp.StatusCode))
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return struct{}{}, backoff.Permanent(fmt.Errorf("github: decode %s: %w", path, err))
		}
		return struct{}{}, nil
	}

	_, err := backoff.Retry(ctx, operation, c.retry.options()...)
	var se *statusError
	if errors.As(err, &se) && se.StatusCode == http.StatusTooManyRequests {
		return ErrRateLimited
	}
	return err
}
