// Package provider holds the plumbing shared by the third-party API clients
// under internal/provider/...: outbound request execution, status checking
// and error classification.
//
// Every client maps transport failures and non-2xx responses to
// domain.ErrFetchFailed so callers can render a fallback without knowing
// which API failed.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkordes/tripplanner/internal/domain"
)

// DefaultTimeout bounds a single outbound request when the caller does not
// supply an http.Client.
const DefaultTimeout = 10 * time.Second

// NewHTTPClient returns an http.Client with the given timeout, or
// DefaultTimeout when timeout is zero.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// NewRequest builds an outbound request. A build failure, such as a
// malformed base URL, wraps domain.ErrFetchFailed like any other fetch error.
func NewRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrFetchFailed, err)
	}
	return req, nil
}

// DoJSON executes req and decodes a JSON response body into out.
// The returned error always wraps domain.ErrFetchFailed.
func DoJSON(c *http.Client, req *http.Request, out any) error {
	resp, err := c.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrFetchFailed, req.Method, req.URL.Host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return &StatusError{StatusCode: resp.StatusCode, Host: req.URL.Host}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", domain.ErrFetchFailed, req.URL.Host, err)
	}
	return nil
}

// StatusError reports a non-2xx response from a provider.
type StatusError struct {
	StatusCode int
	Host       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s returned status %d", domain.ErrFetchFailed, e.Host, e.StatusCode)
}

// Unwrap lets errors.Is(err, domain.ErrFetchFailed) match.
func (e *StatusError) Unwrap() error { return domain.ErrFetchFailed }
