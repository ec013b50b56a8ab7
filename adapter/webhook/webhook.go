// Package webhook delivers crash events over HTTP POST.
//
// A crash announcement is worth one bounded delivery effort: transient
// failures get a few backed-off retries, a rejection from the receiver
// ends the attempt. Losing an event never blocks archiving.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/justapithecus/faultline/adapter"
	"github.com/justapithecus/faultline/iox"
)

// DefaultTimeout bounds a single POST, connection setup included.
const DefaultTimeout = 10 * time.Second

// DefaultRetries is the default number of retry attempts.
const DefaultRetries = 3

// Config configures the webhook adapter.
type Config struct {
	// URL is the HTTP endpoint to POST to (required).
	URL string
	// Headers are custom HTTP headers added to each request.
	Headers map[string]string
	// Timeout is the per-request timeout (default 10s).
	Timeout time.Duration
	// Retries is the number of retry attempts on failure (default 3).
	Retries int
}

// Adapter publishes crash events via HTTP POST.
type Adapter struct {
	config Config
	client *http.Client
}

// New creates a webhook adapter from the given config.
// Returns an error if the URL is empty.
func New(cfg Config) (*Adapter, error) {
	if cfg.URL == "" {
		return nil, errors.New("webhook adapter requires a URL")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Retries < 0 {
		return nil, fmt.Errorf("retries must be >= 0, got %d", cfg.Retries)
	}

	return &Adapter{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Publish posts the event as JSON. Network errors and 5xx responses are
// retried with exponential backoff; a 4xx means the receiver rejected the
// event itself, and no retry can change that.
func (a *Adapter) Publish(ctx context.Context, event *adapter.CrashReportedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("webhook: marshal event: %w", err)
	}

	attempts := 1 + a.config.Retries
	var lastErr error
	for attempt := range attempts {
		if attempt == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("webhook: context canceled: %w", err)
			}
		} else if err := a.waitBackoff(ctx, attempt); err != nil {
			return err
		}

		lastErr = a.post(ctx, payload)
		if lastErr == nil {
			return nil
		}
		if !retriable(lastErr) {
			return fmt.Errorf("webhook: non-retriable error: %w", lastErr)
		}
	}

	return fmt.Errorf("webhook: failed after %d attempts: %w", attempts, lastErr)
}

// waitBackoff sleeps 500ms, 1s, 2s, ... ahead of the given retry attempt,
// bailing out if the context ends first.
func (a *Adapter) waitBackoff(ctx context.Context, attempt int) error {
	delay := 500 * time.Millisecond << uint(attempt-1)
	select {
	case <-ctx.Done():
		return fmt.Errorf("webhook: context canceled during backoff: %w", ctx.Err())
	case <-time.After(delay):
		return nil
	}
}

// retriable reports whether a later attempt could still succeed.
// Only a 4xx status is permanent; network errors and 5xx may clear.
func retriable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code < 400 || statusErr.Code >= 500
	}
	return true
}

// StatusError is returned for non-2xx HTTP responses, carrying the code
// so the retry loop can tell rejection from outage.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// post performs one HTTP POST and returns nil on any 2xx.
func (a *Adapter) post(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range a.config.Headers {
		req.Header.Set(k, v)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer iox.DiscardClose(resp.Body)

	// Drain so the connection can be reused across retries.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode}
	}

	return nil
}

// Close releases adapter resources.
func (a *Adapter) Close() error {
	a.client.CloseIdleConnections()
	return nil
}

// Verify Adapter implements the adapter interface.
var _ adapter.Adapter = (*Adapter)(nil)
