// Package redis fans crash events out over Redis pub/sub.
//
// Each archived bundle becomes one JSON PUBLISH on a configurable channel.
// There is no rejection signal on a PUBLISH, so every failure is treated
// as transient and retried with the same backoff as the webhook adapter.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/justapithecus/faultline/adapter"
)

// DefaultChannel is the default pub/sub channel name.
const DefaultChannel = "faultline:crash_reported"

// DefaultTimeout is the default per-publish timeout.
const DefaultTimeout = 5 * time.Second

// DefaultRetries is the default number of retry attempts.
const DefaultRetries = 3

// Config configures the Redis pub/sub adapter.
type Config struct {
	// URL is the Redis connection URL (required).
	// Format: redis://[:password@]host:port[/db]
	URL string
	// Channel is the pub/sub channel name (default: faultline:crash_reported).
	Channel string
	// Timeout is the per-publish timeout (default 5s).
	Timeout time.Duration
	// Retries is the number of retry attempts on failure (default 3).
	Retries int
}

// Adapter publishes crash events via Redis PUBLISH.
type Adapter struct {
	config Config
	client *goredis.Client
}

// New creates a Redis pub/sub adapter from the given config.
// Returns an error if the URL is empty or invalid.
func New(cfg Config) (*Adapter, error) {
	if cfg.URL == "" {
		return nil, errors.New("redis adapter requires a URL")
	}

	opts, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis adapter: invalid URL: %w", err)
	}

	if cfg.Channel == "" {
		cfg.Channel = DefaultChannel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Retries < 0 {
		return nil, fmt.Errorf("retries must be >= 0, got %d", cfg.Retries)
	}

	return &Adapter{
		config: cfg,
		client: goredis.NewClient(opts),
	}, nil
}

// Publish sends the event as a JSON PUBLISH to the configured channel,
// retrying every failure with exponential backoff until attempts run out.
func (a *Adapter) Publish(ctx context.Context, event *adapter.CrashReportedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("redis: marshal event: %w", err)
	}

	attempts := 1 + a.config.Retries
	var lastErr error
	for attempt := range attempts {
		if attempt == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("redis: context canceled: %w", err)
			}
		} else if err := waitBackoff(ctx, attempt); err != nil {
			return err
		}

		if lastErr = a.publishOnce(ctx, payload); lastErr == nil {
			return nil
		}
	}

	return fmt.Errorf("redis: failed after %d attempts: %w", attempts, lastErr)
}

// publishOnce runs a single PUBLISH under the per-attempt timeout.
func (a *Adapter) publishOnce(ctx context.Context, payload []byte) error {
	attemptCtx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()
	return a.client.Publish(attemptCtx, a.config.Channel, payload).Err()
}

// waitBackoff sleeps 500ms, 1s, 2s, ... ahead of the given retry attempt,
// bailing out if the context ends first.
func waitBackoff(ctx context.Context, attempt int) error {
	delay := 500 * time.Millisecond << uint(attempt-1)
	select {
	case <-ctx.Done():
		return fmt.Errorf("redis: context canceled during backoff: %w", ctx.Err())
	case <-time.After(delay):
		return nil
	}
}

// Close releases adapter resources.
func (a *Adapter) Close() error {
	return a.client.Close()
}

// Verify Adapter implements the adapter interface.
var _ adapter.Adapter = (*Adapter)(nil)
