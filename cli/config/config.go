package config

import (
	"fmt"
	"time"
)

// Config represents a faultline.yaml configuration file.
// All values are optional and act as defaults for CLI flags and for hosts
// embedding the capture engine. CLI flags always override config values.
type Config struct {
	// ReportDir is the crash bundle root directory.
	ReportDir string `yaml:"report_dir"`
	// MaxFrames bounds the stack walk depth (default 64).
	MaxFrames int `yaml:"max_frames"`
	// Capacity is the report buffer size in bytes (default 64 KiB).
	Capacity int `yaml:"capacity"`
	// Notifier selects the notification presenter: console (default) or none.
	Notifier string        `yaml:"notifier"`
	Storage  StorageConfig `yaml:"storage"`
	Adapter  AdapterConfig `yaml:"adapter"`
}

// StorageConfig holds archive storage defaults from the config file.
type StorageConfig struct {
	// Backend selects the archive store: fs (default), memory, or s3.
	Backend string `yaml:"backend"`
	// Path is the fs backend root.
	Path string `yaml:"path"`
	// Bucket and Prefix locate the s3 backend.
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
	// Region overrides the AWS region for the s3 backend.
	Region string `yaml:"region"`
	// Endpoint overrides the S3 endpoint (MinIO, localstack).
	Endpoint string `yaml:"endpoint"`
	// S3PathStyle forces path-style addressing, required by most
	// S3-compatible stores.
	S3PathStyle bool `yaml:"s3_path_style"`
}

// AdapterConfig holds crash-event delivery defaults from the config file.
type AdapterConfig struct {
	// Type selects the adapter: webhook, redis, or empty for none.
	Type string `yaml:"type"`
	// URL is the webhook endpoint or redis address.
	URL string `yaml:"url"`
	// Channel is the redis pub/sub channel.
	Channel string `yaml:"channel,omitempty"`
	// Headers are extra webhook request headers.
	Headers map[string]string `yaml:"headers,omitempty"`
	// Timeout bounds a single delivery attempt.
	Timeout Duration `yaml:"timeout,omitempty"`
	// Retries is the delivery attempt count (nil for the default).
	Retries *int `yaml:"retries,omitempty"`
}

// Duration wraps time.Duration for YAML string parsing (e.g. "10s", "5m").
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses a duration string like "10s" or "5m30s".
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// Validate rejects values no component can act on.
func (c *Config) Validate() error {
	if c.MaxFrames < 0 {
		return fmt.Errorf("max_frames must not be negative, got %d", c.MaxFrames)
	}
	if c.Capacity < 0 {
		return fmt.Errorf("capacity must not be negative, got %d", c.Capacity)
	}
	switch c.Notifier {
	case "", "console", "none":
	default:
		return fmt.Errorf("unknown notifier %q (want console or none)", c.Notifier)
	}
	switch c.Storage.Backend {
	case "", "fs", "memory", "s3":
	default:
		return fmt.Errorf("unknown storage backend %q (want fs, memory, or s3)", c.Storage.Backend)
	}
	if c.Storage.Backend == "s3" && c.Storage.Bucket == "" {
		return fmt.Errorf("storage backend s3 requires a bucket")
	}
	switch c.Adapter.Type {
	case "", "webhook", "redis":
	default:
		return fmt.Errorf("unknown adapter type %q (want webhook or redis)", c.Adapter.Type)
	}
	if c.Adapter.Type != "" && c.Adapter.URL == "" {
		return fmt.Errorf("adapter %q requires a url", c.Adapter.Type)
	}
	return nil
}
