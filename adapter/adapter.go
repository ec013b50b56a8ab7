// Package adapter defines the crash-event delivery boundary.
//
// Adapters publish crash notifications to downstream systems (incident
// channels, triage queues) after a bundle has been archived. Delivery is
// best-effort and always off the crash path: the archive pipeline owns
// adapter lifecycle, never the signal handler.
package adapter

import "context"

// EventTypeCrashReported is the EventType stamped on every published event.
const EventTypeCrashReported = "crash_reported"

// CrashReportedEvent is the payload published when a crash bundle lands.
type CrashReportedEvent struct {
	ContractVersion string `json:"contract_version"`
	EventType       string `json:"event_type"` // always "crash_reported"
	BundleID        string `json:"bundle_id"`
	Binary          string `json:"binary"`
	PID             int    `json:"pid"`
	SignalNumber    int    `json:"signal_number"`
	SignalName      string `json:"signal_name"`
	Message         string `json:"message,omitempty"`
	Outcome         string `json:"outcome"` // captured, partial, skipped
	SkipReason      string `json:"skip_reason,omitempty"`
	FrameCount      int    `json:"frame_count"`
	StoragePath     string `json:"storage_path,omitempty"`
	Timestamp       string `json:"timestamp"` // ISO 8601
}

// Adapter publishes crash events to a downstream system.
// Implementations must be safe for single-use per bundle.
type Adapter interface {
	// Publish sends a crash event to the downstream system.
	// Must respect context cancellation and deadlines.
	Publish(ctx context.Context, event *CrashReportedEvent) error

	// Close releases adapter resources.
	Close() error
}
