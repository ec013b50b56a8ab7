// Package metrics accumulates capture counters for one process lifetime.
//
// The Collector is a leaf with no internal dependencies. Counters are
// incremented on the install path and (sparingly) on the capture path;
// the snapshot is embedded into the crash.meta sidecar at termination.
package metrics

import "sync"

// Snapshot is an immutable point-in-time view of all capture counters.
// Safe to read concurrently after creation.
type Snapshot struct {
	// Lifecycle
	HandlersArmed     int64
	CapturesStarted   int64
	CapturesCompleted int64
	CapturesSkipped   int64
	PanicBridges      int64

	// Report composition
	FramesWalked     int64
	FramesResolved   int64
	TruncatedReports int64

	// Artifacts
	ArtifactsAttempted int64
	ArtifactsSucceeded int64
	ArtifactsFailed    int64

	// Notification
	NotificationsShown int64
}

// Map flattens the snapshot for the sidecar record. Zero counters are
// omitted to keep crash.meta small.
func (s Snapshot) Map() map[string]int64 {
	out := make(map[string]int64)
	put := func(k string, v int64) {
		if v != 0 {
			out[k] = v
		}
	}
	put("handlers_armed", s.HandlersArmed)
	put("captures_started", s.CapturesStarted)
	put("captures_completed", s.CapturesCompleted)
	put("captures_skipped", s.CapturesSkipped)
	put("panic_bridges", s.PanicBridges)
	put("frames_walked", s.FramesWalked)
	put("frames_resolved", s.FramesResolved)
	put("truncated_reports", s.TruncatedReports)
	put("artifacts_attempted", s.ArtifactsAttempted)
	put("artifacts_succeeded", s.ArtifactsSucceeded)
	put("artifacts_failed", s.ArtifactsFailed)
	put("notifications_shown", s.NotificationsShown)
	return out
}

// Collector accumulates capture counters.
// Thread-safe via sync.Mutex. All increment methods are nil-receiver safe
// so collaborators can run without metrics wired.
type Collector struct {
	mu   sync.Mutex
	snap Snapshot
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// IncHandlersArmed records a successful Install.
func (c *Collector) IncHandlersArmed() { c.inc(func(s *Snapshot) { s.HandlersArmed++ }) }

// IncCaptureStarted records handler entry for a fatal signal.
func (c *Collector) IncCaptureStarted() { c.inc(func(s *Snapshot) { s.CapturesStarted++ }) }

// IncCaptureCompleted records a capture that produced a report.
func (c *Collector) IncCaptureCompleted() { c.inc(func(s *Snapshot) { s.CapturesCompleted++ }) }

// IncCaptureSkipped records a guard-elected skip.
func (c *Collector) IncCaptureSkipped() { c.inc(func(s *Snapshot) { s.CapturesSkipped++ }) }

// IncPanicBridge records a capture entered through the panic bridge.
func (c *Collector) IncPanicBridge() { c.inc(func(s *Snapshot) { s.PanicBridges++ }) }

// AddFramesWalked records walked stack frames.
func (c *Collector) AddFramesWalked(n int) {
	c.inc(func(s *Snapshot) { s.FramesWalked += int64(n) })
}

// AddFramesResolved records frames that resolved to a symbol.
func (c *Collector) AddFramesResolved(n int) {
	c.inc(func(s *Snapshot) { s.FramesResolved += int64(n) })
}

// IncTruncatedReport records a report that hit buffer capacity.
func (c *Collector) IncTruncatedReport() { c.inc(func(s *Snapshot) { s.TruncatedReports++ }) }

// IncArtifactAttempted records an artifact attempt.
func (c *Collector) IncArtifactAttempted() { c.inc(func(s *Snapshot) { s.ArtifactsAttempted++ }) }

// IncArtifactSucceeded records a written artifact.
func (c *Collector) IncArtifactSucceeded() { c.inc(func(s *Snapshot) { s.ArtifactsSucceeded++ }) }

// IncArtifactFailed records a failed artifact attempt.
func (c *Collector) IncArtifactFailed() { c.inc(func(s *Snapshot) { s.ArtifactsFailed++ }) }

// IncNotificationShown records a user notification.
func (c *Collector) IncNotificationShown() { c.inc(func(s *Snapshot) { s.NotificationsShown++ }) }

// Snapshot returns an atomic copy of all counters.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

func (c *Collector) inc(apply func(*Snapshot)) {
	if c == nil {
		return
	}
	c.mu.Lock()
	apply(&c.snap)
	c.mu.Unlock()
}
