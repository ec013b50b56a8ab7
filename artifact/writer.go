// Package artifact persists crash bundles: the text report plus
// collaborator-produced auxiliary artifacts (state snapshot, screenshot).
//
// Every bundle is a directory under the configured report root:
//
//	<root>/crash-<UTC stamp>-<short id>/
//	    crash.log      text report
//	    crash.meta     msgpack sidecar
//	    <snapshot>     collaborator-named
//	    <screenshot>   collaborator-named
//
// All three artifact attempts are independent: a failing one is recorded
// and never prevents the others, and nothing in this package propagates a
// failure as an abort.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/justapithecus/faultline/metrics"
	"github.com/justapithecus/faultline/types"
	"github.com/justapithecus/faultline/wire"
)

// Bundle file names. Contractually stable: external tooling globs for them.
const (
	// ReportFileName is the text report inside a bundle.
	ReportFileName = "crash.log"
	// MetaFileName is the msgpack sidecar inside a bundle.
	MetaFileName = "crash.meta"
)

// SnapshotWriter captures application state into the bundle directory.
// Returns the written file path on success.
type SnapshotWriter interface {
	WriteSnapshot(dir string) (string, error)
}

// ScreenshotWriter captures a visual snapshot into the bundle directory.
// Same contract shape as SnapshotWriter.
type ScreenshotWriter interface {
	WriteScreenshot(dir string) (string, error)
}

// SnapshotFunc adapts a function to the SnapshotWriter interface.
type SnapshotFunc func(dir string) (string, error)

// WriteSnapshot implements SnapshotWriter.
func (f SnapshotFunc) WriteSnapshot(dir string) (string, error) { return f(dir) }

// ScreenshotFunc adapts a function to the ScreenshotWriter interface.
type ScreenshotFunc func(dir string) (string, error)

// WriteScreenshot implements ScreenshotWriter.
func (f ScreenshotFunc) WriteScreenshot(dir string) (string, error) { return f(dir) }

// Writer persists crash bundles under a report root directory.
type Writer struct {
	root       string
	snapshot   SnapshotWriter
	screenshot ScreenshotWriter
	collector  *metrics.Collector
	now        func() time.Time
}

// Option configures a Writer.
type Option func(*Writer)

// WithSnapshotWriter wires the state-snapshot collaborator.
func WithSnapshotWriter(s SnapshotWriter) Option {
	return func(w *Writer) { w.snapshot = s }
}

// WithScreenshotWriter wires the screenshot collaborator.
func WithScreenshotWriter(s ScreenshotWriter) Option {
	return func(w *Writer) { w.screenshot = s }
}

// WithMetrics wires the capture counter collector.
func WithMetrics(c *metrics.Collector) Option {
	return func(w *Writer) { w.collector = c }
}

// WithClock overrides the bundle timestamp source.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) { w.now = now }
}

// NewWriter creates a bundle writer rooted at dir.
// Collaborators are optional; an unwired artifact is recorded as not
// attempted and counts against the overall success flag.
func NewWriter(root string, opts ...Option) *Writer {
	w := &Writer{root: root, now: time.Now}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Root returns the report root directory.
func (w *Writer) Root() string {
	return w.root
}

// NewBundleID generates a unique bundle identifier from the capture time.
func (w *Writer) NewBundleID() string {
	stamp := w.now().UTC().Format("20060102-150405")
	return fmt.Sprintf("crash-%s-%s", stamp, uuid.NewString()[:8])
}

// BundleDir returns the directory path for a bundle identifier.
func (w *Writer) BundleDir(bundleID string) string {
	return filepath.Join(w.root, bundleID)
}

// Persist writes the report text and requests the two auxiliary artifacts.
// Each of the three attempts runs regardless of whether the prior ones
// succeeded; the returned set records every outcome and its OK() flag is
// true only when all three were written.
func (w *Writer) Persist(bundleID string, report []byte) *types.ArtifactSet {
	dir := w.BundleDir(bundleID)
	// Bundle dir creation failure is absorbed: the report attempt below
	// records the failure, and collaborators still get their attempts.
	_ = os.MkdirAll(dir, 0o755)

	set := &types.ArtifactSet{
		Report:     w.writeReport(dir, report),
		Snapshot:   w.writeSnapshot(dir),
		Screenshot: w.writeScreenshot(dir),
	}
	return set
}

// WriteSidecar writes the crash.meta sidecar into an existing bundle.
// Called after Persist so the sidecar can record the artifact outcomes.
func (w *Writer) WriteSidecar(bundleID string, meta *types.CaptureMeta) error {
	path := filepath.Join(w.BundleDir(bundleID), MetaFileName)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create sidecar: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := wire.WriteMeta(f, meta); err != nil {
		return fmt.Errorf("failed to write sidecar: %w", err)
	}
	return nil
}

func (w *Writer) writeReport(dir string, report []byte) types.ArtifactRecord {
	rec := types.ArtifactRecord{Kind: types.ArtifactReport, Attempted: true}
	w.collector.IncArtifactAttempted()

	path := filepath.Join(dir, ReportFileName)
	if err := os.WriteFile(path, report, 0o644); err != nil {
		w.collector.IncArtifactFailed()
		return rec
	}

	rec.Path = path
	rec.OK = true
	w.collector.IncArtifactSucceeded()
	return rec
}

func (w *Writer) writeSnapshot(dir string) types.ArtifactRecord {
	rec := types.ArtifactRecord{Kind: types.ArtifactSnapshot}
	if w.snapshot == nil {
		return rec
	}
	rec.Attempted = true
	w.collector.IncArtifactAttempted()

	path, err := attemptSnapshot(w.snapshot, dir)
	if err != nil {
		w.collector.IncArtifactFailed()
		return rec
	}

	rec.Path = path
	rec.OK = true
	w.collector.IncArtifactSucceeded()
	return rec
}

func (w *Writer) writeScreenshot(dir string) types.ArtifactRecord {
	rec := types.ArtifactRecord{Kind: types.ArtifactScreenshot}
	if w.screenshot == nil {
		return rec
	}
	rec.Attempted = true
	w.collector.IncArtifactAttempted()

	path, err := attemptScreenshot(w.screenshot, dir)
	if err != nil {
		w.collector.IncArtifactFailed()
		return rec
	}

	rec.Path = path
	rec.OK = true
	w.collector.IncArtifactSucceeded()
	return rec
}

// attemptSnapshot calls the collaborator with a panic guard: a faulting
// collaborator degrades to a recorded failure, never an escalation.
func attemptSnapshot(s SnapshotWriter, dir string) (path string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("snapshot writer panicked: %v", r)
		}
	}()
	return s.WriteSnapshot(dir)
}

func attemptScreenshot(s ScreenshotWriter, dir string) (path string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("screenshot writer panicked: %v", r)
		}
	}()
	return s.WriteScreenshot(dir)
}
