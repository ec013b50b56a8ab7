// Package handler installs process-wide fatal-signal handlers and drives
// the capture flow: restore default dispositions, consult the emergency
// guard, walk and resolve the stack, compose the report, persist the
// bundle, notify, clean up, terminate.
//
// The flow never returns to normal execution. A second fault during
// capture hits default OS handling, not this package: restoring the
// dispositions is the first action inside the handler and is itself the
// re-entrancy guard.
package handler

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/justapithecus/faultline/artifact"
	"github.com/justapithecus/faultline/guard"
	"github.com/justapithecus/faultline/log"
	"github.com/justapithecus/faultline/metrics"
	"github.com/justapithecus/faultline/report"
	"github.com/justapithecus/faultline/stack"
	"github.com/justapithecus/faultline/symbol"
	"github.com/justapithecus/faultline/sysinfo"
	"github.com/justapithecus/faultline/types"
)

// Notifier presents a crash notice to the user with a single
// acknowledgement action. May be a no-op in headless contexts.
type Notifier interface {
	Notify(title, message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(title, message string)

// Notify implements Notifier.
func (f NotifierFunc) Notify(title, message string) { f(title, message) }

// CleanupHook is invoked once, after artifacts are written and before
// termination, to release collaborator-owned resources.
type CleanupHook func()

// Registry owns the process-wide crash handlers.
// At most one capture runs per process lifetime.
type Registry struct {
	writer    *artifact.Writer
	grd       *guard.Guard
	walker    *stack.Walker
	resolver  *symbol.Resolver
	notifier  Notifier
	cleanup   CleanupHook
	collector *metrics.Collector
	logger    *log.Logger

	capacity  int
	maxFrames int
	envText   string
	sections  []report.Section
	binary    string

	// Test seams. Production values are set in New and Install.
	restore   func()
	walk      func() []uintptr
	terminate func(types.SignalInfo)

	armed atomic.Bool
	fired atomic.Bool

	ch   chan os.Signal
	done chan struct{}
}

// Option configures a Registry.
type Option func(*Registry)

// WithGuard wires the emergency guard.
func WithGuard(g *guard.Guard) Option {
	return func(r *Registry) { r.grd = g }
}

// WithNotifier wires the user notification collaborator.
func WithNotifier(n Notifier) Option {
	return func(r *Registry) { r.notifier = n }
}

// WithCleanup wires the pre-termination cleanup hook.
func WithCleanup(h CleanupHook) Option {
	return func(r *Registry) { r.cleanup = h }
}

// WithMetrics wires the capture counter collector.
func WithMetrics(c *metrics.Collector) Option {
	return func(r *Registry) { r.collector = c }
}

// WithLogger wires the install/teardown logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

// WithCapacity overrides the report buffer capacity.
func WithCapacity(n int) Option {
	return func(r *Registry) { r.capacity = n }
}

// WithMaxFrames overrides the stack walk depth limit.
func WithMaxFrames(n int) Option {
	return func(r *Registry) { r.maxFrames = n }
}

// WithEnvironment overrides the environment section text.
// Defaults to the host description from sysinfo.
func WithEnvironment(text string) Option {
	return func(r *Registry) { r.envText = text }
}

// WithSection appends a collaborator-supplied report section, emitted
// after the fixed environment/cause/stacktrace sections.
func WithSection(s report.Section) Option {
	return func(r *Registry) { r.sections = append(r.sections, s) }
}

// WithResolver overrides the symbol resolver.
func WithResolver(res *symbol.Resolver) Option {
	return func(r *Registry) { r.resolver = res }
}

// New creates a registry persisting bundles through the given writer.
// Handlers are not armed until Install is called.
func New(writer *artifact.Writer, opts ...Option) *Registry {
	r := &Registry{
		writer:    writer,
		grd:       guard.New(),
		walker:    stack.NewLiveWalker(),
		resolver:  symbol.NewRuntimeResolver(),
		notifier:  NewConsoleNotifier(os.Stderr),
		capacity:  report.DefaultCapacity,
		maxFrames: stack.DefaultMaxDepth,
		binary:    processBinary(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.restore = restoreDefaults
	r.walk = func() []uintptr {
		return r.walker.Walk(stack.EntryFP(), r.maxFrames)
	}
	r.terminate = terminateAbnormally
	return r
}

// Install arms the fatal-signal handlers.
// Anything the capture path needs is resolved here, up front: the
// environment text is rendered once so the post-fault path composes
// from prepared inputs instead of calling out.
func (r *Registry) Install() error {
	if !r.armed.CompareAndSwap(false, true) {
		return fmt.Errorf("crash handlers already armed")
	}

	if r.envText == "" {
		r.envText = sysinfo.Render()
	}

	r.ch = make(chan os.Signal, 1)
	r.done = make(chan struct{})
	signal.Notify(r.ch, fatalSignals...)

	go r.dispatch()

	r.collector.IncHandlersArmed()
	if r.logger != nil {
		r.logger.Info("crash handlers armed", map[string]any{
			"signals":    len(fatalSignals),
			"max_frames": r.maxFrames,
			"report_dir": r.writer.Root(),
		})
	}
	return nil
}

// Uninstall disarms the handlers and restores default dispositions.
// Safe to call when nothing was armed.
func (r *Registry) Uninstall() {
	if !r.armed.CompareAndSwap(true, false) {
		return
	}
	signal.Stop(r.ch)
	signal.Reset(fatalSignals...)
	close(r.done)
	if r.logger != nil {
		r.logger.Info("crash handlers disarmed", nil)
	}
}

func (r *Registry) dispatch() {
	for {
		select {
		case sig := <-r.ch:
			r.OnFatalSignal(types.NewSignalInfo(signalNumber(sig)), "")
		case <-r.done:
			return
		}
	}
}

// Recover is the panic bridge: deferred at the top of a goroutine, it
// routes an escaped panic through the same capture flow as a fatal
// signal, reported as an abort.
func (r *Registry) Recover() {
	v := recover()
	if v == nil {
		return
	}
	r.collector.IncPanicBridge()
	r.OnFatalSignal(types.NewSignalInfo(sigAbortNumber), fmt.Sprintf("panic: %v", v))
}

// OnFatalSignal is the handler entry point. It does not return control
// to normal execution: the flow ends in abnormal termination.
//
// The first action is restoring every registered signal to its default
// disposition. Nothing may be reordered ahead of it: once dispositions
// are default, a second fault during the work below terminates the
// process immediately instead of re-entering this handler.
func (r *Registry) OnFatalSignal(sig types.SignalInfo, message string) {
	r.restore()

	if !r.fired.CompareAndSwap(false, true) {
		// A capture is already in flight or finished. With dispositions
		// at default there is nothing safe left to do here.
		r.terminate(sig)
		return
	}
	r.collector.IncCaptureStarted()

	if message == "" {
		message = "received fatal signal " + sig.Name
	}

	if d := r.grd.Decide(); d.Skip {
		r.collector.IncCaptureSkipped()
		r.notify("Crash reporting skipped", "Full crash reporting was skipped: "+d.Reason)
		r.terminate(sig)
		return
	}

	pcs := r.walk()
	frames := r.resolver.ResolveAll(pcs)
	r.collector.AddFramesWalked(len(pcs))
	r.collector.AddFramesResolved(countResolved(frames))

	builder := report.NewBuilder(r.capacity)
	builder.SetEnvironment(r.envText)
	for _, s := range r.sections {
		builder.AddSection(s)
	}
	text := builder.Compose(sig, message, frames)
	if builder.Truncated() {
		r.collector.IncTruncatedReport()
	}

	bundleID := r.writer.NewBundleID()
	artifacts := r.writer.Persist(bundleID, text)
	outcome := types.DetermineOutcome(false, artifacts)

	meta := &types.CaptureMeta{
		BundleID:        bundleID,
		Binary:          r.binary,
		PID:             os.Getpid(),
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
		Signal:          sig,
		Message:         message,
		Outcome:         outcome,
		Frames:          frames,
		Artifacts:       *artifacts,
		TruncatedReport: builder.Truncated(),
		Metrics:         r.collector.Snapshot().Map(),
	}
	// Sidecar failure is one more recorded partial outcome, never an abort.
	_ = r.writer.WriteSidecar(bundleID, meta)
	r.collector.IncCaptureCompleted()

	r.notify("Crash captured", summarize(sig, artifacts))
	r.runCleanup()
	r.terminate(sig)
}

func (r *Registry) notify(title, message string) {
	if r.notifier == nil {
		return
	}
	defer func() { _ = recover() }()
	r.notifier.Notify(title, message)
	r.collector.IncNotificationShown()
}

func (r *Registry) runCleanup() {
	if r.cleanup == nil {
		return
	}
	defer func() { _ = recover() }()
	r.cleanup()
}

// summarize tells the user exactly what was generated, including under
// partial failure.
func summarize(sig types.SignalInfo, set *types.ArtifactSet) string {
	msg := "The process received " + sig.Name + "."
	paths := set.Paths()
	if len(paths) == 0 {
		return msg + " No crash artifacts could be written."
	}
	msg += " Generated artifacts:"
	for _, p := range paths {
		msg += "\n  " + p
	}
	for _, rec := range set.All() {
		if rec.Attempted && !rec.OK {
			msg += "\nFailed to write " + string(rec.Kind) + "."
		}
	}
	return msg
}

func countResolved(frames []types.Frame) int {
	n := 0
	for i := range frames {
		if frames[i].Symbol != nil {
			n++
		}
	}
	return n
}

func processBinary() string {
	exe, err := os.Executable()
	if err != nil {
		return filepath.Base(os.Args[0])
	}
	return filepath.Base(exe)
}
