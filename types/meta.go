package types

// CaptureMetaType is the type discriminant for crash.meta sidecar frames.
const CaptureMetaType = "crash_meta"

// CaptureMeta is the machine-readable record of one capture, written as a
// msgpack sidecar (crash.meta) next to the text report. The CLI and the
// archive pipeline read it back; external tooling may parse it, so the
// field set is contractually stable.
type CaptureMeta struct {
	// Type is always "crash_meta" for sidecar frames.
	Type string `msgpack:"type" json:"type"`
	// ContractVersion is the project version that wrote the sidecar.
	ContractVersion string `msgpack:"contract_version" json:"contract_version"`
	// BundleID uniquely identifies the crash bundle directory.
	BundleID string `msgpack:"bundle_id" json:"bundle_id"`
	// Binary is the base name of the crashed executable.
	Binary string `msgpack:"binary" json:"binary"`
	// PID is the crashed process ID.
	PID int `msgpack:"pid" json:"pid"`
	// Timestamp is the capture time, ISO 8601 UTC.
	Timestamp string `msgpack:"timestamp" json:"timestamp"`
	// Signal is the triggering fatal signal.
	Signal SignalInfo `msgpack:"signal" json:"signal"`
	// Message is the free-text cause message.
	Message string `msgpack:"message,omitempty" json:"message,omitempty"`
	// Outcome classifies the capture (captured, partial, skipped).
	Outcome OutcomeStatus `msgpack:"outcome" json:"outcome"`
	// SkipReason is the guard explanation when Outcome is skipped.
	SkipReason string `msgpack:"skip_reason,omitempty" json:"skip_reason,omitempty"`
	// Frames is the walked stack, in order, outermost last.
	Frames []Frame `msgpack:"frames,omitempty" json:"frames,omitempty"`
	// Artifacts records the three artifact attempts.
	Artifacts ArtifactSet `msgpack:"artifacts" json:"artifacts"`
	// TruncatedReport is true when report composition hit buffer capacity.
	TruncatedReport bool `msgpack:"truncated_report" json:"truncated_report"`
	// Metrics is the capture counter snapshot at termination.
	Metrics map[string]int64 `msgpack:"metrics,omitempty" json:"metrics,omitempty"`
}
