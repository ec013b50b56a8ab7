// Package reader provides the read-side data access layer for the faultline CLI.
//
// This package isolates all read operations from capture internals. List,
// inspect, and stats commands consume crash bundles exclusively through this
// wrapper; the archive query path lives in the store package.
package reader

// ListCrashItem is one row in the crash bundle listing.
type ListCrashItem struct {
	BundleID  string `json:"bundle_id"`
	Binary    string `json:"binary"`
	Signal    string `json:"signal"`
	Outcome   string `json:"outcome"`
	Timestamp string `json:"timestamp"`
}

// ListCrashesOptions filters the crash bundle listing.
type ListCrashesOptions struct {
	// Binary keeps only crashes of the named executable.
	Binary string
	// Signal keeps only crashes with the named signal (e.g. "SIGSEGV").
	Signal string
	// Limit caps the number of returned items; 0 means no cap.
	Limit int
}

// FrameView is one rendered stack frame.
type FrameView struct {
	Index  int    `json:"index"`
	PC     string `json:"pc"`
	Symbol string `json:"symbol,omitempty"`
	Offset int64  `json:"offset,omitempty"`
	Module string `json:"module,omitempty"`
}

// ArtifactView is one artifact attempt of a capture.
type ArtifactView struct {
	Kind      string `json:"kind"`
	Attempted bool   `json:"attempted"`
	OK        bool   `json:"ok"`
	Path      string `json:"path,omitempty"`
}

// InspectCrashResponse is the full view of one crash bundle.
type InspectCrashResponse struct {
	BundleID        string         `json:"bundle_id"`
	Binary          string         `json:"binary"`
	PID             int            `json:"pid"`
	Timestamp       string         `json:"timestamp"`
	SignalName      string         `json:"signal_name"`
	SignalNumber    int            `json:"signal_number"`
	Message         string         `json:"message,omitempty"`
	Outcome         string         `json:"outcome"`
	SkipReason      string         `json:"skip_reason,omitempty"`
	FrameCount      int            `json:"frame_count"`
	TruncatedReport bool           `json:"truncated_report"`
	Frames          []FrameView    `json:"frames,omitempty"`
	Artifacts       []ArtifactView `json:"artifacts"`
	ReportPath      string         `json:"report_path,omitempty"`
}

// CrashStats aggregates the crash bundles under one report directory.
type CrashStats struct {
	Total            int            `json:"total"`
	Captured         int            `json:"captured"`
	Partial          int            `json:"partial"`
	Skipped          int            `json:"skipped"`
	TruncatedReports int            `json:"truncated_reports"`
	BySignal         map[string]int `json:"by_signal,omitempty"`
	ByBinary         map[string]int `json:"by_binary,omitempty"`
}
