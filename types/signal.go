// Package types defines core domain types for the Faultline capture engine.
//
//nolint:revive // types is a common Go package naming convention
package types

// SignalInfo describes the fatal signal that triggered a capture.
// Captured immutably at handler entry.
type SignalInfo struct {
	// Number is the numeric signal identifier.
	Number int `msgpack:"number" json:"number"`
	// Name is the human-readable signal name (e.g. "SIGSEGV").
	Name string `msgpack:"name" json:"name"`
}

// SignalName returns the name for a fatal signal number, or "SIG?" when the
// number is not one of the armed set. The table behind it is built from the
// platform's own syscall constants (see signal_unix.go / signal_windows.go):
// SIGBUS is 7 on Linux but 10 on the BSDs, so the numbering must come from
// the build target, never from a fixed table.
func SignalName(num int) string {
	if name, ok := signalNames[num]; ok {
		return name
	}
	return "SIG?"
}

// NewSignalInfo builds a SignalInfo from a raw signal number.
func NewSignalInfo(num int) SignalInfo {
	return SignalInfo{Number: num, Name: SignalName(num)}
}
