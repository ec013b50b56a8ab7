//go:build amd64 || arm64

package stack

// entryFP returns the caller's frame pointer register value.
// Implemented in per-architecture assembly.
func entryFP() uintptr
