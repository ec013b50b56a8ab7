package stack

import "runtime"

// Callers returns up to max return addresses using the runtime's own
// unwinder, skipping skip frames above the caller.
//
// This is the fallback source for the panic bridge and for architectures
// without a walkable frame-pointer chain. It allocates and depends on
// runtime metadata, so the signal path prefers Walker and uses this only
// when the chain is unavailable.
func Callers(skip, max int) []uintptr {
	if max <= 0 {
		max = DefaultMaxDepth
	}
	pcs := make([]uintptr, max)
	// +2 skips runtime.Callers and this function itself.
	n := runtime.Callers(skip+2, pcs)
	return pcs[:n]
}
