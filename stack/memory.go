package stack

import (
	"runtime/debug"
	"unsafe"
)

// liveMemory reads words from this process's own address space.
//
// Reads of unmapped addresses are converted to panics for the duration of
// the read (SetPanicOnFault) and absorbed, so a garbage frame pointer
// degrades to a terminated walk instead of a second fault.
type liveMemory struct{}

// Word reads the pointer-sized value at addr.
func (liveMemory) Word(addr uintptr) (v uintptr, ok bool) {
	if addr == 0 || addr&uintptr(HostLayout.WordSize-1) != 0 {
		return 0, false
	}
	old := debug.SetPanicOnFault(true)
	defer func() {
		debug.SetPanicOnFault(old)
		if recover() != nil {
			v, ok = 0, false
		}
	}()
	//nolint:govet // deliberate raw read, validated above and fault-guarded
	return *(*uintptr)(unsafe.Pointer(addr)), true
}

// Supported reports whether frame-pointer walking is available on the host
// architecture.
func Supported() bool { return hostSupported }

// EntryFP returns the caller's frame-pointer register value, or 0 on
// architectures without a maintained frame chain. Call it first thing at
// handler entry so the walk starts from the faulting frame.
func EntryFP() uintptr { return entryFP() }
