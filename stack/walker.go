// Package stack produces a bounded sequence of return addresses by walking
// the frame-pointer chain from the faulting frame outward.
//
// No runtime backtrace facility is assumed: the walk reads saved return
// addresses and frame links at fixed, calling-convention-defined offsets,
// validating every candidate frame pointer before use. A truncated trace is
// an acceptable outcome; a crash inside the walker is not.
package stack

// DefaultMaxDepth bounds the walk when the caller passes no limit.
const DefaultMaxDepth = 64

// Layout holds the convention-specific constants for one architecture.
// Encapsulating them here keeps the walking algorithm architecture-agnostic.
type Layout struct {
	// WordSize is the pointer width in bytes.
	WordSize int
	// LinkOffset is the byte offset, from the current frame pointer, of
	// the saved caller frame pointer.
	LinkOffset uintptr
	// RetOffset is the byte offset, from the current frame pointer, of
	// the saved return address.
	RetOffset uintptr
	// AlignMask validates frame-pointer alignment: fp&AlignMask must be 0.
	AlignMask uintptr
}

// Memory reads single words from the inspected address space.
// The live implementation absorbs faults; test implementations serve
// synthetic frame chains.
type Memory interface {
	// Word reads the pointer-sized value at addr.
	// Returns false when the address cannot be read.
	Word(addr uintptr) (uintptr, bool)
}

// Walker walks frame-pointer chains with corruption detection.
type Walker struct {
	layout Layout
	mem    Memory
	pcs    [DefaultMaxDepth]uintptr
}

// NewWalker creates a walker over mem using the given layout.
func NewWalker(layout Layout, mem Memory) *Walker {
	return &Walker{layout: layout, mem: mem}
}

// NewLiveWalker creates a walker over this process's own memory using the
// host architecture's layout.
func NewLiveWalker() *Walker {
	return NewWalker(HostLayout, liveMemory{})
}

// Walk returns the chain of return addresses starting at the frame pointer
// start. The result holds at most maxDepth entries (DefaultMaxDepth when
// maxDepth is 0 or negative, and never more than DefaultMaxDepth).
//
// The walk ends early, silently, when:
//   - the saved return address is zero or unreadable
//   - the next frame pointer is not strictly greater than the current one
//     (cyclic or reversed chain)
//   - the next frame pointer fails the alignment check (garbage misread as
//     a frame link)
//
// The returned slice aliases walker-owned storage and is valid until the
// next Walk call. Nothing is allocated.
func (w *Walker) Walk(start uintptr, maxDepth int) []uintptr {
	if maxDepth <= 0 || maxDepth > DefaultMaxDepth {
		maxDepth = DefaultMaxDepth
	}

	n := 0
	frame := start
	for frame != 0 && n < maxDepth {
		ret, ok := w.mem.Word(frame + w.layout.RetOffset)
		if !ok || ret == 0 {
			break
		}
		w.pcs[n] = ret
		n++

		next, ok := w.mem.Word(frame + w.layout.LinkOffset)
		if !ok {
			break
		}
		// Frame address not increasing or not aligned: broken chain.
		if next <= frame || next&w.layout.AlignMask != 0 {
			break
		}
		frame = next
	}
	return w.pcs[:n]
}
