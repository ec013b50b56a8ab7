//go:build !amd64 && !arm64

package stack

// HostLayout is a conservative default for architectures where the frame
// chain shape has not been verified. Walks start at frame pointer 0 on
// these platforms and end immediately; the Callers fallback still works.
var HostLayout = Layout{
	WordSize:   8,
	LinkOffset: 0,
	RetOffset:  8,
	AlignMask:  7,
}

// hostSupported reports whether the host maintains a walkable FP chain.
const hostSupported = false
