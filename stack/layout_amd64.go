//go:build amd64

package stack

// HostLayout describes the amd64 frame chain: the frame pointer addresses a
// two-word record holding the caller's frame pointer and, one word above,
// the return address pushed by CALL.
var HostLayout = Layout{
	WordSize:   8,
	LinkOffset: 0,
	RetOffset:  8,
	AlignMask:  7,
}

// hostSupported reports whether the host maintains a walkable FP chain.
const hostSupported = true
