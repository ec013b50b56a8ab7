//go:build arm64

package stack

// HostLayout describes the arm64 frame chain per AAPCS64: the frame pointer
// addresses the saved {FP, LR} pair, so the link lives at offset 0 and the
// return address one word above.
var HostLayout = Layout{
	WordSize:   8,
	LinkOffset: 0,
	RetOffset:  8,
	AlignMask:  7,
}

// hostSupported reports whether the host maintains a walkable FP chain.
const hostSupported = true
