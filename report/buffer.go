// Package report composes the crash report text from ordered sections.
//
// Everything funnels through Buffer, a fixed-capacity byte buffer with
// silent truncation. The capture path cannot trust the heap after memory
// corruption, so the buffer never reallocates and no write can fail:
// composing past capacity drops the excess. A partial report is strictly
// more useful than no report from a handler that faulted on overflow.
package report

import "math/bits"

// PtrHexDigits is the number of hex digits used to render an address,
// matching the platform pointer width.
const PtrHexDigits = bits.UintSize / 4

// Buffer is a fixed-capacity byte buffer with a write cursor.
// All writes are append-bounded-by-capacity; overflow is silent and sets
// the truncated flag. The zero value is unusable, call NewBuffer.
type Buffer struct {
	data      []byte
	n         int
	truncated bool
}

// NewBuffer allocates a buffer with the given capacity.
// Allocation happens here, ahead of any fault, never during composition.
func NewBuffer(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{data: make([]byte, capacity)}
}

// Len returns the number of bytes written.
func (b *Buffer) Len() int { return b.n }

// Cap returns the buffer capacity.
func (b *Buffer) Cap() int { return len(b.data) }

// Truncated reports whether any write was cut short by capacity.
func (b *Buffer) Truncated() bool { return b.truncated }

// Bytes returns the written content. The slice aliases the buffer.
func (b *Buffer) Bytes() []byte { return b.data[:b.n] }

// String returns the written content as a string.
func (b *Buffer) String() string { return string(b.data[:b.n]) }

// Reset rewinds the cursor and clears the truncated flag.
func (b *Buffer) Reset() {
	b.n = 0
	b.truncated = false
}

// Append writes p, truncating at capacity.
func (b *Buffer) Append(p []byte) {
	room := len(b.data) - b.n
	if room <= 0 {
		if len(p) > 0 {
			b.truncated = true
		}
		return
	}
	if len(p) > room {
		p = p[:room]
		b.truncated = true
	}
	copy(b.data[b.n:], p)
	b.n += len(p)
}

// AppendString writes s, truncating at capacity.
func (b *Buffer) AppendString(s string) {
	room := len(b.data) - b.n
	if room <= 0 {
		if len(s) > 0 {
			b.truncated = true
		}
		return
	}
	if len(s) > room {
		s = s[:room]
		b.truncated = true
	}
	copy(b.data[b.n:], s)
	b.n += len(s)
}

// AppendByte writes a single byte.
func (b *Buffer) AppendByte(c byte) {
	if b.n >= len(b.data) {
		b.truncated = true
		return
	}
	b.data[b.n] = c
	b.n++
}

// AppendUint writes v in decimal, zero-padded to at least width digits.
// Pass width 0 for no padding. Stack-local scratch only, no allocation.
func (b *Buffer) AppendUint(v uint64, width int) {
	var scratch [20]byte
	i := len(scratch)
	for {
		i--
		scratch[i] = byte('0' + v%10)
		v /= 10
		if v == 0 {
			break
		}
	}
	for len(scratch)-i < width && i > 0 {
		i--
		scratch[i] = '0'
	}
	b.Append(scratch[i:])
}

// AppendInt writes v in decimal with a leading minus for negatives.
func (b *Buffer) AppendInt(v int64) {
	if v < 0 {
		b.AppendByte('-')
		// Negate via uint64 so the minimum value does not overflow.
		b.AppendUint(uint64(-(v+1))+1, 0)
		return
	}
	b.AppendUint(uint64(v), 0)
}

// AppendHex writes v as "0x" plus exactly digits lowercase hex digits.
func (b *Buffer) AppendHex(v uint64, digits int) {
	const hextab = "0123456789abcdef"
	var scratch [16]byte
	if digits > len(scratch) {
		digits = len(scratch)
	}
	for i := digits - 1; i >= 0; i-- {
		scratch[i] = hextab[v&0xf]
		v >>= 4
	}
	b.AppendString("0x")
	b.Append(scratch[:digits])
}

// AppendPadded writes s left-aligned in a field of at least width bytes.
func (b *Buffer) AppendPadded(s string, width int) {
	b.AppendString(s)
	for i := len(s); i < width; i++ {
		b.AppendByte(' ')
	}
}
