package report

import (
	"strings"
	"testing"
)

func TestBufferTruncatesAtExactCapacity(t *testing.T) {
	buf := NewBuffer(10)
	buf.AppendString("0123456789abcdef")

	if got := buf.Len(); got != 10 {
		t.Errorf("Len = %d, want exactly capacity 10", got)
	}
	if got := buf.String(); got != "0123456789" {
		t.Errorf("content = %q, want %q", got, "0123456789")
	}
	if !buf.Truncated() {
		t.Error("Truncated = false, want true after overflow")
	}

	// Further writes of any kind must be no-ops, never out of bounds.
	buf.AppendString("more")
	buf.AppendByte('x')
	buf.AppendUint(42, 0)
	buf.AppendHex(0xdead, 4)
	if got := buf.Len(); got != 10 {
		t.Errorf("Len after overflow writes = %d, want 10", got)
	}
}

func TestBufferExactFitIsNotTruncated(t *testing.T) {
	buf := NewBuffer(5)
	buf.AppendString("12345")
	if buf.Truncated() {
		t.Error("Truncated = true for exact-capacity write, want false")
	}
	if buf.Len() != 5 {
		t.Errorf("Len = %d, want 5", buf.Len())
	}
}

func TestBufferReset(t *testing.T) {
	buf := NewBuffer(4)
	buf.AppendString("abcdef")
	buf.Reset()
	if buf.Len() != 0 || buf.Truncated() {
		t.Errorf("after Reset: Len=%d Truncated=%v, want 0/false", buf.Len(), buf.Truncated())
	}
	buf.AppendString("ok")
	if got := buf.String(); got != "ok" {
		t.Errorf("content = %q, want %q", got, "ok")
	}
}

func TestAppendUint(t *testing.T) {
	tests := []struct {
		v     uint64
		width int
		want  string
	}{
		{0, 0, "0"},
		{7, 2, "07"},
		{42, 0, "42"},
		{42, 4, "0042"},
		{18446744073709551615, 0, "18446744073709551615"},
	}
	for _, tt := range tests {
		buf := NewBuffer(32)
		buf.AppendUint(tt.v, tt.width)
		if got := buf.String(); got != tt.want {
			t.Errorf("AppendUint(%d, %d) = %q, want %q", tt.v, tt.width, got, tt.want)
		}
	}
}

func TestAppendInt(t *testing.T) {
	tests := []struct {
		v    int64
		want string
	}{
		{0, "0"},
		{64, "64"},
		{-64, "-64"},
		{-9223372036854775808, "-9223372036854775808"},
	}
	for _, tt := range tests {
		buf := NewBuffer(32)
		buf.AppendInt(tt.v)
		if got := buf.String(); got != tt.want {
			t.Errorf("AppendInt(%d) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestAppendHex(t *testing.T) {
	buf := NewBuffer(32)
	buf.AppendHex(0x4005d0, 16)
	if got := buf.String(); got != "0x00000000004005d0" {
		t.Errorf("AppendHex = %q, want fixed-width form", got)
	}

	buf.Reset()
	buf.AppendHex(0xdeadbeef, 8)
	if got := buf.String(); got != "0xdeadbeef" {
		t.Errorf("AppendHex = %q, want %q", got, "0xdeadbeef")
	}
}

func TestAppendPadded(t *testing.T) {
	buf := NewBuffer(32)
	buf.AppendPadded("short", 10)
	if got := buf.String(); got != "short     " {
		t.Errorf("AppendPadded = %q, want left-aligned field", got)
	}

	buf.Reset()
	buf.AppendPadded("longer-than-field", 10)
	if got := buf.String(); got != "longer-than-field" {
		t.Errorf("AppendPadded = %q, want unpadded overlong value", got)
	}
}

func TestBufferNeverWritesOutOfBounds(t *testing.T) {
	// Interleave every append primitive against a tiny buffer; the
	// absence of a panic plus the length invariant is the assertion.
	buf := NewBuffer(3)
	for range 100 {
		buf.AppendString(strings.Repeat("x", 7))
		buf.AppendByte('y')
		buf.AppendUint(123456, 8)
		buf.AppendInt(-98765)
		buf.AppendHex(0xffffffffffffffff, 16)
		buf.AppendPadded("pad", 30)
		if buf.Len() > buf.Cap() {
			t.Fatalf("Len %d exceeds Cap %d", buf.Len(), buf.Cap())
		}
	}
}
