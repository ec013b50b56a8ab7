//go:build unix

package types

import (
	"syscall"
	"testing"
)

// The name table must agree with the build target's own numbering: SIGBUS
// is 7 on Linux but 10 on the BSDs, and SIGSYS 31 vs 12. Keying on the
// syscall constants makes the test platform-correct everywhere.
func TestSignalName_PlatformNumbers(t *testing.T) {
	tests := []struct {
		sig  syscall.Signal
		want string
	}{
		{syscall.SIGSEGV, "SIGSEGV"},
		{syscall.SIGABRT, "SIGABRT"},
		{syscall.SIGFPE, "SIGFPE"},
		{syscall.SIGBUS, "SIGBUS"},
		{syscall.SIGILL, "SIGILL"},
		{syscall.SIGSYS, "SIGSYS"},
	}
	for _, tt := range tests {
		if got := SignalName(int(tt.sig)); got != tt.want {
			t.Errorf("SignalName(%d) = %q, want %q", int(tt.sig), got, tt.want)
		}
	}
}

// Every armed signal must render a real name in the cause section, never
// the SIG? placeholder.
func TestNewSignalInfo_ArmedSetResolves(t *testing.T) {
	armed := []syscall.Signal{
		syscall.SIGSEGV, syscall.SIGABRT, syscall.SIGFPE,
		syscall.SIGBUS, syscall.SIGILL, syscall.SIGSYS,
	}
	for _, sig := range armed {
		info := NewSignalInfo(int(sig))
		if info.Name == "SIG?" {
			t.Errorf("NewSignalInfo(%d).Name = SIG?, want a resolved name", int(sig))
		}
		if info.Number != int(sig) {
			t.Errorf("NewSignalInfo(%d).Number = %d", int(sig), info.Number)
		}
	}
}
