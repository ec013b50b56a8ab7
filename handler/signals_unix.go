//go:build unix

package handler

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/justapithecus/faultline/types"
)

// fatalSignals is the fixed set of fatal signal kinds the registry arms.
var fatalSignals = []os.Signal{
	syscall.SIGSEGV,
	syscall.SIGABRT,
	syscall.SIGFPE,
	syscall.SIGBUS,
	syscall.SIGILL,
	syscall.SIGSYS,
}

// sigAbortNumber is the signal reported for panic-bridge captures.
const sigAbortNumber = int(syscall.SIGABRT)

func signalNumber(sig os.Signal) int {
	if s, ok := sig.(syscall.Signal); ok {
		return int(s)
	}
	return 0
}

// restoreDefaults returns every armed signal to its default disposition.
func restoreDefaults() {
	signal.Reset(fatalSignals...)
}

// terminateAbnormally re-raises the signal so the process dies through
// default OS handling, producing the platform's abnormal-exit status.
func terminateAbnormally(sig types.SignalInfo) {
	signal.Reset(fatalSignals...)
	if sig.Number > 0 {
		_ = syscall.Kill(os.Getpid(), syscall.Signal(sig.Number))
	}
	// Re-raise did not kill us (blocked or unknown signal).
	os.Exit(128 + sig.Number)
}
