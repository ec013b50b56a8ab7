//go:build windows

package handler

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/justapithecus/faultline/types"
)

// fatalSignals is the closest available equivalent set on Windows.
// SIGSYS has no Windows counterpart.
var fatalSignals = []os.Signal{
	syscall.SIGSEGV,
	syscall.SIGABRT,
	syscall.SIGFPE,
	syscall.SIGBUS,
	syscall.SIGILL,
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

// terminateAbnormally exits with the conventional fatal-signal status;
// Windows has no re-raise path.
func terminateAbnormally(sig types.SignalInfo) {
	signal.Reset(fatalSignals...)
	os.Exit(128 + sig.Number)
}
