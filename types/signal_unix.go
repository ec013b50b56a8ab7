//go:build unix

package types

import "syscall"

// signalNames maps the armed fatal signal numbers to their names, using
// this platform's numbering. Kept as a plain prebuilt table so
// cause-section rendering needs no allocation and no os/signal dependency.
var signalNames = map[int]string{
	int(syscall.SIGILL):  "SIGILL",
	int(syscall.SIGABRT): "SIGABRT",
	int(syscall.SIGBUS):  "SIGBUS",
	int(syscall.SIGFPE):  "SIGFPE",
	int(syscall.SIGSEGV): "SIGSEGV",
	int(syscall.SIGSYS):  "SIGSYS",
}
