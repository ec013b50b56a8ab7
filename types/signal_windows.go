//go:build windows

package types

import "syscall"

// signalNames maps the armed fatal signal numbers to their names.
// SIGSYS has no Windows counterpart, matching the armed set.
var signalNames = map[int]string{
	int(syscall.SIGILL):  "SIGILL",
	int(syscall.SIGABRT): "SIGABRT",
	int(syscall.SIGBUS):  "SIGBUS",
	int(syscall.SIGFPE):  "SIGFPE",
	int(syscall.SIGSEGV): "SIGSEGV",
}
