// Package sysinfo renders the default environment section of the crash
// report: OS name and release, kernel, hardware architecture, and the
// compiled runtime version.
//
// Rendering happens at install time, never after a fault; the handler only
// copies the pre-rendered text into the report buffer.
package sysinfo

import (
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/host"
)

// Render returns the environment section body, one indented line per field,
// newline-terminated. Best-effort: host introspection failures degrade to
// the compiled-in facts, never to an error.
func Render() string {
	var b strings.Builder

	writeField(&b, "Name", runtime.GOOS)
	if info, err := host.Info(); err == nil {
		release := info.Platform
		if info.PlatformVersion != "" {
			release += " " + info.PlatformVersion
		}
		if release != "" {
			writeField(&b, "Release", release)
		}
		if info.KernelVersion != "" {
			writeField(&b, "Kernel", info.KernelVersion)
		}
	}
	writeField(&b, "Machine", runtime.GOARCH)
	writeField(&b, "Runtime", runtime.Version())

	return b.String()
}

func writeField(b *strings.Builder, name, value string) {
	b.WriteString(" ")
	b.WriteString(name)
	b.WriteString(":")
	for i := len(name); i < 8; i++ {
		b.WriteString(" ")
	}
	b.WriteString(value)
	b.WriteString("\n")
}
