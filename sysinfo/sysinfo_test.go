package sysinfo

import (
	"runtime"
	"strings"
	"testing"
)

func TestRenderIncludesCompiledFacts(t *testing.T) {
	out := Render()

	if !strings.Contains(out, " Name:    "+runtime.GOOS) {
		t.Errorf("missing OS name in:\n%s", out)
	}
	if !strings.Contains(out, " Machine: "+runtime.GOARCH) {
		t.Errorf("missing architecture in:\n%s", out)
	}
	if !strings.Contains(out, runtime.Version()) {
		t.Errorf("missing runtime version in:\n%s", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("environment text not newline-terminated")
	}
}
