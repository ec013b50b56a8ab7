package adapter

import (
	"testing"

	"github.com/justapithecus/faultline/types"
)

func TestFromCaptureMeta(t *testing.T) {
	meta := &types.CaptureMeta{
		BundleID:  "crash-1",
		Binary:    "game",
		PID:       9,
		Timestamp: "2026-08-30T12:00:00Z",
		Signal:    types.NewSignalInfo(11),
		Message:   "received fatal signal SIGSEGV",
		Outcome:   types.OutcomePartial,
		Frames:    make([]types.Frame, 3),
	}

	event := FromCaptureMeta(meta, "file:///archive")

	if event.EventType != EventTypeCrashReported {
		t.Errorf("EventType = %q", event.EventType)
	}
	if event.ContractVersion != types.Version {
		t.Errorf("ContractVersion = %q", event.ContractVersion)
	}
	if event.SignalName != "SIGSEGV" || event.SignalNumber != 11 {
		t.Errorf("signal = %s (%d)", event.SignalName, event.SignalNumber)
	}
	if event.Outcome != "partial" {
		t.Errorf("Outcome = %q", event.Outcome)
	}
	if event.FrameCount != 3 {
		t.Errorf("FrameCount = %d", event.FrameCount)
	}
	if event.StoragePath != "file:///archive" {
		t.Errorf("StoragePath = %q", event.StoragePath)
	}
}
