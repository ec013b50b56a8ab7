package reader

import (
	"strings"
	"testing"

	"github.com/justapithecus/faultline/types"
)

func TestSummarizeMeta(t *testing.T) {
	meta := sampleMeta("crash-20260830-100000-aaaa0001", "game", 11)

	item, err := SummarizeMeta(meta)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}

	if item.BundleID != "crash-20260830-100000-aaaa0001" {
		t.Errorf("BundleID = %q", item.BundleID)
	}
	if item.Binary != "game" {
		t.Errorf("Binary = %q", item.Binary)
	}
	if item.Signal != "SIGSEGV" {
		t.Errorf("Signal = %q", item.Signal)
	}
	if item.Outcome != "captured" {
		t.Errorf("Outcome = %q", item.Outcome)
	}
}

func TestSummarizeMeta_Rejections(t *testing.T) {
	if _, err := SummarizeMeta(nil); err == nil {
		t.Error("expected error for nil meta")
	}

	missing := sampleMeta("", "game", 11)
	if _, err := SummarizeMeta(missing); err == nil || !strings.Contains(err.Error(), "bundle_id") {
		t.Errorf("expected bundle_id error, got %v", err)
	}
}

func TestInspectFromMeta_Frames(t *testing.T) {
	meta := sampleMeta("crash-20260830-100000-aaaa0001", "game", 11)
	meta.Frames = []types.Frame{
		{PC: 0x1040, Symbol: &types.Symbol{Module: "game", Name: "_ZN4Game6updateEv", Demangled: "Game::update()", Start: 0x1000}},
		{PC: 0x0ff0, Symbol: &types.Symbol{Module: "game", Name: "init", Start: 0x1000}},
		{PC: 0xdead},
	}

	resp, err := InspectFromMeta(meta, "/reports/crash.log")
	if err != nil {
		t.Fatalf("inspect from meta: %v", err)
	}

	if resp.Frames[0].Symbol != "Game::update()" {
		t.Errorf("frame 0 should use the demangled name, got %q", resp.Frames[0].Symbol)
	}
	if resp.Frames[0].PC != "0x1040" {
		t.Errorf("frame 0 PC = %q", resp.Frames[0].PC)
	}

	// Addresses below the nearest symbol yield negative offsets
	if resp.Frames[1].Offset != -16 {
		t.Errorf("frame 1 offset = %d", resp.Frames[1].Offset)
	}

	if resp.Frames[2].Symbol != "" || resp.Frames[2].Module != "" {
		t.Errorf("frame 2 should be unresolved, got %+v", resp.Frames[2])
	}

	if resp.ReportPath != "/reports/crash.log" {
		t.Errorf("ReportPath = %q", resp.ReportPath)
	}
}

func TestInspectFromMeta_SkippedCapture(t *testing.T) {
	meta := sampleMeta("crash-20260830-100000-aaaa0001", "game", 6)
	meta.Outcome = types.OutcomeSkipped
	meta.SkipReason = "low disk space"
	meta.Frames = nil
	meta.Artifacts = types.ArtifactSet{
		Report:     types.ArtifactRecord{Kind: types.ArtifactReport},
		Snapshot:   types.ArtifactRecord{Kind: types.ArtifactSnapshot},
		Screenshot: types.ArtifactRecord{Kind: types.ArtifactScreenshot},
	}

	resp, err := InspectFromMeta(meta, "")
	if err != nil {
		t.Fatalf("inspect from meta: %v", err)
	}

	if resp.Outcome != "skipped" || resp.SkipReason != "low disk space" {
		t.Errorf("outcome = %q, reason = %q", resp.Outcome, resp.SkipReason)
	}
	if resp.FrameCount != 0 || resp.Frames != nil {
		t.Errorf("expected no frames, got %d", resp.FrameCount)
	}
	for _, a := range resp.Artifacts {
		if a.Attempted || a.OK {
			t.Errorf("artifact %s should be untouched, got %+v", a.Kind, a)
		}
	}
}

func TestInspectFromMeta_ArtifactOrder(t *testing.T) {
	meta := sampleMeta("crash-20260830-100000-aaaa0001", "game", 11)

	resp, err := InspectFromMeta(meta, "")
	if err != nil {
		t.Fatalf("inspect from meta: %v", err)
	}

	want := []string{"report", "snapshot", "screenshot"}
	for i, kind := range want {
		if resp.Artifacts[i].Kind != kind {
			t.Errorf("artifact %d = %q, want %q", i, resp.Artifacts[i].Kind, kind)
		}
	}
}
