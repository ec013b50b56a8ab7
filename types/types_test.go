package types

import "testing"

func TestSignalName_Unarmed(t *testing.T) {
	for _, num := range []int{99, 0, -1} {
		if got := SignalName(num); got != "SIG?" {
			t.Errorf("SignalName(%d) = %q, want SIG?", num, got)
		}
	}
}

func TestFrameOffset_Signed(t *testing.T) {
	f := &Frame{PC: 0x1000, Symbol: &Symbol{Name: "f", Start: 0x1040}}
	if got := f.Offset(); got != -64 {
		t.Errorf("Offset = %d, want -64", got)
	}

	f = &Frame{PC: 0x1080, Symbol: &Symbol{Name: "f", Start: 0x1040}}
	if got := f.Offset(); got != 64 {
		t.Errorf("Offset = %d, want 64", got)
	}
}

func TestFrameOffset_NoSymbol(t *testing.T) {
	f := &Frame{PC: 0x1000}
	if got := f.Offset(); got != 0 {
		t.Errorf("Offset = %d, want 0 for unresolved frame", got)
	}
}

func TestSymbolDisplayName(t *testing.T) {
	s := &Symbol{Name: "_Z3foov", Demangled: "foo()"}
	if got := s.DisplayName(); got != "foo()" {
		t.Errorf("DisplayName = %q, want demangled form", got)
	}

	s = &Symbol{Name: "main.run"}
	if got := s.DisplayName(); got != "main.run" {
		t.Errorf("DisplayName = %q, want raw name", got)
	}
}

func TestArtifactSetOK(t *testing.T) {
	set := &ArtifactSet{
		Report:     ArtifactRecord{Kind: ArtifactReport, Attempted: true, Path: "/tmp/crash.log", OK: true},
		Snapshot:   ArtifactRecord{Kind: ArtifactSnapshot, Attempted: true, Path: "/tmp/crash.sav", OK: true},
		Screenshot: ArtifactRecord{Kind: ArtifactScreenshot, Attempted: true, Path: "/tmp/crash.png", OK: true},
	}
	if !set.OK() {
		t.Error("OK() = false, want true when all three succeeded")
	}

	set.Snapshot.OK = false
	set.Snapshot.Path = ""
	if set.OK() {
		t.Error("OK() = true, want false with one failed artifact")
	}
	if got := len(set.Paths()); got != 2 {
		t.Errorf("Paths() returned %d entries, want 2", got)
	}
}

func TestDetermineOutcome(t *testing.T) {
	full := &ArtifactSet{
		Report:     ArtifactRecord{OK: true},
		Snapshot:   ArtifactRecord{OK: true},
		Screenshot: ArtifactRecord{OK: true},
	}
	partial := &ArtifactSet{
		Report: ArtifactRecord{OK: true},
	}

	if got := DetermineOutcome(false, full); got != OutcomeCaptured {
		t.Errorf("outcome = %q, want %q", got, OutcomeCaptured)
	}
	if got := DetermineOutcome(false, partial); got != OutcomePartial {
		t.Errorf("outcome = %q, want %q", got, OutcomePartial)
	}
	if got := DetermineOutcome(true, full); got != OutcomeSkipped {
		t.Errorf("outcome = %q, want %q", got, OutcomeSkipped)
	}
}
