package store

import (
	"errors"
	"testing"

	"github.com/justapithecus/lode/lode"

	"github.com/justapithecus/faultline/types"
)

// sharedFactory returns a StoreFactory that always returns the given store.
// This allows write and read archives to share the same in-memory state.
func sharedFactory(store lode.Store) lode.StoreFactory {
	return func() (lode.Store, error) { return store, nil }
}

func memArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := NewArchiveWithFactory(Config{}, sharedFactory(lode.NewMemory()))
	if err != nil {
		t.Fatalf("NewArchiveWithFactory failed: %v", err)
	}
	return a
}

func captureMeta(bundleID, binary, ts string, sig int) *types.CaptureMeta {
	meta := &types.CaptureMeta{
		Type:            types.CaptureMetaType,
		ContractVersion: types.Version,
		BundleID:        bundleID,
		Binary:          binary,
		PID:             100,
		Timestamp:       ts,
		Signal:          types.NewSignalInfo(sig),
		Outcome:         types.OutcomeCaptured,
		Frames:          []types.Frame{{PC: 0x1000}, {PC: 0x2000}},
	}
	meta.Artifacts.Report = types.ArtifactRecord{Kind: types.ArtifactReport, Attempted: true, OK: true, Path: "crash.log"}
	meta.Artifacts.Snapshot = types.ArtifactRecord{Kind: types.ArtifactSnapshot, Attempted: true, OK: true, Path: "state.sav"}
	meta.Artifacts.Screenshot = types.ArtifactRecord{Kind: types.ArtifactScreenshot, Attempted: true, OK: true, Path: "screen.png"}
	return meta
}

func TestArchiveBundle_RoundTrip(t *testing.T) {
	a := memArchive(t)
	meta := captureMeta("crash-20260830-120000-aaaa1111", "game", "2026-08-30T12:00:00Z", 11)

	err := a.ArchiveBundle(t.Context(), meta, []BundleFile{
		{Name: "crash.log", Data: []byte("Crash reason:\n")},
	})
	if err != nil {
		t.Fatalf("ArchiveBundle failed: %v", err)
	}

	crashes, err := a.ListCrashes(t.Context(), Filter{})
	if err != nil {
		t.Fatalf("ListCrashes failed: %v", err)
	}
	if len(crashes) != 1 {
		t.Fatalf("crashes = %d, want 1", len(crashes))
	}

	got := crashes[0]
	if got.BundleID != meta.BundleID {
		t.Errorf("BundleID = %q", got.BundleID)
	}
	if got.SignalName != "SIGSEGV" || got.SignalNumber != 11 {
		t.Errorf("signal = %s (%d)", got.SignalName, got.SignalNumber)
	}
	if got.FrameCount != 2 {
		t.Errorf("FrameCount = %d, want 2", got.FrameCount)
	}
	if !got.ArtifactsOK {
		t.Error("ArtifactsOK = false")
	}
}

func TestArchiveBundle_RejectsEmptyBundleID(t *testing.T) {
	a := memArchive(t)
	if err := a.ArchiveBundle(t.Context(), &types.CaptureMeta{}, nil); err == nil {
		t.Error("ArchiveBundle accepted meta without bundle id")
	}
}

func TestListCrashes_FilterByBinary(t *testing.T) {
	a := memArchive(t)
	must(t, a.ArchiveBundle(t.Context(), captureMeta("crash-1-aaaa", "game", "2026-08-30T10:00:00Z", 11), nil))
	must(t, a.ArchiveBundle(t.Context(), captureMeta("crash-2-bbbb", "editor", "2026-08-30T11:00:00Z", 6), nil))

	crashes, err := a.ListCrashes(t.Context(), Filter{Binary: "editor"})
	if err != nil {
		t.Fatalf("ListCrashes failed: %v", err)
	}
	if len(crashes) != 1 || crashes[0].BundleID != "crash-2-bbbb" {
		t.Errorf("crashes = %+v, want only the editor crash", crashes)
	}
}

func TestListCrashes_LatestFirst(t *testing.T) {
	a := memArchive(t)
	must(t, a.ArchiveBundle(t.Context(), captureMeta("crash-old", "game", "2026-08-29T10:00:00Z", 11), nil))
	must(t, a.ArchiveBundle(t.Context(), captureMeta("crash-new", "game", "2026-08-30T10:00:00Z", 11), nil))

	crashes, err := a.ListCrashes(t.Context(), Filter{})
	if err != nil {
		t.Fatalf("ListCrashes failed: %v", err)
	}
	if len(crashes) != 2 || crashes[0].BundleID != "crash-new" {
		t.Errorf("crashes = %+v, want newest first", crashes)
	}
}

func TestQueryCrash_NotFound(t *testing.T) {
	a := memArchive(t)
	_, err := a.QueryCrash(t.Context(), "crash-missing")
	if !errors.Is(err, ErrNoCrashFound) {
		t.Errorf("QueryCrash error = %v, want ErrNoCrashFound", err)
	}
}

func TestQueryStats_Aggregates(t *testing.T) {
	a := memArchive(t)
	must(t, a.ArchiveBundle(t.Context(), captureMeta("crash-a", "game", "2026-08-30T10:00:00Z", 11), nil))
	must(t, a.ArchiveBundle(t.Context(), captureMeta("crash-b", "game", "2026-08-30T11:00:00Z", 11), nil))
	skipped := captureMeta("crash-c", "editor", "2026-08-30T12:00:00Z", 6)
	skipped.Outcome = types.OutcomeSkipped
	skipped.SkipReason = "emergency state loaded"
	must(t, a.ArchiveBundle(t.Context(), skipped, nil))

	stats, err := a.QueryStats(t.Context(), Filter{})
	if err != nil {
		t.Fatalf("QueryStats failed: %v", err)
	}
	if stats.Total != 3 {
		t.Errorf("Total = %d, want 3", stats.Total)
	}
	if stats.BySignal["SIGSEGV"] != 2 || stats.BySignal["SIGABRT"] != 1 {
		t.Errorf("BySignal = %v", stats.BySignal)
	}
	if stats.ByOutcome["captured"] != 2 || stats.ByOutcome["skipped"] != 1 {
		t.Errorf("ByOutcome = %v", stats.ByOutcome)
	}
	if stats.ByBinary["game"] != 2 || stats.ByBinary["editor"] != 1 {
		t.Errorf("ByBinary = %v", stats.ByBinary)
	}
}

func TestQueryStats_FilteredByDay(t *testing.T) {
	a := memArchive(t)
	must(t, a.ArchiveBundle(t.Context(), captureMeta("crash-a", "game", "2026-08-29T10:00:00Z", 11), nil))
	must(t, a.ArchiveBundle(t.Context(), captureMeta("crash-b", "game", "2026-08-30T10:00:00Z", 8), nil))

	stats, err := a.QueryStats(t.Context(), Filter{Day: "2026-08-30"})
	if err != nil {
		t.Fatalf("QueryStats failed: %v", err)
	}
	if stats.Total != 1 || stats.BySignal["SIGFPE"] != 1 {
		t.Errorf("stats = %+v, want only the 2026-08-30 crash", stats)
	}
}

func TestArtifactData_RoundTrip(t *testing.T) {
	a := memArchive(t)
	meta := captureMeta("crash-blob", "game", "2026-08-30T10:00:00Z", 11)
	must(t, a.ArchiveBundle(t.Context(), meta, []BundleFile{
		{Name: "crash.log", Data: []byte("Stacktrace:\n [00] game\n")},
	}))

	data, err := a.ArtifactData(t.Context(), "crash-blob", "crash.log")
	if err != nil {
		t.Fatalf("ArtifactData failed: %v", err)
	}
	if string(data) != "Stacktrace:\n [00] game\n" {
		t.Errorf("data = %q", data)
	}

	if _, err := a.ArtifactData(t.Context(), "crash-blob", "missing.bin"); !errors.Is(err, ErrNoCrashFound) {
		t.Errorf("missing artifact error = %v, want ErrNoCrashFound", err)
	}
}

func TestMatchesPartitionValue_ExactSegments(t *testing.T) {
	path := "binary=game/day=2026-08-30/bundle_id=crash-1/kind=meta/part-0.jsonl"
	if !matchesPartitionValue(path, "bundle_id", "crash-1") {
		t.Error("exact segment did not match")
	}
	if matchesPartitionValue(path, "bundle_id", "crash-") {
		t.Error("prefix matched as full segment")
	}
	if matchesPartitionValue("bundle_id=crash-10/x", "bundle_id", "crash-1") {
		t.Error("crash-1 matched crash-10")
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
